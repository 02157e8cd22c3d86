package repositories

import "errors"

// ErrNotFound is returned (wrapped) by every backend when a record with the
// requested id or email does not exist. Callers test with errors.Is.
var ErrNotFound = errors.New("record not found")
