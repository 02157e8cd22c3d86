package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

// fail logs the underlying error and writes a 500 with the given message.
// The error detail is kept out of the response body; store and
// infrastructure failures are server business only.
func fail(c *fiber.Ctx, message string, err error) error {
	log.Printf("%s: %v", message, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": message,
	})
}
