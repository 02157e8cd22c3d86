package services_test

import (
	"fmt"
	"io"
	"log"
	"os"
	"testing"
	"time"

	"watchstore/internal/models"
	"watchstore/internal/repositories"
	"watchstore/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockAdminRepository is a mock implementation of repositories.AdminRepository
type MockAdminRepository struct {
	mock.Mock
}

func (m *MockAdminRepository) Create(admin *models.Admin) error {
	args := m.Called(admin)
	return args.Error(0)
}

func (m *MockAdminRepository) GetByEmail(email string) (*models.Admin, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Admin), args.Error(1)
}

func (m *MockAdminRepository) GetByID(id string) (*models.Admin, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Admin), args.Error(1)
}

// TestMain suppresses logging during tests for cleaner output.
func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

const testJWTSecret = "test_jwt_secret"

func newAuthService(userRepo *MockUserRepository, adminRepo *MockAdminRepository) *services.AuthService {
	return services.NewAuthService(userRepo, adminRepo, testJWTSecret)
}

func parseClaims(t *testing.T, token string) jwt.MapClaims {
	t.Helper()
	parsed, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(testJWTSecret), nil
	})
	assert.NoError(t, err)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	return claims
}

func TestAuthService_RegisterUser(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockAdmins := new(MockAdminRepository)
	authService := newAuthService(mockUsers, mockAdmins)

	user := &models.User{
		Name:     "abc",
		Email:    "abc@abc.com",
		Password: "123",
	}

	mockUsers.On("GetByEmail", user.Email).Return(nil, fmt.Errorf("user with email %s: %w", user.Email, repositories.ErrNotFound)).Once()
	mockUsers.On("Create", mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
		args.Get(0).(*models.User).ID = "user-123"
	}).Return(nil).Once()

	token, err := authService.RegisterUser(user)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	// The stored password is a bcrypt hash, not the plaintext.
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("123")))

	claims := parseClaims(t, token)
	assert.Equal(t, "user-123", claims["id"])
	assert.Equal(t, user.Email, claims["email"])
	assert.Nil(t, claims["role"])
	mockUsers.AssertExpectations(t)

	// Duplicate email is rejected as a validation failure.
	mockUsers.On("GetByEmail", user.Email).Return(&models.User{ID: "user-123"}, nil).Once()
	_, err = authService.RegisterUser(user)
	assert.ErrorIs(t, err, services.ErrValidation)
	assert.Contains(t, err.Error(), "already registered")
	mockUsers.AssertExpectations(t)
}

func TestAuthService_LoginUser(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockAdmins := new(MockAdminRepository)
	authService := newAuthService(mockUsers, mockAdmins)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       "user-123",
		Name:     "abc",
		Email:    "abc@abc.com",
		Password: string(hashedPassword),
	}

	// Successful login issues a token whose subject id matches the user.
	mockUsers.On("GetByEmail", user.Email).Return(user, nil).Once()
	token, loggedIn, err := authService.LoginUser(user.Email, "123")
	assert.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)

	claims := parseClaims(t, token)
	assert.Equal(t, user.ID, claims["id"])
	assert.Equal(t, user.Email, claims["email"])
	assert.Nil(t, claims["role"])
	mockUsers.AssertExpectations(t)

	// Wrong password.
	mockUsers.On("GetByEmail", user.Email).Return(user, nil).Once()
	_, _, err = authService.LoginUser(user.Email, "wrongpassword")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockUsers.AssertExpectations(t)

	// Unknown email surfaces the same failure as a wrong password.
	mockUsers.On("GetByEmail", "nobody@abc.com").Return(nil, fmt.Errorf("user with email nobody@abc.com: %w", repositories.ErrNotFound)).Once()
	_, _, err = authService.LoginUser("nobody@abc.com", "123")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockUsers.AssertExpectations(t)
}

func TestAuthService_LoginAdmin(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockAdmins := new(MockAdminRepository)
	authService := newAuthService(mockUsers, mockAdmins)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := &models.Admin{
		ID:       "admin-1",
		Email:    "admin@watchstore.local",
		Password: string(hashedPassword),
	}

	mockAdmins.On("GetByEmail", admin.Email).Return(admin, nil).Once()
	token, loggedIn, err := authService.LoginAdmin(admin.Email, "admin123")
	assert.NoError(t, err)
	assert.Equal(t, admin.ID, loggedIn.ID)

	// Admin tokens carry the role claim; user tokens never do.
	claims := parseClaims(t, token)
	assert.Equal(t, "admin-1", claims["id"])
	assert.Equal(t, services.RoleAdmin, claims["role"])
	assert.True(t, services.IsAdminClaims(claims))
	mockAdmins.AssertExpectations(t)

	mockAdmins.On("GetByEmail", admin.Email).Return(admin, nil).Once()
	_, _, err = authService.LoginAdmin(admin.Email, "nope")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockAdmins.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockAdmins := new(MockAdminRepository)
	authService := newAuthService(mockUsers, mockAdmins)

	// A token minted by the service round-trips.
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("123"), bcrypt.DefaultCost)
	user := &models.User{ID: "user-123", Email: "abc@abc.com", Password: string(hashedPassword)}
	mockUsers.On("GetByEmail", user.Email).Return(user, nil).Once()
	token, _, err := authService.LoginUser(user.Email, "123")
	assert.NoError(t, err)

	claims, err := authService.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", claims["id"])

	// Garbage token.
	_, err = authService.ValidateToken("invalid.token.string")
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	// Expired token fails the same way.
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":    "user-123",
		"email": "abc@abc.com",
		"exp":   time.Now().Add(-time.Hour).Unix(),
	})
	expiredString, _ := expired.SignedString([]byte(testJWTSecret))
	_, err = authService.ValidateToken(expiredString)
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	// Token signed with a different secret.
	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  "user-123",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	foreignString, _ := foreign.SignedString([]byte("other_secret"))
	_, err = authService.ValidateToken(foreignString)
	assert.ErrorIs(t, err, services.ErrInvalidToken)
}
