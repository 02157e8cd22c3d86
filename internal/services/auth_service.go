package services

import (
	"errors"
	"fmt"
	"time"

	"watchstore/internal/models"
	"watchstore/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// RoleAdmin is the role claim carried by admin-issued tokens. User tokens
// carry no role claim at all.
const RoleAdmin = "admin"

// AuthService is the single issuer and verifier of signed tokens for both
// users and admins. Which store a record was found in decides the role that
// gets encoded into the token.
type AuthService struct {
	userRepo      repositories.UserRepository
	adminRepo     repositories.AdminRepository
	jwtSecret     []byte
	tokenDuration time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, adminRepo repositories.AdminRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		adminRepo:     adminRepo,
		jwtSecret:     []byte(jwtSecret),
		tokenDuration: 7 * 24 * time.Hour,
	}
}

// RegisterUser registers a new user, hashes their password, and saves them.
// Returns a signed token so the client is logged in immediately.
func (s *AuthService) RegisterUser(user *models.User) (string, error) {
	if existing, err := s.userRepo.GetByEmail(user.Email); err == nil && existing != nil {
		return "", fmt.Errorf("email '%s' already registered: %w", user.Email, ErrValidation)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashedPassword)

	if err := s.userRepo.Create(user); err != nil {
		return "", fmt.Errorf("failed to register user: %w", err)
	}

	return s.issueToken(user.ID, user.Email, "")
}

// LoginUser authenticates a user and returns a signed token.
func (s *AuthService) LoginUser(email, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(user.ID, user.Email, "")
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// LoginAdmin authenticates an admin and returns a signed token carrying the
// admin role claim.
func (s *AuthService) LoginAdmin(email, password string) (string, *models.Admin, error) {
	admin, err := s.adminRepo.GetByEmail(email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(admin.ID, admin.Email, RoleAdmin)
	if err != nil {
		return "", nil, err
	}
	return token, admin, nil
}

// GetUserProfile fetches a user record by id.
func (s *AuthService) GetUserProfile(id string) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// GetAdminProfile fetches an admin record by id.
func (s *AuthService) GetAdminProfile(id string) (*models.Admin, error) {
	return s.adminRepo.GetByID(id)
}

// issueToken signs an HS256 token with subject id, email and an optional
// role claim. Tokens expire after seven days; there is no refresh or
// revocation.
func (s *AuthService) issueToken(id, email, role string) (string, error) {
	claims := jwt.MapClaims{
		"id":    id,
		"email": email,
		"exp":   time.Now().Add(s.tokenDuration).Unix(),
		"iat":   time.Now().Unix(),
	}
	if role != "" {
		claims["role"] = role
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a token, returning its claims.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidToken
}

// IsAdminClaims reports whether a validated claim set carries the admin role.
func IsAdminClaims(claims jwt.MapClaims) bool {
	role, _ := claims["role"].(string)
	return role == RoleAdmin
}

// IsNotFound reports whether err is a missing-record failure from any
// repository backend.
func IsNotFound(err error) bool {
	return errors.Is(err, repositories.ErrNotFound)
}
