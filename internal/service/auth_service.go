package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"studenthub/internal/models"
	"studenthub/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// tokenTTL is fixed by design: tokens live 7 days and are never revoked.
// A password change does not invalidate tokens issued before it.
const tokenTTL = 7 * 24 * time.Hour

// minPasswordLen applies to the signup and enrollment paths, not to the
// hasher itself.
const minPasswordLen = 6

// Default bootstrap admin credentials. Documented so a deployer knows the
// initial login and is expected to rotate it after first use.
const (
	DefaultAdminName     = "Admin User"
	DefaultAdminEmail    = "admin@example.com"
	DefaultAdminPassword = "Admin@123"
)

// Domain errors for auth flows.
var (
	ErrDuplicateEmail     = errors.New("user already exists with this email")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrEmptyPassword      = errors.New("password is empty")
	ErrPasswordTooShort   = fmt.Errorf("password must be at least %d characters", minPasswordLen)
	ErrInvalidInput       = errors.New("name and email are required")
)

// AuthService handles credential storage, token issuance/verification and
// the one-time admin bootstrap.
type AuthService struct {
	users      repository.Users
	signingKey []byte
}

func NewAuthService(users repository.Users, signingKey string) *AuthService {
	return &AuthService{users: users, signingKey: []byte(signingKey)}
}

// Claims defines JWT claims carried by access tokens.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
}

// SignUp creates a student account and returns it with a fresh token.
// Public signup never produces any role other than student.
func (s *AuthService) SignUp(name, email, password string) (*models.User, string, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" {
		return nil, "", ErrInvalidInput
	}
	if len(password) < minPasswordLen {
		return nil, "", ErrPasswordTooShort
	}

	existing, err := s.users.ByEmail(email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", ErrDuplicateEmail
	}

	u, err := s.createUser(name, email, password, models.RoleStudent)
	if err != nil {
		return nil, "", err
	}

	token, err := s.issueToken(u.ID)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Login verifies credentials and returns the user with a fresh token.
// Unknown email and wrong password collapse to the same error so callers
// cannot probe which emails have accounts.
func (s *AuthService) Login(email, password string) (*models.User, string, error) {
	u, err := s.users.ByEmail(strings.TrimSpace(email))
	if err != nil {
		return nil, "", err
	}
	if u == nil {
		return nil, "", ErrInvalidCredentials
	}
	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(u.ID)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// ParseToken verifies signature and expiry, returning the subject user id.
// Every failure mode (malformed, forged, expired) collapses to
// ErrInvalidToken; the caller learns nothing about why.
func (s *AuthService) ParseToken(accessToken string) (string, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return "", ErrInvalidToken
	}
	return claims.UserID, nil
}

// UserByID loads a user without the password hash. Returns (nil, nil)
// when the account no longer exists.
func (s *AuthService) UserByID(id string) (*models.User, error) {
	return s.users.ByID(id)
}

// EnsureAdmin seeds the default administrator account if none exists.
// Idempotent: the store-level guard makes the check-then-create a single
// atomic statement, so restarts and concurrent instances never produce a
// second admin or overwrite an existing one.
func (s *AuthService) EnsureAdmin() (bool, error) {
	hash, err := hashPassword(DefaultAdminPassword)
	if err != nil {
		return false, fmt.Errorf("hash admin password: %w", err)
	}
	admin := &models.User{
		ID:           uuid.NewString(),
		Name:         DefaultAdminName,
		Email:        DefaultAdminEmail,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
	}
	return s.users.CreateAdminIfAbsent(admin)
}

// createUser hashes the password and persists a new account.
func (s *AuthService) createUser(name, email, password string, role models.Role) (*models.User, error) {
	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(u); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return u, nil
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash. A malformed hash fails closed.
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// helper: issue a signed JWT for a user
func (s *AuthService) issueToken(userID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
	})
	return token.SignedString(s.signingKey)
}
