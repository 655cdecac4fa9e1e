package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/lakindu62/kidsfeed/internal/domain"
	"github.com/lakindu62/kidsfeed/internal/repository"
)

var (
	// ErrInvalidCredentials hides whether the email or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken indicates a malformed, expired or mis-signed token.
	ErrInvalidToken = errors.New("invalid token")
)

const tokenTTL = 24 * time.Hour

// TokenClaims is the JWT payload issued to staff.
type TokenClaims struct {
	UserID   string      `json:"user_id"`
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// AuthService registers staff accounts and issues HS256 tokens.
type AuthService struct {
	users     repository.UserRepository
	jwtSecret string
	log       *zap.Logger
}

// NewAuthService wires an AuthService.
func NewAuthService(users repository.UserRepository, jwtSecret string, log *zap.Logger) *AuthService {
	return &AuthService{users: users, jwtSecret: jwtSecret, log: log.Named("auth-service")}
}

// Register creates a staff account and returns it with a fresh token.
func (s *AuthService) Register(ctx context.Context, email, username, password string, role domain.Role) (*domain.User, string, error) {
	if role == "" {
		role = domain.RoleStaff
	}
	user := &domain.User{
		Email:    strings.ToLower(strings.TrimSpace(email)),
		Username: strings.TrimSpace(username),
		Role:     role,
	}
	if err := user.Validate(); err != nil {
		return nil, "", err
	}
	if len(password) < 8 {
		return nil, "", domain.NewValidationError("password", "must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}
	user.PasswordHash = string(hash)

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, "", err
	}

	token, err := s.generateToken(created)
	if err != nil {
		return nil, "", err
	}
	s.log.Info("staff account registered", zap.String("email", created.Email))
	return created, token, nil
}

// Login verifies credentials and returns the account with a fresh token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
}

// ValidateToken parses and verifies a bearer token.
func (s *AuthService) ValidateToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*TokenClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
