package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"choreboard/internal/model"
	"choreboard/internal/repository"
)

// AuthService handles account registration and stateless session tokens.
// Tokens are signed JWTs whose subject is the owner id; the server keeps no
// session state of its own.
type AuthService struct {
	userRepo *repository.UserRepository
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthService(userRepo *repository.UserRepository, secret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{userRepo: userRepo, secret: []byte(secret), tokenTTL: tokenTTL}
}

// Register creates an account with a bcrypt-hashed password.
func (s *AuthService) Register(ctx context.Context, username, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrInvalidInput)
	}

	_, err := s.userRepo.FindByUsername(ctx, username)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w: username taken", ErrConflict)
	case errors.Is(err, gorm.ErrRecordNotFound):
		// free to register
	default:
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := model.User{Username: username, PasswordHash: string(hash)}
	if err := s.userRepo.Create(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login verifies credentials and issues a signed token. Bad username and bad
// password produce the same answer.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.userRepo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("%w: invalid credentials", ErrInvalidInput)
		}
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("%w: invalid credentials", ErrInvalidInput)
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(user.ID), 10),
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken validates a token and returns the owner id it was issued for.
func (s *AuthService) ParseToken(tokenStr string) (uint, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("%w: invalid token", ErrInvalidInput)
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return 0, fmt.Errorf("%w: invalid token", ErrInvalidInput)
	}
	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid token subject", ErrInvalidInput)
	}
	return uint(id), nil
}

// SetTelegramChat links a Telegram chat to the account for reminders.
func (s *AuthService) SetTelegramChat(ctx context.Context, userID uint, chatID int64) error {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return orNotFound(err)
	}
	return s.userRepo.SetTelegramChat(ctx, userID, chatID)
}
