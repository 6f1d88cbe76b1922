// Package users registers login accounts and authenticates them.
package users

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/sha3"

	"github.com/saxenaaman628/online-voting-system/internal/models"
	"github.com/saxenaaman628/online-voting-system/internal/store"
	"github.com/saxenaaman628/online-voting-system/internal/utils"
	"github.com/saxenaaman628/online-voting-system/internal/validation"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type Service struct {
	store     store.Store
	validator *validation.Validator
	tokens    *utils.Tokens
	now       func() time.Time
	cost      int
}

func NewService(s store.Store, v *validation.Validator, tokens *utils.Tokens, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{store: s, validator: v, tokens: tokens, now: now, cost: bcrypt.DefaultCost}
}

// WithCost sets the bcrypt cost. Tests use bcrypt.MinCost.
func (s *Service) WithCost(cost int) *Service {
	s.cost = cost
	return s
}

func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	if err := s.validator.User(req); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword(digest(req.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &models.User{
		Username:     strings.TrimSpace(req.Username),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		UserType:     req.UserType,
		CreatedAt:    s.now(),
	}
	if err := s.store.CreateUser(ctx, u); err != nil {
		if _, ok := store.IsDuplicate(err); ok {
			slog.Info("Registration rejected, email taken", "email", u.Email)
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

// Login never says which of email, password or user type was wrong.
func (s *Service) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Login(req); err != nil {
		return nil, err
	}

	u, err := s.store.FindUser(ctx, strings.ToLower(strings.TrimSpace(req.Email)), req.UserType)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), digest(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateJWTToken(u)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &models.LoginResponse{
		Success: true,
		Message: "Login successful",
		User:    *u,
		Token:   token,
	}, nil
}

// digest feeds bcrypt a fixed 44-byte input; bcrypt rejects anything over 72
// bytes and passwords may run to 100 characters of any width.
func digest(password string) []byte {
	sum := sha3.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}
