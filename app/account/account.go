// Package account manages the single local customer account stored under
// the "user" key.
package account

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/shashiranjanraj/lanchonete/app/models"
	"github.com/shashiranjanraj/lanchonete/pkg/auth"
	"github.com/shashiranjanraj/lanchonete/pkg/kv"
	"github.com/shashiranjanraj/lanchonete/pkg/logger"
	"github.com/shashiranjanraj/lanchonete/pkg/validate"
)

// Key is the storage key of the account record.
const Key = "user"

var (
	ErrNoAccount          = errors.New("account: no account registered")
	ErrInvalidCredentials = errors.New("account: invalid email or password")
	ErrEmailTaken         = errors.New("account: email already registered")
)

// ValidationError lists the rejected registration fields.
type ValidationError struct {
	Fields validate.Errors
}

func (e *ValidationError) Error() string {
	return "account: " + e.Fields.Error()
}

// Registration is the sign-up form.
type Registration struct {
	Name                 string `json:"name"                  validate:"required,max=80"`
	Email                string `json:"email"                 validate:"required,email"`
	Password             string `json:"password"              validate:"required,min=6"`
	PasswordConfirmation string `json:"password_confirmation" validate:"confirmed"`
	PostalCode           string `json:"cep"                   validate:"nullable,regex=^\\d{5}-?\\d{3}$"`
}

// Service reads and writes the account record.
type Service struct {
	store kv.Store
	mu    sync.Mutex
}

func New(store kv.Store) *Service {
	return &Service{store: store}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register validates r and stores it as the account. An account under a
// different email is replaced; the same email again is ErrEmailTaken.
func (s *Service) Register(ctx context.Context, r Registration) (models.Account, error) {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.PostalCode = strings.TrimSpace(r.PostalCode)
	if errs := validate.Struct(r); validate.HasErrors(errs) {
		return models.Account{}, &ValidationError{Fields: errs}
	}

	hash, err := auth.HashPassword(r.Password)
	if err != nil {
		return models.Account{}, fmt.Errorf("account: hash password: %w", err)
	}
	acc := models.Account{
		Name:         r.Name,
		Email:        normalizeEmail(r.Email),
		PostalCode:   r.PostalCode,
		PasswordHash: hash,
	}

	raw, err := json.Marshal(acc)
	if err != nil {
		return models.Account{}, fmt.Errorf("account: encode: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	prev, err := s.Current(ctx)
	switch {
	case err == nil && prev.Email == acc.Email:
		return models.Account{}, ErrEmailTaken
	case err != nil && !errors.Is(err, ErrNoAccount):
		return models.Account{}, err
	}
	if err := s.store.Set(ctx, Key, raw); err != nil {
		return models.Account{}, fmt.Errorf("account: save: %w", err)
	}

	logger.WithCtx(ctx).Info("account registered", "email", acc.Email)
	return acc, nil
}

// Current returns the stored account. Records without a password hash,
// such as plaintext ones from earlier builds, read as ErrNoAccount.
func (s *Service) Current(ctx context.Context) (models.Account, error) {
	raw, err := s.store.Get(ctx, Key)
	if errors.Is(err, kv.ErrNotFound) {
		return models.Account{}, ErrNoAccount
	}
	if err != nil {
		return models.Account{}, fmt.Errorf("account: read: %w", err)
	}

	var acc models.Account
	if err := json.Unmarshal(raw, &acc); err != nil || acc.Email == "" || acc.PasswordHash == "" {
		logger.WithCtx(ctx).Warn("stored account unreadable", "error", err)
		return models.Account{}, ErrNoAccount
	}
	return acc, nil
}

// Login checks email, compared case-insensitively, and password against
// the stored account.
func (s *Service) Login(ctx context.Context, email, password string) (models.Account, error) {
	acc, err := s.Current(ctx)
	if err != nil {
		return models.Account{}, err
	}
	if acc.Email != normalizeEmail(email) || !auth.CheckPassword(acc.PasswordHash, password) {
		return models.Account{}, ErrInvalidCredentials
	}
	return acc, nil
}

// Logout forgets the stored account.
func (s *Service) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Delete(ctx, Key); err != nil {
		return fmt.Errorf("account: delete: %w", err)
	}
	return nil
}
