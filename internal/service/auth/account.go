package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/daybookapp/daybook-server/internal/domain"
)

// ChangePassword verifies the old password and stores a hash of the new one.
// Returns domain.ErrUnauthorized when the old password does not match,
// domain.ErrNotFound for an unknown login.
func (s *Service) ChangePassword(ctx context.Context, login, oldPassword, newPassword string) error {
	if len(newPassword) < s.cfg.MinPasswordLength {
		return domain.NewValidationError("password", "too short")
	}

	user, err := s.users.GetByLogin(ctx, login)
	if err != nil {
		return fmt.Errorf("auth.ChangePassword: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)) != nil {
		return fmt.Errorf("auth.ChangePassword: %w", domain.ErrUnauthorized)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.cfg.PasswordHashCost)
	if err != nil {
		return fmt.Errorf("auth.ChangePassword hash: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, login, string(hash)); err != nil {
		return fmt.Errorf("auth.ChangePassword: %w", err)
	}

	s.log.InfoContext(ctx, "password changed", slog.String("login", login))
	return nil
}

// ChangeEmail replaces the account's email address.
func (s *Service) ChangeEmail(ctx context.Context, login, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return domain.NewValidationError("email", "must be a valid address")
	}

	if err := s.users.UpdateEmail(ctx, login, email); err != nil {
		return fmt.Errorf("auth.ChangeEmail: %w", err)
	}

	s.log.InfoContext(ctx, "email changed", slog.String("login", login))
	return nil
}

// DeleteAccount removes the user row; folders, entries, catalog items and
// todos follow via ON DELETE CASCADE.
func (s *Service) DeleteAccount(ctx context.Context, login string) error {
	if err := s.users.Delete(ctx, login); err != nil {
		return fmt.Errorf("auth.DeleteAccount: %w", err)
	}

	s.log.InfoContext(ctx, "account deleted", slog.String("login", login))
	return nil
}
