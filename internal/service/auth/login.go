package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/daybookapp/daybook-server/internal/domain"
)

// Login verifies the login/password pair. The flow is session-less: a
// successful check is the whole result, the caller keeps using the login
// string to address its data.
// Returns domain.ErrUnauthorized for an unknown login or a wrong password,
// without distinguishing the two.
func (s *Service) Login(ctx context.Context, login, password string) error {
	user, err := s.users.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("auth.Login: %w", domain.ErrUnauthorized)
		}
		return fmt.Errorf("auth.Login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return fmt.Errorf("auth.Login: %w", domain.ErrUnauthorized)
	}
	return nil
}
