package journal

import (
	"context"
	"fmt"
	"strings"

	"github.com/daybookapp/daybook-server/internal/domain"
)

// CreateTodo adds a todo item for the user. Names are unique per user.
func (s *Service) CreateTodo(ctx context.Context, ownerLogin, name string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, domain.NewValidationError("name", "must not be empty")
	}

	id, err := s.todos.Insert(ctx, ownerLogin, name)
	if err != nil {
		return 0, fmt.Errorf("journal.CreateTodo: %w", err)
	}
	return id, nil
}

// Todos lists the user's todo items.
func (s *Service) Todos(ctx context.Context, ownerLogin string) ([]domain.Todo, error) {
	todos, err := s.todos.ListByOwner(ctx, ownerLogin)
	if err != nil {
		return nil, fmt.Errorf("journal.Todos: %w", err)
	}
	return todos, nil
}

// DeleteTodo removes a todo item by name, the way clients address them.
func (s *Service) DeleteTodo(ctx context.Context, ownerLogin, name string) error {
	if err := s.todos.Delete(ctx, ownerLogin, name); err != nil {
		return fmt.Errorf("journal.DeleteTodo: %w", err)
	}
	return nil
}
