package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/daybookapp/daybook-server/internal/domain"
)

// Starter state seeded for every new account. A fresh account must be
// immediately usable: one folder to write into, one entry to look at, and a
// few catalog items to pick from.
const (
	welcomeEntryTitle = "Welcome to Daybook"
	welcomeEntryBody  = "<p>This is your first entry. Write about your day, tag it, and track your mood over time.</p>"
	welcomeMoodID     = 1
)

var (
	defaultTodos    = []string{"Write your first entry", "Check the mood statistics"}
	defaultActivity = domain.CatalogItem{Kind: domain.KindActivity, Label: "Walking", IconID: 1}
	defaultEmotions = []domain.CatalogItem{
		{Kind: domain.KindEmotion, Label: "Happy", IconID: 1},
		{Kind: domain.KindEmotion, Label: "Calm", IconID: 2},
	}
	defaultTag = domain.CatalogItem{Kind: domain.KindTag, Label: "personal"}
)

// Register creates a new account together with its starter state: the
// default folder, a welcome entry (counter bumped to match), two sample
// todos, one sample activity, two sample emotions and one sample tag.
// All writes happen in one transaction; a failure at any step leaves no
// trace of the account.
//
// Returns domain.ErrAlreadyExists when the login is taken (detected before
// any write) and a wrapped persistence error for everything else.
func (s *Service) Register(ctx context.Context, input RegisterInput) error {
	input.Login = strings.TrimSpace(input.Login)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	if err := input.validate(s.cfg.MinPasswordLength); err != nil {
		return err
	}

	taken, err := s.users.Exists(ctx, input.Login)
	if err != nil {
		return fmt.Errorf("auth.Register check login: %w", err)
	}
	if taken {
		return fmt.Errorf("auth.Register login %s: %w", input.Login, domain.ErrAlreadyExists)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cfg.PasswordHashCost)
	if err != nil {
		return fmt.Errorf("auth.Register hash password: %w", err)
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		// Login uniqueness is also enforced by the primary key, so a racing
		// duplicate registration still fails here instead of committing twice.
		user := &domain.User{
			Login:        input.Login,
			Email:        input.Email,
			PasswordHash: string(hash),
		}
		if err := s.users.Insert(txCtx, user); err != nil {
			return fmt.Errorf("create user: %w", err)
		}

		folderID, err := s.folders.Insert(txCtx, input.Login, domain.DefaultFolderName)
		if err != nil {
			return fmt.Errorf("create default folder: %w", err)
		}

		now := time.Now()
		welcome := &domain.Entry{
			OwnerLogin: input.Login,
			Title:      welcomeEntryTitle,
			Content:    welcomeEntryBody,
			MoodID:     welcomeMoodID,
			FolderID:   folderID,
			Date:       now,
			Time:       now.Format("15:04:05"),
		}
		if _, err := s.entries.Insert(txCtx, welcome); err != nil {
			return fmt.Errorf("create welcome entry: %w", err)
		}
		if err := s.folders.IncrementCount(txCtx, folderID); err != nil {
			return fmt.Errorf("count welcome entry: %w", err)
		}

		for _, name := range defaultTodos {
			if _, err := s.todos.Insert(txCtx, input.Login, name); err != nil {
				return fmt.Errorf("create default todo: %w", err)
			}
		}

		seedItems := append([]domain.CatalogItem{defaultActivity}, defaultEmotions...)
		seedItems = append(seedItems, defaultTag)
		for _, item := range seedItems {
			item.OwnerLogin = input.Login
			if _, err := s.catalog.Insert(txCtx, &item); err != nil {
				return fmt.Errorf("create default %s: %w", item.Kind, err)
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("auth.Register: %w", err)
	}

	s.log.InfoContext(ctx, "account registered", slog.String("login", input.Login))
	return nil
}
