package journal

import (
	"strings"
	"time"

	"github.com/daybookapp/daybook-server/internal/domain"
)

// EntryInput carries the caller-supplied fields for creating or updating an
// entry. Date is an ISO day ("2006-01-02"), Time a wall clock ("15:04:05").
type EntryInput struct {
	Title       string
	Content     string
	MoodID      int64
	FolderID    int64
	Date        string
	Time        string
	TagIDs      []int64
	ActivityIDs []int64
	EmotionIDs  []int64
}

// Validate checks the input before any write begins. It returns a
// ValidationError listing every offending field at once.
func (in *EntryInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(in.Title) == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "must not be empty"})
	}
	if strings.TrimSpace(in.Content) == "" {
		errs = append(errs, domain.FieldError{Field: "content", Message: "must not be empty"})
	}
	if in.MoodID < 0 {
		errs = append(errs, domain.FieldError{Field: "moodId", Message: "must be >= 0"})
	}
	if in.FolderID <= 0 {
		errs = append(errs, domain.FieldError{Field: "folderId", Message: "must be a positive id"})
	}
	if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		errs = append(errs, domain.FieldError{Field: "date", Message: "must be an ISO date (YYYY-MM-DD)"})
	}
	if _, err := time.Parse("15:04:05", in.Time); err != nil {
		errs = append(errs, domain.FieldError{Field: "time", Message: "must be a clock value (HH:MM:SS)"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// toEntry converts validated input to a domain entry. Validate must have
// succeeded before calling.
func (in *EntryInput) toEntry(ownerLogin string) domain.Entry {
	date, _ := time.Parse("2006-01-02", in.Date)
	return domain.Entry{
		OwnerLogin: ownerLogin,
		Title:      in.Title,
		Content:    in.Content,
		MoodID:     in.MoodID,
		FolderID:   in.FolderID,
		Date:       date,
		Time:       in.Time,
	}
}
