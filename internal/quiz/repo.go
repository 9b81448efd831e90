package quiz

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("quiz not found")

// Repo persists quizzes. ListByInstructor is an equality query on the
// instructor id field. Delete removes only the quiz document; submissions
// referencing it are orphaned on purpose (see submission package).
type Repo interface {
	Create(ctx context.Context, q Quiz) error
	GetByID(ctx context.Context, id string) (Quiz, error)
	Delete(ctx context.Context, id string) error
	ListByInstructor(ctx context.Context, instructorID string) ([]Quiz, error)
}
