package submission

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("submission not found")
	// ErrDuplicate is the store-level uniqueness violation for a second
	// submission by the same student for the same quiz.
	ErrDuplicate = errors.New("submission already exists for this quiz and student")
)

// Repo persists submissions. FindByQuizAndStudent and ListByStudent are
// equality queries; ListByQuizIDs and CountByQuizIDs are set-membership
// queries whose implementations chunk oversized id sets. Create enforces
// at most one submission per (quiz, student) pair and returns ErrDuplicate
// when a concurrent racer got there first.
type Repo interface {
	Create(ctx context.Context, s Submission) error
	GetByID(ctx context.Context, id string) (Submission, error)
	FindByQuizAndStudent(ctx context.Context, quizID, studentID string) (Submission, error)
	ListByStudent(ctx context.Context, studentID string) ([]Submission, error)
	ListByQuizIDs(ctx context.Context, quizIDs []string) ([]Submission, error)
	CountByQuizIDs(ctx context.Context, quizIDs []string) (int, error)
	ApplyGrade(ctx context.Context, id string, grade int, feedback string, at time.Time) error
}
