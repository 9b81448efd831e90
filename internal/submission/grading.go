package submission

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/quizdeck/quizdeck/internal/account"
	"github.com/quizdeck/quizdeck/internal/audit"
	"github.com/quizdeck/quizdeck/internal/quiz"
)

var ErrGradeOutOfRange = errors.New("grade must be between 0 and 100")

const unknownStudentName = "Unknown Student"

// GradingEntry pairs a submission with the student display name and the
// owning quiz for side-by-side answer display. Both joins degrade instead
// of failing: a missing account becomes a placeholder name, a deleted quiz
// becomes the deleted-quiz placeholder.
type GradingEntry struct {
	Submission  Submission
	StudentName string
	Quiz        quiz.Quiz
	QuizDeleted bool
}

// GradingService lists submissions for an instructor's quizzes and applies
// grades.
type GradingService struct {
	subs     Repo
	quizzes  quiz.Repo
	accounts account.Repo
	audit    *audit.Log
	now      func() time.Time
}

func NewGradingService(subs Repo, quizzes quiz.Repo, accounts account.Repo, auditLog *audit.Log) *GradingService {
	return &GradingService{subs: subs, quizzes: quizzes, accounts: accounts, audit: auditLog, now: time.Now}
}

func (g *GradingService) WithClock(now func() time.Time) *GradingService {
	g.now = now
	return g
}

// ListForInstructor returns every submission whose quiz belongs to the
// instructor. The quiz-id set is matched with a chunked set-membership
// query at the repository.
func (g *GradingService) ListForInstructor(ctx context.Context, instructorID string) ([]GradingEntry, error) {
	quizzes, err := g.quizzes.ListByInstructor(ctx, instructorID)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	byQuiz := make(map[string]quiz.Quiz, len(quizzes))
	quizIDs := make([]string, 0, len(quizzes))
	for _, q := range quizzes {
		byQuiz[q.ID] = q
		quizIDs = append(quizIDs, q.ID)
	}
	if len(quizIDs) == 0 {
		return []GradingEntry{}, nil
	}

	subs, err := g.subs.ListByQuizIDs(ctx, quizIDs)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return g.resolve(ctx, subs, byQuiz)
}

// ListForQuiz returns the grading entries for one quiz. A deleted quiz
// still yields its surviving submissions, paired with the placeholder.
func (g *GradingService) ListForQuiz(ctx context.Context, quizID string) ([]GradingEntry, error) {
	byQuiz := map[string]quiz.Quiz{}
	if q, err := g.quizzes.GetByID(ctx, quizID); err == nil {
		byQuiz[q.ID] = q
	} else if !errors.Is(err, quiz.ErrNotFound) {
		return nil, err
	}
	subs, err := g.subs.ListByQuizIDs(ctx, []string{quizID})
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return g.resolve(ctx, subs, byQuiz)
}

func (g *GradingService) resolve(ctx context.Context, subs []Submission, byQuiz map[string]quiz.Quiz) ([]GradingEntry, error) {
	studentIDs := make([]string, 0, len(subs))
	seen := map[string]struct{}{}
	for _, s := range subs {
		if _, ok := seen[s.StudentID]; !ok {
			seen[s.StudentID] = struct{}{}
			studentIDs = append(studentIDs, s.StudentID)
		}
	}
	students, err := g.accounts.GetManyByIDs(ctx, studentIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve students: %w", err)
	}

	out := make([]GradingEntry, 0, len(subs))
	for _, s := range subs {
		e := GradingEntry{Submission: s, StudentName: unknownStudentName}
		if a, ok := students[s.StudentID]; ok {
			e.StudentName = a.Name
		}
		if q, ok := byQuiz[s.QuizID]; ok {
			e.Quiz = q
		} else {
			e.Quiz = quiz.DeletedPlaceholder(s.QuizID)
			e.QuizDeleted = true
		}
		out = append(out, e)
	}
	return out, nil
}

// Grade attaches an instructor grade and feedback and moves the submission
// to graded. Re-grading overwrites prior values; grading with identical
// input leaves the record unchanged apart from graded_at.
func (g *GradingService) Grade(ctx context.Context, submissionID string, grade int, feedback string) (Submission, error) {
	if grade < 0 || grade > 100 {
		return Submission{}, ErrGradeOutOfRange
	}
	if err := g.subs.ApplyGrade(ctx, submissionID, grade, feedback, g.now().UTC()); err != nil {
		return Submission{}, err
	}
	sub, err := g.subs.GetByID(ctx, submissionID)
	if err != nil {
		return Submission{}, err
	}
	g.audit.Record(ctx, audit.EventSubmissionGraded, submissionID, map[string]any{
		"grade": grade,
	})
	return sub, nil
}

// OwnsSubmission reports whether the submission's quiz belongs to the
// instructor. Submissions of deleted quizzes are gradeable by any
// instructor holding the listing, matching the degraded-state contract.
func (g *GradingService) OwnsSubmission(ctx context.Context, instructorID, submissionID string) (bool, error) {
	sub, err := g.subs.GetByID(ctx, submissionID)
	if err != nil {
		return false, err
	}
	q, err := g.quizzes.GetByID(ctx, sub.QuizID)
	if errors.Is(err, quiz.ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return q.InstructorID == instructorID, nil
}
