package submission

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/quizdeck/quizdeck/internal/audit"
	"github.com/quizdeck/quizdeck/internal/quiz"
)

var (
	ErrAlreadySubmitted = errors.New("quiz already submitted by this student")
	ErrDeadlinePassed   = errors.New("submission deadline has passed")
)

// Service runs the quiz-taking flow: load quiz, refuse duplicates and late
// submissions, score, persist exactly one submission per (quiz, student).
type Service struct {
	subs    Repo
	quizzes quiz.Repo
	audit   *audit.Log
	now     func() time.Time
}

func NewService(subs Repo, quizzes quiz.Repo, auditLog *audit.Log) *Service {
	return &Service{subs: subs, quizzes: quizzes, audit: auditLog, now: time.Now}
}

// WithClock overrides the service clock, for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Take submits answers for a quiz. The pre-existence check keeps the common
// path cheap; the store's uniqueness constraint closes the race between two
// near-simultaneous submissions, so at most one ever lands.
func (s *Service) Take(ctx context.Context, quizID, studentID string, answers AnswerSet) (Submission, error) {
	q, err := s.quizzes.GetByID(ctx, quizID)
	if err != nil {
		return Submission{}, err
	}

	if _, err := s.subs.FindByQuizAndStudent(ctx, quizID, studentID); err == nil {
		return Submission{}, ErrAlreadySubmitted
	} else if !errors.Is(err, ErrNotFound) {
		return Submission{}, fmt.Errorf("check existing submission: %w", err)
	}

	now := s.now()
	if q.Deadline != nil && now.After(*q.Deadline) {
		return Submission{}, ErrDeadlinePassed
	}

	res := Score(q.Questions, answers, q.PassingScore)
	if answers == nil {
		answers = AnswerSet{}
	}
	sub := Submission{
		ID:          uuid.NewString(),
		QuizID:      quizID,
		StudentID:   studentID,
		Answers:     answers,
		Score:       res.Score,
		Passed:      res.Passed,
		Status:      StatusSubmitted,
		SubmittedAt: now.UTC(),
	}
	if err := s.subs.Create(ctx, sub); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return Submission{}, ErrAlreadySubmitted
		}
		return Submission{}, err
	}
	s.audit.Record(ctx, audit.EventSubmissionCreated, sub.ID, map[string]any{
		"quiz_id": quizID, "student_id": studentID, "score": sub.Score, "passed": sub.Passed,
	})
	return sub, nil
}

// StatusFor reports whether the student has already submitted this quiz,
// used by the taking flow's entry check.
func (s *Service) StatusFor(ctx context.Context, quizID, studentID string) (Submission, bool, error) {
	sub, err := s.subs.FindByQuizAndStudent(ctx, quizID, studentID)
	if errors.Is(err, ErrNotFound) {
		return Submission{}, false, nil
	}
	if err != nil {
		return Submission{}, false, err
	}
	return sub, true, nil
}
