package submission

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizdeck/quizdeck/internal/account"
	"github.com/quizdeck/quizdeck/internal/quiz"
)

type gradingFixture struct {
	subs     *MemoryStore
	quizzes  *quiz.MemoryStore
	accounts *account.MemoryStore
	svc      *GradingService
}

func newGradingFixture(t *testing.T) *gradingFixture {
	t.Helper()
	f := &gradingFixture{
		subs:     NewMemoryStore(),
		quizzes:  quiz.NewMemoryStore(),
		accounts: account.NewMemoryStore(),
	}
	f.svc = NewGradingService(f.subs, f.quizzes, f.accounts, nil)
	return f
}

func (f *gradingFixture) addSubmission(t *testing.T, id, quizID, studentID string) {
	t.Helper()
	require.NoError(t, f.subs.Create(context.Background(), Submission{
		ID: id, QuizID: quizID, StudentID: studentID,
		Status: StatusSubmitted, SubmittedAt: time.Now(),
	}))
}

func TestGrade_SetsGradeFeedbackAndStatus(t *testing.T) {
	f := newGradingFixture(t)
	f.addSubmission(t, "sub-1", "quiz-1", "student-1")

	graded, err := f.svc.Grade(context.Background(), "sub-1", 85, "good work")
	require.NoError(t, err)

	require.NotNil(t, graded.Grade)
	assert.Equal(t, 85, *graded.Grade)
	assert.Equal(t, "good work", graded.Feedback)
	assert.Equal(t, StatusGraded, graded.Status)
	require.NotNil(t, graded.GradedAt)
}

func TestGrade_RegradingOverwrites(t *testing.T) {
	f := newGradingFixture(t)
	f.addSubmission(t, "sub-1", "quiz-1", "student-1")

	_, err := f.svc.Grade(context.Background(), "sub-1", 85, "first pass")
	require.NoError(t, err)
	graded, err := f.svc.Grade(context.Background(), "sub-1", 40, "second pass")
	require.NoError(t, err)

	assert.Equal(t, 40, *graded.Grade)
	assert.Equal(t, "second pass", graded.Feedback)
	assert.Equal(t, StatusGraded, graded.Status)
}

func TestGrade_RejectsOutOfRange(t *testing.T) {
	f := newGradingFixture(t)
	f.addSubmission(t, "sub-1", "quiz-1", "student-1")

	_, err := f.svc.Grade(context.Background(), "sub-1", -1, "")
	assert.ErrorIs(t, err, ErrGradeOutOfRange)
	_, err = f.svc.Grade(context.Background(), "sub-1", 101, "")
	assert.ErrorIs(t, err, ErrGradeOutOfRange)

	// The record stays untouched.
	sub, err := f.subs.GetByID(context.Background(), "sub-1")
	require.NoError(t, err)
	assert.Nil(t, sub.Grade)
	assert.Equal(t, StatusSubmitted, sub.Status)
}

func TestGrade_UnknownSubmission(t *testing.T) {
	f := newGradingFixture(t)
	_, err := f.svc.Grade(context.Background(), "nope", 50, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListForInstructor_JoinsStudentAndQuiz(t *testing.T) {
	f := newGradingFixture(t)
	require.NoError(t, f.quizzes.Create(context.Background(), quiz.Quiz{
		ID: "quiz-1", InstructorID: "inst-1", Title: "Intro",
	}))
	require.NoError(t, f.accounts.Create(context.Background(), account.Account{
		ID: "student-1", Name: "Ada", Email: "ada@example.com", Role: account.RoleStudent,
	}))
	f.addSubmission(t, "sub-1", "quiz-1", "student-1")
	f.addSubmission(t, "sub-2", "quiz-1", "ghost-student")
	// Not the instructor's quiz: excluded.
	require.NoError(t, f.quizzes.Create(context.Background(), quiz.Quiz{
		ID: "quiz-other", InstructorID: "inst-2",
	}))
	f.addSubmission(t, "sub-3", "quiz-other", "student-1")

	entries, err := f.svc.ListForInstructor(context.Background(), "inst-1")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	byID := map[string]GradingEntry{}
	for _, e := range entries {
		byID[e.Submission.ID] = e
	}
	assert.Equal(t, "Ada", byID["sub-1"].StudentName)
	assert.Equal(t, "Intro", byID["sub-1"].Quiz.Title)
	assert.False(t, byID["sub-1"].QuizDeleted)
	assert.Equal(t, "Unknown Student", byID["sub-2"].StudentName)
}

func TestListForInstructor_NoQuizzes(t *testing.T) {
	f := newGradingFixture(t)
	entries, err := f.svc.ListForInstructor(context.Background(), "inst-1")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestListForQuiz_DeletedQuizPlaceholder(t *testing.T) {
	f := newGradingFixture(t)
	f.addSubmission(t, "sub-1", "quiz-gone", "student-1")

	entries, err := f.svc.ListForQuiz(context.Background(), "quiz-gone")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].QuizDeleted)
	assert.Equal(t, "Deleted Quiz", entries[0].Quiz.Title)
	assert.Empty(t, entries[0].Quiz.Questions)
}

func TestOwnsSubmission(t *testing.T) {
	f := newGradingFixture(t)
	require.NoError(t, f.quizzes.Create(context.Background(), quiz.Quiz{
		ID: "quiz-1", InstructorID: "inst-1",
	}))
	f.addSubmission(t, "sub-1", "quiz-1", "student-1")
	f.addSubmission(t, "sub-2", "quiz-gone", "student-1")

	ok, err := f.svc.OwnsSubmission(context.Background(), "inst-1", "sub-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.svc.OwnsSubmission(context.Background(), "inst-2", "sub-1")
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleted quiz: remains reachable from the grading listing.
	ok, err = f.svc.OwnsSubmission(context.Background(), "inst-2", "sub-2")
	require.NoError(t, err)
	assert.True(t, ok)
}
