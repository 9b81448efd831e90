package quiz

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraft_AddQuestionValidation(t *testing.T) {
	tests := []struct {
		name string
		q    Question
		want error
	}{
		{"empty text", MultipleChoice{Text: "  ", Options: []string{"a"}, Points: 1}, ErrEmptyQuestion},
		{"zero points", TrueFalse{Text: "q", Points: 0}, ErrBadPoints},
		{"no options", MultipleChoice{Text: "q", Points: 1}, ErrEmptyOption},
		{"blank option", MultipleChoice{Text: "q", Options: []string{"a", " "}, Points: 1}, ErrEmptyOption},
		{"correct out of range", MultipleChoice{Text: "q", Options: []string{"a", "b"}, Correct: 2, Points: 1}, ErrBadCorrectIndex},
		{"negative correct", MultipleChoice{Text: "q", Options: []string{"a"}, Correct: -1, Points: 1}, ErrBadCorrectIndex},
		{"true-false bad index", TrueFalse{Text: "q", Correct: 2, Points: 1}, ErrBadCorrectIndex},
		{"valid mc", MultipleChoice{Text: "q", Options: []string{"a", "b"}, Correct: 1, Points: 1}, nil},
		{"valid free text, empty reference", FreeText{Text: "q", Points: 1}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Draft
			err := d.AddQuestion(tt.q)
			if tt.want == nil {
				assert.NoError(t, err)
				assert.Len(t, d.Questions(), 1)
			} else {
				assert.ErrorIs(t, err, tt.want)
				assert.Empty(t, d.Questions())
			}
		})
	}
}

func TestDraft_RemoveQuestion(t *testing.T) {
	var d Draft
	require.NoError(t, d.AddQuestion(TrueFalse{Text: "first", Points: 1}))
	require.NoError(t, d.AddQuestion(TrueFalse{Text: "second", Points: 1}))

	d.RemoveQuestion(0)
	require.Len(t, d.Questions(), 1)
	assert.Equal(t, "second", d.Questions()[0].Prompt())

	// Out-of-range removals are no-ops.
	d.RemoveQuestion(5)
	d.RemoveQuestion(-1)
	assert.Len(t, d.Questions(), 1)
}

func TestDraft_PublishRejectsEmpty(t *testing.T) {
	var d Draft
	_, err := d.Publish("id", "inst", time.Now())
	assert.ErrorIs(t, err, ErrNoQuestions)
}

func TestDraft_PublishDefaultsAndStamps(t *testing.T) {
	now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	d := Draft{Title: "Intro"}
	require.NoError(t, d.AddQuestion(TrueFalse{Text: "q", Points: 1}))

	q, err := d.Publish("quiz-1", "inst-1", now)
	require.NoError(t, err)
	assert.Equal(t, "quiz-1", q.ID)
	assert.Equal(t, "inst-1", q.InstructorID)
	assert.Equal(t, 60, q.PassingScore)
	assert.Equal(t, StatusActive, q.Status)
	assert.Equal(t, now, q.CreatedAt)

	_, err = d.Publish("quiz-2", "inst-1", now)
	assert.ErrorIs(t, err, ErrAlreadyPublished)
}

func TestDraft_PublishValidatesPassingScore(t *testing.T) {
	d := Draft{PassingScore: 101}
	require.NoError(t, d.AddQuestion(TrueFalse{Text: "q", Points: 1}))
	_, err := d.Publish("id", "inst", time.Now())
	assert.ErrorIs(t, err, ErrBadPassingScore)
}
