package quiz

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrNoQuestions      = errors.New("quiz needs at least one question")
	ErrEmptyQuestion    = errors.New("question text is empty")
	ErrEmptyOption      = errors.New("multiple-choice option is empty")
	ErrBadCorrectIndex  = errors.New("correct answer index out of range")
	ErrBadPoints        = errors.New("question points must be at least 1")
	ErrBadPassingScore  = errors.New("passing score must be between 0 and 100")
	ErrAlreadyPublished = errors.New("draft already published")
)

const defaultPassingScore = 60

// Draft accumulates a quiz across the authoring steps (details, questions,
// preview). Nothing is persisted until Publish; a rejected AddQuestion
// leaves the draft unchanged.
type Draft struct {
	Title        string
	Description  string
	PassingScore int // 0 means unset; Publish defaults it
	Deadline     *time.Time
	Settings     Settings

	questions []Question
	published bool
}

// AddQuestion validates q and appends it. Empty question text, an empty
// multiple-choice option, an out-of-range correct index, or points < 1
// reject the question.
func (d *Draft) AddQuestion(q Question) error {
	if strings.TrimSpace(q.Prompt()) == "" {
		return ErrEmptyQuestion
	}
	if q.PointValue() < 1 {
		return ErrBadPoints
	}
	switch v := q.(type) {
	case MultipleChoice:
		if len(v.Options) == 0 {
			return ErrEmptyOption
		}
		for _, opt := range v.Options {
			if strings.TrimSpace(opt) == "" {
				return ErrEmptyOption
			}
		}
		if v.Correct < 0 || v.Correct >= len(v.Options) {
			return ErrBadCorrectIndex
		}
	case TrueFalse:
		if v.Correct != 0 && v.Correct != 1 {
			return ErrBadCorrectIndex
		}
	case FreeText:
		// reference answer may legitimately be empty
	}
	d.questions = append(d.questions, q)
	return nil
}

// RemoveQuestion drops the question at index i, if present.
func (d *Draft) RemoveQuestion(i int) {
	if i < 0 || i >= len(d.questions) {
		return
	}
	d.questions = append(d.questions[:i], d.questions[i+1:]...)
}

func (d *Draft) Questions() []Question { return d.questions }

// Publish normalizes the draft and returns the quiz to persist, stamped
// with the owning instructor, creation time, and active status. An empty
// question list is rejected. A draft publishes at most once.
func (d *Draft) Publish(id, instructorID string, now time.Time) (Quiz, error) {
	if d.published {
		return Quiz{}, ErrAlreadyPublished
	}
	if len(d.questions) == 0 {
		return Quiz{}, ErrNoQuestions
	}
	passing := d.PassingScore
	if passing == 0 {
		passing = defaultPassingScore
	}
	if passing < 0 || passing > 100 {
		return Quiz{}, ErrBadPassingScore
	}
	d.published = true
	return Quiz{
		ID:           id,
		InstructorID: instructorID,
		Title:        d.Title,
		Description:  d.Description,
		Questions:    d.questions,
		PassingScore: passing,
		Deadline:     d.Deadline,
		Settings:     d.Settings,
		Status:       StatusActive,
		CreatedAt:    now.UTC(),
	}, nil
}
