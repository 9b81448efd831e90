package submission

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	StatusSubmitted = "submitted"
	StatusGraded    = "graded"
)

// Answer is one response: a selected option index for multiple-choice and
// true/false questions, or free text. Exactly one of the two is set;
// Choice is -1 for text answers.
type Answer struct {
	Choice int
	Text   string
}

func ChoiceAnswer(i int) Answer  { return Answer{Choice: i} }
func TextAnswer(s string) Answer { return Answer{Choice: -1, Text: s} }

func (a Answer) IsChoice() bool { return a.Choice >= 0 }

// MarshalJSON keeps the original document shape: a bare number for choice
// answers, a bare string for text answers.
func (a Answer) MarshalJSON() ([]byte, error) {
	if a.IsChoice() {
		return json.Marshal(a.Choice)
	}
	return json.Marshal(a.Text)
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*a = ChoiceAnswer(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = TextAnswer(s)
		return nil
	}
	return fmt.Errorf("answer must be a number or a string, got %s", data)
}

// AnswerSet maps question index to answer. Unanswered questions are absent.
type AnswerSet map[int]Answer

type Submission struct {
	ID          string
	QuizID      string
	StudentID   string
	Answers     AnswerSet
	Score       float64
	Passed      bool
	Status      string
	SubmittedAt time.Time

	// Set once graded.
	Grade    *int
	Feedback string
	GradedAt *time.Time
}
