package quiz

import "time"

// Kind tags the question variants. The string values match the documents
// the service persists and serves.
type Kind string

const (
	KindMultipleChoice Kind = "multiple-choice"
	KindTrueFalse      Kind = "true-false"
	KindFreeText       Kind = "text"
)

// Question is a tagged union over the three authorable kinds. Modeling the
// variants as distinct types keeps type-specific scoring and rendering
// exhaustive under a type switch.
type Question interface {
	Kind() Kind
	Prompt() string
	PointValue() int
}

type MultipleChoice struct {
	Text    string
	Options []string
	Correct int // index into Options
	Points  int
}

func (q MultipleChoice) Kind() Kind      { return KindMultipleChoice }
func (q MultipleChoice) Prompt() string  { return q.Text }
func (q MultipleChoice) PointValue() int { return q.Points }

type TrueFalse struct {
	Text    string
	Correct int // 0 = true, 1 = false
	Points  int
}

func (q TrueFalse) Kind() Kind      { return KindTrueFalse }
func (q TrueFalse) Prompt() string  { return q.Text }
func (q TrueFalse) PointValue() int { return q.Points }

type FreeText struct {
	Text      string
	Reference string // instructor's reference answer
	Points    int
}

func (q FreeText) Kind() Kind      { return KindFreeText }
func (q FreeText) Prompt() string  { return q.Text }
func (q FreeText) PointValue() int { return q.Points }

type Settings struct {
	RandomizeQuestions bool `json:"randomizeQuestions"`
}

const StatusActive = "active"

type Quiz struct {
	ID           string
	InstructorID string
	Title        string
	Description  string
	Questions    []Question
	PassingScore int
	Deadline     *time.Time
	Settings     Settings
	Status       string
	CreatedAt    time.Time
}

// DeletedPlaceholder stands in for a quiz whose document has been removed.
// Submissions referencing it remain gradeable and listable.
func DeletedPlaceholder(id string) Quiz {
	return Quiz{ID: id, Title: "Deleted Quiz", Questions: []Question{}}
}
