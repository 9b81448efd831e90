package quiz

import (
	"encoding/json"
	"fmt"
)

// QuestionDoc is the persisted and served JSON shape of a question:
//
//	{"type":"multiple-choice","text":"...","points":2,
//	 "options":["a","b"],"correctAnswer":1,"textAnswer":null}
//
// CorrectAnswer and TextAnswer are pointers so key-stripped views can omit
// them entirely instead of leaking a zero value.
type QuestionDoc struct {
	Type          Kind     `json:"type"`
	Text          string   `json:"text"`
	Points        int      `json:"points"`
	Options       []string `json:"options"`
	CorrectAnswer *int     `json:"correctAnswer,omitempty"`
	TextAnswer    *string  `json:"textAnswer,omitempty"`
}

// Docs converts questions to their document form. When includeKeys is false
// the answer key fields are stripped, the view served to students.
func Docs(qs []Question, includeKeys bool) []QuestionDoc {
	out := make([]QuestionDoc, 0, len(qs))
	for _, q := range qs {
		d := QuestionDoc{Type: q.Kind(), Text: q.Prompt(), Points: q.PointValue(), Options: []string{}}
		switch v := q.(type) {
		case MultipleChoice:
			d.Options = v.Options
			if includeKeys {
				c := v.Correct
				d.CorrectAnswer = &c
			}
		case TrueFalse:
			if includeKeys {
				c := v.Correct
				d.CorrectAnswer = &c
			}
		case FreeText:
			if includeKeys {
				ref := v.Reference
				d.TextAnswer = &ref
			}
		}
		out = append(out, d)
	}
	return out
}

// FromDoc rebuilds the typed variant from its document form.
func FromDoc(d QuestionDoc) (Question, error) {
	switch d.Type {
	case KindMultipleChoice:
		correct := 0
		if d.CorrectAnswer != nil {
			correct = *d.CorrectAnswer
		}
		return MultipleChoice{Text: d.Text, Options: d.Options, Correct: correct, Points: d.Points}, nil
	case KindTrueFalse:
		correct := 0
		if d.CorrectAnswer != nil {
			correct = *d.CorrectAnswer
		}
		return TrueFalse{Text: d.Text, Correct: correct, Points: d.Points}, nil
	case KindFreeText:
		ref := ""
		if d.TextAnswer != nil {
			ref = *d.TextAnswer
		}
		return FreeText{Text: d.Text, Reference: ref, Points: d.Points}, nil
	default:
		return nil, fmt.Errorf("unknown question type %q", d.Type)
	}
}

// EncodeQuestions serializes questions (with answer keys) for storage.
func EncodeQuestions(qs []Question) ([]byte, error) {
	return json.Marshal(Docs(qs, true))
}

// DecodeQuestions is the inverse of EncodeQuestions.
func DecodeQuestions(data []byte) ([]Question, error) {
	var docs []QuestionDoc
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, err
	}
	out := make([]Question, 0, len(docs))
	for i, d := range docs {
		q, err := FromDoc(d)
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i, err)
		}
		out = append(out, q)
	}
	return out, nil
}
