package submission

import "github.com/quizdeck/quizdeck/internal/quiz"

// Result is the outcome of scoring one answer set against a quiz.
type Result struct {
	Earned int
	Total  int
	Score  float64 // 0..100
	Passed bool
}

// Score is a pure function of the quiz's questions, the answer set, and the
// passing threshold. Each question awards its full point value on a strict
// match: index equality for multiple-choice and true/false, exact string
// equality for free text. Point values below 1 count as 1. A quiz whose
// total is zero (no questions) scores 0 and does not pass.
func Score(questions []quiz.Question, answers AnswerSet, passingScore int) Result {
	var r Result
	for i, q := range questions {
		pts := q.PointValue()
		if pts < 1 {
			pts = 1
		}
		r.Total += pts
		a, ok := answers[i]
		if ok && matches(q, a) {
			r.Earned += pts
		}
	}
	if r.Total == 0 {
		return r
	}
	r.Score = float64(r.Earned) / float64(r.Total) * 100
	r.Passed = r.Score >= float64(passingScore)
	return r
}

func matches(q quiz.Question, a Answer) bool {
	switch v := q.(type) {
	case quiz.MultipleChoice:
		return a.IsChoice() && a.Choice == v.Correct
	case quiz.TrueFalse:
		return a.IsChoice() && a.Choice == v.Correct
	case quiz.FreeText:
		return !a.IsChoice() && a.Text == v.Reference
	default:
		return false
	}
}
