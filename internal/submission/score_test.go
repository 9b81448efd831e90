package submission

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quizdeck/quizdeck/internal/quiz"
)

func TestScore_AllCorrect(t *testing.T) {
	qs := []quiz.Question{
		quiz.MultipleChoice{Text: "2+2?", Options: []string{"3", "4"}, Correct: 1, Points: 2},
		quiz.TrueFalse{Text: "Sky is blue", Correct: 0, Points: 3},
		quiz.FreeText{Text: "Capital of France", Reference: "Paris", Points: 5},
	}
	answers := AnswerSet{
		0: ChoiceAnswer(1),
		1: ChoiceAnswer(0),
		2: TextAnswer("Paris"),
	}

	r := Score(qs, answers, 60)
	assert.Equal(t, 10, r.Earned)
	assert.Equal(t, 10, r.Total)
	assert.Equal(t, 100.0, r.Score)
	assert.True(t, r.Passed)
}

func TestScore_PartialCredit(t *testing.T) {
	qs := []quiz.Question{
		quiz.MultipleChoice{Text: "q1", Options: []string{"a", "b"}, Correct: 0, Points: 3},
		quiz.MultipleChoice{Text: "q2", Options: []string{"a", "b"}, Correct: 1, Points: 1},
	}
	r := Score(qs, AnswerSet{0: ChoiceAnswer(0), 1: ChoiceAnswer(0)}, 60)

	assert.Equal(t, 3, r.Earned)
	assert.Equal(t, 4, r.Total)
	assert.InDelta(t, 75.0, r.Score, 1e-9)
	assert.True(t, r.Passed)
}

func TestScore_PassingBoundaryIsInclusive(t *testing.T) {
	qs := []quiz.Question{
		quiz.TrueFalse{Text: "a", Correct: 0, Points: 1},
		quiz.TrueFalse{Text: "b", Correct: 0, Points: 1},
	}
	// One of two: exactly 50%.
	r := Score(qs, AnswerSet{0: ChoiceAnswer(0), 1: ChoiceAnswer(1)}, 50)
	assert.Equal(t, 50.0, r.Score)
	assert.True(t, r.Passed)

	r = Score(qs, AnswerSet{0: ChoiceAnswer(0), 1: ChoiceAnswer(1)}, 51)
	assert.False(t, r.Passed)
}

func TestScore_TrueFalseIndexMatching(t *testing.T) {
	qs := []quiz.Question{quiz.TrueFalse{Text: "Go has generics", Correct: 0, Points: 1}}

	// Index 0 means "true"; answering 0 against a correct answer of 0 scores.
	r := Score(qs, AnswerSet{0: ChoiceAnswer(0)}, 60)
	assert.Equal(t, 100.0, r.Score)

	// Answering 1 against correct 0 does not.
	r = Score(qs, AnswerSet{0: ChoiceAnswer(1)}, 60)
	assert.Equal(t, 0.0, r.Score)
}

func TestScore_FreeTextExactMatch(t *testing.T) {
	qs := []quiz.Question{quiz.FreeText{Text: "q", Reference: "Paris", Points: 2}}

	r := Score(qs, AnswerSet{0: TextAnswer("Paris")}, 60)
	assert.Equal(t, 2, r.Earned)

	// Case and whitespace matter.
	r = Score(qs, AnswerSet{0: TextAnswer("paris")}, 60)
	assert.Equal(t, 0, r.Earned)
	r = Score(qs, AnswerSet{0: TextAnswer(" Paris")}, 60)
	assert.Equal(t, 0, r.Earned)
}

func TestScore_TextAnswerNeverMatchesChoiceQuestion(t *testing.T) {
	qs := []quiz.Question{quiz.MultipleChoice{Text: "q", Options: []string{"0", "1"}, Correct: 0, Points: 1}}
	r := Score(qs, AnswerSet{0: TextAnswer("0")}, 60)
	assert.Equal(t, 0, r.Earned)
}

func TestScore_MissingAnswersEarnNothing(t *testing.T) {
	qs := []quiz.Question{
		quiz.TrueFalse{Text: "a", Correct: 0, Points: 4},
		quiz.TrueFalse{Text: "b", Correct: 0, Points: 4},
	}
	r := Score(qs, AnswerSet{1: ChoiceAnswer(0)}, 60)
	assert.Equal(t, 4, r.Earned)
	assert.Equal(t, 8, r.Total)
}

func TestScore_ZeroPointsCountAsOne(t *testing.T) {
	qs := []quiz.Question{
		quiz.TrueFalse{Text: "a", Correct: 0, Points: 0},
		quiz.TrueFalse{Text: "b", Correct: 0},
	}
	r := Score(qs, AnswerSet{0: ChoiceAnswer(0)}, 50)
	assert.Equal(t, 1, r.Earned)
	assert.Equal(t, 2, r.Total)
	assert.Equal(t, 50.0, r.Score)
}

func TestScore_NoQuestions(t *testing.T) {
	r := Score(nil, AnswerSet{}, 60)
	assert.Equal(t, 0.0, r.Score)
	assert.False(t, r.Passed)
}

func TestScore_NilAnswerSet(t *testing.T) {
	qs := []quiz.Question{quiz.TrueFalse{Text: "a", Correct: 0, Points: 1}}
	r := Score(qs, nil, 60)
	assert.Equal(t, 0, r.Earned)
	assert.Equal(t, 1, r.Total)
	assert.False(t, r.Passed)
}
