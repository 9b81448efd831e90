package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/quizdeck/quizdeck/internal/account"
	"github.com/quizdeck/quizdeck/internal/quiz"
	"github.com/quizdeck/quizdeck/internal/submission"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error string `json:"error"`
}

// writeError maps domain errors onto the HTTP taxonomy: auth failures 401,
// conflicts 409, not-found 404, validation failures 422, everything else a
// logged generic 500. No failure is fatal; callers may retry manually.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, quiz.ErrNotFound),
		errors.Is(err, submission.ErrNotFound),
		errors.Is(err, account.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
	case errors.Is(err, submission.ErrAlreadySubmitted),
		errors.Is(err, submission.ErrDuplicate),
		errors.Is(err, account.ErrEmailTaken):
		writeJSON(w, http.StatusConflict, errorBody{Error: err.Error()})
	case errors.Is(err, submission.ErrDeadlinePassed),
		errors.Is(err, submission.ErrGradeOutOfRange),
		errors.Is(err, quiz.ErrNoQuestions),
		errors.Is(err, quiz.ErrEmptyQuestion),
		errors.Is(err, quiz.ErrEmptyOption),
		errors.Is(err, quiz.ErrBadCorrectIndex),
		errors.Is(err, quiz.ErrBadPoints),
		errors.Is(err, quiz.ErrBadPassingScore):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: err.Error()})
	default:
		log.Printf("http: internal error: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}
