package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quizdeck/quizdeck/internal/auth"
	"github.com/quizdeck/quizdeck/internal/quiz"
	"github.com/quizdeck/quizdeck/internal/submission"
)

type gradingEntryResp struct {
	Submission  submissionResp  `json:"submission"`
	StudentName string          `json:"studentName"`
	Quiz        gradingQuizResp `json:"quiz"`
}

type gradingQuizResp struct {
	ID        string             `json:"id"`
	Title     string             `json:"title"`
	Questions []quiz.QuestionDoc `json:"questions"`
	Deleted   bool               `json:"deleted,omitempty"`
}

func toGradingEntryResp(e submission.GradingEntry) gradingEntryResp {
	return gradingEntryResp{
		Submission:  toSubmissionResp(e.Submission),
		StudentName: e.StudentName,
		Quiz: gradingQuizResp{
			ID:        e.Quiz.ID,
			Title:     e.Quiz.Title,
			Questions: quiz.Docs(e.Quiz.Questions, true), // graders see the keys
			Deleted:   e.QuizDeleted,
		},
	}
}

// GET /grading/submissions: every submission for the caller's quizzes,
// each with the student name and the quiz for side-by-side display.
// Optional ?quiz_id= narrows to one quiz (deleted quizzes included).
func ListGradingHandler(grading *submission.GradingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			entries []submission.GradingEntry
			err     error
		)
		if quizID := r.URL.Query().Get("quiz_id"); quizID != "" {
			entries, err = grading.ListForQuiz(r.Context(), quizID)
		} else {
			entries, err = grading.ListForInstructor(r.Context(), auth.SubjectFromContext(r.Context()))
		}
		if err != nil {
			writeError(w, err)
			return
		}
		out := make([]gradingEntryResp, 0, len(entries))
		for _, e := range entries {
			out = append(out, toGradingEntryResp(e))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

type gradeReq struct {
	Grade    int    `json:"grade"`
	Feedback string `json:"feedback"`
}

// POST /submissions/{submissionID}/grade
// Re-grading is allowed and overwrites the previous grade.
func GradeSubmissionHandler(grading *submission.GradingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "submissionID")
		var req gradeReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		owns, err := grading.OwnsSubmission(r.Context(), auth.SubjectFromContext(r.Context()), id)
		if err != nil {
			writeError(w, err)
			return
		}
		if !owns {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		sub, err := grading.Grade(r.Context(), id, req.Grade, req.Feedback)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSubmissionResp(sub))
	}
}
