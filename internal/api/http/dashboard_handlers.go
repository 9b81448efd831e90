package http

import (
	"net/http"

	"github.com/quizdeck/quizdeck/internal/auth"
	"github.com/quizdeck/quizdeck/internal/quiz"
	"github.com/quizdeck/quizdeck/internal/submission"
)

type instructorDashboardResp struct {
	Quizzes          []quizResp `json:"quizzes"`
	TotalQuizzes     int        `json:"totalQuizzes"`
	TotalSubmissions int        `json:"totalSubmissions"`
}

// GET /dashboard/instructor: the caller's quizzes plus the submission
// count across them. Read-only; quiz deletion happens through
// DELETE /quizzes/{quizID}, which re-reports the count.
func InstructorDashboardHandler(quizzes quiz.Repo, subs submission.Repo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := quizzes.ListByInstructor(r.Context(), auth.SubjectFromContext(r.Context()))
		if err != nil {
			writeError(w, err)
			return
		}
		resp := instructorDashboardResp{Quizzes: make([]quizResp, 0, len(list)), TotalQuizzes: len(list)}
		ids := make([]string, 0, len(list))
		for _, q := range list {
			resp.Quizzes = append(resp.Quizzes, toQuizResp(q, true))
			ids = append(ids, q.ID)
		}
		if len(ids) > 0 {
			if resp.TotalSubmissions, err = subs.CountByQuizIDs(r.Context(), ids); err != nil {
				writeError(w, err)
				return
			}
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
