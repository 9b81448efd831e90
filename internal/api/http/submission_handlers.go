package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/quizdeck/quizdeck/internal/account"
	"github.com/quizdeck/quizdeck/internal/auth"
	"github.com/quizdeck/quizdeck/internal/quiz"
	"github.com/quizdeck/quizdeck/internal/rbac"
	"github.com/quizdeck/quizdeck/internal/submission"
)

type submitReq struct {
	Answers submission.AnswerSet `json:"answers"`
}

type submissionResp struct {
	ID          string               `json:"id"`
	QuizID      string               `json:"quizId"`
	StudentID   string               `json:"studentId"`
	Answers     submission.AnswerSet `json:"answers"`
	Score       float64              `json:"score"`
	Passed      bool                 `json:"passed"`
	Status      string               `json:"status"`
	SubmittedAt time.Time            `json:"submittedAt"`
	Grade       *int                 `json:"grade,omitempty"`
	Feedback    string               `json:"feedback,omitempty"`
	GradedAt    *time.Time           `json:"gradedAt,omitempty"`
}

func toSubmissionResp(s submission.Submission) submissionResp {
	return submissionResp{
		ID:          s.ID,
		QuizID:      s.QuizID,
		StudentID:   s.StudentID,
		Answers:     s.Answers,
		Score:       s.Score,
		Passed:      s.Passed,
		Status:      s.Status,
		SubmittedAt: s.SubmittedAt,
		Grade:       s.Grade,
		Feedback:    s.Feedback,
		GradedAt:    s.GradedAt,
	}
}

// POST /quizzes/{quizID}/submissions
func SubmitQuizHandler(svc *submission.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req submitReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		sub, err := svc.Take(r.Context(), chi.URLParam(r, "quizID"),
			auth.SubjectFromContext(r.Context()), req.Answers)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toSubmissionResp(sub))
	}
}

type submissionStatusResp struct {
	Submitted  bool            `json:"submitted"`
	Submission *submissionResp `json:"submission,omitempty"`
}

// GET /quizzes/{quizID}/submissions/me: the taking flow's entry check.
func QuizSubmissionStatusHandler(svc *submission.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub, found, err := svc.StatusFor(r.Context(), chi.URLParam(r, "quizID"),
			auth.SubjectFromContext(r.Context()))
		if err != nil {
			writeError(w, err)
			return
		}
		resp := submissionStatusResp{Submitted: found}
		if found {
			v := toSubmissionResp(sub)
			resp.Submission = &v
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// GET /submissions/{submissionID}: the submitting student, or an
// instructor who owns the submission's quiz.
func GetSubmissionHandler(subs submission.Repo, grading *submission.GradingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "submissionID")
		sub, err := subs.GetByID(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		viewer := auth.SubjectFromContext(r.Context())
		if sub.StudentID != viewer {
			if rbac.RoleFromContext(r.Context()) != account.RoleInstructor {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			owns, err := grading.OwnsSubmission(r.Context(), viewer, id)
			if err != nil {
				writeError(w, err)
				return
			}
			if !owns {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
		}
		writeJSON(w, http.StatusOK, toSubmissionResp(sub))
	}
}

type studentSubmissionResp struct {
	submissionResp
	Quiz studentQuizSummary `json:"quiz"`
}

type studentQuizSummary struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	PassingScore   int    `json:"passingScore"`
	InstructorName string `json:"instructorName"`
	Deleted        bool   `json:"deleted,omitempty"`
}

// GET /submissions: the student dashboard listing: the caller's
// submissions, each joined with its quiz and the instructor's display
// name. Deleted quizzes and missing instructors degrade to placeholders.
func ListMySubmissionsHandler(subs submission.Repo, quizzes quiz.Repo, accounts account.Repo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		studentID := auth.SubjectFromContext(r.Context())
		list, err := subs.ListByStudent(r.Context(), studentID)
		if err != nil {
			writeError(w, err)
			return
		}

		quizByID := map[string]quiz.Quiz{}
		deleted := map[string]bool{}
		instructorIDs := []string{}
		seenInstructor := map[string]struct{}{}
		for _, s := range list {
			if _, ok := quizByID[s.QuizID]; ok {
				continue
			}
			q, err := quizzes.GetByID(r.Context(), s.QuizID)
			if errors.Is(err, quiz.ErrNotFound) {
				quizByID[s.QuizID] = quiz.DeletedPlaceholder(s.QuizID)
				deleted[s.QuizID] = true
				continue
			}
			if err != nil {
				writeError(w, err)
				return
			}
			quizByID[s.QuizID] = q
			if _, ok := seenInstructor[q.InstructorID]; !ok {
				seenInstructor[q.InstructorID] = struct{}{}
				instructorIDs = append(instructorIDs, q.InstructorID)
			}
		}
		instructors, err := accounts.GetManyByIDs(r.Context(), instructorIDs)
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]studentSubmissionResp, 0, len(list))
		for _, s := range list {
			q := quizByID[s.QuizID]
			summary := studentQuizSummary{
				ID:             q.ID,
				Title:          q.Title,
				Description:    q.Description,
				PassingScore:   q.PassingScore,
				InstructorName: "Unknown Instructor",
				Deleted:        deleted[s.QuizID],
			}
			if a, ok := instructors[q.InstructorID]; ok {
				summary.InstructorName = a.Name
			}
			out = append(out, studentSubmissionResp{
				submissionResp: toSubmissionResp(s),
				Quiz:           summary,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}
