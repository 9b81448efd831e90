package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/quizdeck/quizdeck/internal/audit"
	"github.com/quizdeck/quizdeck/internal/auth"
	"github.com/quizdeck/quizdeck/internal/quiz"
	"github.com/quizdeck/quizdeck/internal/submission"
)

type createQuizReq struct {
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	Questions    []quiz.QuestionDoc `json:"questions"`
	PassingScore int                `json:"passingScore"`
	Deadline     *time.Time         `json:"deadline"`
	Settings     quiz.Settings      `json:"settings"`
}

type quizResp struct {
	ID           string             `json:"id"`
	InstructorID string             `json:"instructorId"`
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	Questions    []quiz.QuestionDoc `json:"questions"`
	PassingScore int                `json:"passingScore"`
	Deadline     *time.Time         `json:"deadline,omitempty"`
	Settings     quiz.Settings      `json:"settings"`
	Status       string             `json:"status"`
	CreatedAt    time.Time          `json:"createdAt"`
}

// toQuizResp renders a quiz. Answer keys are included only for the owning
// instructor; students get the key-stripped view.
func toQuizResp(q quiz.Quiz, includeKeys bool) quizResp {
	return quizResp{
		ID:           q.ID,
		InstructorID: q.InstructorID,
		Title:        q.Title,
		Description:  q.Description,
		Questions:    quiz.Docs(q.Questions, includeKeys),
		PassingScore: q.PassingScore,
		Deadline:     q.Deadline,
		Settings:     q.Settings,
		Status:       q.Status,
		CreatedAt:    q.CreatedAt,
	}
}

// POST /quizzes
// Publishes a quiz in one write: the draft is accumulated client-side and
// validated/normalized here before anything is persisted.
func CreateQuizHandler(quizzes quiz.Repo, auditLog *audit.Log) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createQuizReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}

		d := quiz.Draft{
			Title:        req.Title,
			Description:  req.Description,
			PassingScore: req.PassingScore,
			Deadline:     req.Deadline,
			Settings:     req.Settings,
		}
		for _, doc := range req.Questions {
			q, err := quiz.FromDoc(doc)
			if err != nil {
				http.Error(w, err.Error(), http.StatusUnprocessableEntity)
				return
			}
			if err := d.AddQuestion(q); err != nil {
				writeError(w, err)
				return
			}
		}

		instructorID := auth.SubjectFromContext(r.Context())
		published, err := d.Publish(uuid.NewString(), instructorID, time.Now())
		if err != nil {
			writeError(w, err)
			return
		}
		if err := quizzes.Create(r.Context(), published); err != nil {
			writeError(w, err)
			return
		}
		auditLog.Record(r.Context(), audit.EventQuizPublished, published.ID, map[string]any{
			"instructor_id": instructorID, "questions": len(published.Questions),
		})
		writeJSON(w, http.StatusCreated, toQuizResp(published, true))
	}
}

// GET /quizzes/{quizID}
func GetQuizHandler(quizzes quiz.Repo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := quizzes.GetByID(r.Context(), chi.URLParam(r, "quizID"))
		if err != nil {
			writeError(w, err)
			return
		}
		owner := q.InstructorID == auth.SubjectFromContext(r.Context())
		writeJSON(w, http.StatusOK, toQuizResp(q, owner))
	}
}

// GET /quizzes returns the caller's own quizzes.
func ListQuizzesHandler(quizzes quiz.Repo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := quizzes.ListByInstructor(r.Context(), auth.SubjectFromContext(r.Context()))
		if err != nil {
			writeError(w, err)
			return
		}
		out := make([]quizResp, 0, len(list))
		for _, q := range list {
			out = append(out, toQuizResp(q, true))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

type deleteQuizResp struct {
	Deleted              string `json:"deleted"`
	RemainingSubmissions int    `json:"remainingSubmissions"`
}

// DELETE /quizzes/{quizID}
// Owner-only. Submissions for the deleted quiz are not removed; the
// response reports the submission count across the quizzes that remain.
func DeleteQuizHandler(quizzes quiz.Repo, subs submission.Repo, auditLog *audit.Log) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "quizID")
		instructorID := auth.SubjectFromContext(r.Context())

		q, err := quizzes.GetByID(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		if q.InstructorID != instructorID {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		if err := quizzes.Delete(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}
		auditLog.Record(r.Context(), audit.EventQuizDeleted, id, map[string]any{
			"instructor_id": instructorID,
		})

		remaining, err := quizzes.ListByInstructor(r.Context(), instructorID)
		if err != nil {
			writeError(w, err)
			return
		}
		count := 0
		if len(remaining) > 0 {
			ids := make([]string, len(remaining))
			for i, rq := range remaining {
				ids[i] = rq.ID
			}
			if count, err = subs.CountByQuizIDs(r.Context(), ids); err != nil {
				writeError(w, err)
				return
			}
		}
		writeJSON(w, http.StatusOK, deleteQuizResp{Deleted: id, RemainingSubmissions: count})
	}
}
