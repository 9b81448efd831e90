// Package http binds the quiz, submission, and grading flows onto a chi
// router behind JWT auth and role-based permissions.
package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/quizdeck/quizdeck/internal/account"
	"github.com/quizdeck/quizdeck/internal/audit"
	"github.com/quizdeck/quizdeck/internal/auth"
	"github.com/quizdeck/quizdeck/internal/cache"
	"github.com/quizdeck/quizdeck/internal/quiz"
	"github.com/quizdeck/quizdeck/internal/rbac"
	"github.com/quizdeck/quizdeck/internal/submission"
)

type Deps struct {
	Accounts account.Repo
	Quizzes  quiz.Repo
	Subs     submission.Repo
	Taking   *submission.Service
	Grading  *submission.GradingService
	Auth     *auth.Service
	Roles    cache.RoleCache
	Audit    *audit.Log

	CORSOrigins []string
}

// NewRouter assembles the full HTTP surface.
func NewRouter(d Deps) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	origins := d.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/signup", auth.SignupHandler(d.Accounts, d.Auth))
	r.Post("/auth/login", auth.LoginHandler(d.Accounts, d.Auth))

	// Protected API (JWT → authoritative role in context → permissions)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(d.Auth))
		pr.Use(auth.AttachRole(d.Accounts, d.Roles))

		pr.Get("/auth/me", auth.MeHandler(d.Accounts))

		// Instructor: author and manage quizzes
		pr.With(rbac.Require("quiz:create")).
			Post("/quizzes", CreateQuizHandler(d.Quizzes, d.Audit))
		pr.With(rbac.Require("quiz:create")).
			Get("/quizzes", ListQuizzesHandler(d.Quizzes))
		pr.With(rbac.Require("quiz:delete-own")).
			Delete("/quizzes/{quizID}", DeleteQuizHandler(d.Quizzes, d.Subs, d.Audit))

		// Any holder of the quiz id may view it (students see no keys)
		pr.With(rbac.Require("quiz:view")).
			Get("/quizzes/{quizID}", GetQuizHandler(d.Quizzes))

		// Student: take quizzes, see own submissions
		pr.With(rbac.Require("submission:create")).
			Post("/quizzes/{quizID}/submissions", SubmitQuizHandler(d.Taking))
		pr.With(rbac.Require("submission:create")).
			Get("/quizzes/{quizID}/submissions/me", QuizSubmissionStatusHandler(d.Taking))
		pr.With(rbac.Require("submission:view-own")).
			Get("/submissions", ListMySubmissionsHandler(d.Subs, d.Quizzes, d.Accounts))
		pr.With(rbac.RequireAny("submission:view-own", "submission:view-for-own-quizzes")).
			Get("/submissions/{submissionID}", GetSubmissionHandler(d.Subs, d.Grading))

		// Instructor: grading and dashboard
		pr.With(rbac.Require("submission:view-for-own-quizzes")).
			Get("/grading/submissions", ListGradingHandler(d.Grading))
		pr.With(rbac.Require("submission:grade")).
			Post("/submissions/{submissionID}/grade", GradeSubmissionHandler(d.Grading))
		pr.With(rbac.Require("quiz:create")).
			Get("/dashboard/instructor", InstructorDashboardHandler(d.Quizzes, d.Subs))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	return r
}
