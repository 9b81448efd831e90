package auth

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/quizdeck/quizdeck/internal/account"
)

const bcryptCost = 12

type signupReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResp struct {
	AccessToken string          `json:"access_token"`
	Account     account.Account `json:"account"`
}

// SignupHandler creates an account and issues a session token. The email
// uniqueness pre-check gives a friendly message; the store's unique index
// is what actually holds under concurrency. The requested role is honored
// (student or instructor) and fixed for the account's lifetime.
func SignupHandler(accounts account.Repo, svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req signupReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		req.Email = strings.TrimSpace(strings.ToLower(req.Email))
		if req.Email == "" || req.Password == "" || strings.TrimSpace(req.Name) == "" {
			http.Error(w, "name, email and password required", http.StatusBadRequest)
			return
		}
		if req.Role == "" {
			req.Role = account.RoleStudent
		}
		if !account.ValidRole(req.Role) {
			http.Error(w, "invalid role", http.StatusBadRequest)
			return
		}

		if _, err := accounts.GetByEmail(r.Context(), req.Email); err == nil {
			http.Error(w, "email already in use", http.StatusConflict)
			return
		} else if !errors.Is(err, account.ErrNotFound) {
			http.Error(w, "signup failed", http.StatusInternalServerError)
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
		if err != nil {
			http.Error(w, "signup failed", http.StatusInternalServerError)
			return
		}
		now := time.Now().UTC()
		a := account.Account{
			ID:           uuid.NewString(),
			Name:         strings.TrimSpace(req.Name),
			Email:        req.Email,
			Role:         req.Role,
			PasswordHash: string(hash),
			CreatedAt:    now,
			LastLogin:    now,
			Active:       true,
		}
		if err := accounts.Create(r.Context(), a); err != nil {
			if errors.Is(err, account.ErrEmailTaken) {
				http.Error(w, "email already in use", http.StatusConflict)
				return
			}
			log.Printf("auth: create account: %v", err)
			http.Error(w, "signup failed", http.StatusInternalServerError)
			return
		}
		issueSession(w, svc, a)
	}
}

// LoginHandler verifies credentials, bumps last_login, and issues a token.
func LoginHandler(accounts account.Repo, svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		req.Email = strings.TrimSpace(strings.ToLower(req.Email))

		a, err := accounts.GetByEmail(r.Context(), req.Email)
		if errors.Is(err, account.ErrNotFound) {
			http.Error(w, "invalid email or password", http.StatusUnauthorized)
			return
		}
		if err != nil {
			http.Error(w, "login failed", http.StatusInternalServerError)
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(req.Password)) != nil {
			http.Error(w, "invalid email or password", http.StatusUnauthorized)
			return
		}
		now := time.Now().UTC()
		if err := accounts.UpdateLastLogin(r.Context(), a.ID, now); err != nil {
			log.Printf("auth: update last login for %s: %v", a.ID, err)
		}
		a.LastLogin = now
		issueSession(w, svc, a)
	}
}

// MeHandler returns the current subject's account.
func MeHandler(accounts account.Repo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub := SubjectFromContext(r.Context())
		a, err := accounts.GetByID(r.Context(), sub)
		if errors.Is(err, account.ErrNotFound) {
			http.Error(w, "account not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(a)
	}
}

func issueSession(w http.ResponseWriter, svc *Service, a account.Account) {
	tok, err := svc.IssueToken(a.ID, a.Role)
	if err != nil {
		http.Error(w, "issue token", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(sessionResp{AccessToken: tok, Account: a})
}
