package account

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/quizdeck/quizdeck/internal/db"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) Create(ctx context.Context, a Account) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO accounts (id, name, email, role, password_hash, created_at, last_login, active)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		a.ID, a.Name, a.Email, a.Role, a.PasswordHash,
		a.CreatedAt.Unix(), a.LastLogin.Unix(), a.Active)
	if err != nil && isUniqueViolation(err) {
		return ErrEmailTaken
	}
	return err
}

func (s *SQLStore) GetByID(ctx context.Context, id string) (Account, error) {
	return s.scanOne(s.db.QueryRowContext(ctx,
		`SELECT id, name, email, role, password_hash, created_at, last_login, active
		 FROM accounts WHERE id=$1`, id))
}

func (s *SQLStore) GetByEmail(ctx context.Context, email string) (Account, error) {
	return s.scanOne(s.db.QueryRowContext(ctx,
		`SELECT id, name, email, role, password_hash, created_at, last_login, active
		 FROM accounts WHERE email=$1`, email))
}

func (s *SQLStore) GetManyByIDs(ctx context.Context, ids []string) (map[string]Account, error) {
	out := make(map[string]Account, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	for _, chunk := range db.Chunk(ids, db.MaxInPredicate) {
		args := make([]any, len(chunk))
		for i, id := range chunk {
			args[i] = id
		}
		rows, err := s.db.QueryContext(ctx,
			`SELECT id, name, email, role, password_hash, created_at, last_login, active
			 FROM accounts WHERE id IN (`+db.Placeholders(1, len(chunk))+`)`, args...)
		if err != nil {
			return nil, err
		}
		for rows.Next() {
			a, err := scanAccount(rows)
			if err != nil {
				rows.Close()
				return nil, err
			}
			out[a.ID] = a
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, err
		}
		rows.Close()
	}
	return out, nil
}

func (s *SQLStore) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE accounts SET last_login=$1 WHERE id=$2`, at.Unix(), id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *SQLStore) scanOne(row *sql.Row) (Account, error) {
	a, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Account{}, ErrNotFound
	}
	return a, err
}

func scanAccount(row rowScanner) (Account, error) {
	var a Account
	var created, lastLogin int64
	if err := row.Scan(&a.ID, &a.Name, &a.Email, &a.Role, &a.PasswordHash,
		&created, &lastLogin, &a.Active); err != nil {
		return Account{}, err
	}
	a.CreatedAt = time.Unix(created, 0).UTC()
	a.LastLogin = time.Unix(lastLogin, 0).UTC()
	return a, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || // sqlite
		strings.Contains(msg, "duplicate key") // postgres
}
