package quiz

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) Create(ctx context.Context, q Quiz) error {
	qj, err := EncodeQuestions(q.Questions)
	if err != nil {
		return err
	}
	sj, err := json.Marshal(q.Settings)
	if err != nil {
		return err
	}
	var deadline sql.NullInt64
	if q.Deadline != nil {
		deadline = sql.NullInt64{Int64: q.Deadline.Unix(), Valid: true}
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO quizzes (id, instructor_id, title, description, questions_json,
		                      passing_score, deadline, settings_json, status, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		q.ID, q.InstructorID, q.Title, q.Description, string(qj),
		q.PassingScore, deadline, string(sj), q.Status, q.CreatedAt.Unix())
	return err
}

func (s *SQLStore) GetByID(ctx context.Context, id string) (Quiz, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, instructor_id, title, description, questions_json,
		        passing_score, deadline, settings_json, status, created_at
		 FROM quizzes WHERE id=$1`, id)

	var q Quiz
	var qjson, sjson string
	var deadline sql.NullInt64
	var created int64
	err := row.Scan(&q.ID, &q.InstructorID, &q.Title, &q.Description, &qjson,
		&q.PassingScore, &deadline, &sjson, &q.Status, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return Quiz{}, ErrNotFound
	}
	if err != nil {
		return Quiz{}, err
	}
	if q.Questions, err = DecodeQuestions([]byte(qjson)); err != nil {
		return Quiz{}, err
	}
	if err := json.Unmarshal([]byte(sjson), &q.Settings); err != nil {
		return Quiz{}, err
	}
	if deadline.Valid {
		t := time.Unix(deadline.Int64, 0).UTC()
		q.Deadline = &t
	}
	q.CreatedAt = time.Unix(created, 0).UTC()
	return q, nil
}

func (s *SQLStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM quizzes WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) ListByInstructor(ctx context.Context, instructorID string) ([]Quiz, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, instructor_id, title, description, questions_json,
		        passing_score, deadline, settings_json, status, created_at
		 FROM quizzes WHERE instructor_id=$1 ORDER BY created_at DESC`, instructorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Quiz{}
	for rows.Next() {
		var q Quiz
		var qjson, sjson string
		var deadline sql.NullInt64
		var created int64
		if err := rows.Scan(&q.ID, &q.InstructorID, &q.Title, &q.Description, &qjson,
			&q.PassingScore, &deadline, &sjson, &q.Status, &created); err != nil {
			return nil, err
		}
		if q.Questions, err = DecodeQuestions([]byte(qjson)); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(sjson), &q.Settings); err != nil {
			return nil, err
		}
		if deadline.Valid {
			t := time.Unix(deadline.Int64, 0).UTC()
			q.Deadline = &t
		}
		q.CreatedAt = time.Unix(created, 0).UTC()
		out = append(out, q)
	}
	return out, rows.Err()
}
