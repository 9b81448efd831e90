package submission

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/quizdeck/quizdeck/internal/db"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

const submissionCols = `id, quiz_id, student_id, answers_json, score, passed,
	status, submitted_at, grade, feedback, graded_at`

func (s *SQLStore) Create(ctx context.Context, sub Submission) error {
	aj, err := json.Marshal(sub.Answers)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO submissions (id, quiz_id, student_id, answers_json, score, passed,
		                          status, submitted_at, feedback)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		sub.ID, sub.QuizID, sub.StudentID, string(aj), sub.Score, sub.Passed,
		sub.Status, sub.SubmittedAt.Unix(), sub.Feedback)
	if err != nil && isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (s *SQLStore) GetByID(ctx context.Context, id string) (Submission, error) {
	return s.scanOne(s.db.QueryRowContext(ctx,
		`SELECT `+submissionCols+` FROM submissions WHERE id=$1`, id))
}

func (s *SQLStore) FindByQuizAndStudent(ctx context.Context, quizID, studentID string) (Submission, error) {
	return s.scanOne(s.db.QueryRowContext(ctx,
		`SELECT `+submissionCols+` FROM submissions WHERE quiz_id=$1 AND student_id=$2`,
		quizID, studentID))
}

func (s *SQLStore) ListByStudent(ctx context.Context, studentID string) ([]Submission, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+submissionCols+` FROM submissions
		 WHERE student_id=$1 ORDER BY submitted_at DESC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

func (s *SQLStore) ListByQuizIDs(ctx context.Context, quizIDs []string) ([]Submission, error) {
	out := []Submission{}
	for _, chunk := range db.Chunk(quizIDs, db.MaxInPredicate) {
		args := make([]any, len(chunk))
		for i, id := range chunk {
			args[i] = id
		}
		rows, err := s.db.QueryContext(ctx,
			`SELECT `+submissionCols+` FROM submissions
			 WHERE quiz_id IN (`+db.Placeholders(1, len(chunk))+`)
			 ORDER BY submitted_at DESC`, args...)
		if err != nil {
			return nil, err
		}
		subs, err := collect(rows)
		rows.Close()
		if err != nil {
			return nil, err
		}
		out = append(out, subs...)
	}
	return out, nil
}

func (s *SQLStore) CountByQuizIDs(ctx context.Context, quizIDs []string) (int, error) {
	total := 0
	for _, chunk := range db.Chunk(quizIDs, db.MaxInPredicate) {
		args := make([]any, len(chunk))
		for i, id := range chunk {
			args[i] = id
		}
		var n int
		err := s.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM submissions WHERE quiz_id IN (`+db.Placeholders(1, len(chunk))+`)`,
			args...).Scan(&n)
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

func (s *SQLStore) ApplyGrade(ctx context.Context, id string, grade int, feedback string, at time.Time) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE submissions SET grade=$1, feedback=$2, status=$3, graded_at=$4 WHERE id=$5`,
		grade, feedback, StatusGraded, at.Unix(), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *SQLStore) scanOne(row *sql.Row) (Submission, error) {
	sub, err := scanSubmission(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Submission{}, ErrNotFound
	}
	return sub, err
}

func scanSubmission(row rowScanner) (Submission, error) {
	var sub Submission
	var ajson string
	var submitted int64
	var grade sql.NullInt64
	var gradedAt sql.NullInt64
	if err := row.Scan(&sub.ID, &sub.QuizID, &sub.StudentID, &ajson, &sub.Score,
		&sub.Passed, &sub.Status, &submitted, &grade, &sub.Feedback, &gradedAt); err != nil {
		return Submission{}, err
	}
	if err := json.Unmarshal([]byte(ajson), &sub.Answers); err != nil {
		return Submission{}, err
	}
	sub.SubmittedAt = time.Unix(submitted, 0).UTC()
	if grade.Valid {
		g := int(grade.Int64)
		sub.Grade = &g
	}
	if gradedAt.Valid {
		t := time.Unix(gradedAt.Int64, 0).UTC()
		sub.GradedAt = &t
	}
	return sub, nil
}

func collect(rows *sql.Rows) ([]Submission, error) {
	out := []Submission{}
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || // sqlite
		strings.Contains(msg, "duplicate key") // postgres
}
