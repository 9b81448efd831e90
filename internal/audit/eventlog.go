// Package audit appends domain events (quiz published/deleted, submission
// created/graded) to an append-only event_log table. Recording is
// best-effort: a failed append is logged, never surfaced to the caller.
package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"time"
)

const (
	EventQuizPublished     = "QuizPublished"
	EventQuizDeleted       = "QuizDeleted"
	EventSubmissionCreated = "SubmissionCreated"
	EventSubmissionGraded  = "SubmissionGraded"
)

type Event struct {
	Offset    int64
	Type      string
	Key       string // natural key: quiz or submission id
	DataJSON  string
	CreatedAt int64
}

type Log struct {
	db *sql.DB
}

func NewLog(db *sql.DB) *Log { return &Log{db: db} }

// Record appends one event. data is marshaled to JSON; nil records an
// empty payload.
func (l *Log) Record(ctx context.Context, typ, key string, data any) {
	if l == nil || l.db == nil {
		return
	}
	payload := "{}"
	if data != nil {
		if b, err := json.Marshal(data); err == nil {
			payload = string(b)
		}
	}
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO event_log (typ, key, data, created_at) VALUES ($1,$2,$3,$4)`,
		typ, key, payload, time.Now().Unix())
	if err != nil {
		log.Printf("audit: append %s %s: %v", typ, key, err)
	}
}
