package submission

import (
	"context"
	"sort"
	"sync"
	"time"
)

type MemoryStore struct {
	mu   sync.RWMutex
	byID map[string]Submission
	// quiz_id|student_id -> submission id; the uniqueness constraint
	byPair map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:   map[string]Submission{},
		byPair: map[string]string{},
	}
}

func pairKey(quizID, studentID string) string { return quizID + "|" + studentID }

func (m *MemoryStore) Create(_ context.Context, s Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := pairKey(s.QuizID, s.StudentID)
	if _, ok := m.byPair[k]; ok {
		return ErrDuplicate
	}
	m.byID[s.ID] = s
	m.byPair[k] = s.ID
	return nil
}

func (m *MemoryStore) GetByID(_ context.Context, id string) (Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.byID[id]
	if !ok {
		return Submission{}, ErrNotFound
	}
	return s, nil
}

func (m *MemoryStore) FindByQuizAndStudent(_ context.Context, quizID, studentID string) (Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.byPair[pairKey(quizID, studentID)]
	if !ok {
		return Submission{}, ErrNotFound
	}
	return m.byID[id], nil
}

func (m *MemoryStore) ListByStudent(_ context.Context, studentID string) ([]Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Submission{}
	for _, s := range m.byID {
		if s.StudentID == studentID {
			out = append(out, s)
		}
	}
	sortBySubmittedAt(out)
	return out, nil
}

func (m *MemoryStore) ListByQuizIDs(_ context.Context, quizIDs []string) ([]Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	want := make(map[string]struct{}, len(quizIDs))
	for _, id := range quizIDs {
		want[id] = struct{}{}
	}
	out := []Submission{}
	for _, s := range m.byID {
		if _, ok := want[s.QuizID]; ok {
			out = append(out, s)
		}
	}
	sortBySubmittedAt(out)
	return out, nil
}

func (m *MemoryStore) CountByQuizIDs(ctx context.Context, quizIDs []string) (int, error) {
	subs, err := m.ListByQuizIDs(ctx, quizIDs)
	if err != nil {
		return 0, err
	}
	return len(subs), nil
}

func (m *MemoryStore) ApplyGrade(_ context.Context, id string, grade int, feedback string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.byID[id]
	if !ok {
		return ErrNotFound
	}
	g := grade
	t := at
	s.Grade = &g
	s.Feedback = feedback
	s.Status = StatusGraded
	s.GradedAt = &t
	m.byID[id] = s
	return nil
}

func sortBySubmittedAt(subs []Submission) {
	sort.Slice(subs, func(i, j int) bool {
		return subs[i].SubmittedAt.After(subs[j].SubmittedAt)
	})
}
