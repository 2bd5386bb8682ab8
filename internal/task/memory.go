package task

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MemoryService keeps tasks in memory. It is used by tests and by
// `--storage memory` sessions.
type MemoryService struct {
	mu     sync.Mutex
	tasks  map[string]*Task
	active string
	now    func() time.Time
}

func NewMemoryService() *MemoryService {
	return &MemoryService{tasks: make(map[string]*Task), now: time.Now}
}

func (s *MemoryService) GetTask(ctx context.Context, id string) (*Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok {
		return nil, fmt.Errorf("get %s: %w", id, ErrNotFound)
	}
	return t.Clone(), nil
}

func (s *MemoryService) UpdateTask(ctx context.Context, id string, p Patch) (*Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok {
		return nil, fmt.Errorf("update %s: %w", id, ErrNotFound)
	}
	next, err := Apply(t, p, s.now())
	if err != nil {
		return nil, err
	}
	s.tasks[id] = next
	return next.Clone(), nil
}

func (s *MemoryService) UpdateActiveTask(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[id]; !ok {
		return fmt.Errorf("activate %s: %w", id, ErrNotFound)
	}
	s.active = id
	return nil
}

func (s *MemoryService) ActiveTask(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active, nil
}

func (s *MemoryService) CreateTask(ctx context.Context, title string) (*Task, error) {
	t := New(title, s.now())
	if err := t.Validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[t.ID] = t
	return t.Clone(), nil
}

func (s *MemoryService) ListTasks(ctx context.Context) ([]*Task, error) {
	s.mu.Lock()
	out := make([]*Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, t.Clone())
	}
	s.mu.Unlock()
	sortTasks(out)
	return out, nil
}

func (s *MemoryService) Close() error { return nil }
