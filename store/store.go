// Package store holds tasks in process memory.
//
// A Store is safe for concurrent use. Mutations take an exclusive lock for
// their whole read-modify-write so IDs stay unique and the counter only moves
// forward; List and Stats read under a shared lock and therefore always see a
// single consistent snapshot.
package store

import (
	"strings"
	"sync"

	"github.com/abefas/tasktracker/models"
)

// Store is the in-memory authority for task existence and identity.
type Store struct {
	mu     sync.RWMutex
	tasks  map[int]*models.Task
	order  []int
	nextID int
}

// New returns an empty store whose first task will get ID 1.
func New() *Store {
	return &Store{
		tasks:  make(map[int]*models.Task),
		nextID: 1,
	}
}

// List returns copies of all tasks in insertion order. The result is never nil.
func (s *Store) List() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Task, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.tasks[id])
	}
	return out
}

// Create trims title and stores it as a new pending task.
func (s *Store) Create(title string) (models.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Task{}, ErrTitleRequired()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := &models.Task{ID: s.nextID, Title: title}
	s.tasks[t.ID] = t
	s.order = append(s.order, t.ID)
	s.nextID++
	return *t, nil
}

// Complete marks the task done. Completing a completed task is a no-op.
func (s *Store) Complete(id int) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return models.Task{}, &NotFoundError{ID: id}
	}
	t.Completed = true
	return *t, nil
}

// Delete removes the task with the given ID.
func (s *Store) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return &NotFoundError{ID: id}
	}
	delete(s.tasks, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Stats counts tasks at the instant of the call.
func (s *Store) Stats() models.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.statsLocked()
}

// Snapshot returns the task list and its stats from a single read of the store.
func (s *Store) Snapshot() ([]models.Task, models.Stats) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Task, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.tasks[id])
	}
	return out, s.statsLocked()
}

func (s *Store) statsLocked() models.Stats {
	st := models.Stats{Total: len(s.tasks)}
	for _, t := range s.tasks {
		if t.Completed {
			st.Completed++
		}
	}
	st.Pending = st.Total - st.Completed
	return st
}

// Len returns the number of stored tasks.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

// NextID returns the ID the next successful Create will assign.
func (s *Store) NextID() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nextID
}
