package store

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore keeps everything in maps. Used by tests and for local
// development without a database.
type MemoryStore struct {
	mu        sync.RWMutex
	users     map[string]*User
	userOrder []string
	lessons   map[string]*Lesson
	exercises map[string]*Exercise
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:     make(map[string]*User),
		lessons:   make(map[string]*Lesson),
		exercises: make(map[string]*Exercise),
	}
}

func (s *MemoryStore) CreateUser(_ context.Context, username, passwordHash string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := &User{ID: uuid.NewString(), Username: username, PasswordHash: passwordHash}
	s.users[u.ID] = u
	s.userOrder = append(s.userOrder, u.ID)
	return copyUser(u), nil
}

func (s *MemoryStore) FindUserByUsername(_ context.Context, username string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Insertion order so duplicate usernames resolve to the earliest record,
	// the same way a collection scan would.
	for _, id := range s.userOrder {
		if u := s.users[id]; u.Username == username {
			return copyUser(u), nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) FindUserByRefreshToken(_ context.Context, refreshToken string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.userOrder {
		if u := s.users[id]; u.RefreshToken != "" && u.RefreshToken == refreshToken {
			return copyUser(u), nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) SetRefreshToken(_ context.Context, userID, refreshToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return ErrNotFound
	}
	u.RefreshToken = refreshToken
	return nil
}

func (s *MemoryStore) ListLessons(_ context.Context) ([]Lesson, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lessons := make([]Lesson, 0, len(s.lessons))
	for _, l := range s.lessons {
		lessons = append(lessons, *l)
	}
	return lessons, nil
}

func (s *MemoryStore) CreateLesson(_ context.Context, lesson Lesson) (*Lesson, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lesson.ID = uuid.NewString()
	s.lessons[lesson.ID] = &lesson
	created := lesson
	return &created, nil
}

func (s *MemoryStore) UpdateLesson(_ context.Context, id string, lesson Lesson) (*Lesson, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.lessons[id]
	if !ok {
		return nil, ErrNotFound
	}
	existing.Title = lesson.Title
	existing.Content = lesson.Content
	updated := *existing
	return &updated, nil
}

func (s *MemoryStore) DeleteLesson(_ context.Context, id string) (*Lesson, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.lessons[id]
	if !ok {
		return nil, ErrNotFound
	}
	delete(s.lessons, id)
	deleted := *existing
	return &deleted, nil
}

func (s *MemoryStore) ListExercises(_ context.Context) ([]Exercise, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	exercises := make([]Exercise, 0, len(s.exercises))
	for _, e := range s.exercises {
		exercises = append(exercises, *e)
	}
	return exercises, nil
}

func (s *MemoryStore) CreateExercise(_ context.Context, exercise Exercise) (*Exercise, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exercise.ID = uuid.NewString()
	s.exercises[exercise.ID] = &exercise
	created := exercise
	return &created, nil
}

func (s *MemoryStore) UpdateExercise(_ context.Context, id string, exercise Exercise) (*Exercise, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.exercises[id]
	if !ok {
		return nil, ErrNotFound
	}
	existing.Title = exercise.Title
	existing.Question = exercise.Question
	existing.Answer = exercise.Answer
	updated := *existing
	return &updated, nil
}

func (s *MemoryStore) DeleteExercise(_ context.Context, id string) (*Exercise, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.exercises[id]
	if !ok {
		return nil, ErrNotFound
	}
	delete(s.exercises, id)
	deleted := *existing
	return &deleted, nil
}

func (s *MemoryStore) Ping(_ context.Context) error { return nil }

func (s *MemoryStore) Close(_ context.Context) error { return nil }

func copyUser(u *User) *User {
	c := *u
	return &c
}
