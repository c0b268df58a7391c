package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a lookup matches no record.
var ErrNotFound = errors.New("record not found")

type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	RefreshToken string `json:"-"`
}

type Lesson struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type Exercise struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Store is the persistence boundary for users, lessons and exercises.
// Lookups that miss return ErrNotFound; any other error is an I/O failure.
//
// CreateUser deliberately performs no duplicate-username probe: uniqueness
// is not enforced anywhere, matching the system this replaces.
type Store interface {
	CreateUser(ctx context.Context, username, passwordHash string) (*User, error)
	FindUserByUsername(ctx context.Context, username string) (*User, error)
	FindUserByRefreshToken(ctx context.Context, refreshToken string) (*User, error)
	// SetRefreshToken overwrites the user's stored refresh token,
	// last write wins.
	SetRefreshToken(ctx context.Context, userID, refreshToken string) error

	ListLessons(ctx context.Context) ([]Lesson, error)
	CreateLesson(ctx context.Context, lesson Lesson) (*Lesson, error)
	UpdateLesson(ctx context.Context, id string, lesson Lesson) (*Lesson, error)
	DeleteLesson(ctx context.Context, id string) (*Lesson, error)

	ListExercises(ctx context.Context) ([]Exercise, error)
	CreateExercise(ctx context.Context, exercise Exercise) (*Exercise, error)
	UpdateExercise(ctx context.Context, id string, exercise Exercise) (*Exercise, error)
	DeleteExercise(ctx context.Context, id string) (*Exercise, error)

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
