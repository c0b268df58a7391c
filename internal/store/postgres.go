package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

// PostgresStore is the relational adapter. The schema is bootstrapped at
// connect time. Note: no unique index on username, duplicate registrations
// are allowed just as in the document layout.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if err = db.Ping(); err != nil {
		return nil, err
	}

	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		username TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		refresh_token TEXT
	);
	CREATE TABLE IF NOT EXISTS lessons (
		id UUID PRIMARY KEY,
		title TEXT NOT NULL DEFAULT '',
		content TEXT NOT NULL DEFAULT ''
	);
	CREATE TABLE IF NOT EXISTS exercises (
		id UUID PRIMARY KEY,
		title TEXT NOT NULL DEFAULT '',
		question TEXT NOT NULL DEFAULT '',
		answer TEXT NOT NULL DEFAULT ''
	);
	`
	if _, err := db.Exec(schema); err != nil {
		return nil, err
	}

	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) CreateUser(ctx context.Context, username, passwordHash string) (*User, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash) VALUES ($1, $2, $3)`,
		id, username, passwordHash,
	)
	if err != nil {
		return nil, err
	}
	return &User{ID: id, Username: username, PasswordHash: passwordHash}, nil
}

func (s *PostgresStore) FindUserByUsername(ctx context.Context, username string) (*User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, refresh_token FROM users WHERE username = $1 LIMIT 1`,
		username,
	)
	return scanUser(row)
}

func (s *PostgresStore) FindUserByRefreshToken(ctx context.Context, refreshToken string) (*User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, refresh_token FROM users WHERE refresh_token = $1 LIMIT 1`,
		refreshToken,
	)
	return scanUser(row)
}

func (s *PostgresStore) SetRefreshToken(ctx context.Context, userID, refreshToken string) error {
	if _, err := uuid.Parse(userID); err != nil {
		return ErrNotFound
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET refresh_token = $1 WHERE id = $2`,
		refreshToken, userID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListLessons(ctx context.Context) ([]Lesson, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title, content FROM lessons`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lessons := []Lesson{}
	for rows.Next() {
		var l Lesson
		if err := rows.Scan(&l.ID, &l.Title, &l.Content); err != nil {
			return nil, err
		}
		lessons = append(lessons, l)
	}
	return lessons, rows.Err()
}

func (s *PostgresStore) CreateLesson(ctx context.Context, lesson Lesson) (*Lesson, error) {
	lesson.ID = uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO lessons (id, title, content) VALUES ($1, $2, $3)`,
		lesson.ID, lesson.Title, lesson.Content,
	)
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (s *PostgresStore) UpdateLesson(ctx context.Context, id string, lesson Lesson) (*Lesson, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	row := s.db.QueryRowContext(ctx,
		`UPDATE lessons SET title = $1, content = $2 WHERE id = $3 RETURNING id, title, content`,
		lesson.Title, lesson.Content, id,
	)
	var updated Lesson
	if err := row.Scan(&updated.ID, &updated.Title, &updated.Content); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &updated, nil
}

func (s *PostgresStore) DeleteLesson(ctx context.Context, id string) (*Lesson, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	row := s.db.QueryRowContext(ctx,
		`DELETE FROM lessons WHERE id = $1 RETURNING id, title, content`,
		id,
	)
	var deleted Lesson
	if err := row.Scan(&deleted.ID, &deleted.Title, &deleted.Content); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &deleted, nil
}

func (s *PostgresStore) ListExercises(ctx context.Context) ([]Exercise, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title, question, answer FROM exercises`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exercises := []Exercise{}
	for rows.Next() {
		var e Exercise
		if err := rows.Scan(&e.ID, &e.Title, &e.Question, &e.Answer); err != nil {
			return nil, err
		}
		exercises = append(exercises, e)
	}
	return exercises, rows.Err()
}

func (s *PostgresStore) CreateExercise(ctx context.Context, exercise Exercise) (*Exercise, error) {
	exercise.ID = uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO exercises (id, title, question, answer) VALUES ($1, $2, $3, $4)`,
		exercise.ID, exercise.Title, exercise.Question, exercise.Answer,
	)
	if err != nil {
		return nil, err
	}
	return &exercise, nil
}

func (s *PostgresStore) UpdateExercise(ctx context.Context, id string, exercise Exercise) (*Exercise, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	row := s.db.QueryRowContext(ctx,
		`UPDATE exercises SET title = $1, question = $2, answer = $3 WHERE id = $4
		 RETURNING id, title, question, answer`,
		exercise.Title, exercise.Question, exercise.Answer, id,
	)
	var updated Exercise
	if err := row.Scan(&updated.ID, &updated.Title, &updated.Question, &updated.Answer); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &updated, nil
}

func (s *PostgresStore) DeleteExercise(ctx context.Context, id string) (*Exercise, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	row := s.db.QueryRowContext(ctx,
		`DELETE FROM exercises WHERE id = $1 RETURNING id, title, question, answer`,
		id,
	)
	var deleted Exercise
	if err := row.Scan(&deleted.ID, &deleted.Title, &deleted.Question, &deleted.Answer); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &deleted, nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *PostgresStore) Close(_ context.Context) error {
	return s.db.Close()
}

func scanUser(row *sql.Row) (*User, error) {
	var u User
	var refresh sql.NullString
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &refresh); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	u.RefreshToken = refresh.String
	return &u, nil
}
