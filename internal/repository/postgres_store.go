package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lib/pq"

	"github.com/pushpak1497/swift/internal/domain"
	"github.com/pushpak1497/swift/pkg/database"
)

// Each collection is a table of JSONB documents. The serial seq column is
// storage identity and keeps insertion order; it is never exposed.
const postgresSchema = `
	CREATE TABLE IF NOT EXISTS users (
		seq BIGSERIAL PRIMARY KEY,
		id  BIGINT NOT NULL,
		doc JSONB NOT NULL
	);
	CREATE TABLE IF NOT EXISTS posts (
		seq     BIGSERIAL PRIMARY KEY,
		id      BIGINT NOT NULL,
		user_id BIGINT NOT NULL,
		doc     JSONB NOT NULL
	);
	CREATE TABLE IF NOT EXISTS comments (
		seq     BIGSERIAL PRIMARY KEY,
		id      BIGINT NOT NULL,
		post_id BIGINT NOT NULL,
		doc     JSONB NOT NULL
	);
`

// PostgresStore implements domain.Store using PostgreSQL JSONB tables
type PostgresStore struct {
	pool   *database.ConnectionPool
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresStore creates a store on an open pool
func NewPostgresStore(pool *database.ConnectionPool, logger *slog.Logger) *PostgresStore {
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresStore{
		pool:   pool,
		db:     pool.GetDB(),
		logger: logger,
	}
}

// EnsureSchema creates the three tables if they are missing
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, postgresSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// FindUser retrieves a user by domain id
func (s *PostgresStore) FindUser(ctx context.Context, id int64) (*domain.User, error) {
	var doc []byte
	err := s.db.QueryRowContext(ctx, `SELECT doc FROM users WHERE id = $1 ORDER BY seq LIMIT 1`, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		s.logger.Error("failed to get user by id",
			slog.Int64("id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	var user domain.User
	if err := json.Unmarshal(doc, &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	return &user, nil
}

func (s *PostgresStore) FindPostsByUser(ctx context.Context, userID int64) ([]domain.Post, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT doc FROM posts WHERE user_id = $1 ORDER BY seq`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	posts := []domain.Post{}
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		var p domain.Post
		if err := json.Unmarshal(doc, &p); err != nil {
			return nil, fmt.Errorf("failed to unmarshal post: %w", err)
		}
		posts = append(posts, p)
	}

	return posts, rows.Err()
}

func (s *PostgresStore) FindCommentsByPost(ctx context.Context, postID int64) ([]domain.Comment, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT doc FROM comments WHERE post_id = $1 ORDER BY seq`, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := []domain.Comment{}
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		var c domain.Comment
		if err := json.Unmarshal(doc, &c); err != nil {
			return nil, fmt.Errorf("failed to unmarshal comment: %w", err)
		}
		comments = append(comments, c)
	}

	return comments, rows.Err()
}

// InsertUser refuses a second user with the same domain id
func (s *PostgresStore) InsertUser(ctx context.Context, user *domain.User) error {
	var exists bool
	if err := s.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, user.ID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check user: %w", err)
	}
	if exists {
		return fmt.Errorf("user %d: %w", user.ID, domain.ErrConflict)
	}

	doc, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, `INSERT INTO users (id, doc) VALUES ($1, $2)`, user.ID, doc); err != nil {
		s.logger.Error("failed to create user",
			slog.Int64("id", user.ID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (s *PostgresStore) InsertPost(ctx context.Context, post *domain.Post) error {
	doc, err := json.Marshal(post)
	if err != nil {
		return fmt.Errorf("failed to marshal post: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, `INSERT INTO posts (id, user_id, doc) VALUES ($1, $2, $3)`, post.ID, post.UserID, doc); err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}
	return nil
}

// InsertComments streams the batch through COPY in one transaction
func (s *PostgresStore) InsertComments(ctx context.Context, comments []domain.Comment) error {
	if len(comments) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin comment batch: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("comments", "id", "post_id", "doc"))
	if err != nil {
		return fmt.Errorf("failed to prepare comment batch: %w", err)
	}

	for i := range comments {
		doc, err := json.Marshal(comments[i])
		if err != nil {
			stmt.Close()
			return fmt.Errorf("failed to marshal comment: %w", err)
		}
		if _, err := stmt.ExecContext(ctx, comments[i].ID, comments[i].PostID, string(doc)); err != nil {
			stmt.Close()
			return fmt.Errorf("failed to queue comment: %w", err)
		}
	}

	if _, err := stmt.ExecContext(ctx); err != nil {
		stmt.Close()
		return fmt.Errorf("failed to flush comment batch: %w", err)
	}
	if err := stmt.Close(); err != nil {
		return fmt.Errorf("failed to close comment batch: %w", err)
	}

	return tx.Commit()
}

func (s *PostgresStore) DeleteUser(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeletePostsByUser(ctx context.Context, userID int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete posts: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteCommentsByPosts(ctx context.Context, postIDs []int64) error {
	if len(postIDs) == 0 {
		return nil
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM comments WHERE post_id = ANY($1)`, pq.Array(postIDs))
	if err != nil {
		return fmt.Errorf("failed to delete comments: %w", err)
	}

	if rows, err := result.RowsAffected(); err == nil {
		s.logger.Debug("comments deleted", slog.Int64("count", rows))
	}
	return nil
}

// ClearAll deletes every row from the three tables, one statement each
func (s *PostgresStore) ClearAll(ctx context.Context) error {
	for _, table := range []string{"users", "posts", "comments"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Health(ctx)
}

func (s *PostgresStore) Close(_ context.Context) error {
	return s.pool.Close()
}
