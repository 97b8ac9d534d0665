package repository

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pushpak1497/swift/internal/domain"
)

// MemoryStore implements domain.Store in process memory. It backs the
// memory driver and the handler/service tests.
type MemoryStore struct {
	mu       sync.RWMutex
	users    []domain.User
	posts    []domain.Post
	comments []domain.Comment
	logger   *slog.Logger
}

// NewMemoryStore creates an empty store
func NewMemoryStore(logger *slog.Logger) *MemoryStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &MemoryStore{logger: logger}
}

// FindUser returns a copy of the user with the given id
func (s *MemoryStore) FindUser(_ context.Context, id int64) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.ID == id {
			user := u
			return &user, nil
		}
	}
	return nil, fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
}

func (s *MemoryStore) FindPostsByUser(_ context.Context, userID int64) ([]domain.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	posts := []domain.Post{}
	for _, p := range s.posts {
		if p.UserID == userID {
			posts = append(posts, p)
		}
	}
	return posts, nil
}

func (s *MemoryStore) FindCommentsByPost(_ context.Context, postID int64) ([]domain.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	comments := []domain.Comment{}
	for _, c := range s.comments {
		if c.PostID == postID {
			comments = append(comments, c)
		}
	}
	return comments, nil
}

// InsertUser stores the user unless the id is already taken
func (s *MemoryStore) InsertUser(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.ID == user.ID {
			return fmt.Errorf("user %d: %w", user.ID, domain.ErrConflict)
		}
	}
	s.users = append(s.users, *user)
	s.logger.Debug("user inserted", slog.Int64("user_id", user.ID))
	return nil
}

func (s *MemoryStore) InsertPost(_ context.Context, post *domain.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.posts = append(s.posts, *post)
	return nil
}

func (s *MemoryStore) InsertComments(_ context.Context, comments []domain.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.comments = append(s.comments, comments...)
	return nil
}

func (s *MemoryStore) DeleteUser(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.users[:0]
	for _, u := range s.users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	s.users = kept
	return nil
}

func (s *MemoryStore) DeletePostsByUser(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.posts[:0]
	for _, p := range s.posts {
		if p.UserID != userID {
			kept = append(kept, p)
		}
	}
	s.posts = kept
	return nil
}

func (s *MemoryStore) DeleteCommentsByPosts(_ context.Context, postIDs []int64) error {
	if len(postIDs) == 0 {
		return nil
	}

	set := make(map[int64]struct{}, len(postIDs))
	for _, id := range postIDs {
		set[id] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.comments[:0]
	for _, c := range s.comments {
		if _, ok := set[c.PostID]; !ok {
			kept = append(kept, c)
		}
	}
	s.comments = kept
	return nil
}

// ClearAll empties all three collections
func (s *MemoryStore) ClearAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = nil
	s.posts = nil
	s.comments = nil
	return nil
}

func (s *MemoryStore) Ping(_ context.Context) error { return nil }

func (s *MemoryStore) Close(_ context.Context) error { return nil }
