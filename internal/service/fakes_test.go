package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/pushpak1497/swift/internal/domain"
	"github.com/pushpak1497/swift/internal/repository"
)

var errInjected = errors.New("injected failure")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeSource serves canned upstream data and records the call sequence
type fakeSource struct {
	users    []domain.User
	posts    map[int64][]domain.Post
	comments map[int64][]domain.Comment
	failOn   string
	calls    []string
}

func (f *fakeSource) FetchUsers(_ context.Context) ([]domain.User, error) {
	f.calls = append(f.calls, "users")
	if f.failOn == "users" {
		return nil, fmt.Errorf("%w: %w", domain.ErrUpstream, errInjected)
	}
	return append([]domain.User(nil), f.users...), nil
}

func (f *fakeSource) FetchPosts(_ context.Context, userID int64) ([]domain.Post, error) {
	call := fmt.Sprintf("posts:%d", userID)
	f.calls = append(f.calls, call)
	if f.failOn == call {
		return nil, fmt.Errorf("%w: %w", domain.ErrUpstream, errInjected)
	}
	return append([]domain.Post(nil), f.posts[userID]...), nil
}

func (f *fakeSource) FetchComments(_ context.Context, postID int64) ([]domain.Comment, error) {
	call := fmt.Sprintf("comments:%d", postID)
	f.calls = append(f.calls, call)
	if f.failOn == call {
		return nil, fmt.Errorf("%w: %w", domain.ErrUpstream, errInjected)
	}
	return append([]domain.Comment(nil), f.comments[postID]...), nil
}

// recordingStore wraps the memory store, logs every call and can fail one
// named operation.
type recordingStore struct {
	*repository.MemoryStore
	failOn string
	calls  []string
}

func newRecordingStore() *recordingStore {
	return &recordingStore{MemoryStore: repository.NewMemoryStore(discardLogger())}
}

func (s *recordingStore) hit(op string) error {
	s.calls = append(s.calls, op)
	if s.failOn == op {
		return errInjected
	}
	return nil
}

func (s *recordingStore) FindUser(ctx context.Context, id int64) (*domain.User, error) {
	if err := s.hit("FindUser"); err != nil {
		return nil, err
	}
	return s.MemoryStore.FindUser(ctx, id)
}

func (s *recordingStore) FindPostsByUser(ctx context.Context, userID int64) ([]domain.Post, error) {
	if err := s.hit("FindPostsByUser"); err != nil {
		return nil, err
	}
	return s.MemoryStore.FindPostsByUser(ctx, userID)
}

func (s *recordingStore) FindCommentsByPost(ctx context.Context, postID int64) ([]domain.Comment, error) {
	if err := s.hit("FindCommentsByPost"); err != nil {
		return nil, err
	}
	return s.MemoryStore.FindCommentsByPost(ctx, postID)
}

func (s *recordingStore) InsertUser(ctx context.Context, user *domain.User) error {
	if err := s.hit("InsertUser"); err != nil {
		return err
	}
	return s.MemoryStore.InsertUser(ctx, user)
}

func (s *recordingStore) InsertPost(ctx context.Context, post *domain.Post) error {
	if err := s.hit("InsertPost"); err != nil {
		return err
	}
	return s.MemoryStore.InsertPost(ctx, post)
}

func (s *recordingStore) InsertComments(ctx context.Context, comments []domain.Comment) error {
	if err := s.hit("InsertComments"); err != nil {
		return err
	}
	return s.MemoryStore.InsertComments(ctx, comments)
}

func (s *recordingStore) DeleteUser(ctx context.Context, id int64) error {
	if err := s.hit("DeleteUser"); err != nil {
		return err
	}
	return s.MemoryStore.DeleteUser(ctx, id)
}

func (s *recordingStore) DeletePostsByUser(ctx context.Context, userID int64) error {
	if err := s.hit("DeletePostsByUser"); err != nil {
		return err
	}
	return s.MemoryStore.DeletePostsByUser(ctx, userID)
}

func (s *recordingStore) DeleteCommentsByPosts(ctx context.Context, postIDs []int64) error {
	if err := s.hit("DeleteCommentsByPosts"); err != nil {
		return err
	}
	return s.MemoryStore.DeleteCommentsByPosts(ctx, postIDs)
}

func (s *recordingStore) ClearAll(ctx context.Context) error {
	if err := s.hit("ClearAll"); err != nil {
		return err
	}
	return s.MemoryStore.ClearAll(ctx)
}

// twoUsers is a small upstream fixture: user 1 has posts 11 and 12 (12 has
// no comments), user 2 has post 21.
func twoUsers() *fakeSource {
	return &fakeSource{
		users: []domain.User{
			{ID: 1, Name: "Leanne Graham", Username: "Bret"},
			{ID: 2, Name: "Ervin Howell", Username: "Antonette"},
		},
		posts: map[int64][]domain.Post{
			1: {{ID: 11, UserID: 1, Title: "a"}, {ID: 12, UserID: 1, Title: "b"}},
			2: {{ID: 21, UserID: 2, Title: "c"}},
		},
		comments: map[int64][]domain.Comment{
			11: {{ID: 111, PostID: 11}, {ID: 112, PostID: 11}},
			21: {{ID: 211, PostID: 21}},
		},
	}
}
