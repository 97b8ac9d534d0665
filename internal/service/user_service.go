package service

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"go.opentelemetry.io/otel/attribute"

	"github.com/pushpak1497/swift/internal/domain"
	"github.com/pushpak1497/swift/internal/observability/metrics"
	"github.com/pushpak1497/swift/internal/observability/tracing"
)

// UserService serves the per-user read, create and delete operations
type UserService struct {
	store  domain.Store
	logger *slog.Logger
}

// NewUserService creates a new user service
func NewUserService(store domain.Store, logger *slog.Logger) *UserService {
	return &UserService{
		store:  store,
		logger: logger,
	}
}

// GetUserData assembles a user with its posts and each post's comments.
// Posts and comments are ordered by ascending id whatever order the store
// returns them in. A missing user yields domain.ErrNotFound.
func (s *UserService) GetUserData(ctx context.Context, userID int64) (*domain.UserWithPosts, error) {
	ctx, span := tracing.Tracer().Start(ctx, "UserService.GetUserData")
	defer span.End()
	span.SetAttributes(attribute.Int64("user.id", userID))

	user, err := s.store.FindUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	posts, err := s.store.FindPostsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get posts: %w", err)
	}
	slices.SortStableFunc(posts, func(a, b domain.Post) int { return cmp.Compare(a.ID, b.ID) })

	result := &domain.UserWithPosts{
		User:  *user,
		Posts: make([]domain.PostWithComments, 0, len(posts)),
	}

	for _, post := range posts {
		comments, err := s.store.FindCommentsByPost(ctx, post.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get comments for post %d: %w", post.ID, err)
		}
		if comments == nil {
			comments = []domain.Comment{}
		}
		slices.SortStableFunc(comments, func(a, b domain.Comment) int { return cmp.Compare(a.ID, b.ID) })

		result.Posts = append(result.Posts, domain.PostWithComments{
			Post:     post,
			Comments: comments,
		})
	}

	span.SetAttributes(attribute.Int("user.posts", len(result.Posts)))
	return result, nil
}

// CreateUser stores a single user. domain.ErrConflict when the id exists.
func (s *UserService) CreateUser(ctx context.Context, user *domain.User) error {
	if err := s.store.InsertUser(ctx, user); err != nil {
		return err
	}
	s.logger.Info("user created", slog.Int64("user_id", user.ID))
	return nil
}

// DeleteUser removes a user, its posts, and the comments on those posts.
//
// The steps run in a fixed order with no surrounding transaction: lookup,
// delete user, collect post ids, delete posts, delete comments by post id.
// A failure after the user is gone leaves its posts and comments orphaned.
func (s *UserService) DeleteUser(ctx context.Context, userID int64) error {
	logger := s.logger.With(slog.Int64("user_id", userID))

	if _, err := s.store.FindUser(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		metrics.ObserveCascadeDelete("error")
		return fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.store.DeleteUser(ctx, userID); err != nil {
		metrics.ObserveCascadeDelete("error")
		return fmt.Errorf("failed to delete user: %w", err)
	}

	orphaned := func(step string, err error) error {
		metrics.ObserveCascadeDelete("partial")
		logger.Error("cascading delete stopped after user removal",
			slog.String("step", step),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to %s: %w", step, err)
	}

	posts, err := s.store.FindPostsByUser(ctx, userID)
	if err != nil {
		return orphaned("collect posts", err)
	}

	postIDs := make([]int64, 0, len(posts))
	for _, p := range posts {
		postIDs = append(postIDs, p.ID)
	}

	if err := s.store.DeletePostsByUser(ctx, userID); err != nil {
		return orphaned("delete posts", err)
	}

	if len(postIDs) > 0 {
		if err := s.store.DeleteCommentsByPosts(ctx, postIDs); err != nil {
			return orphaned("delete comments", err)
		}
	}

	metrics.ObserveCascadeDelete("success")
	logger.Info("user deleted", slog.Int("posts", len(postIDs)))
	return nil
}

// ClearAll empties users, posts and comments
func (s *UserService) ClearAll(ctx context.Context) error {
	if err := s.store.ClearAll(ctx); err != nil {
		return fmt.Errorf("failed to clear store: %w", err)
	}
	s.logger.Info("all users, posts and comments deleted")
	return nil
}
