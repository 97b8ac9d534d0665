package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/pushpak1497/swift/internal/domain"
	"github.com/pushpak1497/swift/internal/observability/metrics"
	"github.com/pushpak1497/swift/internal/observability/tracing"
)

// ImportStats counts what one LoadAll run wrote
type ImportStats struct {
	Users    int
	Posts    int
	Comments int
}

// ImportService mirrors the placeholder source into the store
type ImportService struct {
	store  domain.Store
	source domain.Source
	logger *slog.Logger
}

// NewImportService creates a new import service
func NewImportService(store domain.Store, source domain.Source, logger *slog.Logger) *ImportService {
	return &ImportService{
		store:  store,
		source: source,
		logger: logger,
	}
}

// LoadAll clears the store and re-imports every user, post and comment.
//
// The walk is strictly sequential: users in upstream order, then each user's
// posts, then each post's comments, writing every entity as soon as it is
// fetched. The first failure aborts the run and whatever was written so far
// stays in the store. Nothing is retried; calling LoadAll again starts over
// from the clear.
func (s *ImportService) LoadAll(ctx context.Context) (ImportStats, error) {
	ctx, span := tracing.Tracer().Start(ctx, "ImportService.LoadAll")
	defer span.End()

	start := time.Now()
	stats, err := s.loadAll(ctx)

	span.SetAttributes(
		attribute.Int("import.users", stats.Users),
		attribute.Int("import.posts", stats.Posts),
		attribute.Int("import.comments", stats.Comments),
	)
	metrics.AddImported("user", stats.Users)
	metrics.AddImported("post", stats.Posts)
	metrics.AddImported("comment", stats.Comments)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "import failed")
		metrics.ObserveImport("error", time.Since(start))
		s.logger.Error("import aborted",
			slog.Int("users", stats.Users),
			slog.Int("posts", stats.Posts),
			slog.Int("comments", stats.Comments),
			slog.String("error", err.Error()),
		)
		return stats, err
	}

	metrics.ObserveImport("success", time.Since(start))
	s.logger.Info("import completed",
		slog.Int("users", stats.Users),
		slog.Int("posts", stats.Posts),
		slog.Int("comments", stats.Comments),
		slog.Duration("duration", time.Since(start)),
	)
	return stats, nil
}

func (s *ImportService) loadAll(ctx context.Context) (ImportStats, error) {
	var stats ImportStats

	if err := s.store.ClearAll(ctx); err != nil {
		return stats, fmt.Errorf("failed to clear store: %w", err)
	}

	users, err := s.source.FetchUsers(ctx)
	if err != nil {
		return stats, fmt.Errorf("failed to fetch users: %w", err)
	}

	for i := range users {
		user := &users[i]
		if err := s.store.InsertUser(ctx, user); err != nil {
			return stats, fmt.Errorf("failed to insert user %d: %w", user.ID, err)
		}
		stats.Users++

		posts, err := s.source.FetchPosts(ctx, user.ID)
		if err != nil {
			return stats, fmt.Errorf("failed to fetch posts for user %d: %w", user.ID, err)
		}

		for j := range posts {
			post := &posts[j]
			if err := s.store.InsertPost(ctx, post); err != nil {
				return stats, fmt.Errorf("failed to insert post %d: %w", post.ID, err)
			}
			stats.Posts++

			comments, err := s.source.FetchComments(ctx, post.ID)
			if err != nil {
				return stats, fmt.Errorf("failed to fetch comments for post %d: %w", post.ID, err)
			}
			if len(comments) == 0 {
				continue
			}

			if err := s.store.InsertComments(ctx, comments); err != nil {
				return stats, fmt.Errorf("failed to insert comments for post %d: %w", post.ID, err)
			}
			stats.Comments += len(comments)
		}

		s.logger.Debug("user imported", slog.Int64("user_id", user.ID), slog.Int("posts", len(posts)))
	}

	return stats, nil
}
