package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/pushpak1497/swift/internal/domain"
	"github.com/pushpak1497/swift/internal/infrastructure/redis"
)

// Key layout:
//
//	users                 hash of user id -> user JSON
//	posts:user:{userId}   list of post JSON in insertion order
//	comments:post:{postId} list of comment JSON in insertion order
const (
	redisUsersKey      = "users"
	redisPostsPrefix   = "posts:user:"
	redisCommentPrefix = "comments:post:"
)

// RedisStore implements domain.Store using Redis hashes and lists
type RedisStore struct {
	redis  *redis.Client
	logger *slog.Logger
}

// NewRedisStore creates a new redis-backed store
func NewRedisStore(redisClient *redis.Client, logger *slog.Logger) *RedisStore {
	return &RedisStore{
		redis:  redisClient,
		logger: logger,
	}
}

func postsKey(userID int64) string {
	return redisPostsPrefix + strconv.FormatInt(userID, 10)
}

func commentsKey(postID int64) string {
	return redisCommentPrefix + strconv.FormatInt(postID, 10)
}

// FindUser retrieves a user by domain id
func (s *RedisStore) FindUser(ctx context.Context, id int64) (*domain.User, error) {
	data, ok, err := s.redis.HGet(ctx, redisUsersKey, strconv.FormatInt(id, 10))
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
	}

	var user domain.User
	if err := json.Unmarshal([]byte(data), &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	return &user, nil
}

func (s *RedisStore) FindPostsByUser(ctx context.Context, userID int64) ([]domain.Post, error) {
	items, err := s.redis.LRange(ctx, postsKey(userID))
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	posts := make([]domain.Post, 0, len(items))
	for _, item := range items {
		var p domain.Post
		if err := json.Unmarshal([]byte(item), &p); err != nil {
			s.logger.Error("failed to unmarshal post", slog.Int64("user_id", userID), slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to unmarshal post: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, nil
}

func (s *RedisStore) FindCommentsByPost(ctx context.Context, postID int64) ([]domain.Comment, error) {
	items, err := s.redis.LRange(ctx, commentsKey(postID))
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	comments := make([]domain.Comment, 0, len(items))
	for _, item := range items {
		var c domain.Comment
		if err := json.Unmarshal([]byte(item), &c); err != nil {
			return nil, fmt.Errorf("failed to unmarshal comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, nil
}

// InsertUser relies on HSETNX, so the duplicate check and the write are one command
func (s *RedisStore) InsertUser(ctx context.Context, user *domain.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	created, err := s.redis.HSetNX(ctx, redisUsersKey, strconv.FormatInt(user.ID, 10), string(data))
	if err != nil {
		return fmt.Errorf("failed to store user: %w", err)
	}
	if !created {
		return fmt.Errorf("user %d: %w", user.ID, domain.ErrConflict)
	}

	s.logger.Debug("user saved", slog.Int64("user_id", user.ID))
	return nil
}

func (s *RedisStore) InsertPost(ctx context.Context, post *domain.Post) error {
	data, err := json.Marshal(post)
	if err != nil {
		return fmt.Errorf("failed to marshal post: %w", err)
	}

	if err := s.redis.RPush(ctx, postsKey(post.UserID), string(data)); err != nil {
		return fmt.Errorf("failed to store post: %w", err)
	}
	return nil
}

// InsertComments groups the batch by post so each list gets one RPUSH
func (s *RedisStore) InsertComments(ctx context.Context, comments []domain.Comment) error {
	byPost := make(map[int64][]interface{})
	var order []int64
	for i := range comments {
		data, err := json.Marshal(comments[i])
		if err != nil {
			return fmt.Errorf("failed to marshal comment: %w", err)
		}
		pid := comments[i].PostID
		if _, seen := byPost[pid]; !seen {
			order = append(order, pid)
		}
		byPost[pid] = append(byPost[pid], string(data))
	}

	for _, pid := range order {
		if err := s.redis.RPush(ctx, commentsKey(pid), byPost[pid]...); err != nil {
			return fmt.Errorf("failed to store comments: %w", err)
		}
	}
	return nil
}

func (s *RedisStore) DeleteUser(ctx context.Context, id int64) error {
	if err := s.redis.HDel(ctx, redisUsersKey, strconv.FormatInt(id, 10)); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func (s *RedisStore) DeletePostsByUser(ctx context.Context, userID int64) error {
	if err := s.redis.Delete(ctx, postsKey(userID)); err != nil {
		return fmt.Errorf("failed to delete posts: %w", err)
	}
	return nil
}

func (s *RedisStore) DeleteCommentsByPosts(ctx context.Context, postIDs []int64) error {
	keys := make([]string, 0, len(postIDs))
	for _, id := range postIDs {
		keys = append(keys, commentsKey(id))
	}

	if err := s.redis.Delete(ctx, keys...); err != nil {
		return fmt.Errorf("failed to delete comments: %w", err)
	}
	return nil
}

// ClearAll drops the users hash and every post and comment list
func (s *RedisStore) ClearAll(ctx context.Context) error {
	keys := []string{redisUsersKey}
	for _, pattern := range []string{redisPostsPrefix + "*", redisCommentPrefix + "*"} {
		found, err := s.redis.ScanKeys(ctx, pattern)
		if err != nil {
			return fmt.Errorf("failed to list keys: %w", err)
		}
		keys = append(keys, found...)
	}

	if err := s.redis.Delete(ctx, keys...); err != nil {
		return fmt.Errorf("failed to clear store: %w", err)
	}
	return nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.redis.Ping(ctx)
}

func (s *RedisStore) Close(_ context.Context) error {
	return s.redis.Close()
}
