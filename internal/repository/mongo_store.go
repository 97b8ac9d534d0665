package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pushpak1497/swift/internal/domain"
	mongoclient "github.com/pushpak1497/swift/internal/infrastructure/mongo"
)

const (
	usersCollection    = "users"
	postsCollection    = "posts"
	commentsCollection = "comments"
)

// MongoStore implements domain.Store over three MongoDB collections.
// Documents are addressed by their "id" field; Mongo's _id is never read back.
type MongoStore struct {
	client   *mongoclient.Client
	users    *mongo.Collection
	posts    *mongo.Collection
	comments *mongo.Collection
	logger   *slog.Logger
}

// NewMongoStore creates a store on top of a connected client
func NewMongoStore(client *mongoclient.Client, logger *slog.Logger) *MongoStore {
	return &MongoStore{
		client:   client,
		users:    client.Collection(usersCollection),
		posts:    client.Collection(postsCollection),
		comments: client.Collection(commentsCollection),
		logger:   logger,
	}
}

// FindUser looks a user up by domain id
func (s *MongoStore) FindUser(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	err := s.users.FindOne(ctx, bson.M{"id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

// FindPostsByUser returns every post whose userId matches
func (s *MongoStore) FindPostsByUser(ctx context.Context, userID int64) ([]domain.Post, error) {
	cur, err := s.posts.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to find posts: %w", err)
	}
	defer cur.Close(ctx)

	posts := []domain.Post{}
	if err := cur.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("failed to decode posts: %w", err)
	}
	return posts, nil
}

// FindCommentsByPost returns every comment whose postId matches
func (s *MongoStore) FindCommentsByPost(ctx context.Context, postID int64) ([]domain.Comment, error) {
	cur, err := s.comments.Find(ctx, bson.M{"postId": postID})
	if err != nil {
		return nil, fmt.Errorf("failed to find comments: %w", err)
	}
	defer cur.Close(ctx)

	comments := []domain.Comment{}
	if err := cur.All(ctx, &comments); err != nil {
		return nil, fmt.Errorf("failed to decode comments: %w", err)
	}
	return comments, nil
}

// InsertUser checks for an existing id before inserting. The check and the
// insert are separate round trips.
func (s *MongoStore) InsertUser(ctx context.Context, user *domain.User) error {
	n, err := s.users.CountDocuments(ctx, bson.M{"id": user.ID}, options.Count().SetLimit(1))
	if err != nil {
		return fmt.Errorf("failed to check user: %w", err)
	}
	if n > 0 {
		return fmt.Errorf("user %d: %w", user.ID, domain.ErrConflict)
	}

	if _, err := s.users.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	s.logger.Debug("user inserted", slog.Int64("user_id", user.ID))
	return nil
}

func (s *MongoStore) InsertPost(ctx context.Context, post *domain.Post) error {
	if _, err := s.posts.InsertOne(ctx, post); err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}
	return nil
}

// InsertComments writes the batch with a single InsertMany
func (s *MongoStore) InsertComments(ctx context.Context, comments []domain.Comment) error {
	if len(comments) == 0 {
		return nil
	}

	docs := make([]interface{}, len(comments))
	for i := range comments {
		docs[i] = comments[i]
	}

	if _, err := s.comments.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert comments: %w", err)
	}
	return nil
}

func (s *MongoStore) DeleteUser(ctx context.Context, id int64) error {
	if _, err := s.users.DeleteMany(ctx, bson.M{"id": id}); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func (s *MongoStore) DeletePostsByUser(ctx context.Context, userID int64) error {
	if _, err := s.posts.DeleteMany(ctx, bson.M{"userId": userID}); err != nil {
		return fmt.Errorf("failed to delete posts: %w", err)
	}
	return nil
}

// DeleteCommentsByPosts removes comments whose postId is in the given set
func (s *MongoStore) DeleteCommentsByPosts(ctx context.Context, postIDs []int64) error {
	if len(postIDs) == 0 {
		return nil
	}

	res, err := s.comments.DeleteMany(ctx, bson.M{"postId": bson.M{"$in": postIDs}})
	if err != nil {
		return fmt.Errorf("failed to delete comments: %w", err)
	}

	s.logger.Debug("comments deleted", slog.Int64("count", res.DeletedCount))
	return nil
}

// ClearAll empties users, posts and comments in that order
func (s *MongoStore) ClearAll(ctx context.Context) error {
	for _, coll := range []*mongo.Collection{s.users, s.posts, s.comments} {
		if _, err := coll.DeleteMany(ctx, bson.D{}); err != nil {
			return fmt.Errorf("failed to clear %s: %w", coll.Name(), err)
		}
	}
	return nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Close(ctx)
}
