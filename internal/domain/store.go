package domain

import "context"

// Store is the gateway over the users, posts and comments collections.
// Every operation is addressed by domain id. None of them is transactional:
// a failure partway through a sequence of calls leaves earlier calls applied.
type Store interface {
	// FindUser returns ErrNotFound when no user has the given id
	FindUser(ctx context.Context, id int64) (*User, error)
	FindPostsByUser(ctx context.Context, userID int64) ([]Post, error)
	FindCommentsByPost(ctx context.Context, postID int64) ([]Comment, error)

	// InsertUser returns ErrConflict when the id is already taken
	InsertUser(ctx context.Context, user *User) error
	InsertPost(ctx context.Context, post *Post) error
	InsertComments(ctx context.Context, comments []Comment) error

	// Deletes remove every matching record. Matching nothing is not an error.
	DeleteUser(ctx context.Context, id int64) error
	DeletePostsByUser(ctx context.Context, userID int64) error
	DeleteCommentsByPosts(ctx context.Context, postIDs []int64) error
	ClearAll(ctx context.Context) error

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Source is the read-only placeholder API the importer mirrors
type Source interface {
	FetchUsers(ctx context.Context) ([]User, error)
	FetchPosts(ctx context.Context, userID int64) ([]Post, error)
	FetchComments(ctx context.Context, postID int64) ([]Comment, error)
}
