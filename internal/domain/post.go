package domain

// Post belongs to a User through UserID. The reference is not enforced.
type Post struct {
	ID     int64  `json:"id" bson:"id"`
	UserID int64  `json:"userId" bson:"userId"`
	Title  string `json:"title" bson:"title"`
	Body   string `json:"body" bson:"body"`
}

// Comment belongs to a Post through PostID. The reference is not enforced.
type Comment struct {
	ID     int64  `json:"id" bson:"id"`
	PostID int64  `json:"postId" bson:"postId"`
	Name   string `json:"name" bson:"name"`
	Email  string `json:"email" bson:"email"`
	Body   string `json:"body" bson:"body"`
}

// PostWithComments is a Post annotated with its comments
type PostWithComments struct {
	Post
	Comments []Comment `json:"comments"`
}
