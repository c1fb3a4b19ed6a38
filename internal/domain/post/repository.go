package post

import "context"

// Repository defines persistence behaviours for posts, likes, and comments.
type Repository interface {
	Create(ctx context.Context, post *Post) error
	GetByID(ctx context.Context, id string) (*Post, error)
	List(ctx context.Context) ([]*Post, error)
	ListByAuthor(ctx context.Context, authorID string) ([]*Post, error)

	HasLike(ctx context.Context, userID, postID string) (bool, error)
	AddLike(ctx context.Context, userID, postID string) error
	RemoveLike(ctx context.Context, userID, postID string) error

	CreateComment(ctx context.Context, comment *Comment) error
	GetComment(ctx context.Context, id string) (*Comment, error)
	ListComments(ctx context.Context, postID string) ([]*Comment, error)
}
