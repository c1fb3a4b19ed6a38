package post

import (
	"errors"
	"time"
)

var (
	// ErrNotFound indicates a post could not be located.
	ErrNotFound = errors.New("post not found")
	// ErrEmptyContent signals a post or comment without any text.
	ErrEmptyContent = errors.New("content is required")
)

// Author is the public summary of a post or comment author.
type Author struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Bio   string `json:"bio"`
}

// Post captures a single feed entry. LikedBy holds the ids of users who
// currently like the post; LikeCount is derived from it on read.
type Post struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"authorId"`
	Content   string    `json:"content"`
	Author    *Author   `json:"author,omitempty"`
	LikedBy   []string  `json:"likedBy"`
	LikeCount int       `json:"likeCount"`
	CreatedAt time.Time `json:"createdAt"`
}

// Comment is a reply attached to a post.
type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"postId"`
	AuthorID  string    `json:"authorId"`
	Content   string    `json:"content"`
	Author    *Author   `json:"author,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
