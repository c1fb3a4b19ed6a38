package post

import (
	"context"
	"strings"
	"time"

	domain "microblog/backend/internal/domain/post"

	"github.com/google/uuid"
)

// Service covers the feed, posting, likes, and comments.
type Service struct {
	posts   domain.Repository
	nowFunc func() time.Time
}

// NewService constructs a post service around the provided repository.
func NewService(posts domain.Repository) *Service {
	return &Service{
		posts:   posts,
		nowFunc: time.Now,
	}
}

// Feed returns all posts, newest first, with author and like details.
func (s *Service) Feed(ctx context.Context) ([]*domain.Post, error) {
	return s.posts.List(ctx)
}

// Get retrieves a single post by its identifier.
func (s *Service) Get(ctx context.Context, id string) (*domain.Post, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.ErrNotFound
	}
	return s.posts.GetByID(ctx, id)
}

// Create persists a new post authored by the given user.
func (s *Service) Create(ctx context.Context, authorID, content string) (*domain.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.ErrEmptyContent
	}

	p := &domain.Post{
		ID:        uuid.NewString(),
		AuthorID:  authorID,
		Content:   content,
		CreatedAt: s.nowFunc().UTC(),
	}
	if err := s.posts.Create(ctx, p); err != nil {
		return nil, err
	}
	return s.posts.GetByID(ctx, p.ID)
}

// ToggleLike likes the post on behalf of the user, or removes the like if
// one already exists. Returns the resulting liked state.
func (s *Service) ToggleLike(ctx context.Context, userID, postID string) (bool, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return false, err
	}

	liked, err := s.posts.HasLike(ctx, userID, postID)
	if err != nil {
		return false, err
	}

	if liked {
		if err := s.posts.RemoveLike(ctx, userID, postID); err != nil {
			return false, err
		}
		return false, nil
	}

	if err := s.posts.AddLike(ctx, userID, postID); err != nil {
		return false, err
	}
	return true, nil
}

// Comments lists the comments on a post, oldest first.
func (s *Service) Comments(ctx context.Context, postID string) ([]*domain.Comment, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.posts.ListComments(ctx, postID)
}

// AddComment attaches a new comment to the post.
func (s *Service) AddComment(ctx context.Context, postID, authorID, content string) (*domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.ErrEmptyContent
	}

	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	c := &domain.Comment{
		ID:        uuid.NewString(),
		PostID:    postID,
		AuthorID:  authorID,
		Content:   content,
		CreatedAt: s.nowFunc().UTC(),
	}
	if err := s.posts.CreateComment(ctx, c); err != nil {
		return nil, err
	}
	return s.posts.GetComment(ctx, c.ID)
}
