package user

import (
	"context"
	"strings"
	"time"

	authdomain "microblog/backend/internal/domain/auth"
	postdomain "microblog/backend/internal/domain/post"
)

// Service assembles public user profiles.
type Service struct {
	users authdomain.UserRepository
	posts postdomain.Repository
}

// NewService constructs a user service.
func NewService(users authdomain.UserRepository, posts postdomain.Repository) *Service {
	return &Service{users: users, posts: posts}
}

// Profile is the public view of a user together with their posts.
type Profile struct {
	ID        string             `json:"id"`
	Email     string             `json:"email"`
	Name      string             `json:"name"`
	Bio       string             `json:"bio"`
	CreatedAt time.Time          `json:"createdAt"`
	Posts     []*postdomain.Post `json:"posts"`
}

// Profile returns the public profile for the given user id, including
// their posts newest first.
func (s *Service) Profile(ctx context.Context, id string) (*Profile, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, authdomain.ErrUserNotFound
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	posts, err := s.posts.ListByAuthor(ctx, id)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []*postdomain.Post{}
	}

	return &Profile{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Bio:       user.Bio,
		CreatedAt: user.CreatedAt,
		Posts:     posts,
	}, nil
}
