package postgres

import (
	"context"
	"errors"

	domain "microblog/backend/internal/domain/post"

	"github.com/jackc/pgx/v5"
)

// PostRepository persists posts, likes, and comments in PostgreSQL.
type PostRepository struct {
	db DB
}

// NewPostRepository constructs a repository.
func NewPostRepository(db DB) *PostRepository {
	return &PostRepository{db: db}
}

const postSelect = `
SELECT p.id, p.author_id, p.content, p.created_at,
       u.email, u.name, u.bio,
       COALESCE(array_agg(l.user_id ORDER BY l.created_at) FILTER (WHERE l.user_id IS NOT NULL), '{}') AS liked_by
FROM posts p
JOIN users u ON u.id = p.author_id
LEFT JOIN likes l ON l.post_id = p.id
`

// Create inserts a new post.
func (r *PostRepository) Create(ctx context.Context, post *domain.Post) error {
	const query = `
INSERT INTO posts (id, author_id, content, created_at)
VALUES ($1, $2, $3, $4)
`
	_, err := r.db.Exec(ctx, query,
		post.ID,
		post.AuthorID,
		post.Content,
		post.CreatedAt,
	)
	return err
}

// GetByID fetches a post by id including author and like details.
func (r *PostRepository) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	const query = postSelect + `
WHERE p.id = $1
GROUP BY p.id, u.id
`
	row := r.db.QueryRow(ctx, query, id)
	post, err := scanPost(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return post, nil
}

// List returns the feed, newest posts first.
func (r *PostRepository) List(ctx context.Context) ([]*domain.Post, error) {
	const query = postSelect + `
GROUP BY p.id, u.id
ORDER BY p.created_at DESC
`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPosts(rows)
}

// ListByAuthor returns the author's posts, newest first.
func (r *PostRepository) ListByAuthor(ctx context.Context, authorID string) ([]*domain.Post, error) {
	const query = postSelect + `
WHERE p.author_id = $1
GROUP BY p.id, u.id
ORDER BY p.created_at DESC
`
	rows, err := r.db.Query(ctx, query, authorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPosts(rows)
}

// HasLike reports whether the user currently likes the post.
func (r *PostRepository) HasLike(ctx context.Context, userID, postID string) (bool, error) {
	const query = `
SELECT EXISTS (SELECT 1 FROM likes WHERE user_id = $1 AND post_id = $2)
`
	var exists bool
	if err := r.db.QueryRow(ctx, query, userID, postID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// AddLike records a like for the post.
func (r *PostRepository) AddLike(ctx context.Context, userID, postID string) error {
	const query = `
INSERT INTO likes (user_id, post_id, created_at)
VALUES ($1, $2, now())
ON CONFLICT (user_id, post_id) DO NOTHING
`
	_, err := r.db.Exec(ctx, query, userID, postID)
	return err
}

// RemoveLike deletes the user's like from the post.
func (r *PostRepository) RemoveLike(ctx context.Context, userID, postID string) error {
	const query = `DELETE FROM likes WHERE user_id = $1 AND post_id = $2`
	_, err := r.db.Exec(ctx, query, userID, postID)
	return err
}

// CreateComment inserts a new comment.
func (r *PostRepository) CreateComment(ctx context.Context, comment *domain.Comment) error {
	const query = `
INSERT INTO comments (id, post_id, author_id, content, created_at)
VALUES ($1, $2, $3, $4, $5)
`
	_, err := r.db.Exec(ctx, query,
		comment.ID,
		comment.PostID,
		comment.AuthorID,
		comment.Content,
		comment.CreatedAt,
	)
	return err
}

const commentSelect = `
SELECT c.id, c.post_id, c.author_id, c.content, c.created_at,
       u.email, u.name, u.bio
FROM comments c
JOIN users u ON u.id = c.author_id
`

// GetComment fetches a single comment by id including its author.
func (r *PostRepository) GetComment(ctx context.Context, id string) (*domain.Comment, error) {
	const query = commentSelect + `
WHERE c.id = $1
`
	row := r.db.QueryRow(ctx, query, id)
	comment, err := scanComment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return comment, nil
}

// ListComments returns the post's comments, oldest first.
func (r *PostRepository) ListComments(ctx context.Context, postID string) ([]*domain.Comment, error) {
	const query = commentSelect + `
WHERE c.post_id = $1
ORDER BY c.created_at ASC
`
	rows, err := r.db.Query(ctx, query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*domain.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func collectPosts(rows pgx.Rows) ([]*domain.Post, error) {
	var posts []*domain.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func scanPost(row pgx.Row) (*domain.Post, error) {
	var (
		p      domain.Post
		author domain.Author
	)
	err := row.Scan(
		&p.ID,
		&p.AuthorID,
		&p.Content,
		&p.CreatedAt,
		&author.Email,
		&author.Name,
		&author.Bio,
		&p.LikedBy,
	)
	if err != nil {
		return nil, err
	}
	author.ID = p.AuthorID
	if p.LikedBy == nil {
		p.LikedBy = []string{}
	}
	p.Author = &author
	p.LikeCount = len(p.LikedBy)
	return &p, nil
}

func scanComment(row pgx.Row) (*domain.Comment, error) {
	var (
		c      domain.Comment
		author domain.Author
	)
	err := row.Scan(
		&c.ID,
		&c.PostID,
		&c.AuthorID,
		&c.Content,
		&c.CreatedAt,
		&author.Email,
		&author.Name,
		&author.Bio,
	)
	if err != nil {
		return nil, err
	}
	author.ID = c.AuthorID
	c.Author = &author
	return &c, nil
}
