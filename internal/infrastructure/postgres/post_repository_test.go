package postgres

import (
	"context"
	"testing"
	"time"

	domain "microblog/backend/internal/domain/post"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postColumns() []string {
	return []string{"id", "author_id", "content", "created_at", "email", "name", "bio", "liked_by"}
}

func TestPostRepository_GetByID(t *testing.T) {
	now := time.Now().UTC()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	rows := pgxmock.NewRows(postColumns()).
		AddRow("p1", "u1", "hello", now, "alice@example.com", "Alice", "hi", []string{"u2", "u3"})
	mock.ExpectQuery("SELECT p.id, p.author_id, p.content, p.created_at").
		WithArgs("p1").
		WillReturnRows(rows)

	repo := NewPostRepository(mock)
	post, err := repo.GetByID(context.Background(), "p1")
	require.NoError(t, err)

	assert.Equal(t, "p1", post.ID)
	assert.Equal(t, "hello", post.Content)
	require.NotNil(t, post.Author)
	assert.Equal(t, "u1", post.Author.ID)
	assert.Equal(t, "Alice", post.Author.Name)
	assert.Equal(t, []string{"u2", "u3"}, post.LikedBy)
	assert.Equal(t, 2, post.LikeCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT p.id, p.author_id, p.content, p.created_at").
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	repo := NewPostRepository(mock)
	_, err = repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_List(t *testing.T) {
	now := time.Now().UTC()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	rows := pgxmock.NewRows(postColumns()).
		AddRow("p2", "u1", "second", now, "alice@example.com", "Alice", "hi", []string{}).
		AddRow("p1", "u1", "first", now.Add(-time.Minute), "alice@example.com", "Alice", "hi", []string{"u2"})
	mock.ExpectQuery("SELECT p.id, p.author_id, p.content, p.created_at").
		WillReturnRows(rows)

	repo := NewPostRepository(mock)
	posts, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "p2", posts[0].ID)
	assert.Zero(t, posts[0].LikeCount)
	assert.Equal(t, 1, posts[1].LikeCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_Create(t *testing.T) {
	now := time.Now().UTC()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("INSERT INTO posts").
		WithArgs("p1", "u1", "hello", now).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	repo := NewPostRepository(mock)
	err = repo.Create(context.Background(), &domain.Post{
		ID:        "p1",
		AuthorID:  "u1",
		Content:   "hello",
		CreatedAt: now,
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_Likes(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("u1", "p1").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec("INSERT INTO likes").
		WithArgs("u1", "p1").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("DELETE FROM likes").
		WithArgs("u1", "p1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	repo := NewPostRepository(mock)

	liked, err := repo.HasLike(context.Background(), "u1", "p1")
	require.NoError(t, err)
	assert.False(t, liked)

	require.NoError(t, repo.AddLike(context.Background(), "u1", "p1"))
	require.NoError(t, repo.RemoveLike(context.Background(), "u1", "p1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_Comments(t *testing.T) {
	now := time.Now().UTC()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("INSERT INTO comments").
		WithArgs("c1", "p1", "u2", "nice", now).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	commentColumns := []string{"id", "post_id", "author_id", "content", "created_at", "email", "name", "bio"}
	mock.ExpectQuery("SELECT c.id, c.post_id, c.author_id, c.content, c.created_at").
		WithArgs("p1").
		WillReturnRows(pgxmock.NewRows(commentColumns).
			AddRow("c1", "p1", "u2", "nice", now, "bob@example.com", "Bob", ""))

	repo := NewPostRepository(mock)

	err = repo.CreateComment(context.Background(), &domain.Comment{
		ID:        "c1",
		PostID:    "p1",
		AuthorID:  "u2",
		Content:   "nice",
		CreatedAt: now,
	})
	require.NoError(t, err)

	comments, err := repo.ListComments(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "nice", comments[0].Content)
	require.NotNil(t, comments[0].Author)
	assert.Equal(t, "Bob", comments[0].Author.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
