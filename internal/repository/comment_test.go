package repository

import (
	"context"
	"fmt"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepository_CreateAndList(t *testing.T) {
	db := newTestDB(t)
	author := createTestAuthor(t, db)
	posts := NewPostRepository(db)
	comments := NewCommentRepository(db)
	ctx := context.Background()

	post := testPost(author.ID, "Commented Post")
	require.NoError(t, posts.Create(ctx, post))

	for i := 1; i <= 3; i++ {
		require.NoError(t, comments.Create(ctx, &models.Comment{
			Text:     fmt.Sprintf("Comment %d", i),
			AuthorID: author.ID,
			PostID:   post.ID,
		}))
	}

	list, err := comments.ListByPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Comment 1", list[0].Text)
	assert.Equal(t, "Comment 3", list[2].Text)
	assert.Equal(t, "Author", list[0].Author.Name)
}

func TestCommentRepository_CreateOnMissingPost(t *testing.T) {
	db := newTestDB(t)
	author := createTestAuthor(t, db)
	comments := NewCommentRepository(db)

	err := comments.Create(context.Background(), &models.Comment{
		Text:     "Shouting into the void",
		AuthorID: author.ID,
		PostID:   404,
	})
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestCommentRepository_GetByID(t *testing.T) {
	db := newTestDB(t)
	author := createTestAuthor(t, db)
	posts := NewPostRepository(db)
	comments := NewCommentRepository(db)
	ctx := context.Background()

	post := testPost(author.ID, "Post")
	require.NoError(t, posts.Create(ctx, post))

	comment := &models.Comment{Text: "Hello", AuthorID: author.ID, PostID: post.ID}
	require.NoError(t, comments.Create(ctx, comment))

	got, err := comments.GetByID(ctx, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello", got.Text)
	assert.Equal(t, author.ID, got.Author.ID)

	_, err = comments.GetByID(ctx, 9999)
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestCommentRepository_ListByPostEmpty(t *testing.T) {
	db := newTestDB(t)
	author := createTestAuthor(t, db)
	posts := NewPostRepository(db)
	comments := NewCommentRepository(db)
	ctx := context.Background()

	post := testPost(author.ID, "Quiet Post")
	require.NoError(t, posts.Create(ctx, post))

	list, err := comments.ListByPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}
