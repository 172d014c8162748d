package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetComments(t *testing.T) {
	mockPosts := new(MockPostRepository)
	mockPosts.On("GetByID", mock.Anything, uint(1)).
		Return(&models.BlogPost{ID: 1, Title: "First"}, nil)

	mockComments := new(MockCommentRepository)
	mockComments.On("ListByPost", mock.Anything, uint(1)).Return([]*models.Comment{
		{ID: 1, Text: "First!", Author: models.User{Email: "a@example.com"}},
		{ID: 2, Text: "Second!", Author: models.User{Email: "b@example.com"}},
	}, nil)

	_, app := newTestServer(new(MockUserRepository), mockPosts, mockComments)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/posts/1/comments", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, float64(2), body["count"])
	mockComments.AssertExpectations(t)
}

func TestGetCommentsMissingPost(t *testing.T) {
	mockPosts := new(MockPostRepository)
	mockPosts.On("GetByID", mock.Anything, uint(404)).
		Return(nil, models.NewNotFoundError("Post", uint(404)))

	_, app := newTestServer(new(MockUserRepository), mockPosts, new(MockCommentRepository))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/posts/404/comments", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateComment(t *testing.T) {
	body := map[string]string{"text": "Nice post!"}

	t.Run("Anonymous Rejected", func(t *testing.T) {
		mockComments := new(MockCommentRepository)
		_, app := newTestServer(new(MockUserRepository), new(MockPostRepository), mockComments)

		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/posts/1/comments", body))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		mockComments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Logged In User Comments", func(t *testing.T) {
		mockComments := new(MockCommentRepository)
		mockComments.On("Create", mock.Anything, mock.MatchedBy(func(c *models.Comment) bool {
			return c.AuthorID == 2 && c.PostID == 1 && c.Text == "Nice post!"
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*models.Comment).ID = 7
		}).Return(nil)
		mockComments.On("GetByID", mock.Anything, uint(7)).Return(&models.Comment{
			ID:     7,
			Text:   "Nice post!",
			Author: models.User{ID: 2, Email: "member@example.com"},
		}, nil)

		s, app := newTestServer(new(MockUserRepository), new(MockPostRepository), mockComments)

		req := jsonRequest(t, http.MethodPost, "/api/posts/1/comments", body)
		req.AddCookie(loginAs(t, s, 2))

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		mockComments.AssertExpectations(t)
	})

	t.Run("Empty Text Rejected", func(t *testing.T) {
		s, app := newTestServer(new(MockUserRepository), new(MockPostRepository), new(MockCommentRepository))

		req := jsonRequest(t, http.MethodPost, "/api/posts/1/comments", map[string]string{"text": ""})
		req.AddCookie(loginAs(t, s, 2))

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Missing Post", func(t *testing.T) {
		mockComments := new(MockCommentRepository)
		mockComments.On("Create", mock.Anything, mock.Anything).
			Return(models.NewNotFoundError("Post", uint(404)))

		s, app := newTestServer(new(MockUserRepository), new(MockPostRepository), mockComments)

		req := jsonRequest(t, http.MethodPost, "/api/posts/404/comments", body)
		req.AddCookie(loginAs(t, s, 2))

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
