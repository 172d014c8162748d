package server

import (
	"context"
	"net/http"
	"testing"
	"time"

	"inkwell/internal/config"
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/service"
	"inkwell/internal/session"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockUserRepository is a mock of the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

// MockPostRepository is a mock of the PostRepository interface
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.BlogPost) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(ctx context.Context, id uint) (*models.BlogPost, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BlogPost), args.Error(1)
}

func (m *MockPostRepository) List(ctx context.Context) ([]*models.BlogPost, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BlogPost), args.Error(1)
}

func (m *MockPostRepository) Update(ctx context.Context, post *models.BlogPost) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCommentRepository is a mock of the CommentRepository interface
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Comment), args.Error(1)
}

// newTestServer wires a Server around the given mocks with an in-process
// session store, and returns it with a Fiber app carrying the real routes.
func newTestServer(userRepo repository.UserRepository, postRepo repository.PostRepository, commentRepo repository.CommentRepository) (*Server, *fiber.App) {
	sessions := session.NewManager(session.NewMemoryStore(), "test-secret", time.Hour)

	s := &Server{
		config: &config.Config{
			Port:            "8375",
			SecretKey:       "test-secret",
			SessionTTLHours: 1,
			Env:             "test",
		},
		sessions:    sessions,
		userRepo:    userRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
	}
	s.authService = service.NewAuthService(userRepo, sessions)
	s.postService = service.NewPostService(postRepo)
	s.commentService = service.NewCommentService(commentRepo, postRepo)

	app := fiber.New()
	s.SetupRoutes(app)
	return s, app
}

// loginAs issues a session for userID and returns the cookie to attach to
// requests.
func loginAs(t *testing.T, s *Server, userID uint) *http.Cookie {
	t.Helper()
	token, err := s.sessions.Issue(context.Background(), userID)
	require.NoError(t, err)
	return &http.Cookie{Name: sessionCookieName, Value: token}
}
