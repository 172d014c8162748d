package service

import (
	"context"
	"strings"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"
)

const (
	maxTitleLen = 250
	maxBodyLen  = 50000
)

// PostService implements blog post CRUD. Authorization happens at the route
// gate before any of these run; the service assumes the caller was allowed.
type PostService struct {
	posts repository.PostRepository
	now   func() time.Time
}

// CreatePostInput carries the new-post form fields.
type CreatePostInput struct {
	AuthorID uint
	Title    string
	Subtitle string
	Body     string
	ImageURL string
}

// UpdatePostInput carries the edit-post form fields. EditorID becomes the
// post's author: editing a post reassigns it to whoever edited it.
type UpdatePostInput struct {
	EditorID uint
	PostID   uint
	Title    string
	Subtitle string
	Body     string
	ImageURL string
}

// NewPostService returns a PostService over the given repository.
func NewPostService(posts repository.PostRepository) *PostService {
	return &PostService{
		posts: posts,
		now:   time.Now,
	}
}

func (s *PostService) validateFields(title, subtitle, body, imageURL string) error {
	if title == "" || subtitle == "" || body == "" || imageURL == "" {
		return models.NewValidationError("Title, subtitle, body, and image URL are required")
	}
	if len(title) > maxTitleLen {
		return models.NewValidationError("Title too long (max 250 characters)")
	}
	if len(subtitle) > maxTitleLen {
		return models.NewValidationError("Subtitle too long (max 250 characters)")
	}
	if len(body) > maxBodyLen {
		return models.NewValidationError("Body too long (max 50000 characters)")
	}
	if err := validation.ValidateURL(imageURL); err != nil {
		return models.NewValidationError("Image URL must be a valid URL")
	}
	return nil
}

// CreatePost validates the input and stores a new post. The display date is
// stamped here, once, and edits never touch it.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.BlogPost, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Subtitle = strings.TrimSpace(in.Subtitle)
	if err := s.validateFields(in.Title, in.Subtitle, in.Body, in.ImageURL); err != nil {
		return nil, err
	}

	post := &models.BlogPost{
		Title:    in.Title,
		Subtitle: in.Subtitle,
		Body:     in.Body,
		ImageURL: in.ImageURL,
		Date:     s.now().Format(models.PostDateFormat),
		AuthorID: in.AuthorID,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	return s.posts.GetByID(ctx, post.ID)
}

// UpdatePost overwrites all mutable fields of the post and reassigns the
// author to the editor. The publish date keeps its original value.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.BlogPost, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Subtitle = strings.TrimSpace(in.Subtitle)
	if err := s.validateFields(in.Title, in.Subtitle, in.Body, in.ImageURL); err != nil {
		return nil, err
	}

	post, err := s.posts.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}

	post.Title = in.Title
	post.Subtitle = in.Subtitle
	post.Body = in.Body
	post.ImageURL = in.ImageURL
	post.AuthorID = in.EditorID

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.posts.GetByID(ctx, post.ID)
}

// DeletePost removes the post and, with it, every comment on it.
func (s *PostService) DeletePost(ctx context.Context, id uint) error {
	return s.posts.Delete(ctx, id)
}

// GetPost returns a post with its author and comment section.
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.BlogPost, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	decorateAvatars(post)
	return post, nil
}

// ListPosts returns all posts in the order they were published.
func (s *PostService) ListPosts(ctx context.Context) ([]*models.BlogPost, error) {
	return s.posts.List(ctx)
}

// decorateAvatars fills the computed avatar URL on the post's comment
// authors for the comment section.
func decorateAvatars(post *models.BlogPost) {
	for i := range post.Comments {
		post.Comments[i].Author.Avatar = post.Comments[i].Author.GravatarURL()
	}
}
