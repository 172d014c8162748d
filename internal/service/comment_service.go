package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/repository"
)

const maxCommentLen = 10000

// CommentService implements the comment section: authenticated readers
// leave comments on posts.
type CommentService struct {
	comments repository.CommentRepository
	posts    repository.PostRepository
}

// CreateCommentInput carries a submitted comment.
type CreateCommentInput struct {
	AuthorID uint
	PostID   uint
	Text     string
}

// NewCommentService returns a CommentService over the given repositories.
func NewCommentService(comments repository.CommentRepository, posts repository.PostRepository) *CommentService {
	return &CommentService{
		comments: comments,
		posts:    posts,
	}
}

// CreateComment stores a comment bound to the authenticated author and the
// target post. The route gate already rejected anonymous submissions; the
// zero-author check here keeps a miswired caller from creating orphaned
// rows.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if in.AuthorID == 0 {
		return nil, models.NewAuthenticationError("You need to log in to comment")
	}
	if in.Text == "" {
		return nil, models.NewValidationError("Comment text is required")
	}
	if len(in.Text) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}

	comment := &models.Comment{
		Text:     in.Text,
		AuthorID: in.AuthorID,
		PostID:   in.PostID,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	created, err := s.comments.GetByID(ctx, comment.ID)
	if err != nil {
		return nil, err
	}
	created.Author.Avatar = created.Author.GravatarURL()
	return created, nil
}

// ListComments returns a post's comment section, oldest first.
func (s *CommentService) ListComments(ctx context.Context, postID uint) ([]*models.Comment, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	for _, comment := range comments {
		comment.Author.Avatar = comment.Author.GravatarURL()
	}
	return comments, nil
}
