package repository

import (
	"context"
	"errors"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository defines the interface for blog post data operations.
type PostRepository interface {
	Create(ctx context.Context, post *models.BlogPost) error
	GetByID(ctx context.Context, id uint) (*models.BlogPost, error)
	List(ctx context.Context) ([]*models.BlogPost, error)
	Update(ctx context.Context, post *models.BlogPost) error
	Delete(ctx context.Context, id uint) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.BlogPost) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("A post with that title already exists", "")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidatePostsList(ctx)
	return nil
}

// GetByID loads a post with its author and comments (comment authors
// included, for the comment section). Anonymous and authenticated readers
// see the same payload, so the detail view is served cache-aside.
func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.BlogPost, error) {
	var post models.BlogPost
	key := cache.PostKey(id)

	err := cache.Aside(ctx, key, &post, cache.PostTTL, func() error {
		return r.db.WithContext(ctx).
			Preload("Author").
			Preload("Comments", func(db *gorm.DB) *gorm.DB {
				return db.Order("comments.id ASC")
			}).
			Preload("Comments.Author").
			First(&post, id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

// List returns all posts with their authors in insertion order (ascending
// id), matching the order they appear on the index page.
func (r *postRepository) List(ctx context.Context) ([]*models.BlogPost, error) {
	var posts []*models.BlogPost

	err := cache.Aside(ctx, cache.PostsListKey(), &posts, cache.ListTTL, func() error {
		return r.db.WithContext(ctx).
			Preload("Author").
			Order("id ASC").
			Find(&posts).Error
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// Update overwrites the post's mutable fields in one write. The write is
// scoped to the post row: GetByID hands back Author and Comments preloaded,
// and letting Save walk those associations would write AuthorID back from
// the stale preloaded author, undoing a reassignment.
func (r *postRepository) Update(ctx context.Context, post *models.BlogPost) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(post).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("A post with that title already exists", "")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, post.ID)
	cache.InvalidatePostsList(ctx)
	return nil
}

// Delete removes the post and all its comments in a single transaction, so
// no comment row can survive with a dangling post reference.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.BlogPost{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Post", id)
		}
		return nil
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return models.NewInternalError(err)
	}

	cache.InvalidatePost(ctx, id)
	cache.InvalidatePostsList(ctx)
	return nil
}
