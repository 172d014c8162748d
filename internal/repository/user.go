// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"
	"strings"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	List(ctx context.Context, limit, offset int) ([]models.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

// Create inserts the user inside a transaction. The very first account in
// the table gets the admin role; the email unique index backs duplicate
// detection so concurrent registrations with the same address cannot both
// succeed. The count-then-insert read is not serialized under postgres read
// committed, so the single-admin partial index is the real arbiter: when two
// first registrations race, the loser's admin insert fails and is retried as
// a member.
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	assignRole := user.Role == ""
	err := r.insert(ctx, user, assignRole)
	if err != nil && assignRole && user.Role == models.RoleAdmin && isAdminRoleConflict(err) {
		user.Role = models.RoleMember
		err = r.insert(ctx, user, false)
	}
	if err != nil {
		if isAdminRoleConflict(err) {
			return models.NewConflictError("An admin account already exists", "")
		}
		if isUniqueConstraintError(err) {
			return models.NewConflictError("A user with that email already exists", "")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) insert(ctx context.Context, user *models.User, assignRole bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if assignRole {
			var count int64
			if err := tx.Model(&models.User{}).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				user.Role = models.RoleAdmin
			} else {
				user.Role = models.RoleMember
			}
		}
		return tx.Create(user).Error
	})
}

func (r *userRepository) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Order("id ASC").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

// isAdminRoleConflict reports whether err is a violation of the single-admin
// partial index. Postgres names the index, sqlite names the column.
func isAdminRoleConflict(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "idx_users_single_admin") ||
		strings.Contains(msg, "users.role")
}

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL unique violation SQLSTATE 23505; SQLite reports
	// "UNIQUE constraint failed".
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}
