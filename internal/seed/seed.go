// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"inkwell/internal/auth"
	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// DefaultPassword is the password every seeded account gets.
const DefaultPassword = "password123"

// Seeder populates the database with demo users, posts, and comments.
type Seeder struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll deletes all seeded data. Comments go first so no row ever points
// at a missing post or author.
func (s *Seeder) ClearAll() error {
	for _, model := range []any{&models.Comment{}, &models.BlogPost{}, &models.User{}} {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return fmt.Errorf("clearing %T: %w", model, err)
		}
	}
	return nil
}

// Seed creates the admin account, numUsers member accounts, numPosts posts
// authored by the admin, and a handful of comments per post. The admin is
// created first so the first-account-is-admin rule lands on a known login.
func (s *Seeder) Seed(numUsers, numPosts int) error {
	digest, err := auth.HashPassword(DefaultPassword)
	if err != nil {
		return fmt.Errorf("hashing seed password: %w", err)
	}

	admin := &models.User{
		Email:    "admin@example.com",
		Password: digest,
		Name:     "Site Admin",
		Role:     models.RoleAdmin,
	}
	if err := s.db.Create(admin).Error; err != nil {
		return fmt.Errorf("creating admin: %w", err)
	}

	users := make([]*models.User, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		user := &models.User{
			Email:    gofakeit.Email(),
			Password: digest,
			Name:     gofakeit.Name(),
			Role:     models.RoleMember,
		}
		if err := s.db.Create(user).Error; err != nil {
			return fmt.Errorf("creating user: %w", err)
		}
		users = append(users, user)
	}

	for i := 0; i < numPosts; i++ {
		published := time.Now().AddDate(0, 0, -s.rng.Intn(365))
		post := &models.BlogPost{
			Title:    fmt.Sprintf("%s #%d", gofakeit.Sentence(4), i+1),
			Subtitle: gofakeit.Sentence(7),
			Body:     gofakeit.Paragraph(3, 5, 12, "\n\n"),
			ImageURL: fmt.Sprintf("https://picsum.photos/seed/%s/1200/600", gofakeit.UUID()),
			Date:     published.Format(models.PostDateFormat),
			AuthorID: admin.ID,
		}
		if err := s.db.Create(post).Error; err != nil {
			return fmt.Errorf("creating post: %w", err)
		}

		if len(users) == 0 {
			continue
		}
		for j := 0; j < s.rng.Intn(5); j++ {
			comment := &models.Comment{
				Text:     gofakeit.Sentence(12),
				AuthorID: users[s.rng.Intn(len(users))].ID,
				PostID:   post.ID,
			}
			if err := s.db.Create(comment).Error; err != nil {
				return fmt.Errorf("creating comment: %w", err)
			}
		}
	}

	log.Printf("Seeded %d users (+admin) and %d posts", numUsers, numPosts)
	return nil
}
