// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configures the seeder.
type Options struct {
	NumUsers    int
	NumPosts    int
	NumComments int
	ShouldClean bool
}

// DefaultOptions mirrors the shipped development dataset: ten random
// users plus a fixed login, thirty posts and a hundred comments.
func DefaultOptions() Options {
	return Options{
		NumUsers:    10,
		NumPosts:    30,
		NumComments: 100,
		ShouldClean: true,
	}
}

// TestUserEmail is the fixed account every seeded database contains.
// Its password is "password".
const TestUserEmail = "test@example.com"

// Seed populates the database with fake users, posts and comments.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Seeding %d users, %d posts, %d comments...", opts.NumUsers, opts.NumPosts, opts.NumComments)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	users, err := createUsers(db, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d users created", len(users))

	posts, err := createPosts(db, users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("✓ %d posts created", len(posts))

	comments, err := createComments(db, users, posts, opts.NumComments)
	if err != nil {
		return fmt.Errorf("failed to create comments: %w", err)
	}
	log.Printf("✓ %d comments created", comments)

	return nil
}

// clearData removes all rows in dependency order so foreign keys hold.
func clearData(db *gorm.DB) error {
	for _, model := range []interface{}{
		&models.Comment{},
		&models.Post{},
		&models.Token{},
		&models.User{},
	} {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

func createUsers(db *gorm.DB, count int) ([]models.User, error) {
	// All seeded accounts share one password so the hash is computed once.
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, count+1)
	users = append(users, models.User{
		Name:     "Test User",
		Email:    TestUserEmail,
		Password: string(hash),
	})

	seen := map[string]bool{TestUserEmail: true}
	for i := 0; i < count; i++ {
		name := gofakeit.Name()
		email := strings.ToLower(gofakeit.Username()) + fmt.Sprintf("%d@%s", i, gofakeit.DomainName())
		if seen[email] {
			email = fmt.Sprintf("user%d@example.net", i)
		}
		seen[email] = true
		users = append(users, models.User{
			Name:     name,
			Email:    email,
			Password: string(hash),
		})
	}

	if err := db.Create(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func createPosts(db *gorm.DB, users []models.User, count int) ([]models.Post, error) {
	statuses := []string{
		models.PostStatusDraft,
		models.PostStatusPublished,
		models.PostStatusArchived,
	}

	posts := make([]models.Post, 0, count)
	for i := 0; i < count; i++ {
		author := users[rand.Intn(len(users))]
		publishedAt := gofakeit.DateRange(time.Now().AddDate(-1, 0, 0), time.Now())
		posts = append(posts, models.Post{
			UserID:      author.ID,
			Title:       gofakeit.Sentence(rand.Intn(5) + 3),
			Content:     gofakeit.Paragraph(2, 4, 12, "\n\n"),
			Status:      statuses[rand.Intn(len(statuses))],
			PublishedAt: &publishedAt,
		})
	}

	if err := db.Create(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func createComments(db *gorm.DB, users []models.User, posts []models.Post, count int) (int, error) {
	if len(posts) == 0 {
		return 0, nil
	}

	comments := make([]models.Comment, 0, count)
	for i := 0; i < count; i++ {
		comments = append(comments, models.Comment{
			UserID:  users[rand.Intn(len(users))].ID,
			PostID:  posts[rand.Intn(len(posts))].ID,
			Content: gofakeit.Sentence(rand.Intn(12) + 4),
		})
	}

	if err := db.Create(&comments).Error; err != nil {
		return 0, err
	}
	return len(comments), nil
}
