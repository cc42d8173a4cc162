// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"photogram/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configures a seeding run.
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// DemoPassword is assigned to every seeded user.
const DemoPassword = "Password123!"

var genres = []string{
	"Portrait", "Landscape", "Street", "Wildlife", "Macro",
	"Architecture", "Travel", "Food", "Sports", "Documentary",
}

// Seed populates the database with demo users, posts, comments, likes,
// and favorites.
func Seed(db *gorm.DB, opts Options) error {
	gofakeit.Seed(time.Now().UnixNano())
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	log.Printf("Seeding %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			return fmt.Errorf("cleanup failed: %w", err)
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		first := gofakeit.FirstName()
		last := gofakeit.LastName()
		user := &models.User{
			Fullname: first + " " + last,
			Username: fmt.Sprintf("%s%s%d", strings.ToLower(first), strings.ToLower(last), r.Intn(1000)),
			Email:    strings.ToLower(fmt.Sprintf("%s.%s%d@%s", first, last, r.Intn(1000), gofakeit.DomainName())),
			Password: string(hashed),
			Website:  gofakeit.URL(),
			Bio:      gofakeit.Sentence(8),
			Phone:    gofakeit.Phone(),
			Genre:    genres[r.Intn(len(genres))],
			Avatar:   fmt.Sprintf("https://picsum.photos/seed/avatar-%s/200/200", gofakeit.UUID()),
			Role:     models.RoleUser,
		}
		if i == 0 {
			user.Username = "admin"
			user.Email = "admin@photogram.local"
			user.Role = models.RoleAdmin
		}
		if err := db.Create(user).Error; err != nil {
			return fmt.Errorf("seeding user %d: %w", i, err)
		}
		users = append(users, user)
	}

	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		owner := users[r.Intn(len(users))]
		post := &models.Post{
			Title:       gofakeit.Sentence(4),
			Description: gofakeit.Paragraph(1, 2, 6, "\n"),
			Image:       fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID()),
			UserID:      owner.ID,
			// realistic created_at spread over the last 90 days
			CreatedAt: time.Now().Add(-time.Duration(r.Intn(90*24)) * time.Hour),
		}
		if err := db.Create(post).Error; err != nil {
			return fmt.Errorf("seeding post %d: %w", i, err)
		}
		posts = append(posts, post)
	}

	for _, post := range posts {
		for _, user := range users {
			if r.Intn(4) == 0 {
				comment := &models.Comment{
					Content: gofakeit.Sentence(10),
					UserID:  user.ID,
					PostID:  post.ID,
				}
				if err := db.Create(comment).Error; err != nil {
					return fmt.Errorf("seeding comment: %w", err)
				}
			}
			if r.Intn(3) == 0 {
				if err := db.Create(&models.Like{UserID: user.ID, PostID: post.ID}).Error; err != nil {
					return fmt.Errorf("seeding like: %w", err)
				}
			}
			if r.Intn(6) == 0 {
				if err := db.Create(&models.Favorite{UserID: user.ID, PostID: post.ID}).Error; err != nil {
					return fmt.Errorf("seeding favorite: %w", err)
				}
			}
		}
	}

	log.Printf("Seeding complete: %d users, %d posts", len(users), len(posts))
	return nil
}

// clearData removes all rows in dependency order so foreign keys never trip.
func clearData(db *gorm.DB) error {
	for _, model := range []interface{}{
		&models.Favorite{},
		&models.Like{},
		&models.Comment{},
		&models.Post{},
		&models.User{},
	} {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}
