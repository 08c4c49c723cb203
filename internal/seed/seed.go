package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"instafeed/internal/models"
	"instafeed/internal/observability"

	"gorm.io/gorm"
)

// Seeder writes the built-in dataset.
type Seeder struct {
	db  *gorm.DB
	now func() time.Time
}

// NewSeeder creates a Seeder bound to db.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, now: time.Now}
}

// Run wipes every feed table and inserts the built-in dataset in one transaction.
func (s *Seeder) Run(ctx context.Context) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := clearAll(tx); err != nil {
			return err
		}
		return s.insertBuiltIns(tx)
	})
	if err != nil {
		return fmt.Errorf("reseed: %w", err)
	}
	observability.GlobalLogger.InfoContext(ctx, "database seeded",
		slog.Int("users", len(Users())),
		slog.Int("posts", len(Posts())),
		slog.Int("stories", len(Stories())),
	)
	return nil
}

// EnsureSeeded inserts the built-in dataset only when no users exist.
// It reports whether anything was written.
func (s *Seeder) EnsureSeeded(ctx context.Context) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	if err := s.Run(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func clearAll(tx *gorm.DB) error {
	for _, m := range []any{&models.Comment{}, &models.Story{}, &models.Post{}, &models.ExploreImage{}, &models.User{}} {
		if err := tx.Where("1 = 1").Delete(m).Error; err != nil {
			return fmt.Errorf("clear %T: %w", m, err)
		}
	}
	return nil
}

// insertBuiltIns spaces created_at one minute apart so later entries sort as newer.
func (s *Seeder) insertBuiltIns(tx *gorm.DB) error {
	base := s.now().UTC().Truncate(time.Second)
	stamp := func(i, n int) time.Time {
		return base.Add(-time.Duration(n-i) * time.Minute)
	}

	users := Users()
	for i := range users {
		users[i].CreatedAt = stamp(i, len(users))
	}
	if err := tx.Create(&users).Error; err != nil {
		return fmt.Errorf("insert users: %w", err)
	}

	posts := Posts()
	for i := range posts {
		posts[i].CreatedAt = stamp(i, len(posts))
	}
	if err := tx.Create(&posts).Error; err != nil {
		return fmt.Errorf("insert posts: %w", err)
	}

	stories := Stories()
	for i := range stories {
		stories[i].CreatedAt = stamp(i, len(stories))
	}
	if err := tx.Create(&stories).Error; err != nil {
		return fmt.Errorf("insert stories: %w", err)
	}

	comments := Comments()
	for i := range comments {
		comments[i].CreatedAt = stamp(i, len(comments))
	}
	if err := tx.Create(&comments).Error; err != nil {
		return fmt.Errorf("insert comments: %w", err)
	}

	urls := ExploreImages()
	images := make([]models.ExploreImage, len(urls))
	for i, u := range urls {
		images[i] = models.ExploreImage{URL: u, Position: i}
	}
	if err := tx.Create(&images).Error; err != nil {
		return fmt.Errorf("insert explore images: %w", err)
	}
	return nil
}
