package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"instafeed/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Factory builds synthetic posts and comments on top of the built-in users.
type Factory struct {
	db    *gorm.DB
	faker *gofakeit.Faker
	now   func() time.Time
}

// NewFactory creates a Factory. A zero seed picks a random one.
func NewFactory(db *gorm.DB, seed int64) *Factory {
	return &Factory{db: db, faker: gofakeit.New(seed), now: time.Now}
}

// BuildPost constructs an unsaved post authored by user.
func (f *Factory) BuildPost(user models.User) models.Post {
	id := f.faker.UUID()
	return models.Post{
		ID:            "post_" + id[:8],
		UserID:        user.ID,
		Username:      user.Username,
		UserAvatar:    user.AvatarURL,
		ImageURL:      fmt.Sprintf("https://picsum.photos/seed/%s/800/1000", id),
		Caption:       f.faker.Sentence(f.faker.Number(4, 12)),
		LikesCount:    f.faker.Number(0, 250000),
		CommentsCount: f.faker.Number(0, 400),
		Location:      fmt.Sprintf("%s, %s", f.faker.City(), f.faker.Country()),
		CreatedAt:     f.now().UTC().Add(-time.Duration(f.faker.Number(1, 90*24)) * time.Hour),
	}
}

// BuildComment constructs an unsaved comment under post.
func (f *Factory) BuildComment(post models.Post, author models.User) models.Comment {
	return models.Comment{
		ID:         f.faker.UUID(),
		PostID:     post.ID,
		UserID:     author.ID,
		Username:   author.Username,
		UserAvatar: author.AvatarURL,
		Text:       f.faker.Sentence(f.faker.Number(3, 15)),
		CreatedAt:  post.CreatedAt.Add(time.Duration(f.faker.Number(1, 600)) * time.Minute),
	}
}

// GeneratePosts persists n synthetic posts spread over the existing users,
// each with up to three comments, and returns them.
func (f *Factory) GeneratePosts(ctx context.Context, n int) ([]models.Post, error) {
	var users []models.User
	if err := f.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, errors.New("generate posts: no users to author them; seed first")
	}

	posts := make([]models.Post, 0, n)
	var comments []models.Comment
	for i := 0; i < n; i++ {
		p := f.BuildPost(users[f.faker.Number(0, len(users)-1)])
		k := f.faker.Number(0, 3)
		for j := 0; j < k; j++ {
			comments = append(comments, f.BuildComment(p, users[f.faker.Number(0, len(users)-1)]))
		}
		p.CommentsCount += k
		posts = append(posts, p)
	}

	err := f.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(posts) > 0 {
			if err := tx.Create(&posts).Error; err != nil {
				return err
			}
		}
		if len(comments) > 0 {
			if err := tx.Create(&comments).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("generate posts: %w", err)
	}
	return posts, nil
}
