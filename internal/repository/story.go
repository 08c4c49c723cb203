package repository

import (
	"context"

	"instafeed/internal/cache"
	"instafeed/internal/models"

	"gorm.io/gorm"
)

// StoryRepository reads the story rail.
type StoryRepository interface {
	List(ctx context.Context, limit int) ([]models.Story, error)
}

type storyRepository struct {
	db *gorm.DB
}

// NewStoryRepository creates a new story repository
func NewStoryRepository(db *gorm.DB) StoryRepository {
	return &storyRepository{db: db}
}

// List returns stories in insertion order.
func (r *storyRepository) List(ctx context.Context, limit int) ([]models.Story, error) {
	var stories []models.Story
	err := cache.Aside(ctx, cache.StoriesKey, &stories, cache.StoriesTTL, func() error {
		return r.db.WithContext(ctx).
			Order("created_at ASC").
			Limit(limit).
			Find(&stories).Error
	})
	return stories, err
}

// ExploreRepository reads the explore grid.
type ExploreRepository interface {
	Images(ctx context.Context) ([]string, error)
}

type exploreRepository struct {
	db *gorm.DB
}

// NewExploreRepository creates a new explore repository
func NewExploreRepository(db *gorm.DB) ExploreRepository {
	return &exploreRepository{db: db}
}

func (r *exploreRepository) Images(ctx context.Context) ([]string, error) {
	var urls []string
	err := cache.Aside(ctx, cache.ExploreKey, &urls, cache.ExploreTTL, func() error {
		return r.db.WithContext(ctx).
			Model(&models.ExploreImage{}).
			Order("position ASC").
			Pluck("url", &urls).Error
	})
	return urls, err
}
