// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"instafeed/internal/cache"
	"instafeed/internal/models"
	"instafeed/internal/observability"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	List(ctx context.Context, limit int) ([]models.Post, error)
	GetByID(ctx context.Context, id string) (*models.Post, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]models.Post, error)
	ListSaved(ctx context.Context, limit int) ([]models.Post, error)
	ToggleLike(ctx context.Context, id string) (*models.LikeState, error)
	ToggleSave(ctx context.Context, id string) (*models.SaveState, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db, log: observability.NewRepoLogger("posts")}
}

// List returns the newest posts first. The default-sized feed page is cached.
func (r *postRepository) List(ctx context.Context, limit int) ([]models.Post, error) {
	defer observability.TrackQuery("list", "posts")()

	var posts []models.Post
	load := func() error {
		return r.db.WithContext(ctx).
			Order("created_at DESC").
			Limit(limit).
			Find(&posts).Error
	}

	if limit != FeedLimit {
		return posts, load()
	}
	if err := cache.Aside(ctx, cache.PostsListKey, &posts, cache.FeedTTL, load); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	defer observability.TrackQuery("get", "posts")()

	var post models.Post
	err := cache.Aside(ctx, cache.PostKey(id), &post, cache.PostTTL, func() error {
		return r.db.WithContext(ctx).First(&post, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) ListByUser(ctx context.Context, userID string, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) ListSaved(ctx context.Context, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Where("is_saved = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

// ToggleLike flips is_liked and moves likes_count by one in a single UPDATE,
// so concurrent toggles never lose an increment, then reads the result back.
func (r *postRepository) ToggleLike(ctx context.Context, id string) (*models.LikeState, error) {
	defer observability.TrackQuery("toggle_like", "posts")()

	var state models.LikeState
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Post{}).Where("id = ?", id).Updates(map[string]interface{}{
			"likes_count": gorm.Expr("CASE WHEN is_liked THEN likes_count - 1 ELSE likes_count + 1 END"),
			"is_liked":    gorm.Expr("NOT is_liked"),
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		var post models.Post
		if err := tx.Select("is_liked", "likes_count").First(&post, "id = ?", id).Error; err != nil {
			return err
		}
		state = models.LikeState{IsLiked: post.IsLiked, LikesCount: post.LikesCount}
		return nil
	})
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.LogError(ctx, err, "toggle_like")
		}
		return nil, err
	}

	cache.InvalidatePost(ctx, id)
	r.log.LogUpdate(ctx, map[string]interface{}{"id": id, "is_liked": state.IsLiked, "likes_count": state.LikesCount})
	return &state, nil
}

func (r *postRepository) ToggleSave(ctx context.Context, id string) (*models.SaveState, error) {
	defer observability.TrackQuery("toggle_save", "posts")()

	var state models.SaveState
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Post{}).Where("id = ?", id).
			Update("is_saved", gorm.Expr("NOT is_saved"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		var post models.Post
		if err := tx.Select("is_saved").First(&post, "id = ?", id).Error; err != nil {
			return err
		}
		state.IsSaved = post.IsSaved
		return nil
	})
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.LogError(ctx, err, "toggle_save")
		}
		return nil, err
	}

	cache.InvalidatePost(ctx, id)
	r.log.LogUpdate(ctx, map[string]interface{}{"id": id, "is_saved": state.IsSaved})
	return &state, nil
}
