// Package service holds the feed business logic between handlers and repositories.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"instafeed/internal/models"
	"instafeed/internal/observability"
	"instafeed/internal/repository"
	"instafeed/internal/seed"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
)

// maxCommentLength bounds comment text.
const maxCommentLength = 2200

// FeedService implements the feed API operations.
type FeedService struct {
	posts    repository.PostRepository
	stories  repository.StoryRepository
	comments repository.CommentRepository
	users    repository.UserRepository
	explore  repository.ExploreRepository
	reseed   func(ctx context.Context) error
	now      func() time.Time
}

// NewFeedService wires the repositories. reseed may be nil, in which case
// Reseed reports an internal error.
func NewFeedService(
	posts repository.PostRepository,
	stories repository.StoryRepository,
	comments repository.CommentRepository,
	users repository.UserRepository,
	explore repository.ExploreRepository,
	reseed func(ctx context.Context) error,
) *FeedService {
	return &FeedService{
		posts:    posts,
		stories:  stories,
		comments: comments,
		users:    users,
		explore:  explore,
		reseed:   reseed,
		now:      time.Now,
	}
}

// notFound maps gorm's not-found sentinel onto the API taxonomy.
func notFound(err error, resource, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError(resource, id)
	}
	return err
}

func (s *FeedService) ListPosts(ctx context.Context) ([]models.Post, error) {
	return s.posts.List(ctx, repository.FeedLimit)
}

func (s *FeedService) GetPost(ctx context.Context, id string) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Post", id)
	}
	return post, nil
}

// ToggleLike flips the like on a post and returns the authoritative state.
func (s *FeedService) ToggleLike(ctx context.Context, id string) (*models.LikeState, error) {
	span, ctx := observability.NewSpan(ctx, "FeedService.ToggleLike")
	defer span.End()
	span.AddAttributes(attribute.String("post.id", id))

	state, err := s.posts.ToggleLike(ctx, id)
	if err != nil {
		span.SetError(err)
		return nil, notFound(err, "Post", id)
	}
	observability.RecordToggle("like", state.IsLiked)
	return state, nil
}

// ToggleSave flips the save flag on a post and returns the authoritative state.
func (s *FeedService) ToggleSave(ctx context.Context, id string) (*models.SaveState, error) {
	span, ctx := observability.NewSpan(ctx, "FeedService.ToggleSave")
	defer span.End()
	span.AddAttributes(attribute.String("post.id", id))

	state, err := s.posts.ToggleSave(ctx, id)
	if err != nil {
		span.SetError(err)
		return nil, notFound(err, "Post", id)
	}
	observability.RecordToggle("save", state.IsSaved)
	return state, nil
}

func (s *FeedService) ListStories(ctx context.Context) ([]models.Story, error) {
	return s.stories.List(ctx, repository.StoryLimit)
}

// Explore returns the explore grid; an empty table falls back to the built-in images.
func (s *FeedService) Explore(ctx context.Context) (*models.ExploreResponse, error) {
	urls, err := s.explore.Images(ctx)
	if err != nil {
		return nil, err
	}
	if len(urls) == 0 {
		urls = seed.ExploreImages()
	}
	return &models.ExploreResponse{Images: urls}, nil
}

// ListReels derives the reels surface from the newest posts.
func (s *FeedService) ListReels(ctx context.Context) ([]models.Reel, error) {
	posts, err := s.posts.List(ctx, repository.ReelLimit)
	if err != nil {
		return nil, err
	}
	reels := make([]models.Reel, 0, len(posts))
	for _, p := range posts {
		reels = append(reels, models.ReelFromPost(p))
	}
	return reels, nil
}

func (s *FeedService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx, repository.UserLimit)
}

// GetUser returns a user together with their posts.
func (s *FeedService) GetUser(ctx context.Context, id string) (*models.UserWithPosts, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "User", id)
	}
	posts, err := s.posts.ListByUser(ctx, id, repository.FeedLimit)
	if err != nil {
		return nil, err
	}
	return &models.UserWithPosts{User: *user, Posts: nonNil(posts)}, nil
}

// Profile returns the current viewer's profile with their posts and every saved post.
// When the profile account is missing the built-in account is returned without posts.
func (s *FeedService) Profile(ctx context.Context) (*models.Profile, error) {
	user, err := s.users.GetByID(ctx, seed.ProfileUserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.Profile{User: seed.Users()[0], Posts: []models.Post{}, SavedPosts: []models.Post{}}, nil
	}
	if err != nil {
		return nil, err
	}

	posts, err := s.posts.ListByUser(ctx, user.ID, repository.FeedLimit)
	if err != nil {
		return nil, err
	}
	saved, err := s.posts.ListSaved(ctx, repository.FeedLimit)
	if err != nil {
		return nil, err
	}
	return &models.Profile{User: *user, Posts: nonNil(posts), SavedPosts: nonNil(saved)}, nil
}

func (s *FeedService) ListComments(ctx context.Context, postID string) ([]models.Comment, error) {
	return s.comments.ListByPost(ctx, postID, repository.CommentLimit)
}

// AddComment validates the input, fills defaults and stores the comment.
func (s *FeedService) AddComment(ctx context.Context, postID string, in models.CommentInput) (*models.Comment, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, models.NewValidationError("Comment text is required")
	}
	if len([]rune(text)) > maxCommentLength {
		return nil, models.NewValidationError("Comment text is too long")
	}

	username := strings.TrimSpace(in.Username)
	if username == "" {
		username = models.DefaultCommentUsername
	}
	avatar := strings.TrimSpace(in.UserAvatar)
	if avatar == "" {
		avatar = models.DefaultCommentAvatar
	}

	comment := &models.Comment{
		ID:         uuid.NewString(),
		PostID:     postID,
		UserID:     models.CurrentUserID,
		Username:   username,
		UserAvatar: avatar,
		Text:       text,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, notFound(err, "Post", postID)
	}
	return comment, nil
}

// Reseed restores the built-in dataset.
func (s *FeedService) Reseed(ctx context.Context) error {
	if s.reseed == nil {
		return models.NewInternalError(errors.New("reseeding is not configured"))
	}
	return s.reseed(ctx)
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
