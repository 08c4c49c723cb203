package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"instafeed/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	listFn       func(context.Context, int) ([]models.Post, error)
	getByIDFn    func(context.Context, string) (*models.Post, error)
	listByUserFn func(context.Context, string, int) ([]models.Post, error)
	listSavedFn  func(context.Context, int) ([]models.Post, error)
	toggleLikeFn func(context.Context, string) (*models.LikeState, error)
	toggleSaveFn func(context.Context, string) (*models.SaveState, error)
}

func (s *postRepoStub) List(ctx context.Context, limit int) ([]models.Post, error) {
	return s.listFn(ctx, limit)
}
func (s *postRepoStub) GetByID(ctx context.Context, id string) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) ListByUser(ctx context.Context, userID string, limit int) ([]models.Post, error) {
	return s.listByUserFn(ctx, userID, limit)
}
func (s *postRepoStub) ListSaved(ctx context.Context, limit int) ([]models.Post, error) {
	return s.listSavedFn(ctx, limit)
}
func (s *postRepoStub) ToggleLike(ctx context.Context, id string) (*models.LikeState, error) {
	return s.toggleLikeFn(ctx, id)
}
func (s *postRepoStub) ToggleSave(ctx context.Context, id string) (*models.SaveState, error) {
	return s.toggleSaveFn(ctx, id)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		listFn:       func(_ context.Context, _ int) ([]models.Post, error) { return nil, nil },
		getByIDFn:    func(_ context.Context, _ string) (*models.Post, error) { return &models.Post{}, nil },
		listByUserFn: func(_ context.Context, _ string, _ int) ([]models.Post, error) { return nil, nil },
		listSavedFn:  func(_ context.Context, _ int) ([]models.Post, error) { return nil, nil },
		toggleLikeFn: func(_ context.Context, _ string) (*models.LikeState, error) { return &models.LikeState{}, nil },
		toggleSaveFn: func(_ context.Context, _ string) (*models.SaveState, error) { return &models.SaveState{}, nil },
	}
}

type storyRepoStub struct {
	listFn func(context.Context, int) ([]models.Story, error)
}

func (s *storyRepoStub) List(ctx context.Context, limit int) ([]models.Story, error) {
	return s.listFn(ctx, limit)
}

type exploreRepoStub struct {
	imagesFn func(context.Context) ([]string, error)
}

func (s *exploreRepoStub) Images(ctx context.Context) ([]string, error) {
	return s.imagesFn(ctx)
}

type commentRepoStub struct {
	listByPostFn func(context.Context, string, int) ([]models.Comment, error)
	createFn     func(context.Context, *models.Comment) error
}

func (s *commentRepoStub) ListByPost(ctx context.Context, postID string, limit int) ([]models.Comment, error) {
	return s.listByPostFn(ctx, postID, limit)
}
func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}

type userRepoStub struct {
	listFn    func(context.Context, int) ([]models.User, error)
	getByIDFn func(context.Context, string) (*models.User, error)
}

func (s *userRepoStub) List(ctx context.Context, limit int) ([]models.User, error) {
	return s.listFn(ctx, limit)
}
func (s *userRepoStub) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}

type stubs struct {
	posts    *postRepoStub
	stories  *storyRepoStub
	explore  *exploreRepoStub
	comments *commentRepoStub
	users    *userRepoStub
}

func newStubs() *stubs {
	return &stubs{
		posts:   noopPostRepo(),
		stories: &storyRepoStub{listFn: func(_ context.Context, _ int) ([]models.Story, error) { return nil, nil }},
		explore: &exploreRepoStub{imagesFn: func(_ context.Context) ([]string, error) { return nil, nil }},
		comments: &commentRepoStub{
			listByPostFn: func(_ context.Context, _ string, _ int) ([]models.Comment, error) { return nil, nil },
			createFn:     func(_ context.Context, _ *models.Comment) error { return nil },
		},
		users: &userRepoStub{
			listFn:    func(_ context.Context, _ int) ([]models.User, error) { return nil, nil },
			getByIDFn: func(_ context.Context, id string) (*models.User, error) { return &models.User{ID: id}, nil },
		},
	}
}

func (s *stubs) service(reseed func(context.Context) error) *FeedService {
	return NewFeedService(s.posts, s.stories, s.comments, s.users, s.explore, reseed)
}

func TestFeedService_GetPostNotFound(t *testing.T) {
	st := newStubs()
	st.posts.getByIDFn = func(_ context.Context, _ string) (*models.Post, error) {
		return nil, gorm.ErrRecordNotFound
	}

	_, err := st.service(nil).GetPost(context.Background(), "post_404")
	require.Error(t, err)
	assert.True(t, models.IsNotFound(err))
	assert.Contains(t, err.Error(), "post_404")
}

func TestFeedService_ToggleLike(t *testing.T) {
	tests := []struct {
		name     string
		repoErr  error
		wantCode string
	}{
		{name: "success"},
		{name: "missing post", repoErr: gorm.ErrRecordNotFound, wantCode: models.CodeNotFound},
		{name: "storage failure", repoErr: errors.New("disk full")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newStubs()
			var gotID string
			st.posts.toggleLikeFn = func(_ context.Context, id string) (*models.LikeState, error) {
				gotID = id
				if tt.repoErr != nil {
					return nil, tt.repoErr
				}
				return &models.LikeState{IsLiked: true, LikesCount: 1244}, nil
			}

			state, err := st.service(nil).ToggleLike(context.Background(), "post_1")
			assert.Equal(t, "post_1", gotID)
			if tt.repoErr == nil {
				require.NoError(t, err)
				assert.Equal(t, &models.LikeState{IsLiked: true, LikesCount: 1244}, state)
				return
			}
			require.Error(t, err)
			if tt.wantCode != "" {
				assert.True(t, models.HasCode(err, tt.wantCode))
			} else {
				assert.ErrorIs(t, err, tt.repoErr)
			}
		})
	}
}

func TestFeedService_ToggleSave(t *testing.T) {
	st := newStubs()
	st.posts.toggleSaveFn = func(_ context.Context, id string) (*models.SaveState, error) {
		if id == "post_404" {
			return nil, gorm.ErrRecordNotFound
		}
		return &models.SaveState{IsSaved: true}, nil
	}
	svc := st.service(nil)

	state, err := svc.ToggleSave(context.Background(), "post_2")
	require.NoError(t, err)
	assert.True(t, state.IsSaved)

	_, err = svc.ToggleSave(context.Background(), "post_404")
	assert.True(t, models.IsNotFound(err))
}

func TestFeedService_ListReels(t *testing.T) {
	st := newStubs()
	var gotLimit int
	st.posts.listFn = func(_ context.Context, limit int) ([]models.Post, error) {
		gotLimit = limit
		return []models.Post{
			{ID: "post_6", Username: "dev.james", ImageURL: "img6", LikesCount: 654},
			{ID: "post_5", Username: "kai.explores", ImageURL: "img5", LikesCount: 3456},
		}, nil
	}

	reels, err := st.service(nil).ListReels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 20, gotLimit)
	require.Len(t, reels, 2)
	assert.Equal(t, "reel_post_6", reels[0].ID)
	assert.Equal(t, "img6", reels[0].VideoThumbnail)
	assert.Equal(t, models.DefaultReelMusic, reels[0].Music)
	assert.Equal(t, 3456, reels[1].LikesCount)
}

func TestFeedService_ExploreFallsBackToBuiltIns(t *testing.T) {
	st := newStubs()
	res, err := st.service(nil).Explore(context.Background())
	require.NoError(t, err)
	assert.Len(t, res.Images, 12)

	st.explore.imagesFn = func(_ context.Context) ([]string, error) { return []string{"a", "b"}, nil }
	res, err = st.service(nil).Explore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, res.Images)
}

func TestFeedService_Profile(t *testing.T) {
	st := newStubs()
	st.users.getByIDFn = func(_ context.Context, id string) (*models.User, error) {
		return &models.User{ID: id, Username: "aria.lens"}, nil
	}
	st.posts.listByUserFn = func(_ context.Context, userID string, _ int) ([]models.Post, error) {
		return []models.Post{{ID: "post_1", UserID: userID}}, nil
	}
	st.posts.listSavedFn = func(_ context.Context, _ int) ([]models.Post, error) {
		return []models.Post{{ID: "post_4", IsSaved: true}}, nil
	}

	profile, err := st.service(nil).Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user_1", profile.ID)
	assert.Equal(t, "post_1", profile.Posts[0].ID)
	assert.Equal(t, "post_4", profile.SavedPosts[0].ID)
}

func TestFeedService_ProfileMissingAccount(t *testing.T) {
	st := newStubs()
	st.users.getByIDFn = func(_ context.Context, _ string) (*models.User, error) {
		return nil, gorm.ErrRecordNotFound
	}

	profile, err := st.service(nil).Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "aria.lens", profile.Username)
	assert.NotNil(t, profile.Posts)
	assert.NotNil(t, profile.SavedPosts)
}

func TestFeedService_GetUser(t *testing.T) {
	st := newStubs()
	svc := st.service(nil)

	user, err := svc.GetUser(context.Background(), "user_3")
	require.NoError(t, err)
	assert.Equal(t, "user_3", user.ID)
	assert.NotNil(t, user.Posts)

	st.users.getByIDFn = func(_ context.Context, _ string) (*models.User, error) {
		return nil, gorm.ErrRecordNotFound
	}
	_, err = svc.GetUser(context.Background(), "user_404")
	assert.True(t, models.IsNotFound(err))
}

func TestFeedService_AddComment(t *testing.T) {
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name      string
		input     models.CommentInput
		createErr error
		wantCode  string
		check     func(t *testing.T, c *models.Comment)
	}{
		{
			name:  "defaults applied",
			input: models.CommentInput{Text: "  Beautiful shot!  "},
			check: func(t *testing.T, c *models.Comment) {
				assert.Equal(t, "Beautiful shot!", c.Text)
				assert.Equal(t, models.DefaultCommentUsername, c.Username)
				assert.Equal(t, models.DefaultCommentAvatar, c.UserAvatar)
				assert.Equal(t, models.CurrentUserID, c.UserID)
				assert.Equal(t, "post_1", c.PostID)
				assert.Equal(t, fixed, c.CreatedAt)
				assert.Len(t, c.ID, 36)
			},
		},
		{
			name:  "explicit author",
			input: models.CommentInput{Text: "hi", Username: "kai.explores", UserAvatar: "a.png"},
			check: func(t *testing.T, c *models.Comment) {
				assert.Equal(t, "kai.explores", c.Username)
				assert.Equal(t, "a.png", c.UserAvatar)
			},
		},
		{name: "blank text", input: models.CommentInput{Text: "   "}, wantCode: models.CodeValidation},
		{name: "too long", input: models.CommentInput{Text: strings.Repeat("x", maxCommentLength+1)}, wantCode: models.CodeValidation},
		{name: "missing post", input: models.CommentInput{Text: "hi"}, createErr: gorm.ErrRecordNotFound, wantCode: models.CodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newStubs()
			created := 0
			st.comments.createFn = func(_ context.Context, _ *models.Comment) error {
				created++
				return tt.createErr
			}
			svc := st.service(nil)
			svc.now = func() time.Time { return fixed }

			comment, err := svc.AddComment(context.Background(), "post_1", tt.input)
			if tt.wantCode != "" {
				require.Error(t, err)
				assert.True(t, models.HasCode(err, tt.wantCode))
				if tt.wantCode == models.CodeValidation {
					assert.Zero(t, created)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 1, created)
			tt.check(t, comment)
		})
	}
}

func TestFeedService_Reseed(t *testing.T) {
	st := newStubs()

	err := st.service(nil).Reseed(context.Background())
	assert.True(t, models.HasCode(err, models.CodeInternal))

	called := false
	err = st.service(func(context.Context) error {
		called = true
		return nil
	}).Reseed(context.Background())
	require.NoError(t, err)
	assert.True(t, called)
}
