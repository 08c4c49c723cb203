package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"instafeed/internal/cache"
	"instafeed/internal/config"
	"instafeed/internal/models"
	"instafeed/internal/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestApp(t *testing.T, cfg *config.Config, rdb *redis.Client) *fiber.App {
	t.Helper()
	if cfg == nil {
		cfg = &config.Config{Env: "test"}
	}
	s, err := NewServerWithDeps(cfg, testutil.NewSeededDB(t), rdb)
	require.NoError(t, err)
	return s.App()
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, out any) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestServer_FeedEndpoints(t *testing.T) {
	app := newTestApp(t, nil, nil)

	var banner map[string]string
	assert.Equal(t, http.StatusOK, doJSON(t, app, http.MethodGet, "/api/", nil, &banner))
	assert.Equal(t, "Instafeed API", banner["message"])

	var posts []models.Post
	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodGet, "/api/posts", nil, &posts))
	require.Len(t, posts, 6)
	assert.Equal(t, "post_6", posts[0].ID)

	var post models.Post
	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodGet, "/api/posts/post_3", nil, &post))
	assert.Equal(t, 2341, post.LikesCount)

	var stories []models.Story
	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodGet, "/api/stories", nil, &stories))
	assert.Len(t, stories, 6)

	var explore models.ExploreResponse
	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodGet, "/api/explore", nil, &explore))
	assert.Len(t, explore.Images, 12)

	var reels []models.Reel
	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodGet, "/api/reels", nil, &reels))
	require.Len(t, reels, 6)
	assert.Equal(t, "reel_post_6", reels[0].ID)
	assert.Equal(t, "Original Audio", reels[0].Music)

	var users []models.User
	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodGet, "/api/users", nil, &users))
	assert.Len(t, users, 6)

	var user models.UserWithPosts
	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodGet, "/api/users/user_3", nil, &user))
	assert.Equal(t, "luna.eats", user.Username)
	require.Len(t, user.Posts, 1)
	assert.Equal(t, "post_3", user.Posts[0].ID)

	var missing models.ErrorResponse
	assert.Equal(t, http.StatusNotFound, doJSON(t, app, http.MethodGet, "/api/users/user_404", nil, &missing))
	assert.Equal(t, models.CodeNotFound, missing.Code)
}

func TestServer_ToggleLikeRoundTrip(t *testing.T) {
	app := newTestApp(t, nil, nil)

	var state models.LikeState
	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodPost, "/api/posts/post_1/like", nil, &state))
	assert.Equal(t, models.LikeState{IsLiked: true, LikesCount: 1244}, state)

	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodPost, "/api/posts/post_1/like", nil, &state))
	assert.Equal(t, models.LikeState{IsLiked: false, LikesCount: 1243}, state)

	var notFound models.ErrorResponse
	assert.Equal(t, http.StatusNotFound, doJSON(t, app, http.MethodPost, "/api/posts/post_404/like", nil, &notFound))
	assert.Equal(t, models.CodeNotFound, notFound.Code)
	assert.Equal(t, http.StatusNotFound, doJSON(t, app, http.MethodPost, "/api/posts/post_404/save", nil, nil))
	assert.Equal(t, http.StatusNotFound, doJSON(t, app, http.MethodGet, "/api/posts/post_404", nil, nil))
}

func TestServer_SaveAppearsInProfile(t *testing.T) {
	app := newTestApp(t, nil, nil)

	var saved models.SaveState
	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodPost, "/api/posts/post_5/save", nil, &saved))
	assert.True(t, saved.IsSaved)

	var profile models.Profile
	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodGet, "/api/profile", nil, &profile))
	assert.Equal(t, "user_1", profile.ID)
	require.Len(t, profile.Posts, 1)
	require.Len(t, profile.SavedPosts, 1)
	assert.Equal(t, "post_5", profile.SavedPosts[0].ID)
}

func TestServer_CommentsAndReseed(t *testing.T) {
	app := newTestApp(t, nil, nil)

	var comment models.Comment
	require.Equal(t, http.StatusCreated, doJSON(t, app, http.MethodPost, "/api/posts/post_1/comment",
		map[string]string{"text": "Gorgeous view"}, &comment))
	assert.Equal(t, "you", comment.Username)
	assert.NotEmpty(t, comment.ID)

	var comments []models.Comment
	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodGet, "/api/posts/post_1/comments", nil, &comments))
	require.Len(t, comments, 3)
	assert.Equal(t, comment.ID, comments[0].ID)

	var post models.Post
	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodGet, "/api/posts/post_1", nil, &post))
	assert.Equal(t, 49, post.CommentsCount)

	assert.Equal(t, http.StatusBadRequest, doJSON(t, app, http.MethodPost, "/api/posts/post_1/comment",
		map[string]string{"text": "  "}, nil))
	assert.Equal(t, http.StatusNotFound, doJSON(t, app, http.MethodPost, "/api/posts/post_404/comment",
		map[string]string{"text": "hello"}, nil))

	var msg map[string]string
	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodPost, "/api/seed", nil, &msg))
	assert.Equal(t, "Database seeded successfully", msg["message"])

	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodGet, "/api/posts/post_1/comments", nil, &comments))
	assert.Len(t, comments, 2)
}

func TestServer_HealthChecks(t *testing.T) {
	app := newTestApp(t, nil, nil)

	var live map[string]any
	assert.Equal(t, http.StatusOK, doJSON(t, app, http.MethodGet, "/health/live", nil, &live))
	assert.Equal(t, "up", live["status"])

	var ready map[string]any
	assert.Equal(t, http.StatusOK, doJSON(t, app, http.MethodGet, "/health/ready", nil, &ready))
	assert.Equal(t, "degraded", ready["status"])
	checks := ready["checks"].(map[string]any)
	assert.Equal(t, "healthy", checks["database"])
	assert.Equal(t, "unavailable", checks["redis"])
}

func TestServer_ReadinessWithRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	app := newTestApp(t, nil, rdb)

	var ready map[string]any
	assert.Equal(t, http.StatusOK, doJSON(t, app, http.MethodGet, "/health/ready", nil, &ready))
	assert.Equal(t, "healthy", ready["status"])
}

func TestServer_ReadinessDatabaseDown(t *testing.T) {
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:               logger.Default.LogMode(logger.Silent),
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	mock.ExpectPing().WillReturnError(errors.New("connection refused"))

	s, err := NewServerWithDeps(&config.Config{Env: "test"}, db, nil)
	require.NoError(t, err)
	app := s.App()

	var ready map[string]any
	assert.Equal(t, http.StatusServiceUnavailable, doJSON(t, app, http.MethodGet, "/health/ready", nil, &ready))
	assert.Equal(t, "unhealthy", ready["status"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestServer_ToggleRateLimitFlag(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	limited := newTestApp(t, &config.Config{Env: "test", FeatureFlags: "rate_limit_toggles=on"}, rdb)
	require.NoError(t, mr.Set("rl:toggle_like:ip:0.0.0.0", "60"))

	var res map[string]any
	assert.Equal(t, http.StatusTooManyRequests, doJSON(t, limited, http.MethodPost, "/api/posts/post_1/like", nil, &res))
	assert.Equal(t, "rate limit exceeded", res["error"])

	open := newTestApp(t, &config.Config{Env: "test", FeatureFlags: "rate_limit_toggles=off"}, rdb)
	assert.Equal(t, http.StatusOK, doJSON(t, open, http.MethodPost, "/api/posts/post_1/like", nil, nil))
}

func TestServer_FeatureFlags(t *testing.T) {
	app := newTestApp(t, &config.Config{Env: "test", FeatureFlags: "serialize_toggles=on,rate_limit_toggles=off"}, nil)

	var res struct {
		Raw       map[string]string `json:"raw"`
		Evaluated map[string]bool   `json:"evaluated"`
	}
	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodGet, "/api/feature-flags?subject=device-1", nil, &res))
	assert.Equal(t, "on", res.Raw["serialize_toggles"])
	assert.True(t, res.Evaluated["serialize_toggles"])
	assert.False(t, res.Evaluated["rate_limit_toggles"])
}

func TestServer_CachedFeedStaysConsistent(t *testing.T) {
	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() {
		_ = cache.GetClient().Close()
		cache.SetClient(nil)
	})

	app := newTestApp(t, nil, cache.GetClient())

	var posts []models.Post
	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodGet, "/api/posts", nil, &posts))
	require.True(t, mr.Exists(cache.PostsListKey))

	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodPost, "/api/posts/post_6/like", nil, nil))

	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodGet, "/api/posts", nil, &posts))
	assert.True(t, posts[0].IsLiked)
	assert.Equal(t, 655, posts[0].LikesCount)
}
