package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"instafeed/internal/observability"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedPost struct {
	ID    string `json:"id"`
	Likes int    `json:"likes_count"`
}

func setupRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() {
		_ = client.Close()
		client = nil
	})
	return mr
}

func TestAside_MissThenHit(t *testing.T) {
	mr := setupRedis(t)
	ctx := context.Background()

	calls := 0
	fetch := func(dest *cachedPost) func() error {
		return func() error {
			calls++
			*dest = cachedPost{ID: "post_1", Likes: 1243}
			return nil
		}
	}

	var first cachedPost
	require.NoError(t, Aside(ctx, PostKey("post_1"), &first, PostTTL, fetch(&first)))
	var second cachedPost
	require.NoError(t, Aside(ctx, PostKey("post_1"), &second, PostTTL, fetch(&second)))

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
	assert.True(t, mr.Exists("post:post_1"))
	assert.Equal(t, PostTTL, mr.TTL("post:post_1"))
}

func TestAside_FetchError(t *testing.T) {
	mr := setupRedis(t)

	var dest cachedPost
	err := Aside(context.Background(), PostsListKey, &dest, FeedTTL, func() error {
		return errors.New("db down")
	})

	assert.EqualError(t, err, "db down")
	assert.False(t, mr.Exists(PostsListKey))
}

func TestAside_NoClient(t *testing.T) {
	client = nil

	var dest cachedPost
	err := Aside(context.Background(), PostsListKey, &dest, FeedTTL, func() error {
		dest.ID = "post_2"
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, "post_2", dest.ID)
}

func TestAside_CorruptEntryRefetches(t *testing.T) {
	mr := setupRedis(t)
	require.NoError(t, mr.Set(PostKey("post_3"), "{not json"))
	before := testutil.ToFloat64(observability.RedisErrorRate.WithLabelValues("get"))

	var dest cachedPost
	require.NoError(t, Aside(context.Background(), PostKey("post_3"), &dest, time.Minute, func() error {
		dest = cachedPost{ID: "post_3", Likes: 2341}
		return nil
	}))
	assert.Equal(t, 2341, dest.Likes)
	assert.Equal(t, before+1, testutil.ToFloat64(observability.RedisErrorRate.WithLabelValues("get")))
}

func TestInvalidatePost(t *testing.T) {
	mr := setupRedis(t)
	for _, k := range []string{PostKey("post_1"), PostKey("post_2"), PostsListKey, ReelsKey, ProfileKey, StoriesKey} {
		require.NoError(t, mr.Set(k, "x"))
	}

	InvalidatePost(context.Background(), "post_1")

	assert.False(t, mr.Exists(PostKey("post_1")))
	assert.False(t, mr.Exists(PostsListKey))
	assert.False(t, mr.Exists(ReelsKey))
	assert.False(t, mr.Exists(ProfileKey))
	assert.True(t, mr.Exists(PostKey("post_2")))
	assert.True(t, mr.Exists(StoriesKey))
}

func TestInvalidateAll(t *testing.T) {
	mr := setupRedis(t)
	for _, k := range []string{PostKey("post_1"), PostKey("post_2"), PostsListKey, StoriesKey, ExploreKey, "unrelated"} {
		require.NoError(t, mr.Set(k, "x"))
	}

	InvalidateAll(context.Background())

	assert.Equal(t, []string{"unrelated"}, mr.Keys())
}
