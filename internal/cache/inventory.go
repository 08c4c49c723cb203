package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	PostKeyPrefix = "post:%s"
	PostsListKey  = "posts:feed"
	ReelsKey      = "posts:reels"
	StoriesKey    = "stories:rail"
	ExploreKey    = "explore:grid"
	ProfileKey    = "profile:current"
)

const (
	PostTTL    = 30 * time.Minute
	FeedTTL    = 2 * time.Minute
	StoriesTTL = 5 * time.Minute
	ExploreTTL = 30 * time.Minute
)

func PostKey(postID string) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func Invalidate(ctx context.Context, keys ...string) {
	if client != nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

// InvalidatePost drops every cached view that embeds the post.
func InvalidatePost(ctx context.Context, postID string) {
	Invalidate(ctx, PostKey(postID), PostsListKey, ReelsKey, ProfileKey)
}

// InvalidateAll drops every feed key, used after a reseed.
func InvalidateAll(ctx context.Context) {
	if client == nil {
		return
	}
	iter := client.Scan(ctx, 0, "post:*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	keys = append(keys, PostsListKey, ReelsKey, StoriesKey, ExploreKey, ProfileKey)
	Invalidate(ctx, keys...)
}
