package interaction

import (
	"time"

	"instafeed/internal/models"
)

// FeedItem is the client-side view of a post.
type FeedItem struct {
	ID           string
	UserID       string
	Username     string
	UserAvatar   string
	ImageURL     string
	Caption      string
	Location     string
	LikeCount    int
	CommentCount int
	IsLiked      bool
	IsSaved      bool
}

// Reel is the client-side view of a reel. Its like state never leaves the client.
type Reel struct {
	ID             string
	Username       string
	UserAvatar     string
	VideoThumbnail string
	Caption        string
	Music          string
	LikeCount      int
	CommentCount   int
	IsLiked        bool
}

// Story is a story-rail entry.
type Story struct {
	ID         string
	Username   string
	UserAvatar string
	ImageURL   string
	IsSeen     bool
}

// postEntry pairs the displayed item with the last state the server reported.
type postEntry struct {
	item        FeedItem
	serverLiked bool
	serverCount int
	lastTap     time.Time
	burstUntil  time.Time
}

type reelEntry struct {
	item        Reel
	serverCount int
}

func newPostEntry(p models.Post) *postEntry {
	return &postEntry{
		item: FeedItem{
			ID:           p.ID,
			UserID:       p.UserID,
			Username:     p.Username,
			UserAvatar:   p.UserAvatar,
			ImageURL:     p.ImageURL,
			Caption:      p.Caption,
			Location:     p.Location,
			LikeCount:    p.LikesCount,
			CommentCount: p.CommentsCount,
			IsLiked:      p.IsLiked,
			IsSaved:      p.IsSaved,
		},
		serverLiked: p.IsLiked,
		serverCount: p.LikesCount,
	}
}

func newReelEntry(r models.Reel) *reelEntry {
	return &reelEntry{
		item: Reel{
			ID:             r.ID,
			Username:       r.Username,
			UserAvatar:     r.UserAvatar,
			VideoThumbnail: r.VideoThumbnail,
			Caption:        r.Caption,
			Music:          r.Music,
			LikeCount:      r.LikesCount,
			CommentCount:   r.CommentsCount,
		},
		serverCount: r.LikesCount,
	}
}

func newStory(s models.Story) Story {
	return Story{
		ID:         s.ID,
		Username:   s.Username,
		UserAvatar: s.UserAvatar,
		ImageURL:   s.ImageURL,
		IsSeen:     s.IsSeen,
	}
}

// displayedCount derives the like count from the server baseline and the
// local like flag, so the local delta is always -1, 0 or +1.
func displayedCount(serverCount int, serverLiked, liked bool) int {
	n := serverCount
	switch {
	case liked && !serverLiked:
		n++
	case !liked && serverLiked:
		n--
	}
	if n < 0 {
		n = 0
	}
	return n
}

func (e *postEntry) flipLike() {
	e.item.IsLiked = !e.item.IsLiked
	e.item.LikeCount = displayedCount(e.serverCount, e.serverLiked, e.item.IsLiked)
}

func (e *postEntry) reconcileLike(state models.LikeState) {
	e.serverLiked = state.IsLiked
	e.serverCount = state.LikesCount
	e.item.IsLiked = state.IsLiked
	e.item.LikeCount = state.LikesCount
}

func (e *reelEntry) flipLike() {
	e.item.IsLiked = !e.item.IsLiked
	e.item.LikeCount = displayedCount(e.serverCount, false, e.item.IsLiked)
}
