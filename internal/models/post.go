// Package models holds the persistence and wire types shared by the API
// server and the feed client.
package models

import "time"

// Post is a feed post. Like and save state are stored on the row because the
// feed is single-viewer.
type Post struct {
	ID            string    `gorm:"primaryKey;size:64" json:"id"`
	UserID        string    `gorm:"size:64;index" json:"user_id"`
	Username      string    `gorm:"size:100" json:"username"`
	UserAvatar    string    `json:"user_avatar"`
	ImageURL      string    `json:"image_url"`
	Caption       string    `gorm:"type:text" json:"caption"`
	LikesCount    int       `gorm:"not null" json:"likes_count"`
	CommentsCount int       `gorm:"not null" json:"comments_count"`
	IsLiked       bool      `gorm:"not null" json:"is_liked"`
	IsSaved       bool      `gorm:"not null;index" json:"is_saved"`
	Location      string    `gorm:"size:255" json:"location"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"`
}

// LikeState is the authoritative like state returned by POST /api/posts/:id/like.
type LikeState struct {
	IsLiked    bool `json:"is_liked"`
	LikesCount int  `json:"likes_count"`
}

// SaveState is the authoritative save state returned by POST /api/posts/:id/save.
type SaveState struct {
	IsSaved bool `json:"is_saved"`
}

// Reel is a post projected onto the reels surface. Reels are derived, not stored.
type Reel struct {
	ID             string `json:"id"`
	UserID         string `json:"user_id"`
	Username       string `json:"username"`
	UserAvatar     string `json:"user_avatar"`
	VideoThumbnail string `json:"video_thumbnail"`
	Caption        string `json:"caption"`
	LikesCount     int    `json:"likes_count"`
	CommentsCount  int    `json:"comments_count"`
	Music          string `json:"music"`
}

// ReelIDPrefix prefixes the post id to form a reel id.
const ReelIDPrefix = "reel_"

// DefaultReelMusic is the audio label every derived reel carries.
const DefaultReelMusic = "Original Audio"

// ReelFromPost derives the reel view of p.
func ReelFromPost(p Post) Reel {
	return Reel{
		ID:             ReelIDPrefix + p.ID,
		UserID:         p.UserID,
		Username:       p.Username,
		UserAvatar:     p.UserAvatar,
		VideoThumbnail: p.ImageURL,
		Caption:        p.Caption,
		LikesCount:     p.LikesCount,
		CommentsCount:  p.CommentsCount,
		Music:          DefaultReelMusic,
	}
}
