package models

import "time"

// Story is a story-rail entry.
type Story struct {
	ID         string    `gorm:"primaryKey;size:64" json:"id"`
	UserID     string    `gorm:"size:64;index" json:"user_id"`
	Username   string    `gorm:"size:100" json:"username"`
	UserAvatar string    `json:"user_avatar"`
	ImageURL   string    `json:"image_url"`
	IsSeen     bool      `gorm:"not null" json:"is_seen"`
	CreatedAt  time.Time `json:"created_at"`
}

// ExploreImage is one tile of the explore grid.
type ExploreImage struct {
	ID       uint   `gorm:"primaryKey" json:"-"`
	URL      string `gorm:"not null" json:"url"`
	Position int    `gorm:"not null;index" json:"-"`
}

// ExploreResponse is the body of GET /api/explore.
type ExploreResponse struct {
	Images []string `json:"images"`
}
