package models

import "time"

// User is an account shown in headers, profiles and the users list.
type User struct {
	ID             string    `gorm:"primaryKey;size:64" json:"id"`
	Username       string    `gorm:"size:100;uniqueIndex" json:"username"`
	DisplayName    string    `gorm:"size:255" json:"display_name"`
	AvatarURL      string    `json:"avatar_url"`
	Bio            string    `gorm:"type:text" json:"bio"`
	PostsCount     int       `json:"posts_count"`
	FollowersCount int       `json:"followers_count"`
	FollowingCount int       `json:"following_count"`
	IsVerified     bool      `json:"is_verified"`
	CreatedAt      time.Time `json:"created_at"`
}

// UserWithPosts is the body of GET /api/users/:id.
type UserWithPosts struct {
	User
	Posts []Post `json:"posts"`
}

// Profile is the body of GET /api/profile.
type Profile struct {
	User
	Posts      []Post `json:"posts"`
	SavedPosts []Post `json:"saved_posts"`
}
