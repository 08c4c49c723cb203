package models

import "time"

// CurrentUserID is the author id stamped on comments posted through the API.
const CurrentUserID = "current_user"

// Comment is a comment under a post.
type Comment struct {
	ID         string    `gorm:"primaryKey;size:64" json:"id"`
	PostID     string    `gorm:"size:64;index" json:"post_id"`
	UserID     string    `gorm:"size:64" json:"user_id"`
	Username   string    `gorm:"size:100" json:"username"`
	UserAvatar string    `json:"user_avatar"`
	Text       string    `gorm:"type:text;not null" json:"text"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}

// CommentInput is the body of POST /api/posts/:id/comment.
type CommentInput struct {
	Text       string `json:"text"`
	Username   string `json:"username,omitempty"`
	UserAvatar string `json:"user_avatar,omitempty"`
}

// Defaults applied to CommentInput fields left empty.
const (
	DefaultCommentUsername = "you"
	DefaultCommentAvatar   = "https://images.unsplash.com/photo-1662695089339-a2c24231a3ac?w=150"
)
