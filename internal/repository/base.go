package repository

// Page sizes used by the API.
const (
	FeedLimit    = 50
	StoryLimit   = 20
	ReelLimit    = 20
	CommentLimit = 100
	UserLimit    = 50
)
