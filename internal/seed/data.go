// Package seed provides the built-in demo dataset and generated extras for
// development and tests.
package seed

import "instafeed/internal/models"

const (
	avatarAria   = "https://images.unsplash.com/photo-1757700356475-40b0c6c5554e?w=150&h=150&fit=crop"
	avatarMarco  = "https://images.unsplash.com/photo-1582657233895-0f37a3f150c0?w=150&h=150&fit=crop"
	avatarLuna   = "https://images.unsplash.com/photo-1763328719057-ff6b03c816d0?w=150&h=150&fit=crop"
	avatarKai    = "https://images.unsplash.com/photo-1758691737387-a89bb8adf768?w=150&h=150&fit=crop"
	avatarSophia = "https://images.unsplash.com/photo-1713261162282-57dd8043329a?w=150&h=150&fit=crop"
	avatarJames  = "https://images.unsplash.com/photo-1662695089339-a2c24231a3ac?w=150&h=150&fit=crop"
)

// ProfileUserID is the account GET /api/profile renders.
const ProfileUserID = "user_1"

// Users returns the built-in accounts.
func Users() []models.User {
	return []models.User{
		{ID: "user_1", Username: "aria.lens", DisplayName: "Aria Chen", AvatarURL: avatarAria,
			Bio: "Capturing moments through my lens. Travel & lifestyle.", PostsCount: 142, FollowersCount: 12400, FollowingCount: 534, IsVerified: true},
		{ID: "user_2", Username: "marco.studio", DisplayName: "Marco Rossi", AvatarURL: avatarMarco,
			Bio: "Interior design & architecture. Milano based.", PostsCount: 89, FollowersCount: 8700, FollowingCount: 312},
		{ID: "user_3", Username: "luna.eats", DisplayName: "Luna Park", AvatarURL: avatarLuna,
			Bio: "Food blogger & recipe creator. NYC eats.", PostsCount: 256, FollowersCount: 34500, FollowingCount: 189, IsVerified: true},
		{ID: "user_4", Username: "kai.explores", DisplayName: "Kai Nakamura", AvatarURL: avatarKai,
			Bio: "Adventure seeker. Mountain lover.", PostsCount: 67, FollowersCount: 5200, FollowingCount: 421},
		{ID: "user_5", Username: "sophia.vibes", DisplayName: "Sophia Williams", AvatarURL: avatarSophia,
			Bio: "Art & aesthetics. Living my best life.", PostsCount: 198, FollowersCount: 21000, FollowingCount: 276, IsVerified: true},
		{ID: "user_6", Username: "dev.james", DisplayName: "James Rivera", AvatarURL: avatarJames,
			Bio: "Tech & coffee enthusiast. SF bay area.", PostsCount: 45, FollowersCount: 3100, FollowingCount: 567},
	}
}

// Posts returns the built-in posts in insertion order; the last one is the newest.
func Posts() []models.Post {
	return []models.Post{
		{ID: "post_1", UserID: "user_1", Username: "aria.lens", UserAvatar: avatarAria,
			ImageURL: "https://images.unsplash.com/photo-1713959989861-2425c95e9777?w=800&h=1000&fit=crop",
			Caption:  "Lost in the beauty of nature. Every trail tells a story.", LikesCount: 1243, CommentsCount: 48, Location: "Swiss Alps"},
		{ID: "post_2", UserID: "user_2", Username: "marco.studio", UserAvatar: avatarMarco,
			ImageURL: "https://images.unsplash.com/photo-1680210849773-f97a41c6b7ed?w=800&h=1000&fit=crop",
			Caption:  "Minimalism is not about having less. It's about making room for more of what matters.", LikesCount: 876, CommentsCount: 32, Location: "Milano, Italy"},
		{ID: "post_3", UserID: "user_3", Username: "luna.eats", UserAvatar: avatarLuna,
			ImageURL: "https://images.unsplash.com/photo-1766491764801-bc6e409b60e4?w=800&h=1000&fit=crop",
			Caption:  "Sunday brunch done right. Recipe link in bio!", LikesCount: 2341, CommentsCount: 156, Location: "Brooklyn, NY"},
		{ID: "post_4", UserID: "user_5", Username: "sophia.vibes", UserAvatar: avatarSophia,
			ImageURL: "https://images.unsplash.com/photo-1719150006656-958724675d9d?w=800&h=1000&fit=crop",
			Caption:  "Design is intelligence made visible.", LikesCount: 1567, CommentsCount: 67, Location: "Los Angeles, CA"},
		{ID: "post_5", UserID: "user_4", Username: "kai.explores", UserAvatar: avatarKai,
			ImageURL: "https://images.unsplash.com/photo-1748909082924-ec91097de9af?w=800&h=1000&fit=crop",
			Caption:  "The world is a book and those who do not travel read only one page.", LikesCount: 3456, CommentsCount: 89, Location: "Bali, Indonesia"},
		{ID: "post_6", UserID: "user_6", Username: "dev.james", UserAvatar: avatarJames,
			ImageURL: "https://images.unsplash.com/photo-1766491765420-2f4f2c4bf49a?w=800&h=1000&fit=crop",
			Caption:  "Coffee and code. The perfect afternoon combo.", LikesCount: 654, CommentsCount: 21, Location: "San Francisco, CA"},
	}
}

// Stories returns the built-in story rail.
func Stories() []models.Story {
	return []models.Story{
		{ID: "story_1", UserID: "user_1", Username: "aria.lens", UserAvatar: avatarAria, ImageURL: "https://images.unsplash.com/photo-1713959989861-2425c95e9777?w=600"},
		{ID: "story_2", UserID: "user_3", Username: "luna.eats", UserAvatar: avatarLuna, ImageURL: "https://images.unsplash.com/photo-1766491764801-bc6e409b60e4?w=600"},
		{ID: "story_3", UserID: "user_5", Username: "sophia.vibes", UserAvatar: avatarSophia, ImageURL: "https://images.unsplash.com/photo-1719150006656-958724675d9d?w=600", IsSeen: true},
		{ID: "story_4", UserID: "user_2", Username: "marco.studio", UserAvatar: avatarMarco, ImageURL: "https://images.unsplash.com/photo-1680210849773-f97a41c6b7ed?w=600"},
		{ID: "story_5", UserID: "user_4", Username: "kai.explores", UserAvatar: avatarKai, ImageURL: "https://images.unsplash.com/photo-1748909082924-ec91097de9af?w=600"},
		{ID: "story_6", UserID: "user_6", Username: "dev.james", UserAvatar: avatarJames, ImageURL: "https://images.unsplash.com/photo-1691967057150-f57a7ca63e3e?w=600", IsSeen: true},
	}
}

// Comments returns the built-in comments.
func Comments() []models.Comment {
	return []models.Comment{
		{ID: "comment_1", PostID: "post_1", UserID: "user_3", Username: "luna.eats", UserAvatar: "https://images.unsplash.com/photo-1763328719057-ff6b03c816d0?w=150", Text: "Breathtaking view! Adding this to my bucket list."},
		{ID: "comment_2", PostID: "post_1", UserID: "user_5", Username: "sophia.vibes", UserAvatar: "https://images.unsplash.com/photo-1713261162282-57dd8043329a?w=150", Text: "Nature never disappoints."},
		{ID: "comment_3", PostID: "post_2", UserID: "user_1", Username: "aria.lens", UserAvatar: "https://images.unsplash.com/photo-1757700356475-40b0c6c5554e?w=150", Text: "This space is incredible!"},
		{ID: "comment_4", PostID: "post_3", UserID: "user_4", Username: "kai.explores", UserAvatar: "https://images.unsplash.com/photo-1758691737387-a89bb8adf768?w=150", Text: "Looks delicious! Need the recipe ASAP."},
		{ID: "comment_5", PostID: "post_5", UserID: "user_2", Username: "marco.studio", UserAvatar: "https://images.unsplash.com/photo-1582657233895-0f37a3f150c0?w=150", Text: "Paradise on earth. Great capture!"},
	}
}

// ExploreImages returns the explore grid in display order.
func ExploreImages() []string {
	return []string{
		"https://images.unsplash.com/photo-1691967057150-f57a7ca63e3e?w=400&h=400&fit=crop",
		"https://images.unsplash.com/photo-1546019284-faf0b791e1f6?w=400&h=400&fit=crop",
		"https://images.unsplash.com/photo-1691967057214-39b382606ec0?w=400&h=400&fit=crop",
		"https://images.unsplash.com/photo-1724333937296-e7a890f99ade?w=400&h=400&fit=crop",
		"https://images.unsplash.com/photo-1758275557473-6e6359ced762?w=400&h=400&fit=crop",
		"https://images.unsplash.com/photo-1758691737387-a89bb8adf768?w=400&h=400&fit=crop",
		"https://images.unsplash.com/photo-1713261162282-57dd8043329a?w=400&h=400&fit=crop",
		"https://images.unsplash.com/photo-1680210849773-f97a41c6b7ed?w=400&h=400&fit=crop",
		"https://images.unsplash.com/photo-1748909082924-ec91097de9af?w=400&h=400&fit=crop",
		"https://images.unsplash.com/photo-1766491764801-bc6e409b60e4?w=400&h=400&fit=crop",
		"https://images.unsplash.com/photo-1719150006656-958724675d9d?w=400&h=400&fit=crop",
		"https://images.unsplash.com/photo-1766491765420-2f4f2c4bf49a?w=400&h=400&fit=crop",
	}
}
