package main

import (
	"fmt"
	"strconv"
	"time"

	"instafeed/internal/interaction"
	"instafeed/internal/models"

	"github.com/spf13/cobra"
)

func (c *cli) feedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "feed",
		Short: "List the home feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, _, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()
			return render(cmd.OutOrStdout(), c.output, postsTable(store.Posts()))
		},
	}
}

func (c *cli) storiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stories",
		Short: "List the story rail",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, _, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			var t storyTable
			for _, s := range store.Stories() {
				t = append(t, newStoryView(s))
			}
			return render(cmd.OutOrStdout(), c.output, t)
		},
	}
}

func (c *cli) reelsCmd() *cobra.Command {
	var like []string
	cmd := &cobra.Command{
		Use:   "reels",
		Short: "List reels, optionally liking some locally",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, _, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			for _, id := range like {
				if _, err := store.ToggleReelLike(id); err != nil {
					return err
				}
			}
			var t reelTable
			for _, r := range store.Reels() {
				t = append(t, newReelView(r))
			}
			return render(cmd.OutOrStdout(), c.output, t)
		},
	}
	cmd.Flags().StringSliceVar(&like, "like", nil, "Reel ids to like locally before printing")
	return cmd
}

func (c *cli) likeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "like <post-id>",
		Short: "Toggle the like on a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.toggle(cmd, args[0], func(s *interaction.Store, id string) error {
				_, err := s.ToggleLike(id)
				return err
			})
		},
	}
}

func (c *cli) saveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save <post-id>",
		Short: "Toggle the save flag on a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.toggle(cmd, args[0], func(s *interaction.Store, id string) error {
				_, err := s.ToggleSave(id)
				return err
			})
		},
	}
}

// toggle applies fn, waits for the persist request and prints the reconciled post.
func (c *cli) toggle(cmd *cobra.Command, id string, fn func(*interaction.Store, string) error) error {
	store, sink, err := c.openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer store.Close()

	if err := fn(store, id); err != nil {
		return err
	}
	store.Wait()
	if err := sink.err(); err != nil {
		return err
	}

	post, _ := store.Post(id)
	return render(cmd.OutOrStdout(), c.output, postsTable([]interaction.FeedItem{post}))
}

func (c *cli) tapCmd() *cobra.Command {
	var interval time.Duration
	cmd := &cobra.Command{
		Use:   "tap <post-id>",
		Short: "Send two taps to a post, liking it when they form a double tap",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			store, sink, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			first := time.Now()
			if _, err := store.HandleDoubleTap(id, first); err != nil {
				return err
			}
			res, err := store.HandleDoubleTap(id, first.Add(interval))
			if err != nil {
				return err
			}
			store.Wait()
			if err := sink.err(); err != nil {
				return err
			}

			view := tapView{ID: id, DoubleTap: res.DoubleTap, Liked: res.Liked, Burst: res.Burst}
			return render(cmd.OutOrStdout(), c.output, tapTable{view})
		},
	}
	cmd.Flags().DurationVar(&interval, "interval", 150*time.Millisecond, "Gap between the two taps")
	return cmd
}

func (c *cli) seenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seen <story-id>",
		Short: "Mark a story as seen for this session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			story, err := store.MarkStorySeen(args[0])
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), c.output, storyTable{newStoryView(story)})
		},
	}
}

func (c *cli) exploreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explore",
		Short: "List explore grid images",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			images, err := c.client().Explore(cmd.Context())
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), c.output, lineTable(images))
		},
	}
}

func (c *cli) profileCmd() *cobra.Command {
	var saved bool
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show the signed-in user's posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			profile, err := c.client().Profile(cmd.Context())
			if err != nil {
				return err
			}
			posts := profile.Posts
			if saved {
				posts = profile.SavedPosts
			}
			t := make(postTable, 0, len(posts))
			for _, p := range posts {
				t = append(t, postViewFromModel(p))
			}
			return render(cmd.OutOrStdout(), c.output, t)
		},
	}
	cmd.Flags().BoolVar(&saved, "saved", false, "Show saved posts instead of authored ones")
	return cmd
}

func (c *cli) commentsCmd() *cobra.Command {
	var add string
	cmd := &cobra.Command{
		Use:   "comments <post-id>",
		Short: "List the comments on a post, optionally adding one first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := c.client()
			if add != "" {
				if _, err := client.AddComment(ctx, args[0], models.CommentInput{Text: add}); err != nil {
					return err
				}
			}
			comments, err := client.ListComments(ctx, args[0])
			if err != nil {
				return err
			}
			lines := make(lineTable, 0, len(comments))
			for _, cm := range comments {
				lines = append(lines, cm.Username+": "+cm.Text)
			}
			return render(cmd.OutOrStdout(), c.output, lines)
		},
	}
	cmd.Flags().StringVar(&add, "add", "", "Comment text to post before listing")
	return cmd
}

func (c *cli) formatCmd() *cobra.Command {
	var upper bool
	cmd := &cobra.Command{
		Use:   "format <count>...",
		Short: "Print counts in compact form (1.2k, 3.4m)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := interaction.FormatCompactCount
			if upper {
				format = interaction.FormatCompactCountUpper
			}
			lines := make(lineTable, 0, len(args))
			for _, a := range args {
				n, err := strconv.Atoi(a)
				if err != nil || n < 0 {
					return fmt.Errorf("invalid count %q", a)
				}
				lines = append(lines, format(n))
			}
			return render(cmd.OutOrStdout(), c.output, lines)
		},
	}
	cmd.Flags().BoolVar(&upper, "upper", false, "Use K/M suffixes")
	return cmd
}

func postsTable(items []interaction.FeedItem) postTable {
	t := make(postTable, 0, len(items))
	for _, p := range items {
		t = append(t, newPostView(p))
	}
	return t
}

func postViewFromModel(p models.Post) postView {
	return newPostView(interaction.FeedItem{
		ID:           p.ID,
		Username:     p.Username,
		LikeCount:    p.LikesCount,
		CommentCount: p.CommentsCount,
		IsLiked:      p.IsLiked,
		IsSaved:      p.IsSaved,
		Caption:      p.Caption,
	})
}
