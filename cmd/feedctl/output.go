package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"instafeed/internal/interaction"

	"gopkg.in/yaml.v3"
)

const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

type postView struct {
	ID        string `json:"id" yaml:"id"`
	Username  string `json:"username" yaml:"username"`
	Likes     string `json:"likes" yaml:"likes"`
	LikeCount int    `json:"likes_count" yaml:"likes_count"`
	Comments  string `json:"comments" yaml:"comments"`
	Liked     bool   `json:"is_liked" yaml:"is_liked"`
	Saved     bool   `json:"is_saved" yaml:"is_saved"`
	Caption   string `json:"caption" yaml:"caption"`
}

func newPostView(p interaction.FeedItem) postView {
	return postView{
		ID:        p.ID,
		Username:  p.Username,
		Likes:     interaction.FormatCompactCount(p.LikeCount),
		LikeCount: p.LikeCount,
		Comments:  interaction.FormatCompactCount(p.CommentCount),
		Liked:     p.IsLiked,
		Saved:     p.IsSaved,
		Caption:   p.Caption,
	}
}

type reelView struct {
	ID       string `json:"id" yaml:"id"`
	Username string `json:"username" yaml:"username"`
	Likes    string `json:"likes" yaml:"likes"`
	Liked    bool   `json:"is_liked" yaml:"is_liked"`
	Music    string `json:"music" yaml:"music"`
}

func newReelView(r interaction.Reel) reelView {
	return reelView{
		ID:       r.ID,
		Username: r.Username,
		Likes:    interaction.FormatCompactCountUpper(r.LikeCount),
		Liked:    r.IsLiked,
		Music:    r.Music,
	}
}

type storyView struct {
	ID       string `json:"id" yaml:"id"`
	Username string `json:"username" yaml:"username"`
	Seen     bool   `json:"is_seen" yaml:"is_seen"`
}

func newStoryView(s interaction.Story) storyView {
	return storyView{ID: s.ID, Username: s.Username, Seen: s.IsSeen}
}

type tapView struct {
	ID        string `json:"id" yaml:"id"`
	DoubleTap bool   `json:"double_tap" yaml:"double_tap"`
	Liked     bool   `json:"liked" yaml:"liked"`
	Burst     bool   `json:"burst" yaml:"burst"`
}

// table is implemented by values with a tabular rendering.
type table interface {
	header() []string
	rows() [][]string
}

type postTable []postView

func (t postTable) header() []string {
	return []string{"ID", "USER", "LIKES", "COMMENTS", "LIKED", "SAVED"}
}

func (t postTable) rows() [][]string {
	out := make([][]string, 0, len(t))
	for _, p := range t {
		out = append(out, []string{p.ID, p.Username, p.Likes, p.Comments, yesNo(p.Liked), yesNo(p.Saved)})
	}
	return out
}

type reelTable []reelView

func (t reelTable) header() []string { return []string{"ID", "USER", "LIKES", "LIKED", "MUSIC"} }

func (t reelTable) rows() [][]string {
	out := make([][]string, 0, len(t))
	for _, r := range t {
		out = append(out, []string{r.ID, r.Username, r.Likes, yesNo(r.Liked), r.Music})
	}
	return out
}

type storyTable []storyView

func (t storyTable) header() []string { return []string{"ID", "USER", "SEEN"} }

func (t storyTable) rows() [][]string {
	out := make([][]string, 0, len(t))
	for _, s := range t {
		out = append(out, []string{s.ID, s.Username, yesNo(s.Seen)})
	}
	return out
}

type tapTable []tapView

func (t tapTable) header() []string { return []string{"ID", "DOUBLE_TAP", "LIKED", "BURST"} }

func (t tapTable) rows() [][]string {
	out := make([][]string, 0, len(t))
	for _, v := range t {
		out = append(out, []string{v.ID, yesNo(v.DoubleTap), yesNo(v.Liked), yesNo(v.Burst)})
	}
	return out
}

type lineTable []string

func (t lineTable) header() []string { return nil }

func (t lineTable) rows() [][]string {
	out := make([][]string, 0, len(t))
	for _, l := range t {
		out = append(out, []string{l})
	}
	return out
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// render writes v in the requested format.
func render(w io.Writer, format string, v table) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if h := v.header(); len(h) > 0 {
		writeRow(tw, h)
	}
	for _, r := range v.rows() {
		writeRow(tw, r)
	}
	return tw.Flush()
}

func writeRow(w io.Writer, cols []string) {
	for i, c := range cols {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, c)
	}
	fmt.Fprintln(w)
}
