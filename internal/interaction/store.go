// Package interaction holds the client-side feed state: posts, reels and
// stories, with optimistic like/save/seen mutations reconciled against the
// backend's answers.
package interaction

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"instafeed/internal/models"
	"instafeed/internal/observability"

	"golang.org/x/sync/errgroup"
)

// ErrUnknownItem is wrapped by the error returned for ids not in the store.
var ErrUnknownItem = errors.New("unknown item")

// Backend is the feed API the store persists toggles to.
type Backend interface {
	ListPosts(ctx context.Context) ([]models.Post, error)
	ListStories(ctx context.Context) ([]models.Story, error)
	ListReels(ctx context.Context) ([]models.Reel, error)
	ToggleLike(ctx context.Context, id string) (*models.LikeState, error)
	ToggleSave(ctx context.Context, id string) (*models.SaveState, error)
}

// Store is the InteractionStateStore. Gesture methods never block on the
// network: they mutate local state, start the persist request on its own
// goroutine and return.
type Store struct {
	backend Backend

	baseCtx        context.Context
	cancel         context.CancelFunc
	timeout        time.Duration
	serialized     bool
	sink           FailureSink
	burstListeners []func(BurstEvent)

	mu        sync.Mutex
	posts     map[string]*postEntry
	postOrder []string
	reels     map[string]*reelEntry
	reelOrder []string
	stories   map[string]*Story
	storyIDs  []string
	// tails holds the completion channel of the last queued request per post
	// when requests are serialized.
	tails map[string]chan struct{}

	wg sync.WaitGroup
}

// New creates an empty store persisting through backend.
func New(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		baseCtx: context.Background(),
		timeout: DefaultRequestTimeout,
		sink:    logSink{},
		posts:   make(map[string]*postEntry),
		reels:   make(map[string]*reelEntry),
		stories: make(map[string]*Story),
		tails:   make(map[string]chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.baseCtx, s.cancel = context.WithCancel(context.WithoutCancel(s.baseCtx))
	return s
}

func lookupFailure(resource, id string) error {
	err := models.NewNotFoundError(resource, id)
	err.Err = ErrUnknownItem
	return err
}

// Refresh fetches posts, stories and reels concurrently and replaces the
// collections. Nothing is replaced unless every fetch succeeds.
func (s *Store) Refresh(ctx context.Context) error {
	var (
		posts   []models.Post
		stories []models.Story
		reels   []models.Reel
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		posts, err = s.backend.ListPosts(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		stories, err = s.backend.ListStories(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		reels, err = s.backend.ListReels(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	s.LoadPosts(posts)
	s.LoadStories(stories)
	s.LoadReels(reels)
	return nil
}

// LoadPosts replaces the post collection. Tap state survives for posts that
// are still present and is dropped for the rest.
func (s *Store) LoadPosts(posts []models.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[string]*postEntry, len(posts))
	order := make([]string, 0, len(posts))
	for _, p := range posts {
		if _, dup := next[p.ID]; dup {
			slog.Warn("duplicate post id in feed, keeping first", slog.String("item_id", p.ID))
			continue
		}
		e := newPostEntry(p)
		if old, ok := s.posts[p.ID]; ok {
			e.lastTap = old.lastTap
			e.burstUntil = old.burstUntil
		}
		next[p.ID] = e
		order = append(order, p.ID)
	}
	for id := range s.tails {
		if _, ok := next[id]; !ok {
			delete(s.tails, id)
		}
	}
	s.posts = next
	s.postOrder = order
}

// LoadReels replaces the reel collection. Local reel likes are reset.
func (s *Store) LoadReels(reels []models.Reel) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reels = make(map[string]*reelEntry, len(reels))
	s.reelOrder = s.reelOrder[:0]
	for _, r := range reels {
		if _, dup := s.reels[r.ID]; dup {
			continue
		}
		s.reels[r.ID] = newReelEntry(r)
		s.reelOrder = append(s.reelOrder, r.ID)
	}
}

// LoadStories replaces the story rail.
func (s *Store) LoadStories(stories []models.Story) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stories = make(map[string]*Story, len(stories))
	s.storyIDs = s.storyIDs[:0]
	for _, st := range stories {
		if _, dup := s.stories[st.ID]; dup {
			continue
		}
		story := newStory(st)
		s.stories[st.ID] = &story
		s.storyIDs = append(s.storyIDs, st.ID)
	}
}

// ToggleLike flips the like on a post, adjusts its count by one and persists
// the toggle in the background. The returned item is the optimistic state.
func (s *Store) ToggleLike(id string) (FeedItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.posts[id]
	if !ok {
		return FeedItem{}, lookupFailure("Post", id)
	}
	s.toggleLikeLocked(e)
	return e.item, nil
}

func (s *Store) toggleLikeLocked(e *postEntry) {
	e.flipLike()
	id := e.item.ID
	s.dispatchLocked("like", id, func(ctx context.Context) error {
		state, err := s.backend.ToggleLike(ctx, id)
		if err != nil {
			return err
		}
		s.mu.Lock()
		if cur, ok := s.posts[id]; ok {
			cur.reconcileLike(*state)
		}
		s.mu.Unlock()
		return nil
	})
}

// ToggleSave flips the save flag on a post and persists it in the background.
func (s *Store) ToggleSave(id string) (FeedItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.posts[id]
	if !ok {
		return FeedItem{}, lookupFailure("Post", id)
	}
	e.item.IsSaved = !e.item.IsSaved
	s.dispatchLocked("save", id, func(ctx context.Context) error {
		state, err := s.backend.ToggleSave(ctx, id)
		if err != nil {
			return err
		}
		s.mu.Lock()
		if cur, ok := s.posts[id]; ok {
			cur.item.IsSaved = state.IsSaved
		}
		s.mu.Unlock()
		return nil
	})
	return e.item, nil
}

// ToggleReelLike flips the local like on a reel. Reel likes are not persisted.
func (s *Store) ToggleReelLike(id string) (Reel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.reels[id]
	if !ok {
		return Reel{}, lookupFailure("Reel", id)
	}
	e.flipLike()
	return e.item, nil
}

// MarkStorySeen marks a story as seen. It is local only and idempotent.
func (s *Store) MarkStorySeen(id string) (Story, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.stories[id]
	if !ok {
		return Story{}, lookupFailure("Story", id)
	}
	st.IsSeen = true
	return *st, nil
}

// dispatchLocked starts call on its own goroutine. Must hold s.mu.
func (s *Store) dispatchLocked(kind, id string, call func(ctx context.Context) error) {
	var prev, done chan struct{}
	if s.serialized {
		prev = s.tails[id]
		done = make(chan struct{})
		s.tails[id] = done
	}

	s.wg.Add(1)
	observability.ClientInflightRequests.Inc()
	go func() {
		defer s.wg.Done()
		defer observability.ClientInflightRequests.Dec()
		if done != nil {
			defer s.release(id, done)
		}
		if prev != nil {
			<-prev
		}

		ctx, cancel := context.WithTimeout(s.baseCtx, s.timeout)
		defer cancel()

		op := "toggle_" + kind
		fields := map[string]interface{}{"item_id": id}
		observability.LogAsyncOperationStart(ctx, op, fields)

		if err := call(ctx); err != nil {
			observability.ClientToggleRequests.WithLabelValues(kind, "error").Inc()
			s.sink.ToggleFailed(ctx, kind, id, err)
			return
		}
		observability.ClientToggleRequests.WithLabelValues(kind, "ok").Inc()
		observability.LogAsyncOperationEnd(ctx, op, fields)
	}()
}

func (s *Store) release(id string, done chan struct{}) {
	close(done)
	s.mu.Lock()
	if s.tails[id] == done {
		delete(s.tails, id)
	}
	s.mu.Unlock()
}

// Wait blocks until every persist request started so far has completed.
func (s *Store) Wait() {
	s.wg.Wait()
}

// Close cancels outstanding requests and waits for them to finish. Cancelled
// requests are reported to the failure sink like any other failure.
func (s *Store) Close() {
	s.cancel()
	s.wg.Wait()
}

// Post returns a copy of the post with id.
func (s *Store) Post(id string) (FeedItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.posts[id]
	if !ok {
		return FeedItem{}, false
	}
	return e.item, true
}

// Reel returns a copy of the reel with id.
func (s *Store) Reel(id string) (Reel, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.reels[id]
	if !ok {
		return Reel{}, false
	}
	return e.item, true
}

// Story returns a copy of the story with id.
func (s *Store) Story(id string) (Story, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.stories[id]
	if !ok {
		return Story{}, false
	}
	return *st, true
}

// Posts returns the feed in server order.
func (s *Store) Posts() []FeedItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]FeedItem, 0, len(s.postOrder))
	for _, id := range s.postOrder {
		out = append(out, s.posts[id].item)
	}
	return out
}

func (s *Store) Reels() []Reel {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Reel, 0, len(s.reelOrder))
	for _, id := range s.reelOrder {
		out = append(out, s.reels[id].item)
	}
	return out
}

func (s *Store) Stories() []Story {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Story, 0, len(s.storyIDs))
	for _, id := range s.storyIDs {
		out = append(out, *s.stories[id])
	}
	return out
}
