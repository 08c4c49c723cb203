package interaction

import "time"

const (
	// DoubleTapWindow is the longest gap between two taps on the same post
	// that still counts as a double tap (exclusive).
	DoubleTapWindow = 300 * time.Millisecond
	// BurstDuration is how long the like burst stays visible.
	BurstDuration = time.Second
)

// TapResult describes what a tap did.
type TapResult struct {
	// DoubleTap is set when this tap completed a double tap.
	DoubleTap bool
	// Liked is set when the double tap liked the post. Already-liked posts
	// are never toggled back.
	Liked bool
	// Burst is set whenever the like burst should be shown.
	Burst bool
}

// HandleDoubleTap records a tap on a post at time at. Tap history is kept per
// post, so taps on different posts never combine. Taps that go back in time
// are recorded but never count as double taps.
func (s *Store) HandleDoubleTap(id string, at time.Time) (TapResult, error) {
	s.mu.Lock()
	e, ok := s.posts[id]
	if !ok {
		s.mu.Unlock()
		return TapResult{}, lookupFailure("Post", id)
	}

	var res TapResult
	if prev := e.lastTap; !prev.IsZero() {
		gap := at.Sub(prev)
		res.DoubleTap = gap >= 0 && gap < DoubleTapWindow
	}
	e.lastTap = at

	var event BurstEvent
	if res.DoubleTap {
		if !e.item.IsLiked {
			s.toggleLikeLocked(e)
			res.Liked = true
		}
		res.Burst = true
		e.burstUntil = at.Add(BurstDuration)
		event = BurstEvent{ID: id, Until: e.burstUntil}
	}
	listeners := s.burstListeners
	s.mu.Unlock()

	if res.Burst {
		for _, fn := range listeners {
			fn(event)
		}
	}
	return res, nil
}

// BurstActive reports whether the like burst for a post is still showing at now.
func (s *Store) BurstActive(id string, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.posts[id]
	if !ok {
		return false
	}
	return now.Before(e.burstUntil)
}
