package sequence

import (
	"errors"
	"math/rand"
	"time"
)

// ErrEmptySet is returned by Advance when the session was built from an
// empty working set.
var ErrEmptySet = errors.New("sequence: working set is empty")

// ErrNoHistory is returned by Retreat and Current when there is nothing
// earlier to go back to.
var ErrNoHistory = errors.New("sequence: no history")

// Session produces a non-repeating random traversal over a fixed working set
// of image paths, together with an append-only history of images actually
// shown and a movable cursor over that history.
//
// A Session is single-caller state: it is meant to be driven from the UI
// event loop only and does no internal locking. The working set is copied at
// construction and never mutated afterwards; a new scan produces a new
// Session rather than extending an old one.
type Session struct {
	items []string // the working set, fixed for the session's lifetime

	perm      []int // current permutation of item indices
	drawPos   int   // next position in perm to draw from
	lastDrawn int   // item index of the most recent draw, -1 before any

	history []string // every image shown, in display order
	cursor  int      // index into history, -1 while empty

	rng *rand.Rand
}

// NewSession builds a session over items. The slice is copied. rng may be
// nil, in which case a time-seeded source is used; tests inject a fixed
// source for reproducibility.
func NewSession(items []string, rng *rand.Rand) *Session {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s := &Session{
		items:     append([]string(nil), items...),
		lastDrawn: -1,
		cursor:    -1,
		rng:       rng,
	}
	s.reshuffle()
	return s
}

// reshuffle installs a fresh uniform permutation and rewinds the draw
// pointer. When the set has more than one element the new permutation must
// not open with the item drawn last, so the first slot is swapped with a
// uniformly chosen later one to break the adjacency. With exactly two
// elements this forces strict alternation; with one element repeats are
// unavoidable and the rule does not apply.
func (s *Session) reshuffle() {
	n := len(s.items)
	s.perm = make([]int, n)
	for i := range s.perm {
		s.perm[i] = i
	}
	s.rng.Shuffle(n, func(i, j int) {
		s.perm[i], s.perm[j] = s.perm[j], s.perm[i]
	})
	if n > 1 && s.lastDrawn >= 0 && s.perm[0] == s.lastDrawn {
		j := 1 + s.rng.Intn(n-1)
		s.perm[0], s.perm[j] = s.perm[j], s.perm[0]
	}
	s.drawPos = 0
}

// Advance moves to the next image. When the history cursor sits below the
// tail it only moves the cursor forward and redisplays an existing entry;
// at the tail it consumes the next draw from the permutation (reshuffling
// first if the permutation is exhausted), appends it to the history and
// returns it.
func (s *Session) Advance() (string, error) {
	if len(s.items) == 0 {
		return "", ErrEmptySet
	}
	if s.cursor >= 0 && s.cursor < len(s.history)-1 {
		s.cursor++
		return s.history[s.cursor], nil
	}
	if s.drawPos >= len(s.perm) {
		s.reshuffle()
	}
	idx := s.perm[s.drawPos]
	s.drawPos++
	s.lastDrawn = idx
	path := s.items[idx]
	s.history = append(s.history, path)
	s.cursor = len(s.history) - 1
	return path, nil
}

// Retreat moves the history cursor back one entry and returns the image at
// the new position. The history itself is never truncated.
func (s *Session) Retreat() (string, error) {
	if s.cursor <= 0 {
		return "", ErrNoHistory
	}
	s.cursor--
	return s.history[s.cursor], nil
}

// Current returns the image at the cursor without changing any state.
func (s *Session) Current() (string, error) {
	if s.cursor < 0 {
		return "", ErrNoHistory
	}
	return s.history[s.cursor], nil
}

// Seek moves the cursor to an absolute history position, for direct
// navigation from a history panel.
func (s *Session) Seek(i int) (string, error) {
	if i < 0 || i >= len(s.history) {
		return "", ErrNoHistory
	}
	s.cursor = i
	return s.history[s.cursor], nil
}

// Len returns the size of the working set.
func (s *Session) Len() int {
	return len(s.items)
}

// History returns a copy of the shown-image log.
func (s *Session) History() []string {
	out := make([]string, len(s.history))
	copy(out, s.history)
	return out
}

// Cursor returns the current history position, -1 while nothing has been
// shown.
func (s *Session) Cursor() int {
	return s.cursor
}

// CanRetreat reports whether Retreat would succeed, so the UI can grey out
// its back control.
func (s *Session) CanRetreat() bool {
	return s.cursor > 0
}
