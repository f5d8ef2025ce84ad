package sequence

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func makeItems(n int) []string {
	items := make([]string, n)
	for i := range items {
		items[i] = fmt.Sprintf("/pics/img%03d.jpg", i)
	}
	return items
}

func TestAdvanceCoversSetBeforeRepeating(t *testing.T) {
	for _, seed := range []int64{1, 7, 42} {
		items := makeItems(10)
		s := NewSession(items, testRand(seed))

		seen := make(map[string]bool)
		for i := 0; i < len(items); i++ {
			p, err := s.Advance()
			require.NoError(t, err)
			assert.False(t, seen[p], "seed %d: %q repeated before set was exhausted", seed, p)
			seen[p] = true
		}
		assert.Len(t, seen, len(items), "one full cycle must be a permutation of the working set")
	}
}

func TestReshuffleAvoidsBoundaryRepeat(t *testing.T) {
	for _, seed := range []int64{1, 2, 3, 99} {
		items := makeItems(5)
		s := NewSession(items, testRand(seed))

		var last string
		for cycle := 0; cycle < 40; cycle++ {
			for i := 0; i < len(items); i++ {
				p, err := s.Advance()
				require.NoError(t, err)
				if cycle > 0 || i > 0 {
					assert.NotEqual(t, last, p, "seed %d cycle %d: back-to-back repeat across draws", seed, cycle)
				}
				last = p
			}
		}
	}
}

func TestRetreatThenAdvanceRedisplays(t *testing.T) {
	s := NewSession(makeItems(6), testRand(3))

	var shown []string
	for i := 0; i < 3; i++ {
		p, err := s.Advance()
		require.NoError(t, err)
		shown = append(shown, p)
	}

	back, err := s.Retreat()
	require.NoError(t, err)
	assert.Equal(t, shown[1], back)

	// Redo must reproduce the image we retreated from, without a new draw.
	redo, err := s.Advance()
	require.NoError(t, err)
	assert.Equal(t, shown[2], redo)
	assert.Len(t, s.History(), 3, "retreat+advance pair must not grow the history")
}

func TestBoundaryFailures(t *testing.T) {
	t.Run("empty working set", func(t *testing.T) {
		s := NewSession(nil, testRand(1))
		_, err := s.Advance()
		assert.ErrorIs(t, err, ErrEmptySet)
		_, err = s.Current()
		assert.ErrorIs(t, err, ErrNoHistory)
		_, err = s.Retreat()
		assert.ErrorIs(t, err, ErrNoHistory)
	})

	t.Run("before first advance", func(t *testing.T) {
		s := NewSession(makeItems(3), testRand(1))
		_, err := s.Current()
		assert.ErrorIs(t, err, ErrNoHistory)
		_, err = s.Retreat()
		assert.ErrorIs(t, err, ErrNoHistory)
	})

	t.Run("retreat at history start", func(t *testing.T) {
		s := NewSession(makeItems(3), testRand(1))
		_, err := s.Advance()
		require.NoError(t, err)
		_, err = s.Retreat()
		assert.ErrorIs(t, err, ErrNoHistory)
	})
}

func TestCurrentIsIdempotent(t *testing.T) {
	s := NewSession(makeItems(4), testRand(5))
	first, err := s.Advance()
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		p, err := s.Current()
		require.NoError(t, err)
		assert.Equal(t, first, p)
	}
	assert.Len(t, s.History(), 1)
	assert.Equal(t, 0, s.Cursor())
}

func TestThreeElementScenario(t *testing.T) {
	items := []string{"/a.png", "/b.png", "/c.png"}
	s := NewSession(items, testRand(11))

	cycle := make(map[string]bool)
	for i := 0; i < 3; i++ {
		p, err := s.Advance()
		require.NoError(t, err)
		cycle[p] = true
	}
	assert.Len(t, cycle, 3, "first cycle must show each of A, B, C exactly once")

	third, err := s.Current()
	require.NoError(t, err)

	fourth, err := s.Advance()
	require.NoError(t, err)
	assert.NotEqual(t, third, fourth, "reshuffle must not open with the last draw")

	// The next full cycle is again a permutation of the set.
	cycle2 := map[string]bool{fourth: true}
	for i := 0; i < 2; i++ {
		p, err := s.Advance()
		require.NoError(t, err)
		cycle2[p] = true
	}
	assert.Len(t, cycle2, 3)
}

// With two elements the adjacency rule leaves the reshuffle exactly one legal
// opening, so draws alternate strictly.
func TestSessionTwoElementAlternation(t *testing.T) {
	s := NewSession([]string{"/x.jpg", "/y.jpg"}, testRand(8))

	prev, err := s.Advance()
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		p, err := s.Advance()
		require.NoError(t, err)
		assert.NotEqual(t, prev, p, "two-element set must alternate")
		prev = p
	}
}

func TestSingleElementRepeats(t *testing.T) {
	s := NewSession([]string{"/only.gif"}, testRand(2))
	for i := 0; i < 4; i++ {
		p, err := s.Advance()
		require.NoError(t, err)
		assert.Equal(t, "/only.gif", p)
	}
}

func TestSeek(t *testing.T) {
	s := NewSession(makeItems(5), testRand(9))
	for i := 0; i < 4; i++ {
		_, err := s.Advance()
		require.NoError(t, err)
	}
	hist := s.History()

	p, err := s.Seek(1)
	require.NoError(t, err)
	assert.Equal(t, hist[1], p)
	assert.Equal(t, 1, s.Cursor())

	_, err = s.Seek(4)
	assert.ErrorIs(t, err, ErrNoHistory)
	_, err = s.Seek(-1)
	assert.ErrorIs(t, err, ErrNoHistory)
}

func TestWorkingSetIsCopied(t *testing.T) {
	items := makeItems(3)
	s := NewSession(items, testRand(4))
	items[0] = "/mutated.jpg"

	seen := make(map[string]bool)
	for i := 0; i < 3; i++ {
		p, err := s.Advance()
		require.NoError(t, err)
		seen[p] = true
	}
	assert.False(t, seen["/mutated.jpg"], "session must own its working set")
}
