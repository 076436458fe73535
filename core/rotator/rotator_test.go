package rotator

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manualClock hands out tickers that only fire when the test says so
type manualClock struct {
	mu      sync.Mutex
	tickers []*manualTicker
}

type manualTicker struct {
	ch       chan time.Time
	interval time.Duration
	mu       sync.Mutex
	stopped  bool
}

func (c *manualClock) NewTicker(d time.Duration) Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTicker{ch: make(chan time.Time), interval: d}
	c.tickers = append(c.tickers, t)
	return t
}

func (c *manualClock) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tickers)
}

func (c *manualClock) last() *manualTicker {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.tickers) == 0 {
		return nil
	}
	return c.tickers[len(c.tickers)-1]
}

func (t *manualTicker) C() <-chan time.Time { return t.ch }

func (t *manualTicker) Stop() {
	t.mu.Lock()
	t.stopped = true
	t.mu.Unlock()
}

func (t *manualTicker) isStopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

// fire delivers one tick and reports whether a timer goroutine took it
func (t *manualTicker) fire() bool {
	select {
	case t.ch <- time.Now():
		return true
	case <-time.After(50 * time.Millisecond):
		return false
	}
}

type harness struct {
	clock   *manualClock
	changes chan Snapshot
	r       *Rotator
}

func newHarness() *harness {
	h := &harness{clock: &manualClock{}, changes: make(chan Snapshot, 64)}
	h.r = New(Options{
		Clock:    h.clock,
		OnChange: func(s Snapshot) { h.changes <- s },
	})
	return h
}

func (h *harness) next(t *testing.T) Snapshot {
	t.Helper()
	select {
	case s := <-h.changes:
		return s
	case <-time.After(time.Second):
		t.Fatal("no transition observed")
		return Snapshot{}
	}
}

func TestNew_Defaults(t *testing.T) {
	r := New(Options{})

	assert.Equal(t, DefaultInterval, r.interval)
	assert.Equal(t, Idle, r.Snapshot().State)
	assert.Equal(t, 4*time.Second, DefaultInterval)
}

func TestMount_EmptyListFailsWithoutTimer(t *testing.T) {
	h := newHarness()

	require.NoError(t, h.r.Mount(nil))

	s := h.next(t)
	assert.Equal(t, Failed, s.State)
	assert.Equal(t, 0, h.clock.count(), "no timer for an empty list")
}

func TestMount_SingleImageHasNoTimer(t *testing.T) {
	h := newHarness()

	require.NoError(t, h.r.Mount([]string{"a"}))

	s := h.next(t)
	assert.Equal(t, Showing, s.State)
	assert.Equal(t, "a", s.Image)
	assert.Equal(t, 0, h.clock.count())
}

func TestTick_AdvancesAndWraps(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.r.Mount([]string{"a", "b", "c"}))
	assert.Equal(t, 0, h.next(t).Index)

	ticker := h.clock.last()
	require.NotNil(t, ticker)
	assert.Equal(t, DefaultInterval, ticker.interval)

	for _, want := range []int{1, 2, 0, 1} {
		require.True(t, ticker.fire())
		s := h.next(t)
		assert.Equal(t, want, s.Index)
		assert.False(t, s.Loaded)
	}
}

func TestLoaded_ResetByTick(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.r.Mount([]string{"a", "b"}))
	h.next(t)

	h.r.Loaded()
	assert.True(t, h.next(t).Loaded)

	require.True(t, h.clock.last().fire())
	s := h.next(t)
	assert.Equal(t, 1, s.Index)
	assert.False(t, s.Loaded)
}

func TestImageFailed_AdvancesWithSeveralImages(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.r.Mount([]string{"a", "b"}))
	h.next(t)

	h.r.ImageFailed()

	s := h.next(t)
	assert.Equal(t, Showing, s.State)
	assert.Equal(t, 1, s.Index)
}

func TestImageFailed_SingleImageGoesToFailed(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.r.Mount([]string{"only"}))
	h.next(t)

	h.r.ImageFailed()

	assert.Equal(t, Failed, h.next(t).State)

	// A failed rotator ignores further failures.
	h.r.ImageFailed()
	assert.Equal(t, Failed, h.r.Snapshot().State)
	assert.Len(t, h.changes, 0)
}

func TestSnapshot_SeqIncreasesPerTransition(t *testing.T) {
	h := newHarness()
	assert.Equal(t, uint64(0), h.r.Snapshot().Seq)

	require.NoError(t, h.r.Mount([]string{"a", "b", "c"}))
	var seqs []uint64
	seqs = append(seqs, h.next(t).Seq)

	h.r.Loaded()
	seqs = append(seqs, h.next(t).Seq)

	require.True(t, h.clock.last().fire())
	seqs = append(seqs, h.next(t).Seq)

	require.NoError(t, h.r.Select(0))
	seqs = append(seqs, h.next(t).Seq)

	h.r.ImageFailed()
	seqs = append(seqs, h.next(t).Seq)

	assert.Equal(t, []uint64{1, 2, 3, 4, 5}, seqs)
	assert.Equal(t, uint64(5), h.r.Snapshot().Seq, "reading a snapshot is not a transition")
}

func TestSelect_JumpsAndRestartsTimer(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.r.Mount([]string{"a", "b", "c", "d"}))
	h.next(t)
	first := h.clock.last()

	require.NoError(t, h.r.Select(2))
	assert.Equal(t, 2, h.next(t).Index)

	assert.Equal(t, 2, h.clock.count(), "selection restarts the timer")
	require.Eventually(t, first.isStopped, time.Second, 5*time.Millisecond)
	assert.False(t, first.fire(), "old timer must not fire after a restart")

	require.True(t, h.clock.last().fire())
	assert.Equal(t, 3, h.next(t).Index)
}

func TestSelect_InvalidIndex(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.r.Mount([]string{"a", "b"}))
	h.next(t)

	assert.ErrorIs(t, h.r.Select(2), ErrIndexOutOfRange)
	assert.ErrorIs(t, h.r.Select(-1), ErrIndexOutOfRange)
	assert.Equal(t, 0, h.r.Snapshot().Index)

	empty := New(Options{Clock: &manualClock{}})
	require.NoError(t, empty.Mount(nil))
	assert.ErrorIs(t, empty.Select(0), ErrNotShowing)
}

func TestSelect_RecoversFromFailed(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.r.Mount([]string{"only"}))
	h.next(t)
	h.r.ImageFailed()
	h.next(t)

	require.NoError(t, h.r.Select(0))
	assert.Equal(t, Showing, h.next(t).State)
}

func TestReset_RestartsFromZeroWithSingleTimer(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.r.Mount([]string{"a", "b", "c"}))
	h.next(t)
	old := h.clock.last()
	require.True(t, old.fire())
	assert.Equal(t, 1, h.next(t).Index)

	require.NoError(t, h.r.Reset([]string{"x", "y"}))
	s := h.next(t)
	assert.Equal(t, 0, s.Index)
	assert.Equal(t, 2, s.Count)
	assert.Equal(t, "x", s.Image)

	require.Eventually(t, old.isStopped, time.Second, 5*time.Millisecond)
	assert.False(t, old.fire(), "previous timer cancelled before the new one starts")
	require.True(t, h.clock.last().fire())
	assert.Equal(t, 1, h.next(t).Index)
}

func TestReset_ToEmptyStopsTimer(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.r.Mount([]string{"a", "b"}))
	h.next(t)
	ticker := h.clock.last()

	require.NoError(t, h.r.Reset(nil))
	assert.Equal(t, Failed, h.next(t).State)
	require.Eventually(t, ticker.isStopped, time.Second, 5*time.Millisecond)
	assert.False(t, ticker.fire())
}

func TestUnmount_IsTerminal(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.r.Mount([]string{"a", "b"}))
	h.next(t)
	ticker := h.clock.last()

	h.r.Unmount()
	assert.Equal(t, Stopped, h.next(t).State)
	assert.True(t, ticker.isStopped(), "timer joined before Unmount returns")

	assert.False(t, ticker.fire(), "no tick is consumed after unmount")
	h.r.ImageFailed()
	h.r.Loaded()
	assert.ErrorIs(t, h.r.Select(1), ErrStopped)
	assert.ErrorIs(t, h.r.Reset([]string{"z"}), ErrStopped)
	assert.Len(t, h.changes, 0, "no transition after unmount")

	// Unmounting twice is a no-op.
	h.r.Unmount()
	assert.Len(t, h.changes, 0)
}

func TestUnmount_FromIdle(t *testing.T) {
	r := New(Options{Clock: &manualClock{}})
	r.Unmount()
	assert.Equal(t, Stopped, r.Snapshot().State)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "showing", Showing.String())
	assert.Equal(t, "failed", Failed.String())
	assert.Equal(t, "stopped", Stopped.String())
	assert.Equal(t, "unknown", State(42).String())
}

func TestImages_ReturnsCopy(t *testing.T) {
	r := New(Options{Clock: &manualClock{}})
	src := []string{"a", "b"}
	require.NoError(t, r.Mount(src))
	src[0] = "mutated"

	got := r.Images()
	got[1] = "mutated"
	assert.Equal(t, []string{"a", "b"}, r.Images())
	r.Unmount()
}
