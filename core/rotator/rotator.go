// ABOUTME: Rotator state machine cycling through an article's images on a timer
// ABOUTME: Supports load failures, manual selection, resets and terminal unmount

package rotator

import (
	"errors"
	"sync"
	"time"
)

// DefaultInterval is the delay between automatic advances
const DefaultInterval = 4000 * time.Millisecond

// State of a rotator
type State int

const (
	// Idle is the state before Mount
	Idle State = iota
	// Showing displays Snapshot.Index
	Showing
	// Failed shows the placeholder
	Failed
	// Stopped is terminal
	Stopped
)

// String implements fmt.Stringer
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Showing:
		return "showing"
	case Failed:
		return "failed"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

var (
	// ErrStopped is returned by operations on an unmounted rotator
	ErrStopped = errors.New("rotator: unmounted")
	// ErrIndexOutOfRange is returned by Select for an invalid index
	ErrIndexOutOfRange = errors.New("rotator: index out of range")
	// ErrNotShowing is returned by Select when there is nothing to show
	ErrNotShowing = errors.New("rotator: no images to show")
)

// Snapshot is an immutable view of the rotator. Seq grows with every
// transition, so observers can discard snapshots delivered out of order.
type Snapshot struct {
	Seq    uint64
	State  State
	Index  int
	Count  int
	Loaded bool
	Image  string
}

// Options configure a rotator
type Options struct {
	// Interval defaults to DefaultInterval
	Interval time.Duration

	// Clock defaults to SystemClock
	Clock Clock

	// OnChange receives every transition. It runs without the rotator lock
	// held but on the timer goroutine for ticks, so it must not call Unmount.
	OnChange func(Snapshot)
}

// Rotator cycles through a list of images. At most one timer runs at a time
// and no transition happens once Unmount has been called.
type Rotator struct {
	mu       sync.Mutex
	images   []string
	state    State
	index    int
	loaded   bool
	interval time.Duration
	clock    Clock
	onChange func(Snapshot)

	// seq numbers transitions
	seq uint64

	// gen invalidates ticks from cancelled timers
	gen  uint64
	stop chan struct{}
	done chan struct{}
}

// New creates an idle rotator
func New(opts Options) *Rotator {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock{}
	}
	return &Rotator{
		state:    Idle,
		interval: opts.Interval,
		clock:    opts.Clock,
		onChange: opts.OnChange,
	}
}

// Mount starts showing images. An empty list shows the placeholder and starts
// no timer; a single image is shown without a timer.
func (r *Rotator) Mount(images []string) error {
	return r.Reset(images)
}

// Reset replaces the image list and restarts from the first image
func (r *Rotator) Reset(images []string) error {
	r.mu.Lock()
	if r.state == Stopped {
		r.mu.Unlock()
		return ErrStopped
	}

	r.cancelTimerLocked()
	r.images = append([]string(nil), images...)
	r.index = 0
	r.loaded = false
	if len(r.images) == 0 {
		r.state = Failed
	} else {
		r.state = Showing
		r.startTimerLocked()
	}
	snap := r.transitionLocked()
	r.mu.Unlock()

	r.notify(snap)
	return nil
}

// Loaded records that the current image finished loading
func (r *Rotator) Loaded() {
	r.mu.Lock()
	if r.state != Showing || r.loaded {
		r.mu.Unlock()
		return
	}
	r.loaded = true
	snap := r.transitionLocked()
	r.mu.Unlock()

	r.notify(snap)
}

// ImageFailed reports that the current image could not be loaded. With more
// than one image the rotator advances; otherwise it shows the placeholder.
func (r *Rotator) ImageFailed() {
	r.mu.Lock()
	if r.state != Showing {
		r.mu.Unlock()
		return
	}

	if len(r.images) > 1 {
		r.advanceLocked()
	} else {
		r.cancelTimerLocked()
		r.state = Failed
		r.loaded = false
	}
	snap := r.transitionLocked()
	r.mu.Unlock()

	r.notify(snap)
}

// Select jumps to image k and restarts the timer from there
func (r *Rotator) Select(k int) error {
	r.mu.Lock()
	switch {
	case r.state == Stopped:
		r.mu.Unlock()
		return ErrStopped
	case len(r.images) == 0:
		r.mu.Unlock()
		return ErrNotShowing
	case k < 0 || k >= len(r.images):
		r.mu.Unlock()
		return ErrIndexOutOfRange
	}

	r.cancelTimerLocked()
	r.state = Showing
	r.index = k
	r.loaded = false
	r.startTimerLocked()
	snap := r.transitionLocked()
	r.mu.Unlock()

	r.notify(snap)
	return nil
}

// Unmount stops the rotator for good. It returns after the timer goroutine
// has exited.
func (r *Rotator) Unmount() {
	r.mu.Lock()
	if r.state == Stopped {
		r.mu.Unlock()
		return
	}
	done := r.done
	r.cancelTimerLocked()
	r.state = Stopped
	snap := r.transitionLocked()
	r.mu.Unlock()

	if done != nil {
		<-done
	}
	r.notify(snap)
}

// Snapshot returns the current state
func (r *Rotator) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

// Images returns a copy of the current image list
func (r *Rotator) Images() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.images...)
}

func (r *Rotator) advanceLocked() {
	r.index = (r.index + 1) % len(r.images)
	r.loaded = false
}

// transitionLocked numbers a new transition and returns its snapshot
func (r *Rotator) transitionLocked() Snapshot {
	r.seq++
	return r.snapshotLocked()
}

func (r *Rotator) snapshotLocked() Snapshot {
	snap := Snapshot{
		Seq:    r.seq,
		State:  r.state,
		Index:  r.index,
		Count:  len(r.images),
		Loaded: r.loaded,
	}
	if r.state == Showing && r.index < len(r.images) {
		snap.Image = r.images[r.index]
	}
	return snap
}

func (r *Rotator) startTimerLocked() {
	if len(r.images) <= 1 {
		return
	}

	r.gen++
	gen := r.gen
	stop := make(chan struct{})
	done := make(chan struct{})
	r.stop, r.done = stop, done

	ticker := r.clock.NewTicker(r.interval)
	go func() {
		defer close(done)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C():
				r.tick(gen)
			}
		}
	}()
}

func (r *Rotator) cancelTimerLocked() {
	r.gen++
	if r.stop != nil {
		close(r.stop)
		r.stop = nil
		r.done = nil
	}
}

func (r *Rotator) tick(gen uint64) {
	r.mu.Lock()
	if gen != r.gen || r.state != Showing || len(r.images) <= 1 {
		r.mu.Unlock()
		return
	}
	r.advanceLocked()
	snap := r.transitionLocked()
	r.mu.Unlock()

	r.notify(snap)
}

func (r *Rotator) notify(snap Snapshot) {
	if r.onChange != nil {
		r.onChange(snap)
	}
}
