package model

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/hopelesspoet/Conway-s-Game-of-Life/utils"
)

// Frame is a render-ready copy of the board.
type Frame struct {
	Cells      LiveSet
	Viewport   Viewport
	Generation int
}

// Board owns the live cells and the viewport. Every read and write of either
// goes through mu, so a step, a resize and an edit never see each other half
// applied.
type Board struct {
	mu         sync.Mutex
	live       LiveSet
	viewport   Viewport
	generation int
	rng        *rand.Rand
	log        *utils.Logger

	// notifyMu is taken before mu is released so listeners observe frames in
	// mutation order.
	notifyMu  sync.Mutex
	listeners []func(Frame)
}

// BoardOption configures a Board.
type BoardOption func(*Board)

// WithSeed makes RandomFill deterministic.
func WithSeed(seed int64) BoardOption {
	return func(b *Board) {
		b.rng = rand.New(rand.NewPCG(uint64(seed), 0))
	}
}

// WithLogger routes board diagnostics to l.
func WithLogger(l *utils.Logger) BoardOption {
	return func(b *Board) {
		b.log = l
	}
}

// NewBoard creates an empty board with the given viewport.
func NewBoard(width, height int, opts ...BoardOption) (*Board, error) {
	vp, err := NewViewport(width, height)
	if err != nil {
		return nil, err
	}
	b := &Board{
		live:     LiveSet{},
		viewport: vp,
		log:      utils.Discard(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.rng == nil {
		b.rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	return b, nil
}

// OnChange registers a listener fired once per applied mutation with the new
// frame. Listeners run with the notification lock held and must not call back
// into the board; everything they need is in the frame.
func (b *Board) OnChange(fn func(Frame)) {
	if fn == nil {
		return
	}
	b.notifyMu.Lock()
	b.listeners = append(b.listeners, fn)
	b.notifyMu.Unlock()
}

// commit publishes the current state. It must be called with mu held and
// releases it.
func (b *Board) commit() Frame {
	f := b.frameLocked()
	b.notifyMu.Lock()
	b.mu.Unlock()
	defer b.notifyMu.Unlock()
	for _, fn := range b.listeners {
		fn(f)
	}
	return f
}

func (b *Board) frameLocked() Frame {
	return Frame{
		Cells:      b.live.Clone(),
		Viewport:   b.viewport,
		Generation: b.generation,
	}
}

// Add makes the cell at (x, y) alive. Adding a live cell changes nothing but
// still notifies.
func (b *Board) Add(x, y int) {
	b.mu.Lock()
	b.live.Add(Cell{X: x, Y: y})
	b.commit()
}

// Remove kills the cell at (x, y) if it is alive.
func (b *Board) Remove(x, y int) {
	b.mu.Lock()
	b.live.Remove(Cell{X: x, Y: y})
	b.commit()
}

// Clear kills every cell. The generation counter restarts at zero.
func (b *Board) Clear() {
	b.mu.Lock()
	clear(b.live)
	b.generation = 0
	b.commit()
}

// RandomFill visits every viewport position once and makes it alive with
// probability percent/100. It only adds cells.
func (b *Board) RandomFill(percent int) error {
	if percent < 0 || percent > 100 {
		return utils.InvalidArgumentf("[RandomFill] percent %d outside [0,100]", percent)
	}
	b.mu.Lock()
	before := len(b.live)
	for x := range b.viewport.Width {
		for y := range b.viewport.Height {
			if b.rng.IntN(100) < percent {
				b.live.Add(Cell{X: x, Y: y})
			}
		}
	}
	b.log.Debugf("[RandomFill] %d%% of %dx%d added %d cells", percent,
		b.viewport.Width, b.viewport.Height, len(b.live)-before)
	b.commit()
	return nil
}

// Stamp adds pattern with its top-left corner at (x, y).
func (b *Board) Stamp(p Pattern, x, y int) {
	b.mu.Lock()
	for _, c := range p.Cells {
		b.live.Add(Cell{X: x + c.X, Y: y + c.Y})
	}
	b.commit()
}

// Replace swaps in a copy of live as the whole live set.
func (b *Board) Replace(live LiveSet) {
	next := live.Clone()
	b.mu.Lock()
	b.live = next
	b.commit()
}

// Resize sets the viewport and drops every live cell outside it. It never
// advances a generation.
func (b *Board) Resize(width, height int) error {
	vp, err := NewViewport(width, height)
	if err != nil {
		return err
	}
	b.mu.Lock()
	b.viewport = vp
	if dropped := Clip(b.live, vp); dropped > 0 {
		b.log.Debugf("[Resize] %dx%d dropped %d cells", width, height, dropped)
	}
	b.commit()
	return nil
}

// Step advances the board by one generation. The lock is held from reading
// the live set until the result is installed.
func (b *Board) Step() Frame {
	b.mu.Lock()
	b.live = Advance(b.live)
	b.generation++
	return b.commit()
}

// Snapshot returns a copy of the live cells that the caller owns.
func (b *Board) Snapshot() LiveSet {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.live.Clone()
}

// Frame returns the current render-ready state without notifying.
func (b *Board) Frame() Frame {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.frameLocked()
}

func (b *Board) Viewport() Viewport {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.viewport
}

func (b *Board) Population() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.live)
}

func (b *Board) Generation() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.generation
}
