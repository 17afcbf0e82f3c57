// Package playback advances a board on a timer.
//
// A Controller is either stopped or running. While running, one goroutine
// steps the board once per interval; the first generation is applied one full
// interval after Start, never immediately. Every step, scheduled or requested
// through StepOnce, holds a single-slot semaphore, so two generations are
// never computed at the same time.
package playback

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/hopelesspoet/Conway-s-Game-of-Life/model"
	"github.com/hopelesspoet/Conway-s-Game-of-Life/utils"
)

type Controller struct {
	board        *model.Board
	log          *utils.Logger
	stats        *utils.Stats
	onGeneration func(model.Frame)
	sem          *semaphore.Weighted

	mu       sync.Mutex
	interval time.Duration
	cancel   context.CancelFunc
	done     chan struct{}
	rate     chan time.Duration

	// Guarded by sem.
	history  model.History
	lastStep time.Time
}

// Option configures a Controller.
type Option func(*Controller)

func WithLogger(l *utils.Logger) Option {
	return func(c *Controller) {
		c.log = l
	}
}

// WithStats records per-generation statistics into s.
func WithStats(s *utils.Stats) Option {
	return func(c *Controller) {
		c.stats = s
	}
}

// OnGeneration is called after every applied generation, from the stepping
// goroutine. It must not call Stop.
func OnGeneration(fn func(model.Frame)) Option {
	return func(c *Controller) {
		c.onGeneration = fn
	}
}

// New returns a stopped controller for board.
func New(board *model.Board, opts ...Option) *Controller {
	c := &Controller{
		board: board,
		log:   utils.Discard(),
		stats: utils.NewStats(),
		sem:   semaphore.NewWeighted(1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func intervalFromMillis(fn string, intervalMillis int) (time.Duration, error) {
	if intervalMillis <= 0 {
		return 0, utils.InvalidArgumentf("[%s] interval must be positive, got %dms", fn, intervalMillis)
	}
	return time.Duration(intervalMillis) * time.Millisecond, nil
}

// Start begins stepping every intervalMillis. Starting a running controller
// does nothing.
func (c *Controller) Start(intervalMillis int) error {
	d, err := intervalFromMillis("Start", intervalMillis)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.interval = d
	c.cancel = cancel
	c.done = make(chan struct{})
	c.rate = make(chan time.Duration, 1)
	go c.run(ctx, d, c.rate, c.done)

	c.log.Infof("[Start] playback running every %v", d)
	return nil
}

// Stop cancels playback and waits for the stepping goroutine to exit. A
// generation already being computed is applied; none starts afterwards.
// Stopping a stopped controller does nothing.
func (c *Controller) Stop() {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.cancel, c.done, c.rate = nil, nil, nil
	c.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	c.log.Infof("[Stop] playback stopped at generation %d", c.board.Generation())
}

// SetRate changes the interval. While running it takes effect no later than
// the next scheduled generation.
func (c *Controller) SetRate(intervalMillis int) error {
	d, err := intervalFromMillis("SetRate", intervalMillis)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.interval = d
	if c.rate != nil {
		// Only the latest rate matters.
		select {
		case <-c.rate:
		default:
		}
		c.rate <- d
	}
	c.log.Debugf("[SetRate] interval set to %v", d)
	return nil
}

func (c *Controller) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cancel != nil
}

// Interval is the last interval given to Start or SetRate.
func (c *Controller) Interval() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.interval
}

func (c *Controller) Stats() utils.StatsSnapshot {
	return c.stats.Snapshot()
}

// StepOnce applies exactly one generation, waiting for any in-flight step to
// finish first. It works whether or not playback is running.
func (c *Controller) StepOnce(ctx context.Context) error {
	return c.step(ctx)
}

// ResetHistory forgets recorded generations and statistics, typically after
// the board was cleared and refilled.
func (c *Controller) ResetHistory(ctx context.Context) error {
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer c.sem.Release(1)

	c.history.Reset()
	c.lastStep = time.Time{}
	c.stats.Reset()
	return nil
}

// run steps the board on every tick. time.Ticker drops ticks a slow step
// overruns instead of queueing them, and ticks are measured from the start of
// the period, not from step completion.
func (c *Controller) run(ctx context.Context, interval time.Duration, rate <-chan time.Duration, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case d := <-rate:
			ticker.Reset(d)
		case <-ticker.C:
			if err := c.step(ctx); err != nil {
				return
			}
		}
	}
}

func (c *Controller) step(ctx context.Context) error {
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer c.sem.Release(1)

	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	f := c.board.Step()

	elapsed := time.Since(start)
	if !c.lastStep.IsZero() {
		elapsed = start.Sub(c.lastStep)
	}
	c.lastStep = start

	population := f.Cells.Len()
	c.stats.Update(f.Generation, population, elapsed)
	stagnant := c.history.Record(f.Cells)
	c.stats.SetStagnant(stagnant)
	if stagnant {
		c.log.Debugf("[step] generation %d repeats a recent generation", f.Generation)
	}
	if population == 0 {
		c.log.Debugf("[step] extinct at generation %d", f.Generation)
	}

	if c.onGeneration != nil {
		c.onGeneration(f)
	}
	return nil
}
