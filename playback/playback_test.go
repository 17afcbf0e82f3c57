package playback

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hopelesspoet/Conway-s-Game-of-Life/model"
	"github.com/hopelesspoet/Conway-s-Game-of-Life/utils"
)

func newBlinkerBoard(t *testing.T) *model.Board {
	t.Helper()
	b, err := model.NewBoard(10, 10, model.WithSeed(1))
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	b.Stamp(model.Blinker, 3, 3)
	return b
}

// sendGeneration never blocks the stepping goroutine, so Stop cannot hang on
// a full channel.
func sendGeneration(gens chan<- int) func(model.Frame) {
	return func(f model.Frame) {
		select {
		case gens <- f.Generation:
		default:
		}
	}
}

func waitForGeneration(t *testing.T, gens <-chan int, want int) {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case g := <-gens:
			if g >= want {
				return
			}
		case <-timeout:
			t.Fatalf("timed out waiting for generation %d", want)
		}
	}
}

func TestStartStopBeforeFirstTick(t *testing.T) {
	b := newBlinkerBoard(t)
	before := b.Snapshot()

	c := New(b)
	if err := c.Start(10_000); err != nil {
		t.Fatalf("Start: %v", err)
	}
	c.Stop()

	if !b.Snapshot().Equal(before) || b.Generation() != 0 {
		t.Fatalf("board changed without a tick: %v", b.Snapshot().Sorted())
	}
	if c.Running() {
		t.Fatal("controller still running after Stop")
	}
}

func TestPlaybackAdvancesGenerations(t *testing.T) {
	b := newBlinkerBoard(t)
	start := b.Snapshot()

	gens := make(chan int, 64)
	c := New(b, OnGeneration(sendGeneration(gens)))
	if err := c.Start(5); err != nil {
		t.Fatalf("Start: %v", err)
	}
	waitForGeneration(t, gens, 2)
	c.Stop()

	// A blinker alternates phases, so every frame is one of the two.
	gen := b.Generation()
	snap := b.Snapshot()
	if gen%2 == 0 && !snap.Equal(start) {
		t.Fatalf("even generation %d does not match the start phase", gen)
	}
	if gen%2 == 1 && !snap.Equal(model.Advance(start)) {
		t.Fatalf("odd generation %d does not match the second phase", gen)
	}
	if stats := c.Stats(); stats.TotalGenerations != gen || stats.Population != 3 {
		t.Fatalf("stats out of sync with board: %+v at generation %d", stats, gen)
	}
}

func TestStopIsSynchronous(t *testing.T) {
	b := newBlinkerBoard(t)

	var steps atomic.Int64
	c := New(b, OnGeneration(func(model.Frame) { steps.Add(1) }))
	if err := c.Start(1); err != nil {
		t.Fatalf("Start: %v", err)
	}
	deadline := time.Now().Add(5 * time.Second)
	for steps.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	c.Stop()

	after := steps.Load()
	gen := b.Generation()
	time.Sleep(20 * time.Millisecond)
	if steps.Load() != after || b.Generation() != gen {
		t.Fatalf("steps applied after Stop returned: %d -> %d", after, steps.Load())
	}
}

func TestStartStopAreIdempotent(t *testing.T) {
	c := New(newBlinkerBoard(t))

	c.Stop()
	if err := c.Start(10_000); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := c.Start(5); err != nil {
		t.Fatalf("second Start: %v", err)
	}
	if c.Interval() != 10*time.Second {
		t.Fatalf("second Start changed the interval to %v", c.Interval())
	}
	c.Stop()
	c.Stop()

	if err := c.Start(10_000); err != nil {
		t.Fatalf("restart: %v", err)
	}
	if !c.Running() {
		t.Fatal("controller did not restart")
	}
	c.Stop()
}

func TestInvalidIntervals(t *testing.T) {
	c := New(newBlinkerBoard(t))
	for _, ms := range []int{0, -5} {
		if err := c.Start(ms); !errors.Is(err, utils.ErrInvalidArgument) {
			t.Fatalf("Start(%d): expected ErrInvalidArgument, got %v", ms, err)
		}
		if err := c.SetRate(ms); !errors.Is(err, utils.ErrInvalidArgument) {
			t.Fatalf("SetRate(%d): expected ErrInvalidArgument, got %v", ms, err)
		}
	}
	if c.Running() {
		t.Fatal("rejected Start left the controller running")
	}
}

func TestSetRateWhileRunning(t *testing.T) {
	b := newBlinkerBoard(t)
	gens := make(chan int, 64)
	c := New(b, OnGeneration(sendGeneration(gens)))

	if err := c.Start(60_000); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer c.Stop()

	if err := c.SetRate(5); err != nil {
		t.Fatalf("SetRate: %v", err)
	}
	if c.Interval() != 5*time.Millisecond {
		t.Fatalf("interval = %v", c.Interval())
	}
	waitForGeneration(t, gens, 1)
}

func TestSetRateWhileStopped(t *testing.T) {
	c := New(newBlinkerBoard(t))
	if err := c.SetRate(250); err != nil {
		t.Fatalf("SetRate: %v", err)
	}
	if c.Running() || c.Interval() != 250*time.Millisecond {
		t.Fatalf("running=%v interval=%v", c.Running(), c.Interval())
	}
}

func TestStepOnce(t *testing.T) {
	b := newBlinkerBoard(t)
	start := b.Snapshot()
	c := New(b)

	if err := c.StepOnce(context.Background()); err != nil {
		t.Fatalf("StepOnce: %v", err)
	}
	if b.Generation() != 1 || !b.Snapshot().Equal(model.Advance(start)) {
		t.Fatalf("StepOnce did not apply one generation: %v", b.Snapshot().Sorted())
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := c.StepOnce(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if b.Generation() != 1 {
		t.Fatal("canceled StepOnce applied a generation")
	}
}

func TestStepsNeverOverlap(t *testing.T) {
	b, err := model.NewBoard(64, 64, model.WithSeed(3))
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	_ = b.RandomFill(35)

	var inFlight, maxInFlight atomic.Int64
	c := New(b, OnGeneration(func(model.Frame) {
		n := inFlight.Add(1)
		if n > maxInFlight.Load() {
			maxInFlight.Store(n)
		}
		time.Sleep(2 * time.Millisecond)
		inFlight.Add(-1)
	}))

	if err := c.Start(1); err != nil {
		t.Fatalf("Start: %v", err)
	}
	for range 10 {
		if err := c.StepOnce(context.Background()); err != nil {
			t.Fatalf("StepOnce: %v", err)
		}
	}
	c.Stop()

	if maxInFlight.Load() > 1 {
		t.Fatalf("%d steps ran concurrently", maxInFlight.Load())
	}
}

func TestStagnationRecorded(t *testing.T) {
	b, _ := model.NewBoard(10, 10)
	b.Stamp(model.Block, 1, 1)
	c := New(b)

	for range 2 {
		if err := c.StepOnce(context.Background()); err != nil {
			t.Fatalf("StepOnce: %v", err)
		}
	}
	if !c.Stats().Stagnant {
		t.Fatal("block not reported stagnant")
	}

	if err := c.ResetHistory(context.Background()); err != nil {
		t.Fatalf("ResetHistory: %v", err)
	}
	if stats := c.Stats(); stats.Stagnant || stats.TotalGenerations != 0 {
		t.Fatalf("reset left stats behind: %+v", stats)
	}
}
