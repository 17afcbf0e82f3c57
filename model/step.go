package model

import (
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/hopelesspoet/Conway-s-Game-of-Life/rules"
)

// ParallelThreshold is the live cell count from which Advance shards neighbor
// counting across CPUs.
var ParallelThreshold = 4096

// Advance computes the next generation of live.
//
// Only live cells and their Moore neighbors can change, so the cost is
// proportional to the population rather than to any board area. The input is
// never modified and the result is a new set.
func Advance(live LiveSet) LiveSet {
	if len(live) == 0 {
		return LiveSet{}
	}
	if len(live) < ParallelThreshold {
		return advanceSerial(live)
	}
	return advanceParallel(live, runtime.NumCPU())
}

func advanceSerial(live LiveSet) LiveSet {
	c := counts.Get()
	defer counts.Put(c)

	for cell := range live {
		countNeighbors(cell, c)
	}
	return applyRules(live, c)
}

// advanceParallel splits the live cells into shards, counts each shard into a
// private map and merges the maps before applying the rule.
func advanceParallel(live LiveSet, workers int) LiveSet {
	cells := make([]Cell, 0, len(live))
	for cell := range live {
		cells = append(cells, cell)
	}

	var (
		eg             errgroup.Group
		cellsPerWorker = (len(cells) + workers - 1) / workers // Ceiling division
		shards         = make([]map[Cell]uint8, workers)
	)

	for i := range workers {
		var (
			start = i * cellsPerWorker
			end   = min(start+cellsPerWorker, len(cells))
		)
		if start >= len(cells) {
			break
		}

		eg.Go(func() error {
			shard := counts.Get()
			for _, cell := range cells[start:end] {
				countNeighbors(cell, shard)
			}
			shards[i] = shard
			return nil
		})
	}
	// Workers never fail.
	_ = eg.Wait()

	merged := counts.Get()
	defer counts.Put(merged)
	for _, shard := range shards {
		for cell, n := range shard {
			merged[cell] += n
		}
		counts.Put(shard)
	}
	return applyRules(live, merged)
}

// countNeighbors adds one to the count of every in-range neighbor of cell.
// Offsets that would overflow int are skipped so extreme coordinates never wrap.
func countNeighbors(cell Cell, c map[Cell]uint8) {
	for dy := -1; dy <= 1; dy++ {
		if (dy < 0 && cell.Y == math.MinInt) || (dy > 0 && cell.Y == math.MaxInt) {
			continue
		}
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue // Skip the cell itself
			}
			if (dx < 0 && cell.X == math.MinInt) || (dx > 0 && cell.X == math.MaxInt) {
				continue
			}
			c[Cell{X: cell.X + dx, Y: cell.Y + dy}]++
		}
	}
}

// applyRules keeps every counted cell the rule says is alive. A live cell with
// no live neighbors never appears in c, and it dies anyway.
func applyRules(live LiveSet, c map[Cell]uint8) LiveSet {
	next := make(LiveSet, len(live))
	for cell, n := range c {
		if rules.ApplyConwayRules(int(n), live.Contains(cell)) {
			next[cell] = struct{}{}
		}
	}
	return next
}
