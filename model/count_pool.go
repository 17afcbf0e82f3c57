package model

import "sync"

// countPool recycles the neighbor count maps used while computing a generation.
type countPool struct {
	pool sync.Pool
}

func newCountPool() *countPool {
	return &countPool{
		pool: sync.Pool{
			New: func() interface{} {
				return make(map[Cell]uint8)
			},
		},
	}
}

// Get retrieves an empty count map from the pool
func (p *countPool) Get() map[Cell]uint8 {
	return p.pool.Get().(map[Cell]uint8)
}

// Put returns a count map to the pool, clearing its state
func (p *countPool) Put(counts map[Cell]uint8) {
	if counts == nil {
		return
	}
	clear(counts)
	p.pool.Put(counts)
}

var counts = newCountPool()
