package model

import (
	"cmp"
	"crypto/md5"
	"encoding/binary"
	"fmt"
	"maps"
	"slices"
)

// Cell is a position on the unbounded lattice.
type Cell struct {
	X, Y int
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// LiveSet is the set of live cells. Membership is all that matters.
type LiveSet map[Cell]struct{}

// NewLiveSet builds a set from the given cells, duplicates collapse.
func NewLiveSet(cells ...Cell) LiveSet {
	s := make(LiveSet, len(cells))
	for _, c := range cells {
		s[c] = struct{}{}
	}
	return s
}

func (s LiveSet) Add(c Cell)    { s[c] = struct{}{} }
func (s LiveSet) Remove(c Cell) { delete(s, c) }

func (s LiveSet) Contains(c Cell) bool {
	_, ok := s[c]
	return ok
}

func (s LiveSet) Len() int { return len(s) }

// Clone returns an independent copy. A nil set clones to an empty one.
func (s LiveSet) Clone() LiveSet {
	if s == nil {
		return LiveSet{}
	}
	return maps.Clone(s)
}

// Equal reports whether both sets hold exactly the same cells.
func (s LiveSet) Equal(other LiveSet) bool {
	if len(s) != len(other) {
		return false
	}
	for c := range s {
		if !other.Contains(c) {
			return false
		}
	}
	return true
}

// Sorted returns the cells ordered by row, then column.
func (s LiveSet) Sorted() []Cell {
	cells := slices.Collect(maps.Keys(s))
	slices.SortFunc(cells, func(a, b Cell) int {
		if c := cmp.Compare(a.Y, b.Y); c != 0 {
			return c
		}
		return cmp.Compare(a.X, b.X)
	})
	return cells
}

// Hash returns an MD5 digest of the set that does not depend on map order.
func (s LiveSet) Hash() string {
	h := md5.New()
	var buf [16]byte
	for _, c := range s.Sorted() {
		binary.LittleEndian.PutUint64(buf[:8], uint64(c.X))
		binary.LittleEndian.PutUint64(buf[8:], uint64(c.Y))
		h.Write(buf[:])
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
