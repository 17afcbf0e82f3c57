package model

import "github.com/hopelesspoet/Conway-s-Game-of-Life/utils"

// Viewport is the visible, editable part of the lattice in cell units,
// anchored at the origin. It bounds display and editing, never the simulation.
type Viewport struct {
	Width  int
	Height int
}

// NewViewport validates the dimensions. Zero is allowed, negative is not.
func NewViewport(width, height int) (Viewport, error) {
	if width < 0 || height < 0 {
		return Viewport{}, utils.InvalidArgumentf("[NewViewport] negative dimensions %dx%d", width, height)
	}
	return Viewport{Width: width, Height: height}, nil
}

// Contains checks the upper bounds only. Cells come from the origin-anchored
// pointer mapping, which never yields negative coordinates.
func (v Viewport) Contains(c Cell) bool {
	return c.X < v.Width && c.Y < v.Height
}

// Area is the number of cell positions in the viewport.
func (v Viewport) Area() int {
	return v.Width * v.Height
}

// Clip removes from live every cell outside vp and returns how many went.
func Clip(live LiveSet, vp Viewport) int {
	dropped := 0
	for c := range live {
		if !vp.Contains(c) {
			delete(live, c)
			dropped++
		}
	}
	return dropped
}
