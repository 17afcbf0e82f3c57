package model

// Pattern is a shape relative to its top-left corner.
type Pattern struct {
	Name  string
	Cells []Cell
}

var (
	// Block is a 2x2 still life.
	Block = Pattern{Name: "block", Cells: []Cell{{0, 0}, {1, 0}, {0, 1}, {1, 1}}}

	// Blinker is a period 2 oscillator, horizontal phase.
	Blinker = Pattern{Name: "blinker", Cells: []Cell{{0, 0}, {1, 0}, {2, 0}}}

	// Glider moves one cell down and right every 4 generations.
	//
	//	.#.
	//	..#
	//	###
	Glider = Pattern{Name: "glider", Cells: []Cell{{1, 0}, {2, 1}, {0, 2}, {1, 2}, {2, 2}}}
)

// At returns the pattern's cells translated to (x, y).
func (p Pattern) At(x, y int) LiveSet {
	s := make(LiveSet, len(p.Cells))
	for _, c := range p.Cells {
		s.Add(Cell{X: x + c.X, Y: y + c.Y})
	}
	return s
}

// SeedInterestingPatterns stamps a few gliders and blinkers sized to the
// viewport, then randomly fills percent of it.
func (b *Board) SeedInterestingPatterns(percent int) error {
	vp := b.Viewport()

	if vp.Width >= 10 && vp.Height >= 10 {
		b.Stamp(Glider, 5, 5)
		if vp.Width >= 20 && vp.Height >= 15 {
			b.Stamp(Glider, vp.Width-8, 5)
		}

		b.Stamp(Blinker, vp.Width/4, vp.Height/4)
		if vp.Width >= 30 {
			b.Stamp(Blinker, 3*vp.Width/4, 3*vp.Height/4)
		}
	}

	return b.RandomFill(percent)
}
