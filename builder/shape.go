package builder

import (
	"fmt"
	"sort"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/oomph-ac/mcpi/world"
)

// Pattern is the name of a shape that can be built next to a player.
type Pattern string

const (
	// Vein is a line of blocks stretching north from the block in front of the origin.
	Vein Pattern = "vein"
	// Tower is a column of blocks rising from the block in front of the origin.
	Tower Pattern = "tower"
	// Wall is a vein repeated Height times upwards.
	Wall Pattern = "wall"
	// Floor is a vein repeated Width times eastwards.
	Floor Pattern = "floor"
	// Checkerboard is a floor alternating between the block and its alternate.
	Checkerboard Pattern = "checkerboard"
)

var patterns = map[Pattern]struct{}{Vein: {}, Tower: {}, Wall: {}, Floor: {}, Checkerboard: {}}

// Patterns returns the names of all patterns, sorted.
func Patterns() []string {
	names := make([]string, 0, len(patterns))
	for p := range patterns {
		names = append(names, string(p))
	}
	sort.Strings(names)
	return names
}

// Placement is a single block to set.
type Placement struct {
	Pos   cube.Pos
	Block world.BlockType
}

// Shape describes what to build next to a player.
type Shape struct {
	Pattern Pattern
	// Length is the amount of blocks along the main axis of the pattern.
	Length int
	// Width is the amount of rows of a floor or checkerboard.
	Width int
	// Height is the amount of rows of a wall.
	Height int
	// Spacing is the distance between consecutive blocks along the main axis. A spacing of 2 leaves a
	// gap of one block between them.
	Spacing int

	Block     world.BlockType
	Alternate world.BlockType
}

// DefaultShape returns the shape of 100 diamond blocks in a vein.
func DefaultShape() Shape {
	return Shape{
		Pattern:   Vein,
		Length:    100,
		Width:     1,
		Height:    1,
		Spacing:   1,
		Block:     world.Diamond,
		Alternate: world.Gold,
	}
}

// Validate checks if the shape can be built.
func (s Shape) Validate() error {
	if _, ok := patterns[s.Pattern]; !ok {
		return fmt.Errorf("unknown pattern %q, expected one of %v", s.Pattern, Patterns())
	}
	if s.Length <= 0 || s.Width <= 0 || s.Height <= 0 || s.Spacing <= 0 {
		return fmt.Errorf("length, width, height and spacing must be positive, got %d, %d, %d and %d", s.Length, s.Width, s.Height, s.Spacing)
	}
	return nil
}

// Placements returns the blocks to set for the shape built at origin, usually the block a player stands
// in. The order is deterministic: rows first, then along the main axis.
func (s Shape) Placements(origin cube.Pos) []Placement {
	var rows, cols int
	switch s.Pattern {
	case Vein, Tower:
		rows, cols = 1, s.Length
	case Wall:
		rows, cols = s.Height, s.Length
	case Floor, Checkerboard:
		rows, cols = s.Width, s.Length
	default:
		return nil
	}

	placements := make([]Placement, 0, rows*cols)
	for row := 0; row < rows; row++ {
		for i := 0; i < cols; i++ {
			offset := i * s.Spacing
			var pos cube.Pos
			switch s.Pattern {
			case Vein:
				pos = origin.Add(cube.Pos{0, 0, 1 + offset})
			case Tower:
				pos = origin.Add(cube.Pos{0, offset, 1})
			case Wall:
				pos = origin.Add(cube.Pos{0, row, 1 + offset})
			case Floor, Checkerboard:
				pos = origin.Add(cube.Pos{row, 0, 1 + offset})
			}

			b := s.Block
			if s.Pattern == Checkerboard && (row+i)%2 == 1 {
				b = s.Alternate
			}
			placements = append(placements, Placement{Pos: pos, Block: b})
		}
	}
	return placements
}
