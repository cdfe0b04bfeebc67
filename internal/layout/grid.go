package layout

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidGrid is returned for grids without rows or columns.
var ErrInvalidGrid = errors.New("invalid layout grid")

// Rect is an axis-aligned box in container units.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Placement is the box assigned to one grid cell. Index is row-major.
type Placement struct {
	Index int
	Row   int
	Col   int
	Rect
}

// Grid sizes cells to fill a container while keeping a card aspect ratio.
type Grid struct {
	Padding     float64
	AspectRatio float64 // width / height
	MinCell     float64
	MaxCell     float64
}

// DefaultGrid matches a 2:3 playing card in pixel units.
func DefaultGrid() Grid {
	return Grid{
		Padding:     10,
		AspectRatio: 2.0 / 3.0,
		MinCell:     50,
		MaxCell:     200,
	}
}

// CellSize returns the width and height every cell gets.
func (g Grid) CellSize(rows, cols int, spacing float64, bounds Rect) (float64, float64, error) {
	if rows < 1 || cols < 1 {
		return 0, 0, fmt.Errorf("%w: %dx%d", ErrInvalidGrid, rows, cols)
	}

	availableWidth := bounds.Width - 2*g.Padding - spacing*float64(cols-1)
	availableHeight := bounds.Height - 2*g.Padding - spacing*float64(rows-1)

	cellWidth := availableWidth / float64(cols)
	cellHeight := availableHeight / float64(rows)

	if g.AspectRatio > 0 && cellHeight > 0 {
		if cellWidth/cellHeight > g.AspectRatio {
			cellWidth = cellHeight * g.AspectRatio
		} else {
			cellHeight = cellWidth / g.AspectRatio
		}
	}

	cellWidth = clamp(cellWidth, g.MinCell, g.MaxCell)
	cellHeight = clamp(cellHeight, g.MinCell, g.MaxCell)
	return cellWidth, cellHeight, nil
}

// Place returns one placement per cell, row by row.
func (g Grid) Place(rows, cols int, spacing float64, bounds Rect) ([]Placement, error) {
	cellWidth, cellHeight, err := g.CellSize(rows, cols, spacing, bounds)
	if err != nil {
		return nil, err
	}

	placements := make([]Placement, 0, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			placements = append(placements, Placement{
				Index: r*cols + c,
				Row:   r,
				Col:   c,
				Rect: Rect{
					X:      bounds.X + g.Padding + float64(c)*(cellWidth+spacing),
					Y:      bounds.Y + g.Padding + float64(r)*(cellHeight+spacing),
					Width:  cellWidth,
					Height: cellHeight,
				},
			})
		}
	}
	return placements, nil
}

func clamp(v, lo, hi float64) float64 {
	if hi > 0 {
		v = math.Min(v, hi)
	}
	return math.Max(v, lo)
}
