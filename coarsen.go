/*
Copyright (C) 2013-2014 Regents of the University of Minnesota.
This file is part of InMAP.

InMAP is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

InMAP is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with InMAP.  If not, see <http://www.gnu.org/licenses/>.
*/

package luto

import "fmt"

// Coarsener downsamples a rectangular grid of active cells by RESFACTOR
// before solving, then reconstitutes a full-resolution map by nearest-
// neighbour broadcast, per spec.md §4.8. A Coarsener with Factor==1 is the
// identity transform.
//
// Coarsener validates its grid dimensions at construction, rather than
// discovering a malformed grid mid-computation.
type Coarsener struct {
	Rows, Cols int
	Factor     int
	// active[i] is the original-resolution cell index for grid position
	// i (row*Cols+col), or -1 if that grid position has no active cell
	// (ocean, out-of-bounds, etc).
	active []int
	// coarseRows, coarseCols are the downsampled grid dimensions.
	coarseRows, coarseCols int
	// coarseActive[i] is the representative original cell index chosen
	// for coarse grid position i, or -1 if the whole coarse block is
	// inactive.
	coarseActive []int
}

// NewCoarsener builds a Coarsener for a Rows x Cols grid whose flattened
// active-cell index map is active (length Rows*Cols, -1 for inactive
// positions), downsampled by factor. It returns a *ConfigError if factor <
// 1 or the grid dimensions are non-positive.
func NewCoarsener(rows, cols, factor int, active []int) (*Coarsener, error) {
	if rows <= 0 || cols <= 0 {
		return nil, NewConfigError("Resfactor", "grid dimensions must be positive, got %dx%d", rows, cols)
	}
	if factor < 1 {
		return nil, NewConfigError("Resfactor", "must be >= 1, got %d", factor)
	}
	if len(active) != rows*cols {
		return nil, NewConfigError("Resfactor", "active length %d != rows*cols %d", len(active), rows*cols)
	}

	c := &Coarsener{Rows: rows, Cols: cols, Factor: factor, active: append([]int(nil), active...)}
	c.coarseRows = (rows + factor - 1) / factor
	c.coarseCols = (cols + factor - 1) / factor
	c.coarseActive = make([]int, c.coarseRows*c.coarseCols)

	for cr := 0; cr < c.coarseRows; cr++ {
		for cc := 0; cc < c.coarseCols; cc++ {
			chosen := -1
			for dr := 0; dr < factor && chosen == -1; dr++ {
				r := cr*factor + dr
				if r >= rows {
					break
				}
				for dc := 0; dc < factor; dc++ {
					col := cc*factor + dc
					if col >= cols {
						break
					}
					if v := active[r*cols+col]; v != -1 {
						chosen = v
						break
					}
				}
			}
			c.coarseActive[cr*c.coarseCols+cc] = chosen
		}
	}
	return c, nil
}

// NumCoarseCells returns the number of active coarse-grid cells.
func (c *Coarsener) NumCoarseCells() int {
	n := 0
	for _, v := range c.coarseActive {
		if v != -1 {
			n++
		}
	}
	return n
}

// CoarseToOriginal returns the original-resolution cell index chosen as the
// representative for the i-th active coarse cell (in coarse row-major
// order, skipping inactive blocks).
func (c *Coarsener) CoarseToOriginal() []int {
	out := make([]int, 0, c.NumCoarseCells())
	for _, v := range c.coarseActive {
		if v != -1 {
			out = append(out, v)
		}
	}
	return out
}

// Reconstitute broadcasts a per-coarse-cell value slice (ordered as
// CoarseToOriginal) back out to a full-resolution per-original-cell slice,
// by nearest-neighbour: every original cell takes its coarse block's
// representative's value.
func (c *Coarsener) Reconstitute(coarseValues []int, originalR int) ([]int, error) {
	if len(coarseValues) != c.NumCoarseCells() {
		return nil, fmt.Errorf("luto: coarsen: reconstitute expected %d values, got %d", c.NumCoarseCells(), len(coarseValues))
	}

	// Map coarse block position -> value, skipping inactive blocks.
	blockValue := make(map[int]int, len(coarseValues))
	idx := 0
	for pos, v := range c.coarseActive {
		if v == -1 {
			continue
		}
		blockValue[pos] = coarseValues[idx]
		idx++
	}

	out := make([]int, originalR)
	for i := range out {
		out[i] = -1
	}
	for r := 0; r < c.Rows; r++ {
		for col := 0; col < c.Cols; col++ {
			orig := c.active[r*c.Cols+col]
			if orig == -1 {
				continue
			}
			cr, cc := r/c.Factor, col/c.Factor
			out[orig] = blockValue[cr*c.coarseCols+cc]
		}
	}
	return out, nil
}
