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

// Package cull prunes per-cell candidate land uses down to a manageable
// number before the program is built, per spec.md §4.5.
package cull

import (
	"math"
	"sort"

	"github.com/ctessum/sparse"
)

// Mode selects how many candidates a cell retains.
type Mode int

const (
	// Absolute keeps the top MaxPerCell candidates, per cell.
	Absolute Mode = iota
	// Percentage keeps the top (1-Fraction) share of candidates, per
	// cell, with a floor of one.
	Percentage
)

// Options configures Cull.
type Options struct {
	Mode Mode
	// MaxPerCell is used when Mode==Absolute.
	MaxPerCell int
	// Fraction is the culled-away share when Mode==Percentage, in [0,1).
	Fraction float64
}

// Keep is a (R,J) boolean retention mask: Keep[r][j] is true if (r,j)
// survives culling. A land use/management combination already excluded by
// matrix.Exclude is never reintroduced by culling.
type Keep struct {
	R, J int
	Mask [][]bool
}

// At reports whether (r,j) survives culling.
func (k *Keep) At(r, j int) bool { return k.Mask[r][j] }

type scored struct {
	j     int
	score float64
}

// Cull ranks each cell's candidate land uses by score = cost + transition -
// revenue (lower is better, i.e. cheaper/more profitable candidates survive)
// and keeps only the top candidates per cell, per spec.md §4.5. cost,
// revenue, and transitionCost are all (M,R,J)-shaped; a cell's score for
// land use j is taken from whichever land management is cheaper for it.
// feasible reports which (r,j) pairs matrix.Exclude already allows; culled
// land uses that were never feasible stay excluded (Keep never reintroduces
// them). feasible is only read; the retention mask is returned as a new
// Keep.
func Cull(cost, revenue, transitionCost *sparse.DenseArray, feasible func(r, j int) bool, numCells, numLandUses, numLandManagements int, opts Options) *Keep {
	keep := &Keep{R: numCells, J: numLandUses}
	keep.Mask = make([][]bool, numCells)

	for r := 0; r < numCells; r++ {
		keep.Mask[r] = make([]bool, numLandUses)
		var candidates []scored
		for j := 0; j < numLandUses; j++ {
			if !feasible(r, j) {
				continue
			}
			best := math.Inf(1)
			for m := 0; m < numLandManagements; m++ {
				s := cost.Get(m, r, j) + transitionCost.Get(m, r, j) - revenue.Get(m, r, j)
				if s < best {
					best = s
				}
			}
			candidates = append(candidates, scored{j: j, score: best})
		}
		sort.SliceStable(candidates, func(a, b int) bool { return candidates[a].score < candidates[b].score })

		n := len(candidates)
		limit := n
		switch opts.Mode {
		case Absolute:
			if opts.MaxPerCell > 0 && opts.MaxPerCell < n {
				limit = opts.MaxPerCell
			}
		case Percentage:
			limit = int(float64(n) * (1 - opts.Fraction))
			if limit < 1 && n > 0 {
				limit = 1
			}
		}
		for i := 0; i < limit; i++ {
			keep.Mask[r][candidates[i].j] = true
		}
	}
	return keep
}
