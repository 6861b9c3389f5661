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

package cull

import (
	"testing"

	"github.com/ctessum/sparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCullAbsoluteKeepsCheapest(t *testing.T) {
	const r, j, m := 1, 4, 2
	cost := sparse.ZerosDense(m, r, j)
	revenue := sparse.ZerosDense(m, r, j)
	transitionCost := sparse.ZerosDense(m, r, j)

	scores := []float64{30, 10, 20, 40}
	for jj, s := range scores {
		cost.Set(s, 0, 0, jj)
		cost.Set(s, 1, 0, jj)
	}

	keep := Cull(cost, revenue, transitionCost, func(r, j int) bool { return true }, r, j, m, Options{
		Mode:       Absolute,
		MaxPerCell: 2,
	})

	require.True(t, keep.At(0, 1), "lowest score must survive")
	require.True(t, keep.At(0, 2), "second lowest score must survive")
	assert.False(t, keep.At(0, 0))
	assert.False(t, keep.At(0, 3))
}

func TestCullRespectsInfeasibility(t *testing.T) {
	const r, j, m := 1, 3, 2
	cost := sparse.ZerosDense(m, r, j)
	revenue := sparse.ZerosDense(m, r, j)
	transitionCost := sparse.ZerosDense(m, r, j)

	keep := Cull(cost, revenue, transitionCost, func(r, j int) bool { return j != 1 }, r, j, m, Options{
		Mode:       Absolute,
		MaxPerCell: 10,
	})

	assert.False(t, keep.At(0, 1), "infeasible land use must never be kept")
	assert.True(t, keep.At(0, 0))
	assert.True(t, keep.At(0, 2))
}

func TestCullPercentageFloorsAtOne(t *testing.T) {
	const r, j, m := 1, 2, 1
	cost := sparse.ZerosDense(m, r, j)
	revenue := sparse.ZerosDense(m, r, j)
	transitionCost := sparse.ZerosDense(m, r, j)

	keep := Cull(cost, revenue, transitionCost, func(r, j int) bool { return true }, r, j, m, Options{
		Mode:     Percentage,
		Fraction: 0.99,
	})

	count := 0
	for jj := 0; jj < j; jj++ {
		if keep.At(0, jj) {
			count++
		}
	}
	assert.Equal(t, 1, count, "percentage mode must keep at least one candidate")
}
