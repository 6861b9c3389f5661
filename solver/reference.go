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

package solver

import (
	"context"
	"math"
	"sync"

	"github.com/land-use-trade-offs/luto-v2.0.0/program"
)

// Reference is a from-scratch, dependency-free Big-M simplex Adapter. It
// exists for tests and small demo runs only: spec.md §1 scopes the
// production LP solver out of the core, and no real LP/MIP library appears
// anywhere in the examined example corpus, so Reference is not intended to
// solve problems at production scale. It expresses every decision
// variable's upper bound as an explicit <= constraint row rather than
// implementing bounded-variable simplex, trading performance for a much
// smaller implementation.
type Reference struct {
	mu      sync.Mutex
	stopped map[*referenceModel]bool
}

// NewReference creates a Reference adapter.
func NewReference() *Reference {
	return &Reference{stopped: make(map[*referenceModel]bool)}
}

type referenceModel struct {
	spec *program.Spec
}

// BuildModel wraps spec for Solve; Reference performs no real compilation.
func (r *Reference) BuildModel(ctx context.Context, spec *program.Spec) (Model, error) {
	return &referenceModel{spec: spec}, nil
}

// Stop marks model as cancelled; the next Solve polling tick will observe it
// and return a TimedOut status.
func (r *Reference) Stop(ctx context.Context, model Model) error {
	rm, ok := model.(*referenceModel)
	if !ok {
		return nil
	}
	r.mu.Lock()
	r.stopped[rm] = true
	r.mu.Unlock()
	return nil
}

func (r *Reference) isStopped(rm *referenceModel) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stopped[rm]
}

const bigM = 1e7
const simplexEpsilon = 1e-9
const maxIterations = 200000

// Solve runs a tableau Big-M simplex against model, minimising
// spec.Objective subject to spec.Constraints, with every variable's upper
// bound folded in as an explicit row and x >= LowerBound folded in as a
// shifted variable.
func (r *Reference) Solve(ctx context.Context, model Model) (Solution, error) {
	rm, ok := model.(*referenceModel)
	if !ok {
		return Solution{}, nil
	}
	spec := rm.spec
	n := len(spec.Vars)

	// Shift every variable so its lower bound is zero: x' = x - lb.
	lb := make([]float64, n)
	for i, v := range spec.Vars {
		lb[i] = v.LowerBound
	}

	// Build the row list: original constraints, plus one upper-bound row
	// per variable with a finite UpperBound > 0.
	type row struct {
		terms map[int]float64
		sense program.ConstraintSense
		rhs   float64
	}
	var rows []row
	for _, c := range spec.Constraints {
		rhs := c.RHS
		for i, coef := range c.Terms {
			rhs -= coef * lb[i]
		}
		rows = append(rows, row{terms: c.Terms, sense: c.Sense, rhs: rhs})
	}
	for i, v := range spec.Vars {
		if v.UpperBound > 0 {
			rows = append(rows, row{
				terms: map[int]float64{i: 1},
				sense: program.LessEqual,
				rhs:   v.UpperBound - lb[i],
			})
		}
	}

	m := len(rows)
	// Tableau layout: n structural vars + m slack/surplus vars + m artificial
	// vars + rhs column.
	totalCols := n + m + m + 1
	tableau := make([][]float64, m+1)
	for i := range tableau {
		tableau[i] = make([]float64, totalCols)
	}
	basis := make([]int, m)
	artificialRows := map[int]bool{}

	for i, rw := range rows {
		rhs := rw.rhs
		sense := rw.sense
		if rhs < 0 {
			rhs = -rhs
			for k, v := range rw.terms {
				rw.terms[k] = -v
			}
			switch sense {
			case program.LessEqual:
				sense = program.GreaterEqual
			case program.GreaterEqual:
				sense = program.LessEqual
			}
		}
		for k, v := range rw.terms {
			tableau[i][k] = v
		}
		tableau[i][totalCols-1] = rhs

		slackCol := n + i
		artCol := n + m + i
		switch sense {
		case program.LessEqual:
			tableau[i][slackCol] = 1
			basis[i] = slackCol
		case program.GreaterEqual:
			tableau[i][slackCol] = -1
			tableau[i][artCol] = 1
			basis[i] = artCol
			artificialRows[i] = true
		case program.Equal:
			tableau[i][artCol] = 1
			basis[i] = artCol
			artificialRows[i] = true
		}
	}

	// Big-M objective row: minimise c^T x + M * sum(artificial vars).
	objRow := m
	for i, coef := range spec.Objective {
		tableau[objRow][i] = coef
	}
	for i := range rows {
		if artificialRows[i] {
			tableau[objRow][n+m+i] = bigM
			for k := 0; k < totalCols; k++ {
				tableau[objRow][k] -= bigM * tableau[i][k]
			}
		}
	}

	status := Optimal
	iter := 0
	for {
		iter++
		if iter > maxIterations {
			status = Suboptimal
			break
		}
		if ctx.Err() != nil || r.isStopped(rm) {
			status = TimedOut
			break
		}

		// Choose the most-negative reduced cost column (Dantzig's rule).
		pivotCol := -1
		best := -simplexEpsilon
		for j := 0; j < totalCols-1; j++ {
			if tableau[objRow][j] < best {
				best = tableau[objRow][j]
				pivotCol = j
			}
		}
		if pivotCol == -1 {
			break // optimal
		}

		pivotRow := -1
		bestRatio := math.Inf(1)
		for i := 0; i < m; i++ {
			if tableau[i][pivotCol] > simplexEpsilon {
				ratio := tableau[i][totalCols-1] / tableau[i][pivotCol]
				if ratio < bestRatio-simplexEpsilon {
					bestRatio = ratio
					pivotRow = i
				}
			}
		}
		if pivotRow == -1 {
			status = Unbounded
			break
		}

		pivot(tableau, pivotRow, pivotCol)
		basis[pivotRow] = pivotCol
	}

	if status == Optimal {
		for i := 0; i < m; i++ {
			if artificialRows[i] && basis[i] == n+m+i && tableau[i][totalCols-1] > 1e-6 {
				status = Infeasible
				break
			}
		}
	}

	values := make([]float64, n)
	for i := 0; i < m; i++ {
		if basis[i] < n {
			values[basis[i]] = tableau[i][totalCols-1]
		}
	}
	for i := range values {
		values[i] += lb[i]
	}

	objective := 0.0
	for i, coef := range spec.Objective {
		objective += coef * values[i]
	}

	return Solution{Status: status, Objective: objective, Values: values}, nil
}

// pivot performs a Gauss-Jordan elimination step around (pivotRow,
// pivotCol), normalising the pivot row and zeroing the pivot column in
// every other row, including the objective row.
func pivot(tableau [][]float64, pivotRow, pivotCol int) {
	pv := tableau[pivotRow][pivotCol]
	cols := len(tableau[pivotRow])
	for j := 0; j < cols; j++ {
		tableau[pivotRow][j] /= pv
	}
	for i := range tableau {
		if i == pivotRow {
			continue
		}
		factor := tableau[i][pivotCol]
		if factor == 0 {
			continue
		}
		for j := 0; j < cols; j++ {
			tableau[i][j] -= factor * tableau[pivotRow][j]
		}
	}
}
