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
	"testing"

	"github.com/land-use-trade-offs/luto-v2.0.0/program"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferenceSolveMinimisesWithUpperBoundAndEquality(t *testing.T) {
	spec := &program.Spec{
		Vars: []program.VarSpec{
			{Kind: program.VarX, UpperBound: 8},
			{Kind: program.VarX},
		},
		Objective: []float64{1, 2},
		Constraints: []program.ConstraintSpec{
			{Name: "total", Terms: map[int]float64{0: 1, 1: 1}, Sense: program.Equal, RHS: 10},
		},
	}

	r := NewReference()
	model, err := r.BuildModel(context.Background(), spec)
	require.NoError(t, err)

	sol, err := r.Solve(context.Background(), model)
	require.NoError(t, err)

	assert.Equal(t, Optimal, sol.Status)
	assert.InDelta(t, 8, sol.Values[0], 1e-6, "x0 is cheaper, so it saturates its upper bound first")
	assert.InDelta(t, 2, sol.Values[1], 1e-6)
	assert.InDelta(t, 12, sol.Objective, 1e-6)
}

func TestReferenceSolveDetectsInfeasible(t *testing.T) {
	spec := &program.Spec{
		Vars: []program.VarSpec{
			{Kind: program.VarX, UpperBound: 3},
			{Kind: program.VarX, UpperBound: 3},
		},
		Objective: []float64{1, 1},
		Constraints: []program.ConstraintSpec{
			{Name: "total", Terms: map[int]float64{0: 1, 1: 1}, Sense: program.Equal, RHS: 10},
		},
	}

	r := NewReference()
	model, err := r.BuildModel(context.Background(), spec)
	require.NoError(t, err)

	sol, err := r.Solve(context.Background(), model)
	require.NoError(t, err)
	assert.Equal(t, Infeasible, sol.Status)
}

func TestReferenceSolveHonoursGreaterEqual(t *testing.T) {
	spec := &program.Spec{
		Vars: []program.VarSpec{
			{Kind: program.VarX},
		},
		Objective: []float64{1},
		Constraints: []program.ConstraintSpec{
			{Name: "floor", Terms: map[int]float64{0: 1}, Sense: program.GreaterEqual, RHS: 5},
		},
	}

	r := NewReference()
	model, err := r.BuildModel(context.Background(), spec)
	require.NoError(t, err)

	sol, err := r.Solve(context.Background(), model)
	require.NoError(t, err)
	assert.Equal(t, Optimal, sol.Status)
	assert.InDelta(t, 5, sol.Values[0], 1e-6, "minimising x subject to x >= 5 binds the floor")
}

// transientErr marks itself retryable, matching the Transient interface
// retry.go checks for.
type transientErr struct{ msg string }

func (e *transientErr) Error() string  { return e.msg }
func (e *transientErr) Transient() bool { return true }

// flakyAdapter fails its first failCount Solve calls with a transient error,
// then delegates to next.
type flakyAdapter struct {
	next      Adapter
	failCount int
	calls     int
}

func (f *flakyAdapter) BuildModel(ctx context.Context, spec *program.Spec) (Model, error) {
	return f.next.BuildModel(ctx, spec)
}

func (f *flakyAdapter) Solve(ctx context.Context, model Model) (Solution, error) {
	f.calls++
	if f.calls <= f.failCount {
		return Solution{}, &transientErr{msg: "temporary backend hiccup"}
	}
	return f.next.Solve(ctx, model)
}

func (f *flakyAdapter) Stop(ctx context.Context, model Model) error {
	return f.next.Stop(ctx, model)
}

func TestWithRetryRetriesTransientErrors(t *testing.T) {
	flaky := &flakyAdapter{next: NewReference(), failCount: 2}
	wrapped := WithRetry(flaky)

	spec := &program.Spec{
		Vars:        []program.VarSpec{{Kind: program.VarX, UpperBound: 5}},
		Objective:   []float64{1},
		Constraints: []program.ConstraintSpec{{Name: "floor", Terms: map[int]float64{0: 1}, Sense: program.GreaterEqual, RHS: 5}},
	}

	model, err := wrapped.BuildModel(context.Background(), spec)
	require.NoError(t, err)

	sol, err := wrapped.Solve(context.Background(), model)
	require.NoError(t, err)
	assert.Equal(t, 3, flaky.calls, "two failures then a success")
	assert.Equal(t, Optimal, sol.Status)
}

// permanentErr is not Transient, so WithRetry must not retry it.
type permanentErr struct{}

func (permanentErr) Error() string { return "no amount of retrying fixes this" }

func TestWithRetryDoesNotRetryNonTransientErrors(t *testing.T) {
	flaky := &flakyFailAlways{err: permanentErr{}}
	wrapped := WithRetry(flaky)

	_, err := wrapped.Solve(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, flaky.err, err)
	assert.Equal(t, 1, flaky.calls, "a non-Transient error must not be retried")
}

// flakyFailAlways always returns err from Solve, counting calls.
type flakyFailAlways struct {
	err   error
	calls int
}

func (f *flakyFailAlways) BuildModel(ctx context.Context, spec *program.Spec) (Model, error) {
	return nil, nil
}

func (f *flakyFailAlways) Solve(ctx context.Context, model Model) (Solution, error) {
	f.calls++
	return Solution{}, f.err
}

func (f *flakyFailAlways) Stop(ctx context.Context, model Model) error { return nil }
