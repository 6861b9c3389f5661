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

// Package solver defines the boundary between the LUTO core and the LP
// solver that actually optimises a year's program, per spec.md §1 and §4.6:
// the solver itself is out of scope, and the core consumes it through the
// Adapter interface in this file, a RunJob/Status/Output-shaped RPC
// boundary in front of a remote or local compute backend instead of a
// direct library call. Production Adapter implementations are expected to
// wrap an out-of-process LP/MIP solver (commercial or open-source) over
// whatever transport is convenient, while the core only ever sees this
// three-method contract.
package solver

import (
	"context"

	"github.com/land-use-trade-offs/luto-v2.0.0/program"
)

// Status is a solver's terminal outcome for one program.
type Status int

const (
	// Optimal means the solver found a provably optimal solution.
	Optimal Status = iota
	// Suboptimal means the solver stopped early (e.g. a time or gap
	// limit) with a feasible but not proven-optimal solution.
	Suboptimal
	// Infeasible means no feasible solution exists.
	Infeasible
	// Unbounded means the objective is unbounded over the feasible region.
	Unbounded
	// TimedOut means the solver was stopped before finding any feasible
	// solution.
	TimedOut
)

func (s Status) String() string {
	switch s {
	case Optimal:
		return "OPTIMAL"
	case Suboptimal:
		return "SUBOPTIMAL"
	case Infeasible:
		return "INFEASIBLE"
	case Unbounded:
		return "UNBOUNDED"
	case TimedOut:
		return "TIMEOUT"
	default:
		return "UNKNOWN"
	}
}

// Solution is a solver's output for one program: the value of every
// variable, indexed the same way the Model's VarSpecs were ordered, plus
// the solver's terminal status and the achieved objective value.
type Solution struct {
	Status    Status
	Objective float64
	Values    []float64
}

// Model is an opaque, solver-specific compiled representation of a
// program.Spec. Adapter implementations decide what this actually is
// (an in-memory matrix, a written MPS/LP file, a gRPC request payload);
// the core never inspects it.
type Model interface{}

// Adapter is the boundary the core optimises a year's program through.
// Implementations are free to run the solve locally, in a subprocess, or on
// a remote service; Solve must block until a Solution or an error is
// available, or ctx is cancelled.
type Adapter interface {
	// BuildModel compiles spec into a solver-specific Model.
	BuildModel(ctx context.Context, spec *program.Spec) (Model, error)
	// Solve runs the solver against model and returns its Solution.
	Solve(ctx context.Context, model Model) (Solution, error)
	// Stop requests early termination of an in-flight Solve call. It is
	// safe to call Stop from a different goroutine than the one blocked
	// in Solve, and safe to call more than once.
	Stop(ctx context.Context, model Model) error
}
