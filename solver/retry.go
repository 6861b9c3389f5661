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
	"time"

	"github.com/cenkalti/backoff"
	"github.com/land-use-trade-offs/luto-v2.0.0/internal/logging"
	"github.com/land-use-trade-offs/luto-v2.0.0/program"
)

// Transient, when implemented by an error returned from an Adapter, marks it
// as worth retrying (a dropped connection, a busy remote queue) rather than a
// terminal solve failure.
type Transient interface {
	Transient() bool
}

// WithRetry wraps an Adapter so that a Transient BuildModel/Solve failure is
// retried with exponential backoff via backoff.RetryNotify before being
// surfaced to the caller, instead of failing a whole simulation run on one
// dropped request.
func WithRetry(next Adapter) Adapter {
	return &retrying{next: next}
}

type retrying struct {
	next Adapter
}

func (r *retrying) BuildModel(ctx context.Context, spec *program.Spec) (Model, error) {
	var model Model
	op := func() error {
		m, err := r.next.BuildModel(ctx, spec)
		if err != nil {
			return err
		}
		model = m
		return nil
	}
	if err := r.retry(ctx, op); err != nil {
		return nil, err
	}
	return model, nil
}

func (r *retrying) Solve(ctx context.Context, model Model) (Solution, error) {
	var solution Solution
	op := func() error {
		s, err := r.next.Solve(ctx, model)
		if err != nil {
			return err
		}
		solution = s
		return nil
	}
	if err := r.retry(ctx, op); err != nil {
		return Solution{}, err
	}
	return solution, nil
}

func (r *retrying) Stop(ctx context.Context, model Model) error {
	return r.next.Stop(ctx, model)
}

func (r *retrying) retry(ctx context.Context, op func() error) error {
	log := logging.WithField("component", "solver.retry")
	wrapped := func() error {
		err := op()
		if err == nil {
			return nil
		}
		if t, ok := err.(Transient); ok && t.Transient() {
			return err
		}
		return backoff.Permanent(err)
	}
	bo := backoff.WithContext(backoff.NewExponentialBackOff(), ctx)
	return backoff.RetryNotify(wrapped, bo, func(err error, d time.Duration) {
		log.WithError(err).Warnf("retrying in %v", d)
	})
}
