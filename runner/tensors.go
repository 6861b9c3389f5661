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

package runner

import (
	"sync"

	"github.com/land-use-trade-offs/luto-v2.0.0"
	"github.com/land-use-trade-offs/luto-v2.0.0/internal/logging"
	"github.com/land-use-trade-offs/luto-v2.0.0/matrix"
	"github.com/land-use-trade-offs/luto-v2.0.0/transition"
)

// buildTensors runs every independent matrix builder concurrently and
// collects the first error encountered, fanning a batch of per-cell
// calculators out across goroutines with a sync.WaitGroup before joining.
func buildTensors(dp luto.DataProvider, idx *luto.IndexModel, cells luto.CellData, against *luto.YearState, yearIdx int) (*tensors, error) {
	t := &tensors{}
	var wg sync.WaitGroup
	errs := make(chan error, 10)

	run := func(f func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := f(); err != nil {
				errs <- err
			}
		}()
	}

	run(func() (err error) { t.cost, err = matrix.Cost(dp, idx, cells, yearIdx); return })
	run(func() (err error) { t.revenue, err = matrix.Revenue(dp, idx, cells, yearIdx); return })
	run(func() (err error) { t.quantity, err = matrix.Quantity(dp, idx, cells, yearIdx); return })
	run(func() (err error) { t.ghg, err = matrix.Ghg(dp, idx, cells, yearIdx); return })
	run(func() (err error) { t.waterReq, err = matrix.WaterRequirement(dp, idx, cells, yearIdx); return })
	run(func() (err error) { t.waterYield, err = matrix.WaterYield(dp, idx, cells, yearIdx); return })
	run(func() (err error) { t.nonAg, err = matrix.BuildNonAg(dp, idx, cells, yearIdx); return })
	run(func() (err error) { t.exclude, err = matrix.Exclude(dp, idx, cells); return })
	run(func() (err error) {
		t.transitionCost, err = transition.Matrices(dp, idx, cells, against.Lumap, against.Lmmap, yearIdx)
		return
	})
	run(func() (err error) {
		t.deforestation, err = transition.DeforestationPenalty(dp, idx, cells, against.Lumap, yearIdx)
		return
	})

	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			return nil, err
		}
	}

	logging.WithField("component", "runner").
		WithField("total_ghg_kg", matrix.SumAll(t.ghg)).
		WithField("total_cost", matrix.SumAll(t.cost)).
		Debug("year tensors built")

	return t, nil
}
