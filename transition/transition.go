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

// Package transition computes the per-cell amortised cost of switching from
// the current land use/management to a candidate one, per spec.md §4.4.
package transition

import (
	"math"

	"github.com/ctessum/sparse"
	"github.com/land-use-trade-offs/luto-v2.0.0"
)

// AmortiseRate is the ordinary-annuity-due interest rate applied to raw
// switching costs, matching the original model's default.
const AmortiseRate = 0.05

// AmortiseHorizon is the repayment horizon, in years.
const AmortiseHorizon = 30

// InfrastructureCostPerHa is the one-off AUD/ha irrigation-infrastructure
// surcharge incurred switching a dryland cell to irrigated for the first
// time (i.e. the current cell carries no water licence to offset against).
const InfrastructureCostPerHa = 10_000

// Amortise spreads a lump-sum cost over AmortiseHorizon years at
// AmortiseRate, annuity-due (payment made at the start of each year), per
// spec.md §4.4.
func Amortise(cost float64) float64 {
	n := float64(AmortiseHorizon)
	ordinary := cost * AmortiseRate / (1 - math.Pow(1+AmortiseRate, -n))
	return ordinary / (1 + AmortiseRate)
}

// Matrices builds t_mrj, the (M,R,J) AUD/cell amortised transition-cost
// tensor, from the current land-use/management map. t_mrj[m][r][j] is the
// cost of switching cell r from its current (lu, lm) to (j, m).
func Matrices(dp luto.DataProvider, idx *luto.IndexModel, cells luto.CellData, lumap []int, lmmap []luto.LandManagement, yearIdx int) (*sparse.DenseArray, error) {
	tij, err := dp.TransitionMatrixAg()
	if err != nil {
		return nil, err
	}
	licencePrice, err := dp.WaterLicencePrice()
	if err != nil {
		return nil, err
	}

	nj := idx.NumLandUses()
	// aqlic[j] holds per-cell total irrigation-licence cost of land use j.
	aqlic := make([][]float64, nj)
	for j, lu := range idx.J {
		wr, err := dp.AgWaterReqPerHa(lu.Name, luto.Irr, yearIdx)
		if err != nil {
			return nil, err
		}
		col := make([]float64, cells.R)
		for r := 0; r < cells.R; r++ {
			col[r] = wr[r] * cells.AreaHa[r] * licencePrice[r]
		}
		aqlic[j] = col
	}

	out := sparse.ZerosDense(luto.NumLandManagements, cells.R, nj)
	for r := 0; r < cells.R; r++ {
		curLU := lumap[r]
		curLM := lmmap[r]

		// t_ij only covers switches between agricultural land uses; a cell
		// whose prior state was non-agricultural (lumap[r] >= NonAgBaseCode,
		// left there by program.Decode's N variable) has no defined base
		// switching cost to look up, so it is treated as a bare-land
		// starting point instead of indexing tij/aqlic by an out-of-range
		// agricultural code.
		_, curIsNonAg := luto.DecodedIsNonAgCode(curLU)

		for j := 0; j < nj; j++ {
			var baseCost float64
			if !curIsNonAg {
				baseCost = tij.At(curLU, j) * cells.AreaHa[r]
			}

			var deltaToDry, deltaToIrr float64
			if !curIsNonAg && curLM == luto.Irr {
				deltaToDry = -aqlic[curLU][r]
				deltaToIrr = aqlic[j][r] - aqlic[curLU][r]
			} else {
				deltaToDry = 0
				deltaToIrr = aqlic[j][r] + InfrastructureCostPerHa*cells.AreaHa[r]
			}

			out.Set(Amortise(baseCost+deltaToDry), int(luto.Dry), r, j)
			out.Set(Amortise(baseCost+deltaToIrr), int(luto.Irr), r, j)
		}
	}
	return out, nil
}
