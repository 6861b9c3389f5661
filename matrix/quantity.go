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

package matrix

import (
	"github.com/ctessum/sparse"
	"github.com/land-use-trade-offs/luto-v2.0.0"
)

// Quantity builds q_mrp, the (M,R,P) physical-production tensor, per
// spec.md §4.2. Crop and horticulture products are yield-per-hectare times
// area; livestock products are headcount (yield_pot times area) times the
// product's per-head physical conversion factor. Both are scaled uniformly
// by one plus the business-as-usual productivity increase for yearIdx.
func Quantity(dp luto.DataProvider, idx *luto.IndexModel, cells luto.CellData, yearIdx int) (*sparse.DenseArray, error) {
	bau, err := dp.BauProductivityIncrease(yearIdx)
	if err != nil {
		return nil, err
	}
	bauFactor := 1 + bau

	out := MRJ(cells.R, idx.NumProducts())
	for p, prod := range idx.P {
		j := idx.PR2LU[p]
		lu := idx.J[j]
		for m := luto.LandManagement(0); int(m) < luto.NumLandManagements; m++ {
			var perCell []float64
			switch lu.Category {
			case luto.Crop, luto.IntensiveCrop, luto.Horticulture:
				perHa, err := dp.AgCropYieldPerHa(lu.Name, m, yearIdx)
				if err != nil {
					return nil, err
				}
				perCell = mulByArea(scale(perHa, bauFactor), cells.AreaHa)
			case luto.Livestock:
				base, natural, _ := luto.SplitQualifier(lu.Name)
				vegtype := "modified"
				if natural {
					vegtype = "natural"
				}
				yieldPot, err := dp.AgYieldPotential(base, vegtype, m, yearIdx)
				if err != nil {
					return nil, err
				}
				perUnit, err := dp.AgProductQuantityPerUnit(prod.Name, m, yearIdx)
				if err != nil {
					return nil, err
				}
				headPerCell := mulByArea(scale(yieldPot, bauFactor), cells.AreaHa)
				perCell = multiply(headPerCell, perUnit)
			default:
				continue
			}
			fillColumn(out, int(m), p, perCell)
		}
	}
	if err := checkNoNaN("matrix.Quantity", out); err != nil {
		return nil, err
	}
	return out, nil
}

func scale(values []float64, factor float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v * factor
	}
	return out
}

func multiply(a, b []float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] * b[i]
	}
	return out
}
