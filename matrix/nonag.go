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

// NonAgTensors bundles the four (R,K) non-agricultural tensors, per
// spec.md §4.2. Non-agricultural land uses (environmental plantings,
// riparian buffers, and the like) are all revegetation of cleared land, so
// unlike the agricultural tensors they carry no land-management dimension:
// a non-agricultural assignment is always "dry" in the sense of drawing no
// irrigation water.
type NonAgTensors struct {
	Cost    *sparse.DenseArray // (R,K) AUD/cell
	Revenue *sparse.DenseArray // (R,K) AUD/cell
	Ghg     *sparse.DenseArray // (R,K) kg CO2e/cell
	Water   *sparse.DenseArray // (R,K) ML/cell baseline yield
}

// BuildNonAg builds all four non-agricultural tensors for yearIdx.
func BuildNonAg(dp luto.DataProvider, idx *luto.IndexModel, cells luto.CellData, yearIdx int) (*NonAgTensors, error) {
	k := idx.NumNonAgLandUses()
	out := &NonAgTensors{
		Cost:    RK(cells.R, k),
		Revenue: RK(cells.R, k),
		Ghg:     RK(cells.R, k),
		Water:   RK(cells.R, k),
	}
	for ki, nonAg := range idx.K {
		cost, err := dp.NonAgCostPerHa(nonAg.Name, yearIdx)
		if err != nil {
			return nil, err
		}
		rev, err := dp.NonAgRevenuePerHa(nonAg.Name, yearIdx)
		if err != nil {
			return nil, err
		}
		ghg, err := dp.NonAgGhgPerHa(nonAg.Name, yearIdx)
		if err != nil {
			return nil, err
		}
		water, err := dp.NonAgWaterYieldPerHa(nonAg.Name, yearIdx)
		if err != nil {
			return nil, err
		}
		setRKColumn(out.Cost, ki, mulByArea(cost, cells.AreaHa))
		setRKColumn(out.Revenue, ki, mulByArea(rev, cells.AreaHa))
		setRKColumn(out.Ghg, ki, mulByArea(ghg, cells.AreaHa))
		setRKColumn(out.Water, ki, mulByArea(water, cells.AreaHa))
	}
	for name, arr := range map[string]*sparse.DenseArray{
		"cost": out.Cost, "revenue": out.Revenue, "ghg": out.Ghg, "water": out.Water,
	} {
		if err := checkNoNaN("matrix.BuildNonAg."+name, arr); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func setRKColumn(arr *sparse.DenseArray, k int, values []float64) {
	for r, v := range values {
		arr.Set(v, r, k)
	}
}
