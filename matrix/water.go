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

// WaterRequirement builds water_req_mrj, the (M,R,J) ML/cell irrigation (or
// drinking, for livestock) water requirement tensor.
func WaterRequirement(dp luto.DataProvider, idx *luto.IndexModel, cells luto.CellData, yearIdx int) (*sparse.DenseArray, error) {
	out := MRJ(cells.R, idx.NumLandUses())
	for j, lu := range idx.J {
		for m := luto.LandManagement(0); int(m) < luto.NumLandManagements; m++ {
			perHa, err := dp.AgWaterReqPerHa(lu.Name, m, yearIdx)
			if err != nil {
				return nil, err
			}
			switch lu.Category {
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
				headPerCell := mulByArea(yieldPot, cells.AreaHa)
				fillColumn(out, int(m), j, multiply(headPerCell, perHa))
			default:
				fillColumn(out, int(m), j, mulByArea(perHa, cells.AreaHa))
			}
		}
	}
	if err := checkNoNaN("matrix.WaterRequirement", out); err != nil {
		return nil, err
	}
	return out, nil
}

// baselineSeriesForLandUse selects the deep-rooted, shallow-rooted, or
// natural-land baseline water-yield series for a land use, per spec.md
// §4.2's resolution of Open Question (c): natural (uncleared) land uses use
// the natural-land series regardless of root depth; cleared land uses use
// their root-depth class's series.
func baselineSeriesForLandUse(idx *luto.IndexModel, lu luto.LandUse, sr, dr, nl []float64) []float64 {
	if lu.Natural {
		return nl
	}
	for _, j := range idx.LUShallowRooted {
		if idx.J[j].Name == lu.Name {
			return sr
		}
	}
	return dr
}

// WaterYield builds water_yield_mrj, the (M,R,J) ML/cell baseline water
// yield tensor. Regional climate-change impact is not folded in here: it is
// a region-level adjustment, not a per-cell one, so it is subtracted once from
// each region's net-yield target by regionalWaterTargets instead of scaling every
// cell's yield by it.
func WaterYield(dp luto.DataProvider, idx *luto.IndexModel, cells luto.CellData, yearIdx int) (*sparse.DenseArray, error) {
	sr, err := dp.WaterYieldSR(yearIdx)
	if err != nil {
		return nil, err
	}
	dr, err := dp.WaterYieldDR(yearIdx)
	if err != nil {
		return nil, err
	}
	nl, err := dp.WaterYieldNL(yearIdx)
	if err != nil {
		return nil, err
	}

	out := MRJ(cells.R, idx.NumLandUses())
	for j, lu := range idx.J {
		base := mulByArea(baselineSeriesForLandUse(idx, lu, sr, dr, nl), cells.AreaHa)
		for m := luto.LandManagement(0); int(m) < luto.NumLandManagements; m++ {
			fillColumn(out, int(m), j, base)
		}
	}
	if err := checkNoNaN("matrix.WaterYield", out); err != nil {
		return nil, err
	}
	return out, nil
}

// WaterNet builds water_net_mrj = water_yield_mrj - water_req_mrj, the
// (M,R,J) net water yield tensor used by the regional water constraint.
func WaterNet(yieldT, reqT *sparse.DenseArray) *sparse.DenseArray {
	out := sparse.ZerosDense(yieldT.Shape...)
	for i := range out.Elements {
		out.Elements[i] = yieldT.Elements[i] - reqT.Elements[i]
	}
	return out
}
