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

// hayGhgReference is the land-use name irrigated livestock pastures borrow
// their irrigation-infrastructure emissions components from. It is not a
// member of J; it names a standalone row in the underlying GHG data tables,
// following the original model's treatment of irrigated pasture as
// incurring a hay crop's irrigation emissions on top of its own livestock
// emissions.
const hayGhgReference = "Hay"

var cropGhgComponents = []luto.GhgComponent{
	luto.GhgChemAppl, luto.GhgCropMgt, luto.GhgCultiv, luto.GhgFertProd,
	luto.GhgHarvest, luto.GhgIrrig, luto.GhgPestProd, luto.GhgSoilNSurp, luto.GhgSowing,
}

var lvstkGhgComponents = []luto.GhgComponent{
	luto.GhgEnteric, luto.GhgManureMgt, luto.GhgIndLeachRunoff, luto.GhgDungUrine,
	luto.GhgSeed, luto.GhgFodder, luto.GhgFuel, luto.GhgElec,
}

// Ghg builds ghg_mrj, the (M,R,J) kg CO2e/cell emissions tensor, per
// spec.md §4.2/§4.3. Crop emissions sum all crop components per hectare;
// livestock emissions sum all livestock components per head, scaled by
// headcount, and irrigated livestock additionally incur the hay crop's
// irrigation-infrastructure components (HayIrrigationAddOnComponents).
func Ghg(dp luto.DataProvider, idx *luto.IndexModel, cells luto.CellData, yearIdx int) (*sparse.DenseArray, error) {
	out := MRJ(cells.R, idx.NumLandUses())
	for j, lu := range idx.J {
		for m := luto.LandManagement(0); int(m) < luto.NumLandManagements; m++ {
			var total []float64
			switch lu.Category {
			case luto.Crop, luto.IntensiveCrop, luto.Horticulture:
				sum := make([]float64, cells.R)
				for _, c := range cropGhgComponents {
					perHa, err := dp.AgGhgCropComponentPerHa(c, lu.Name, m, yearIdx)
					if err != nil {
						return nil, err
					}
					addInto(sum, perHa)
				}
				total = mulByArea(sum, cells.AreaHa)
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
				perHead := make([]float64, cells.R)
				for _, c := range lvstkGhgComponents {
					v, err := dp.AgGhgLvstkComponentPerHead(c, base, m, yearIdx)
					if err != nil {
						return nil, err
					}
					addInto(perHead, v)
				}
				headPerCell := mulByArea(yieldPot, cells.AreaHa)
				total = multiply(headPerCell, perHead)

				if m == luto.Irr {
					addOnPerHa := make([]float64, cells.R)
					for _, c := range luto.HayIrrigationAddOnComponents {
						v, err := dp.AgGhgCropComponentPerHa(c, hayGhgReference, m, yearIdx)
						if err != nil {
							return nil, err
						}
						addInto(addOnPerHa, v)
					}
					addInto(total, mulByArea(addOnPerHa, cells.AreaHa))
				}
			case luto.Unallocated:
				total = make([]float64, cells.R)
			default:
				continue
			}
			fillColumn(out, int(m), j, total)
		}
	}
	if err := checkNoNaN("matrix.Ghg", out); err != nil {
		return nil, err
	}
	return out, nil
}

func addInto(dst, src []float64) {
	for i, v := range src {
		dst[i] += v
	}
}
