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

// Cost builds cost_mrj, the (M,R,J) AUD/cell production cost tensor, per
// spec.md §4.2. Provider values are filled for every (m, j), including
// combinations that are infeasible; Exclude masks those out of the program
// before they ever reach the solver.
func Cost(dp luto.DataProvider, idx *luto.IndexModel, cells luto.CellData, yearIdx int) (*sparse.DenseArray, error) {
	out := MRJ(cells.R, idx.NumLandUses())
	for j, lu := range idx.J {
		for m := luto.LandManagement(0); int(m) < luto.NumLandManagements; m++ {
			perHa, err := dp.AgCostPerHa(lu.Name, m, yearIdx)
			if err != nil {
				return nil, err
			}
			fillColumn(out, int(m), j, mulByArea(perHa, cells.AreaHa))
		}
	}
	if err := checkNoNaN("matrix.Cost", out); err != nil {
		return nil, err
	}
	return out, nil
}
