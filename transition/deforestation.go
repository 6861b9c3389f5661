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

package transition

import (
	"github.com/ctessum/sparse"
	"github.com/land-use-trade-offs/luto-v2.0.0"
)

// DeforestationPenalty builds a (M,R,J) kg CO2e tensor of one-off carbon
// release for cells that would switch away from a natural land use to a
// non-natural one, per spec.md §4.4. The penalty is applied in full in the
// year of the switch, unlike the amortised cost in Matrices, since the
// carbon release is a real one-off emissions event rather than a financed
// cost. Cells already on non-natural land, or staying on/moving to natural
// land, contribute zero.
func DeforestationPenalty(dp luto.DataProvider, idx *luto.IndexModel, cells luto.CellData, lumap []int, yearIdx int) (*sparse.DenseArray, error) {
	nj := idx.NumLandUses()
	out := sparse.ZerosDense(luto.NumLandManagements, cells.R, nj)

	natural := make([]bool, nj)
	for _, j := range idx.LUNatural {
		natural[j] = true
	}

	release := make([][]float64, nj)
	for j, lu := range idx.J {
		if !natural[j] {
			continue
		}
		r, err := dp.DeforestationCarbonReleasePerHa(lu.Name, yearIdx)
		if err != nil {
			return nil, err
		}
		release[j] = r
	}

	for r := 0; r < cells.R; r++ {
		curLU := lumap[r]
		if _, curIsNonAg := luto.DecodedIsNonAgCode(curLU); curIsNonAg {
			// A non-agricultural origin (lumap[r] >= NonAgBaseCode, left by
			// program.Decode's N variable) is never a natural land use, so
			// it never incurs this penalty; skip rather than index
			// natural/release by an out-of-range agricultural code.
			continue
		}
		if !natural[curLU] {
			continue
		}
		perHa := release[curLU]
		if perHa == nil {
			continue
		}
		amount := perHa[r] * cells.AreaHa[r]
		for j := 0; j < nj; j++ {
			if natural[j] {
				continue
			}
			out.Set(amount, int(luto.Dry), r, j)
			out.Set(amount, int(luto.Irr), r, j)
		}
	}
	return out, nil
}
