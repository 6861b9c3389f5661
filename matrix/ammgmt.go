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

// AmEffectOnLandUseTensor builds the (M,R,J_am) effect an agricultural
// management overlay has on a base (M,R,J) tensor (cost, revenue, GHG, or
// water requirement), per spec.md §4.3. A disabled AM, or one with no
// multiplier table entry for a given land use/year, contributes a zero
// effect for that land use, matching the five Python AM-effect functions
// this is grounded on (get_asparagopsis_effect_w_mrj and its siblings),
// which all return base*(multiplier-1) or zero.
func AmEffectOnLandUseTensor(dp luto.DataProvider, am *luto.AgManagement, quantity luto.AMQuantity, base *sparse.DenseArray, cells luto.CellData, idx *luto.IndexModel, yearIdx int) (*sparse.DenseArray, error) {
	out := MRJPrime(cells.R, am)
	if !am.Enabled {
		return out, nil
	}
	for aj, j := range am.LandUses {
		lu := idx.J[j]
		mult, ok, err := dp.AMMultiplier(am.Name, quantity, lu.Name, yearIdx)
		if err != nil {
			return nil, err
		}
		if !ok || mult == 1 {
			continue
		}
		delta := mult - 1
		for m := luto.LandManagement(0); int(m) < luto.NumLandManagements; m++ {
			col := make([]float64, cells.R)
			for r := 0; r < cells.R; r++ {
				col[r] = base.Get(int(m), r, j) * delta
			}
			fillColumn(out, int(m), aj, col)
		}
	}
	if err := checkNoNaN("matrix.AmEffectOnLandUseTensor", out); err != nil {
		return nil, err
	}
	return out, nil
}

// AmEffectOnQuantityTensor builds the (M,R,P_am) effect an AM has on the
// quantity (yield) tensor, where P_am is the subset of products whose
// originating land use is in am.LandUses, in idx.P order restricted to
// that subset. prodIndices is returned so callers can scatter the effect
// back onto the right product columns.
func AmEffectOnQuantityTensor(dp luto.DataProvider, am *luto.AgManagement, baseQ *sparse.DenseArray, cells luto.CellData, idx *luto.IndexModel, yearIdx int) (effect *sparse.DenseArray, prodIndices []int, err error) {
	amLU := make(map[int]bool, len(am.LandUses))
	for _, j := range am.LandUses {
		amLU[j] = true
	}
	for p := range idx.P {
		if amLU[idx.PR2LU[p]] {
			prodIndices = append(prodIndices, p)
		}
	}
	effect = sparse.ZerosDense(luto.NumLandManagements, cells.R, len(prodIndices))
	if !am.Enabled {
		return effect, prodIndices, nil
	}
	for ap, p := range prodIndices {
		lu := idx.J[idx.PR2LU[p]]
		mult, ok, errm := dp.AMMultiplier(am.Name, luto.AMQuantityYield, lu.Name, yearIdx)
		if errm != nil {
			return nil, nil, errm
		}
		if !ok || mult == 1 {
			continue
		}
		delta := mult - 1
		for m := luto.LandManagement(0); int(m) < luto.NumLandManagements; m++ {
			for r := 0; r < cells.R; r++ {
				v := baseQ.Get(int(m), r, p) * delta
				effect.Set(v, int(m), r, ap)
			}
		}
	}
	if err := checkNoNaN("matrix.AmEffectOnQuantityTensor", effect); err != nil {
		return nil, nil, err
	}
	return effect, prodIndices, nil
}

// ScatterAdd adds an (M,R,J_am)-shaped effect tensor onto a (M,R,J) base
// tensor in place, at the land-use columns named by landUseIndices (the
// AgManagement.LandUses this effect was built from).
func ScatterAdd(base, effect *sparse.DenseArray, landUseIndices []int) {
	r := base.Shape[1]
	for aj, j := range landUseIndices {
		for m := 0; m < luto.NumLandManagements; m++ {
			for i := 0; i < r; i++ {
				base.Set(base.Get(m, i, j)+effect.Get(m, i, aj), m, i, j)
			}
		}
	}
}
