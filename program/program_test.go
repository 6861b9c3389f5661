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

package program

import (
	"testing"

	"github.com/ctessum/sparse"
	"github.com/land-use-trade-offs/luto-v2.0.0"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildSingleCellIndex returns a one-land-use, one-product, one-commodity
// Index Model: "Wheat" producing the "wheat" commodity, matching the
// lexicographic product-derivation rule in index.go.
func buildSingleCellIndex(t *testing.T) *luto.IndexModel {
	idx, err := luto.NewIndexModel(
		[]luto.LandUse{{Name: "Wheat", Category: luto.Crop}},
		nil,
		nil,
	)
	require.NoError(t, err)
	return idx
}

func TestBuildAreaConservationConstraintSumsToCellArea(t *testing.T) {
	idx := buildSingleCellIndex(t)
	cells := luto.CellData{R: 1, AreaHa: []float64{100}}

	quantity := sparse.ZerosDense(luto.NumLandManagements, 1, idx.NumProducts())
	quantity.Set(100, int(luto.Dry), 0, 0) // 1 t/ha * 100 ha

	spec, err := Build(Inputs{
		Idx: idx, Cells: cells,
		Cost: sparse.ZerosDense(2, 1, 1), Revenue: sparse.ZerosDense(2, 1, 1),
		TransitionCost: sparse.ZerosDense(2, 1, 1), Ghg: sparse.ZerosDense(2, 1, 1),
		WaterReq: sparse.ZerosDense(2, 1, 1), WaterYield: sparse.ZerosDense(2, 1, 1),
		Quantity:  quantity,
		NonAgCost: sparse.ZerosDense(1, 0), NonAgRevenue: sparse.ZerosDense(1, 0),
		NonAgGhg: sparse.ZerosDense(1, 0), NonAgWater: sparse.ZerosDense(1, 0),
		Feasible: func(m luto.LandManagement, r, j int) bool { return true },
		Keep:     func(r, j int) bool { return true },
		DemandC:  []float64{50}, PenaltyCeiling: 1e6,
	})
	require.NoError(t, err)

	var areaCons *ConstraintSpec
	for i := range spec.Constraints {
		if spec.Constraints[i].Name == "area_0" {
			areaCons = &spec.Constraints[i]
		}
	}
	require.NotNil(t, areaCons)
	assert.Equal(t, Equal, areaCons.Sense)
	assert.Equal(t, 100.0, areaCons.RHS)
	assert.Len(t, areaCons.Terms, 2, "both land management columns for Wheat contribute")
}

func TestBuildDemandConstraintUsesPerHectareRate(t *testing.T) {
	idx := buildSingleCellIndex(t)
	cells := luto.CellData{R: 1, AreaHa: []float64{100}}

	quantity := sparse.ZerosDense(luto.NumLandManagements, 1, idx.NumProducts())
	quantity.Set(200, int(luto.Dry), 0, 0) // 2 t/ha at full 100ha assignment

	spec, err := Build(Inputs{
		Idx: idx, Cells: cells,
		Cost: sparse.ZerosDense(2, 1, 1), Revenue: sparse.ZerosDense(2, 1, 1),
		TransitionCost: sparse.ZerosDense(2, 1, 1), Ghg: sparse.ZerosDense(2, 1, 1),
		WaterReq: sparse.ZerosDense(2, 1, 1), WaterYield: sparse.ZerosDense(2, 1, 1),
		Quantity:  quantity,
		NonAgCost: sparse.ZerosDense(1, 0), NonAgRevenue: sparse.ZerosDense(1, 0),
		NonAgGhg: sparse.ZerosDense(1, 0), NonAgWater: sparse.ZerosDense(1, 0),
		Feasible: func(m luto.LandManagement, r, j int) bool { return m == luto.Dry },
		Keep:     func(r, j int) bool { return true },
		DemandC:  []float64{150}, PenaltyCeiling: 1e6,
	})
	require.NoError(t, err)

	var demandCons *ConstraintSpec
	for i := range spec.Constraints {
		if spec.Constraints[i].Name == "demand_0" {
			demandCons = &spec.Constraints[i]
		}
	}
	require.NotNil(t, demandCons)
	assert.Equal(t, GreaterEqual, demandCons.Sense)
	assert.Equal(t, 150.0, demandCons.RHS)

	// One X column (dry only, per Feasible) at rate 200/100=2 t/ha, plus
	// the V[0] deviation column at coefficient 1.
	assert.Len(t, demandCons.Terms, 2)
	assert.Equal(t, 2.0, demandCons.Terms[0])
}

func TestBuildRejectsMismatchedDemandLength(t *testing.T) {
	idx := buildSingleCellIndex(t)
	cells := luto.CellData{R: 1, AreaHa: []float64{100}}

	_, err := Build(Inputs{
		Idx: idx, Cells: cells,
		Cost: sparse.ZerosDense(2, 1, 1), Revenue: sparse.ZerosDense(2, 1, 1),
		TransitionCost: sparse.ZerosDense(2, 1, 1), Ghg: sparse.ZerosDense(2, 1, 1),
		WaterReq: sparse.ZerosDense(2, 1, 1), WaterYield: sparse.ZerosDense(2, 1, 1),
		Quantity:  sparse.ZerosDense(2, 1, idx.NumProducts()),
		NonAgCost: sparse.ZerosDense(1, 0), NonAgRevenue: sparse.ZerosDense(1, 0),
		NonAgGhg: sparse.ZerosDense(1, 0), NonAgWater: sparse.ZerosDense(1, 0),
		DemandC: []float64{}, PenaltyCeiling: 1,
	})
	require.Error(t, err)
	var dataErr *luto.DataError
	assert.ErrorAs(t, err, &dataErr)
}

func TestDecodePicksHighestAreaWithLowestCodeTieBreak(t *testing.T) {
	idx := &luto.IndexModel{
		J: []luto.LandUse{{Name: "Wheat"}, {Name: "Barley"}},
	}
	spec := &Spec{
		Vars: []VarSpec{
			{Kind: VarX, M: int(luto.Dry), R: 0, J: 0},
			{Kind: VarX, M: int(luto.Dry), R: 0, J: 1},
		},
	}
	values := []float64{40, 40} // tie: lower J index (0) wins

	decoded := Decode(spec, values, idx, 1)
	assert.Equal(t, 0, decoded.Lumap[0])
}

func TestDecodeNonAgOverridesWhenItsAreaIsLarger(t *testing.T) {
	idx := &luto.IndexModel{J: []luto.LandUse{{Name: "Wheat"}}}
	spec := &Spec{
		Vars: []VarSpec{
			{Kind: VarX, M: int(luto.Dry), R: 0, J: 0},
			{Kind: VarN, R: 0, K: 0},
		},
	}
	values := []float64{10, 90}

	decoded := Decode(spec, values, idx, 1)
	offset, isNonAg := DecodedIsNonAg(decoded.Lumap[0])
	assert.True(t, isNonAg)
	assert.Equal(t, luto.NonAgBaseCode, offset)
}
