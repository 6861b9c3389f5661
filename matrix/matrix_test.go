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
	"testing"

	"github.com/land-use-trade-offs/luto-v2.0.0"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// stubProvider implements luto.DataProvider with a single crop land use
// ("Wheat") over two cells, enough to exercise Cost/Revenue/Exclude without
// pulling in a livestock or non-ag code path.
type stubProvider struct {
	costPerHa    []float64
	revenuePerHa []float64
	suitable     map[string][]bool
}

func (s *stubProvider) Cells() (luto.CellData, error) { return luto.CellData{}, nil }
func (s *stubProvider) LandUsesAg() []luto.LandUse     { return nil }
func (s *stubProvider) LandUsesNonAg() []luto.NonAgLandUse { return nil }
func (s *stubProvider) AgManagements() []luto.AgManagementDef { return nil }
func (s *stubProvider) Regions(mode luto.RegionMode) []luto.Region { return nil }
func (s *stubProvider) AgCostPerHa(lu string, lm luto.LandManagement, y int) ([]float64, error) {
	return s.costPerHa, nil
}
func (s *stubProvider) AgRevenuePerHa(lu string, lm luto.LandManagement, y int) ([]float64, error) {
	return s.revenuePerHa, nil
}
func (s *stubProvider) AgCropYieldPerHa(lu string, lm luto.LandManagement, y int) ([]float64, error) {
	return nil, nil
}
func (s *stubProvider) AgYieldPotential(lvstype, vegtype string, lm luto.LandManagement, y int) ([]float64, error) {
	return nil, nil
}
func (s *stubProvider) AgProductQuantityPerUnit(product string, lm luto.LandManagement, y int) ([]float64, error) {
	return nil, nil
}
func (s *stubProvider) AgWaterReqPerHa(lu string, lm luto.LandManagement, y int) ([]float64, error) {
	return nil, nil
}
func (s *stubProvider) AgGhgCropComponentPerHa(c luto.GhgComponent, lu string, lm luto.LandManagement, y int) ([]float64, error) {
	return nil, nil
}
func (s *stubProvider) AgGhgLvstkComponentPerHead(c luto.GhgComponent, lvstype string, lm luto.LandManagement, y int) ([]float64, error) {
	return nil, nil
}
func (s *stubProvider) TransitionMatrixAg() (*mat.Dense, error) { return nil, nil }
func (s *stubProvider) WaterLicencePrice() ([]float64, error)  { return nil, nil }
func (s *stubProvider) WaterDeliveryPrice() ([]float64, error) { return nil, nil }
func (s *stubProvider) WaterYieldDR(y int) ([]float64, error)  { return nil, nil }
func (s *stubProvider) WaterYieldSR(y int) ([]float64, error)  { return nil, nil }
func (s *stubProvider) WaterYieldNL(y int) ([]float64, error)  { return nil, nil }
func (s *stubProvider) WaterCCImpact(mode luto.RegionMode, y int) (map[int]float64, error) {
	return nil, nil
}
func (s *stubProvider) DemandC(y int) ([]float64, error)               { return nil, nil }
func (s *stubProvider) BauProductivityIncrease(y int) (float64, error) { return 0, nil }
func (s *stubProvider) AMMultiplier(am string, q luto.AMQuantity, lu string, y int) (float64, bool, error) {
	return 1, false, nil
}
func (s *stubProvider) GhgTargets(y int) (float64, bool, error)          { return 0, false, nil }
func (s *stubProvider) BiodiversityTargets(y int) (float64, bool, error) { return 0, false, nil }
func (s *stubProvider) DeforestationCarbonReleasePerHa(lu string, y int) ([]float64, error) {
	return nil, nil
}
func (s *stubProvider) NonAgCostPerHa(k string, y int) ([]float64, error)    { return nil, nil }
func (s *stubProvider) NonAgRevenuePerHa(k string, y int) ([]float64, error) { return nil, nil }
func (s *stubProvider) NonAgGhgPerHa(k string, y int) ([]float64, error)    { return nil, nil }
func (s *stubProvider) NonAgWaterYieldPerHa(k string, y int) ([]float64, error) {
	return nil, nil
}
func (s *stubProvider) AgSuitable(lu string, lm luto.LandManagement) ([]bool, error) {
	return s.suitable[lu], nil
}
func (s *stubProvider) SeedLumap() ([]int, error)             { return nil, nil }
func (s *stubProvider) SeedLmmap() ([]int, error)             { return nil, nil }
func (s *stubProvider) SeedAmmap() (map[string][]bool, error) { return nil, nil }

func TestCostScalesByArea(t *testing.T) {
	idx := &luto.IndexModel{J: []luto.LandUse{{Name: "Wheat", Category: luto.Crop}}}
	cells := luto.CellData{R: 2, AreaHa: []float64{10, 20}}
	dp := &stubProvider{costPerHa: []float64{5, 5}}

	out, err := Cost(dp, idx, cells, 0)
	require.NoError(t, err)
	assert.Equal(t, 50.0, out.Get(int(luto.Dry), 0, 0))
	assert.Equal(t, 100.0, out.Get(int(luto.Dry), 1, 0))
}

func TestCostRejectsNaN(t *testing.T) {
	idx := &luto.IndexModel{J: []luto.LandUse{{Name: "Wheat", Category: luto.Crop}}}
	cells := luto.CellData{R: 1, AreaHa: []float64{10}}
	dp := &stubProvider{costPerHa: []float64{math64NaN()}}

	_, err := Cost(dp, idx, cells, 0)
	require.Error(t, err)
	var dataErr *luto.DataError
	assert.ErrorAs(t, err, &dataErr)
}

func math64NaN() float64 {
	var zero float64
	return zero / zero
}

func TestExcludeCombinesSuitabilityAndArea(t *testing.T) {
	idx := &luto.IndexModel{J: []luto.LandUse{{Name: "Wheat", Category: luto.Crop}}}
	cells := luto.CellData{R: 2, AreaHa: []float64{10, 0}}
	dp := &stubProvider{suitable: map[string][]bool{"Wheat": {true, true}}}

	mask, err := Exclude(dp, idx, cells)
	require.NoError(t, err)
	assert.True(t, mask.At(luto.Dry, 0, 0), "suitable cell with area survives")
	assert.False(t, mask.At(luto.Dry, 1, 0), "zero-area cell is excluded regardless of suitability")
}
