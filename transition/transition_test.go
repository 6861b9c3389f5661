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
	"math"
	"testing"

	"github.com/land-use-trade-offs/luto-v2.0.0"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestAmortiseMatchesClosedFormAnnuityDue(t *testing.T) {
	got := Amortise(100000)

	n := float64(AmortiseHorizon)
	ordinary := 100000 * AmortiseRate / (1 - math.Pow(1+AmortiseRate, -n))
	want := ordinary / (1 + AmortiseRate)

	assert.InDelta(t, want, got, 1e-9)
}

func TestAmortiseZeroCostIsZero(t *testing.T) {
	assert.Equal(t, 0.0, Amortise(0))
}

type fakeProvider struct {
	tij           *mat.Dense
	licencePrice  []float64
	waterReqIrr   []float64
}

func (f *fakeProvider) Cells() (luto.CellData, error)                                   { return luto.CellData{}, nil }
func (f *fakeProvider) LandUsesAg() []luto.LandUse                                      { return nil }
func (f *fakeProvider) LandUsesNonAg() []luto.NonAgLandUse                              { return nil }
func (f *fakeProvider) AgManagements() []luto.AgManagementDef                            { return nil }
func (f *fakeProvider) Regions(mode luto.RegionMode) []luto.Region                       { return nil }
func (f *fakeProvider) AgCostPerHa(lu string, lm luto.LandManagement, y int) ([]float64, error) {
	return nil, nil
}
func (f *fakeProvider) AgRevenuePerHa(lu string, lm luto.LandManagement, y int) ([]float64, error) {
	return nil, nil
}
func (f *fakeProvider) AgCropYieldPerHa(lu string, lm luto.LandManagement, y int) ([]float64, error) {
	return nil, nil
}
func (f *fakeProvider) AgYieldPotential(lvstype, vegtype string, lm luto.LandManagement, y int) ([]float64, error) {
	return nil, nil
}
func (f *fakeProvider) AgProductQuantityPerUnit(product string, lm luto.LandManagement, y int) ([]float64, error) {
	return nil, nil
}
func (f *fakeProvider) AgWaterReqPerHa(lu string, lm luto.LandManagement, y int) ([]float64, error) {
	return f.waterReqIrr, nil
}
func (f *fakeProvider) AgGhgCropComponentPerHa(c luto.GhgComponent, lu string, lm luto.LandManagement, y int) ([]float64, error) {
	return nil, nil
}
func (f *fakeProvider) AgGhgLvstkComponentPerHead(c luto.GhgComponent, lvstype string, lm luto.LandManagement, y int) ([]float64, error) {
	return nil, nil
}
func (f *fakeProvider) TransitionMatrixAg() (*mat.Dense, error) { return f.tij, nil }
func (f *fakeProvider) WaterLicencePrice() ([]float64, error)  { return f.licencePrice, nil }
func (f *fakeProvider) WaterDeliveryPrice() ([]float64, error) { return nil, nil }
func (f *fakeProvider) WaterYieldDR(y int) ([]float64, error)  { return nil, nil }
func (f *fakeProvider) WaterYieldSR(y int) ([]float64, error)  { return nil, nil }
func (f *fakeProvider) WaterYieldNL(y int) ([]float64, error)  { return nil, nil }
func (f *fakeProvider) WaterCCImpact(mode luto.RegionMode, y int) (map[int]float64, error) {
	return nil, nil
}
func (f *fakeProvider) DemandC(y int) ([]float64, error)                 { return nil, nil }
func (f *fakeProvider) BauProductivityIncrease(y int) (float64, error)   { return 0, nil }
func (f *fakeProvider) AMMultiplier(am string, q luto.AMQuantity, lu string, y int) (float64, bool, error) {
	return 1, false, nil
}
func (f *fakeProvider) GhgTargets(y int) (float64, bool, error)          { return 0, false, nil }
func (f *fakeProvider) BiodiversityTargets(y int) (float64, bool, error) { return 0, false, nil }
func (f *fakeProvider) DeforestationCarbonReleasePerHa(lu string, y int) ([]float64, error) {
	return nil, nil
}
func (f *fakeProvider) NonAgCostPerHa(k string, y int) ([]float64, error)    { return nil, nil }
func (f *fakeProvider) NonAgRevenuePerHa(k string, y int) ([]float64, error) { return nil, nil }
func (f *fakeProvider) NonAgGhgPerHa(k string, y int) ([]float64, error)    { return nil, nil }
func (f *fakeProvider) NonAgWaterYieldPerHa(k string, y int) ([]float64, error) {
	return nil, nil
}
func (f *fakeProvider) AgSuitable(lu string, lm luto.LandManagement) ([]bool, error) {
	return nil, nil
}
func (f *fakeProvider) SeedLumap() ([]int, error)                 { return nil, nil }
func (f *fakeProvider) SeedLmmap() ([]int, error)                 { return nil, nil }
func (f *fakeProvider) SeedAmmap() (map[string][]bool, error)     { return nil, nil }

func TestMatricesDryToIrrIncursInfrastructureSurcharge(t *testing.T) {
	idx := &luto.IndexModel{
		J: []luto.LandUse{{Name: "Wheat"}, {Name: "Apples"}},
	}
	tij := mat.NewDense(2, 2, []float64{0, 50, 50, 0})
	dp := &fakeProvider{
		tij:          tij,
		licencePrice: []float64{10},
		waterReqIrr:  []float64{2},
	}
	cells := luto.CellData{R: 1, AreaHa: []float64{100}}

	out, err := Matrices(dp, idx, cells, []int{0}, []luto.LandManagement{luto.Dry}, 0)
	require.NoError(t, err)

	// Switching cell 0 from Wheat(dry) to Apples: base cost 50*100=5000.
	// deltaToDry = 0 (currently dry). deltaToIrr = aqlic[1] + 10000*area.
	aqlicApples := 2 * 100 * 10.0 // waterReq * area * licencePrice
	wantIrr := Amortise(5000 + aqlicApples + InfrastructureCostPerHa*100)
	wantDry := Amortise(5000)

	assert.InDelta(t, wantDry, out.Get(int(luto.Dry), 0, 1), 1e-6)
	assert.InDelta(t, wantIrr, out.Get(int(luto.Irr), 0, 1), 1e-6)
}

func TestDeforestationPenaltyOnlyAppliesLeavingNaturalLand(t *testing.T) {
	idx := &luto.IndexModel{
		J:         []luto.LandUse{{Name: "Native Vegetation", Natural: true}, {Name: "Wheat"}},
		LUNatural: []int{0},
	}
	dp := &deforestProvider{perHa: []float64{1000}}
	cells := luto.CellData{R: 1, AreaHa: []float64{10}}

	out, err := DeforestationPenalty(dp, idx, cells, []int{0}, 0)
	require.NoError(t, err)
	assert.InDelta(t, 10000, out.Get(int(luto.Dry), 0, 1), 1e-9, "clearing natural land for Wheat incurs the release")
	assert.Equal(t, 0.0, out.Get(int(luto.Dry), 0, 0), "staying on natural land incurs no penalty")
}

type deforestProvider struct {
	fakeProvider
	perHa []float64
}

func (d *deforestProvider) DeforestationCarbonReleasePerHa(lu string, y int) ([]float64, error) {
	return d.perHa, nil
}
