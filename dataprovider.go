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

package luto

import "gonum.org/v1/gonum/mat"

// RootClass is a cell's rooting-depth classification, used to select which
// baseline water-yield series (WY_SR, WY_DR, or the natural-land series)
// applies to land uses grown on it.
type RootClass int

const (
	RootShallow RootClass = iota
	RootDeep
	RootNaturalLand
)

// RegionMode selects which partition of cells is used for water accounting.
type RegionMode int

const (
	// RiverRegion partitions cells by river region.
	RiverRegion RegionMode = iota
	// DrainageDivision partitions cells by drainage division.
	DrainageDivision
)

// Region is one water-accounting unit.
type Region struct {
	ID                int
	Name              string
	HistoricalYieldML float64
}

// CellData is the immutable, preloaded cell-level geometry and classification
// data described in spec.md §3.
type CellData struct {
	// R is the number of active cells.
	R int
	// AreaHa is REAL_AREA: actual hectares per cell.
	AreaHa []float64
	// RegionID indexes into the Region slice returned by
	// DataProvider.Regions for the globally selected RegionMode.
	RegionID []int
	// RootClass classifies each cell's baseline water-yield series.
	RootClass []RootClass
}

// GhgComponent names one additive component of a land use's per-hectare or
// per-head emissions factor, matching the column names LUTO's ingestion
// layer produces from AGGHG_CROPS / AGGHG_LVSTK.
type GhgComponent string

// Crop GHG emission components, in kg CO2e/ha.
const (
	GhgChemAppl  GhgComponent = "CHEM_APPL"
	GhgCropMgt   GhgComponent = "CROP_MGT"
	GhgCultiv    GhgComponent = "CULTIV"
	GhgFertProd  GhgComponent = "FERT_PROD"
	GhgHarvest   GhgComponent = "HARVEST"
	GhgIrrig     GhgComponent = "IRRIG"
	GhgPestProd  GhgComponent = "PEST_PROD"
	GhgSoilNSurp GhgComponent = "SOIL_N_SURP"
	GhgSowing    GhgComponent = "SOWING"
)

// Livestock GHG emission components, in kg CO2e/head.
const (
	GhgEnteric        GhgComponent = "ENTERIC"
	GhgManureMgt      GhgComponent = "MANURE_MGT"
	GhgIndLeachRunoff GhgComponent = "IND_LEACH_RUNOFF"
	GhgDungUrine      GhgComponent = "DUNG_URINE"
	GhgSeed           GhgComponent = "SEED"
	GhgFodder         GhgComponent = "FODDER"
	GhgFuel           GhgComponent = "FUEL"
	GhgElec           GhgComponent = "ELEC"
)

// HayIrrigationAddOnComponents are the crop GHG components added to
// irrigated-pasture livestock emissions, per spec.md §4.3.
var HayIrrigationAddOnComponents = []GhgComponent{
	GhgChemAppl, GhgFertProd, GhgIrrig, GhgPestProd, GhgSoilNSurp, GhgSowing,
}

// AMQuantity names the quantity an agricultural-management effect table
// modifies.
type AMQuantity string

const (
	AMQuantityGHG     AMQuantity = "ghg"
	AMQuantityWater   AMQuantity = "water"
	AMQuantityYield   AMQuantity = "yield"
	AMQuantityCost    AMQuantity = "cost"
	AMQuantityRevenue AMQuantity = "revenue"
)

// DataProvider is the contract the core consumes for all numeric inputs,
// per spec.md §6. Implementations own ingestion of raw rasters/tabular data;
// the core only ever sees already-materialised arrays through this
// interface. A DataProvider is built once per process and is read-only
// thereafter.
type DataProvider interface {
	// Cells returns the active-cell geometry and classification data.
	Cells() (CellData, error)

	// LandUsesAg returns J in lexicographic order.
	LandUsesAg() []LandUse
	// LandUsesNonAg returns K.
	LandUsesNonAg() []NonAgLandUse
	// AgManagements returns the declarative AM definitions (A).
	AgManagements() []AgManagementDef
	// Regions returns the partition of cells for the given accounting mode.
	Regions(mode RegionMode) []Region

	// AgCostPerHa returns the per-hectare AUD production cost of lu under
	// lm in year yearIdx (years since YR_CAL_BASE), one value per cell.
	AgCostPerHa(lu string, lm LandManagement, yearIdx int) ([]float64, error)
	// AgRevenuePerHa returns the per-hectare AUD revenue of lu under lm.
	AgRevenuePerHa(lu string, lm LandManagement, yearIdx int) ([]float64, error)

	// AgCropYieldPerHa returns a crop/horticulture land use's per-hectare
	// yield (t/ha, or kL/ha for some horticulture products).
	AgCropYieldPerHa(lu string, lm LandManagement, yearIdx int) ([]float64, error)
	// AgYieldPotential returns yield_pot: head per hectare for a livestock
	// type/vegetation class under lm.
	AgYieldPotential(lvstype, vegtype string, lm LandManagement, yearIdx int) ([]float64, error)

	// AgProductQuantityPerUnit returns the physical quantity one
	// "natural" production unit of product yields, in the product's own
	// unit (t, kL, or head): per hectare for crop/horticulture products,
	// per head for livestock products (e.g. kg dressed meat/head, kg
	// greasy wool/head, 1.0 head/head for live export).
	AgProductQuantityPerUnit(product string, lm LandManagement, yearIdx int) ([]float64, error)

	// AgWaterReqPerHa returns a crop's irrigation water requirement
	// (ML/ha), zero for dryland. For livestock it returns the per-head
	// drinking-water requirement (ML/head); multiplying by yield_pot
	// gives ML/ha, as specified by spec.md §4.3.
	AgWaterReqPerHa(lu string, lm LandManagement, yearIdx int) ([]float64, error)

	// AgGhgCropComponentPerHa returns one crop GHG emissions component, in
	// kg CO2e/ha.
	AgGhgCropComponentPerHa(component GhgComponent, lu string, lm LandManagement, yearIdx int) ([]float64, error)
	// AgGhgLvstkComponentPerHead returns one livestock GHG emissions
	// component, in kg CO2e/head.
	AgGhgLvstkComponentPerHead(component GhgComponent, lvstype string, lm LandManagement, yearIdx int) ([]float64, error)

	// TransitionMatrixAg returns t_ij, the J×J raw AUD/ha switching-cost
	// matrix, lexicographically ordered to match LandUsesAg.
	TransitionMatrixAg() (*mat.Dense, error)
	// WaterLicencePrice returns per-cell AUD/ML water licence prices.
	WaterLicencePrice() ([]float64, error)
	// WaterDeliveryPrice returns per-cell AUD/ML water delivery prices.
	WaterDeliveryPrice() ([]float64, error)

	// WaterYieldDR/SR/NL return the deep-rooted, shallow-rooted, and
	// natural-land baseline water yields (ML/ha/cell) for yearIdx.
	WaterYieldDR(yearIdx int) ([]float64, error)
	WaterYieldSR(yearIdx int) ([]float64, error)
	WaterYieldNL(yearIdx int) ([]float64, error)
	// WaterCCImpact returns the climate-change impact on regional water
	// yield (ML), keyed by region ID, for yearIdx under mode.
	WaterCCImpact(mode RegionMode, yearIdx int) (map[int]float64, error)

	// DemandC returns d_c, the commodity demand targets for yearIdx.
	DemandC(yearIdx int) ([]float64, error)
	// BauProductivityIncrease returns the business-as-usual yield
	// productivity growth multiplier-1 applied uniformly across
	// agricultural yields for yearIdx (0 in the base year).
	BauProductivityIncrease(yearIdx int) (float64, error)

	// AMMultiplier returns the multiplier AM applies to quantity for lu in
	// yearIdx, and whether AM has a table entry for lu at all (false if
	// the AM/land-use/year combination is absent from the underlying
	// data, in which case callers should apply a 1.0 i.e. no-op
	// multiplier rather than fail).
	AMMultiplier(am string, quantity AMQuantity, lu string, yearIdx int) (multiplier float64, ok bool, err error)

	// GhgTargets returns the GHG emissions cap for yearIdx, and whether a
	// cap applies at all (GHG_EMISSIONS_LIMITS may be off).
	GhgTargets(yearIdx int) (limitTCO2e float64, ok bool, err error)
	// BiodiversityTargets returns the optional biodiversity cap for
	// yearIdx.
	BiodiversityTargets(yearIdx int) (limit float64, ok bool, err error)

	// DeforestationCarbonReleasePerHa returns the one-off kg CO2e/ha
	// released when natural land use lu is cleared, for yearIdx.
	DeforestationCarbonReleasePerHa(lu string, yearIdx int) ([]float64, error)

	// NonAgCostPerHa returns the per-hectare AUD establishment/maintenance
	// cost of non-agricultural land use k.
	NonAgCostPerHa(k string, yearIdx int) ([]float64, error)
	// NonAgRevenuePerHa returns the per-hectare AUD revenue of k (e.g.
	// carbon-credit income for environmental plantings), zero for most k.
	NonAgRevenuePerHa(k string, yearIdx int) ([]float64, error)
	// NonAgGhgPerHa returns k's per-hectare kg CO2e emissions; negative
	// for sequestering land uses.
	NonAgGhgPerHa(k string, yearIdx int) ([]float64, error)
	// NonAgWaterYieldPerHa returns k's per-hectare ML baseline water
	// yield, following the same natural/shallow/deep classification as
	// agricultural land uses.
	NonAgWaterYieldPerHa(k string, yearIdx int) ([]float64, error)

	// AgSuitable reports, per cell, whether lu can be grown under lm at
	// all (agro-climatic/irrigation-infrastructure suitability). An
	// unsuitable cell is excluded from the program regardless of its
	// economics.
	AgSuitable(lu string, lm LandManagement) ([]bool, error)

	// SeedLumap, SeedLmmap, and SeedAmmap return the year-0 maps.
	SeedLumap() ([]int, error)
	SeedLmmap() ([]int, error)
	SeedAmmap() (map[string][]bool, error)
}
