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

// Package program assembles one year's mathematical program: decision
// variables, a single objective, and the constraint set described in
// spec.md §4.6. The package is solver-agnostic; Spec is handed to a
// solver.Adapter for the actual optimisation.
package program

import (
	"sort"
	"strconv"

	"github.com/ctessum/sparse"
	"github.com/land-use-trade-offs/luto-v2.0.0"
)

// VarKind names a decision-variable family.
type VarKind int

const (
	// VarX is X[m,r,j]: hectares of cell r assigned to agricultural land
	// use j under management m.
	VarX VarKind = iota
	// VarN is N[r,k]: hectares of cell r assigned to non-agricultural
	// land use k.
	VarN
	// VarA is A[a,m,r,j]: hectares of cell r under AM a, land use j,
	// management m, subordinate to the matching VarX.
	VarA
	// VarV is V[c]: unmet-demand deviation for commodity c.
	VarV
)

// VarSpec names one scalar decision variable and its column in Spec.Columns.
type VarSpec struct {
	Kind                 VarKind
	M, R, J, K, A, C     int
	LowerBound, UpperBound float64
}

// ConstraintSense is the relational operator of one row.
type ConstraintSense int

const (
	LessEqual ConstraintSense = iota
	Equal
	GreaterEqual
)

// ConstraintSpec is one row of the program: a sparse linear combination of
// variable columns related to a right-hand side by Sense.
type ConstraintSpec struct {
	Name  string
	Terms map[int]float64 // column index -> coefficient
	Sense ConstraintSense
	RHS   float64
}

// Spec is a complete, solver-agnostic mathematical program for one year.
type Spec struct {
	Vars        []VarSpec
	Objective   []float64 // same length/order as Vars; minimise sum(Objective[i]*x[i])
	Constraints []ConstraintSpec
}

// varIndex assigns stable column indices while a Spec is under
// construction.
type varIndex struct {
	specs []VarSpec
	index map[[5]int]int // (kind, a-or-k, m, r, j/c) -> column
}

func newVarIndex() *varIndex {
	return &varIndex{index: make(map[[5]int]int)}
}

func (vi *varIndex) add(v VarSpec) int {
	key := [5]int{int(v.Kind), v.A + v.K, v.M, v.R, v.J + v.C}
	if i, ok := vi.index[key]; ok {
		return i
	}
	i := len(vi.specs)
	vi.index[key] = i
	vi.specs = append(vi.specs, v)
	return i
}

// Inputs bundles everything Build needs: the already-computed per-year
// tensors and the configuration knobs that shape the constraint set.
type Inputs struct {
	Idx   *luto.IndexModel
	Cells luto.CellData

	Cost, Revenue, TransitionCost, Ghg, WaterReq, WaterYield *sparse.DenseArray // (M,R,J)
	Quantity                                                *sparse.DenseArray // (M,R,P)
	NonAgCost, NonAgRevenue, NonAgGhg, NonAgWater            *sparse.DenseArray // (R,K)

	Feasible func(m luto.LandManagement, r, j int) bool
	Keep     func(r, j int) bool

	// AmCost and AmRevenue are full (M,R,J)-shaped per-AM cost/revenue
	// effect tensors (zero outside each AM's land-use subset), indexed
	// the same order as Idx.AM. Callers build these by scattering each
	// AM's compressed (M,R,J_am) effect tensor onto a fresh zero (M,R,J)
	// array.
	AmCost, AmRevenue []*sparse.DenseArray

	DemandC       []float64
	PenaltyCeiling float64

	GhgCap           float64
	GhgCapEnabled    bool
	BiodiversityCap  float64
	BiodivCapEnabled bool

	RegionOf      []int // per cell, region ID for the regional water constraint
	RegionTarget  map[int]float64
}

// perHa converts one of the (M,R,J)/(R,K) tensors' full-cell totals (each
// already scaled by the cell's real area when it was built, e.g.
// matrix.Cost) into a per-hectare rate suitable as a linear coefficient
// against the hectares-valued X/N/A variables. A zero-area cell always has
// its variables forced to zero by their UpperBound, so the rate there is
// irrelevant and returning 0 avoids a division by zero.
func perHa(total, area float64) float64 {
	if area == 0 {
		return 0
	}
	return total / area
}

// Build assembles the decision variables, objective, and constraints for
// one year, per spec.md §4.6. It returns a DataError if DemandC's length
// does not match the number of commodities in Idx.
func Build(in Inputs) (*Spec, error) {
	idx := in.Idx
	r := in.Cells.R
	if len(in.DemandC) != idx.NumCommodities() {
		return nil, luto.NewDataError("program.Build", "demand vector length %d != |C| %d", len(in.DemandC), idx.NumCommodities())
	}

	vi := newVarIndex()
	var objective []float64

	addVar := func(v VarSpec, obj float64) int {
		i := vi.add(v)
		if i == len(objective) {
			objective = append(objective, obj)
		}
		return i
	}

	// X[m,r,j]: only for feasible, surviving (post-cull) candidates.
	xCol := make(map[[3]int]int) // [m,r,j] -> column
	for j := 0; j < idx.NumLandUses(); j++ {
		for cell := 0; cell < r; cell++ {
			if in.Keep != nil && !in.Keep(cell, j) {
				continue
			}
			for m := luto.LandManagement(0); int(m) < luto.NumLandManagements; m++ {
				if in.Feasible != nil && !in.Feasible(m, cell, j) {
					continue
				}
				area := in.Cells.AreaHa[cell]
				obj := perHa(in.Cost.Get(int(m), cell, j), area) + perHa(in.TransitionCost.Get(int(m), cell, j), area) - perHa(in.Revenue.Get(int(m), cell, j), area)
				col := addVar(VarSpec{Kind: VarX, M: int(m), R: cell, J: j, UpperBound: area}, obj)
				xCol[[3]int{int(m), cell, j}] = col
			}
		}
	}

	// N[r,k]: non-agricultural, always dry (no land-management dimension).
	nCol := make(map[[2]int]int)
	for k := 0; k < idx.NumNonAgLandUses(); k++ {
		for cell := 0; cell < r; cell++ {
			area := in.Cells.AreaHa[cell]
			obj := perHa(in.NonAgCost.Get(cell, k), area) - perHa(in.NonAgRevenue.Get(cell, k), area)
			col := addVar(VarSpec{Kind: VarN, R: cell, K: k, UpperBound: area}, obj)
			nCol[[2]int{cell, k}] = col
		}
	}

	// A[a,m,r,j]: AM a's activity on land use j at cell r under
	// management m, subordinate to the matching X[m,r,j] (spec.md §4.3).
	// AM effect tensors are folded into the AM variable's own objective
	// coefficient rather than scattered onto X's, so the solver can
	// choose AM adoption independently of the base land-use decision.
	aCol := make(map[[4]int]int) // [a,m,r,j] -> column
	for a, am := range idx.AM {
		if !am.Enabled {
			continue
		}
		for _, j := range am.LandUses {
			for cell := 0; cell < r; cell++ {
				if in.Keep != nil && !in.Keep(cell, j) {
					continue
				}
				for m := luto.LandManagement(0); int(m) < luto.NumLandManagements; m++ {
					if _, ok := xCol[[3]int{int(m), cell, j}]; !ok {
						continue
					}
					area := in.Cells.AreaHa[cell]
					var amCost, amRevenue float64
					if in.AmCost != nil {
						amCost = perHa(in.AmCost[a].Get(int(m), cell, j), area)
					}
					if in.AmRevenue != nil {
						amRevenue = perHa(in.AmRevenue[a].Get(int(m), cell, j), area)
					}
					obj := amCost - amRevenue
					col := addVar(VarSpec{Kind: VarA, M: int(m), R: cell, J: j, A: a + 1, UpperBound: area}, obj)
					aCol[[4]int{a, int(m), cell, j}] = col
				}
			}
		}
	}

	// V[c]: unmet-demand deviation, penalised at the single scalar
	// ceiling p_c, resolving spec.md's Open Question (a): one uniform
	// penalty rather than the original's buggy per-commodity loop index.
	vCol := make(map[int]int)
	for c := 0; c < idx.NumCommodities(); c++ {
		col := addVar(VarSpec{Kind: VarV, C: c, LowerBound: 0}, in.PenaltyCeiling)
		vCol[c] = col
	}

	spec := &Spec{Vars: vi.specs, Objective: objective}

	// Area-conservation constraint: sum_{m,j} X[m,r,j] + sum_k N[r,k] = area[r].
	for cell := 0; cell < r; cell++ {
		terms := make(map[int]float64)
		for key, col := range xCol {
			if key[1] == cell {
				terms[col] = 1
			}
		}
		for key, col := range nCol {
			if key[0] == cell {
				terms[col] = 1
			}
		}
		spec.Constraints = append(spec.Constraints, ConstraintSpec{
			Name: areaConsName(cell), Terms: terms, Sense: Equal, RHS: in.Cells.AreaHa[cell],
		})
	}

	// productsByLandUse maps each land use to the products it produces,
	// so the commodity-demand constraint can convert X[m,r,j] (hectares)
	// into a commodity quantity via the per-hectare yield rate implied
	// by the Quantity tensor (which was built assuming the full cell
	// area is assigned).
	productsByLandUse := make(map[int][]int, idx.NumLandUses())
	for p := 0; p < idx.NumProducts(); p++ {
		j := idx.PR2LU[p]
		productsByLandUse[j] = append(productsByLandUse[j], p)
	}

	// AM subordination: A[a,m,r,j] <= X[m,r,j]. An AM cannot claim more
	// area for (m,r,j) than the base land-use decision assigns it.
	for key, acol := range aCol {
		a, m, cell, j := key[0], key[1], key[2], key[3]
		xc := xCol[[3]int{m, cell, j}]
		spec.Constraints = append(spec.Constraints, ConstraintSpec{
			Name:  amSubordinationName(a, m, cell, j),
			Terms: map[int]float64{acol: 1, xc: -1},
			Sense: LessEqual,
			RHS:   0,
		})
	}

	// Commodity-demand constraint: d_c - sum(rate_mrj[c] * X[m,r,j]) <=
	// V[c], i.e. sum(rate*X) + V[c] >= d_c, expressed with the deviation
	// variable absorbing any shortfall (spec.md §4.6).
	demandTerms := make([]map[int]float64, idx.NumCommodities())
	for c := range demandTerms {
		demandTerms[c] = map[int]float64{vCol[c]: 1}
	}
	for key, col := range xCol {
		m, cell, j := key[0], key[1], key[2]
		area := in.Cells.AreaHa[cell]
		if area == 0 {
			continue
		}
		for _, p := range productsByLandUse[j] {
			qty := in.Quantity.Get(m, cell, p)
			perHaRate := qty / area
			if perHaRate == 0 {
				continue
			}
			for c := 0; c < idx.NumCommodities(); c++ {
				if idx.PR2CM.At(c, p) == 0 {
					continue
				}
				demandTerms[c][col] += perHaRate
			}
		}
	}
	for c := 0; c < idx.NumCommodities(); c++ {
		spec.Constraints = append(spec.Constraints, ConstraintSpec{
			Name: demandConsName(c), Terms: demandTerms[c], Sense: GreaterEqual, RHS: in.DemandC[c],
		})
	}

	// GHG cap.
	if in.GhgCapEnabled {
		terms := make(map[int]float64)
		for key, col := range xCol {
			m, cell, j := key[0], key[1], key[2]
			terms[col] += perHa(in.Ghg.Get(m, cell, j), in.Cells.AreaHa[cell])
		}
		for key, col := range nCol {
			cell, k := key[0], key[1]
			terms[col] += perHa(in.NonAgGhg.Get(cell, k), in.Cells.AreaHa[cell])
		}
		spec.Constraints = append(spec.Constraints, ConstraintSpec{
			Name: "ghg_cap", Terms: terms, Sense: LessEqual, RHS: in.GhgCap,
		})
	}

	// Regional water net-yield constraint.
	if in.RegionTarget != nil {
		regionTerms := make(map[int]map[int]float64)
		for region := range in.RegionTarget {
			regionTerms[region] = make(map[int]float64)
		}
		for key, col := range xCol {
			m, cell, j := key[0], key[1], key[2]
			region := in.RegionOf[cell]
			t, ok := regionTerms[region]
			if !ok {
				continue
			}
			area := in.Cells.AreaHa[cell]
			t[col] += perHa(in.WaterYield.Get(m, cell, j), area) - perHa(in.WaterReq.Get(m, cell, j), area)
		}
		for key, col := range nCol {
			cell, k := key[0], key[1]
			region := in.RegionOf[cell]
			t, ok := regionTerms[region]
			if !ok {
				continue
			}
			t[col] += perHa(in.NonAgWater.Get(cell, k), in.Cells.AreaHa[cell])
		}
		regions := make([]int, 0, len(in.RegionTarget))
		for region := range in.RegionTarget {
			regions = append(regions, region)
		}
		sort.Ints(regions)
		for _, region := range regions {
			spec.Constraints = append(spec.Constraints, ConstraintSpec{
				Name: waterConsName(region), Terms: regionTerms[region], Sense: GreaterEqual, RHS: in.RegionTarget[region],
			})
		}
	}

	// Biodiversity constraint: total area of agricultural X columns on a
	// natural land use must not fall below the cap. Non-agricultural area
	// is not counted.
	if in.BiodivCapEnabled {
		terms := make(map[int]float64)
		natural := make(map[int]bool, len(idx.LUNatural))
		for _, j := range idx.LUNatural {
			natural[j] = true
		}
		for key, col := range xCol {
			if natural[key[2]] {
				terms[col] += 1
			}
		}
		spec.Constraints = append(spec.Constraints, ConstraintSpec{
			Name: "biodiversity_cap", Terms: terms, Sense: GreaterEqual, RHS: in.BiodiversityCap,
		})
	}

	return spec, nil
}

func areaConsName(r int) string   { return "area_" + strconv.Itoa(r) }
func demandConsName(c int) string { return "demand_" + strconv.Itoa(c) }
func waterConsName(r int) string  { return "water_" + strconv.Itoa(r) }
func amSubordinationName(a, m, r, j int) string {
	return "am_" + strconv.Itoa(a) + "_" + strconv.Itoa(m) + "_" + strconv.Itoa(r) + "_" + strconv.Itoa(j)
}
