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

// Package runner wires the luto, matrix, transition, cull, program, and
// solver packages together into the year-by-year Run Loop described in
// spec.md §4.8. It is a separate package from luto itself because the
// matrix/transition/cull/program packages all import luto for its shared
// types, and Go forbids the reverse import that embedding this
// orchestration logic in package luto would require.
package runner

import (
	"context"

	"github.com/ctessum/sparse"
	"github.com/land-use-trade-offs/luto-v2.0.0"
	"github.com/land-use-trade-offs/luto-v2.0.0/config"
	"github.com/land-use-trade-offs/luto-v2.0.0/cull"
	"github.com/land-use-trade-offs/luto-v2.0.0/internal/logging"
	"github.com/land-use-trade-offs/luto-v2.0.0/matrix"
	"github.com/land-use-trade-offs/luto-v2.0.0/program"
	"github.com/land-use-trade-offs/luto-v2.0.0/solver"
)

// Run drives the full multi-year optimisation, per spec.md §4.8: in
// Timeseries mode it solves every year from YearCalBase+1 through
// YearCalEnd in sequence, threading each year's YearState into the next;
// in Snapshot mode it solves only the requested years, each directly
// against the base-year state. It returns one luto.YearState per solved
// year, in solve order. A per-year *luto.SolveError is logged and that
// year is skipped (its YearState is omitted) rather than aborting the run;
// any other error aborts it.
func Run(ctx context.Context, dp luto.DataProvider, idx *luto.IndexModel, cfg *config.Config, adapter solver.Adapter, snapshotYears []int) ([]*luto.YearState, error) {
	cells, err := dp.Cells()
	if err != nil {
		return nil, err
	}

	baseLumap, err := dp.SeedLumap()
	if err != nil {
		return nil, err
	}
	baseLmmapRaw, err := dp.SeedLmmap()
	if err != nil {
		return nil, err
	}
	baseLmmap := make([]luto.LandManagement, len(baseLmmapRaw))
	for i, v := range baseLmmapRaw {
		baseLmmap[i] = luto.LandManagement(v)
	}
	baseAmmap, err := dp.SeedAmmap()
	if err != nil {
		return nil, err
	}
	current := &luto.YearState{Year: cfg.YearCalBase, Lumap: baseLumap, Lmmap: baseLmmap, Ammap: baseAmmap}

	years := cfg.TargetYears(snapshotYears)
	results := make([]*luto.YearState, 0, len(years))

	log := logging.WithField("component", "runner")

	for _, year := range years {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		yearIdx := year - cfg.YearCalBase
		log.WithField("year", year).Info("solving year")

		against := current
		next, err := SolveYear(ctx, dp, idx, cfg, adapter, cells, against, yearIdx, year)
		if err != nil {
			if se, ok := err.(*luto.SolveError); ok {
				log.WithField("year", year).WithField("status", se.Status).Warn("skipping year: solve failed")
				continue
			}
			return results, err
		}
		results = append(results, next)
		if cfg.Mode == config.Timeseries {
			current = next
		}
	}
	return results, nil
}

// tensors bundles one year's concurrently-built matrix inputs.
type tensors struct {
	cost, revenue, ghg, waterReq, waterYield, transitionCost, deforestation *sparse.DenseArray
	quantity                                                                *sparse.DenseArray
	nonAg                                                                   *matrix.NonAgTensors
	exclude                                                                 *matrix.ExcludeMask
}

// SolveYear builds every tensor, assembles the program, solves it, and
// decodes the result for a single year, against the given prior state.
func SolveYear(ctx context.Context, dp luto.DataProvider, idx *luto.IndexModel, cfg *config.Config, adapter solver.Adapter, cells luto.CellData, against *luto.YearState, yearIdx, year int) (*luto.YearState, error) {
	t, err := buildTensors(dp, idx, cells, against, yearIdx)
	if err != nil {
		return nil, err
	}

	// AM effect tensors, scattered onto fresh per-AM (M,R,J) cost/revenue
	// arrays for program.Inputs.AmCost/AmRevenue.
	amCost := make([]*sparse.DenseArray, len(idx.AM))
	amRevenue := make([]*sparse.DenseArray, len(idx.AM))
	for a := range idx.AM {
		am := &idx.AM[a]
		costEffect, err := matrix.AmEffectOnLandUseTensor(dp, am, luto.AMQuantityCost, t.cost, cells, idx, yearIdx)
		if err != nil {
			return nil, err
		}
		revEffect, err := matrix.AmEffectOnLandUseTensor(dp, am, luto.AMQuantityRevenue, t.revenue, cells, idx, yearIdx)
		if err != nil {
			return nil, err
		}
		costFull := matrix.MRJ(cells.R, idx.NumLandUses())
		revFull := matrix.MRJ(cells.R, idx.NumLandUses())
		matrix.ScatterAdd(costFull, costEffect, am.LandUses)
		matrix.ScatterAdd(revFull, revEffect, am.LandUses)
		amCost[a] = costFull
		amRevenue[a] = revFull

		ghgEffect, err := matrix.AmEffectOnLandUseTensor(dp, am, luto.AMQuantityGHG, t.ghg, cells, idx, yearIdx)
		if err != nil {
			return nil, err
		}
		matrix.ScatterAdd(t.ghg, ghgEffect, am.LandUses)

		waterEffect, err := matrix.AmEffectOnLandUseTensor(dp, am, luto.AMQuantityWater, t.waterReq, cells, idx, yearIdx)
		if err != nil {
			return nil, err
		}
		matrix.ScatterAdd(t.waterReq, waterEffect, am.LandUses)
	}

	// Fold the deforestation penalty into the GHG tensor before program
	// assembly so the GHG cap sees it. The GHG tensor is not part of the
	// objective or of the cull score, so neither includes the penalty.
	matrix.ScatterAdd(t.ghg, t.deforestation, allLandUseIndices(idx))

	keep := cull.Cull(t.cost, t.revenue, t.transitionCost, func(r, j int) bool {
		return anyFeasible(t.exclude, r, j)
	}, cells.R, idx.NumLandUses(), luto.NumLandManagements, cullOptions(cfg))

	demand, err := dp.DemandC(yearIdx)
	if err != nil {
		return nil, err
	}
	penCeil, err := penaltyCeiling(cfg, t.cost, t.revenue, cfg.PenaltyLevel)
	if err != nil {
		return nil, err
	}

	regionTarget, regionOf, err := regionalWaterTargets(dp, cfg, cells, yearIdx)
	if err != nil {
		return nil, err
	}

	ghgCap, ghgOk, err := dp.GhgTargets(yearIdx)
	if err != nil {
		return nil, err
	}
	biodivCap, biodivOk, err := dp.BiodiversityTargets(yearIdx)
	if err != nil {
		return nil, err
	}

	spec, err := program.Build(program.Inputs{
		Idx: idx, Cells: cells,
		Cost: t.cost, Revenue: t.revenue, TransitionCost: t.transitionCost,
		Ghg: t.ghg, WaterReq: t.waterReq, WaterYield: t.waterYield,
		Quantity: t.quantity,
		NonAgCost: t.nonAg.Cost, NonAgRevenue: t.nonAg.Revenue, NonAgGhg: t.nonAg.Ghg, NonAgWater: t.nonAg.Water,
		Feasible: func(m luto.LandManagement, r, j int) bool { return t.exclude.At(m, r, j) },
		Keep:     func(r, j int) bool { return keep.At(r, j) },
		DemandC:  demand, PenaltyCeiling: penCeil,
		// GhgTargets is in tonnes CO2e; the GHG tensors are in kg CO2e.
		GhgCap: ghgCap * 1000, GhgCapEnabled: ghgOk && cfg.GhgEmissionsLimitsEnabled,
		BiodiversityCap: biodivCap, BiodivCapEnabled: biodivOk && cfg.BiodiversityLimitsEnabled,
		RegionOf: regionOf, RegionTarget: regionTarget,
		AmCost: amCost, AmRevenue: amRevenue,
	})
	if err != nil {
		return nil, err
	}

	model, err := adapter.BuildModel(ctx, spec)
	if err != nil {
		return nil, err
	}
	solution, err := adapter.Solve(ctx, model)
	if err != nil {
		return nil, err
	}
	if !acceptable(solution.Status, cfg.SolverAcceptSuboptimal) {
		return nil, luto.NewSolveError(year, solution.Status.String(), "program did not solve to an acceptable status")
	}

	decoded := program.Decode(spec, solution.Values, idx, cells.R)
	next := &luto.YearState{Year: year, Lumap: decoded.Lumap, Lmmap: decoded.Lmmap, Ammap: decoded.Ammap}
	if err := luto.ApplyInvariants(next, cells.R, func(j int) bool { return j >= 0 && j < idx.NumLandUses() }); err != nil {
		return nil, err
	}
	return next, nil
}

func acceptable(s solver.Status, acceptSuboptimal bool) bool {
	if s == solver.Optimal {
		return true
	}
	return acceptSuboptimal && s == solver.Suboptimal
}

func allLandUseIndices(idx *luto.IndexModel) []int {
	out := make([]int, idx.NumLandUses())
	for i := range out {
		out[i] = i
	}
	return out
}

func anyFeasible(mask *matrix.ExcludeMask, r, j int) bool {
	for m := luto.LandManagement(0); int(m) < luto.NumLandManagements; m++ {
		if mask.At(m, r, j) {
			return true
		}
	}
	return false
}

func cullOptions(cfg *config.Config) cull.Options {
	if cfg.CullMode == "percentage" {
		return cull.Options{Mode: cull.Percentage, Fraction: cfg.LandUsageCullPercentage}
	}
	return cull.Options{Mode: cull.Absolute, MaxPerCell: cfg.MaxLandUsesPerCell}
}
