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

package runner

import (
	"github.com/land-use-trade-offs/luto-v2.0.0"
	"github.com/land-use-trade-offs/luto-v2.0.0/config"
)

// regionalWaterTargets computes each region's minimum acceptable net water
// yield for yearIdx, per spec.md §4.6, and the per-cell region assignment
// the program builder needs to route each cell's contribution to the right
// constraint row. When WaterLimitsType is Off it returns a nil target map,
// which disables the constraint entirely.
//
// The region's climate-change water-yield impact is folded in here, as a
// one-off adjustment to the target rather than a per-cell scaling of
// matrix.WaterYield: net yield in a region is sum(ag+non-ag contributions)
// + ccImpact, so requiring that sum to clear the target is equivalent to
// requiring sum >= target - ccImpact.
func regionalWaterTargets(dp luto.DataProvider, cfg *config.Config, cells luto.CellData, yearIdx int) (target map[int]float64, regionOf []int, err error) {
	if cfg.WaterLimitsType == config.Off {
		return nil, cells.RegionID, nil
	}

	regions := dp.Regions(cfg.WaterRegionMode)
	ccImpact, err := dp.WaterCCImpact(cfg.WaterRegionMode, yearIdx)
	if err != nil {
		return nil, nil, err
	}
	target = make(map[int]float64, len(regions))

	switch cfg.WaterLimitsType {
	case config.WaterStress:
		for _, rg := range regions {
			target[rg.ID] = (1-cfg.WaterStressFraction)*rg.HistoricalYieldML - ccImpact[rg.ID]
		}
	case config.PctAg:
		for _, rg := range regions {
			target[rg.ID] = cfg.WaterStressFraction*rg.HistoricalYieldML - ccImpact[rg.ID]
		}
	}
	return target, cells.RegionID, nil
}
