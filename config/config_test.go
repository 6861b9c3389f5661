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

package config

import (
	"testing"

	"github.com/lnashier/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(overrides map[string]interface{}) *viper.Viper {
	v := viper.New()
	for k, val := range overrides {
		v.Set(k, val)
	}
	return v
}

func TestLoadAppliesDefaults(t *testing.T) {
	v := newViper(map[string]interface{}{
		"YearCalBase": 2010,
		"YearCalEnd":  2050,
	})
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, Timeseries, cfg.Mode)
	assert.Equal(t, 1, cfg.Resfactor)
	assert.Equal(t, "absolute", cfg.CullMode)
	assert.Equal(t, 12, cfg.MaxLandUsesPerCell)
	assert.Equal(t, WaterStress, cfg.WaterLimitsType)
}

func TestLoadRejectsEndBeforeBase(t *testing.T) {
	v := newViper(map[string]interface{}{
		"YearCalBase": 2050,
		"YearCalEnd":  2010,
	})
	_, err := Load(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "YearCalEnd")
}

func TestLoadRejectsBadCullMode(t *testing.T) {
	v := newViper(map[string]interface{}{
		"YearCalBase": 2010,
		"YearCalEnd":  2050,
		"CullMode":    "whatever",
	})
	_, err := Load(v)
	require.Error(t, err)
}

func TestLoadRejectsOutOfRangeCullPercentage(t *testing.T) {
	v := newViper(map[string]interface{}{
		"YearCalBase":             2010,
		"YearCalEnd":              2050,
		"LandUsageCullPercentage": 1.5,
	})
	_, err := Load(v)
	require.Error(t, err)
}

func TestTargetYearsTimeseriesSpansFullRange(t *testing.T) {
	cfg := &Config{YearCalBase: 2010, YearCalEnd: 2013, Mode: Timeseries}
	assert.Equal(t, []int{2011, 2012, 2013}, cfg.TargetYears(nil))
}

func TestTargetYearsSnapshotUsesGivenYears(t *testing.T) {
	cfg := &Config{YearCalBase: 2010, YearCalEnd: 2050, Mode: Snapshot}
	assert.Equal(t, []int{2030, 2040}, cfg.TargetYears([]int{2030, 2040}))
}
