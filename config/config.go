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

// Package config loads and validates the run-time configuration described
// in spec.md §6: a loosely-typed viper.Viper backing store, pulled into a
// strongly-typed Config struct via github.com/spf13/cast.
package config

import (
	"strings"

	"github.com/land-use-trade-offs/luto-v2.0.0"
	"github.com/lnashier/viper"
	"github.com/spf13/cast"
)

// SolveMode selects whether runner.Run solves every year (timeseries) or only
// target years against the base year (snapshot).
type SolveMode string

const (
	Timeseries SolveMode = "timeseries"
	Snapshot   SolveMode = "snapshot"
)

// WaterLimitsType selects how the regional water target is computed.
type WaterLimitsType string

const (
	WaterStress WaterLimitsType = "water_stress"
	PctAg       WaterLimitsType = "pct_ag"
	Off         WaterLimitsType = "off"
)

// Config is the fully resolved, validated run configuration.
type Config struct {
	YearCalBase int
	YearCalEnd  int
	Mode        SolveMode

	Resfactor int

	CullMode       string // "absolute" or "percentage"
	MaxLandUsesPerCell int
	LandUsageCullPercentage float64

	PenaltyLevel float64

	WaterLimitsType     WaterLimitsType
	WaterStressFraction float64
	WaterRegionMode     luto.RegionMode

	GhgEmissionsLimitsEnabled bool
	BiodiversityLimitsEnabled bool

	SolverAcceptSuboptimal bool
	SolverTimeout          int // seconds, 0 = no timeout

	Verbosity string
}

// Load reads a Config from v, applying the defaults set by SetDefaults and
// returning a *luto.ConfigError for any invalid value.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	c := &Config{
		YearCalBase:             v.GetInt("YearCalBase"),
		YearCalEnd:              v.GetInt("YearCalEnd"),
		Mode:                    SolveMode(v.GetString("Mode")),
		Resfactor:               v.GetInt("Resfactor"),
		CullMode:                v.GetString("CullMode"),
		MaxLandUsesPerCell:      v.GetInt("MaxLandUsesPerCell"),
		LandUsageCullPercentage: v.GetFloat64("LandUsageCullPercentage"),
		PenaltyLevel:            v.GetFloat64("PenaltyLevel"),
		WaterLimitsType:         WaterLimitsType(v.GetString("WaterLimitsType")),
		WaterStressFraction:     v.GetFloat64("WaterStressFraction"),
		GhgEmissionsLimitsEnabled: v.GetBool("GhgEmissionsLimits"),
		BiodiversityLimitsEnabled: v.GetBool("BiodiversityLimits"),
		SolverAcceptSuboptimal:    v.GetBool("SolverAcceptSuboptimal"),
		SolverTimeout:             v.GetInt("SolverTimeoutSeconds"),
		Verbosity:                 v.GetString("Verbosity"),
	}

	switch strings.ToLower(v.GetString("WaterRegionMode")) {
	case "drainage_division":
		c.WaterRegionMode = luto.DrainageDivision
	case "river_region", "":
		c.WaterRegionMode = luto.RiverRegion
	default:
		return nil, luto.NewConfigError("WaterRegionMode", "unknown value %q", v.GetString("WaterRegionMode"))
	}

	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// SetDefaults installs LUTO's default configuration values into v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("Mode", string(Timeseries))
	v.SetDefault("Resfactor", 1)
	v.SetDefault("CullMode", "absolute")
	v.SetDefault("MaxLandUsesPerCell", 12)
	v.SetDefault("LandUsageCullPercentage", 0.2)
	v.SetDefault("PenaltyLevel", 1.0)
	v.SetDefault("WaterLimitsType", string(WaterStress))
	v.SetDefault("WaterStressFraction", 0.3)
	v.SetDefault("WaterRegionMode", "river_region")
	v.SetDefault("GhgEmissionsLimits", false)
	v.SetDefault("BiodiversityLimits", false)
	v.SetDefault("SolverAcceptSuboptimal", false)
	v.SetDefault("SolverTimeoutSeconds", 0)
	v.SetDefault("Verbosity", "info")
}

func (c *Config) validate() error {
	if c.YearCalEnd <= c.YearCalBase {
		return luto.NewConfigError("YearCalEnd", "must postdate YearCalBase (%d)", c.YearCalBase)
	}
	if c.Mode != Timeseries && c.Mode != Snapshot {
		return luto.NewConfigError("Mode", "must be %q or %q, got %q", Timeseries, Snapshot, c.Mode)
	}
	if c.Resfactor < 1 {
		return luto.NewConfigError("Resfactor", "must be >= 1, got %d", c.Resfactor)
	}
	switch c.CullMode {
	case "absolute", "percentage":
	default:
		return luto.NewConfigError("CullMode", `must be "absolute" or "percentage", got %q`, c.CullMode)
	}
	if c.MaxLandUsesPerCell < 1 {
		return luto.NewConfigError("MaxLandUsesPerCell", "must be >= 1, got %d", c.MaxLandUsesPerCell)
	}
	if c.LandUsageCullPercentage < 0 || c.LandUsageCullPercentage >= 1 {
		return luto.NewConfigError("LandUsageCullPercentage", "must be in [0,1), got %v", c.LandUsageCullPercentage)
	}
	if c.PenaltyLevel <= 0 {
		return luto.NewConfigError("PenaltyLevel", "must be > 0, got %v", c.PenaltyLevel)
	}
	switch c.WaterLimitsType {
	case WaterStress, PctAg, Off:
	default:
		return luto.NewConfigError("WaterLimitsType", "unknown value %q", c.WaterLimitsType)
	}
	if c.WaterStressFraction < 0 || c.WaterStressFraction >= 1 {
		return luto.NewConfigError("WaterStressFraction", "must be in [0,1), got %v", c.WaterStressFraction)
	}
	if c.SolverTimeout < 0 {
		return luto.NewConfigError("SolverTimeoutSeconds", "must be >= 0, got %d", c.SolverTimeout)
	}
	if _, err := cast.ToStringE(c.Verbosity); err != nil {
		return luto.NewConfigError("Verbosity", "%v", err)
	}
	return nil
}

// TargetYears returns the calendar years runner.Run must produce a solved
// state for, given Mode: every year base+1..end for Timeseries, or just
// the configured snapshot years for Snapshot.
func (c *Config) TargetYears(snapshotYears []int) []int {
	if c.Mode == Timeseries {
		years := make([]int, 0, c.YearCalEnd-c.YearCalBase)
		for y := c.YearCalBase + 1; y <= c.YearCalEnd; y++ {
			years = append(years, y)
		}
		return years
	}
	return snapshotYears
}
