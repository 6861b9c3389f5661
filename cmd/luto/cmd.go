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

package main

import (
	"fmt"

	"github.com/land-use-trade-offs/luto-v2.0.0"
	"github.com/land-use-trade-offs/luto-v2.0.0/config"
	"github.com/land-use-trade-offs/luto-v2.0.0/internal/logging"
	"github.com/land-use-trade-offs/luto-v2.0.0/runner"
	"github.com/land-use-trade-offs/luto-v2.0.0/solver"
	"github.com/lnashier/viper"
	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

// NewDataProvider constructs the process-wide DataProvider (spec.md §9's
// "Global Data Provider" design note) from the loaded Config. It is nil in
// this module, since data ingestion is explicitly out of scope (spec.md
// §1): a deployment wires its own raster/tabular ingestion layer behind
// this hook rather than the core package doing it directly.
var NewDataProvider func(cfg *config.Config) (luto.DataProvider, error)

// NewSolverAdapter constructs the solver.Adapter a run uses. Defaults to
// the reference in-process solver, wrapped with retry, suitable only for
// the small demo/test scenarios spec.md §8 describes; production
// deployments override this with an Adapter backed by a real LP/MIP
// solver.
var NewSolverAdapter func(cfg *config.Config) solver.Adapter = func(cfg *config.Config) solver.Adapter {
	return solver.WithRetry(solver.NewReference())
}

var cfgFile string
var v = viper.New()

// Root is the luto command tree's entry point.
var Root = &cobra.Command{
	Use:   "luto",
	Short: "LUTO: a spatial land-use optimisation model.",
	Long: `LUTO allocates agricultural and non-agricultural land use across a
grid of cells year by year, minimising cost and transition penalties subject
to commodity demand, water, and greenhouse-gas constraints.

Configuration can be supplied via a config file (--config), environment
variables prefixed LUTO_, or command-line flags, following the layered
precedence github.com/lnashier/viper implements.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cfgFile != "" {
			v.SetConfigFile(cfgFile)
			if err := v.ReadInConfig(); err != nil {
				return fmt.Errorf("luto: reading config file: %w", err)
			}
		}
		v.SetEnvPrefix("LUTO")
		v.AutomaticEnv()
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:               "version",
	Short:             "Print the version number",
	DisableAutoGenTag: true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("luto v%s\n", version)
	},
}

var validateCmd = &cobra.Command{
	Use:               "validate",
	Short:             "Load and validate the configuration without running.",
	DisableAutoGenTag: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(v)
		if err != nil {
			return err
		}
		cmd.Printf("configuration OK: %d -> %d (%s mode)\n", cfg.YearCalBase, cfg.YearCalEnd, cfg.Mode)
		return nil
	},
}

var snapshotYears []int

var runCmd = &cobra.Command{
	Use:               "run",
	Short:             "Run the model.",
	DisableAutoGenTag: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(v)
		if err != nil {
			return err
		}
		if err := logging.SetLevel(cfg.Verbosity); err != nil {
			return err
		}
		if NewDataProvider == nil {
			return luto.NewConfigError("DataProvider",
				"no DataProvider registered; a deployment must set cmd/luto.NewDataProvider before calling Root.Execute")
		}
		dp, err := NewDataProvider(cfg)
		if err != nil {
			return err
		}
		idx, err := luto.NewIndexModel(dp.LandUsesAg(), dp.LandUsesNonAg(), nil)
		if err != nil {
			return err
		}
		adapter := NewSolverAdapter(cfg)

		states, err := runner.Run(cmd.Context(), dp, idx, cfg, adapter, snapshotYears)
		if err != nil {
			return err
		}
		cmd.Printf("solved %d year(s)\n", len(states))
		return nil
	},
}

func init() {
	pf := Root.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "path to a LUTO configuration file")
	runCmd.Flags().IntSliceVar(&snapshotYears, "snapshot-years", nil, "years to solve in snapshot mode")

	Root.AddCommand(versionCmd, validateCmd, runCmd)
}
