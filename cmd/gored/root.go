/*
 * root.go, part of goRED.
 *
 * Copyright 2026 The goRED authors.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package main

import (
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"

	"github.com/rmera/gored"
	"github.com/rmera/gored/internal/config"
	"github.com/rmera/gored/internal/logging"
	"github.com/rmera/gored/p2n"
	"github.com/rmera/gored/resp"
	"github.com/spf13/cobra"
)

// rootOptions are the global flags.
type rootOptions struct {
	configPath string
	logLevel   string
	mode       string
	workdir    string
}

// app is what the subcommands get once the configuration is loaded.
type app struct {
	cfg  *config.Config
	mode red.FitMode
	log  logging.Logger
}

// molOptions are the flags of the commands that read molecules.
type molOptions struct {
	p2n   []string
	itp   []string
	inter string
}

func (O *molOptions) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringSliceVarP(&O.p2n, "p2n", "p", nil, "P2N files, one per molecule, in order")
	f.StringSliceVar(&O.itp, "itp", nil, "GROMACS topologies with the bonds, one per P2N file")
	f.StringVar(&O.inter, "inter", "", "file with the INTER-MCC and INTER-MEQA remarks")
	cmd.MarkFlagRequired("p2n")
}

func (O *molOptions) load() (*red.Collection, error) {
	C, _, err := p2n.LoadCollection(O.p2n, O.itp, O.inter)
	return C, err
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	a := &app{}
	cmd := &cobra.Command{
		Use:     "gored",
		Short:   "RESP and ESP charge derivation",
		Long:    "gored derives RESP and ESP atomic charges for one or several molecules,\nfrom P2N files and precomputed electrostatic potentials, running the\nresp program in two stages.",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "YAML configuration file")
	pf.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVarP(&opts.mode, "mode", "m", "", "charge model (RESP-A1, RESP-C1, RESP-A2, RESP-C2, ESP-A1, ESP-C1, ESP-A2, ESP-C2, DEBUG)")
	pf.StringVarP(&opts.workdir, "workdir", "w", "", "directory with the espot files, where all files are written")
	cmd.AddCommand(newFitCommand(a), newInputCommand(a), newChargesCommand(a))
	return cmd
}

// init loads the configuration, the flags win over the file and the
// environment, and sets up the logger.
func (a *app) init(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.mode != "" {
		cfg.Mode = opts.mode
	}
	if opts.workdir != "" {
		cfg.Workdir = opts.workdir
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.mode, _ = cfg.FitMode()
	a.log, err = logging.NewLogger(cfg.Log)
	if err != nil {
		return fmt.Errorf("logger initialization failed: %w", err)
	}
	logging.SetDefault(a.log)
	a.cfg = cfg
	a.log.Debug("configuration loaded", logging.String("mode", a.mode.String()), logging.String("workdir", cfg.Workdir))
	return nil
}

func (a *app) path(name string) string {
	return filepath.Join(a.cfg.Workdir, name)
}

// printCharges writes a table with the charges of a molecule.
func printCharges(w io.Writer, title string, charges []resp.Charge) error {
	fmt.Fprintf(w, "%s\n", title)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "#\tName\tLabel\tCharge\t\t")
	for _, c := range charges {
		removed := ""
		if c.Removed {
			removed = "removed"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.4f\t%s\t\n", c.Atom, c.Name, c.Label, c.Value, removed)
	}
	s := resp.Summarize(charges)
	fmt.Fprintf(tw, "\t\tTotal\t%.4f\t\t\n", s.Total)
	return tw.Flush()
}
