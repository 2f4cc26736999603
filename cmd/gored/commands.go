/*
 * commands.go, part of goRED.
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
	"errors"
	"fmt"

	"github.com/rmera/gored"
	"github.com/rmera/gored/chargeplot"
	"github.com/rmera/gored/internal/logging"
	"github.com/rmera/gored/job"
	"github.com/rmera/gored/p2n"
	"github.com/rmera/gored/resp"
	"github.com/spf13/cobra"
)

func newFitCommand(a *app) *cobra.Command {
	mo := &molOptions{}
	var plot bool
	cmd := &cobra.Command{
		Use:   "fit",
		Short: "Derive the charges of one or several molecules",
		Long:  "Runs the two stages of the fit, with and without the intra-molecular\nconstraints, for every molecule and, if several are given, for all of\nthem together. The espot_NAME files must be in the working directory.",
		RunE: func(cmd *cobra.Command, args []string) error {
			C, err := mo.load()
			if err != nil {
				return err
			}
			runner := resp.NewCommand()
			if a.cfg.Resp.Command != "" {
				runner.SetCommand(a.cfg.Resp.Command)
			}
			runner.SetDir(a.cfg.Workdir)
			J := job.New(C, a.mode, runner, a.cfg.Workdir)
			J.KeepFiles = a.cfg.Resp.KeepFiles
			results, runErr := J.Run(cmd.Context())
			out := cmd.OutOrStdout()
			for _, R := range results {
				title := fmt.Sprintf("%s charges of %s", a.mode, R.Molecule)
				name := R.Molecule
				if R.Combined {
					title += " (fitted with all the molecules)"
					name = resp.CollectionName + "_" + name
				}
				if err := printCharges(out, title, R.Charges); err != nil {
					return err
				}
				fmt.Fprintln(out)
				if !plot && !a.cfg.Plot.Enabled {
					continue
				}
				file := a.path(name + ".png")
				if err := chargeplot.Bars(title, R.Charges, file, a.cfg.Plot.Width, a.cfg.Plot.Height); err != nil {
					a.log.Warn("can't plot the charges", logging.String("molecule", R.Molecule), logging.Err(err))
				}
			}
			return runErr
		},
	}
	mo.register(cmd)
	cmd.Flags().BoolVar(&plot, "plot", false, "plot the charges of each molecule to a PNG file")
	return cmd
}

func newInputCommand(a *app) *cobra.Command {
	mo := &molOptions{}
	cmd := &cobra.Command{
		Use:   "input",
		Short: "Write the resp control files without running resp",
		RunE: func(cmd *cobra.Command, args []string) error {
			C, err := mo.load()
			if err != nil {
				return err
			}
			J := job.New(C, a.mode, nil, a.cfg.Workdir)
			var errs []error
			for stage := 1; stage <= 2; stage++ {
				errs = append(errs, J.WriteInputs(stage))
			}
			if err := errors.Join(errs...); err != nil {
				return err
			}
			a.log.Info("control files written", logging.String("workdir", a.cfg.Workdir), logging.Int("molecules", C.Len()))
			return nil
		},
	}
	mo.register(cmd)
	return cmd
}

func newChargesCommand(a *app) *cobra.Command {
	var punch, pdb, itp string
	cmd := &cobra.Command{
		Use:   "charges",
		Short: "Read and average the charges of a punch file",
		RunE: func(cmd *cobra.Command, args []string) error {
			M, err := p2n.ReadMolecule(pdb)
			if err != nil {
				return err
			}
			if itp != "" {
				if _, err := p2n.ReadBonds(itp, M.Molecule); err != nil {
					return err
				}
			}
			raw, err := resp.ReadPunchFile(punch)
			if err != nil {
				return err
			}
			ch, err := resp.MoleculeCharges(M.Molecule, raw, a.mode.Config().Averaging)
			if err != nil {
				return red.ErrDecorate(err, "charges")
			}
			return printCharges(cmd.OutOrStdout(), fmt.Sprintf("%s charges of %s", a.mode, M.Name), ch)
		},
	}
	f := cmd.Flags()
	f.StringVar(&punch, "punch", "", "punch file written by resp")
	f.StringVarP(&pdb, "p2n", "p", "", "P2N file of the molecule")
	f.StringVar(&itp, "itp", "", "GROMACS topology with the bonds")
	cmd.MarkFlagRequired("punch")
	cmd.MarkFlagRequired("p2n")
	return cmd
}
