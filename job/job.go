/*
 * job.go, part of goRED.
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

// Package job drives a complete charge derivation: for every molecule of
// a collection, and for all of them together, it writes the resp control
// files of both stages, runs resp, reads the fitted charges and averages
// them.
package job

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rmera/gored"
	"github.com/rmera/gored/internal/logging"
	"github.com/rmera/gored/resp"
)

// ChargeTolerance is the largest difference between the sum of the
// derived charges and the net charge of a molecule that goes without
// a warning.
const ChargeTolerance = 1e-3

// Result has the charges derived for one molecule.
type Result struct {
	Molecule string
	//The charges come from the fit of all the molecules together.
	Combined bool
	Charges  []resp.Charge
	Summary  resp.Summary
	//Net charge declared for the molecule.
	NetCharge int
}

// Deviation returns the difference between the sum of the charges and
// the net charge.
func (R *Result) Deviation() float64 {
	return R.Summary.Total - float64(R.NetCharge)
}

// Job is one charge derivation.
type Job struct {
	ID         uuid.UUID
	Config     red.FitConfig
	Collection *red.Collection
	Runner     resp.Runner
	MEP        MEPProvider
	Dir        string //where all the files are
	KeepFiles  bool   //keep the scratch files of resp
	Log        logging.Logger
}

// New returns a Job for the collection C, ready to run in dir, with the
// default MEP provider and the default logger.
func New(C *red.Collection, mode red.FitMode, runner resp.Runner, dir string) *Job {
	id := uuid.New()
	return &Job{
		ID:         id,
		Config:     mode.Config(),
		Collection: C,
		Runner:     runner,
		MEP:        ExistingESP{},
		Dir:        dir,
		Log:        logging.Default().With(logging.String("job", id.String())),
	}
}

// combined returns true if the molecules are also fitted together.
func (J *Job) combined() bool {
	return J.Collection.Len() > 1
}

func (J *Job) path(name string) string {
	return filepath.Join(J.Dir, name)
}

func (J *Job) writeFile(name string, write func(io.Writer) error) error {
	f, err := os.Create(J.path(name))
	if err != nil {
		return red.WrapError(red.ErrFitJobFailed, err, "writeFile", "can't create %s", name)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return red.WrapError(red.ErrFitJobFailed, err, "writeFile", "can't write %s", name)
	}
	return nil
}

// writeMolecule writes the control file of the m-th molecule.
func (J *Job) writeMolecule(m, stage int, suffix string) error {
	in, err := resp.NewInput(J.Config, stage, suffix)
	if err != nil {
		return err
	}
	M := J.Collection.Mols[m]
	links := red.Resolve(M, J.Config.Rule)
	return J.writeFile(resp.Files(stage, M.Name, suffix).Input, func(w io.Writer) error {
		return in.WriteMolecule(w, M, links)
	})
}

// writeCollection writes the control file for all the molecules.
func (J *Job) writeCollection(stage int, suffix string) error {
	in, err := resp.NewInput(J.Config, stage, suffix)
	if err != nil {
		return err
	}
	links := make([][]red.Links, J.Collection.Len())
	for m, M := range J.Collection.Mols {
		links[m] = red.Resolve(M, J.Config.Rule)
	}
	return J.writeFile(resp.Files(stage, resp.CollectionName, suffix).Input, func(w io.Writer) error {
		return in.WriteCollection(w, J.Collection, links)
	})
}

// WriteInputs writes the control files of a stage, both variants, for
// every molecule and, if there are several, for all of them together.
func (J *Job) WriteInputs(stage int) error {
	for _, suffix := range []string{resp.Plain, resp.Small} {
		for m := range J.Collection.Mols {
			if err := J.writeMolecule(m, stage, suffix); err != nil {
				return red.ErrDecorate(err, "WriteInputs")
			}
		}
		if J.combined() {
			if err := J.writeCollection(stage, suffix); err != nil {
				return red.ErrDecorate(err, "WriteInputs")
			}
		}
	}
	return nil
}

// stages writes and runs the 2 stages, both variants, of the fit name.
func (J *Job) stages(ctx context.Context, name string, write func(stage int, suffix string) error) error {
	for stage := 1; stage <= 2; stage++ {
		for _, suffix := range []string{resp.Plain, resp.Small} {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := write(stage, suffix); err != nil {
				return err
			}
			J.Log.Debug("running resp", logging.String("fit", name), logging.Int("stage", stage), logging.String("suffix", suffix))
			if err := J.Runner.Run(ctx, stage, name, suffix); err != nil {
				return red.ErrDecorate(err, "stages")
			}
		}
	}
	if !J.KeepFiles {
		J.clean(name)
	}
	return nil
}

// clean removes the scratch files resp leaves for the fit name.
func (J *Job) clean(name string) {
	for stage := 1; stage <= 2; stage++ {
		for _, suffix := range []string{resp.Plain, resp.Small} {
			f := resp.Files(stage, name, suffix)
			for _, v := range []string{f.Qwts, f.Esout} {
				if err := os.Remove(J.path(v)); err != nil && !errors.Is(err, os.ErrNotExist) {
					J.Log.Warn("can't remove scratch file", logging.String("file", v), logging.Err(err))
				}
			}
		}
	}
}

// punch returns the name of the punch file with the final charges of the
// fit name: the constrained variant if there are constraints.
func punch(name string, constrained bool) string {
	suffix := resp.Plain
	if constrained {
		suffix = resp.Small
	}
	return resp.Files(2, name, suffix).Punch
}

func (J *Job) result(M *red.Molecule, raw []float64, combined bool) (Result, error) {
	ch, err := resp.MoleculeCharges(M, raw, J.Config.Averaging)
	if err != nil {
		return Result{}, err
	}
	R := Result{Molecule: M.Name, Combined: combined, Charges: ch, Summary: resp.Summarize(ch), NetCharge: M.Charge}
	if d := R.Deviation(); math.Abs(d) > ChargeTolerance {
		J.Log.Warn("the charges don't add up to the net charge",
			logging.String("molecule", M.Name),
			logging.Float64("total", R.Summary.Total),
			logging.Int("net_charge", M.Charge),
			logging.Bool("combined", combined))
	}
	return R, nil
}

// fitMolecule runs the whole fit of the m-th molecule.
func (J *Job) fitMolecule(ctx context.Context, m int) (Result, error) {
	M := J.Collection.Mols[m]
	err := J.stages(ctx, M.Name, func(stage int, suffix string) error {
		return J.writeMolecule(m, stage, suffix)
	})
	if err != nil {
		return Result{}, err
	}
	raw, err := resp.ReadPunchFile(J.path(punch(M.Name, len(M.Intra) > 0)))
	if err != nil {
		return Result{}, err
	}
	return J.result(M, raw, false)
}

// fitCollection runs the fit of all the molecules together, and splits
// the charges read among them.
func (J *Job) fitCollection(ctx context.Context) ([]Result, error) {
	err := J.stages(ctx, resp.CollectionName, J.writeCollection)
	if err != nil {
		return nil, err
	}
	raw, err := resp.ReadPunchFile(J.path(punch(resp.CollectionName, J.Collection.Constrained())))
	if err != nil {
		return nil, err
	}
	if want := J.Collection.TotalAtoms(); len(raw) != want {
		return nil, red.NewError(red.ErrFitJobFailed, "fitCollection", "%d charges read for %s, expected %d", len(raw), resp.CollectionName, want)
	}
	ret := make([]Result, 0, J.Collection.Len())
	start := 0
	for _, M := range J.Collection.Mols {
		end := start + M.Len()*M.NStructures()
		R, err := J.result(M, raw[start:end], true)
		if err != nil {
			return nil, err
		}
		ret = append(ret, R)
		start = end
	}
	return ret, nil
}

// Run runs the charge derivation. A molecule whose fit fails is skipped
// and the others go on. All the results obtained are returned, with the
// errors found, joined. Cancelling ctx stops the derivation.
func (J *Job) Run(ctx context.Context) ([]Result, error) {
	C := J.Collection
	J.Log.Info("starting charge derivation",
		logging.String("mode", J.Config.Mode.String()),
		logging.Int("molecules", C.Len()),
		logging.Int("structures", C.TotalStructures()))
	if err := J.MEP.Prepare(ctx, J.Dir, C); err != nil {
		return nil, red.ErrDecorate(err, "Run")
	}
	var results []Result
	var errs []error
	for m, M := range C.Mols {
		R, err := J.fitMolecule(ctx, m)
		if err != nil {
			if ctx.Err() != nil {
				return results, ctx.Err()
			}
			J.Log.Error("fit failed", logging.String("molecule", M.Name), logging.Err(err))
			errs = append(errs, fmt.Errorf("molecule %s: %w", M.Name, red.ErrDecorate(err, "Run")))
			continue
		}
		J.Log.Info("fit done", logging.String("molecule", M.Name), logging.Float64("total", R.Summary.Total))
		results = append(results, R)
	}
	if J.combined() {
		R, err := J.fitCollection(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return results, ctx.Err()
			}
			J.Log.Error("combined fit failed", logging.Err(err))
			errs = append(errs, fmt.Errorf("fit of all molecules: %w", red.ErrDecorate(err, "Run")))
		} else {
			results = append(results, R...)
		}
	}
	return results, errors.Join(errs...)
}
