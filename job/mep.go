/*
 * mep.go, part of goRED.
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

package job

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/rmera/gored"
	"github.com/rmera/gored/resp"
)

// MEPProvider makes the molecular electrostatic potential of every
// molecule of a collection available to resp, in the espot files
// (see resp.Files) of the working directory. For collections of more
// than one molecule it also provides the potential for the fit of all
// the molecules together, named resp.CollectionName.
type MEPProvider interface {
	Prepare(ctx context.Context, dir string, C *red.Collection) error
}

// ExistingESP is the MEPProvider for potentials computed beforehand: it
// checks that the espot file of every molecule is there, and builds the
// one for all the molecules by joining them in order.
type ExistingESP struct{}

func espotName(dir, name string) string {
	return filepath.Join(dir, resp.Files(1, name, resp.Plain).Espot)
}

// Prepare checks the espot files and writes the combined one.
func (ExistingESP) Prepare(ctx context.Context, dir string, C *red.Collection) error {
	for _, M := range C.Mols {
		if _, err := os.Stat(espotName(dir, M.Name)); err != nil {
			return red.WrapError(red.ErrFitJobFailed, err, "Prepare", "no electrostatic potential for %s", M.Name)
		}
	}
	if C.Len() < 2 {
		return nil
	}
	out, err := os.Create(espotName(dir, resp.CollectionName))
	if err != nil {
		return red.WrapError(red.ErrFitJobFailed, err, "Prepare", "can't write the electrostatic potential of all the molecules")
	}
	for _, M := range C.Mols {
		if err := ctx.Err(); err != nil {
			out.Close()
			return err
		}
		if err := appendFile(out, espotName(dir, M.Name)); err != nil {
			out.Close()
			return red.WrapError(red.ErrFitJobFailed, err, "Prepare", "joining the electrostatic potential of %s", M.Name)
		}
	}
	if err := out.Close(); err != nil {
		return red.WrapError(red.ErrFitJobFailed, err, "Prepare", "can't write the electrostatic potential of all the molecules")
	}
	return nil
}

func appendFile(w io.Writer, name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(w, f)
	return err
}
