/*
 * files.go, part of goRED.
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

package resp

import "fmt"

// Suffixes of the two variants of every control file.
const (
	Plain = ""    //no intra-molecular constraints
	Small = ".sm" //with intra-molecular constraints
)

// CollectionName is the name used for the files of a fit of all the
// molecules of a collection together.
const CollectionName = "mm"

// FileSet contains the names of the files resp reads and writes for one
// stage of one fit.
type FileSet struct {
	Input  string
	Output string
	Punch  string
	Espot  string //the electrostatic potential, the same for all the stages
	Qwts   string
	Esout  string
	QIn    string //charges from the previous stage
	QOut   string
}

// Files returns the file names for a stage, molecule name and suffix.
func Files(stage int, name, suffix string) FileSet {
	f := func(prefix string, s int) string {
		return fmt.Sprintf("%s%d_%s%s", prefix, s, name, suffix)
	}
	return FileSet{
		Input:  f("input", stage),
		Output: f("output", stage),
		Punch:  f("punch", stage),
		Espot:  "espot_" + name,
		Qwts:   f("qwts", stage),
		Esout:  f("esout", stage),
		QIn:    f("qout", stage-1),
		QOut:   f("qout", stage),
	}
}
