/*
 * average.go, part of goRED.
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

import (
	"strconv"

	"github.com/rmera/gored"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Averaged is a charge after averaging over its equivalence class.
type Averaged struct {
	Serial int //1-based position of the first member of the class
	Charge float64
}

// AverageByEquivalence replaces every charge by the mean of the charges
// with the same label, and reports it under the position of the first
// atom with that label.
func AverageByEquivalence(charges []float64, labels []string) ([]Averaged, error) {
	if len(charges) != len(labels) {
		return nil, red.NewError(red.ErrFitJobFailed, "AverageByEquivalence", "%d charges for %d atoms", len(charges), len(labels))
	}
	first := make(map[string]int, len(labels))
	groups := make(map[string][]float64, len(labels))
	for i, l := range labels {
		if _, ok := first[l]; !ok {
			first[l] = i + 1
		}
		groups[l] = append(groups[l], charges[i])
	}
	means := make(map[string]float64, len(groups))
	for l, v := range groups {
		means[l] = stat.Mean(v, nil)
	}
	ret := make([]Averaged, len(labels))
	for i, l := range labels {
		ret[i] = Averaged{Serial: first[l], Charge: means[l]}
	}
	return ret, nil
}

// Charge is the final charge of one atom of a molecule.
type Charge struct {
	Atom   int //1-based
	Name   string
	Label  string //full label
	Serial int    //first atom sharing the charge
	Value  float64
	//The atom is in an intra-molecular constraint flagged for removal
	//from the final fragment.
	Removed bool
}

// MoleculeCharges averages the raw charges fitted for all the structures
// of M, in order, and returns one Charge per atom. With AverageEquivalent,
// the charges are averaged over the atoms with the same full label in all
// structures, except for the atoms in intra-molecular constraints, which
// are only averaged over their own copies. With AverageStructures every
// atom is only averaged over its copies.
func MoleculeCharges(M *red.Molecule, raw []float64, rule red.AveragingRule) ([]Charge, error) {
	n := M.Len()
	S := M.NStructures()
	if len(raw) != n*S {
		return nil, red.NewError(red.ErrFitJobFailed, "MoleculeCharges", "molecule %s: %d charges read, expected %d atoms times %d structures", M.Name, len(raw), n, S)
	}
	labels := M.FullLabels()
	keys := make([]string, n)
	for i := range keys {
		if rule == red.AverageStructures || M.Constrained(i) {
			keys[i] = "#" + strconv.Itoa(i)
		} else {
			keys[i] = labels[i]
		}
	}
	all := make([]string, 0, n*S)
	for s := 0; s < S; s++ {
		all = append(all, keys...)
	}
	av, err := AverageByEquivalence(raw, all)
	if err != nil {
		return nil, red.ErrDecorate(err, "MoleculeCharges")
	}
	removed := make(map[int]bool)
	for _, c := range M.Intra {
		if c.Keep {
			continue
		}
		for _, a := range c.Atoms {
			removed[a] = true
		}
	}
	ret := make([]Charge, n)
	for i := range ret {
		ret[i] = Charge{
			Atom:    i + 1,
			Name:    M.Atoms[i].Name,
			Label:   labels[i],
			Serial:  av[i].Serial,
			Value:   av[i].Charge,
			Removed: removed[i+1],
		}
	}
	return ret, nil
}

// Values returns the charge values, in order.
func Values(charges []Charge) []float64 {
	ret := make([]float64, len(charges))
	for i, v := range charges {
		ret[i] = v.Value
	}
	return ret
}

// Summary has a few numbers that help spot a bad fit.
type Summary struct {
	Total float64
	Min   float64
	Max   float64
}

// Summarize returns the summary of a set of charges. It panics if
// charges is empty.
func Summarize(charges []Charge) Summary {
	v := Values(charges)
	return Summary{Total: floats.Sum(v), Min: floats.Min(v), Max: floats.Max(v)}
}
