/*
 * molecule.go, part of goRED.
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

package red

import (
	"errors"
)

/**Note: Atom, Len and the other accessors here panic on out-of-range indexes,
 * as that can only be a programming error. Indexes coming from user input
 * are checked and reported as errors.**/

// IntraConstraint asks that the charges of a set of atoms in one molecule
// sum to Charge.
type IntraConstraint struct {
	Charge float64
	Atoms  []int //1-based
	//If true (K) the atoms stay in their equivalence classes, if false (R)
	//the differences between them are free.
	Keep bool
}

// Has returns true if the 1-based atom index i is in the constraint.
func (I IntraConstraint) Has(i int) bool {
	for _, v := range I.Atoms {
		if v == i {
			return true
		}
	}
	return false
}

// Molecule is one molecule, with all the structures (conformations times
// geometric transforms) generated for it. Only the number of structures
// matters here, the coordinates are kept by whoever reads them.
type Molecule struct {
	Name         string
	Charge       int
	Multiplicity int
	//Number of structures submitted for the molecule. 0 is taken as 1.
	Structures int
	Atoms      []Atom
	Intra      []IntraConstraint
	nheavy     int
	numbered   bool
}

// NewMolecule builds a molecule from atom names, in two phases: first the
// raw records are built, classifying every atom, then the heavy atoms are
// numbered. All the atoms that can't be classified are reported, each as an
// ErrChemistry error naming the atom.
func NewMolecule(name string, atomnames []string) (*Molecule, error) {
	M := &Molecule{Name: name, Multiplicity: 1, Structures: 1}
	M.Atoms = make([]Atom, len(atomnames))
	var errs []error
	for i, v := range atomnames {
		el, err := ResolveElement(v)
		if err != nil {
			errs = append(errs, WrapError(ErrChemistry, err, "NewMolecule", "molecule %s: can't classify atom %d (%s)", name, i+1, v))
			continue
		}
		M.Atoms[i] = Atom{Name: v, Element: el, RespLabel: el.Symbol}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	M.AssignNumbering()
	return M, nil
}

// AssignNumbering gives the i-th heavy atom, in creation order, the heavy
// index i. Hydrogens get 0 until they are bonded. It does nothing if the
// molecule was already numbered, as heavy indexes are never reassigned.
func (M *Molecule) AssignNumbering() {
	if M.numbered {
		return
	}
	n := 0
	for i := range M.Atoms {
		at := &M.Atoms[i]
		if at.IsHeavy() {
			n++
			at.HeavyIndex = n
		} else {
			at.HeavyIndex = 0
		}
	}
	M.nheavy = n
	M.numbered = true
}

// Len returns the number of atoms.
func (M *Molecule) Len() int {
	return len(M.Atoms)
}

// Atom returns a pointer to the i-th (0-based) atom. Panics if out of range.
func (M *Molecule) Atom(i int) *Atom {
	if i < 0 || i >= len(M.Atoms) {
		panic("Molecule: Requested Atom out of bounds")
	}
	return &M.Atoms[i]
}

// NHeavy returns the current value of the heavy atom counter.
func (M *Molecule) NHeavy() int {
	return M.nheavy
}

// NStructures returns the number of structures, at least 1.
func (M *Molecule) NStructures() int {
	if M.Structures < 1 {
		return 1
	}
	return M.Structures
}

// BondToHeavy bonds the hydrogen h to the heavy atom host (both 0-based).
// The hydrogen takes the heavy index of the host. A hydrogen that already
// has a heavy index is left alone, so bonds are never counted twice.
// A carbon becomes "CT" when its second hydrogen is added.
func (M *Molecule) BondToHeavy(h, host int) error {
	if h < 0 || h >= M.Len() || host < 0 || host >= M.Len() {
		return NewError(ErrChemistry, "BondToHeavy", "molecule %s: bond %d-%d out of range (%d atoms)", M.Name, h+1, host+1, M.Len())
	}
	H := &M.Atoms[h]
	Host := &M.Atoms[host]
	if H.IsHeavy() {
		return NewError(ErrChemistry, "BondToHeavy", "molecule %s: atom %d (%s) is not a hydrogen", M.Name, h+1, H.Name)
	}
	if !Host.IsHeavy() {
		return NewError(ErrChemistry, "BondToHeavy", "molecule %s: hydrogen %d (%s) bonded to hydrogen %d (%s)", M.Name, h+1, H.Name, host+1, Host.Name)
	}
	if H.HeavyIndex != 0 { //don't double count
		return nil
	}
	H.HeavyIndex = Host.HeavyIndex
	Host.hydrogens = append(Host.hydrogens, h)
	if len(Host.hydrogens) >= 2 && Host.Element.Symbol == "C" {
		Host.RespLabel = "CT"
	}
	return nil
}

// Bond registers a bond between the 0-based atoms i and j, as given by a
// topology. If one end is a hydrogen it is bonded to the other end.
// Bonds between heavy atoms and between hydrogens carry no information
// for the numbering and are ignored.
func (M *Molecule) Bond(i, j int) error {
	if i < 0 || i >= M.Len() || j < 0 || j >= M.Len() {
		return NewError(ErrChemistry, "Bond", "molecule %s: bond %d-%d out of range (%d atoms)", M.Name, i+1, j+1, M.Len())
	}
	a, b := &M.Atoms[i], &M.Atoms[j]
	switch {
	case !a.IsHeavy() && b.IsHeavy():
		return M.BondToHeavy(i, j)
	case a.IsHeavy() && !b.IsHeavy():
		return M.BondToHeavy(j, i)
	}
	return nil
}

// setHeavyIndex changes the heavy index of the i-th atom, and that of the
// hydrogens bonded to it.
func (M *Molecule) setHeavyIndex(i, n int) {
	at := &M.Atoms[i]
	at.HeavyIndex = n
	for _, h := range at.hydrogens {
		M.Atoms[h].HeavyIndex = n
	}
}

// AddIntraConstraint validates and adds an intra-molecular charge constraint.
func (M *Molecule) AddIntraConstraint(c IntraConstraint) error {
	if len(c.Atoms) == 0 {
		return NewError(ErrInvalidConstraintReference, "AddIntraConstraint", "molecule %s: constraint with no atoms", M.Name)
	}
	if len(c.Atoms) > M.Len() {
		return NewError(ErrInvalidConstraintReference, "AddIntraConstraint", "molecule %s: constraint has %d atoms, the molecule only %d", M.Name, len(c.Atoms), M.Len())
	}
	for _, v := range c.Atoms {
		if v < 1 || v > M.Len() {
			return NewError(ErrInvalidConstraintReference, "AddIntraConstraint", "molecule %s: atom %d out of range [1, %d]", M.Name, v, M.Len())
		}
	}
	atoms := make([]int, len(c.Atoms))
	copy(atoms, c.Atoms)
	c.Atoms = atoms
	M.Intra = append(M.Intra, c)
	return nil
}

// Constrained returns true if the 0-based atom i is in any intra-molecular
// constraint.
func (M *Molecule) Constrained(i int) bool {
	for _, c := range M.Intra {
		if c.Has(i + 1) {
			return true
		}
	}
	return false
}

// FullLabels returns the full label of every atom, in order.
func (M *Molecule) FullLabels() []string {
	ret := make([]string, M.Len())
	for i := range M.Atoms {
		ret[i] = M.Atoms[i].FullLabel()
	}
	return ret
}
