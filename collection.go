/*
 * collection.go, part of goRED.
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
	"strconv"
	"strings"
)

// InterConstraint asks that the charges of a subset of the atoms of
// one molecule plus a subset of the atoms of another sum to Charge.
type InterConstraint struct {
	Charge float64
	Mols   [2]int   //0-based indexes in the collection
	Atoms  [2][]int //1-based atom indexes, one slice per molecule
}

// NAtoms returns the total number of atoms in the constraint.
func (I InterConstraint) NAtoms() int {
	return len(I.Atoms[0]) + len(I.Atoms[1])
}

// InterEquivalence asks that, for every atom index in Atoms, the atoms
// with that index in all the molecules in Mols share one charge.
type InterEquivalence struct {
	Mols  []int //0-based indexes in the collection
	Atoms []int //1-based
}

// Collection is an ordered set of molecules that can be fitted together,
// plus the declarations that span more than one of them.
type Collection struct {
	Mols       []*Molecule
	Inter      []InterConstraint
	Equiv      []InterEquivalence
	renumbered bool
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{Mols: make([]*Molecule, 0, 2)}
}

// Len returns the number of molecules.
func (C *Collection) Len() int {
	return len(C.Mols)
}

func (C *Collection) hasName(name string) bool {
	for _, v := range C.Mols {
		if v.Name == name {
			return true
		}
	}
	return false
}

// Add appends mol to the collection. If the name of mol is already used,
// a number is appended to it (name2, name3, ...) so names stay unique.
func (C *Collection) Add(mol *Molecule) {
	base := mol.Name
	for n := 2; C.hasName(mol.Name); n++ {
		mol.Name = base + strconv.Itoa(n)
	}
	C.Mols = append(C.Mols, mol)
}

// Index resolves a molecule reference, either a 1-based number or a name,
// to a 0-based index in the collection.
func (C *Collection) Index(ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > C.Len() {
			return -1, NewError(ErrInvalidConstraintReference, "Index", "molecule %d out of range [1, %d]", n, C.Len())
		}
		return n - 1, nil
	}
	found := -1
	for i, v := range C.Mols {
		if v.Name != ref {
			continue
		}
		if found >= 0 {
			return -1, NewError(ErrAmbiguousMoleculeReference, "Index", "molecule name %q is not unique", ref)
		}
		found = i
	}
	if found < 0 {
		return -1, NewError(ErrAmbiguousMoleculeReference, "Index", "no molecule named %q", ref)
	}
	return found, nil
}

func (C *Collection) checkAtoms(mol int, atoms []int, caller string) error {
	if mol < 0 || mol >= C.Len() {
		return NewError(ErrInvalidConstraintReference, caller, "molecule %d not in the collection (%d molecules)", mol+1, C.Len())
	}
	M := C.Mols[mol]
	if len(atoms) == 0 {
		return NewError(ErrInvalidConstraintReference, caller, "no atoms given for molecule %s", M.Name)
	}
	for _, v := range atoms {
		if v < 1 || v > M.Len() {
			return NewError(ErrInvalidConstraintReference, caller, "atom %d out of range [1, %d] in molecule %s", v, M.Len(), M.Name)
		}
	}
	return nil
}

// AddInterConstraint validates and adds an inter-molecular charge constraint.
func (C *Collection) AddInterConstraint(ic InterConstraint) error {
	if ic.Mols[0] == ic.Mols[1] {
		return NewError(ErrInvalidConstraintReference, "AddInterConstraint", "inter-molecular constraint needs 2 different molecules, got %d twice", ic.Mols[0]+1)
	}
	for i := 0; i < 2; i++ {
		if err := C.checkAtoms(ic.Mols[i], ic.Atoms[i], "AddInterConstraint"); err != nil {
			return err
		}
	}
	C.Inter = append(C.Inter, ic)
	return nil
}

// AddInterEquivalence validates and adds an inter-molecular equivalence.
func (C *Collection) AddInterEquivalence(eq InterEquivalence) error {
	if len(eq.Mols) < 2 {
		return NewError(ErrInvalidConstraintReference, "AddInterEquivalence", "inter-molecular equivalence needs at least 2 molecules, got %d", len(eq.Mols))
	}
	seen := make(map[int]bool, len(eq.Mols))
	for _, m := range eq.Mols {
		if seen[m] {
			return NewError(ErrInvalidConstraintReference, "AddInterEquivalence", "molecule %d given twice", m+1)
		}
		seen[m] = true
		if err := C.checkAtoms(m, eq.Atoms, "AddInterEquivalence"); err != nil {
			return err
		}
	}
	C.Equiv = append(C.Equiv, eq)
	return nil
}

// RenumberEquivalent makes the atoms declared equivalent across molecules
// share one heavy index. When the molecules of a group disagree on the
// index of an atom, all of them get one more than the largest heavy atom
// count in the group, and the counters of the molecules are set to it.
// It must run once, after all molecules and declarations are loaded and
// before any equivalence is resolved. Later calls do nothing.
func (C *Collection) RenumberEquivalent() {
	if C.renumbered {
		return
	}
	C.renumbered = true
	for _, eq := range C.Equiv {
		for _, a := range eq.Atoms {
			i := a - 1
			first := C.Mols[eq.Mols[0]].Atoms[i].HeavyIndex
			same := true
			for _, m := range eq.Mols[1:] {
				if C.Mols[m].Atoms[i].HeavyIndex != first {
					same = false
					break
				}
			}
			if same {
				continue
			}
			max := 0
			for _, m := range eq.Mols {
				if n := C.Mols[m].nheavy; n > max {
					max = n
				}
			}
			newn := max + 1
			for _, m := range eq.Mols {
				C.Mols[m].setHeavyIndex(i, newn)
				C.Mols[m].nheavy = newn
			}
		}
	}
}

// RefStructure returns the 1-based number, in a file with all the
// molecules of the collection, of the first structure of the m-th
// (0-based) molecule.
func (C *Collection) RefStructure(m int) int {
	ref := 1
	for _, v := range C.Mols[:m] {
		ref += v.NStructures()
	}
	return ref
}

// TotalStructures returns the number of structures of all molecules.
func (C *Collection) TotalStructures() int {
	n := 0
	for _, v := range C.Mols {
		n += v.NStructures()
	}
	return n
}

// Constrained returns true if any molecule has intra-molecular constraints.
func (C *Collection) Constrained() bool {
	for _, v := range C.Mols {
		if len(v.Intra) > 0 {
			return true
		}
	}
	return false
}

// TotalAtoms returns the number of atoms in a file with all the structures
// of all the molecules of the collection.
func (C *Collection) TotalAtoms() int {
	n := 0
	for _, v := range C.Mols {
		n += v.Len() * v.NStructures()
	}
	return n
}
