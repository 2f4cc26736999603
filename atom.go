/*
 * atom.go, part of goRED.
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
)

// Element is the result of resolving an atom name.
type Element struct {
	Symbol string
	Number int //atomic number
}

// IsHydrogen returns true if the element is hydrogen.
func (E Element) IsHydrogen() bool {
	return E.Number == 1
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// ResolveElement obtains the element for an atom name, from the first
// run of letters in the name. The first two letters are tried as written
// (so "Cl1" is chlorine but "CL1" is carbon, as in most force field names)
// and then the first letter alone.
func ResolveElement(name string) (Element, error) {
	start := -1
	for i := 0; i < len(name); i++ {
		if isLetter(name[i]) {
			start = i
			break
		}
	}
	if start < 0 {
		return Element{}, NewError(ErrInvalidAtomName, "ResolveElement", "there is no letter in atom %q", name)
	}
	end := start
	for end < len(name) && isLetter(name[end]) {
		end++
	}
	run := name[start:end]
	if len(run) >= 2 {
		if z, ok := symbolNumber[run[:2]]; ok {
			return Element{Symbol: run[:2], Number: z}, nil
		}
	}
	first := run[:1]
	if first[0] >= 'a' {
		first = string(first[0] - 'a' + 'A')
	}
	if z, ok := symbolNumber[first]; ok {
		return Element{Symbol: first, Number: z}, nil
	}
	return Element{}, NewError(ErrInvalidAtomName, "ResolveElement", "no element symbol matches atom %q", name)
}

// Atom is a value record owned by a Molecule. The hydrogens bonded to a
// heavy atom are kept as indexes into the owning molecule's atoms.
type Atom struct {
	Name    string
	Element Element
	//1-based number among the heavy atoms of the molecule. Hydrogens
	//carry the number of the heavy atom they are bonded to, or 0.
	HeavyIndex int
	//Name used to group atoms: the element symbol, or "CT" for a carbon
	//with 2 or more hydrogens.
	RespLabel string
	hydrogens []int
}

// IsHeavy returns true for anything that is not a hydrogen.
func (A *Atom) IsHeavy() bool {
	return !A.Element.IsHydrogen()
}

// FullLabel is the key for equivalence within a molecule: the resp label
// followed by the heavy index, e.g. "H5" or "CT3".
func (A *Atom) FullLabel() string {
	return A.RespLabel + strconv.Itoa(A.HeavyIndex)
}

// NHydrogens returns the number of hydrogens bonded to the atom.
func (A *Atom) NHydrogens() int {
	return len(A.hydrogens)
}

// Hydrogens returns the 0-based indexes, in the owning molecule,
// of the hydrogens bonded to A.
func (A *Atom) Hydrogens() []int {
	ret := make([]int, len(A.hydrogens))
	copy(ret, A.hydrogens)
	return ret
}
