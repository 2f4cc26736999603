/*
 * equivalence_test.go, part of goRED.
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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func links(a, b int) Links {
	return Links{Plain: [2]int{a, b}, Small: [2]int{a, b}}
}

func TestFirstMatch(Te *testing.T) {
	labels := []string{"C1", "H1", "H1", "O2", "H1"}
	assert.Equal(Te, 0, firstMatch(labels, 0))
	assert.Equal(Te, 0, firstMatch(labels, 1))
	assert.Equal(Te, 2, firstMatch(labels, 2))
	assert.Equal(Te, 0, firstMatch(labels, 3))
	//always the first one, not the closest
	assert.Equal(Te, 2, firstMatch(labels, 4))
}

func TestResolveStage1(Te *testing.T) {
	mol := ethanol(Te)
	L := Resolve(mol, Stage1Rule)
	require.Len(Te, L, mol.Len())
	want := []Links{links(0, 0), links(0, 0), links(0, 2), links(0, 2), links(0, 0), links(0, 0), links(0, 6), links(0, 0), links(0, 0)}
	assert.Equal(Te, want, L)
	assert.Equal(Te, 2, L[3].Get(2, false))
	assert.Equal(Te, 0, L[3].Get(1, true))
}

func TestResolveNonTerminal(Te *testing.T) {
	//an NH2 group is not terminal in the "T" sense.
	mol, err := NewMolecule("AMN", []string{"N1", "H1", "H2", "C2", "H3"})
	require.NoError(Te, err)
	require.NoError(Te, mol.Bond(0, 1))
	require.NoError(Te, mol.Bond(0, 2))
	require.NoError(Te, mol.Bond(3, 4))
	L := Resolve(mol, Stage1Rule)
	assert.Equal(Te, links(2, Fixed), L[2])
	L = Resolve(mol, Stage2Rule)
	assert.Equal(Te, links(2, Fixed), L[2])
	assert.Equal(Te, links(0, 0), L[4])
}

func TestResolveStage2Terminal(Te *testing.T) {
	mol := ethanol(Te)
	L := Resolve(mol, Stage2Rule)
	assert.Equal(Te, links(2, 2), L[2])
	assert.Equal(Te, links(6, 6), L[6])
	assert.Equal(Te, links(0, 0), L[7])
}

func TestResolveESP(Te *testing.T) {
	mol, err := NewMolecule("AMN", []string{"N1", "H1", "H2", "H3"})
	require.NoError(Te, err)
	for i := 1; i < 4; i++ {
		require.NoError(Te, mol.Bond(0, i))
	}
	//no constraint, nothing is linked
	L := Resolve(mol, ESPRule)
	for i := range L {
		assert.Equal(Te, links(0, 0), L[i], "atom %d", i+1)
	}
	require.NoError(Te, mol.AddIntraConstraint(IntraConstraint{Charge: 0.5, Atoms: []int{2, 4}}))
	L = Resolve(mol, ESPRule)
	assert.Equal(Te, Links{Plain: [2]int{0, 0}, Small: [2]int{0, Fixed}}, L[1])
	assert.Equal(Te, links(0, 2), L[2])
	assert.Equal(Te, Links{Plain: [2]int{0, Fixed}, Small: [2]int{0, Fixed}}, L[3])
}

func TestConstraintOverride(Te *testing.T) {
	for _, rule := range []LinkRule{Stage1Rule, Stage2Rule, ESPRule} {
		mol := ethanol(Te)
		base := Resolve(mol, rule)
		require.NoError(Te, mol.AddIntraConstraint(IntraConstraint{Charge: 0.1, Atoms: []int{3, 8}, Keep: true}))
		L := Resolve(mol, rule)
		for _, i := range []int{2, 7} {
			assert.Equal(Te, Fixed, L[i].Small[1], "rule %d atom %d", rule, i+1)
			assert.Equal(Te, L[i].Plain[0], L[i].Small[0])
		}
		//untouched atoms keep their links
		for _, i := range []int{0, 1, 4, 5} {
			assert.Equal(Te, base[i], L[i], "rule %d atom %d", rule, i+1)
		}
	}
}

func TestCollectionNames(Te *testing.T) {
	C := NewCollection()
	for i := 0; i < 3; i++ {
		mol, err := NewMolecule("MOL", []string{"C1"})
		require.NoError(Te, err)
		C.Add(mol)
	}
	assert.Equal(Te, "MOL", C.Mols[0].Name)
	assert.Equal(Te, "MOL2", C.Mols[1].Name)
	assert.Equal(Te, "MOL3", C.Mols[2].Name)
	i, err := C.Index("MOL2")
	require.NoError(Te, err)
	assert.Equal(Te, 1, i)
	i, err = C.Index(" 3 ")
	require.NoError(Te, err)
	assert.Equal(Te, 2, i)
	_, err = C.Index("4")
	assert.ErrorIs(Te, err, ErrInvalidConstraintReference)
	_, err = C.Index("WAT")
	assert.ErrorIs(Te, err, ErrAmbiguousMoleculeReference)
	C.Mols[2].Name = "MOL"
	_, err = C.Index("MOL")
	assert.ErrorIs(Te, err, ErrAmbiguousMoleculeReference)
}

func TestCollectionDeclarations(Te *testing.T) {
	C := NewCollection()
	C.Add(ethanol(Te))
	C.Add(ethanol(Te))
	require.NoError(Te, C.AddInterConstraint(InterConstraint{Charge: 0, Mols: [2]int{0, 1}, Atoms: [2][]int{{9}, {8, 9}}}))
	assert.Equal(Te, 3, C.Inter[0].NAtoms())
	assert.ErrorIs(Te, C.AddInterConstraint(InterConstraint{Mols: [2]int{1, 1}, Atoms: [2][]int{{1}, {2}}}), ErrInvalidConstraintReference)
	assert.ErrorIs(Te, C.AddInterConstraint(InterConstraint{Mols: [2]int{0, 2}, Atoms: [2][]int{{1}, {2}}}), ErrInvalidConstraintReference)
	assert.ErrorIs(Te, C.AddInterConstraint(InterConstraint{Mols: [2]int{0, 1}, Atoms: [2][]int{{1}, {10}}}), ErrInvalidConstraintReference)
	require.NoError(Te, C.AddInterEquivalence(InterEquivalence{Mols: []int{0, 1}, Atoms: []int{1, 5}}))
	assert.ErrorIs(Te, C.AddInterEquivalence(InterEquivalence{Mols: []int{0}, Atoms: []int{1}}), ErrInvalidConstraintReference)
	assert.ErrorIs(Te, C.AddInterEquivalence(InterEquivalence{Mols: []int{0, 0}, Atoms: []int{1}}), ErrInvalidConstraintReference)
	assert.Len(Te, C.Inter, 1)
	assert.Len(Te, C.Equiv, 1)
	assert.False(Te, C.Constrained())
}

func TestRenumberEquivalent(Te *testing.T) {
	A, err := NewMolecule("A", []string{"C1", "H1", "H2", "O1"})
	require.NoError(Te, err)
	require.NoError(Te, A.Bond(0, 1))
	require.NoError(Te, A.Bond(0, 2))
	B, err := NewMolecule("B", []string{"C1", "C2", "C3", "O4", "H4"})
	require.NoError(Te, err)
	require.NoError(Te, B.Bond(3, 4))
	require.Equal(Te, 2, A.Atom(3).HeavyIndex)
	require.Equal(Te, 4, B.Atom(3).HeavyIndex)
	C := NewCollection()
	C.Add(A)
	C.Add(B)
	require.NoError(Te, C.AddInterEquivalence(InterEquivalence{Mols: []int{0, 1}, Atoms: []int{1, 4}}))
	C.RenumberEquivalent()
	//atom 1 agreed already
	assert.Equal(Te, 1, A.Atom(0).HeavyIndex)
	assert.Equal(Te, 1, B.Atom(0).HeavyIndex)
	assert.Equal(Te, 5, A.Atom(3).HeavyIndex)
	assert.Equal(Te, 5, B.Atom(3).HeavyIndex)
	assert.Equal(Te, 5, B.Atom(4).HeavyIndex)
	assert.Equal(Te, 5, A.NHeavy())
	assert.Equal(Te, 5, B.NHeavy())
	assert.Equal(Te, "O5", A.Atom(3).FullLabel())
	C.RenumberEquivalent()
	assert.Equal(Te, 5, A.Atom(3).HeavyIndex)
}

func TestRefStructure(Te *testing.T) {
	C := NewCollection()
	for _, s := range []int{2, 0, 3} {
		mol, err := NewMolecule("M", []string{"C1"})
		require.NoError(Te, err)
		mol.Structures = s
		C.Add(mol)
	}
	assert.Equal(Te, 1, C.RefStructure(0))
	assert.Equal(Te, 3, C.RefStructure(1))
	assert.Equal(Te, 4, C.RefStructure(2))
	assert.Equal(Te, 6, C.TotalStructures())
}

func TestTotalAtoms(Te *testing.T) {
	C := NewCollection()
	C.Add(ethanol(Te))
	mol := ethanol(Te)
	mol.Structures = 3
	C.Add(mol)
	assert.Equal(Te, 9+27, C.TotalAtoms())
}
