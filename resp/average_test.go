/*
 * average_test.go, part of goRED.
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
	"testing"

	"github.com/rmera/gored"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAverageByEquivalence(Te *testing.T) {
	av, err := AverageByEquivalence([]float64{0.50, 0.52, 0.30}, []string{"H1", "H1", "O2"})
	require.NoError(Te, err)
	require.Len(Te, av, 3)
	want := []Averaged{{1, 0.51}, {1, 0.51}, {3, 0.30}}
	for i, w := range want {
		assert.Equal(Te, w.Serial, av[i].Serial)
		assert.InDelta(Te, w.Charge, av[i].Charge, 1e-12)
	}
	_, err = AverageByEquivalence([]float64{0.1}, []string{"H1", "H1"})
	assert.ErrorIs(Te, err, red.ErrFitJobFailed)
}

func methanol(t *testing.T, structures int) *red.Molecule {
	t.Helper()
	mol, err := red.NewMolecule("MOH", []string{"C1", "H1", "H2", "H3", "O1", "H4"})
	require.NoError(t, err)
	for _, b := range [][2]int{{0, 1}, {0, 2}, {0, 3}, {0, 4}, {4, 5}} {
		require.NoError(t, mol.Bond(b[0], b[1]))
	}
	mol.Structures = structures
	return mol
}

func TestMoleculeCharges(Te *testing.T) {
	mol := methanol(Te, 2)
	raw := []float64{
		0.10, 0.01, 0.02, 0.03, -0.60, 0.40,
		0.12, 0.03, 0.04, 0.05, -0.62, 0.42,
	}
	ch, err := MoleculeCharges(mol, raw, red.AverageEquivalent)
	require.NoError(Te, err)
	require.Len(Te, ch, 6)
	assert.InDelta(Te, 0.11, ch[0].Value, 1e-12)
	for i := 1; i < 4; i++ {
		assert.InDelta(Te, 0.03, ch[i].Value, 1e-12)
		assert.Equal(Te, 2, ch[i].Serial)
		assert.Equal(Te, "H1", ch[i].Label)
	}
	assert.Equal(Te, "O2", ch[4].Label)
	assert.Equal(Te, 5, ch[4].Serial)
	assert.Equal(Te, "H4", ch[5].Name)
	assert.InDelta(Te, -0.61, ch[4].Value, 1e-12)
	s := Summarize(ch)
	assert.InDelta(Te, 0.11+3*0.03-0.61+0.41, s.Total, 1e-12)
	assert.InDelta(Te, -0.61, s.Min, 1e-12)

	//each atom on its own
	ch, err = MoleculeCharges(mol, raw, red.AverageStructures)
	require.NoError(Te, err)
	assert.InDelta(Te, 0.02, ch[1].Value, 1e-12)
	assert.InDelta(Te, 0.04, ch[3].Value, 1e-12)
	assert.Equal(Te, 4, ch[3].Serial)

	_, err = MoleculeCharges(mol, raw[:6], red.AverageEquivalent)
	assert.ErrorIs(Te, err, red.ErrFitJobFailed)
}

func TestMoleculeChargesConstrained(Te *testing.T) {
	mol := methanol(Te, 1)
	require.NoError(Te, mol.AddIntraConstraint(red.IntraConstraint{Charge: 0, Atoms: []int{1, 2}, Keep: false}))
	raw := []float64{0.10, 0.01, 0.02, 0.03, -0.60, 0.40}
	ch, err := MoleculeCharges(mol, raw, red.AverageEquivalent)
	require.NoError(Te, err)
	//atom 2 leaves its class, 3 and 4 are averaged together.
	assert.InDelta(Te, 0.01, ch[1].Value, 1e-12)
	assert.Equal(Te, 2, ch[1].Serial)
	assert.InDelta(Te, 0.025, ch[2].Value, 1e-12)
	assert.Equal(Te, 3, ch[2].Serial)
	assert.Equal(Te, 3, ch[3].Serial)
	assert.True(Te, ch[0].Removed)
	assert.True(Te, ch[1].Removed)
	assert.False(Te, ch[2].Removed)
}
