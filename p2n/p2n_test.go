/*
 * p2n_test.go, part of goRED.
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

package p2n

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/rmera/gored"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var mohNames = []string{"C1", "H1", "H2", "H3", "O1", "H4"}

func atomLine(i int, name string, x, y, z float64) string {
	return fmt.Sprintf("ATOM  %5d %-4s MOH A   1    %8.3f%8.3f%8.3f  1.00  0.00\n", i, name, x, y, z)
}

// mohP2N returns a methanol P2N file with nconf conformations and the
// given remarks.
func mohP2N(nconf int, remarks ...string) string {
	var b strings.Builder
	for _, v := range remarks {
		b.WriteString(v + "\n")
	}
	for c := 0; c < nconf; c++ {
		for i, n := range mohNames {
			b.WriteString(atomLine(i+1, n, float64(i), float64(c), -1.5))
		}
		b.WriteString("TER\n")
	}
	b.WriteString("END\n")
	return b.String()
}

var mohRemarks = []string{
	"REMARK",
	"REMARK TITLE MOH",
	"REMARK CHARGE-VALUE 0",
	"REMARK MULTIPLICITY-VALUE 1",
	"REMARK REORIENT 1 5 6 | 6 5 1",
	"REMARK INTRA-MCC 0.0 | 5 6 | R",
}

const mohITP = `; methanol
[ moleculetype ]
MOH   3

[ atoms ]
    1   CT   1   MOH   C1   1   0.1160  12.01
    2   H1   1   MOH   H1   1   0.0285   1.008

[ bonds ]
; ai aj funct
    1    2    1
    1    3    1   ; C-H
    1    4    1
#ifdef FLEXIBLE
    1    5    1
#endif
    5    6    1

[ angles ]
    2    1    3    1
`

func TestParseMolecule(Te *testing.T) {
	M, err := ParseMolecule(strings.NewReader(mohP2N(2, mohRemarks...)), "moh.pdb")
	require.NoError(Te, err)
	assert.Equal(Te, "MOH", M.Name)
	assert.Equal(Te, 0, M.Charge)
	assert.Equal(Te, 1, M.Multiplicity)
	assert.Equal(Te, 6, M.Len())
	assert.Equal(Te, 2, M.NConformations())
	require.Len(Te, M.Transforms, 2)
	assert.Equal(Te, Reorient, M.Transforms[1].Kind)
	assert.Equal(Te, [3]int{6, 5, 1}, M.Transforms[1].Atoms)
	assert.Equal(Te, 4, M.NStructures())
	r, c := M.Conformations[1].Dims()
	assert.Equal(Te, 6, r)
	assert.Equal(Te, 3, c)
	assert.InDelta(Te, 4.0, M.Conformations[1].At(4, 0), 1e-9)
	assert.InDelta(Te, 1.0, M.Conformations[1].At(4, 1), 1e-9)
	assert.InDelta(Te, -1.5, M.Conformations[0].At(2, 2), 1e-9)
	require.Len(Te, M.Intra, 1)
	assert.Equal(Te, []int{5, 6}, M.Intra[0].Atoms)
	assert.False(Te, M.Intra[0].Keep)
	assert.True(Te, M.Constrained(4))
}

func TestParseMoleculeRemarks(Te *testing.T) {
	M, err := ParseMolecule(strings.NewReader(mohP2N(1,
		"REMARK 2 CHARGE 5",
		"REMARK 6 CHARGE 1",
		"REMARK 7 MULTIPLICITY 2",
		"REMARK TRANSLATE 1.0 0 0 | 0 2.5 0",
		"REMARK ROTATE 1 2 3",
	)), "moh.pdb")
	require.NoError(Te, err)
	assert.Equal(Te, DefaultName, M.Name)
	assert.Equal(Te, 1, M.Charge)
	assert.Equal(Te, 2, M.Multiplicity)
	require.Len(Te, M.Transforms, 3)
	assert.Equal(Te, [3]float64{0, 2.5, 0}, M.Transforms[1].Vector)
	assert.Equal(Te, Rotate, M.Transforms[2].Kind)
	assert.Equal(Te, 3, M.NStructures())
	//the TITLE record is also taken
	M, err = ParseMolecule(strings.NewReader("TITLE     ETH\n"+mohP2N(1)), "eth.pdb")
	require.NoError(Te, err)
	assert.Equal(Te, "ETH", M.Name)
	assert.Equal(Te, 1, M.NStructures())
}

func TestParseMoleculeErrors(Te *testing.T) {
	swapped := strings.Replace(mohP2N(2), atomLine(1, "C1", 0, 1, -1.5), atomLine(1, "O1", 0, 1, -1.5), 1)
	short := strings.TrimSuffix(mohP2N(1), "END\n") + atomLine(1, "C1", 0, 0, -1.5) + "TER\nEND\n"
	cases := []struct {
		name string
		text string
		kind error
		msg  string
	}{
		{"charge", mohP2N(1, "REMARK CHARGE one"), red.ErrMalformedInput, "line 1"},
		{"multiplicity", mohP2N(1, "REMARK TITLE X", "REMARK MULTIPLICITY 1.5"), red.ErrMalformedInput, "line 2"},
		{"order", swapped, red.ErrMalformedInput, "atom order"},
		{"flag", mohP2N(1, "REMARK INTRA-MCC 0.0 | 5 6 | X"), red.ErrInvalidConstraintReference, "bad flag"},
		{"fields", mohP2N(1, "REMARK INTRA-MCC 0.0 | 5 6"), red.ErrInvalidConstraintReference, "3 fields"},
		{"intrarange", mohP2N(1, "REMARK INTRA-MCC 0.0 | 5 7 | K"), red.ErrInvalidConstraintReference, "out of range"},
		{"reorient", mohP2N(1, "REMARK REORIENT 1 5 9"), red.ErrMalformedInput, "out of range"},
		{"reorientgroups", mohP2N(1, "REMARK REORIENT 1 5 | 6 5 1"), red.ErrMalformedInput, "groups of 3"},
		{"translate", mohP2N(1, "REMARK TRANSLATE a b c"), red.ErrMalformedInput, "floating point"},
		{"empty", "REMARK TITLE X\nEND\n", red.ErrMalformedInput, "no atoms"},
		{"atom", "ATOM      1  C1  MOH A   1       0.000\n", red.ErrMalformedInput, "bad atom record"},
		{"element", strings.Replace(mohP2N(1), "H4  ", "Q4  ", 1), red.ErrChemistry, "Q4"},
		{"count", short, red.ErrMalformedInput, "has 1 atoms"},
	}
	for _, c := range cases {
		_, err := ParseMolecule(strings.NewReader(c.text), "x.pdb")
		require.Error(Te, err, c.name)
		assert.ErrorIs(Te, err, c.kind, c.name)
		assert.Contains(Te, err.Error(), c.msg, c.name)
	}
}

func TestCheckNames(Te *testing.T) {
	assert.NoError(Te, CheckNames([]string{"CT1", "CT1", "NT2", "O1"}))
	err := CheckNames([]string{"CT1", "H1", "NT1"})
	assert.ErrorIs(Te, err, red.ErrInvalidAtomName)
	assert.Contains(Te, err.Error(), "CT1 and NT1")
}

func TestParseBonds(Te *testing.T) {
	M, err := ParseMolecule(strings.NewReader(mohP2N(1, mohRemarks...)), "moh.pdb")
	require.NoError(Te, err)
	n, err := ParseBonds(strings.NewReader(mohITP), "moh.itp", M.Molecule)
	require.NoError(Te, err)
	//heavy atom bonds are counted, but change nothing.
	assert.Equal(Te, 5, n)
	assert.Equal(Te, []string{"CT1", "H1", "H1", "H1", "O2", "H2"}, M.FullLabels())

	_, err = ParseBonds(strings.NewReader("[ bonds ]\n 1 x 1\n"), "bad.itp", M.Molecule)
	assert.ErrorIs(Te, err, red.ErrMalformedInput)
	assert.Contains(Te, err.Error(), "bad.itp, line 2")
	_, err = ParseBonds(strings.NewReader("[ bonds ]\n 1 9 1\n"), "bad.itp", M.Molecule)
	assert.ErrorIs(Te, err, red.ErrChemistry)
}

func twoMolecules(t *testing.T) *red.Collection {
	t.Helper()
	C := red.NewCollection()
	for _, name := range []string{"MOH", "ETH"} {
		M, err := ParseMolecule(strings.NewReader(mohP2N(1, "REMARK TITLE "+name)), name+".pdb")
		require.NoError(t, err)
		C.Add(M.Molecule)
	}
	return C
}

func TestParseInter(Te *testing.T) {
	C := twoMolecules(Te)
	text := "REMARK INTER-MCC 0.0 | 1 ETH | 5 6 | 1 2 3 4\n" +
		"some other line\n" +
		"REMARK 8 INTER-MEQA MOH 2 | 1 5\n"
	require.NoError(Te, ParseInter(strings.NewReader(text), "inter.pdb", C))
	require.Len(Te, C.Inter, 1)
	assert.Equal(Te, [2]int{0, 1}, C.Inter[0].Mols)
	assert.Equal(Te, []int{1, 2, 3, 4}, C.Inter[0].Atoms[1])
	require.Len(Te, C.Equiv, 1)
	assert.Equal(Te, []int{0, 1}, C.Equiv[0].Mols)
	assert.Equal(Te, []int{1, 5}, C.Equiv[0].Atoms)

	cases := []struct {
		text string
		kind error
	}{
		{"REMARK INTER-MCC 0.0 | 1 2 | 5 6\n", red.ErrInvalidConstraintReference},
		{"REMARK INTER-MCC 0.0 | 1 2 3 | 5 | 6\n", red.ErrInvalidConstraintReference},
		{"REMARK INTER-MCC 0.0 | 1 WAT | 5 | 6\n", red.ErrAmbiguousMoleculeReference},
		{"REMARK INTER-MCC 0.0 | 1 2 | 5 | 16\n", red.ErrInvalidConstraintReference},
		{"REMARK INTER-MEQA 1 3 | 1\n", red.ErrInvalidConstraintReference},
		{"REMARK INTER-MEQA 1 2 | a\n", red.ErrInvalidConstraintReference},
		{"REMARK INTER-MEQA 1 2\n", red.ErrInvalidConstraintReference},
	}
	for _, c := range cases {
		err := ParseInter(strings.NewReader(c.text), "inter.pdb", C)
		require.Error(Te, err, c.text)
		assert.ErrorIs(Te, err, c.kind, c.text)
		assert.Contains(Te, err.Error(), "inter.pdb, line 1", c.text)
	}
}

func TestLoadCollection(Te *testing.T) {
	dir := Te.TempDir()
	write := func(name, text string) string {
		path := filepath.Join(dir, name)
		require.NoError(Te, os.WriteFile(path, []byte(text), 0o644))
		return path
	}
	writeGz := func(name, text string) string {
		path := filepath.Join(dir, name)
		f, err := os.Create(path)
		require.NoError(Te, err)
		z := gzip.NewWriter(f)
		_, err = z.Write([]byte(text))
		require.NoError(Te, err)
		require.NoError(Te, z.Close())
		require.NoError(Te, f.Close())
		return path
	}
	pdbs := []string{
		write("moh.pdb", mohP2N(2, mohRemarks...)),
		writeGz("moh2.pdb.gz", mohP2N(1, "REMARK TITLE MOH")),
	}
	itps := []string{write("moh.itp", mohITP), ""}
	inter := write("inter.pdb", "REMARK INTER-MEQA 1 2 | 1 5\n")
	C, mols, err := LoadCollection(pdbs, itps, inter)
	require.NoError(Te, err)
	require.Equal(Te, 2, C.Len())
	require.Len(Te, mols, 2)
	assert.Equal(Te, "MOH2", C.Mols[1].Name)
	assert.Equal(Te, 4, C.Mols[0].NStructures())
	assert.Equal(Te, 5, C.RefStructure(1))
	//atom 5 is O2 in the first molecule and O2 in the second, no renumbering.
	assert.Equal(Te, 2, C.Mols[0].Atom(4).HeavyIndex)
	assert.Equal(Te, 2, C.Mols[1].Atom(4).HeavyIndex)
	assert.Equal(Te, "CT1", C.Mols[0].Atom(0).FullLabel())
	assert.Equal(Te, "C1", C.Mols[1].Atom(0).FullLabel())

	_, _, err = LoadCollection(pdbs, itps[:1], "")
	assert.ErrorIs(Te, err, red.ErrMalformedInput)
	_, _, err = LoadCollection([]string{filepath.Join(dir, "none.pdb")}, nil, "")
	assert.ErrorIs(Te, err, red.ErrMalformedInput)
	assert.ErrorIs(Te, err, os.ErrNotExist)
}
