/*
 * p2n.go, part of goRED.
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
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/rmera/gored"
	"gonum.org/v1/gonum/mat"
)

// TransformKind is the kind of geometric transform requested for a
// molecule. Each transform produces one more structure per conformation.
type TransformKind int

const (
	Reorient TransformKind = iota
	Rotate
	Translate
)

func (T TransformKind) String() string {
	return [...]string{"REORIENT", "ROTATE", "TRANSLATE"}[T]
}

// Transform is one group of a REORIENT, ROTATE or TRANSLATE remark.
type Transform struct {
	Kind   TransformKind
	Atoms  [3]int     //1-based, for Reorient and Rotate
	Vector [3]float64 //for Translate
}

// Molecule is a red.Molecule with the data of its P2N file that the
// charge derivation does not use directly.
type Molecule struct {
	*red.Molecule
	//One n×3 matrix per conformation, in Å.
	Conformations []*mat.Dense
	Transforms    []Transform
	Source        string
}

// NConformations returns the number of conformations read.
func (M *Molecule) NConformations() int {
	return len(M.Conformations)
}

// DefaultName is the name of molecules without a TITLE.
const DefaultName = "UNK"

// pdbAtom reads the name and coordinates from an ATOM or HETATM line.
func pdbAtom(line string) (string, [3]float64, error) {
	var c [3]float64
	if len(line) < 54 {
		return "", c, strconv.ErrSyntax
	}
	name := strings.TrimSpace(line[12:16])
	var err error
	for i, v := range [][2]int{{30, 38}, {38, 46}, {46, 54}} {
		c[i], err = strconv.ParseFloat(strings.TrimSpace(line[v[0]:v[1]]), 64)
		if err != nil {
			return "", c, err
		}
	}
	return name, c, nil
}

// ParseMolecule reads a P2N file from r. source is used for the error
// messages. TER records separate conformations, which must list the
// same atoms in the same order. Reading stops at END.
func ParseMolecule(r io.Reader, source string) (*Molecule, error) {
	name := DefaultName
	charge, multi := 0, 1
	var transforms []Transform
	var intra []remark
	var names []string
	var confs [][]float64
	var current []float64
	natoms := 0 //in the current conformation
	closeConf := func(lineno int) error {
		if natoms == 0 {
			return nil
		}
		if len(confs) > 0 && natoms != len(names) {
			return red.NewError(red.ErrMalformedInput, "ParseMolecule", "conformation %d of %s has %d atoms, the first one has %d. %s, line %d", len(confs)+1, name, natoms, len(names), source, lineno)
		}
		confs = append(confs, current)
		current = nil
		natoms = 0
		return nil
	}
	br := bufio.NewReader(r)
	lineno := 0
	for {
		line, rerr := br.ReadString('\n')
		if rerr != nil && rerr != io.EOF {
			return nil, red.WrapError(red.ErrMalformedInput, rerr, "ParseMolecule", "reading %s", source)
		}
		if line == "" && rerr == io.EOF {
			break
		}
		lineno++
		line = strings.TrimRight(line, "\r\n")
		record := line
		if len(record) > 6 {
			record = record[:6]
		}
		record = strings.TrimSpace(record)
		if record == "END" {
			break
		}
		switch record {
		case "TER":
			if err := closeConf(lineno); err != nil {
				return nil, err
			}
		case "TITLE":
			if f := strings.Fields(line[len("TITLE"):]); len(f) > 0 {
				name = f[0]
			}
		case "REMARK":
			R, ok := parseRemark(line, lineno)
			if !ok {
				break
			}
			switch R.key {
			case "TITLE":
				if f := strings.Fields(R.args); len(f) > 0 {
					name = f[0]
				}
			case "CHARGE", "CHARGE-VALUE":
				var err error
				if charge, err = R.singleInt(source); err != nil {
					return nil, err
				}
			case "MULTIPLICITY", "MULTIPLICITY-VALUE":
				var err error
				if multi, err = R.singleInt(source); err != nil {
					return nil, err
				}
			case "REORIENT", "ROTATE", "TRANSLATE":
				T, err := R.transforms(source)
				if err != nil {
					return nil, err
				}
				transforms = append(transforms, T...)
			case "INTRA-MCC":
				intra = append(intra, R)
			}
		case "ATOM", "HETATM":
			aname, c, err := pdbAtom(line)
			if err != nil {
				return nil, red.WrapError(red.ErrMalformedInput, err, "ParseMolecule", "bad atom record. %s, line %d: %q", source, lineno, line)
			}
			if len(confs) == 0 {
				names = append(names, aname)
			} else if natoms >= len(names) || names[natoms] != aname {
				return nil, red.NewError(red.ErrMalformedInput, "ParseMolecule", "atom %d of conformation %d is %s, it must follow the atom order of the first conformation. %s, line %d", natoms+1, len(confs)+1, aname, source, lineno)
			}
			current = append(current, c[:]...)
			natoms++
		}
		if rerr == io.EOF {
			break
		}
	}
	if err := closeConf(lineno); err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, red.NewError(red.ErrMalformedInput, "ParseMolecule", "no atoms in %s", source)
	}
	if err := CheckNames(names); err != nil {
		return nil, red.ErrDecorate(err, "ParseMolecule")
	}
	mol, err := red.NewMolecule(name, names)
	if err != nil {
		return nil, err
	}
	mol.Charge = charge
	mol.Multiplicity = multi
	for _, R := range intra {
		c, err := R.intraMCC(source)
		if err != nil {
			return nil, err
		}
		if err := mol.AddIntraConstraint(c); err != nil {
			return nil, red.ErrDecorate(R.wrap(err, source), "ParseMolecule")
		}
	}
	for _, T := range transforms {
		if T.Kind == Translate {
			continue
		}
		for _, a := range T.Atoms {
			if a < 1 || a > len(names) {
				return nil, red.NewError(red.ErrMalformedInput, "ParseMolecule", "%s atom %d out of range [1, %d] in %s", T.Kind, a, len(names), source)
			}
		}
	}
	ret := &Molecule{Molecule: mol, Transforms: transforms, Source: source}
	for _, v := range confs {
		ret.Conformations = append(ret.Conformations, mat.NewDense(len(names), 3, v))
	}
	ntrans := len(transforms)
	if ntrans < 1 {
		ntrans = 1
	}
	mol.Structures = len(confs) * ntrans
	return ret, nil
}

// ReadMolecule reads the P2N file name. See ParseMolecule.
func ReadMolecule(name string) (*Molecule, error) {
	f, err := open(name)
	if err != nil {
		return nil, red.ErrDecorate(err, "ReadMolecule")
	}
	defer f.Close()
	M, err := ParseMolecule(f, name)
	if err != nil {
		return nil, red.ErrDecorate(err, "ReadMolecule")
	}
	return M, nil
}

// splitName separates the letters of an atom name from its digits.
func splitName(name string) (letters, number string) {
	var l, n strings.Builder
	for _, c := range name {
		if c >= '0' && c <= '9' {
			n.WriteRune(c)
		} else {
			l.WriteRune(c)
		}
	}
	return l.String(), n.String()
}

// CheckNames rejects atom names that end in T, with the same number,
// but with a different element part (such as CT1 and NT1), as the
// terminal group detection would mix them up.
func CheckNames(names []string) error {
	type split struct{ prefix, number, name string }
	var terminal []split
	for _, v := range names {
		l, n := splitName(v)
		if strings.HasSuffix(l, "T") {
			terminal = append(terminal, split{strings.TrimSuffix(l, "T"), n, v})
		}
	}
	for i, a := range terminal {
		for _, b := range terminal[i+1:] {
			if a.prefix != b.prefix && a.number == b.number {
				return red.NewError(red.ErrInvalidAtomName, "CheckNames", "redundant number in atom names %s and %s", a.name, b.name)
			}
		}
	}
	return nil
}
