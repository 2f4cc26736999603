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

package p2n

import (
	"bufio"
	"io"
	"strconv"

	"github.com/rmera/gored"
)

// molRefs resolves molecule references, numbers or TITLE names.
func molRefs(C *red.Collection, refs []string) ([]int, error) {
	ret := make([]int, len(refs))
	for i, v := range refs {
		n, err := C.Index(v)
		if err != nil {
			return nil, err
		}
		ret[i] = n
	}
	return ret, nil
}

func (R remark) interMCC(source string, C *red.Collection) error {
	g := R.groups()
	if len(g) != 4 {
		return R.errorf(red.ErrInvalidConstraintReference, source, "INTER-MCC needs 4 fields: charge | 2 molecules | atoms of the first | atoms of the second")
	}
	if len(g[0]) != 1 {
		return R.errorf(red.ErrInvalidConstraintReference, source, "INTER-MCC needs a single charge")
	}
	var ic red.InterConstraint
	var err error
	if ic.Charge, err = strconv.ParseFloat(g[0][0], 64); err != nil {
		return R.errorf(red.ErrInvalidConstraintReference, source, "invalid charge value %s", g[0][0])
	}
	if len(g[1]) != 2 {
		return R.errorf(red.ErrInvalidConstraintReference, source, "INTER-MCC takes exactly 2 molecules, got %d", len(g[1]))
	}
	mols, err := molRefs(C, g[1])
	if err != nil {
		return R.wrap(err, source)
	}
	ic.Mols = [2]int{mols[0], mols[1]}
	for k := 0; k < 2; k++ {
		if ic.Atoms[k], err = parseInts(g[k+2]); err != nil {
			return R.errorf(red.ErrInvalidConstraintReference, source, "atom numbers must be integers")
		}
	}
	if err := C.AddInterConstraint(ic); err != nil {
		return R.wrap(err, source)
	}
	return nil
}

func (R remark) interMEQA(source string, C *red.Collection) error {
	g := R.groups()
	if len(g) != 2 {
		return R.errorf(red.ErrInvalidConstraintReference, source, "INTER-MEQA needs 2 fields: molecules | atom numbers")
	}
	mols, err := molRefs(C, g[0])
	if err != nil {
		return R.wrap(err, source)
	}
	atoms, err := parseInts(g[1])
	if err != nil {
		return R.errorf(red.ErrInvalidConstraintReference, source, "atom numbers must be integers")
	}
	if err := C.AddInterEquivalence(red.InterEquivalence{Mols: mols, Atoms: atoms}); err != nil {
		return R.wrap(err, source)
	}
	return nil
}

// ParseInter reads the INTER-MCC (charge constraints between 2 molecules)
// and INTER-MEQA (equivalences among molecules) remarks from r, and adds
// them to C. Molecules are given by their 1-based number in C or their
// name. Other lines are ignored.
func ParseInter(r io.Reader, source string, C *red.Collection) error {
	scanner := bufio.NewScanner(r)
	for lineno := 1; scanner.Scan(); lineno++ {
		line := scanner.Text()
		if len(line) < 6 || line[:6] != "REMARK" {
			continue
		}
		R, ok := parseRemark(line, lineno)
		if !ok {
			continue
		}
		var err error
		switch R.key {
		case "INTER-MCC":
			err = R.interMCC(source, C)
		case "INTER-MEQA":
			err = R.interMEQA(source, C)
		}
		if err != nil {
			return red.ErrDecorate(err, "ParseInter")
		}
	}
	if err := scanner.Err(); err != nil {
		return red.WrapError(red.ErrMalformedInput, err, "ParseInter", "reading %s", source)
	}
	return nil
}

// ReadInter reads the inter-molecular declarations in the file name.
// See ParseInter.
func ReadInter(name string, C *red.Collection) error {
	f, err := open(name)
	if err != nil {
		return red.ErrDecorate(err, "ReadInter")
	}
	defer f.Close()
	return red.ErrDecorate(ParseInter(f, name, C), "ReadInter")
}

// LoadCollection reads the P2N files pdbs, in order, with the bonds from
// the topologies itps (itps can be nil, or have one name, possibly empty,
// per P2N file) and the inter-molecular declarations in the file inter, if
// not empty. The inter-molecular equivalences are applied to the heavy
// indexes, so the collection is ready to be fitted.
func LoadCollection(pdbs, itps []string, inter string) (*red.Collection, []*Molecule, error) {
	if len(itps) != 0 && len(itps) != len(pdbs) {
		return nil, nil, red.NewError(red.ErrMalformedInput, "LoadCollection", "%d topologies given for %d molecules", len(itps), len(pdbs))
	}
	C := red.NewCollection()
	mols := make([]*Molecule, 0, len(pdbs))
	for i, v := range pdbs {
		M, err := ReadMolecule(v)
		if err != nil {
			return nil, nil, red.ErrDecorate(err, "LoadCollection")
		}
		if len(itps) > 0 && itps[i] != "" {
			if _, err := ReadBonds(itps[i], M.Molecule); err != nil {
				return nil, nil, red.ErrDecorate(err, "LoadCollection")
			}
		}
		C.Add(M.Molecule)
		mols = append(mols, M)
	}
	if inter != "" {
		if err := ReadInter(inter, C); err != nil {
			return nil, nil, red.ErrDecorate(err, "LoadCollection")
		}
	}
	C.RenumberEquivalent()
	return C, mols, nil
}
