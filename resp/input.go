/*
 * input.go, part of goRED.
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
	"fmt"
	"io"
	"strings"

	"github.com/rmera/gored"
)

//The number of (structure, atom) pairs on each line of a constraint
//or equivalence group.
const pairsPerLine = 8

//Blank lines closing every control file.
const endMarker = "\n\n\n\n\n\n"

//The blank line that closes the constraint cards. It is the only line
//between the constraints and the equivalence groups: resp reads the next
//line as the count of the first group, so there is no room for a remark.
const cardEnd = "\n"

// Input builds resp control files for one stage and one variant
// of a fit.
type Input struct {
	Config red.FitConfig
	Stage  int    //1 or 2
	Suffix string //Plain or Small
}

// NewInput returns an Input for the given mode configuration, stage and
// suffix. It fails for stages other than 1 and 2 and for unknown suffixes.
func NewInput(c red.FitConfig, stage int, suffix string) (*Input, error) {
	if stage < 1 || stage > 2 {
		return nil, red.NewError(red.ErrMalformedInput, "NewInput", "stage %d requested, resp fits have stages 1 and 2", stage)
	}
	if suffix != Plain && suffix != Small {
		return nil, red.NewError(red.ErrMalformedInput, "NewInput", "unknown control file suffix %q", suffix)
	}
	return &Input{Config: c, Stage: stage, Suffix: suffix}, nil
}

func (I *Input) small() bool {
	return I.Suffix == Small
}

func (I *Input) link(L red.Links) int {
	return L.Get(I.Stage, I.small())
}

// header writes the title and the &cntrl namelist.
func (I *Input) header(b *strings.Builder, name string, nmol int) {
	iqopt := 1
	if I.Stage > 1 {
		iqopt = 2 //read the charges of the previous stage
	}
	fmt.Fprintf(b, "%s stage %d fit of %s\n", I.Config.Mode, I.Stage, name)
	b.WriteString(" &cntrl\n")
	fmt.Fprintf(b, " nmol = %d, ihfree = %d, ioutopt = 1,\n", nmol, I.Config.IHFree)
	fmt.Fprintf(b, " iqopt = %d, irstrnt = %d, qwt = %.5f,\n", iqopt, I.Config.IRstrnt, I.Config.Weight(I.Stage))
	b.WriteString(" &end\n")
}

// structures writes the block of M once per structure. The links are
// relative to the structure, so the block is identical for all of them.
func (I *Input) structures(b *strings.Builder, M *red.Molecule, links []red.Links) {
	var block strings.Builder
	block.WriteString("    1.0\n")
	fmt.Fprintf(&block, " %s\n", M.Name)
	fmt.Fprintf(&block, "%5d%5d\n", M.Charge, M.Len())
	for i := range M.Atoms {
		fmt.Fprintf(&block, "%5d%5d%10d\n", M.Atoms[i].Element.Number, I.link(links[i]), i+1)
	}
	s := block.String()
	for j := 0; j < M.NStructures(); j++ {
		b.WriteString(s)
	}
}

// writePairs writes (structure, atom) pairs, pairsPerLine per line.
func writePairs(b *strings.Builder, pairs [][2]int) {
	for i, p := range pairs {
		fmt.Fprintf(b, "  %3d  %3d", p[0], p[1])
		if (i+1)%pairsPerLine == 0 && i+1 != len(pairs) {
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
}

// intraConstraints writes the charge constraints of M, which only apply
// to its first structure (ref). The others follow by equivalence.
func (I *Input) intraConstraints(b *strings.Builder, M *red.Molecule, ref int) {
	if !I.small() {
		return
	}
	for _, c := range M.Intra {
		fmt.Fprintf(b, "%5d%10.5f\n", len(c.Atoms), c.Charge)
		pairs := make([][2]int, 0, len(c.Atoms))
		for _, a := range c.Atoms {
			pairs = append(pairs, [2]int{ref, a})
		}
		writePairs(b, pairs)
	}
}

// intraEquivalences makes every free atom of M take the same charge in
// all the structures of M, which start at ref.
func (I *Input) intraEquivalences(b *strings.Builder, M *red.Molecule, links []red.Links, ref int) {
	S := M.NStructures()
	if S < 2 {
		return
	}
	for i := range M.Atoms {
		if I.link(links[i]) != red.Free {
			continue
		}
		fmt.Fprintf(b, "  %3d\n", S)
		pairs := make([][2]int, S)
		for j := range pairs {
			pairs[j] = [2]int{ref + j, i + 1}
		}
		writePairs(b, pairs)
	}
}

func checkLinks(M *red.Molecule, links []red.Links) {
	if len(links) != M.Len() {
		panic(fmt.Sprintf("resp: %d links given for molecule %s, with %d atoms", len(links), M.Name, M.Len()))
	}
}

// WriteMolecule writes the control file for a fit of M alone. links must
// be the result of red.Resolve for M. Only Small files carry the
// intra-molecular constraints.
func (I *Input) WriteMolecule(w io.Writer, M *red.Molecule, links []red.Links) error {
	checkLinks(M, links)
	var b strings.Builder
	I.header(&b, M.Name, M.NStructures())
	I.structures(&b, M, links)
	I.intraConstraints(&b, M, 1)
	b.WriteString(cardEnd)
	I.intraEquivalences(&b, M, links, 1)
	b.WriteString(endMarker)
	if _, err := io.WriteString(w, b.String()); err != nil {
		return red.WrapError(red.ErrFitJobFailed, err, "WriteMolecule", "writing the stage %d control file of %s", I.Stage, M.Name)
	}
	return nil
}

// WriteCollection writes the control file for a fit of all the molecules
// of C together, named CollectionName. links[m] must be the result of
// red.Resolve for the m-th molecule. The structures of each molecule are
// numbered after those of all the preceding molecules.
func (I *Input) WriteCollection(w io.Writer, C *red.Collection, links [][]red.Links) error {
	if len(links) != C.Len() {
		panic(fmt.Sprintf("resp: links given for %d molecules, the collection has %d", len(links), C.Len()))
	}
	var b strings.Builder
	I.header(&b, CollectionName, C.TotalStructures())
	for m, M := range C.Mols {
		checkLinks(M, links[m])
		I.structures(&b, M, links[m])
	}
	for m, M := range C.Mols {
		I.intraConstraints(&b, M, C.RefStructure(m))
	}
	for _, ic := range C.Inter {
		fmt.Fprintf(&b, "%5d%10.5f\n", ic.NAtoms(), ic.Charge)
		pairs := make([][2]int, 0, ic.NAtoms())
		for k := 0; k < 2; k++ {
			ref := C.RefStructure(ic.Mols[k])
			for _, a := range ic.Atoms[k] {
				pairs = append(pairs, [2]int{ref, a})
			}
		}
		writePairs(&b, pairs)
	}
	b.WriteString(cardEnd)
	for m, M := range C.Mols {
		I.intraEquivalences(&b, M, links[m], C.RefStructure(m))
	}
	for _, eq := range C.Equiv {
		for _, a := range eq.Atoms {
			//only the molecules where the atom is free can be tied together.
			pairs := make([][2]int, 0, len(eq.Mols))
			for _, m := range eq.Mols {
				if I.link(links[m][a-1]) == red.Free {
					pairs = append(pairs, [2]int{C.RefStructure(m), a})
				}
			}
			if len(pairs) < 2 {
				continue
			}
			fmt.Fprintf(&b, "  %3d\n", len(pairs))
			writePairs(&b, pairs)
		}
	}
	b.WriteString(endMarker)
	if _, err := io.WriteString(w, b.String()); err != nil {
		return red.WrapError(red.ErrFitJobFailed, err, "WriteCollection", "writing the stage %d control file %s", I.Stage, CollectionName)
	}
	return nil
}
