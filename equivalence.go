/*
 * equivalence.go, part of goRED.
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

import "strings"

// Values of a link other than a position.
const (
	Free  = 0  //the charge varies on its own
	Fixed = -1 //the charge is kept fixed, out of the free variation
)

// Links holds the four links of an atom. A link is Free, Fixed, or the
// 1-based position of the earlier atom, in the same structure, whose charge
// the atom must take. Plain is used for the files without suffix, Small
// for the ".sm" files, where intra-molecular constraints apply. In both,
// element 0 is for stage 1 and element 1 for stage 2.
type Links struct {
	Plain [2]int
	Small [2]int
}

// Get returns the link for a stage (1 or 2) and variant.
func (L Links) Get(stage int, small bool) int {
	if stage < 1 || stage > 2 {
		panic("Links: stage must be 1 or 2")
	}
	if small {
		return L.Small[stage-1]
	}
	return L.Plain[stage-1]
}

// firstMatch returns the 1-based position of the first atom before i
// with the label of i, or 0 if there is none.
func firstMatch(labels []string, i int) int {
	for j := 0; j < i; j++ {
		if labels[j] == labels[i] {
			return j + 1
		}
	}
	return 0
}

// Resolve computes the links of every atom of M under rule. It must be
// called after all the bonds are in and, for molecules in a collection,
// after Collection.RenumberEquivalent. Nothing is stored in M.
func Resolve(M *Molecule, rule LinkRule) []Links {
	labels := M.FullLabels()
	//heavy indexes shared with an atom whose label ends in T
	terminal := make(map[int]bool)
	for i := range M.Atoms {
		if strings.HasSuffix(M.Atoms[i].RespLabel, "T") {
			terminal[M.Atoms[i].HeavyIndex] = true
		}
	}
	constrained := make([]bool, M.Len())
	for i := range constrained {
		constrained[i] = M.Constrained(i)
	}
	ret := make([]Links, M.Len())
	for i := range M.Atoms {
		var a, b int
		if p := firstMatch(labels, i); p != 0 {
			hi := M.Atoms[i].HeavyIndex
			switch rule {
			case Stage1Rule:
				if terminal[hi] {
					a, b = Free, p
				} else {
					a, b = p, Fixed
				}
			case Stage2Rule:
				a = p
				if terminal[hi] {
					b = p
				} else {
					b = Fixed
				}
			case ESPRule:
				a, b = Free, Free
				for k := 0; k < i; k++ {
					if constrained[k] && M.Atoms[k].HeavyIndex == hi {
						b = p
						break
					}
				}
				if constrained[i] {
					b = Fixed
				}
			}
		}
		ret[i] = Links{Plain: [2]int{a, b}, Small: [2]int{a, b}}
		//the constraint sets the charge of these atoms in the refit.
		if constrained[i] {
			ret[i].Small[1] = Fixed
		}
	}
	return ret
}
