/*
 * itp.go, part of goRED.
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
)

// cleanString removes the comments and surrounding blanks from a
// topology line.
func cleanString(s string) string {
	f := strings.Split(s, ";")[0]
	return strings.Trim(f, "\r\n\t ")
}

// sectionName returns the name of a "[ name ]" header, or "" if the line
// is not a header.
func sectionName(s string) string {
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return ""
	}
	return strings.TrimSpace(s[1 : len(s)-1])
}

// ParseBonds reads the [ bonds ] section of a GROMACS topology from r and
// passes every bond to M.Bond, so hydrogens take the heavy index of the
// atom they are bonded to. Preprocessor lines are ignored. source is used
// in the error messages. It returns the number of bonds read.
func ParseBonds(r io.Reader, source string, M *red.Molecule) (int, error) {
	scanner := bufio.NewScanner(r)
	inbonds := false
	nbonds := 0
	for lineno := 1; scanner.Scan(); lineno++ {
		line := cleanString(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if sec := sectionName(line); sec != "" {
			inbonds = sec == "bonds"
			continue
		}
		if !inbonds {
			continue
		}
		f := strings.Fields(line)
		if len(f) < 2 {
			return nbonds, red.NewError(red.ErrMalformedInput, "ParseBonds", "bond with less than 2 atoms. %s, line %d: %q", source, lineno, line)
		}
		ai, err1 := strconv.Atoi(f[0])
		aj, err2 := strconv.Atoi(f[1])
		if err1 != nil || err2 != nil {
			return nbonds, red.NewError(red.ErrMalformedInput, "ParseBonds", "atom numbers must be integers. %s, line %d: %q", source, lineno, line)
		}
		if err := M.Bond(ai-1, aj-1); err != nil {
			return nbonds, red.WrapError(red.ErrChemistry, err, "ParseBonds", "%s, line %d", source, lineno)
		}
		nbonds++
	}
	if err := scanner.Err(); err != nil {
		return nbonds, red.WrapError(red.ErrMalformedInput, err, "ParseBonds", "reading %s", source)
	}
	return nbonds, nil
}

// ReadBonds reads the bonds of M from the topology file name.
// See ParseBonds.
func ReadBonds(name string, M *red.Molecule) (int, error) {
	f, err := open(name)
	if err != nil {
		return 0, red.ErrDecorate(err, "ReadBonds")
	}
	defer f.Close()
	n, err := ParseBonds(f, name, M)
	return n, red.ErrDecorate(err, "ReadBonds")
}
