/*
 * punch.go, part of goRED.
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
	"bufio"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/rmera/gored"
)

//A charge line in a punch file: atom number, atomic number, the initial
//charge and the optimized one, then more columns.
var punchLine = regexp.MustCompile(`^\s+\d+\s+\d+\s+-?\d\.\d+\s+-?\d\.\d+(\s|$)`)

//Lines that look like a charge line but may carry a NaN or the asterisks
//Fortran prints when a number overflows its field.
const chargeLike = `(-?\d+\.\d+|\S*\*\S*|-?[nN][aA][nN]\S*)`

var punchCandidate = regexp.MustCompile(`^\s+\d+\s+\d+\s+` + chargeLike + `\s+` + chargeLike + `(\s|$)`)

// ReadPunch reads the fitted charges, in order, from a resp punch file.
// source is only used in error messages. Any charge line with a NaN, an
// overflowed field or a missing charge makes the whole read fail with
// red.ErrFitJobFailed, as does a file without charges.
func ReadPunch(r io.Reader, source string) ([]float64, error) {
	ret := make([]float64, 0, 20)
	br := bufio.NewReader(r)
	for lineno := 1; ; lineno++ {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, red.WrapError(red.ErrFitJobFailed, err, "ReadPunch", "reading %s", source)
		}
		if punchCandidate.MatchString(line) {
			q, err2 := punchCharge(line)
			if err2 != nil {
				return nil, red.WrapError(red.ErrFitJobFailed, err2, "ReadPunch", "%s, line %d: %q", source, lineno, strings.TrimSpace(line))
			}
			ret = append(ret, q)
		}
		if err == io.EOF {
			break
		}
	}
	if len(ret) == 0 {
		return nil, red.NewError(red.ErrFitJobFailed, "ReadPunch", "no charges found in %s", source)
	}
	return ret, nil
}

type punchError string

func (p punchError) Error() string { return string(p) }

// punchCharge gets the optimized charge, the fourth column, from a line.
func punchCharge(line string) (float64, error) {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return 0, punchError("no charge found, the job failed")
	}
	ch := fields[3]
	if strings.Contains(strings.ToLower(ch), "nan") || strings.Contains(ch, "*") {
		return 0, punchError("invalid charge " + ch)
	}
	if !punchLine.MatchString(line) {
		return 0, punchError("malformed charge line")
	}
	q, err := strconv.ParseFloat(ch, 64)
	if err != nil {
		return 0, err
	}
	return q, nil
}

// ReadPunchFile opens the file name and reads its charges with ReadPunch.
func ReadPunchFile(name string) ([]float64, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, red.WrapError(red.ErrFitJobFailed, err, "ReadPunchFile", "can't open punch file")
	}
	defer f.Close()
	q, err := ReadPunch(f, name)
	return q, red.ErrDecorate(err, "ReadPunchFile")
}
