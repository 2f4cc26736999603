/*
 * remark.go, part of goRED.
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
	"errors"
	"strconv"
	"strings"

	"github.com/rmera/gored"
)

// remark is a REMARK record with a keyword R.E.D. knows about.
type remark struct {
	key    string
	args   string //whatever follows the keyword
	lineno int
	text   string //the whole line, for the error messages
}

// parseRemark splits a REMARK line into keyword and arguments. Numbered
// remarks are accepted if the number is in [6, 99] (the numbers PDB
// leaves free); other numbered remarks are standard PDB ones and are
// skipped, as are empty ones.
func parseRemark(line string, lineno int) (remark, bool) {
	rest := strings.TrimPrefix(line, "REMARK")
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return remark{}, false
	}
	if n, err := strconv.Atoi(fields[0]); err == nil {
		if n < 6 || n > 99 || len(fields) < 2 {
			return remark{}, false
		}
		rest = rest[strings.Index(rest, fields[0])+len(fields[0]):]
		fields = fields[1:]
	}
	key := fields[0]
	args := rest[strings.Index(rest, key)+len(key):]
	return remark{key: key, args: args, lineno: lineno, text: strings.TrimRight(line, "\r\n")}, true
}

// groups splits the arguments of a remark at the '|' separators, and
// each group into fields.
func (R remark) groups() [][]string {
	g := strings.Split(R.args, "|")
	ret := make([][]string, len(g))
	for i, v := range g {
		ret[i] = strings.Fields(v)
	}
	return ret
}

func (R remark) errorf(kind error, source, format string, args ...interface{}) error {
	args = append(args, source, R.lineno, R.text)
	return red.NewError(kind, "REMARK "+R.key, format+". %s, line %d: %q", args...)
}

// wrap adds the position of the remark to an error found while applying
// it, keeping the kind of the error.
func (R remark) wrap(err error, source string) error {
	kind := red.ErrInvalidConstraintReference
	var E *red.Error
	if errors.As(err, &E) {
		kind = E.Kind()
	}
	return red.WrapError(kind, err, "REMARK "+R.key, "%s, line %d: %q", source, R.lineno, R.text)
}

func parseInts(s []string) ([]int, error) {
	ret := make([]int, len(s))
	var err error
	for i, v := range s {
		ret[i], err = strconv.Atoi(v)
		if err != nil {
			return nil, err
		}
	}
	return ret, nil
}

func parseFloats(s []string) ([]float64, error) {
	ret := make([]float64, len(s))
	var err error
	for i, v := range s {
		ret[i], err = strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, err
		}
	}
	return ret, nil
}

// singleInt parses remarks with one integer, such as CHARGE.
func (R remark) singleInt(source string) (int, error) {
	f := strings.Fields(R.args)
	if len(f) == 0 {
		return 0, R.errorf(red.ErrMalformedInput, source, "%s needs an integer value", R.key)
	}
	n, err := strconv.Atoi(f[0])
	if err != nil {
		return 0, R.errorf(red.ErrMalformedInput, source, "%s must be an integer value", R.key)
	}
	return n, nil
}

// intraMCC parses "charge | atoms | K/R". The atom indexes are checked
// later, against the molecule.
func (R remark) intraMCC(source string) (red.IntraConstraint, error) {
	var c red.IntraConstraint
	g := R.groups()
	if len(g) != 3 {
		return c, R.errorf(red.ErrInvalidConstraintReference, source, "INTRA-MCC needs 3 fields: charge | atom numbers | K/R")
	}
	if len(g[0]) != 1 || len(g[2]) != 1 {
		return c, R.errorf(red.ErrInvalidConstraintReference, source, "INTRA-MCC needs a single charge and a single K or R flag")
	}
	var err error
	if c.Charge, err = strconv.ParseFloat(g[0][0], 64); err != nil {
		return c, R.errorf(red.ErrInvalidConstraintReference, source, "invalid charge value %s", g[0][0])
	}
	if c.Atoms, err = parseInts(g[1]); err != nil || len(c.Atoms) == 0 {
		return c, R.errorf(red.ErrInvalidConstraintReference, source, "INTRA-MCC needs at least one integer atom number")
	}
	switch strings.ToUpper(g[2][0]) {
	case "K":
		c.Keep = true
	case "R":
		c.Keep = false
	default:
		return c, R.errorf(red.ErrInvalidConstraintReference, source, "bad flag %s, only K (keep) or R (remove) are allowed", g[2][0])
	}
	return c, nil
}

// transforms parses the groups of 3 integers of REORIENT and ROTATE,
// or of 3 floats of TRANSLATE.
func (R remark) transforms(source string) ([]Transform, error) {
	kind := Reorient
	switch R.key {
	case "ROTATE":
		kind = Rotate
	case "TRANSLATE":
		kind = Translate
	}
	g := R.groups()
	ret := make([]Transform, 0, len(g))
	for _, v := range g {
		if len(v) != 3 {
			return nil, R.errorf(red.ErrMalformedInput, source, "%s requires groups of 3 values separated by |", R.key)
		}
		T := Transform{Kind: kind}
		if kind == Translate {
			f, err := parseFloats(v)
			if err != nil {
				return nil, R.errorf(red.ErrMalformedInput, source, "TRANSLATE requires groups of 3 floating point numbers")
			}
			copy(T.Vector[:], f)
		} else {
			n, err := parseInts(v)
			if err != nil {
				return nil, R.errorf(red.ErrMalformedInput, source, "%s requires groups of 3 integer atom numbers", R.key)
			}
			copy(T.Atoms[:], n)
		}
		ret = append(ret, T)
	}
	return ret, nil
}
