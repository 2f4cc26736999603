/*
 * open.go, part of goRED.
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
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/rmera/gored"
)

// readCloser closes a decompressor and the file under it.
type readCloser struct {
	io.Reader
	closers []func() error
}

func (R *readCloser) Close() error {
	var err error
	for _, c := range R.closers {
		if err2 := c(); err2 != nil && err == nil {
			err = err2
		}
	}
	return err
}

// open opens name for reading, decompressing gzip (.gz) and
// zstandard (.zst) files.
func open(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, red.WrapError(red.ErrMalformedInput, err, "open", "can't open %s", name)
	}
	switch {
	case strings.HasSuffix(name, ".gz"):
		z, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, red.WrapError(red.ErrMalformedInput, err, "open", "%s is not a valid gzip file", name)
		}
		return &readCloser{Reader: z, closers: []func() error{z.Close, f.Close}}, nil
	case strings.HasSuffix(name, ".zst"):
		z, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, red.WrapError(red.ErrMalformedInput, err, "open", "%s is not a valid zstd file", name)
		}
		zclose := func() error {
			z.Close()
			return nil
		}
		return &readCloser{Reader: z, closers: []func() error{zclose, f.Close}}, nil
	}
	return f, nil
}
