/*
 * chargeplot.go, part of goRED.
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

// Package chargeplot draws the charges derived for a molecule as a bar
// chart, one bar per atom, to spot odd values at a glance.
package chargeplot

import (
	"image/color"

	"github.com/rmera/gored"
	"github.com/rmera/gored/resp"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	positive = color.RGBA{R: 0, G: 80, B: 200, A: 255}
	negative = color.RGBA{R: 200, G: 30, B: 30, A: 255}
)

// Plot returns the bar chart of the charges, titled title. Positive and
// negative charges get different colors, the atom names go on the X axis.
func Plot(title string, charges []resp.Charge) (*plot.Plot, error) {
	if len(charges) == 0 {
		return nil, red.NewError(red.ErrMalformedInput, "Plot", "no charges to plot for %s", title)
	}
	pos := make(plotter.Values, len(charges))
	neg := make(plotter.Values, len(charges))
	names := make([]string, len(charges))
	for i, c := range charges {
		if c.Value >= 0 {
			pos[i] = c.Value
		} else {
			neg[i] = c.Value
		}
		names[i] = c.Name
	}
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = "Charge (e)"
	p.Title.Padding = 3 * vg.Millimeter
	p.Add(plotter.NewGrid())
	w := vg.Points(12)
	for _, v := range []struct {
		vals plotter.Values
		col  color.Color
	}{{pos, positive}, {neg, negative}} {
		bars, err := plotter.NewBarChart(v.vals, w)
		if err != nil {
			return nil, red.WrapError(red.ErrMalformedInput, err, "Plot", "can't plot the charges of %s", title)
		}
		bars.Color = v.col
		bars.LineStyle.Width = vg.Length(0)
		p.Add(bars)
	}
	p.NominalX(names...)
	return p, nil
}

// Bars plots the charges and saves the plot to path, with the format given
// by its extension (png, svg, pdf...). width and height are in cm.
func Bars(title string, charges []resp.Charge, path string, width, height float64) error {
	p, err := Plot(title, charges)
	if err != nil {
		return red.ErrDecorate(err, "Bars")
	}
	if err := p.Save(vg.Length(width)*vg.Centimeter, vg.Length(height)*vg.Centimeter, path); err != nil {
		return red.WrapError(red.ErrMalformedInput, err, "Bars", "can't save the plot to %s", path)
	}
	return nil
}
