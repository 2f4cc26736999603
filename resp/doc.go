/*
 * doc.go, part of goRED.
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

//Package resp implements the communication with the resp charge fitting
//program (from AmberTools). It writes the fixed-column control files for
//each stage of a fit, runs the program, and reads the fitted charges back
//from the punch files.
//
//The writer only needs a red.Molecule (or a red.Collection) and the links
//computed by red.Resolve, so it can be used without the rest of goRED.
package resp
