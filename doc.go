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

/*
Package red is the main package of goRED, a library and program to derive
RESP and ESP atomic charges for force fields, following the R.E.D. protocol.

	**goRED Capabilities**

	Resolves element and "resp number" (heavy atom index) for every atom,
	so that atoms that must carry the same charge (the hydrogens of a methyl,
	the same atom in several conformations or orientations of a molecule,
	atoms declared equivalent by the user, within or across molecules)
	are fitted together.

	Computes, for each charge model, the links that tell the fitting
	program which atom copies its charge from which.

	Writes the fixed-column input files for the resp program (package resp),
	for each molecule and for several molecules fitted together, and reads
	the charges back from the punch files, averaging them over each
	equivalence class.

	Reads R.E.D. "P2N" files (PDB files with REMARK annotations) and the
	bonds of GROMACS topologies (package p2n).

	Drives the whole two-stage fit (package job), and plots the resulting
	charges (package chargeplot).

The QM program that computes the electrostatic potentials and the geometric
reorientation of the structures are not part of goRED.
*/
package red
