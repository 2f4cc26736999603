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
Package p2n reads the input files of a charge derivation: R.E.D. "P2N"
files, which are PDB files where REMARK records carry the name, charge,
multiplicity, geometric transforms and charge constraints of a molecule;
the [ bonds ] section of GROMACS topologies, which gives the hydrogens
their heavy atoms; and the inter-molecular declarations of a multiple
molecule fit.

Files ending in .gz or .zst are decompressed on the fly.
*/
package p2n
