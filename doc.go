/*
 * doc.go, part of gopops.
 *
 * Copyright 2024 The gopops authors.
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
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

/*Package chem is the main package of the gopops library. It provides the atom and molecule
structures, readers for PDB files (optionally gzip or zstd compressed) and the interfaces
shared by the trajectory readers.

gopops computes the solvent accessible surface area (SASA), the buried SASA (bSASA) and the
solvation free energy (SFE) of a macromolecule with the analytic, topology-driven POPS method.
The work is split in a few packages:

	chem          atoms, molecules, PDB reading, shared interfaces and errors
	v3            Nx3 coordinate matrices
	params        parameter, sigma and group tables, and the atom type classifier
	topol         bonds, angles, torsions and non-bonded overlaps
	sasa          the surface accumulator
	sfe           the solvation free energy accumulator
	pops          runs the whole thing for a structure or a trajectory
	traj/gromos   GROMOS96 trajectories
	report        tables, JSON, plots and a results store
	cmd/pops      the command line program

A typical use:

	mol, err := chem.PDBFileRead("1f3g.pdb.gz")
	//handle err
	tab, err := params.Default(false)
	//handle err
	res, err := pops.Run(mol, mol.Coords[0], tab, pops.DefaultOptions())

*/
package chem
