/*
 * chem.go, part of gopops.
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

package chem

import (
	"fmt"

	v3 "github.com/rmera/gopops/v3"
)

/**Note: Many functions here panic instead of returning errors. This is because they are "fundamental"
 * functions. I considered that if something goes wrong here, the program is way-most likely wrong and should
 * crash. Most panics are related to using the function on a nil object or trying to access out-of bounds
 * fields**/

//Atom contains the atoms read except for the coordinates, which will be in a matrix.
//The type fields are filled by the classifier in the params package.
type Atom struct {
	Name        string //name used to look up parameters (HETATM names are generic)
	OrigName    string //name as found in the file
	ID          int    //serial number from the file
	MolName     string //residue name used to look up parameters
	OrigMolName string
	MolID       int //residue number
	ICode       string
	Chain       string
	Occupancy   float64
	Bfactor     float64
	Symbol      string
	Het         bool // is hetatm in the pdb file?
	index       int

	ResType   int //residue type id
	AtomType  int //atom type id within the residue
	Group     int //group id from the group table
	GroupType int //atom type within the group table
}

//Atom methods

//Copy returns a copy of the Atom object.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("Attempted to copy a nil atom")
	}
	ret := *A
	return &ret
}

//Index returns the position of the atom in its topology.
func (A *Atom) Index() int {
	return A.index
}

/*****Topology type***/

//Topology contains the information about a molecule which is not expected to change in time
//(i.e. everything except for coordinates)
type Topology struct {
	Atoms []*Atom
}

//NewTopology returns a topology with the given atoms, which get their indexes reset.
func NewTopology(ats []*Atom) (*Topology, error) {
	if ats == nil {
		return nil, CError{"Supplied a nil atom slice", []string{"NewTopology"}, true}
	}
	top := &Topology{Atoms: ats}
	top.ResetIndexes()
	return top, nil
}

//ResetIndexes sets the index of each atom to its current place in the topology.
func (T *Topology) ResetIndexes() {
	for i, at := range T.Atoms {
		at.index = i
	}
}

//Atom returns the Atom corresponding to the index i
//of the Atom slice in the Topology. Panics if
//out of range.
func (T *Topology) Atom(i int) *Atom {
	if i >= T.Len() {
		panic(ErrNoAtom)
	}
	return T.Atoms[i]
}

//AddAtom appends an atom at the end of the topology
func (T *Topology) AddAtom(at *Atom) {
	at.index = len(T.Atoms)
	T.Atoms = append(T.Atoms, at)
}

//Len returns the number of atoms in the topology.
func (T *Topology) Len() int {
	return len(T.Atoms)
}

/**Type Molecule**/

//Molecule contains all the info for a molecule in many frames.
//Coords[i] holds the coordinates of the atoms for frame i.
//AtomMap[j] is the index that the jth atom of the molecule had among all the
//atom records in the file, including the ones (like hydrogens) that were not kept.
//It is used to take the kept atoms from trajectories that contain every atom.
type Molecule struct {
	*Topology
	Coords  []*v3.Matrix
	AtomMap []int
	NAll    int //number of atom records in the file, kept or not.
	current int
}

//NewMolecule makes a molecule with ats atoms and coords coordinates.
//It checks that every frame has as many vectors as there are atoms.
func NewMolecule(ats *Topology, coords []*v3.Matrix) (*Molecule, error) {
	if ats == nil {
		return nil, CError{"Supplied a nil topology", []string{"NewMolecule"}, true}
	}
	for i, c := range coords {
		if c.NVecs() != ats.Len() {
			return nil, CError{fmt.Sprintf("Frame %d has %d coordinates for %d atoms", i, c.NVecs(), ats.Len()), []string{"NewMolecule"}, true}
		}
	}
	mol := &Molecule{Topology: ats, Coords: coords}
	mol.AtomMap = make([]int, ats.Len())
	for i := range mol.AtomMap {
		mol.AtomMap[i] = i
	}
	mol.NAll = ats.Len()
	return mol, nil
}

//LenFrames returns the number of frames in the molecule
func (M *Molecule) LenFrames() int {
	return len(M.Coords)
}

//Readable returns true if the molecule has frames that have not been read with Next.
func (M *Molecule) Readable() bool {
	return M.current < len(M.Coords)
}

//Next puts the next frame of the molecule in the given matrix, which can be nil
//if the frame is to be discarded. It returns a LastFrameError when no frames are left.
//The box, if given, is ignored.
func (M *Molecule) Next(output *v3.Matrix, box ...[]float64) error {
	if !M.Readable() {
		return newlastFrameError("", "Molecule.Next")
	}
	M.current++
	if output == nil {
		return nil
	}
	if output.NVecs() != M.Len() {
		return CError{fmt.Sprintf("Output matrix has %d vectors for %d atoms", output.NVecs(), M.Len()), []string{"Molecule.Next"}, true}
	}
	output.Copy(M.Coords[M.current-1])
	return nil
}

//Project puts in kept the coordinates of the molecule's atoms, taken
//from full, a frame with all the atom records of the original file.
func (M *Molecule) Project(kept, full *v3.Matrix) error {
	return kept.SomeVecsSafe(full, M.AtomMap)
}
