/*
 * sasa.go, part of gopops.
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

//Package sasa computes the POPS solvent accessible surface area (SASA) of each atom,
//and its buried surface (bSASA) split into hydrophobic and hydrophilic contacts.
//The atomic values are then added up per residue, chain and for the whole molecule.
//
//The surface of each atom starts as that of the isolated, solvent-expanded
//sphere, and is reduced multiplicatively by every contact in the topology.
//The reductions are applied for all bonds, then all angles, all torsions and
//finally all non-bonded overlaps. The reductions are factors of a product, so the
//exposed SASA does not depend on their order. The buried surface does: each
//contact buries a share of the SASA left after the contacts applied before it.
package sasa

import (
	"fmt"
	"math"

	chem "github.com/rmera/gopops"
	"github.com/rmera/gopops/params"
	"github.com/rmera/gopops/topol"
)

//ShortContact is the distance (A) below which a contact produces a warning.
//It is the bond length in the H2 molecule.
const ShortContact = 0.74

//Atom contains the surface values of one atom.
type Atom struct {
	Surface      float64 //surface of the isolated atom
	SASA         float64
	NOverlap     int //number of contacts in which the atom overlaps with another
	PhobicBuried float64
	PhilicBuried float64

	//Params holds p*b for each contact of the atom in which there was
	//overlap, in the order the contacts were applied.
	Params []float64
}

//Buried returns the total buried surface of the atom.
func (a Atom) Buried() float64 { return a.PhobicBuried + a.PhilicBuried }

//Ratio returns the exposed fraction of the atom's surface.
func (a Atom) Ratio() float64 { return ratio(a.SASA, a.Surface) }

//Record contains the added-up surface values for a residue, a chain or
//a molecule.
type Record struct {
	First, Last int //indexes of the first and last atoms
	Ref         int //atom used to label the record
	Surface     float64
	Phobic      float64 //exposed surface of hydrophobic atoms
	Philic      float64
	SASA        float64
	NOverlap    int

	PhobicBuried float64
	PhilicBuried float64
	Buried       float64
}

//Ratio returns SASA/Surface. It is not clamped, and is NaN if
//the surface is 0.
func (r Record) Ratio() float64 { return ratio(r.SASA, r.Surface) }

func ratio(sasa, surface float64) float64 {
	if surface == 0 {
		return math.NaN()
	}
	return sasa / surface
}

//Result contains the SASA of one structure at every level.
type Result struct {
	Atoms    []Atom
	Residues []Record
	Chains   []Record
	Molecule Record
}

//order is the order in which contact classes reduce the surface.
var order = []topol.Class{topol.Bond, topol.Angle, topol.Torsion, topol.NonBonded}

//Compute obtains the SASA and bSASA for the atoms in mol, with the topology top and the parameters
//in pt. mol has to be already classified. A contact of an atom with itself is an error, while
//contacts shorter than ShortContact give warnings.
func Compute(mol chem.Atomer, top *topol.Topology, pt *params.ParameterTable) (*Result, []chem.Warning, error) {
	res, warnings, err := compute(mol, top, pt, order)
	if err != nil {
		return nil, warnings, errDecorate(err, "Compute")
	}
	return res, warnings, nil
}

func compute(mol chem.Atomer, top *topol.Topology, pt *params.ParameterTable, order []topol.Class) (*Result, []chem.Warning, error) {
	if mol.Len() != top.Len() {
		return nil, nil, Error{fmt.Sprintf("Molecule with %d atoms and topology with %d", mol.Len(), top.Len()), []string{"compute"}, true}
	}
	s := &accumulator{mol: mol, top: top, atoms: make([]Atom, mol.Len())}
	for i := range s.atoms {
		s.atoms[i].Surface = top.Param(i).Surface
		s.atoms[i].SASA = s.atoms[i].Surface
	}
	c := pt.Connectivity()
	for _, class := range order {
		var err error
		switch class {
		case topol.Bond:
			for _, v := range top.Bonds {
				if err = s.contact(c.Bond, v[0], v[1]); err != nil {
					break
				}
			}
		case topol.Angle:
			for _, v := range top.Angles {
				if err = s.contact(c.Angle, v[0], v[2]); err != nil {
					break
				}
			}
		case topol.Torsion:
			for _, v := range top.Torsions {
				if err = s.contact(c.Torsion, v[0], v[3]); err != nil {
					break
				}
			}
		case topol.NonBonded:
			for _, v := range top.NonBonded {
				if err = s.contact(c.NonBonded, v[0], v[1]); err != nil {
					break
				}
			}
		}
		if err != nil {
			return nil, s.warnings, errDecorate(err, "compute")
		}
	}
	res := &Result{Atoms: s.atoms}
	res.Residues, res.Chains, res.Molecule = aggregate(mol, s.atoms, pt)
	return res, s.warnings, nil
}

type accumulator struct {
	mol      chem.Atomer
	top      *topol.Topology
	atoms    []Atom
	warnings []chem.Warning
}

//sideChain returns true if the atom type is CA or a side chain atom.
func sideChain(at *chem.Atom) bool {
	return at.AtomType == 1 || at.AtomType > 3
}

//contact reduces the surface of atoms i and j according to their overlap, with the
//connectivity parameter p.
func (s *accumulator) contact(p float64, i, j int) error {
	if i == j {
		return ClashError{Atom: i, ID: s.mol.Atom(i).ID, deco: []string{"contact"}}
	}
	cutoff := s.top.Cutoff(i, j)
	d := s.top.Dist(i, j)
	if cutoff < d {
		return nil
	}
	if d < ShortContact {
		s.warnings = append(s.warnings, chem.Warning{Stage: "sasa", Atoms: []int{i, j}, Message: fmt.Sprintf("atom distance too short (%.3f A)", d)})
	}
	pi, pj := s.top.Param(i), s.top.Param(j)
	probe := s.top.Probe()
	cc2 := cutoff - d
	bij := math.Pi * (pi.Radius + probe) * cc2 * (1 + (pj.Radius-pi.Radius)/d)
	bji := math.Pi * (pj.Radius + probe) * cc2 * (1 + (pi.Radius-pj.Radius)/d)
	ai, aj := &s.atoms[i], &s.atoms[j]
	ai.NOverlap++
	aj.NOverlap++
	ai.SASA *= 1 - p*bij*pi.Param/ai.Surface
	aj.SASA *= 1 - p*bji*pj.Param/aj.Surface
	ati, atj := s.mol.Atom(i), s.mol.Atom(j)
	if newResidue(ati, atj) {
		bury(ai, ati, pj, p*bij*pi.Param)
		bury(aj, atj, pi, p*bji*pj.Param)
	}
	ai.Params = append(ai.Params, p*bij)
	aj.Params = append(aj.Params, p*bji)
	return nil
}

//bury adds the surface of a buried by a neighbour with parameters neigh.
//pb is the product of the connectivity parameter, b and the atom parameter.
func bury(a *Atom, at *chem.Atom, neigh params.AtomParam, pb float64) {
	if !sideChain(at) {
		return
	}
	buried := a.SASA * pb / a.Surface
	switch neigh.Polarity {
	case params.Phobic:
		a.PhobicBuried += buried
	case params.Philic:
		a.PhilicBuried += buried
	}
}

//newResidue returns true if cur doesn't belong to the same residue as prev.
func newResidue(prev, cur *chem.Atom) bool {
	return cur.MolID != prev.MolID || cur.ICode != prev.ICode || cur.Chain != prev.Chain
}

func (r *Record) add(a Atom, polarity int) {
	if polarity == params.Phobic {
		r.Phobic += a.SASA
	} else {
		r.Philic += a.SASA
	}
	r.SASA += a.SASA
	r.NOverlap += a.NOverlap
	r.PhobicBuried += a.PhobicBuried
	r.PhilicBuried += a.PhilicBuried
	r.Buried += a.Buried()
}

//aggregate adds up the atomic values into residues, chains and the molecule, in
//a single pass over the atoms.
func aggregate(mol chem.Atomer, atoms []Atom, pt *params.ParameterTable) (residues, chains []Record, molecule Record) {
	var atsurf []float64 //summed atom surfaces for each residue
	for i := 0; i < mol.Len(); i++ {
		at := mol.Atom(i)
		if i == 0 || newResidue(mol.Atom(i-1), at) {
			residues = append(residues, Record{First: i, Ref: i, Surface: pt.ResidueSurface(at.ResType)})
			atsurf = append(atsurf, 0)
		}
		if i == 0 || at.Chain != mol.Atom(i-1).Chain {
			chains = append(chains, Record{First: i, Ref: i})
		}
		r := &residues[len(residues)-1]
		c := &chains[len(chains)-1]
		r.Last, c.Last = i, i
		atsurf[len(atsurf)-1] += atoms[i].Surface
		p, _ := pt.Atom(params.Key{Res: at.ResType, Atom: at.AtomType})
		r.add(atoms[i], p.Polarity)
		c.add(atoms[i], p.Polarity)
		molecule.add(atoms[i], p.Polarity)
	}
	//the chain surface is that of its residues.
	ch := 0
	for i := range residues {
		r := &residues[i]
		if r.Surface <= 0 {
			r.Surface = atsurf[i]
		}
		for chains[ch].Last < r.First {
			ch++
		}
		chains[ch].Surface += r.Surface
		molecule.Surface += r.Surface
	}
	if len(atoms) > 0 {
		molecule.Last = len(atoms) - 1
	}
	return residues, chains, molecule
}
