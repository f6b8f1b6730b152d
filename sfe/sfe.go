/*
 * sfe.go, part of gopops.
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

//Package sfe obtains the solvation free energy (SFE) of a structure from its
//POPS SASA. Each atom contributes its SASA, in nm², times a solvation coefficient.
//Two coefficients are used: one per atom type and one per chemical group.
package sfe

import (
	"fmt"

	chem "github.com/rmera/gopops"
	"github.com/rmera/gopops/params"
	"github.com/rmera/gopops/sasa"
)

//Value is the solvation free energy computed with the atom type
//and with the group coefficients.
type Value struct {
	Type  float64
	Group float64
}

func (v *Value) add(w Value) {
	v.Type += w.Type
	v.Group += w.Group
}

//Record is the SFE of a residue or chain, with the indexes of its
//first and last atoms. Ref is the atom used to label the record.
type Record struct {
	Value
	First, Last int
	Ref         int
}

//Result contains the SFE of a structure at every level.
type Result struct {
	Atoms    []Value
	Residues []Record
	Chains   []Record
	Molecule Value
}

//Compute returns the SFE of the atoms in mol, given their SASA in s and the coefficients in st.
func Compute(mol chem.Atomer, s *sasa.Result, st *params.SigmaTable) (*Result, error) {
	if mol.Len() != len(s.Atoms) {
		return nil, Error{fmt.Sprintf("Molecule with %d atoms and SASA for %d", mol.Len(), len(s.Atoms)), []string{"Compute"}, true}
	}
	ret := &Result{Atoms: make([]Value, mol.Len())}
	for i := range ret.Atoms {
		at := mol.Atom(i)
		sig, ok := st.Sigma(params.Key{Res: at.ResType, Atom: at.AtomType})
		if !ok {
			return nil, Error{fmt.Sprintf("No solvation coefficients for atom %s %d", at.Name, at.ID), []string{"Compute"}, true}
		}
		nm2 := s.Atoms[i].SASA / 100
		ret.Atoms[i] = Value{Type: nm2 * sig.Type, Group: nm2 * sig.Group}
	}
	for i, v := range ret.Atoms {
		at := mol.Atom(i)
		if i == 0 || residueChange(mol.Atom(i-1), at) {
			ret.Residues = append(ret.Residues, Record{First: i, Ref: i})
		}
		if i == 0 || at.Chain != mol.Atom(i-1).Chain {
			ret.Chains = append(ret.Chains, Record{First: i, Ref: i})
		}
		r := &ret.Residues[len(ret.Residues)-1]
		c := &ret.Chains[len(ret.Chains)-1]
		r.Last, c.Last = i, i
		r.add(v)
		c.add(v)
		ret.Molecule.add(v)
	}
	return ret, nil
}

func residueChange(prev, cur *chem.Atom) bool {
	return cur.Chain != prev.Chain || cur.MolID != prev.MolID || cur.ICode != prev.ICode
}

//Error is the general error type for the sfe package. It implements chem.Error
type Error struct {
	message  string
	deco     []string
	critical bool
}

func (err Error) Error() string { return err.message }

//Decorate adds new information to the error
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }
