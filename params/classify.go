/*
 * classify.go, part of gopops.
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

package params

import (
	"fmt"
	"strings"

	chem "github.com/rmera/gopops"
)

//Special residue names in the tables.
const (
	UnknownResidue = "UNK" //unknown polymer residues get this type
	AnyResidue     = "ANY" //holds the atoms that don't belong to a particular residue
)

//atom names that are looked up in the AnyResidue when they are not in their own residue.
var anyAtoms = []string{"OXT", "O1", "O2"}

func isAnyAtom(name string) bool {
	for _, v := range anyAtoms {
		if v == name {
			return true
		}
	}
	return false
}

//atomKey finds the type of the atom atname in the residue type res, falling back to the
//AnyResidue for the atoms that are not residue-specific.
func (t *ParameterTable) atomKey(res int, atname string) (Key, bool) {
	if a, ok := t.residues[res].byName[atname]; ok {
		return Key{res, a}, true
	}
	if isAnyAtom(atname) {
		return t.Lookup(AnyResidue, atname)
	}
	return Key{}, false
}

func (g *GroupTable) lookup(resname, atname string) (Group, bool) {
	if !g.HasResidue(resname) {
		resname = UnknownResidue
	}
	if gr, ok := g.Group(resname, atname); ok {
		return gr, true
	}
	if isAnyAtom(atname) {
		return g.Group(AnyResidue, atname)
	}
	return Group{}, false
}

type resID struct {
	chain string
	molid int
	icode string
}

//Classify sets the residue and atom types, and the group id and group atom type, of each
//atom in mol. Residues not in the table are given the UnknownResidue type, and atoms without
//a group get group 0. Both situations produce warnings. An atom that can't be given a type
//is an error, as there are no parameters for it.
func Classify(mol chem.Atomer, t *Tables) ([]chem.Warning, error) {
	var warnings []chem.Warning
	pt := t.Params
	unk, hasunk := pt.Residue(UnknownResidue)
	warned := make(map[resID]bool)
	for i := 0; i < mol.Len(); i++ {
		at := mol.Atom(i)
		resname := strings.TrimSpace(at.MolName)
		atname := strings.TrimSpace(at.Name)
		res, ok := pt.Residue(resname)
		if !ok {
			if !hasunk {
				return warnings, ClassifyError{Atom: i, ID: at.ID, Name: atname, Residue: resname, deco: []string{"Classify: no " + UnknownResidue + " residue in table"}}
			}
			id := resID{at.Chain, at.MolID, at.ICode}
			if !warned[id] {
				warnings = append(warnings, chem.Warning{Stage: "classify", Atoms: []int{i},
					Message: fmt.Sprintf("Unknown residue name '%s' of residue number %d, setting residue type to %s", resname, at.MolID, UnknownResidue)})
				warned[id] = true
			}
			res = unk
		}
		k, ok := pt.atomKey(res, atname)
		if !ok {
			return warnings, ClassifyError{Atom: i, ID: at.ID, Name: atname, Residue: resname, deco: []string{"Classify"}}
		}
		at.ResType = k.Res
		at.AtomType = k.Atom
		if t.Groups == nil {
			continue
		}
		g, ok := t.Groups.lookup(resname, atname)
		if !ok {
			warnings = append(warnings, chem.Warning{Stage: "classify", Atoms: []int{i},
				Message: fmt.Sprintf("Unknown group of atom %s in residue %s %d, setting group to 0", atname, resname, at.MolID)})
		}
		at.Group = g.ID
		at.GroupType = g.Type
	}
	return warnings, nil
}
