/*
 * params.go, part of gopops.
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

//Package params holds the static tables used by the surface and solvation calculations:
//the parameter table (radii, SASA parameters, polarity and ring flags), the sigma table
//(solvation coefficients) and the group table. It also classifies the atoms of a
//structure against those tables.
package params

import (
	"fmt"
	"math"
)

//Key identifies an atom type: the residue type and the atom type within that residue.
type Key struct {
	Res  int
	Atom int
}

//Polarity values
const (
	Phobic = 0
	Philic = 1
)

//AtomParam holds the SASA parameters for one atom type.
type AtomParam struct {
	Name     string
	Radius   float64
	Param    float64
	Polarity int
	Ring     int
	Surface  float64 //isolated sphere surface, 4π(r+rs)², for the table's probe.
}

//Connectivity contains the weights for the four contact classes.
type Connectivity struct {
	Bond      float64 //1-2
	Angle     float64 //1-3
	Torsion   float64 //1-4
	NonBonded float64 //>1-4
}

type residue struct {
	name    string
	surface float64
	atoms   []AtomParam
	byName  map[string]int
}

//ParameterTable is the immutable table with the SASA parameters per atom type,
//the connectivity weights and the probe (solvent) radius.
type ParameterTable struct {
	name     string
	probe    float64
	connect  Connectivity
	residues []residue
	byName   map[string]int
}

func sphere(r, probe float64) float64 {
	rs := r + probe
	return 4 * math.Pi * rs * rs
}

//Name returns the name given to the table in its file.
func (t *ParameterTable) Name() string { return t.name }

//Probe returns the solvent radius.
func (t *ParameterTable) Probe() float64 { return t.probe }

//Connectivity returns the contact class weights
func (t *ParameterTable) Connectivity() Connectivity { return t.connect }

//NResidues returns the number of residue types in the table
func (t *ParameterTable) NResidues() int { return len(t.residues) }

//Atom returns the parameters for the atom type k. The second return value
//is false if there is no such type.
func (t *ParameterTable) Atom(k Key) (AtomParam, bool) {
	if k.Res < 0 || k.Res >= len(t.residues) {
		return AtomParam{}, false
	}
	r := t.residues[k.Res]
	if k.Atom < 0 || k.Atom >= len(r.atoms) {
		return AtomParam{}, false
	}
	return r.atoms[k.Atom], true
}

//ResidueName returns the name of the residue type res, or an empty string.
func (t *ParameterTable) ResidueName(res int) string {
	if res < 0 || res >= len(t.residues) {
		return ""
	}
	return t.residues[res].name
}

//ResidueSurface returns the reference surface for the residue type res, or 0
//if the table doesn't set one.
func (t *ParameterTable) ResidueSurface(res int) float64 {
	if res < 0 || res >= len(t.residues) {
		return 0
	}
	return t.residues[res].surface
}

//Residue returns the type id for the residue named name.
func (t *ParameterTable) Residue(name string) (int, bool) {
	i, ok := t.byName[name]
	return i, ok
}

//Lookup returns the key for the atom atname of residue resname.
func (t *ParameterTable) Lookup(resname, atname string) (Key, bool) {
	r, ok := t.byName[resname]
	if !ok {
		return Key{}, false
	}
	a, ok := t.residues[r].byName[atname]
	if !ok {
		return Key{}, false
	}
	return Key{r, a}, true
}

//WithProbe returns a copy of the table with a different probe radius. The isolated
//surfaces are recomputed. The probe must be positive.
func (t *ParameterTable) WithProbe(probe float64) (*ParameterTable, error) {
	if probe <= 0 || math.IsNaN(probe) {
		return nil, Error{fmt.Sprintf("Probe radius must be positive, got %f", probe), []string{"WithProbe"}, true}
	}
	ret := &ParameterTable{name: t.name, probe: probe, connect: t.connect, byName: t.byName}
	ret.residues = make([]residue, len(t.residues))
	for i, r := range t.residues {
		nr := r
		nr.atoms = make([]AtomParam, len(r.atoms))
		for j, a := range r.atoms {
			a.Surface = sphere(a.Radius, probe)
			nr.atoms[j] = a
		}
		ret.residues[i] = nr
	}
	return ret, nil
}

//Sigma contains the two solvation coefficients of an atom type.
type Sigma struct {
	Type  float64
	Group float64
}

//SigmaTable gives the solvation coefficients per atom type. It uses
//the same keys as the ParameterTable it was loaded with.
type SigmaTable struct {
	m map[Key]Sigma
}

//Sigma returns the coefficients for the atom type k.
func (s *SigmaTable) Sigma(k Key) (Sigma, bool) {
	v, ok := s.m[k]
	return v, ok
}

//Group is the entry of an atom in the group table.
type Group struct {
	ID   int
	Type int
}

//GroupTable assigns a group id and a group atom type to atoms, by residue and atom name.
type GroupTable struct {
	m map[string]map[string]Group
}

//Group returns the group for the atom atname of residue resname.
func (g *GroupTable) Group(resname, atname string) (Group, bool) {
	r, ok := g.m[resname]
	if !ok {
		return Group{}, false
	}
	v, ok := r[atname]
	return v, ok
}

//HasResidue returns true if the group table has entries for resname.
func (g *GroupTable) HasResidue(resname string) bool {
	_, ok := g.m[resname]
	return ok
}

//Tables puts together the three tables that are loaded from a parameter file.
type Tables struct {
	Params *ParameterTable
	Sigma  *SigmaTable
	Groups *GroupTable
}

//WithProbe returns a copy of the tables where the parameter table has the probe radius given.
func (t *Tables) WithProbe(probe float64) (*Tables, error) {
	p, err := t.Params.WithProbe(probe)
	if err != nil {
		return nil, errDecorate(err, "Tables.WithProbe")
	}
	return &Tables{Params: p, Sigma: t.Sigma, Groups: t.Groups}, nil
}
