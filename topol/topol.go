/*
 * topol.go, part of gopops.
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

//Package topol derives the molecular topology used by the POPS surface
//model: covalent bonds (1-2 contacts), angles (1-3), torsions (1-4), and
//non-bonded overlaps (>1-4) between atoms whose solvent-expanded spheres
//intersect.
//
//Only distances and the parameter table are used. No connectivity records
//are read from the structure file.
package topol

import (
	"fmt"

	chem "github.com/rmera/gopops"
	"github.com/rmera/gopops/params"
	v3 "github.com/rmera/gopops/v3"
	"gonum.org/v1/gonum/graph/simple"
)

//Class is a contact class
type Class int

//The contact classes, in the order in which the surface is accumulated.
const (
	Bond Class = iota
	Angle
	Torsion
	NonBonded
)

func (c Class) String() string {
	switch c {
	case Bond:
		return "1-2"
	case Angle:
		return "1-3"
	case Torsion:
		return "1-4"
	case NonBonded:
		return ">1-4"
	}
	return fmt.Sprintf("Class(%d)", int(c))
}

func (c Class) plural() string {
	switch c {
	case Bond:
		return "bonds"
	case Angle:
		return "angles"
	case Torsion:
		return "torsions"
	}
	return "non-bonded pairs"
}

//MaxNeighbours is the capacity of the non-bonded neighbour list of each atom.
const MaxNeighbours = 1023

//ShortBond is the distance (A) below which a bond produces a warning.
const ShortBond = 0.5

//Bond cutoff factors. The cutoff is factor*(r_i+r_j).
const (
	bondFactor       = 0.5
	coarsePhosFactor = 0.7
)

//Topology contains the contacts between the atoms of one structure.
//All the tuples refer to atom indexes.
type Topology struct {
	Bonds     [][2]int
	Angles    [][3]int //outer, center, outer
	Torsions  [][4]int
	NonBonded [][2]int

	//Neighbours[i] are the non-bonded neighbours of atom i
	Neighbours [][]int

	//InterfaceNN[i] is the nearest non-bonded neighbour of atom i
	//on a different chain, or -1. InterfaceDist[i] is its distance.
	InterfaceNN   []int
	InterfaceDist []float64

	state  *simple.UndirectedGraph //1-2, 1-3 and 1-4 relations
	mol    chem.Atomer
	coords *v3.Matrix
	par    []params.AtomParam
	probe  float64
}

//New returns an empty topology for the atoms in mol, with coordinates coords, and
//parameters from pt. The atoms need to be already classified.
func New(mol chem.Atomer, coords *v3.Matrix, pt *params.ParameterTable) (*Topology, error) {
	n := mol.Len()
	if n < 2 {
		return nil, Error{fmt.Sprintf("need at least 2 atoms, found %d, try coarse mode", n), []string{"New"}, true}
	}
	if coords.NVecs() != n {
		return nil, Error{fmt.Sprintf("%d atoms but %d coordinates", n, coords.NVecs()), []string{"New"}, true}
	}
	t := &Topology{
		Neighbours:    make([][]int, n),
		InterfaceNN:   make([]int, n),
		InterfaceDist: make([]float64, n),
		state:         simple.NewUndirectedGraph(),
		mol:           mol,
		coords:        coords,
		par:           make([]params.AtomParam, n),
		probe:         pt.Probe(),
	}
	for i := 0; i < n; i++ {
		at := mol.Atom(i)
		p, ok := pt.Atom(params.Key{Res: at.ResType, Atom: at.AtomType})
		if !ok {
			return nil, Error{fmt.Sprintf("No parameters for atom %s %d (%s %d)", at.Name, at.ID, at.MolName, at.MolID), []string{"New"}, true}
		}
		t.par[i] = p
		t.InterfaceNN[i] = -1
		t.InterfaceDist[i] = -1
		t.state.AddNode(simple.Node(i))
	}
	return t, nil
}

//Build derives the complete topology for the atoms in mol. If coarse is true,
//phosphorus atoms in nucleotides get a longer bond cutoff.
//If fewer than 2 bonds, angles or torsions are found, it returns a nil
//topology and an InsufficientError with all the classes that fall short.
func Build(mol chem.Atomer, coords *v3.Matrix, pt *params.ParameterTable, coarse bool) (*Topology, []chem.Warning, error) {
	t, err := New(mol, coords, pt)
	if err != nil {
		return nil, nil, errDecorate(err, "Build")
	}
	warnings := t.AddBonds(coarse)
	t.AddAngles()
	t.AddTorsions()
	var deficits []Deficit
	for _, v := range []Deficit{{Bond, len(t.Bonds)}, {Angle, len(t.Angles)}, {Torsion, len(t.Torsions)}} {
		if v.Found < 2 {
			deficits = append(deficits, v)
		}
	}
	if len(deficits) > 0 {
		return nil, warnings, InsufficientError{Deficits: deficits, deco: []string{"Build"}}
	}
	if err := t.AddNonBonded(); err != nil {
		return nil, warnings, errDecorate(err, "Build")
	}
	return t, warnings, nil
}

//Len returns the number of atoms in the topology
func (t *Topology) Len() int { return len(t.par) }

//Param returns the parameters of atom i
func (t *Topology) Param(i int) params.AtomParam { return t.par[i] }

//Probe returns the solvent radius used for the overlap cutoffs.
func (t *Topology) Probe() float64 { return t.probe }

//Dist returns the distance between atoms i and j.
func (t *Topology) Dist(i, j int) float64 { return t.coords.Dist(i, j) }

//Related returns true if atoms i and j are in a 1-2, 1-3 or 1-4 relation.
func (t *Topology) Related(i, j int) bool {
	return t.state.HasEdgeBetween(int64(i), int64(j))
}

//Cutoff returns the overlap cutoff for atoms i and j, the distance
//at which their solvent-expanded spheres touch.
func (t *Topology) Cutoff(i, j int) float64 {
	return t.par[i].Radius + t.par[j].Radius + 2*t.probe
}

func (t *Topology) relate(i, j int) {
	if i == j {
		return
	}
	t.state.SetEdge(t.state.NewEdge(simple.Node(i), simple.Node(j)))
}

//AddBonds finds the covalent bonds. Two atoms on the same chain, in the same or
//consecutive residues, are bonded if their distance is shorter than half the sum
//of their radii (0.7 times the sum, for phosphorus in coarse mode).
func (t *Topology) AddBonds(coarse bool) []chem.Warning {
	var warnings []chem.Warning
	n := t.Len()
	for i := 0; i < n-1; i++ {
		ati := t.mol.Atom(i)
		factor := bondFactor
		if coarse && ati.Name == "P" {
			factor = coarsePhosFactor
		}
		for j := i + 1; j < n; j++ {
			atj := t.mol.Atom(j)
			if atj.Chain != ati.Chain || (atj.MolID != ati.MolID && atj.MolID != ati.MolID+1) {
				continue
			}
			d := t.coords.Dist(i, j)
			if d >= factor*(t.par[i].Radius+t.par[j].Radius) {
				continue
			}
			t.Bonds = append(t.Bonds, [2]int{i, j})
			t.relate(i, j)
			if d < ShortBond {
				warnings = append(warnings, chem.Warning{Stage: "topology", Atoms: []int{i, j}, Message: fmt.Sprintf("atoms too close (%.3f A)", d)})
			}
		}
	}
	return warnings
}

//AddAngles builds the angles from every pair of bonds that share an atom.
//Only the first shared atom found for each pair is used.
func (t *Topology) AddAngles() {
	b := t.Bonds
	for i := 0; i < len(b)-1; i++ {
		for j := i + 1; j < len(b); j++ {
			var a [3]int
			switch {
			case b[i][0] == b[j][0]:
				a = [3]int{b[i][1], b[i][0], b[j][1]}
			case b[i][0] == b[j][1]:
				a = [3]int{b[i][1], b[i][0], b[j][0]}
			case b[i][1] == b[j][0]:
				a = [3]int{b[i][0], b[i][1], b[j][1]}
			case b[i][1] == b[j][1]:
				a = [3]int{b[i][0], b[i][1], b[j][0]}
			default:
				continue
			}
			t.Angles = append(t.Angles, a)
			t.relate(a[0], a[2])
		}
	}
}

//ring returns the number of atoms in the angle a that belong to a ring.
func (t *Topology) ring(a [3]int) int {
	return t.par[a[0]].Ring + t.par[a[1]].Ring + t.par[a[2]].Ring
}

//AddTorsions builds the torsions from every pair of angles that share
//two consecutive atoms. Pairs of angles that lie entirely within a ring are
//skipped.
func (t *Topology) AddTorsions() {
	a := t.Angles
	for i := 0; i < len(a)-1; i++ {
		ri := t.ring(a[i])
		for j := i + 1; j < len(a); j++ {
			if ri == 3 && t.ring(a[j]) == 3 {
				continue
			}
			var tor [4]int
			switch {
			case a[i][0] == a[j][1] && a[i][1] == a[j][0]:
				tor = [4]int{a[j][2], a[i][0], a[i][1], a[i][2]}
			case a[i][0] == a[j][1] && a[i][1] == a[j][2]:
				tor = [4]int{a[j][0], a[i][0], a[i][1], a[i][2]}
			case a[i][2] == a[j][1] && a[i][1] == a[j][0]:
				tor = [4]int{a[i][0], a[i][1], a[i][2], a[j][2]}
			case a[i][2] == a[j][1] && a[i][1] == a[j][2]:
				tor = [4]int{a[i][0], a[i][1], a[i][2], a[j][0]}
			default:
				continue
			}
			t.Torsions = append(t.Torsions, tor)
			t.relate(tor[0], tor[3])
		}
	}
}

//AddNonBonded finds every pair of atoms closer than their overlap cutoff that
//is not in a 1-2, 1-3 or 1-4 relation. It fills the neighbour lists and the
//nearest neighbours on other chains.
func (t *Topology) AddNonBonded() error {
	n := t.Len()
	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			d := t.coords.Dist(i, j)
			if d >= t.Cutoff(i, j) || t.Related(i, j) {
				continue
			}
			if len(t.Neighbours[i]) >= MaxNeighbours {
				return CapacityError{Atom: i, Capacity: MaxNeighbours, deco: []string{"AddNonBonded"}}
			}
			if len(t.Neighbours[j]) >= MaxNeighbours {
				return CapacityError{Atom: j, Capacity: MaxNeighbours, deco: []string{"AddNonBonded"}}
			}
			t.NonBonded = append(t.NonBonded, [2]int{i, j})
			t.Neighbours[i] = append(t.Neighbours[i], j)
			t.Neighbours[j] = append(t.Neighbours[j], i)
			if t.mol.Atom(i).Chain == t.mol.Atom(j).Chain {
				continue
			}
			t.nearest(i, j, d)
			t.nearest(j, i, d)
		}
	}
	return nil
}

func (t *Topology) nearest(i, j int, d float64) {
	if t.InterfaceNN[i] < 0 || d < t.InterfaceDist[i] {
		t.InterfaceNN[i] = j
		t.InterfaceDist[i] = d
	}
}
