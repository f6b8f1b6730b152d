/*
 * sasa_test.go, part of gopops.
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

package sasa

import (
	"errors"
	"math"
	"strings"
	"testing"

	chem "github.com/rmera/gopops"
	"github.com/rmera/gopops/params"
	"github.com/rmera/gopops/topol"
	v3 "github.com/rmera/gopops/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const table = `
name = "sasa-test"
probe = 1.4

[connectivity]
p12 = 0.8875
p13 = 0.3516
p14 = 0.3516
p15 = 0.3156

[[residue]]
name = "RES"
  [[residue.atom]]
  name = "N"
  radius = 1.65
  parameter = 1.0
  polarity = 1
  ring = 0
  [[residue.atom]]
  name = "CA"
  radius = 1.87
  parameter = 1.0
  polarity = 0
  ring = 0
  [[residue.atom]]
  name = "C"
  radius = 1.76
  parameter = 1.0
  polarity = 0
  ring = 0
  [[residue.atom]]
  name = "O"
  radius = 1.4
  parameter = 1.0
  polarity = 1
  ring = 0
  [[residue.atom]]
  name = "CB"
  radius = 1.87
  parameter = 1.0
  polarity = 0
  ring = 0

[[residue]]
name = "REF"
surface = 500.0
  [[residue.atom]]
  name = "CA"
  radius = 1.87
  parameter = 1.0
  polarity = 0
  ring = 0

[[residue]]
name = "CAR"
  [[residue.atom]]
  name = "C"
  radius = 1.7
  parameter = 1.0
  polarity = 0
  ring = 0

[[residue]]
name = "UNK"
  [[residue.atom]]
  name = "CA"
  radius = 1.87
  parameter = 1.0
  polarity = 0
  ring = 0
`

type site struct {
	name  string
	res   string
	molid int
	icode string
	chain string
	x     float64
}

type system struct {
	mol    *chem.Topology
	coords *v3.Matrix
	pt     *params.ParameterTable
}

func load(t *testing.T, sites ...site) system {
	t.Helper()
	tab, err := params.Load(strings.NewReader(table))
	require.NoError(t, err)
	ats := make([]*chem.Atom, 0, len(sites))
	data := make([]float64, 0, 3*len(sites))
	for i, s := range sites {
		ats = append(ats, &chem.Atom{Name: s.name, MolName: s.res, MolID: s.molid, ICode: s.icode, Chain: s.chain, ID: i + 1})
		data = append(data, s.x, 0, 0)
	}
	top, err := chem.NewTopology(ats)
	require.NoError(t, err)
	_, err = params.Classify(top, tab)
	require.NoError(t, err)
	coords, err := v3.NewMatrix(data)
	require.NoError(t, err)
	return system{top, coords, tab.Params}
}

//calphas returns n CA atoms 1.5 A apart, each in its own residue.
func calphas(n int) []site {
	ret := make([]site, n)
	for i := range ret {
		ret[i] = site{"CA", "RES", i + 1, "", "A", 1.5 * float64(i)}
	}
	return ret
}

func TestTwoAtoms(t *testing.T) {
	s := load(t, site{"CA", "RES", 1, "", "A", 0}, site{"CA", "RES", 1, "", "A", 1.5})
	tp, err := topol.New(s.mol, s.coords, s.pt)
	require.NoError(t, err)
	tp.AddBonds(false)
	require.Len(t, tp.Bonds, 1)
	res, warnings, err := Compute(s.mol, tp, s.pt)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	surface := 4 * math.Pi * 3.27 * 3.27
	b := math.Pi * 3.27 * (6.54 - 1.5)
	want := surface * (1 - 0.8875*b/surface)
	for i, a := range res.Atoms {
		assert.InDelta(t, surface, a.Surface, 1e-9, "atom %d", i)
		assert.InDelta(t, want, a.SASA, 1e-9, "atom %d", i)
		assert.Equal(t, 1, a.NOverlap)
		assert.Equal(t, 0.0, a.Buried())
		require.Len(t, a.Params, 1)
		assert.InDelta(t, 0.8875*b, a.Params[0], 1e-9)
	}
	require.Len(t, res.Residues, 1)
	assert.InDelta(t, 2*want, res.Residues[0].SASA, 1e-9)
	assert.InDelta(t, 2*want, res.Molecule.SASA, 1e-9)
	assert.InDelta(t, 2*surface, res.Residues[0].Surface, 1e-9)
}

func TestMonotonic(t *testing.T) {
	s := load(t, calphas(7)...)
	tp, _, err := topol.Build(s.mol, s.coords, s.pt, false)
	require.NoError(t, err)
	res, _, err := Compute(s.mol, tp, s.pt)
	require.NoError(t, err)
	sum := 0.0
	for i, a := range res.Atoms {
		assert.LessOrEqual(t, a.SASA, a.Surface, "atom %d", i)
		assert.Greater(t, a.NOverlap, 0)
		sum += a.SASA
	}
	assert.InDelta(t, sum, res.Molecule.SASA, 1e-9)
	assert.InDelta(t, res.Molecule.SASA, res.Molecule.Phobic+res.Molecule.Philic, 1e-9)
	assert.InDelta(t, res.Molecule.Buried, res.Molecule.PhobicBuried+res.Molecule.PhilicBuried, 1e-9)
	//every neighbour is a hydrophobic CA on another residue
	assert.Greater(t, res.Molecule.PhobicBuried, 0.0)
	assert.Equal(t, 0.0, res.Molecule.PhilicBuried)
}

func TestOrder(t *testing.T) {
	s := load(t, calphas(5)...)
	tp, _, err := topol.Build(s.mol, s.coords, s.pt, false)
	require.NoError(t, err)
	fwd, _, err := compute(s.mol, tp, s.pt, order)
	require.NoError(t, err)
	rev, _, err := compute(s.mol, tp, s.pt, []topol.Class{topol.NonBonded, topol.Torsion, topol.Angle, topol.Bond})
	require.NoError(t, err)
	//the exposed surface comes from a product, but the buried surface
	//of each contact depends on the surface left by the previous ones.
	for i := range fwd.Atoms {
		assert.InDelta(t, fwd.Atoms[i].SASA, rev.Atoms[i].SASA, 1e-9)
	}
	assert.NotEqual(t, fwd.Atoms[2].PhobicBuried, rev.Atoms[2].PhobicBuried)
}

func TestSameResidueNotBuried(t *testing.T) {
	sites := calphas(5)
	for i := range sites {
		sites[i].molid = 1
	}
	s := load(t, sites...)
	tp, _, err := topol.Build(s.mol, s.coords, s.pt, false)
	require.NoError(t, err)
	res, _, err := Compute(s.mol, tp, s.pt)
	require.NoError(t, err)
	for _, a := range res.Atoms {
		assert.Equal(t, 0.0, a.Buried())
	}
}

func TestBuriedPolarity(t *testing.T) {
	//O is not a side chain atom, so it gets no buried surface. CA next to
	//it is buried by a hydrophilic atom.
	s := load(t, site{"CA", "RES", 1, "", "A", 0}, site{"O", "RES", 2, "", "A", 1.2})
	tp, err := topol.New(s.mol, s.coords, s.pt)
	require.NoError(t, err)
	tp.AddBonds(false)
	require.Len(t, tp.Bonds, 1)
	res, _, err := Compute(s.mol, tp, s.pt)
	require.NoError(t, err)
	assert.Greater(t, res.Atoms[0].PhilicBuried, 0.0)
	assert.Equal(t, 0.0, res.Atoms[0].PhobicBuried)
	assert.Equal(t, 0.0, res.Atoms[1].Buried())
	assert.InDelta(t, res.Atoms[0].SASA, res.Molecule.Phobic, 1e-9)
	assert.InDelta(t, res.Atoms[1].SASA, res.Molecule.Philic, 1e-9)
}

func TestAsymmetricPair(t *testing.T) {
	s := load(t, site{"CA", "RES", 1, "", "A", 0}, site{"O", "RES", 2, "", "A", 1.5})
	tp, err := topol.New(s.mol, s.coords, s.pt)
	require.NoError(t, err)
	tp.Bonds = [][2]int{{0, 1}}
	res, _, err := Compute(s.mol, tp, s.pt)
	require.NoError(t, err)

	si, sj := 4*math.Pi*3.27*3.27, 4*math.Pi*2.8*2.8
	bij := math.Pi * 3.27 * (6.07 - 1.5) * (1 + (1.4-1.87)/1.5)
	bji := math.Pi * 2.8 * (6.07 - 1.5) * (1 + (1.87-1.4)/1.5)
	assert.InDelta(t, 105.76026613123243, res.Atoms[0].SASA, 1e-9)
	assert.InDelta(t, 51.6641058932467, res.Atoms[1].SASA, 1e-9)
	assert.InDelta(t, si-0.8875*bij, res.Atoms[0].SASA, 1e-9)
	assert.InDelta(t, sj-0.8875*bji, res.Atoms[1].SASA, 1e-9)
	assert.InDelta(t, res.Atoms[0].SASA*0.8875*bij/si, res.Atoms[0].PhilicBuried, 1e-9)
	assert.Equal(t, 0.0, res.Atoms[1].Buried())
	require.Len(t, res.Atoms[0].Params, 1)
	assert.InDelta(t, 0.8875*bij, res.Atoms[0].Params[0], 1e-9)
	assert.InDelta(t, 0.8875*bji, res.Atoms[1].Params[0], 1e-9)
}

func TestNonBondedPair(t *testing.T) {
	s := load(t, site{"C", "CAR", 1, "", "A", 0}, site{"C", "CAR", 2, "", "A", 3.0})
	tp, err := topol.New(s.mol, s.coords, s.pt)
	require.NoError(t, err)
	tp.NonBonded = [][2]int{{0, 1}}
	res, _, err := Compute(s.mol, tp, s.pt)
	require.NoError(t, err)
	surface := 4 * math.Pi * 3.1 * 3.1
	b := math.Pi * 3.1 * (6.2 - 3.0)
	for i, a := range res.Atoms {
		assert.InDelta(t, 110.92727412058007, a.SASA, 1e-9, "atom %d", i)
		assert.InDelta(t, surface-0.3156*b, a.SASA, 1e-9, "atom %d", i)
		assert.Equal(t, 1, a.NOverlap)
	}
}

//Residues with the same number are still different residues if their
//chain or insertion code differ.
func TestResidueIdentityBuried(t *testing.T) {
	cases := []struct {
		name string
		a, b site
	}{
		{"chain", site{"CB", "RES", 5, "", "A", 0}, site{"CB", "RES", 5, "", "B", 4.0}},
		{"icode", site{"CB", "RES", 52, "", "A", 0}, site{"CB", "RES", 52, "A", "A", 4.0}},
		{"number", site{"CB", "RES", 5, "", "A", 0}, site{"CB", "RES", 6, "", "A", 4.0}},
	}
	surface := 4 * math.Pi * 3.27 * 3.27
	b := 0.3156 * math.Pi * 3.27 * (6.54 - 4.0)
	sasa := surface - b
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := load(t, c.a, c.b)
			tp, err := topol.New(s.mol, s.coords, s.pt)
			require.NoError(t, err)
			tp.NonBonded = [][2]int{{0, 1}}
			res, _, err := Compute(s.mol, tp, s.pt)
			require.NoError(t, err)
			for i, a := range res.Atoms {
				assert.InDelta(t, sasa, a.SASA, 1e-9, "atom %d", i)
				assert.InDelta(t, sasa*b/surface, a.PhobicBuried, 1e-9, "atom %d", i)
			}
		})
	}
	s := load(t, site{"CB", "RES", 5, "", "A", 0}, site{"CB", "RES", 5, "", "A", 4.0})
	tp, err := topol.New(s.mol, s.coords, s.pt)
	require.NoError(t, err)
	tp.NonBonded = [][2]int{{0, 1}}
	res, _, err := Compute(s.mol, tp, s.pt)
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Atoms[0].Buried())
}

func TestClash(t *testing.T) {
	s := load(t, calphas(2)...)
	tp, err := topol.New(s.mol, s.coords, s.pt)
	require.NoError(t, err)
	tp.Bonds = [][2]int{{1, 1}}
	res, _, err := Compute(s.mol, tp, s.pt)
	require.Error(t, err)
	assert.Nil(t, res)
	var cerr ClashError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, 1, cerr.Atom)
	assert.Equal(t, 2, cerr.ID)
}

func TestShortContact(t *testing.T) {
	s := load(t, site{"CA", "RES", 1, "", "A", 0}, site{"CA", "RES", 1, "", "A", 0.5})
	tp, err := topol.New(s.mol, s.coords, s.pt)
	require.NoError(t, err)
	tp.AddBonds(false)
	_, warnings, err := Compute(s.mol, tp, s.pt)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, "sasa", warnings[0].Stage)
}

func TestAggregate(t *testing.T) {
	sites := []site{
		{"N", "RES", 1, "", "A", 0},
		{"CA", "RES", 1, "", "A", 1.4},
		{"CA", "REF", 2, "", "A", 2.9},
		{"CA", "REF", 2, "A", "A", 4.4},
		{"CA", "RES", 2, "A", "B", 5.9},
		{"CB", "RES", 2, "A", "B", 7.4},
	}
	s := load(t, sites...)
	tp, err := topol.New(s.mol, s.coords, s.pt)
	require.NoError(t, err)
	tp.AddBonds(false)
	tp.AddAngles()
	tp.AddTorsions()
	require.NoError(t, tp.AddNonBonded())
	res, _, err := Compute(s.mol, tp, s.pt)
	require.NoError(t, err)

	require.Len(t, res.Residues, 4)
	firsts := []int{0, 2, 3, 4}
	lasts := []int{1, 2, 3, 5}
	for i, r := range res.Residues {
		assert.Equal(t, firsts[i], r.First)
		assert.Equal(t, firsts[i], r.Ref)
		assert.Equal(t, lasts[i], r.Last)
	}
	assert.InDelta(t, res.Atoms[0].Surface+res.Atoms[1].Surface, res.Residues[0].Surface, 1e-9)
	assert.Equal(t, 500.0, res.Residues[1].Surface)
	assert.InDelta(t, res.Residues[1].SASA/500, res.Residues[1].Ratio(), 1e-12)

	require.Len(t, res.Chains, 2)
	assert.Equal(t, 0, res.Chains[0].First)
	assert.Equal(t, 3, res.Chains[0].Last)
	assert.Equal(t, 4, res.Chains[1].First)
	assert.Equal(t, 5, res.Chains[1].Last)
	assert.InDelta(t, res.Residues[0].Surface+1000, res.Chains[0].Surface, 1e-9)
	assert.InDelta(t, res.Chains[0].SASA+res.Chains[1].SASA, res.Molecule.SASA, 1e-9)
	assert.InDelta(t, res.Chains[0].Surface+res.Chains[1].Surface, res.Molecule.Surface, 1e-9)
	assert.Equal(t, 5, res.Molecule.Last)
	assert.InDelta(t, res.Atoms[0].SASA, res.Residues[0].Philic, 1e-9)
}

func TestRatio(t *testing.T) {
	assert.True(t, math.IsNaN(Record{SASA: 10}.Ratio()))
	assert.Equal(t, 1.5, Record{SASA: 15, Surface: 10}.Ratio())
}
