/*
 * sfe_test.go, part of gopops.
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

package sfe

import (
	"strings"
	"testing"

	chem "github.com/rmera/gopops"
	"github.com/rmera/gopops/params"
	"github.com/rmera/gopops/sasa"
	"github.com/rmera/gopops/topol"
	v3 "github.com/rmera/gopops/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const table = `
name = "sfe-test"
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
  sigma_type = -10.0
  sigma_group = -20.0
  [[residue.atom]]
  name = "CA"
  radius = 1.87
  parameter = 1.0
  polarity = 0
  ring = 0
  sigma_type = 2.0
  sigma_group = 4.0

[[residue]]
name = "UNK"
  [[residue.atom]]
  name = "CA"
  radius = 1.87
  parameter = 1.0
  polarity = 0
  ring = 0
`

func load(t *testing.T) (*chem.Topology, *v3.Matrix, *params.Tables) {
	t.Helper()
	tab, err := params.Load(strings.NewReader(table))
	require.NoError(t, err)
	specs := []struct {
		name  string
		molid int
		icode string
		chain string
	}{
		{"N", 1, "", "A"},
		{"CA", 1, "", "A"},
		{"N", 2, "", "A"},
		{"CA", 2, "", "A"},
		{"N", 2, "B", "A"},
		{"CA", 2, "B", "A"},
		{"N", 2, "B", "B"},
		{"CA", 2, "B", "B"},
	}
	var ats []*chem.Atom
	var data []float64
	for i, s := range specs {
		ats = append(ats, &chem.Atom{Name: s.name, MolName: "RES", MolID: s.molid, ICode: s.icode, Chain: s.chain, ID: i + 1})
		data = append(data, 1.45*float64(i), 0, 0)
	}
	top, err := chem.NewTopology(ats)
	require.NoError(t, err)
	_, err = params.Classify(top, tab)
	require.NoError(t, err)
	coords, err := v3.NewMatrix(data)
	require.NoError(t, err)
	return top, coords, tab
}

func TestAtoms(t *testing.T) {
	top, _, tab := load(t)
	s := &sasa.Result{Atoms: make([]sasa.Atom, top.Len())}
	for i := range s.Atoms {
		s.Atoms[i].SASA = 100 * float64(i+1)
	}
	res, err := Compute(top, s, tab.Sigma)
	require.NoError(t, err)
	assert.Equal(t, Value{-10, -20}, res.Atoms[0])
	assert.Equal(t, Value{4, 8}, res.Atoms[1])
	//N: -10*(1+3+5+7), CA: 2*(2+4+6+8)
	assert.InDelta(t, -120.0, res.Molecule.Type, 1e-9)
	assert.InDelta(t, -240.0, res.Molecule.Group, 1e-9)
	require.Len(t, res.Residues, 4)
	assert.InDelta(t, -6.0, res.Residues[0].Type, 1e-9)
	require.Len(t, res.Chains, 2)
	assert.InDelta(t, res.Molecule.Type, res.Chains[0].Type+res.Chains[1].Type, 1e-9)

	_, err = Compute(top, &sasa.Result{}, tab.Sigma)
	assert.Error(t, err)
}

//The boundaries are found separately here and in the sasa package, they must agree.
func TestBoundaries(t *testing.T) {
	top, coords, tab := load(t)
	tp, err := topol.New(top, coords, tab.Params)
	require.NoError(t, err)
	tp.AddBonds(false)
	tp.AddAngles()
	tp.AddTorsions()
	require.NoError(t, tp.AddNonBonded())
	s, _, err := sasa.Compute(top, tp, tab.Params)
	require.NoError(t, err)
	res, err := Compute(top, s, tab.Sigma)
	require.NoError(t, err)
	require.Equal(t, len(s.Residues), len(res.Residues))
	for i, r := range s.Residues {
		assert.Equal(t, r.First, res.Residues[i].First)
		assert.Equal(t, r.Last, res.Residues[i].Last)
		assert.Equal(t, r.Ref, res.Residues[i].Ref)
	}
	require.Equal(t, len(s.Chains), len(res.Chains))
	for i, c := range s.Chains {
		assert.Equal(t, c.First, res.Chains[i].First)
		assert.Equal(t, c.Last, res.Chains[i].Last)
	}
}
