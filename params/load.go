/*
 * load.go, part of gopops.
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
	_ "embed"
	"fmt"
	"io"
	"strings"

	"github.com/pelletier/go-toml"
	chem "github.com/rmera/gopops"
)

//go:embed sample.toml
var sampleAtom string

//go:embed sample_coarse.toml
var sampleCoarse string

type tomlAtom struct {
	Name       string  `toml:"name"`
	Radius     float64 `toml:"radius"`
	Parameter  float64 `toml:"parameter"`
	Polarity   int     `toml:"polarity"`
	Ring       int     `toml:"ring"`
	SigmaType  float64 `toml:"sigma_type"`
	SigmaGroup float64 `toml:"sigma_group"`
}

type tomlResidue struct {
	Name    string     `toml:"name"`
	Surface float64    `toml:"surface"`
	Atom    []tomlAtom `toml:"atom"`
}

type tomlGroupAtom struct {
	Name string `toml:"name"`
	ID   int    `toml:"id"`
	Type int    `toml:"type"`
}

type tomlGroup struct {
	Residue string          `toml:"residue"`
	Atom    []tomlGroupAtom `toml:"atom"`
}

type tomlFile struct {
	Name         string  `toml:"name"`
	Probe        float64 `toml:"probe"`
	Connectivity struct {
		P12 float64 `toml:"p12"`
		P13 float64 `toml:"p13"`
		P14 float64 `toml:"p14"`
		P15 float64 `toml:"p15"`
	} `toml:"connectivity"`
	Residue []tomlResidue `toml:"residue"`
	Group   []tomlGroup   `toml:"group"`
}

//Default returns the sample tables shipped with gopops, for all-atom or
//coarse (one sphere per residue) structures. The sample values are meant for tests
//and examples, real calculations should load a parametrisation with LoadFile.
func Default(coarse bool) (*Tables, error) {
	src := sampleAtom
	if coarse {
		src = sampleCoarse
	}
	t, err := Load(strings.NewReader(src))
	if err != nil {
		return nil, errDecorate(err, "Default")
	}
	return t, nil
}

//LoadFile reads the tables from the TOML file name, which can be gzip or zstd compressed.
func LoadFile(name string) (*Tables, error) {
	f, err := chem.Open(name)
	if err != nil {
		return nil, Error{err.Error(), []string{"LoadFile"}, true}
	}
	defer f.Close()
	t, err := Load(f)
	if err != nil {
		return nil, errDecorate(err, "LoadFile: "+name)
	}
	return t, nil
}

//Load reads the tables from TOML data. The residue types get their ids in
//the order they appear in the data, and so do the atom types within each residue.
func Load(r io.Reader) (*Tables, error) {
	var cfg tomlFile
	if err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, Error{"Can't decode parameter table: " + err.Error(), []string{"Load"}, true}
	}
	if cfg.Probe <= 0 {
		return nil, Error{fmt.Sprintf("Probe radius must be positive, got %f", cfg.Probe), []string{"Load"}, true}
	}
	c := cfg.Connectivity
	for _, v := range []float64{c.P12, c.P13, c.P14, c.P15} {
		if v < 0 {
			return nil, Error{"Connectivity weights can't be negative", []string{"Load"}, true}
		}
	}
	if len(cfg.Residue) == 0 {
		return nil, Error{"The table has no residues", []string{"Load"}, true}
	}
	pt := &ParameterTable{
		name:    cfg.Name,
		probe:   cfg.Probe,
		connect: Connectivity{Bond: c.P12, Angle: c.P13, Torsion: c.P14, NonBonded: c.P15},
		byName:  make(map[string]int, len(cfg.Residue)),
	}
	st := &SigmaTable{m: make(map[Key]Sigma)}
	for i, tr := range cfg.Residue {
		if tr.Name == "" {
			return nil, Error{fmt.Sprintf("Residue %d has no name", i), []string{"Load"}, true}
		}
		if _, ok := pt.byName[tr.Name]; ok {
			return nil, Error{"Residue defined twice: " + tr.Name, []string{"Load"}, true}
		}
		res := residue{name: tr.Name, surface: tr.Surface, byName: make(map[string]int, len(tr.Atom))}
		for j, ta := range tr.Atom {
			if _, ok := res.byName[ta.Name]; ok {
				return nil, Error{fmt.Sprintf("Atom %s defined twice in residue %s", ta.Name, tr.Name), []string{"Load"}, true}
			}
			if ta.Radius <= 0 {
				return nil, Error{fmt.Sprintf("Atom %s of residue %s has a non-positive radius", ta.Name, tr.Name), []string{"Load"}, true}
			}
			if ta.Polarity != Phobic && ta.Polarity != Philic {
				return nil, Error{fmt.Sprintf("Atom %s of residue %s: polarity must be 0 or 1", ta.Name, tr.Name), []string{"Load"}, true}
			}
			if ta.Ring != 0 && ta.Ring != 1 {
				return nil, Error{fmt.Sprintf("Atom %s of residue %s: ring must be 0 or 1", ta.Name, tr.Name), []string{"Load"}, true}
			}
			res.byName[ta.Name] = j
			res.atoms = append(res.atoms, AtomParam{
				Name:     ta.Name,
				Radius:   ta.Radius,
				Param:    ta.Parameter,
				Polarity: ta.Polarity,
				Ring:     ta.Ring,
				Surface:  sphere(ta.Radius, cfg.Probe),
			})
			st.m[Key{i, j}] = Sigma{Type: ta.SigmaType, Group: ta.SigmaGroup}
		}
		pt.byName[tr.Name] = i
		pt.residues = append(pt.residues, res)
	}
	gt := &GroupTable{m: make(map[string]map[string]Group, len(cfg.Group))}
	for _, g := range cfg.Group {
		atoms, ok := gt.m[g.Residue]
		if !ok {
			atoms = make(map[string]Group, len(g.Atom))
			gt.m[g.Residue] = atoms
		}
		for _, a := range g.Atom {
			atoms[a.Name] = Group{ID: a.ID, Type: a.Type}
		}
	}
	return &Tables{Params: pt, Sigma: st, Groups: gt}, nil
}
