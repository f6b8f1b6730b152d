/*
 * pdb.go, part of gopops.
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

package chem

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"regexp"
	"strconv"
	"strings"

	v3 "github.com/rmera/gopops/v3"
)

//PDBOptions controls which atom records are kept by the PDB reader.
type PDBOptions struct {
	hydrogens bool
	coarse    bool
	silent    bool
}

//DefaultPDBOptions returns options that keep every heavy atom.
func DefaultPDBOptions() *PDBOptions {
	return new(PDBOptions)
}

//Hydrogens returns whether hydrogen atoms are kept. If a value is given, it is set, and the
//previous value is returned.
func (o *PDBOptions) Hydrogens(h ...bool) bool {
	ret := o.hydrogens
	if len(h) > 0 {
		o.hydrogens = h[0]
	}
	return ret
}

//Coarse returns whether only CA, N3 and P atoms are kept. If a value is given, it is set, and the
//previous value is returned.
func (o *PDBOptions) Coarse(c ...bool) bool {
	ret := o.coarse
	if len(c) > 0 {
		o.coarse = c[0]
	}
	return ret
}

//Silent returns whether the reader's warnings are not logged. If a value is given, it is set, and the
//previous value is returned.
func (o *PDBOptions) Silent(s ...bool) bool {
	ret := o.silent
	if len(s) > 0 {
		o.silent = s[0]
	}
	return ret
}

//HETATM atoms get a generic name that has parameters. The first four patterns take
//the backbone names, the rest go by the element in the name field.
var hetPatterns = []struct {
	re   *regexp.Regexp
	name string
}{
	{regexp.MustCompile(`^ N  $`), "N"},
	{regexp.MustCompile(`^ CA $`), "CA"},
	{regexp.MustCompile(`^ C  $`), "C"},
	{regexp.MustCompile(`^ O  $`), "O"},
	{regexp.MustCompile(`.C[[:print:]]{1,3}`), "C_"},
	{regexp.MustCompile(`.N[[:print:]]{1,3}`), "N_"},
	{regexp.MustCompile(`.O[[:print:]]{1,3}`), "O_"},
	{regexp.MustCompile(`.P[[:print:]]{1,3}`), "P_"},
	{regexp.MustCompile(`.S[[:print:]]{1,3}`), "S_"},
}

func hetName(raw string) (string, bool) {
	for _, p := range hetPatterns {
		if p.re.MatchString(raw) {
			return p.name, true
		}
	}
	return "", false
}

func isHydrogen(name string) bool {
	if name == "" {
		return false
	}
	if name[0] == 'H' {
		return true
	}
	return len(name) > 1 && name[0] >= '0' && name[0] <= '9' && name[1] == 'H'
}

func coarseAtom(name string) bool {
	return name == "CA" || name == "N3" || name == "P"
}

//readPDBLine parses a valid ATOM or HETATM line of a PDB file, returns an Atom
//object with the info except for the coordinates, which are returned
//separately as an array of 3 float64.
func readPDBLine(line string) (*Atom, [3]float64, error) {
	var coords [3]float64
	var err [5]error
	if len(line) < 54 {
		return nil, coords, fmt.Errorf("ATOM record too short (%d columns)", len(line))
	}
	atom := new(Atom)
	atom.Het = strings.HasPrefix(line, "HETATM")
	atom.ID, err[0] = strconv.Atoi(strings.TrimSpace(line[6:11]))
	atom.OrigName = strings.TrimSpace(line[12:16])
	atom.Name = atom.OrigName
	atom.OrigMolName = strings.TrimSpace(line[17:20])
	atom.MolName = atom.OrigMolName
	atom.Chain = string(line[21])
	atom.MolID, err[1] = strconv.Atoi(strings.TrimSpace(line[22:26]))
	atom.ICode = string(line[26])
	if atom.ICode == " " {
		atom.ICode = "-"
	}
	coords[0], err[2] = strconv.ParseFloat(strings.TrimSpace(line[30:38]), 64)
	coords[1], err[3] = strconv.ParseFloat(strings.TrimSpace(line[38:46]), 64)
	coords[2], err[4] = strconv.ParseFloat(strings.TrimSpace(line[46:54]), 64)
	//the rest is optional, we don't complain if it is not there.
	if len(line) >= 60 {
		atom.Occupancy, _ = strconv.ParseFloat(strings.TrimSpace(line[54:60]), 64)
	}
	if len(line) >= 66 {
		atom.Bfactor, _ = strconv.ParseFloat(strings.TrimSpace(line[60:66]), 64)
	}
	if len(line) >= 78 {
		atom.Symbol = strings.TrimSpace(line[76:78])
	}
	for _, e := range err {
		if e != nil {
			return nil, coords, e
		}
	}
	return atom, coords, nil
}

//PDBFileRead reads the first model of the PDB file pdbname (which can be gzip or zstd compressed),
//and returns a molecule with one frame.
func PDBFileRead(pdbname string, options ...*PDBOptions) (*Molecule, error) {
	f, err := Open(pdbname)
	if err != nil {
		return nil, PDBError{err.Error(), pdbname, 0, []string{"PDBFileRead"}}
	}
	defer f.Close()
	mol, err := PDBRead(f, pdbname, options...)
	if err != nil {
		return nil, errDecorate(err, "PDBFileRead")
	}
	return mol, nil
}

//PDBRead reads the first model of a PDB from r. name is only used in error messages.
//Only the alternative locations ' ' and 'A' are kept, hydrogens are dropped unless requested,
//and HETATM atoms are renamed to generic types in the residue "HET" (the original names are kept
//in OrigName and OrigMolName). HETATM atoms that match no generic type are dropped.
func PDBRead(r io.Reader, name string, options ...*PDBOptions) (*Molecule, error) {
	o := DefaultPDBOptions()
	if len(options) > 0 && options[0] != nil {
		o = options[0]
	}
	top := &Topology{Atoms: make([]*Atom, 0, 64)}
	coords := make([]float64, 0, 64*3)
	atommap := make([]int, 0, 64)
	nall := 0
	models := 0
	pdb := bufio.NewScanner(r)
	pdb.Buffer(make([]byte, 0, 1024), 1024*1024)
	contlines := 0
	for pdb.Scan() {
		line := pdb.Text()
		contlines++
		if strings.HasPrefix(line, "MODEL") {
			models++
			if models > 1 {
				break
			}
			continue
		}
		if strings.HasPrefix(line, "ENDMDL") {
			break
		}
		if !strings.HasPrefix(line, "ATOM  ") && !strings.HasPrefix(line, "HETATM") {
			continue
		}
		if len(line) > 16 && line[16] != ' ' && line[16] != 'A' {
			continue
		}
		atom, c, err := readPDBLine(line)
		if err != nil {
			return nil, PDBError{err.Error(), name, contlines, []string{"PDBRead"}}
		}
		fullindex := nall
		nall++
		if !o.hydrogens && isHydrogen(atom.OrigName) {
			continue
		}
		if atom.Het {
			gen, ok := hetName(line[12:16])
			if !ok {
				if !o.silent {
					log.Printf("Skipping HETATM %d %s %s", atom.ID, atom.OrigName, atom.OrigMolName)
				}
				continue
			}
			atom.Name = gen
			atom.MolName = "HET"
		}
		if atom.MolName == "ILE" && atom.Name == "CD" {
			atom.Name = "CD1"
		}
		if o.coarse && !coarseAtom(atom.Name) {
			continue
		}
		top.AddAtom(atom)
		coords = append(coords, c[:]...)
		atommap = append(atommap, fullindex)
	}
	if err := pdb.Err(); err != nil {
		return nil, PDBError{err.Error(), name, contlines, []string{"PDBRead"}}
	}
	if top.Len() == 0 {
		return nil, PDBError{"Could not find atoms in input file", name, 0, []string{"PDBRead"}}
	}
	frame, err := v3.NewMatrix(coords)
	if err != nil {
		return nil, PDBError{err.Error(), name, 0, []string{"PDBRead"}}
	}
	mol := &Molecule{Topology: top, Coords: []*v3.Matrix{frame}, AtomMap: atommap, NAll: nall}
	return mol, nil
}
