/*
 * tables.go, part of gopops.
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

//Package report writes the results of POPS calculations: text tables in the
//classic POPS layout, FunPDBe JSON, plots of the residue SASA, and a store that
//keeps the results of every frame of a trajectory.
package report

import (
	"bufio"
	"fmt"
	"io"

	chem "github.com/rmera/gopops"
	"github.com/rmera/gopops/pops"
	"github.com/rmera/gopops/sasa"
	"github.com/rmera/gopops/sfe"
	"github.com/rmera/gopops/topol"
)

//Level selects which of the levels of a result are written. Levels can be combined with |
type Level int

const (
	Atoms Level = 1 << iota
	Residues
	Chains
	Molecule
	All = Atoms | Residues | Chains | Molecule
)

func (l Level) has(o Level) bool { return l&o != 0 }

func icode(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

//WriteComposition writes the number of chains, residues and atoms in mol.
//name is the name of the input file. Residues with a type from the parameter table
//are counted as standard, the rest (HETATM residues) only count in the total.
func WriteComposition(w io.Writer, name string, mol chem.Atomer, r *pops.Result, coarse bool) error {
	b := bufio.NewWriter(w)
	std := 0
	for _, v := range r.SASA.Residues {
		if !mol.Atom(v.Ref).Het {
			std++
		}
	}
	what := "atoms (excluding hydrogen atoms)"
	if coarse {
		what = "atoms (C-alpha and P atoms)"
	}
	fmt.Fprintf(b, "\n=== COMPOSITION ===\n")
	fmt.Fprintf(b, "\nProtein %8s\n%8d chains\n%8d standard residues\n", name, len(r.SASA.Chains), std)
	fmt.Fprintf(b, "%8d total residues (standard residues + HETATM residues)\n", len(r.SASA.Residues))
	fmt.Fprintf(b, "%8d %s\n", mol.Len(), what)
	return wrap(b.Flush(), "WriteComposition")
}

//WriteTopology writes the number of contacts of each class in top.
func WriteTopology(w io.Writer, top *topol.Topology) error {
	b := bufio.NewWriter(w)
	fmt.Fprintf(b, "\n=== TOPOLOGY ===\n")
	fmt.Fprintf(b, "\n%8d bonds (1,2-interactions)\n", len(top.Bonds))
	fmt.Fprintf(b, "%8d angles (1,3-interactions)\n", len(top.Angles))
	fmt.Fprintf(b, "%8d torsions (1,4-interactions excluding rings)\n", len(top.Torsions))
	fmt.Fprintf(b, "%8d non-bonded (1,>4-interactions)\n", len(top.NonBonded))
	return wrap(b.Flush(), "WriteTopology")
}

//WriteSASA writes the SASA tables for the levels requested.
func WriteSASA(w io.Writer, mol chem.Atomer, s *sasa.Result, levels Level) error {
	b := bufio.NewWriter(w)
	if levels.has(Atoms) {
		fmt.Fprintf(b, "\n=== ATOM SASAs ===\n\n")
		fmt.Fprintf(b, "AtomNr\tAtomNe\tResidNe\tChain\tResidNr\tiCode\tSASA/A^2\tQ(SASA)\tN(overl)\tAtomTp\tAtomGp\tSurf/A^2\n")
		for i, v := range s.Atoms {
			at := mol.Atom(i)
			fmt.Fprintf(b, "%8d\t%3s\t%3s\t%1s\t%6d\t%1s\t%10.2f\t%10.4f\t%8d\t\t%2d\t\t%2d\t%10.2f\n",
				at.ID, at.OrigName, at.OrigMolName, at.Chain, at.MolID, icode(at.ICode),
				v.SASA, v.Ratio(), v.NOverlap, at.AtomType, at.Group, v.Surface)
		}
	}
	if levels.has(Residues) {
		fmt.Fprintf(b, "\n=== RESIDUE SASAs ===\n\n")
		fmt.Fprintf(b, "ResidNe\tChain\tResidNr\tiCode\tPhob/A^2\t\tPhil/A^2\tTotal/A^2\t\tQ(SASA)\tN(overl)\tSurf/A^2\n")
		for _, v := range s.Residues {
			at := mol.Atom(v.Ref)
			fmt.Fprintf(b, "%8s\t%3s\t%8d\t%1s\t%10.2f\t%10.2f\t%10.2f\t%10.4f\t%8d\t%10.2f\n",
				at.OrigMolName, at.Chain, at.MolID, icode(at.ICode),
				v.Phobic, v.Philic, v.SASA, v.Ratio(), v.NOverlap, v.Surface)
		}
	}
	if levels.has(Chains) {
		fmt.Fprintf(b, "\n=== CHAIN SASAs ===\n\n")
		fmt.Fprintf(b, "Chain\tId\tAtomRange\tResidRange\t\tPhob/A^2\t\tPhil/A^2\t\tTotal/A^2\n")
		for i, v := range s.Chains {
			first, last := mol.Atom(v.First), mol.Atom(v.Last)
			fmt.Fprintf(b, "%3d\t%3s\t%6d->%-6d\t%5d->%-5d\t%10.2f\t%10.2f\t%10.2f\n",
				i, first.Chain, first.ID, last.ID, first.MolID, last.MolID, v.Phobic, v.Philic, v.SASA)
		}
	}
	if levels.has(Molecule) {
		m := s.Molecule
		fmt.Fprintf(b, "\n=== MOLECULE SASAs ===\n\n")
		fmt.Fprintf(b, "Phob/A^2\t\tPhil/A^2\t\tTotal/A^2\n")
		fmt.Fprintf(b, "%10.2f\t%10.2f\t%10.2f\n", m.Phobic, m.Philic, m.SASA)
	}
	return wrap(b.Flush(), "WriteSASA")
}

//fraction returns part/total, or 0 if total is not positive.
func fraction(part, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return part / total
}

//WriteBuried writes the buried surface (bSASA) tables for the levels requested.
//Q(cPhob) and Q(cPhil) are the fractions of the buried surface in hydrophobic and
//hydrophilic contacts.
func WriteBuried(w io.Writer, mol chem.Atomer, s *sasa.Result, levels Level) error {
	b := bufio.NewWriter(w)
	const row = "%10.2f\t%10.8f\t%10.2f\t%10.8f\t%10.2f\n"
	if levels.has(Atoms) {
		fmt.Fprintf(b, "\n=== ATOM bSASAs ===\n\n")
		fmt.Fprintf(b, "AtomNr\tAtomNe\tResidNe\tChain\tResidNr\tiCode\tcPhob/A^2\tQ(cPhob)\tcPhil/A^2\tQ(cPhil)\tcTotal/A^2\n")
		for i, v := range s.Atoms {
			at := mol.Atom(i)
			tot := v.Buried()
			fmt.Fprintf(b, "%8d\t%3s\t%3s\t%1s\t%6d\t%1s\t", at.ID, at.OrigName, at.OrigMolName, at.Chain, at.MolID, icode(at.ICode))
			fmt.Fprintf(b, row, v.PhobicBuried, fraction(v.PhobicBuried, tot), v.PhilicBuried, fraction(v.PhilicBuried, tot), tot)
		}
	}
	if levels.has(Residues) {
		fmt.Fprintf(b, "\n=== RESIDUE bSASAs ===\n\n")
		fmt.Fprintf(b, "ResidNe\tChain\tResidNr\tiCode\tcPhob/A^2\tQ(cPhob)\tcPhil/A^2\tQ(cPhil)\tcTotal/A^2\n")
		for _, v := range s.Residues {
			at := mol.Atom(v.Ref)
			fmt.Fprintf(b, "%8s\t%3s\t%8d\t%1s\t", at.OrigMolName, at.Chain, at.MolID, icode(at.ICode))
			fmt.Fprintf(b, row, v.PhobicBuried, fraction(v.PhobicBuried, v.Buried), v.PhilicBuried, fraction(v.PhilicBuried, v.Buried), v.Buried)
		}
	}
	if levels.has(Chains) {
		fmt.Fprintf(b, "\n=== CHAIN bSASAs ===\n\n")
		fmt.Fprintf(b, "Chain\tId\tAtomRange\tResidRange\tcPhob/A^2\tcPhil/A^2\t\tcTotal/A^2\n")
		for i, v := range s.Chains {
			first, last := mol.Atom(v.First), mol.Atom(v.Last)
			fmt.Fprintf(b, "%3d\t%3s\t%6d->%-6d\t%5d->%-5d\t%10.2f\t%10.2f\t%10.2f\n",
				i, first.Chain, first.ID, last.ID, first.MolID, last.MolID, v.PhobicBuried, v.PhilicBuried, v.Buried)
		}
	}
	if levels.has(Molecule) {
		m := s.Molecule
		fmt.Fprintf(b, "\n=== MOLECULE bSASAs ===\n\n")
		fmt.Fprintf(b, "cPhob/A^2\tcPhil/A^2\t\tcTotal/A^2\n")
		fmt.Fprintf(b, "%10.2f\t%10.2f\t%10.2f\n", m.PhobicBuried, m.PhilicBuried, m.Buried)
	}
	return wrap(b.Flush(), "WriteBuried")
}

//WriteSFE writes the solvation free energy tables for the levels requested.
func WriteSFE(w io.Writer, mol chem.Atomer, e *sfe.Result, levels Level) error {
	b := bufio.NewWriter(w)
	if levels.has(Atoms) {
		fmt.Fprintf(b, "\n=== ATOM Solvation Free Energy ===\n\n")
		fmt.Fprintf(b, "AtomNr\tAtomNe\tResiNe\tChain\tResidNr\tiCode\tSFEt/(kJ/mol)\tSFEg/(kJ/mol)\tAtom Type\tAtom Group\n")
		for i, v := range e.Atoms {
			at := mol.Atom(i)
			fmt.Fprintf(b, "%8d\t%3s\t%3s\t%1s\t%6d\t%1s\t%10.2f\t\t%10.2f\t\t\t%2d\t\t%2d\n",
				at.ID, at.OrigName, at.OrigMolName, at.Chain, at.MolID, icode(at.ICode), v.Type, v.Group, at.AtomType, at.Group)
		}
	}
	if levels.has(Residues) {
		fmt.Fprintf(b, "\n=== RESIDUE Solvation Free Energy ===\n\n")
		fmt.Fprintf(b, "Resid\tChain\tResidNr\tiCode\tSFEt/(kJ/mol)\tSFEg/(kJ/mol)\n")
		for _, v := range e.Residues {
			at := mol.Atom(v.Ref)
			fmt.Fprintf(b, "%3s\t%3s\t%8d\t%1s\t%10.2f\t\t%10.2f\n", at.OrigMolName, at.Chain, at.MolID, icode(at.ICode), v.Type, v.Group)
		}
	}
	if levels.has(Chains) {
		fmt.Fprintf(b, "\n=== CHAIN Solvation Free Energy ===\n\n")
		fmt.Fprintf(b, "Chain\tId\tAtom Range\tResidue Range\t\tSFEt/(kJ/mol)\tSFEg/(kJ/mol)\n")
		for i, v := range e.Chains {
			first, last := mol.Atom(v.First), mol.Atom(v.Last)
			fmt.Fprintf(b, "%3d\t%3s\t%6d->%-6d\t%5d->%-5d\t%10.2f\t\t%10.2f\n",
				i, first.Chain, first.ID, last.ID, first.MolID, last.MolID, v.Type, v.Group)
		}
	}
	if levels.has(Molecule) {
		fmt.Fprintf(b, "\n=== MOLECULE Solvation Free Energy ===\n\n")
		fmt.Fprintf(b, "SFEt: %10.2f\nSFEg: %10.2f\n", e.Molecule.Type, e.Molecule.Group)
	}
	return wrap(b.Flush(), "WriteSFE")
}

//WriteNeighbours writes, for each atom, its serial number and chain, the number of
//non-bonded neighbours and the neighbours themselves.
func WriteNeighbours(w io.Writer, mol chem.Atomer, top *topol.Topology) error {
	b := bufio.NewWriter(w)
	fmt.Fprintf(b, "\n=== ATOM NEIGHBOUR LIST ===\n\n")
	for i, nb := range top.Neighbours {
		at := mol.Atom(i)
		fmt.Fprintf(b, "%d:%s\t%d\t", at.ID, at.Chain, len(nb))
		for _, j := range nb {
			fmt.Fprintf(b, "%d:%s ", mol.Atom(j).ID, mol.Atom(j).Chain)
		}
		fmt.Fprintln(b)
	}
	return wrap(b.Flush(), "WriteNeighbours")
}

//WriteParameters writes, for each atom, its serial number, residue and atom types,
//surface and the p*b values of all its overlapping contacts.
func WriteParameters(w io.Writer, mol chem.Atomer, s *sasa.Result) error {
	b := bufio.NewWriter(w)
	for i, v := range s.Atoms {
		at := mol.Atom(i)
		fmt.Fprintf(b, "%6d %02d%02d %10.4f %6d ", at.ID, at.ResType, at.AtomType, v.Surface, len(v.Params))
		for _, p := range v.Params {
			fmt.Fprintf(b, "%10.4f ", p)
		}
		fmt.Fprintln(b)
	}
	return wrap(b.Flush(), "WriteParameters")
}

//WriteInterface writes each atom that has a non-bonded neighbour in another chain,
//followed by the nearest such neighbour and their distance.
func WriteInterface(w io.Writer, mol chem.Atomer, top *topol.Topology) error {
	b := bufio.NewWriter(w)
	for i, j := range top.InterfaceNN {
		if j < 0 {
			continue
		}
		a, n := mol.Atom(i), mol.Atom(j)
		fmt.Fprintf(b, "%8d\t%3s\t%3s\t%1s\t%6d\t%1s%8d\t%3s\t%3s\t%1s\t%6d\t%1s\t%10.4f\n",
			a.ID, a.OrigName, a.OrigMolName, a.Chain, a.MolID, icode(a.ICode),
			n.ID, n.OrigName, n.OrigMolName, n.Chain, n.MolID, icode(n.ICode), top.InterfaceDist[i])
	}
	return wrap(b.Flush(), "WriteInterface")
}

//WriteFrameHeader writes the header for the per-frame lines of a trajectory.
func WriteFrameHeader(w io.Writer) error {
	_, err := fmt.Fprintf(w, "Frame\tPhob/A^2\tPhil/A^2\tTotal/A^2\tSFEt/(kJ/mol)\tSFEg/(kJ/mol)\n")
	return wrap(err, "WriteFrameHeader")
}

//WriteFrame writes one line with the molecule totals of the frame in r. Frames are numbered from 1.
func WriteFrame(w io.Writer, r *pops.Result) error {
	m, e := r.SASA.Molecule, r.SFE.Molecule
	_, err := fmt.Fprintf(w, "%d\t%10.2f\t%10.2f\t%10.2f\t%10.2f\t%10.2f\n", r.Frame+1, m.Phobic, m.Philic, m.SASA, e.Type, e.Group)
	return wrap(err, "WriteFrame")
}
