/*
 * json.go, part of gopops.
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

package report

import (
	"encoding/json"
	"io"
	"math"
	"strconv"

	chem "github.com/rmera/gopops"
	"github.com/rmera/gopops/sasa"
)

//Version is reported as the resource and software version in the JSON output.
const Version = "2.3.0"

//Site ids used in the JSON output.
const (
	SitePhilic = 1
	SitePhobic = 2
	SiteTotal  = 3
)

//SiteData is the value of one site for one residue.
type SiteData struct {
	SiteID         int     `json:"site_id_ref"`
	RawScore       float64 `json:"raw_score"`
	Confidence     float64 `json:"confidence_score"`
	Classification string  `json:"confidence_classification"`
}

//Residue is one residue in the JSON output.
type Residue struct {
	Label    string     `json:"pdb_res_label"`
	AAType   string     `json:"aa_type"`
	SiteData []SiteData `json:"site_data"`
}

//Chain is one chain in the JSON output.
type Chain struct {
	Label    string    `json:"chain_label"`
	Residues []Residue `json:"residues"`
}

//Site describes one of the values given for each residue.
type Site struct {
	ID    int    `json:"site_id"`
	Label string `json:"label"`
}

//Evidence is an entry of the evidence code ontology.
type Evidence struct {
	Term string `json:"eco_term"`
	Code string `json:"eco_code"`
}

//Entry is a FunPDBe entry with the residue SASA (or bSASA) of a structure.
type Entry struct {
	DataResource    string     `json:"data_resource"`
	ResourceVersion string     `json:"resource_version"`
	SoftwareVersion string     `json:"software_version"`
	EntryURL        string     `json:"resource_entry_url"`
	ReleaseDate     string     `json:"release_date"`
	PDBID           string     `json:"pdb_id"`
	RunID           string     `json:"run_id"`
	Chains          []Chain    `json:"chains"`
	Sites           []Site     `json:"sites"`
	Evidence        []Evidence `json:"evidence_code_ontology"`
}

//trunc4 truncates v to 4 decimal places.
func trunc4(v float64) float64 {
	return math.Trunc(v*1e4) / 1e4
}

func site(id int, v float64) SiteData {
	return SiteData{SiteID: id, RawScore: trunc4(v), Confidence: 0.9, Classification: "high"}
}

//NewEntry builds the FunPDBe entry of run runID for the residues in s. If buried is
//true, the buried surfaces are given instead of the exposed ones.
func NewEntry(mol chem.Atomer, s *sasa.Result, pdbID, runID string, buried bool) *Entry {
	e := &Entry{
		DataResource:    "popscomp",
		ResourceVersion: Version,
		SoftwareVersion: Version,
		EntryURL:        "https://github.com/Fraternalilab/POPSCOMP",
		ReleaseDate:     "04/11/2018",
		PDBID:           pdbID,
		RunID:           runID,
		Evidence: []Evidence{{
			Term: "computational combinatorial evidence used in automatic assertion",
			Code: "ECO_0000246"}},
	}
	kind := "SASA"
	if buried {
		kind = "bSASA"
	}
	e.Sites = []Site{
		{SitePhilic, "hydrophilic " + kind + " [A^2]"},
		{SitePhobic, "hydrophobic " + kind + " [A^2]"},
		{SiteTotal, "total " + kind + " [A^2]"},
	}
	for i, r := range s.Residues {
		at := mol.Atom(r.Ref)
		if i == 0 || at.Chain != mol.Atom(s.Residues[i-1].Ref).Chain {
			e.Chains = append(e.Chains, Chain{Label: at.Chain})
		}
		c := &e.Chains[len(e.Chains)-1]
		phil, phob, tot := r.Philic, r.Phobic, r.SASA
		if buried {
			phil, phob, tot = r.PhilicBuried, r.PhobicBuried, r.Buried
		}
		c.Residues = append(c.Residues, Residue{
			Label:    strconv.Itoa(at.MolID),
			AAType:   at.OrigMolName,
			SiteData: []SiteData{site(SitePhilic, phil), site(SitePhobic, phob), site(SiteTotal, tot)},
		})
	}
	return e
}

//Write writes the entry as indented JSON to w.
func (e *Entry) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "\t")
	return wrap(enc.Encode(e), "Entry.Write")
}

//WriteJSON writes the FunPDBe entry of run runID, with the residue SASA in s, to w.
func WriteJSON(w io.Writer, mol chem.Atomer, s *sasa.Result, pdbID, runID string) error {
	return wrap(NewEntry(mol, s, pdbID, runID, false).Write(w), "WriteJSON")
}
