/*
 * store.go, part of gopops.
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
	"context"
	"fmt"

	"github.com/google/uuid"
	chem "github.com/rmera/gopops"
	"github.com/rmera/gopops/pops"
)

//ResidueValues are the stored values for one residue in one frame.
type ResidueValues struct {
	Chain  string
	Number int
	ICode  string
	Name   string
	Phobic float64
	Philic float64
	SASA   float64
	Buried float64
}

//Frame contains the stored values of one frame of a run.
type Frame struct {
	Run      string
	Index    int
	Phobic   float64
	Philic   float64
	SASA     float64
	Buried   float64
	SFEType  float64
	SFEGroup float64
	Residues []ResidueValues
}

//NewRunID returns a new identifier for a run.
func NewRunID() string { return uuid.NewString() }

//NewFrame puts together the values of r that are stored, labeling them with the run id given.
func NewFrame(run string, mol chem.Atomer, r *pops.Result) Frame {
	m := r.SASA.Molecule
	f := Frame{
		Run:      run,
		Index:    r.Frame,
		Phobic:   m.Phobic,
		Philic:   m.Philic,
		SASA:     m.SASA,
		Buried:   m.Buried,
		SFEType:  r.SFE.Molecule.Type,
		SFEGroup: r.SFE.Molecule.Group,
		Residues: make([]ResidueValues, len(r.SASA.Residues)),
	}
	for i, v := range r.SASA.Residues {
		at := mol.Atom(v.Ref)
		f.Residues[i] = ResidueValues{
			Chain:  at.Chain,
			Number: at.MolID,
			ICode:  at.ICode,
			Name:   at.OrigMolName,
			Phobic: v.Phobic,
			Philic: v.Philic,
			SASA:   v.SASA,
			Buried: v.Buried,
		}
	}
	return f
}

//Store keeps the frames of POPS runs.
type Store interface {
	Init(ctx context.Context) error
	SaveFrame(ctx context.Context, f Frame) error
	//Frames returns the frames of the run, ordered by index.
	Frames(ctx context.Context, run string) ([]Frame, error)
	Close() error
}

//NewStore returns a store of the kind given, "memory" (or "") or "sqlite".
//path is the database file for sqlite stores. The store still needs to be
//initialized with Init.
func NewStore(kind, path string) (Store, error) {
	switch kind {
	case "", "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		return NewSQLiteStore(path), nil
	default:
		return nil, Error{fmt.Sprintf("Unsupported store kind: %s", kind), []string{"NewStore"}, true}
	}
}
