/*
 * outputs.go, part of gopops.
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

package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	chem "github.com/rmera/gopops"
	"github.com/rmera/gopops/pops"
	"github.com/rmera/gopops/report"
)

//Output file names.
const (
	sasaFile      = "pops.out"
	buriedFile    = "popsb.out"
	sigmaFile     = "sigma.out"
	neighbourFile = "neli.out"
	parameterFile = "para.out"
	interfaceFile = "interface.out"
	jsonFile      = "pops.json"
	trajFile      = "popstraj.out"
)

//outputs opens the output files as they are needed, and closes them all at the end.
type outputs struct {
	c     *config
	files map[string]io.WriteCloser
}

func newOutputs(c *config) *outputs {
	return &outputs{c: c, files: make(map[string]io.WriteCloser)}
}

//path returns the path of the output file name, with the compression extension.
func (o *outputs) path(name string) string {
	p := filepath.Join(o.c.outDir, name)
	if o.c.compress != "" {
		p += "." + o.c.compress
	}
	return p
}

func (o *outputs) get(name string) (io.Writer, error) {
	if w, ok := o.files[name]; ok {
		return w, nil
	}
	w, err := chem.Create(o.path(name))
	if err != nil {
		return nil, err
	}
	o.files[name] = w
	return w, nil
}

//close closes all the open files, and returns the first error found.
//It can be called more than once.
func (o *outputs) close() error {
	var first error
	for name, w := range o.files {
		if err := w.Close(); err != nil && first == nil {
			first = fmt.Errorf("closing %s: %w", name, err)
		}
		delete(o.files, name)
	}
	return first
}

//reference writes all the outputs requested for the input structure, as part of run runID.
func (o *outputs) reference(mol *chem.Molecule, r *pops.Result, runID string) error {
	levels := o.c.levels()
	w, err := o.get(sasaFile)
	if err != nil {
		return err
	}
	if err := report.WriteComposition(w, filepath.Base(o.c.pdb), mol, r, o.c.coarse); err != nil {
		return err
	}
	if err := report.WriteTopology(w, r.Topology); err != nil {
		return err
	}
	if err := report.WriteSASA(w, mol, r.SASA, levels); err != nil {
		return err
	}
	if w, err = o.get(buriedFile); err != nil {
		return err
	}
	if err := report.WriteBuried(w, mol, r.SASA, levels); err != nil {
		return err
	}
	if w, err = o.get(sigmaFile); err != nil {
		return err
	}
	if err := report.WriteSFE(w, mol, r.SFE, levels); err != nil {
		return err
	}
	if o.c.neighbourOut {
		if w, err = o.get(neighbourFile); err != nil {
			return err
		}
		if err := report.WriteNeighbours(w, mol, r.Topology); err != nil {
			return err
		}
	}
	if o.c.parameterOut {
		if w, err = o.get(parameterFile); err != nil {
			return err
		}
		if err := report.WriteParameters(w, mol, r.SASA); err != nil {
			return err
		}
	}
	if o.c.interfaceOut {
		if w, err = o.get(interfaceFile); err != nil {
			return err
		}
		if err := report.WriteInterface(w, mol, r.Topology); err != nil {
			return err
		}
	}
	if o.c.json {
		if w, err = o.get(jsonFile); err != nil {
			return err
		}
		id := strings.TrimSuffix(filepath.Base(o.c.pdb), filepath.Ext(o.c.pdb))
		id = strings.TrimSuffix(id, ".pdb")
		if err := report.WriteJSON(w, mol, r.SASA, id, runID); err != nil {
			return err
		}
	}
	return nil
}

func (o *outputs) trajHeader() error {
	w, err := o.get(trajFile)
	if err != nil {
		return err
	}
	return report.WriteFrameHeader(w)
}

//frame writes the per-frame line and, if any tables were requested, appends them to
//the SASA, bSASA and SFE outputs.
func (o *outputs) frame(mol *chem.Molecule, r *pops.Result) error {
	w, err := o.get(trajFile)
	if err != nil {
		return err
	}
	if err := report.WriteFrame(w, r); err != nil {
		return err
	}
	levels := o.c.levels() &^ report.Molecule
	if levels == 0 {
		return nil
	}
	write := []struct {
		name string
		fn   func(io.Writer) error
	}{
		{sasaFile, func(w io.Writer) error { return report.WriteSASA(w, mol, r.SASA, levels) }},
		{buriedFile, func(w io.Writer) error { return report.WriteBuried(w, mol, r.SASA, levels) }},
		{sigmaFile, func(w io.Writer) error { return report.WriteSFE(w, mol, r.SFE, levels) }},
	}
	for _, v := range write {
		w, err := o.get(v.name)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "\n=== FRAME %d ===\n", r.Frame+1); err != nil {
			return err
		}
		if err := v.fn(w); err != nil {
			return err
		}
	}
	return nil
}

func (o *outputs) summary(s report.SummaryValues) error {
	w, err := o.get(trajFile)
	if err != nil {
		return err
	}
	return report.WriteSummary(w, s)
}
