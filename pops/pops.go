/*
 * pops.go, part of gopops.
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

//Package pops puts together the steps of a POPS calculation: the atoms are classified
//with the parameter tables, the topology is built and the SASA, bSASA and SFE are
//computed. Each frame of a trajectory goes through the whole process.
package pops

import (
	"fmt"
	"log"

	chem "github.com/rmera/gopops"
	"github.com/rmera/gopops/params"
	"github.com/rmera/gopops/sasa"
	"github.com/rmera/gopops/sfe"
	"github.com/rmera/gopops/topol"
	v3 "github.com/rmera/gopops/v3"
)

//Diagnostics are the warnings produced during a calculation, in the
//order in which they were found.
type Diagnostics []chem.Warning

//Stage returns the diagnostics produced by the given stage.
func (d Diagnostics) Stage(stage string) Diagnostics {
	var ret Diagnostics
	for _, v := range d {
		if v.Stage == stage {
			ret = append(ret, v)
		}
	}
	return ret
}

//Log logs all the diagnostics with the standard logger.
func (d Diagnostics) Log() {
	for _, v := range d {
		log.Printf("Warning: %s", v)
	}
}

//Result contains everything computed for one frame.
type Result struct {
	Frame       int
	Probe       float64
	Topology    *topol.Topology
	SASA        *sasa.Result
	SFE         *sfe.Result
	Diagnostics Diagnostics
}

//Run carries out the POPS calculation for the atoms in mol with coordinates coords, using the tables
//given. The types of the atoms in mol are set in the process. Any error aborts the calculation, and
//no partial results are returned.
func Run(mol chem.Atomer, coords *v3.Matrix, tables *params.Tables, options ...*Options) (*Result, error) {
	var o *Options
	if len(options) > 0 {
		o = options[0]
	} else {
		o = DefaultOptions()
	}
	if coords.NVecs() != mol.Len() {
		return nil, Error{fmt.Sprintf("%d coordinates for %d atoms", coords.NVecs(), mol.Len()), []string{"Run"}, true}
	}
	var err error
	if o.probe > 0 && o.probe != tables.Params.Probe() {
		tables, err = tables.WithProbe(o.probe)
		if err != nil {
			return nil, errDecorate(err, "Run")
		}
	}
	var diag Diagnostics
	w, err := params.Classify(mol, tables)
	diag = append(diag, w...)
	if err != nil {
		return nil, errDecorate(err, "Run")
	}
	top, w, err := topol.Build(mol, coords, tables.Params, o.coarse)
	diag = append(diag, w...)
	if err != nil {
		return nil, errDecorate(err, "Run")
	}
	s, w, err := sasa.Compute(mol, top, tables.Params)
	diag = append(diag, w...)
	if err != nil {
		return nil, errDecorate(err, "Run")
	}
	e, err := sfe.Compute(mol, s, tables.Sigma)
	if err != nil {
		return nil, errDecorate(err, "Run")
	}
	if !o.silent {
		diag.Log()
	}
	return &Result{Probe: tables.Params.Probe(), Topology: top, SASA: s, SFE: e, Diagnostics: diag}, nil
}

//RunTraj runs the POPS calculation for each frame in traj, and gives the result to fn. The trajectory
//can contain either the atoms in mol, or all the atom records of the file mol was read from, in which case
//the atoms kept in mol are taken from each frame. The processing stops at the first error, including
//any error returned by fn. It returns the number of frames processed.
func RunTraj(traj chem.Traj, mol *chem.Molecule, tables *params.Tables, fn func(*Result) error, options ...*Options) (int, error) {
	var o *Options
	if len(options) > 0 {
		o = options[0]
	} else {
		o = DefaultOptions()
	}
	coords := v3.Zeros(mol.Len())
	read := coords
	project := false
	switch traj.Len() {
	case mol.Len():
	case mol.NAll:
		read = v3.Zeros(mol.NAll)
		project = true
	default:
		return 0, Error{fmt.Sprintf("Trajectory with %d atoms for a structure with %d (%d records)", traj.Len(), mol.Len(), mol.NAll), []string{"RunTraj"}, true}
	}
	processed := 0
	var err error
reading:
	for i := 0; ; i++ {
		if i > 0 && i%o.skip != 0 && err == nil {
			err = traj.Next(nil)
			continue
		} else if err == nil {
			err = traj.Next(read)
		}
		if err != nil {
			switch err := err.(type) {
			case chem.LastFrameError:
				break reading
			case chem.Error:
				err.Decorate(fmt.Sprintf("RunTraj: Failed while reading the %d th frame", i))
				return processed, err
			default:
				return processed, err
			}
		}
		if project {
			if err := mol.Project(coords, read); err != nil {
				return processed, errDecorate(err, "RunTraj")
			}
		}
		r, rerr := Run(mol, coords, tables, o)
		if rerr != nil {
			return processed, errDecorate(rerr, fmt.Sprintf("RunTraj: frame %d", i))
		}
		r.Frame = i
		if err := fn(r); err != nil {
			return processed, err
		}
		processed++
	}
	return processed, nil
}

//Error is the general error type for the pops package. It implements chem.Error
type Error struct {
	message  string
	deco     []string
	critical bool
}

func (err Error) Error() string { return err.message }

//Decorate adds new information to the error
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }

//errDecorate is a helper function that asserts that the error is
//implements chem.Error and decorates the error with the caller's name before returning it.
//if used with a non-chem.Error error, it will cause a panic.
func errDecorate(err error, caller string) error {
	err2, ok := err.(chem.Error)
	if !ok {
		return err
	}
	err2.Decorate(caller)
	return err2
}
