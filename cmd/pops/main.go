/*
 * main.go, part of gopops.
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

//Command pops computes the POPS solvent accessible surface area (SASA), buried
//surface and solvation free energy of a PDB structure, and optionally of each
//frame of a GROMOS96 trajectory of it.
//
//	pops -pdb in.pdb[.gz|.zst] [-traj traj.g96] [-params table.toml] [flags]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	chem "github.com/rmera/gopops"
	"github.com/rmera/gopops/params"
	"github.com/rmera/gopops/pops"
	"github.com/rmera/gopops/report"
	"github.com/rmera/gopops/traj/gromos"
)

//errStrict is returned when -strict is given and the calculation produced warnings.
var errStrict = errors.New("warnings were produced and -strict was given")

func main() {
	log.SetPrefix("pops: ")
	log.SetFlags(0)
	err := run(context.Background(), os.Args[1:])
	switch {
	case err == nil:
	case errors.Is(err, errStrict):
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	case errors.Is(err, flag.ErrHelp):
	default:
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type config struct {
	pdb, traj, params string
	outDir            string
	compress          string
	plot, db          string
	probe             float64
	skip              int

	coarse, hydrogens          bool
	atomOut, residueOut        bool
	chainOut, noTotalOut       bool
	neighbourOut, parameterOut bool
	interfaceOut, json         bool
	silent, strict             bool
}

func parseFlags(args []string) (*config, error) {
	c := new(config)
	fs := flag.NewFlagSet("pops", flag.ContinueOnError)
	fs.StringVar(&c.pdb, "pdb", "", "input PDB file, can be gzip or zstd compressed")
	fs.StringVar(&c.traj, "traj", "", "GROMOS96 trajectory of the structure")
	fs.StringVar(&c.params, "params", "", "TOML parameter file, the embedded sample table is used if not given")
	fs.StringVar(&c.outDir, "outDirName", ".", "output directory")
	fs.StringVar(&c.compress, "compress", "", "compress the text outputs: gz|zst")
	fs.StringVar(&c.plot, "plot", "", "write a residue SASA plot to this file (png, svg, pdf...)")
	fs.StringVar(&c.db, "db", "", "store the results in this SQLite database")
	fs.Float64Var(&c.probe, "rProbe", 1.4, "solvent probe radius (A)")
	fs.IntVar(&c.skip, "skip", 1, "use one of each skip frames of the trajectory")
	fs.BoolVar(&c.coarse, "coarse", false, "coarse mode: only C-alpha and P atoms")
	fs.BoolVar(&c.hydrogens, "hydrogens", false, "keep hydrogen atoms")
	fs.BoolVar(&c.atomOut, "atomOut", false, "write atom tables")
	fs.BoolVar(&c.residueOut, "residueOut", false, "write residue tables")
	fs.BoolVar(&c.chainOut, "chainOut", false, "write chain tables")
	fs.BoolVar(&c.noTotalOut, "noTotalOut", false, "do not write the molecule totals")
	fs.BoolVar(&c.neighbourOut, "neighbourOut", false, "write the neighbour list")
	fs.BoolVar(&c.parameterOut, "parameterOut", false, "write the neighbour parameters")
	fs.BoolVar(&c.interfaceOut, "interfaceOut", false, "write the interface atom pairs")
	fs.BoolVar(&c.json, "json", false, "write the residue SASA as FunPDBe JSON")
	fs.BoolVar(&c.silent, "silent", false, "do not log warnings")
	fs.BoolVar(&c.strict, "strict", false, "exit with status 2 if there were warnings")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	if c.pdb == "" {
		return nil, errors.New("an input structure (-pdb) is required")
	}
	if c.probe <= 0 {
		return nil, fmt.Errorf("the probe radius must be positive, got %g", c.probe)
	}
	if c.skip < 1 {
		return nil, fmt.Errorf("skip must be at least 1, got %d", c.skip)
	}
	switch c.compress {
	case "", "gz", "zst":
	default:
		return nil, fmt.Errorf("unknown compression %q, use gz or zst", c.compress)
	}
	return c, nil
}

func (c *config) levels() report.Level {
	var l report.Level
	if c.atomOut {
		l |= report.Atoms
	}
	if c.residueOut {
		l |= report.Residues
	}
	if c.chainOut {
		l |= report.Chains
	}
	if !c.noTotalOut {
		l |= report.Molecule
	}
	return l
}

func (c *config) tables() (*params.Tables, error) {
	if c.params == "" {
		return params.Default(c.coarse)
	}
	return params.LoadFile(c.params)
}

func run(ctx context.Context, args []string) error {
	c, err := parseFlags(args)
	if err != nil {
		return err
	}
	tables, err := c.tables()
	if err != nil {
		return err
	}
	po := chem.DefaultPDBOptions()
	po.Coarse(c.coarse)
	po.Hydrogens(c.hydrogens)
	po.Silent(c.silent)
	mol, err := chem.PDBFileRead(c.pdb, po)
	if err != nil {
		return err
	}
	opts := pops.DefaultOptions()
	opts.Probe(c.probe)
	opts.Coarse(c.coarse)
	opts.Silent(c.silent)
	opts.Skip(c.skip)

	res, err := pops.Run(mol, mol.Coords[0], tables, opts)
	if err != nil {
		return err
	}
	warned := len(res.Diagnostics) > 0
	if err := os.MkdirAll(c.outDir, 0o755); err != nil {
		return err
	}
	runID := report.NewRunID()
	out := newOutputs(c)
	defer out.close()
	if err := out.reference(mol, res, runID); err != nil {
		return err
	}
	if c.plot != "" {
		if err := report.PlotResidues(c.plot, mol, res.SASA, filepath.Base(c.pdb)); err != nil {
			return err
		}
	}
	var store report.Store
	if c.db != "" {
		store, err = report.NewStore("sqlite", c.db)
		if err != nil {
			return err
		}
		if err := store.Init(ctx); err != nil {
			return err
		}
		defer store.Close()
		if c.traj == "" {
			if err := store.SaveFrame(ctx, report.NewFrame(runID, mol, res)); err != nil {
				return err
			}
		}
	}
	if c.traj != "" {
		if store == nil {
			store = report.NewMemoryStore()
			if err := store.Init(ctx); err != nil {
				return err
			}
		}
		w, err := trajectory(ctx, c, mol, tables, opts, out, store, runID)
		if err != nil {
			return err
		}
		warned = warned || w
	}
	if err := out.close(); err != nil {
		return err
	}
	if !c.silent {
		log.Printf("Results written to %s (run %s)", c.outDir, runID)
	}
	if c.strict && warned {
		return errStrict
	}
	return nil
}

//trajectory runs POPS on each frame of the trajectory, storing and writing the results
//and finally a summary of the whole trajectory. It returns true if any frame produced warnings.
func trajectory(ctx context.Context, c *config, mol *chem.Molecule, tables *params.Tables, opts *pops.Options, out *outputs, store report.Store, runID string) (bool, error) {
	traj, err := gromos.New(c.traj, mol.NAll)
	if err != nil {
		return false, err
	}
	defer traj.Close()
	if err := out.trajHeader(); err != nil {
		return false, err
	}
	warned := false
	n, err := pops.RunTraj(traj, mol, tables, func(r *pops.Result) error {
		if len(r.Diagnostics) > 0 {
			warned = true
		}
		if err := out.frame(mol, r); err != nil {
			return err
		}
		return store.SaveFrame(ctx, report.NewFrame(runID, mol, r))
	}, opts)
	if err != nil {
		return warned, err
	}
	if n == 0 {
		return warned, fmt.Errorf("no frames could be read from %s", c.traj)
	}
	frames, err := store.Frames(ctx, runID)
	if err != nil {
		return warned, err
	}
	sum, err := report.Summary(frames)
	if err != nil {
		return warned, err
	}
	if !c.silent {
		if err := report.WriteSummary(os.Stdout, sum); err != nil {
			return warned, err
		}
	}
	return warned, out.summary(sum)
}
