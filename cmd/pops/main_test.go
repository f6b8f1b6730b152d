/*
 * main_test.go, part of gopops.
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
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	chem "github.com/rmera/gopops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func read(t *testing.T, name string) string {
	t.Helper()
	f, err := chem.Open(name)
	require.NoError(t, err)
	defer f.Close()
	var b bytes.Buffer
	_, err = b.ReadFrom(f)
	require.NoError(t, err)
	return b.String()
}

func TestRunStructure(t *testing.T) {
	dir := t.TempDir()
	err := run(context.Background(), []string{
		"-pdb", "testdata/ala3.pdb", "-outDirName", dir, "-silent",
		"-residueOut", "-neighbourOut", "-parameterOut", "-interfaceOut", "-json",
		"-plot", filepath.Join(dir, "res.png"),
	})
	require.NoError(t, err)
	for _, name := range []string{sasaFile, buriedFile, sigmaFile, neighbourFile, parameterFile, interfaceFile, jsonFile, "res.png"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
	out := read(t, filepath.Join(dir, sasaFile))
	assert.Contains(t, out, "=== COMPOSITION ===")
	assert.Contains(t, out, "=== RESIDUE SASAs ===")
	assert.Contains(t, out, "=== MOLECULE SASAs ===")
	assert.NotContains(t, out, "=== ATOM SASAs ===")
	assert.Contains(t, read(t, filepath.Join(dir, jsonFile)), `"pdb_id": "ala3"`)
	_, err = os.Stat(filepath.Join(dir, trajFile))
	assert.True(t, os.IsNotExist(err))
}

func TestRunCompressed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, run(context.Background(), []string{"-pdb", "testdata/ala3.pdb", "-outDirName", dir, "-silent", "-compress", "zst", "-noTotalOut", "-chainOut"}))
	out := read(t, filepath.Join(dir, sasaFile+".zst"))
	assert.Contains(t, out, "=== CHAIN SASAs ===")
	assert.NotContains(t, out, "=== MOLECULE SASAs ===")
}

func TestFlags(t *testing.T) {
	ctx := context.Background()
	assert.Error(t, run(ctx, []string{"-rProbe", "1.4"}))
	assert.Error(t, run(ctx, []string{"-pdb", "testdata/ala3.pdb", "-rProbe", "0"}))
	assert.Error(t, run(ctx, []string{"-pdb", "testdata/ala3.pdb", "-rProbe", "-1"}))
	assert.Error(t, run(ctx, []string{"-pdb", "testdata/ala3.pdb", "-skip", "0"}))
	assert.Error(t, run(ctx, []string{"-pdb", "testdata/ala3.pdb", "-compress", "bz2"}))
	assert.Error(t, run(ctx, []string{"-pdb", "testdata/ala3.pdb", "extra"}))
	assert.Error(t, run(ctx, []string{"-pdb", "testdata/nothere.pdb", "-silent"}))

	c, err := parseFlags([]string{"-pdb", "x.pdb", "-atomOut", "-noTotalOut"})
	require.NoError(t, err)
	assert.Equal(t, 1.4, c.probe)
	assert.Equal(t, ".", c.outDir)
	assert.EqualValues(t, 1, c.levels())
}

//writeG96 writes the coordinates of mol as a GROMOS96 trajectory with n frames,
//each shifted 0.1 A along x from the previous one.
func writeG96(t *testing.T, name string, mol *chem.Molecule, n int) {
	t.Helper()
	var b strings.Builder
	b.WriteString("TITLE\ntest\nEND\n")
	c := mol.Coords[0]
	for f := 0; f < n; f++ {
		fmt.Fprintf(&b, "TIMESTEP\n%10d %15.9f\nEND\nPOSITIONRED\n", f*100, float64(f))
		for i := 0; i < c.NVecs(); i++ {
			v := c.Vec(i)
			fmt.Fprintf(&b, "%15.9f%15.9f%15.9f\n", (v[0]+0.1*float64(f))/10, v[1]/10, v[2]/10)
		}
		b.WriteString("END\n")
	}
	require.NoError(t, os.WriteFile(name, []byte(b.String()), 0o644))
}

func TestRunTrajectory(t *testing.T) {
	dir := t.TempDir()
	mol, err := chem.PDBFileRead("testdata/ala3.pdb")
	require.NoError(t, err)
	traj := filepath.Join(dir, "traj.g96")
	writeG96(t, traj, mol, 3)
	db := filepath.Join(dir, "pops.sqlite")
	err = run(context.Background(), []string{"-pdb", "testdata/ala3.pdb", "-traj", traj, "-outDirName", dir, "-silent", "-db", db, "-residueOut"})
	require.NoError(t, err)

	out := read(t, filepath.Join(dir, trajFile))
	l := strings.Split(strings.TrimSpace(out), "\n")
	assert.True(t, strings.HasPrefix(l[0], "Frame\t"))
	assert.True(t, strings.HasPrefix(l[1], "1\t"))
	assert.True(t, strings.HasPrefix(l[3], "3\t"))
	assert.Contains(t, out, "(3 frames)")
	assert.Contains(t, out, "=== MEAN RESIDUE SASA ===")
	assert.Contains(t, read(t, filepath.Join(dir, sasaFile)), "=== FRAME 3 ===")

	sdb, err := sql.Open("sqlite", db)
	require.NoError(t, err)
	defer sdb.Close()
	var frames, residues int
	require.NoError(t, sdb.QueryRow(`SELECT COUNT(*) FROM frames`).Scan(&frames))
	require.NoError(t, sdb.QueryRow(`SELECT COUNT(*) FROM residues`).Scan(&residues))
	assert.Equal(t, 3, frames)
	assert.Equal(t, 3*6, residues)
}

func TestRunIDShared(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "pops.sqlite")
	require.NoError(t, run(context.Background(), []string{"-pdb", "testdata/ala3.pdb", "-outDirName", dir, "-silent", "-json", "-db", db}))
	var e struct {
		RunID string `json:"run_id"`
	}
	require.NoError(t, json.Unmarshal([]byte(read(t, filepath.Join(dir, jsonFile))), &e))
	require.NotEmpty(t, e.RunID)

	sdb, err := sql.Open("sqlite", db)
	require.NoError(t, err)
	defer sdb.Close()
	var stored string
	require.NoError(t, sdb.QueryRow(`SELECT run_id FROM frames`).Scan(&stored))
	assert.Equal(t, stored, e.RunID)
}

func TestStrict(t *testing.T) {
	dir := t.TempDir()
	pdb := filepath.Join(dir, "het.pdb")
	//two atoms 0.4 A apart give a warning
	src := read(t, "testdata/ala3.pdb")
	src = strings.Replace(src, "END", "HETATM   99  C1  LIG C   1      30.000  30.000  30.000  1.00  0.00           C\nHETATM  100  O1  LIG C   1      30.400  30.000  30.000  1.00  0.00           O\nEND", 1)
	require.NoError(t, os.WriteFile(pdb, []byte(src), 0o644))
	err := run(context.Background(), []string{"-pdb", pdb, "-outDirName", dir, "-silent", "-strict"})
	assert.ErrorIs(t, err, errStrict)
	require.NoError(t, run(context.Background(), []string{"-pdb", "testdata/ala3.pdb", "-outDirName", dir, "-silent", "-strict"}))
}
