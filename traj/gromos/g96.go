/*
 * g96.go, part of gopops.
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

//Package gromos reads the reduced coordinate trajectories (POSITIONRED blocks) of
//GROMOS96 formatted files. Coordinates are converted from nm to A. The files can be
//compressed with gzip or zstd.
package gromos

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	chem "github.com/rmera/gopops"
	v3 "github.com/rmera/gopops/v3"
)

const nm2A = 10.0

//G96Obj is a container for a GROMOS96 trajectory file.
type G96Obj struct {
	natoms   int
	readable bool
	filename string
	ioread   io.ReadCloser
	g96      *bufio.Reader
	line     int //lines read so far
	frames   int
	step     int
	time     float64
}

//New opens the GROMOS96 file filename. Only the first ats atoms of each frame are read, which
//allows to skip the solvent at the end of the frames.
func New(filename string, ats int) (*G96Obj, error) {
	if ats <= 0 {
		return nil, Error{fmt.Sprintf("Can't read %d atoms per frame", ats), filename, []string{"New"}, true}
	}
	var err error
	traj := new(G96Obj)
	traj.ioread, err = chem.Open(filename)
	if err != nil {
		return nil, Error{UnableToOpen + ": " + err.Error(), filename, []string{"New"}, true}
	}
	traj.filename = filename
	traj.g96 = bufio.NewReader(traj.ioread)
	traj.natoms = ats
	traj.readable = true
	return traj, nil
}

//Readable returns true if the object is ready to be read from
//false otherwise. It doesnt guarantee that there is something
//to read.
func (G *G96Obj) Readable() bool {
	return G.readable
}

//Len returns the number of atoms read per frame
func (G *G96Obj) Len() int {
	return G.natoms
}

//Time returns the step number and the time (ps) of the last frame read, from
//its TIMESTEP block. Both are zero if the frame had no such block.
func (G *G96Obj) Time() (int, float64) {
	return G.step, G.time
}

//Close closes the file. It is called by Next when the last frame has been read.
func (G *G96Obj) Close() error {
	G.readable = false
	if G.ioread == nil {
		return nil
	}
	err := G.ioread.Close()
	G.ioread = nil
	return err
}

//readLine returns the next line, without the newline. Comment lines are skipped.
func (G *G96Obj) readLine() (string, error) {
	for {
		l, err := G.g96.ReadString('\n')
		if err != nil && (err != io.EOF || l == "") {
			return "", err
		}
		G.line++
		l = strings.TrimRight(l, "\r\n")
		if strings.HasPrefix(l, "#") {
			continue
		}
		return l, nil
	}
}

//Next reads the next frame and puts the coordinates in keep. If keep is nil,
//the frame is discarded. The box, if given, is ignored.
//A chem.LastFrameError is returned when there are no more frames.
func (G *G96Obj) Next(keep *v3.Matrix, box ...[]float64) error {
	if !G.readable {
		return Error{TrajUnIni, G.filename, []string{"Next"}, true}
	}
	if keep != nil && keep.NVecs() != G.natoms {
		return Error{fmt.Sprintf("%s: %d vectors for %d atoms", NotEnoughSpace, keep.NVecs(), G.natoms), G.filename, []string{"Next"}, true}
	}
	G.step, G.time = 0, 0
	//find the block
	for {
		l, err := G.readLine()
		if err == io.EOF {
			G.Close()
			return newlastFrameError(G.filename, "Next")
		}
		if err != nil {
			return Error{ReadError + ": " + err.Error(), G.filename, []string{"Next"}, true}
		}
		block := strings.TrimSpace(l)
		if block == "TIMESTEP" {
			if err := G.timestep(); err != nil {
				return errDecorate(err, "Next")
			}
		}
		if block == "POSITIONRED" {
			break
		}
	}
	for i := 0; i < G.natoms; i++ {
		l, err := G.readLine()
		if err != nil {
			return Error{fmt.Sprintf("%s: frame %d ends after %d atoms", WrongFormat, G.frames, i), G.filename, []string{"Next"}, true}
		}
		if strings.TrimSpace(l) == "END" {
			return Error{fmt.Sprintf("%s: frame %d has %d atoms, %d requested", WrongFormat, G.frames, i, G.natoms), G.filename, []string{"Next"}, true}
		}
		if keep == nil {
			continue
		}
		f := strings.Fields(l)
		if len(f) < 3 {
			return Error{fmt.Sprintf("%s: line %d", WrongFormat, G.line), G.filename, []string{"Next"}, true}
		}
		for j := 0; j < 3; j++ {
			c, err := strconv.ParseFloat(f[j], 64)
			if err != nil {
				return Error{fmt.Sprintf("%s: line %d: %s", WrongFormat, G.line, err.Error()), G.filename, []string{"strconv.ParseFloat", "Next"}, true}
			}
			keep.Set(i, j, c*nm2A)
		}
	}
	G.frames++
	return nil
}

//timestep reads the content of a TIMESTEP block.
func (G *G96Obj) timestep() error {
	l, err := G.readLine()
	if err != nil {
		return Error{ReadError + ": " + err.Error(), G.filename, []string{"timestep"}, true}
	}
	f := strings.Fields(l)
	if len(f) < 2 {
		return Error{fmt.Sprintf("%s: TIMESTEP block in line %d", WrongFormat, G.line), G.filename, []string{"timestep"}, true}
	}
	var err2 error
	G.step, err = strconv.Atoi(f[0])
	G.time, err2 = strconv.ParseFloat(f[1], 64)
	if err != nil || err2 != nil {
		return Error{fmt.Sprintf("%s: TIMESTEP block in line %d", WrongFormat, G.line), G.filename, []string{"timestep"}, true}
	}
	return nil
}

//Errors

//errDecorate is a helper function that asserts that the error is
//implements chem.Error and decorates the error with the caller's name before returning it.
//if used with a non-chem.Error error, it will cause a panic.
func errDecorate(err error, caller string) error {
	err2 := err.(chem.Error)
	err2.Decorate(caller)
	return err2
}

//Error is the general structure for GROMOS96 trajectory errors. It fullfills  chem.Error and chem.TrajError
type Error struct {
	message  string
	filename string //the input file that has problems, or empty string if none.
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("GROMOS96 trajectory file %s error: %s", err.filename, err.message)
}

func (E Error) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func (err Error) FileName() string { return err.filename }

func (err Error) Format() string { return "GROMOS96" }

func (err Error) Critical() bool { return err.critical }

const (
	TrajUnIni      = "Traj object uninitialized to read"
	ReadError      = "Error reading frame"
	UnableToOpen   = "Unable to open file"
	WrongFormat    = "Wrong format in the trajectory file or frame"
	NotEnoughSpace = "Not enough space in passed blocks"
)

//lastFrameError implements chem.LastFrameError
type lastFrameError struct {
	deco     []string
	fileName string
}

//lastFrameError does nothing
func (E lastFrameError) NormalLastFrameTermination() {}

func (E lastFrameError) FileName() string { return E.fileName }

func (E lastFrameError) Error() string { return "EOF" }

func (E lastFrameError) Critical() bool { return false }

func (E lastFrameError) Format() string { return "GROMOS96" }

func (E lastFrameError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func newlastFrameError(filename string, caller string) *lastFrameError {
	e := new(lastFrameError)
	e.fileName = filename
	e.deco = []string{caller}
	return e
}
