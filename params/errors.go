/*
 * errors.go, part of gopops.
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
	"fmt"

	chem "github.com/rmera/gopops"
)

//Error is the general error type for the params package. It implements chem.Error
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

//ClassifyError is returned when an atom has no type in the parameter table, so
//there are no parameters to compute its surface.
type ClassifyError struct {
	Atom    int //index of the atom
	ID      int //serial number in the file
	Name    string
	Residue string
	deco    []string
}

func (err ClassifyError) Error() string {
	return fmt.Sprintf("Unknown type of atom %s (%d) in residue %s", err.Name, err.ID, err.Residue)
}

//Decorate adds new information to the error
func (err ClassifyError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical is always true: the atom can't be processed
func (err ClassifyError) Critical() bool { return true }

//errDecorate is a helper function that asserts that the error is
//implements chem.Error and decorates the error with the caller's name before returning it.
//if used with a non-chem.Error error, it will cause a panic.
func errDecorate(err error, caller string) error {
	err2 := err.(chem.Error)
	err2.Decorate(caller)
	return err2
}
