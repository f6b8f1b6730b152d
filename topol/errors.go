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

package topol

import (
	"fmt"
	"strings"

	chem "github.com/rmera/gopops"
)

//Error is the general error type for the topol package. It implements chem.Error
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

//Deficit describes a class of contacts for which too few elements were found.
type Deficit struct {
	Class Class
	Found int
}

func (d Deficit) String() string {
	return fmt.Sprintf("need at least 2 %s, found %d, try coarse mode", d.Class.plural(), d.Found)
}

//InsufficientError is returned when the structure doesn't have enough
//bonds, angles or torsions for a topology. Every deficient class is listed.
type InsufficientError struct {
	Deficits []Deficit
	deco     []string
}

func (err InsufficientError) Error() string {
	s := make([]string, 0, len(err.Deficits))
	for _, v := range err.Deficits {
		s = append(s, v.String())
	}
	return "Insufficient topology: " + strings.Join(s, "; ")
}

//Lacks returns true if the error includes a deficit of the class c.
func (err InsufficientError) Lacks(c Class) bool {
	for _, v := range err.Deficits {
		if v.Class == c {
			return true
		}
	}
	return false
}

//Decorate adds new information to the error
func (err InsufficientError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical is always true.
func (err InsufficientError) Critical() bool { return true }

//CapacityError is returned when an atom gets more non-bonded neighbours
//than its list can hold.
type CapacityError struct {
	Atom     int
	Capacity int
	deco     []string
}

func (err CapacityError) Error() string {
	return fmt.Sprintf("Atom %d has more than %d non-bonded neighbours", err.Atom, err.Capacity)
}

//Decorate adds new information to the error
func (err CapacityError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical is always true.
func (err CapacityError) Critical() bool { return true }

//errDecorate is a helper function that asserts that the error is
//implements chem.Error and decorates the error with the caller's name before returning it.
//if used with a non-chem.Error error, it will cause a panic.
func errDecorate(err error, caller string) error {
	err2 := err.(chem.Error)
	err2.Decorate(caller)
	return err2
}
