/*
 * options.go, part of gopops.
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

package pops

//Options contains the settings for a POPS run.
type Options struct {
	probe  float64
	coarse bool
	silent bool
	skip   int
}

//DefaultOptions returns an Options with the default settings: all-atom mode,
//the probe radius of the parameter table, warnings logged and every frame processed.
func DefaultOptions() *Options {
	ret := new(Options)
	ret.probe = 0
	ret.coarse = false
	ret.silent = false
	ret.skip = 1
	return ret
}

//Probe returns the solvent radius to use, and sets it, if a valid value
//is given. A value of 0 means that the probe of the parameter table is used.
func (o *Options) Probe(probe ...float64) float64 {
	ret := o.probe
	if len(probe) > 0 && probe[0] >= 0 {
		o.probe = probe[0]
	}
	return ret
}

//Coarse returns whether the structure is coarse grained (only CA atoms
//for amino acids, P and N3 for nucleotides) and sets the value to the one given, if any.
func (o *Options) Coarse(coarse ...bool) bool {
	ret := o.coarse
	if len(coarse) > 0 {
		o.coarse = coarse[0]
	}
	return ret
}

//Silent returns whether warnings are logged, and sets the value to the one given, if any.
//Warnings are always returned in the Result.
func (o *Options) Silent(silent ...bool) bool {
	ret := o.silent
	if len(silent) > 0 {
		o.silent = silent[0]
	}
	return ret
}

//Skip returns the step between processed trajectory frames, and sets
//it, if a valid value is given.
func (o *Options) Skip(skip ...int) int {
	ret := o.skip
	if len(skip) > 0 && skip[0] > 0 {
		o.skip = skip[0]
	}
	return ret
}
