/*
 * warnings.go, part of gopops.
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

package chem

import (
	"fmt"
	"strings"
)

//Warning is a non-fatal problem found while processing a structure.
//The processing goes on after a warning, but the caller might want to
//report it, or to treat the result with care.
type Warning struct {
	Stage   string //the step that found the problem, i.e. "classify", "topology", "sasa"
	Atoms   []int  //indexes of the atoms involved, if any
	Message string
}

func (w Warning) String() string {
	if len(w.Atoms) == 0 {
		return fmt.Sprintf("%s: %s", w.Stage, w.Message)
	}
	ats := make([]string, len(w.Atoms))
	for i, v := range w.Atoms {
		ats[i] = fmt.Sprint(v)
	}
	return fmt.Sprintf("%s: %s (atoms %s)", w.Stage, w.Message, strings.Join(ats, ","))
}
