/*
 * v3_test.go, part of gopops.
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

package v3

import (
	"math"
	"testing"
)

func TestNewMatrix(Te *testing.T) {
	a := []float64{1.0, 2.0, 3, 4, 5, 6, 7, 8, 9}
	A, err := NewMatrix(a)
	if err != nil {
		Te.Error(err)
	}
	if A.NVecs() != 3 {
		Te.Errorf("expected 3 vectors, got %d", A.NVecs())
	}
	v := A.Vec(1)
	v[0] = 100
	if A.At(1, 0) != 100 {
		Te.Error("a change in the vector was not reflected in the matrix")
	}
	if _, err := NewMatrix([]float64{1, 2, 3, 4}); err == nil {
		Te.Error("slice of length 4 should not make a Nx3 matrix")
	}
}

func TestSomeVecs(Te *testing.T) {
	a := []float64{1.0, 2.0, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18}
	A, err := NewMatrix(a)
	if err != nil {
		Te.Error(err)
	}
	B := Zeros(3)
	cind := []int{1, 3, 5}
	err = B.SomeVecsSafe(A, cind)
	if err != nil {
		Te.Error(err)
	}
	if B.At(2, 2) != 18 || B.At(0, 0) != 4 {
		Te.Errorf("wrong vectors selected %v", B)
	}
	B.Set(1, 1, 55)
	if A.At(3, 1) != 11 {
		Te.Errorf("SomeVecsSafe should copy the vectors, not share them %v", A)
	}
	C := Zeros(2)
	if err := C.SomeVecsSafe(A, cind); err == nil {
		Te.Error("SomeVecsSafe should fail with a mismatched receiver")
	}
	if err := C.SomeVecsSafe(A, []int{0, 7}); err == nil {
		Te.Error("SomeVecsSafe should fail with an index out of range")
	}
}

func TestDist(Te *testing.T) {
	A, err := NewMatrix([]float64{0, 0, 0, 3, 4, 0, 1, 1, 1})
	if err != nil {
		Te.Error(err)
	}
	if d := A.Dist(0, 1); d != 5 {
		Te.Errorf("expected distance 5, got %f", d)
	}
	if d := A.Dist(2, 0); math.Abs(d-math.Sqrt(3)) > 1e-12 {
		Te.Errorf("expected distance sqrt(3), got %f", d)
	}
	if A.Dist(1, 2) != A.Dist(2, 1) {
		Te.Error("distance is not symmetric")
	}
}
