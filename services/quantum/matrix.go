// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package quantum

import "math/cmplx"

// Matrix is a 2x2 complex matrix, the fundamental value type of the
// engine. It is used for density matrices, unitary gates and individual
// Kraus operators.
//
// Matrix is a plain value: assignment and append copy it, which is what
// makes history snapshots independent of the live state for free.
type Matrix [2][2]complex128

// Identity returns the 2x2 identity matrix.
func Identity() Matrix {
	return Matrix{{1, 0}, {0, 1}}
}

// Mul returns the matrix product m*n.
func (m Matrix) Mul(n Matrix) Matrix {
	var out Matrix
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			out[i][j] = m[i][0]*n[0][j] + m[i][1]*n[1][j]
		}
	}
	return out
}

// Add returns the entry-wise sum m+n.
func (m Matrix) Add(n Matrix) Matrix {
	var out Matrix
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			out[i][j] = m[i][j] + n[i][j]
		}
	}
	return out
}

// Scale returns m with every entry multiplied by s.
func (m Matrix) Scale(s complex128) Matrix {
	var out Matrix
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			out[i][j] = s * m[i][j]
		}
	}
	return out
}

// Dagger returns the conjugate transpose m†.
func (m Matrix) Dagger() Matrix {
	var out Matrix
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			out[i][j] = cmplx.Conj(m[j][i])
		}
	}
	return out
}

// Trace returns the sum of the diagonal entries.
func (m Matrix) Trace() complex128 {
	return m[0][0] + m[1][1]
}

// ApproxEqual reports whether every entry of m is within tol of the
// corresponding entry of n, measured by complex magnitude.
func (m Matrix) ApproxEqual(n Matrix, tol float64) bool {
	return maxDeviation(m, n) <= tol
}

// Serialize converts m to its wire form: 2 rows by 2 columns by
// [real, imaginary], row-major. The shape marshals directly to the
// nested-array JSON the service emits.
func (m Matrix) Serialize() [2][2][2]float64 {
	var out [2][2][2]float64
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			out[i][j][0] = real(m[i][j])
			out[i][j][1] = imag(m[i][j])
		}
	}
	return out
}

// Deserialize rebuilds a Matrix from its wire form. It is the exact
// inverse of Serialize.
func Deserialize(cells [2][2][2]float64) Matrix {
	var out Matrix
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			out[i][j] = complex(cells[i][j][0], cells[i][j][1])
		}
	}
	return out
}

// maxDeviation returns the largest entry-wise magnitude difference
// between a and b.
func maxDeviation(a, b Matrix) float64 {
	max := 0.0
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if d := cmplx.Abs(a[i][j] - b[i][j]); d > max {
				max = d
			}
		}
	}
	return max
}
