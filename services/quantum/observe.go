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

// Pauli matrices, fixed forms. The sign convention in Y (−i upper
// right, +i lower left) is load-bearing: flipping it silently negates
// the Bloch y component.
var (
	pauliX = Matrix{{0, 1}, {1, 0}}
	pauliY = Matrix{{0, complex(0, -1)}, {complex(0, 1), 0}}
	pauliZ = Matrix{{1, 0}, {0, -1}}
)

// Bloch is the Bloch-vector projection of a density matrix. For a pure
// state the vector has length 1; mixing shortens it toward the origin.
type Bloch struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// BlochVector computes (Tr(rho·X), Tr(rho·Y), Tr(rho·Z)), keeping the
// real parts. For a Hermitian rho the imaginary parts are exactly zero;
// they are discarded, not validated.
func BlochVector(rho Matrix) Bloch {
	return Bloch{
		X: real(rho.Mul(pauliX).Trace()),
		Y: real(rho.Mul(pauliY).Trace()),
		Z: real(rho.Mul(pauliZ).Trace()),
	}
}

// Observation is the externally visible summary of a density matrix,
// reported after every applied step. The field shapes marshal directly
// to the service's wire format.
type Observation struct {
	Bloch   Bloch            `json:"bloch_vector"`
	Density [2][2][2]float64 `json:"density_matrix"`
}

// Observe derives the observation record for rho. It is pure: computed
// on demand, never stored as engine state.
func Observe(rho Matrix) Observation {
	return Observation{
		Bloch:   BlochVector(rho),
		Density: rho.Serialize(),
	}
}
