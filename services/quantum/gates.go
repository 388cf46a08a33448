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

import (
	"math"
	"math/cmplx"
	"strings"
)

// GateKind enumerates the supported unitary gates. The set is closed:
// dispatch inside the engine is an exhaustive switch, and unknown names
// can only enter through ParseGate, which rejects them.
type GateKind int

const (
	GateIdentity GateKind = iota
	GateX
	GateY
	GateZ
	GateH
	GateRx
	GateRy
	GateRz
)

// String returns the canonical lower-case gate name.
func (k GateKind) String() string {
	switch k {
	case GateIdentity:
		return "identity"
	case GateX:
		return "x"
	case GateY:
		return "y"
	case GateZ:
		return "z"
	case GateH:
		return "h"
	case GateRx:
		return "rx"
	case GateRy:
		return "ry"
	case GateRz:
		return "rz"
	}
	return "unknown"
}

// DefaultTheta is the rotation angle, in radians, used when a rotation
// step omits the "theta" parameter.
const DefaultTheta = math.Pi / 2

// Gate is one unitary operator from the catalog. Theta is meaningful
// only for the rotation kinds (Rx, Ry, Rz) and ignored otherwise.
type Gate struct {
	Kind  GateKind
	Theta float64
}

// Matrix returns the 2x2 unitary for the gate.
//
// The rotation conventions follow the standard half-angle forms:
//
//	Rx(θ) = [[cos(θ/2), -i·sin(θ/2)], [-i·sin(θ/2), cos(θ/2)]]
//	Ry(θ) = [[cos(θ/2), -sin(θ/2)], [sin(θ/2), cos(θ/2)]]
//	Rz(θ) = [[e^(-iθ/2), 0], [0, e^(iθ/2)]]
func (g Gate) Matrix() Matrix {
	switch g.Kind {
	case GateX:
		return Matrix{{0, 1}, {1, 0}}
	case GateY:
		return Matrix{{0, complex(0, -1)}, {complex(0, 1), 0}}
	case GateZ:
		return Matrix{{1, 0}, {0, -1}}
	case GateH:
		h := complex(1/math.Sqrt2, 0)
		return Matrix{{h, h}, {h, -h}}
	case GateRx:
		c := complex(math.Cos(g.Theta/2), 0)
		s := complex(0, -math.Sin(g.Theta/2))
		return Matrix{{c, s}, {s, c}}
	case GateRy:
		c := complex(math.Cos(g.Theta/2), 0)
		s := complex(math.Sin(g.Theta/2), 0)
		return Matrix{{c, -s}, {s, c}}
	case GateRz:
		return Matrix{{cmplx.Exp(complex(0, -g.Theta/2)), 0}, {0, cmplx.Exp(complex(0, g.Theta/2))}}
	}
	return Identity()
}

// ParseGate resolves an external gate name plus parameter map to a Gate.
//
// Names are matched case-insensitively, so "H", "h" and "Hadamard" all
// resolve. Rotation gates read the "theta" parameter and fall back to
// DefaultTheta when it is absent; missing parameters are part of the
// contract, not an error. Unrecognized names return
// *UnknownOperatorError.
func ParseGate(name string, params map[string]float64) (Gate, error) {
	theta := DefaultTheta
	if v, ok := params["theta"]; ok {
		theta = v
	}
	switch strings.ToLower(name) {
	case "i", "id", "identity":
		return Gate{Kind: GateIdentity}, nil
	case "x":
		return Gate{Kind: GateX}, nil
	case "y":
		return Gate{Kind: GateY}, nil
	case "z":
		return Gate{Kind: GateZ}, nil
	case "h", "hadamard":
		return Gate{Kind: GateH}, nil
	case "rx":
		return Gate{Kind: GateRx, Theta: theta}, nil
	case "ry":
		return Gate{Kind: GateRy, Theta: theta}, nil
	case "rz":
		return Gate{Kind: GateRz, Theta: theta}, nil
	}
	return Gate{}, &UnknownOperatorError{Name: name, Kind: KindGate}
}
