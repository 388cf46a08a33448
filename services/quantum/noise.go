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
	"strings"
)

// ChannelKind enumerates the supported noise channels. Like GateKind it
// is a closed set; strings only exist at the ParseChannel boundary.
type ChannelKind int

const (
	AmplitudeDamping ChannelKind = iota
	PhaseDamping
	Depolarizing
)

// String returns the canonical channel name.
func (k ChannelKind) String() string {
	switch k {
	case AmplitudeDamping:
		return "amplitude_damping"
	case PhaseDamping:
		return "phase_damping"
	case Depolarizing:
		return "depolarizing"
	}
	return "unknown"
}

// Default channel parameters, used when a noise step omits its parameter.
const (
	DefaultGamma  = 0.1
	DefaultLambda = 0.1
	DefaultP      = 0.05
)

// Channel is one noise channel from the catalog with its probability
// parameter (gamma, lambda or p depending on the kind).
type Channel struct {
	Kind  ChannelKind
	Param float64
}

// Kraus returns the channel's Kraus operator set. Each set satisfies the
// CPTP condition sum(K†·K) = I for any parameter in [0,1].
//
// The parameter is clamped to [0,1] before use. Out-of-range values are
// never an error: amplitude_damping with gamma=1.5 behaves exactly like
// gamma=1. This leniency is deliberate and tested.
func (c Channel) Kraus() []Matrix {
	p := clamp01(c.Param)
	switch c.Kind {
	case AmplitudeDamping:
		// Energy relaxation: |1> decays to |0> with probability p.
		k0 := Matrix{{1, 0}, {0, complex(math.Sqrt(1-p), 0)}}
		k1 := Matrix{{0, complex(math.Sqrt(p), 0)}, {0, 0}}
		return []Matrix{k0, k1}
	case PhaseDamping:
		// Dephasing: off-diagonal coherences shrink, populations stay.
		k0 := Identity().Scale(complex(math.Sqrt(1-p), 0))
		k1 := Matrix{{complex(math.Sqrt(p), 0), 0}, {0, 0}}
		k2 := Matrix{{0, 0}, {0, complex(math.Sqrt(p), 0)}}
		return []Matrix{k0, k1, k2}
	case Depolarizing:
		// With probability p the qubit is replaced by the maximally
		// mixed state, expressed as uniform Pauli errors.
		k0 := Identity().Scale(complex(math.Sqrt(1-3*p/4), 0))
		s := complex(math.Sqrt(p/4), 0)
		k1 := Gate{Kind: GateX}.Matrix().Scale(s)
		k2 := Gate{Kind: GateY}.Matrix().Scale(s)
		k3 := Gate{Kind: GateZ}.Matrix().Scale(s)
		return []Matrix{k0, k1, k2, k3}
	}
	return []Matrix{Identity()}
}

// ParseChannel resolves an external channel name plus parameter map to a
// Channel.
//
// Parameter keys are channel-specific: "gamma" for amplitude damping,
// "lambda" for phase damping, "p" for depolarizing. Missing parameters
// fall back to the documented defaults. Unrecognized names return
// *UnknownOperatorError.
func ParseChannel(name string, params map[string]float64) (Channel, error) {
	switch strings.ToLower(name) {
	case "amplitude_damping", "amplitudedamping":
		return Channel{Kind: AmplitudeDamping, Param: paramOr(params, "gamma", DefaultGamma)}, nil
	case "phase_damping", "phasedamping":
		return Channel{Kind: PhaseDamping, Param: paramOr(params, "lambda", DefaultLambda)}, nil
	case "depolarizing":
		return Channel{Kind: Depolarizing, Param: paramOr(params, "p", DefaultP)}, nil
	}
	return Channel{}, &UnknownOperatorError{Name: name, Kind: KindNoise}
}

func paramOr(params map[string]float64, key string, def float64) float64 {
	if v, ok := params[key]; ok {
		return v
	}
	return def
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
