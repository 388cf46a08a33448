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
	"errors"
	"math"
	"testing"
)

func TestGateMatrices(t *testing.T) {
	invSqrt2 := complex(1/math.Sqrt2, 0)

	tests := []struct {
		name string
		gate Gate
		want Matrix
	}{
		{
			name: "identity",
			gate: Gate{Kind: GateIdentity},
			want: Matrix{{1, 0}, {0, 1}},
		},
		{
			name: "pauli x",
			gate: Gate{Kind: GateX},
			want: Matrix{{0, 1}, {1, 0}},
		},
		{
			name: "pauli y",
			gate: Gate{Kind: GateY},
			want: Matrix{{0, complex(0, -1)}, {complex(0, 1), 0}},
		},
		{
			name: "pauli z",
			gate: Gate{Kind: GateZ},
			want: Matrix{{1, 0}, {0, -1}},
		},
		{
			name: "hadamard",
			gate: Gate{Kind: GateH},
			want: Matrix{{invSqrt2, invSqrt2}, {invSqrt2, -invSqrt2}},
		},
		{
			name: "rx quarter turn",
			gate: Gate{Kind: GateRx, Theta: math.Pi / 2},
			want: Matrix{
				{invSqrt2, complex(0, -1/math.Sqrt2)},
				{complex(0, -1/math.Sqrt2), invSqrt2},
			},
		},
		{
			name: "ry quarter turn",
			gate: Gate{Kind: GateRy, Theta: math.Pi / 2},
			want: Matrix{{invSqrt2, -invSqrt2}, {invSqrt2, invSqrt2}},
		},
		{
			name: "rz half turn",
			gate: Gate{Kind: GateRz, Theta: math.Pi},
			want: Matrix{{complex(0, -1), 0}, {0, complex(0, 1)}},
		},
		{
			name: "rx zero angle is identity",
			gate: Gate{Kind: GateRx, Theta: 0},
			want: Matrix{{1, 0}, {0, 1}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.gate.Matrix()
			if !got.ApproxEqual(tc.want, Tolerance) {
				t.Errorf("Matrix() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestGateMatricesAreUnitary(t *testing.T) {
	gates := []Gate{
		{Kind: GateIdentity},
		{Kind: GateX},
		{Kind: GateY},
		{Kind: GateZ},
		{Kind: GateH},
		{Kind: GateRx, Theta: 0.31},
		{Kind: GateRy, Theta: 1.7},
		{Kind: GateRz, Theta: -2.4},
		{Kind: GateRx, Theta: DefaultTheta},
	}

	for _, g := range gates {
		u := g.Matrix()
		if !u.Mul(u.Dagger()).ApproxEqual(Identity(), Tolerance) {
			t.Errorf("gate %s (theta=%v) is not unitary", g.Kind, g.Theta)
		}
	}
}

func TestParseGate(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		params    map[string]float64
		wantKind  GateKind
		wantTheta float64
		wantErr   bool
	}{
		{name: "lowercase x", input: "x", wantKind: GateX},
		{name: "uppercase x", input: "X", wantKind: GateX},
		{name: "hadamard short", input: "h", wantKind: GateH},
		{name: "hadamard long", input: "Hadamard", wantKind: GateH},
		{name: "identity alias", input: "id", wantKind: GateIdentity},
		{name: "rx default theta", input: "rx", wantKind: GateRx, wantTheta: DefaultTheta},
		{name: "rx explicit theta", input: "Rx", params: map[string]float64{"theta": 1.25}, wantKind: GateRx, wantTheta: 1.25},
		{name: "rz explicit theta", input: "rz", params: map[string]float64{"theta": -0.5}, wantKind: GateRz, wantTheta: -0.5},
		{name: "unknown gate", input: "cnot", wantErr: true},
		{name: "empty name", input: "", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, err := ParseGate(tc.input, tc.params)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got gate %v", tc.input, g)
				}
				var unknown *UnknownOperatorError
				if !errors.As(err, &unknown) {
					t.Fatalf("expected *UnknownOperatorError, got %T", err)
				}
				if unknown.Name != tc.input || unknown.Kind != KindGate {
					t.Errorf("error fields = (%q, %q), want (%q, gate)", unknown.Name, unknown.Kind, tc.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseGate(%q) failed: %v", tc.input, err)
			}
			if g.Kind != tc.wantKind {
				t.Errorf("kind = %v, want %v", g.Kind, tc.wantKind)
			}
			if !closeTo(g.Theta, tc.wantTheta) {
				t.Errorf("theta = %v, want %v", g.Theta, tc.wantTheta)
			}
		})
	}
}

func TestGateCatalogCoversAllKinds(t *testing.T) {
	entries := GateCatalog()
	if len(entries) != 8 {
		t.Fatalf("catalog lists %d gates, want 8", len(entries))
	}

	// Every catalog name must resolve through the parser.
	for _, e := range entries {
		if _, err := ParseGate(e.Name, nil); err != nil {
			t.Errorf("catalog gate %q does not parse: %v", e.Name, err)
		}
	}

	// Rotations advertise their parameter and default.
	for _, e := range entries {
		switch e.Name {
		case "rx", "ry", "rz":
			if e.Parameter != "theta" || !closeTo(e.Default, DefaultTheta) {
				t.Errorf("rotation %q advertises (%q, %v)", e.Name, e.Parameter, e.Default)
			}
		default:
			if e.Parameter != "" {
				t.Errorf("fixed gate %q should not advertise a parameter", e.Name)
			}
		}
	}
}
