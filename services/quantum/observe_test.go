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
	"encoding/json"
	"math"
	"testing"
)

func TestBlochVectorKnownStates(t *testing.T) {
	tests := []struct {
		name string
		rho  Matrix
		want Bloch
	}{
		{
			name: "ground points up",
			rho:  Ground(),
			want: Bloch{X: 0, Y: 0, Z: 1},
		},
		{
			name: "excited points down",
			rho:  Matrix{{0, 0}, {0, 1}},
			want: Bloch{X: 0, Y: 0, Z: -1},
		},
		{
			name: "plus points along x",
			rho:  Matrix{{0.5, 0.5}, {0.5, 0.5}},
			want: Bloch{X: 1, Y: 0, Z: 0},
		},
		{
			name: "maximally mixed is the origin",
			rho:  Matrix{{0.5, 0}, {0, 0.5}},
			want: Bloch{X: 0, Y: 0, Z: 0},
		},
		{
			name: "y eigenstate points along y",
			rho: Matrix{
				{0.5, complex(0, -0.5)},
				{complex(0, 0.5), 0.5},
			},
			want: Bloch{X: 0, Y: 1, Z: 0},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := BlochVector(tc.rho)
			if !closeTo(got.X, tc.want.X) || !closeTo(got.Y, tc.want.Y) || !closeTo(got.Z, tc.want.Z) {
				t.Errorf("BlochVector = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestBlochVectorHadamard(t *testing.T) {
	st := NewState(Config{})
	if err := st.ApplyGate(Gate{Kind: GateH}.Matrix()); err != nil {
		t.Fatalf("H failed: %v", err)
	}
	b := BlochVector(st.Density())
	if !closeTo(b.X, 1) || !closeTo(b.Y, 0) || !closeTo(b.Z, 0) {
		t.Errorf("H on ground: Bloch = %+v, want (1,0,0)", b)
	}
}

func TestBlochVectorRotationConventions(t *testing.T) {
	// Rx(pi/2) takes the ground state to the -y axis, Ry(pi/2) to +x.
	// These pin the sign conventions of the rotation matrices and
	// pauli Y simultaneously.
	t.Run("rx quarter turn", func(t *testing.T) {
		st := NewState(Config{})
		if err := st.ApplyGate(Gate{Kind: GateRx, Theta: math.Pi / 2}.Matrix()); err != nil {
			t.Fatalf("Rx failed: %v", err)
		}
		b := BlochVector(st.Density())
		if !closeTo(b.X, 0) || !closeTo(b.Y, -1) || !closeTo(b.Z, 0) {
			t.Errorf("Rx(pi/2) on ground: Bloch = %+v, want (0,-1,0)", b)
		}
	})

	t.Run("ry quarter turn", func(t *testing.T) {
		st := NewState(Config{})
		if err := st.ApplyGate(Gate{Kind: GateRy, Theta: math.Pi / 2}.Matrix()); err != nil {
			t.Fatalf("Ry failed: %v", err)
		}
		b := BlochVector(st.Density())
		if !closeTo(b.X, 1) || !closeTo(b.Y, 0) || !closeTo(b.Z, 0) {
			t.Errorf("Ry(pi/2) on ground: Bloch = %+v, want (1,0,0)", b)
		}
	})

	t.Run("rz spins the equator", func(t *testing.T) {
		st := NewState(Config{})
		if err := st.ApplyGate(Gate{Kind: GateH}.Matrix()); err != nil {
			t.Fatalf("H failed: %v", err)
		}
		if err := st.ApplyGate(Gate{Kind: GateRz, Theta: math.Pi / 2}.Matrix()); err != nil {
			t.Fatalf("Rz failed: %v", err)
		}
		b := BlochVector(st.Density())
		if !closeTo(b.X, 0) || !closeTo(b.Y, 1) || !closeTo(b.Z, 0) {
			t.Errorf("Rz(pi/2) on |+>: Bloch = %+v, want (0,1,0)", b)
		}
	})
}

func TestObserveWireShape(t *testing.T) {
	obs := Observe(Ground())

	raw, err := json.Marshal(obs)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	want := `{"bloch_vector":{"x":0,"y":0,"z":1},"density_matrix":[[[1,0],[0,0]],[[0,0],[0,0]]]}`
	if string(raw) != want {
		t.Errorf("wire form = %s, want %s", raw, want)
	}
}

func TestObserveIsPure(t *testing.T) {
	st := NewState(Config{})
	if err := st.ApplyGate(Gate{Kind: GateH}.Matrix()); err != nil {
		t.Fatalf("H failed: %v", err)
	}
	before := st.Density()

	// Observing must not mutate anything.
	for i := 0; i < 3; i++ {
		Observe(st.Density())
	}
	if st.Density() != before || st.Steps() != 1 {
		t.Error("Observe mutated the state")
	}
}
