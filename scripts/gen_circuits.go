// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// gen_circuits regenerates the example circuit files under examples/circuits.
//
// Usage:
//
//	go run scripts/gen_circuits.go [output-dir]
//
// Each circuit is a small YAML file the CLI evaluates directly:
//
//	bloch run examples/circuits/bit_flip.yaml
//
// The noise examples pull their parameter names and defaults from the
// operator catalog, so they stay in sync with the engine.
package main

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/AleutianAI/BlochSim/services/quantum"
)

// circuitYAML mirrors the circuit file schema the CLI reads.
type circuitYAML struct {
	Name  string     `yaml:"name"`
	Steps []stepYAML `yaml:"steps"`
}

// stepYAML is one operation in a circuit file.
type stepYAML struct {
	Kind   string             `yaml:"kind"`
	Name   string             `yaml:"name"`
	Params map[string]float64 `yaml:"params,omitempty"`
}

// example pairs an output file with its circuit and a one-line note
// written into the file header.
type example struct {
	File    string
	Note    string
	Circuit circuitYAML
}

func main() {
	dir := "examples/circuits"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", dir, err)
		os.Exit(1)
	}

	for _, ex := range examples() {
		path := filepath.Join(dir, ex.File)
		if err := writeExample(path, ex); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", path, err)
			os.Exit(1)
		}
		fmt.Printf("wrote %s\n", path)
	}
}

// examples builds the circuit set: a few fixed gate circuits plus one
// circuit per noise channel in the catalog.
func examples() []example {
	list := []example{
		{
			File: "bit_flip.yaml",
			Note: "Pauli-X on the ground state, ends at z = -1.",
			Circuit: circuitYAML{
				Name:  "bit flip",
				Steps: []stepYAML{{Kind: "gate", Name: "x"}},
			},
		},
		{
			File: "superposition.yaml",
			Note: "Hadamard on the ground state, ends at x = +1.",
			Circuit: circuitYAML{
				Name:  "superposition",
				Steps: []stepYAML{{Kind: "gate", Name: "h"}},
			},
		},
		{
			File: "eighth_turn.yaml",
			Note: "Rotation about the X axis by pi/4 radians.",
			Circuit: circuitYAML{
				Name: "eighth turn",
				Steps: []stepYAML{{
					Kind:   "gate",
					Name:   "rx",
					Params: map[string]float64{"theta": math.Pi / 4},
				}},
			},
		},
		{
			File: "damped_superposition.yaml",
			Note: "Hadamard followed by amplitude damping, coherence shrinks.",
			Circuit: circuitYAML{
				Name: "damped superposition",
				Steps: []stepYAML{
					{Kind: "gate", Name: "h"},
					{Kind: "noise", Name: "amplitude_damping", Params: map[string]float64{"gamma": 0.2}},
				},
			},
		},
	}

	// Amplitude damping shows best from the excited state; dephasing and
	// depolarizing need coherence to act on.
	preludes := map[string]string{"amplitude_damping": "x"}
	for _, entry := range quantum.ChannelCatalog() {
		prelude := preludes[entry.Name]
		if prelude == "" {
			prelude = "h"
		}
		list = append(list, example{
			File: entry.Name + ".yaml",
			Note: entry.Description + ".",
			Circuit: circuitYAML{
				Name: strings.ReplaceAll(entry.Name, "_", " "),
				Steps: []stepYAML{
					{Kind: "gate", Name: prelude},
					{Kind: "noise", Name: entry.Name, Params: map[string]float64{entry.Parameter: entry.Default}},
				},
			},
		})
	}
	return list
}

// writeExample renders one circuit with a generated-file header.
func writeExample(path string, ex example) error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# Generated by scripts/gen_circuits.go. Edit the generator, not this file.\n")
	fmt.Fprintf(&buf, "# %s\n", ex.Note)

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(ex.Circuit); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}

	return os.WriteFile(path, buf.Bytes(), 0o644)
}
