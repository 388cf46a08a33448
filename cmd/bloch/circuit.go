// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/AleutianAI/BlochSim/services/quantum"
	"gopkg.in/yaml.v3"
)

// CircuitStep is one operation in a circuit file: an operator kind
// ("gate" or "noise"), its name, and optional parameters.
type CircuitStep struct {
	Kind   string             `yaml:"kind" json:"kind"`
	Name   string             `yaml:"name" json:"name"`
	Params map[string]float64 `yaml:"params,omitempty" json:"params,omitempty"`
}

// Circuit is a parsed circuit file.
//
// Example file:
//
//	name: damped superposition
//	steps:
//	  - kind: gate
//	    name: h
//	  - kind: noise
//	    name: amplitude_damping
//	    params:
//	      gamma: 0.2
type Circuit struct {
	Name  string        `yaml:"name" json:"name"`
	Steps []CircuitStep `yaml:"steps" json:"steps"`
}

// LoadCircuit reads and parses a circuit file.
//
// The file must exist, parse as YAML, and contain at least one step.
// Operator names are not resolved here; that happens in Operations so
// a file can be loaded and inspected even with typoed names.
func LoadCircuit(path string) (*Circuit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read circuit %s: %w", path, err)
	}

	var circuit Circuit
	if err := yaml.Unmarshal(data, &circuit); err != nil {
		return nil, fmt.Errorf("parse circuit %s: %w", path, err)
	}

	if len(circuit.Steps) == 0 {
		return nil, fmt.Errorf("circuit %s has no steps", path)
	}
	return &circuit, nil
}

// Operations resolves the circuit's steps against the operator catalog.
//
// Returns the first resolution failure wrapped with its step index.
func (c *Circuit) Operations() ([]quantum.Operation, error) {
	ops := make([]quantum.Operation, 0, len(c.Steps))
	for i, step := range c.Steps {
		op, err := quantum.ParseStep(step.Kind, step.Name, step.Params)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// CircuitResult is the outcome of evaluating one circuit file.
type CircuitResult struct {
	Name       string                `json:"name,omitempty"`
	File       string                `json:"file,omitempty"`
	Steps      []quantum.Observation `json:"steps"`
	DurationMs int64                 `json:"duration_ms"`
}

// Final returns the observation after the last step.
func (r *CircuitResult) Final() quantum.Observation {
	return r.Steps[len(r.Steps)-1]
}

// EvaluateCircuit runs a circuit on a fresh state.
//
// Every evaluation constructs its own State, so concurrent evaluations
// (the batch command) never share mutable engine state.
func EvaluateCircuit(circuit *Circuit, cfg quantum.Config) (*CircuitResult, error) {
	ops, err := circuit.Operations()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	state := quantum.NewState(cfg)
	observations, err := quantum.Run(state, ops)
	if err != nil {
		return nil, err
	}

	return &CircuitResult{
		Name:       circuit.Name,
		Steps:      observations,
		DurationMs: time.Since(start).Milliseconds(),
	}, nil
}

// engineConfig builds the engine state configuration from the CLI config.
func engineConfig() quantum.Config {
	return quantum.Config{
		Retention:    quantum.ParseRetention(config.History),
		HistoryLimit: config.HistoryLimit,
	}
}
