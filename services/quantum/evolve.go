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
	"fmt"
	"strings"
)

// Operation is a resolved circuit step: exactly one of a gate or a
// noise channel, tagged by kind. Construct with GateOp, ChannelOp or
// ParseStep; the zero value is invalid and fails Apply.
type Operation struct {
	kind    OperatorKind
	gate    Gate
	channel Channel
}

// GateOp wraps a gate as an Operation.
func GateOp(g Gate) Operation {
	return Operation{kind: KindGate, gate: g}
}

// ChannelOp wraps a noise channel as an Operation.
func ChannelOp(c Channel) Operation {
	return Operation{kind: KindNoise, channel: c}
}

// Kind reports the operator family.
func (op Operation) Kind() OperatorKind {
	return op.kind
}

// Name reports the canonical operator name, for logs and metrics.
func (op Operation) Name() string {
	switch op.kind {
	case KindGate:
		return op.gate.Kind.String()
	case KindNoise:
		return op.channel.Kind.String()
	}
	return "invalid"
}

// Apply performs the operation on st.
func (op Operation) Apply(st *State) error {
	switch op.kind {
	case KindGate:
		return st.ApplyGate(op.gate.Matrix())
	case KindNoise:
		return st.ApplyKraus(op.channel.Kraus())
	}
	return &MalformedStepError{Reason: fmt.Sprintf("operation kind %q is neither gate nor noise", string(op.kind))}
}

// ParseStep resolves an external step description to an Operation.
//
// kind selects the operator family ("gate" or "noise", case-insensitive);
// name and params are resolved against the corresponding catalog. Unknown
// names yield *UnknownOperatorError, a bad kind *MalformedStepError.
func ParseStep(kind, name string, params map[string]float64) (Operation, error) {
	switch OperatorKind(strings.ToLower(kind)) {
	case KindGate:
		g, err := ParseGate(name, params)
		if err != nil {
			return Operation{}, err
		}
		return GateOp(g), nil
	case KindNoise:
		c, err := ParseChannel(name, params)
		if err != nil {
			return Operation{}, err
		}
		return ChannelOp(c), nil
	}
	return Operation{}, &MalformedStepError{
		Reason: fmt.Sprintf("step kind must be %q or %q, got %q", KindGate, KindNoise, kind),
	}
}

// Run folds ops over st in strict order, observing the state after each
// step. Observation i always describes the state after operation i.
//
// A failing step aborts the remainder: the returned slice holds one
// observation per successfully applied step (aligned with the input
// prefix) and the error identifies the failing step by index. Skipping
// a bad step instead would silently desynchronize the observation list
// from the input.
func Run(st *State, ops []Operation) ([]Observation, error) {
	observations := make([]Observation, 0, len(ops))
	for i, op := range ops {
		if err := op.Apply(st); err != nil {
			return observations, fmt.Errorf("step %d (%s %s): %w", i, op.Kind(), op.Name(), err)
		}
		observations = append(observations, Observe(st.Density()))
	}
	return observations, nil
}
