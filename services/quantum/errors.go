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
	"fmt"
)

// OperatorKind distinguishes the two operator families a step can name.
type OperatorKind string

const (
	KindGate  OperatorKind = "gate"
	KindNoise OperatorKind = "noise"
)

// UnknownOperatorError reports a step that names an operator missing
// from the catalog. The name and the family it was looked up in are
// preserved so callers can surface both to the client.
type UnknownOperatorError struct {
	Name string
	Kind OperatorKind
}

func (e *UnknownOperatorError) Error() string {
	return fmt.Sprintf("unknown %s operator %q", e.Kind, e.Name)
}

// MalformedStepError reports a step whose structure cannot be resolved,
// e.g. a kind outside {gate, noise}.
type MalformedStepError struct {
	Reason string
}

func (e *MalformedStepError) Error() string {
	return "malformed step: " + e.Reason
}

// NonUnitaryError reports a gate matrix rejected by the optional
// unitarity check: U·U† deviated from the identity beyond Tolerance.
type NonUnitaryError struct {
	Deviation float64
}

func (e *NonUnitaryError) Error() string {
	return fmt.Sprintf("gate is not unitary: deviation %.3e from identity", e.Deviation)
}

// ErrEmptyKrausSet is returned by ApplyKraus when the operator set is
// empty. An empty sum would silently zero the state.
var ErrEmptyKrausSet = errors.New("kraus operator set is empty")
