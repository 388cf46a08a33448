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

// CatalogEntry describes one operator for discovery surfaces: the
// operators endpoint and the CLI catalog listing. Parameter is empty
// for fixed gates.
type CatalogEntry struct {
	Name        string  `json:"name"`
	Parameter   string  `json:"parameter,omitempty"`
	Default     float64 `json:"default,omitempty"`
	Description string  `json:"description"`
}

// GateCatalog lists the supported gates in presentation order.
func GateCatalog() []CatalogEntry {
	return []CatalogEntry{
		{Name: "identity", Description: "identity, leaves the state unchanged"},
		{Name: "x", Description: "Pauli-X, the bit flip"},
		{Name: "y", Description: "Pauli-Y"},
		{Name: "z", Description: "Pauli-Z, the phase flip"},
		{Name: "h", Description: "Hadamard, maps |0> to an equal superposition"},
		{Name: "rx", Parameter: "theta", Default: DefaultTheta, Description: "rotation about the X axis by theta radians"},
		{Name: "ry", Parameter: "theta", Default: DefaultTheta, Description: "rotation about the Y axis by theta radians"},
		{Name: "rz", Parameter: "theta", Default: DefaultTheta, Description: "rotation about the Z axis by theta radians"},
	}
}

// ChannelCatalog lists the supported noise channels in presentation
// order.
func ChannelCatalog() []CatalogEntry {
	return []CatalogEntry{
		{Name: "amplitude_damping", Parameter: "gamma", Default: DefaultGamma, Description: "energy relaxation, |1> decays to |0>"},
		{Name: "phase_damping", Parameter: "lambda", Default: DefaultLambda, Description: "dephasing, coherences shrink without energy loss"},
		{Name: "depolarizing", Parameter: "p", Default: DefaultP, Description: "uniform Pauli errors toward the maximally mixed state"},
	}
}
