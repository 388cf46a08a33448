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

	"github.com/AleutianAI/BlochSim/pkg/ux"
	"github.com/AleutianAI/BlochSim/services/quantum"
	"github.com/spf13/cobra"
)

// runRunCommand evaluates one circuit file and prints every resulting
// state, or the final state summary in machine modes.
//
// # Exit Codes
//
//   - 0: Circuit evaluated cleanly
//   - 1: The engine rejected a step (unknown operator, malformed step,
//     broken unitarity)
//   - 2: Operational error (unreadable file, bad YAML)
func runRunCommand(cmd *cobra.Command, args []string) {
	start := time.Now()
	out := outputConfig()

	circuit, err := LoadCircuit(args[0])
	if err != nil {
		os.Exit(OutputResult(out, "run", start, nil, err))
	}

	result, err := EvaluateCircuit(circuit, engineConfig())
	if err != nil {
		os.Exit(OutputResult(out, "run", start, nil, err))
	}
	result.File = args[0]

	if out.JSON || out.Quiet {
		os.Exit(OutputResult(out, "run", start, result, nil))
	}

	fmt.Print(formatCircuitResult(circuit, result))
	os.Exit(CLIExitSuccess)
}

// runGatesCommand prints the operator catalog.
func runGatesCommand(cmd *cobra.Command, args []string) {
	start := time.Now()
	out := outputConfig()

	gates := quantum.GateCatalog()
	channels := quantum.ChannelCatalog()

	if out.JSON || out.Quiet {
		data := struct {
			Gates    []quantum.CatalogEntry `json:"gates"`
			Channels []quantum.CatalogEntry `json:"noise_channels"`
		}{Gates: gates, Channels: channels}
		os.Exit(OutputResult(out, "gates", start, data, nil))
	}

	ux.Title("Operator catalog")
	fmt.Print(formatCatalog(gates, channels))
	os.Exit(CLIExitSuccess)
}
