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

	"github.com/AleutianAI/BlochSim/pkg/ux"
	"github.com/spf13/cobra"
)

// --- Global Command Variables ---
var (
	config Config // loaded once in PersistentPreRun

	outputMode  string // CLI override for terminal output (rich/plain/machine)
	noColor     bool
	jsonOutput  bool
	compactJSON bool
	quietOutput bool

	batchLimit      int
	watchDebounceMs int

	serveHost          string
	servePort          int
	serveTraceExporter string

	initForce bool

	rootCmd = &cobra.Command{
		Use:   "bloch",
		Short: "A cli to evolve and inspect single-qubit density matrices",
		Long: `Bloch drives the BlochSim evolution engine from the terminal:
				run circuit files through gates and noise channels, inspect
				Bloch vectors, or serve the HTTP simulator.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config = GetConfig()
			if err := ConfigLoadErr(); err != nil {
				ux.Warning(fmt.Sprintf("config ignored: %v", err))
			}
			// Initialize terminal output mode from flag or environment
			if outputMode != "" {
				ux.SetMode(ux.ParseMode(outputMode))
			} else {
				ux.InitMode(noColor || config.NoColor)
			}
		},
	}

	// --- Evaluation ---
	runCmd = &cobra.Command{
		Use:   "run [circuit.yaml]",
		Short: "Evaluate a circuit file and print the resulting states",
		Args:  cobra.ExactArgs(1),
		Run:   runRunCommand, // Defined in cmd_run.go
	}
	batchCmd = &cobra.Command{
		Use:   "batch [circuit.yaml...]",
		Short: "Evaluate several circuit files concurrently",
		Args:  cobra.MinimumNArgs(1),
		Run:   runBatchCommand, // Defined in cmd_batch.go
	}
	watchCmd = &cobra.Command{
		Use:   "watch [circuit.yaml]",
		Short: "Re-evaluate a circuit file whenever it changes",
		Args:  cobra.ExactArgs(1),
		Run:   runWatchCommand, // Defined in cmd_watch.go
	}

	// --- Inspection ---
	gatesCmd = &cobra.Command{
		Use:   "gates",
		Short: "List the supported gates and noise channels",
		Run:   runGatesCommand, // Defined in cmd_run.go
	}
	replCmd = &cobra.Command{
		Use:   "repl",
		Short: "Step a qubit interactively, one operator at a time",
		Run:   runReplCommand, // Defined in cmd_repl.go
	}

	// --- Service ---
	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the BlochSim HTTP simulator service",
		Run:   runServeCommand, // Defined in cmd_serve.go
	}

	// --- Setup ---
	initCmd = &cobra.Command{
		Use:   "init",
		Short: "Create a bloch config file interactively",
		Run:   runInitCommand, // Defined in cmd_init.go
	}
)

// init runs when the Go program starts
func init() {
	// Global output flags
	rootCmd.PersistentFlags().StringVar(&outputMode, "output", "",
		"Output style: rich (default, color), plain, or machine (scripting)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Emit results as JSON")
	rootCmd.PersistentFlags().BoolVar(&compactJSON, "compact", false, "Compact JSON output (no indentation)")
	rootCmd.PersistentFlags().BoolVar(&quietOutput, "quiet", false, "Suppress output, report via exit code only")

	rootCmd.AddCommand(runCmd)

	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().IntVar(&batchLimit, "limit", 4, "Maximum circuits evaluated in parallel")

	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().IntVar(&watchDebounceMs, "debounce", 250, "Milliseconds to wait after a change before re-evaluating")

	rootCmd.AddCommand(gatesCmd)
	rootCmd.AddCommand(replCmd)

	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Interface to bind (default from config)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config)")
	serveCmd.Flags().StringVar(&serveTraceExporter, "trace-exporter", "none",
		"Trace exporter: otlp, stdout, or none")

	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
}
