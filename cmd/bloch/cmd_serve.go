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

	"github.com/AleutianAI/BlochSim/pkg/ux"
	"github.com/AleutianAI/BlochSim/services/simulator"
	"github.com/spf13/cobra"
)

// runServeCommand starts the HTTP simulator in the foreground. Flags
// override the config file; the service applies its own defaults for
// anything left unset.
func runServeCommand(cmd *cobra.Command, args []string) {
	host := serveHost
	if host == "" {
		host = config.Service.Host
	}
	port := servePort
	if port == 0 {
		port = config.Service.Port
	}

	svc, err := simulator.New(simulator.Config{
		Host:          host,
		Port:          port,
		TraceExporter: serveTraceExporter,
	})
	if err != nil {
		ux.Error(fmt.Sprintf("create simulator: %v", err))
		os.Exit(CLIExitError)
	}

	ux.Title("BlochSim simulator")
	ux.Info(fmt.Sprintf("listening on %s:%d", host, port))
	if err := svc.Run(); err != nil {
		ux.Error(fmt.Sprintf("simulator stopped: %v", err))
		os.Exit(CLIExitError)
	}
}
