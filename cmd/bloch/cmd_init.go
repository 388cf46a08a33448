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
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/AleutianAI/BlochSim/pkg/ux"
	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// runInitCommand walks through the config options in a terminal form
// and writes the result to the config path. Without a terminal it
// writes defaults so scripted setups still get a valid file.
//
// # Exit Codes
//
//   - 0: Config written, or init cancelled
//   - 2: Config exists without --force, or the write failed
func runInitCommand(cmd *cobra.Command, args []string) {
	path := ConfigPath()

	if _, err := os.Stat(path); err == nil && !initForce {
		ux.Error(fmt.Sprintf("config already exists at %s (use --force to overwrite)", path))
		os.Exit(CLIExitError)
	}

	cfg := DefaultConfig()

	if !isatty.IsTerminal(os.Stdin.Fd()) {
		if err := WriteConfig(path, cfg); err != nil {
			ux.Error(fmt.Sprintf("write config: %v", err))
			os.Exit(CLIExitError)
		}
		fmt.Printf("wrote default config to %s\n", path)
		return
	}

	limitStr := strconv.Itoa(cfg.HistoryLimit)
	portStr := strconv.Itoa(cfg.Service.Port)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Default output format").
				Options(
					huh.NewOption("table", "table"),
					huh.NewOption("json", "json"),
				).
				Value(&cfg.Format),
			huh.NewSelect[string]().
				Title("State history retention").
				Description("all keeps every snapshot, bounded keeps the most recent, none keeps nothing").
				Options(
					huh.NewOption("all", "all"),
					huh.NewOption("bounded", "bounded"),
					huh.NewOption("none", "none"),
				).
				Value(&cfg.History),
			huh.NewInput().
				Title("History limit (bounded retention)").
				Validate(validatePositiveInt).
				Value(&limitStr),
			huh.NewConfirm().
				Title("Disable colored output?").
				Value(&cfg.NoColor),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Simulator bind host").
				Value(&cfg.Service.Host),
			huh.NewInput().
				Title("Simulator port").
				Validate(validatePort).
				Value(&portStr),
		),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			ux.Muted("init cancelled, nothing written")
			return
		}
		ux.Error(fmt.Sprintf("init failed: %v", err))
		os.Exit(CLIExitError)
	}

	// Validated above, so these cannot fail
	cfg.HistoryLimit, _ = strconv.Atoi(limitStr)
	cfg.Service.Port, _ = strconv.Atoi(portStr)

	if err := WriteConfig(path, cfg); err != nil {
		ux.Error(fmt.Sprintf("write config: %v", err))
		os.Exit(CLIExitError)
	}
	ux.Success(fmt.Sprintf("config written to %s", path))
}

func validatePositiveInt(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return errors.New("enter a positive integer")
	}
	return nil
}

func validatePort(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 65535 {
		return errors.New("enter a port between 1 and 65535")
	}
	return nil
}
