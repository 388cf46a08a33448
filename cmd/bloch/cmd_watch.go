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
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/AleutianAI/BlochSim/pkg/ux"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// evaluateAndRender runs one watched evaluation. Failures are printed
// and swallowed so the loop keeps running while the file is mid-edit.
func evaluateAndRender(path string) {
	out := outputConfig()

	circuit, err := LoadCircuit(path)
	if err != nil {
		ux.Error(err.Error())
		return
	}

	result, err := EvaluateCircuit(circuit, engineConfig())
	if err != nil {
		ux.Error(err.Error())
		return
	}
	result.File = path

	if out.JSON {
		if err := OutputJSON(result, out.Compact); err != nil {
			ux.Error(fmt.Sprintf("encode result: %v", err))
		}
		return
	}
	fmt.Print(formatCircuitResult(circuit, result))
}

// runWatchCommand evaluates a circuit file, then re-evaluates it every
// time it changes on disk. Changes are debounced so editors that write
// in bursts trigger a single evaluation.
func runWatchCommand(cmd *cobra.Command, args []string) {
	path := args[0]
	base := filepath.Base(path)
	debounce := time.Duration(watchDebounceMs) * time.Millisecond

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		ux.Error(fmt.Sprintf("start watcher: %v", err))
		os.Exit(CLIExitError)
	}
	defer watcher.Close()

	// Watch the directory, not the file. Editors that save via
	// rename-and-replace would drop a watch on the file itself.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		ux.Error(fmt.Sprintf("watch %s: %v", filepath.Dir(path), err))
		os.Exit(CLIExitError)
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	ux.Info(fmt.Sprintf("watching %s, ctrl-c to stop", path))
	evaluateAndRender(path)

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			// Reset or start debounce timer
			if timer == nil {
				timer = time.NewTimer(debounce)
				timerC = timer.C
			} else {
				timer.Reset(debounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			ux.Warning(fmt.Sprintf("watch error: %v", err))

		case <-timerC:
			// Debounce window expired
			timer = nil
			timerC = nil
			evaluateAndRender(path)

		case <-interrupt:
			fmt.Println()
			ux.Muted("watch stopped")
			return
		}
	}
}
