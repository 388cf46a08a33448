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
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/AleutianAI/BlochSim/pkg/ux"
	"github.com/AleutianAI/BlochSim/services/quantum"
	"github.com/spf13/cobra"
)

const replPrompt = "bloch> "

// replMaxHistory is the number of input lines kept for up-arrow recall.
const replMaxHistory = 50

const replHelp = `commands:
  gate <name> [param=value]    apply a gate (x, y, z, h, rx, ry, rz, identity)
  noise <name> [param=value]   apply a noise channel (amplitude_damping,
                               phase_damping, depolarizing)
  show                         print the current state
  history                      print retained state snapshots
  reset                        return to the ground state
  help                         show this help
  quit                         leave the repl

examples:
  gate h
  gate rx theta=0.785
  noise amplitude_damping gamma=0.2
`

// replSession is one interactive stepper: a single engine state driven
// line by line.
type replSession struct {
	state  *quantum.State
	reader InputReader
	out    io.Writer
}

func newReplSession(reader InputReader, out io.Writer, cfg quantum.Config) *replSession {
	return &replSession{
		state:  quantum.NewState(cfg),
		reader: reader,
		out:    out,
	}
}

// run executes the repl loop until quit or EOF.
func (r *replSession) run() error {
	r.printObservation("ground state")

	prompter, selfPrompting := r.reader.(PromptingInputReader)
	if selfPrompting {
		prompter.SetPrompt(replPrompt)
	}

	for {
		if !selfPrompting {
			fmt.Fprint(r.out, replPrompt)
		}

		line, err := r.reader.ReadLine()
		if err == io.EOF {
			fmt.Fprintln(r.out)
			return nil
		}
		if err != nil {
			return err
		}

		if r.execute(line) {
			return nil
		}
	}
}

// execute runs one repl line. Returns true when the session should end.
func (r *replSession) execute(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}

	verb := strings.ToLower(fields[0])
	switch verb {
	case "quit", "exit", "q":
		return true
	case "help", "?":
		fmt.Fprint(r.out, replHelp)
	case "reset":
		r.state.Reset()
		r.printObservation("ground state")
	case "show":
		r.printObservation("current state")
	case "history":
		fmt.Fprint(r.out, formatHistory(r.state.History()))
	case "gate", "noise":
		r.applyStep(verb, fields[1:])
	default:
		r.printError(fmt.Errorf("unknown command %q (try 'help')", verb))
	}
	return false
}

// applyStep parses and applies one operator line. Failures leave the
// state untouched; ParseStep rejects before anything mutates.
func (r *replSession) applyStep(kind string, args []string) {
	if len(args) == 0 {
		r.printError(fmt.Errorf("%s requires an operator name", kind))
		return
	}

	params, err := parseParams(args[1:])
	if err != nil {
		r.printError(err)
		return
	}

	op, err := quantum.ParseStep(kind, args[0], params)
	if err != nil {
		r.printError(err)
		return
	}

	if err := op.Apply(r.state); err != nil {
		r.printError(err)
		return
	}
	r.printObservation(fmt.Sprintf("after %s %s", kind, op.Name()))
}

func (r *replSession) printObservation(label string) {
	obs := quantum.Observe(r.state.Density())
	fmt.Fprint(r.out, formatObservation(label, obs))
}

func (r *replSession) printError(err error) {
	msg := fmt.Sprintf("error: %v", err)
	if ux.ShouldColor() {
		msg = ux.Styles.Error.Render(msg)
	}
	fmt.Fprintln(r.out, msg)
}

// parseParams parses name=value tokens into operator parameters.
func parseParams(tokens []string) (map[string]float64, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	params := make(map[string]float64, len(tokens))
	for _, token := range tokens {
		key, value, found := strings.Cut(token, "=")
		if !found || key == "" || value == "" {
			return nil, fmt.Errorf("malformed parameter %q (want name=value)", token)
		}
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("parameter %s: %q is not a number", key, value)
		}
		params[key] = f
	}
	return params, nil
}

func runReplCommand(cmd *cobra.Command, args []string) {
	ux.Title("BlochSim interactive stepper")
	ux.Muted("type 'help' for commands, 'quit' to leave")

	session := newReplSession(NewInteractiveInputReader(replMaxHistory), os.Stdout, engineConfig())
	if err := session.run(); err != nil {
		ux.Error(fmt.Sprintf("repl failed: %v", err))
		os.Exit(CLIExitError)
	}
}
