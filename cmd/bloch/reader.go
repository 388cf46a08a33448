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
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
)

// =============================================================================
// InputReader Interface
// =============================================================================

// InputReader abstracts user input reading for testability.
//
// # Description
//
// InputReader enables mocking of stdin in repl tests. The production
// implementation wraps bufio.Reader; the interactive implementation
// adds history navigation; the test implementation returns
// predetermined inputs.
//
// ReadLine returns the line read (trimmed) and any error. Returns
// io.EOF when input is exhausted.
type InputReader interface {
	// ReadLine reads a single line of input, trimmed of surrounding
	// whitespace. Blocks until input is available.
	ReadLine() (string, error)
}

// PromptingInputReader extends InputReader with prompt display.
//
// Implemented by readers that draw their own prompt (the interactive
// reader). The repl checks for this interface to avoid
// double-prompting:
//
//	if p, ok := reader.(PromptingInputReader); ok {
//	    p.SetPrompt(prompt)
//	} else {
//	    fmt.Print(prompt)
//	}
//	line, err := reader.ReadLine()
type PromptingInputReader interface {
	InputReader
	// SetPrompt sets the prompt string to display before input.
	SetPrompt(prompt string)
}

// =============================================================================
// StdinReader Implementation
// =============================================================================

// StdinReader implements InputReader for plain stdin reading.
//
// Used for piped input and non-TTY environments. No line editing, no
// history.
type StdinReader struct {
	reader *bufio.Reader
}

// NewStdinReader creates a new StdinReader wrapping os.Stdin.
func NewStdinReader() *StdinReader {
	return &StdinReader{
		reader: bufio.NewReader(os.Stdin),
	}
}

// ReadLine reads a single line from stdin.
//
// Blocks until a newline arrives or stdin closes (io.EOF).
func (r *StdinReader) ReadLine() (string, error) {
	line, err := r.reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// =============================================================================
// InteractiveInputReader Implementation (with history)
// =============================================================================

// InteractiveInputReader implements InputReader with history navigation.
//
// # Description
//
// InteractiveInputReader uses charmbracelet/bubbletea to provide an
// interactive input experience with:
//   - Up/down arrow history navigation
//   - Line editing (Ctrl+A, Ctrl+E, etc.)
//   - Proper terminal handling
//
// Falls back to StdinReader for non-TTY environments (piped input,
// CI/CD).
//
// # Thread Safety
//
// Not thread-safe. Single reader per stdin. Do not share across
// goroutines.
//
// # Limitations
//
//   - History is in-memory only (not persisted across sessions)
type InteractiveInputReader struct {
	history      []string
	historyIndex int
	maxHistory   int
	prompt       string
}

// inputModel is the bubbletea model for interactive input.
type inputModel struct {
	textInput    textinput.Model
	history      []string
	historyIndex int
	currentInput string // Stores current input when navigating history
	done         bool
	cancelled    bool
}

// NewInteractiveInputReader creates an interactive input reader with
// history. If stdin is not a TTY, returns a StdinReader instead.
func NewInteractiveInputReader(maxHistory int) InputReader {
	// Fall back to basic stdin reader for non-TTY (piped input, CI/CD)
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return NewStdinReader()
	}

	return &InteractiveInputReader{
		history:      make([]string, 0, maxHistory),
		historyIndex: -1,
		maxHistory:   maxHistory,
		prompt:       "> ",
	}
}

// SetPrompt sets the prompt string displayed by the textinput component.
func (r *InteractiveInputReader) SetPrompt(prompt string) {
	r.prompt = prompt
}

// ReadLine reads a single line with interactive history support.
//
// # Description
//
// Displays the prompt and reads user input with support for:
//   - Up arrow: Previous history entry
//   - Down arrow: Next history entry
//   - Enter: Submit input
//   - Ctrl+C: Cancel current input (returns empty string)
//   - Ctrl+D: EOF (returns io.EOF)
//
// Successfully submitted non-empty inputs are added to history.
func (r *InteractiveInputReader) ReadLine() (string, error) {
	ti := textinput.New()
	ti.Prompt = r.prompt
	ti.Focus()
	ti.CharLimit = 512
	ti.Width = 80

	m := inputModel{
		textInput:    ti,
		history:      r.history,
		historyIndex: -1,
	}

	p := tea.NewProgram(m, tea.WithOutput(os.Stderr))
	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	result, ok := finalModel.(inputModel)
	if !ok {
		return "", fmt.Errorf("unexpected model type from bubbletea: %T", finalModel)
	}

	// Ctrl+D on an empty line means EOF
	if result.cancelled && result.textInput.Value() == "" {
		return "", io.EOF
	}

	input := strings.TrimSpace(result.textInput.Value())
	if input != "" {
		r.addToHistory(input)
	}
	return input, nil
}

// addToHistory adds an input to the history buffer.
func (r *InteractiveInputReader) addToHistory(input string) {
	// Don't add duplicates of the most recent entry
	if len(r.history) > 0 && r.history[len(r.history)-1] == input {
		return
	}

	r.history = append(r.history, input)

	if len(r.history) > r.maxHistory {
		r.history = r.history[1:]
	}
}

// Init initializes the bubbletea model.
func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input events for the bubbletea model.
func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit

		case tea.KeyCtrlC:
			// Clear input and return empty
			m.textInput.SetValue("")
			m.done = true
			return m, tea.Quit

		case tea.KeyCtrlD:
			m.cancelled = true
			m.textInput.SetValue("")
			m.done = true
			return m, tea.Quit

		case tea.KeyUp:
			if len(m.history) == 0 {
				return m, nil
			}

			// Save current input when first entering history
			if m.historyIndex == -1 {
				m.currentInput = m.textInput.Value()
				m.historyIndex = len(m.history) - 1
			} else if m.historyIndex > 0 {
				m.historyIndex--
			}

			m.textInput.SetValue(m.history[m.historyIndex])
			m.textInput.CursorEnd()
			return m, nil

		case tea.KeyDown:
			if m.historyIndex == -1 {
				return m, nil
			}

			if m.historyIndex < len(m.history)-1 {
				m.historyIndex++
				m.textInput.SetValue(m.history[m.historyIndex])
			} else {
				// Return to the input that was being typed
				m.historyIndex = -1
				m.textInput.SetValue(m.currentInput)
			}
			m.textInput.CursorEnd()
			return m, nil
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// View renders the input prompt.
func (m inputModel) View() string {
	if m.done {
		return ""
	}
	return m.textInput.View()
}

// =============================================================================
// MockInputReader Implementation (for testing)
// =============================================================================

// MockInputReader implements InputReader for testing.
//
// Returns predetermined inputs in sequence; io.EOF once exhausted.
type MockInputReader struct {
	inputs []string
	index  int
}

// NewMockInputReader creates a MockInputReader with predetermined inputs.
func NewMockInputReader(inputs []string) *MockInputReader {
	return &MockInputReader{inputs: inputs}
}

// ReadLine returns the next input in sequence, io.EOF when exhausted.
func (m *MockInputReader) ReadLine() (string, error) {
	if m.index >= len(m.inputs) {
		return "", io.EOF
	}
	line := m.inputs[m.index]
	m.index++
	return strings.TrimSpace(line), nil
}
