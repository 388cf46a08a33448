// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package ux provides rich terminal output styling for the BlochSim CLI.
package ux

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// BlochSim color palette - deep space indigos and phase violets
var (
	// Primary palette (brightest to darkest)
	ColorVioletBright  = lipgloss.Color("#B48CFF") // Bright violet - highlights, success accents
	ColorVioletPrimary = lipgloss.Color("#9A6BFF") // Primary violet - main brand color
	ColorVioletDeep    = lipgloss.Color("#7B52D6") // Deep violet - interactive elements
	ColorIndigoMedium  = lipgloss.Color("#5B4B9E") // Medium indigo - secondary elements
	ColorIndigoDeep    = lipgloss.Color("#44397A") // Deep indigo - borders, accents

	// Dark palette (for backgrounds, muted elements)
	ColorVoid     = lipgloss.Color("#161228") // Void - near black backgrounds
	ColorMidnight = lipgloss.Color("#1F1A38") // Midnight - deep backgrounds
	ColorSlate    = lipgloss.Color("#4C4766") // Slate - muted text, borders

	// Bloch sphere axis colors (x red, y green, z blue convention)
	ColorAxisX = lipgloss.Color("#E06C75")
	ColorAxisY = lipgloss.Color("#98C379")
	ColorAxisZ = lipgloss.Color("#61AFEF")

	// Semantic colors (keeping standard conventions for clarity)
	ColorSuccess = lipgloss.Color("#98C379") // Green for success
	ColorWarning = lipgloss.Color("#F4D03F") // Gold/amber for warnings
	ColorError   = lipgloss.Color("#E74C3C") // Red for errors
	ColorMuted   = lipgloss.Color("#4C4766") // Slate for muted text
)

// Styles provides pre-configured lipgloss styles
var Styles = struct {
	// Text styles
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Bold      lipgloss.Style
	Muted     lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Highlight lipgloss.Style

	// Bloch axis styles
	AxisX lipgloss.Style
	AxisY lipgloss.Style
	AxisZ lipgloss.Style

	// Table styles
	TableHeader lipgloss.Style
	TableCell   lipgloss.Style

	// Box styles
	Box      lipgloss.Style
	ErrorBox lipgloss.Style
}{
	// Text styles
	Title:     lipgloss.NewStyle().Bold(true).Foreground(ColorVioletBright),
	Subtitle:  lipgloss.NewStyle().Foreground(ColorVioletPrimary),
	Bold:      lipgloss.NewStyle().Bold(true),
	Muted:     lipgloss.NewStyle().Foreground(ColorSlate),
	Success:   lipgloss.NewStyle().Foreground(ColorSuccess),
	Warning:   lipgloss.NewStyle().Foreground(ColorWarning),
	Error:     lipgloss.NewStyle().Foreground(ColorError),
	Highlight: lipgloss.NewStyle().Foreground(ColorVioletBright).Bold(true),

	// Bloch axis styles
	AxisX: lipgloss.NewStyle().Foreground(ColorAxisX),
	AxisY: lipgloss.NewStyle().Foreground(ColorAxisY),
	AxisZ: lipgloss.NewStyle().Foreground(ColorAxisZ),

	// Table styles
	TableHeader: lipgloss.NewStyle().Bold(true).Foreground(ColorVioletPrimary),
	TableCell:   lipgloss.NewStyle(),

	// Box styles
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorIndigoDeep).
		Padding(0, 1),
	ErrorBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorError).
		Padding(0, 1),
}

// Icon provides themed status icons
type Icon string

const (
	IconSuccess Icon = "✓"
	IconWarning Icon = "⚠"
	IconError   Icon = "✗"
	IconPending Icon = "○"
	IconArrow   Icon = "→"
	IconBullet  Icon = "•"
	IconKet     Icon = "⟩"
)

// Render returns the icon with appropriate styling
func (i Icon) Render() string {
	if !ShouldColor() {
		return string(i)
	}
	switch i {
	case IconSuccess:
		return Styles.Success.Render(string(i))
	case IconWarning:
		return Styles.Warning.Render(string(i))
	case IconError:
		return Styles.Error.Render(string(i))
	case IconPending:
		return Styles.Muted.Render(string(i))
	default:
		return string(i)
	}
}

// Print helpers that respect the output mode

// Title prints a styled title
func Title(text string) {
	switch GetMode() {
	case ModeMachine:
		return
	case ModePlain:
		fmt.Println(text)
	default:
		fmt.Println(Styles.Title.Render(text))
	}
}

// Success prints a success message with checkmark
func Success(text string) {
	switch GetMode() {
	case ModeMachine:
		fmt.Fprintf(os.Stdout, "OK: %s\n", text)
	case ModePlain:
		fmt.Printf("%s %s\n", IconSuccess, text)
	default:
		fmt.Printf("%s %s\n", IconSuccess.Render(), Styles.Success.Render(text))
	}
}

// Warning prints a warning message
func Warning(text string) {
	switch GetMode() {
	case ModeMachine:
		fmt.Fprintf(os.Stderr, "WARN: %s\n", text)
	case ModePlain:
		fmt.Printf("%s %s\n", IconWarning, text)
	default:
		fmt.Printf("%s %s\n", IconWarning.Render(), Styles.Warning.Render(text))
	}
}

// Error prints an error message
func Error(text string) {
	switch GetMode() {
	case ModeMachine:
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", text)
	case ModePlain:
		fmt.Printf("%s %s\n", IconError, text)
	default:
		fmt.Printf("%s %s\n", IconError.Render(), Styles.Error.Render(text))
	}
}

// Info prints an informational message
func Info(text string) {
	switch GetMode() {
	case ModeMachine:
		fmt.Println(text)
	case ModePlain:
		fmt.Printf("| %s\n", text)
	default:
		fmt.Printf("%s %s\n", Styles.Muted.Render("│"), text)
	}
}

// Muted prints muted/secondary text
func Muted(text string) {
	switch GetMode() {
	case ModeMachine:
		return
	case ModePlain:
		fmt.Println(text)
	default:
		fmt.Println(Styles.Muted.Render(text))
	}
}

// Box prints text in a rounded box
func Box(title, content string) {
	if GetMode() != ModeRich {
		fmt.Printf("%s: %s\n", title, content)
		return
	}
	boxStyle := Styles.Box.Width(60)
	titleLine := Styles.Title.Render(title)
	fmt.Println(boxStyle.Render(titleLine + "\n" + content))
}

// Meter renders a signed horizontal bar for a value in [-1, 1].
//
// Negative values fill to the left of a center mark, positive to the
// right. Used for Bloch vector component readouts.
func Meter(value float64, width int, style lipgloss.Style) string {
	if width < 2 {
		width = 2
	}
	half := width / 2
	if value > 1 {
		value = 1
	}
	if value < -1 {
		value = -1
	}

	filled := int(value * float64(half))
	var left, right string
	if filled < 0 {
		left = repeatChar('░', half+filled) + repeatChar('█', -filled)
		right = repeatChar('░', half)
	} else {
		left = repeatChar('░', half)
		right = repeatChar('█', filled) + repeatChar('░', half-filled)
	}

	if !ShouldColor() {
		return left + "|" + right
	}
	return Styles.Muted.Render(left) + "|" + style.Render(right)
}

func repeatChar(c rune, n int) string {
	if n <= 0 {
		return ""
	}
	result := make([]rune, n)
	for i := range result {
		result[i] = c
	}
	return string(result)
}
