// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Terminal rendering for observations, circuit results, and the
// operator catalog. All formatters return strings so commands decide
// where output goes and tests never capture stdout.

package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AleutianAI/BlochSim/pkg/ux"
	"github.com/AleutianAI/BlochSim/services/quantum"
	"github.com/charmbracelet/lipgloss"
)

// meterWidth is the character width of Bloch component bars.
const meterWidth = 16

// formatBloch renders the three Bloch components as signed meters with
// a purity line. Purity is (1 + |r|^2) / 2: 1.0 for pure states, 0.5
// at the maximally mixed center.
func formatBloch(b quantum.Bloch) string {
	axes := []struct {
		label string
		value float64
		style lipgloss.Style
	}{
		{"x", b.X, ux.Styles.AxisX},
		{"y", b.Y, ux.Styles.AxisY},
		{"z", b.Z, ux.Styles.AxisZ},
	}

	var sb strings.Builder
	for _, axis := range axes {
		label := axis.label
		if ux.ShouldColor() {
			label = axis.style.Render(label)
		}
		sb.WriteString(fmt.Sprintf("  %s %+8.4f  %s\n",
			label, axis.value, ux.Meter(axis.value, meterWidth, axis.style)))
	}

	purity := (1 + b.X*b.X + b.Y*b.Y + b.Z*b.Z) / 2
	line := fmt.Sprintf("  purity %.4f", purity)
	if ux.ShouldColor() {
		line = ux.Styles.Muted.Render(line)
	}
	sb.WriteString(line + "\n")
	return sb.String()
}

// formatComplex renders one density matrix entry.
func formatComplex(entry [2]float64) string {
	return fmt.Sprintf("%+.4f%+.4fi", entry[0], entry[1])
}

// formatDensity renders the 2x2 density matrix.
func formatDensity(d [2][2][2]float64) string {
	top := fmt.Sprintf("  ⎡ %s  %s ⎤", formatComplex(d[0][0]), formatComplex(d[0][1]))
	bottom := fmt.Sprintf("  ⎣ %s  %s ⎦", formatComplex(d[1][0]), formatComplex(d[1][1]))
	return top + "\n" + bottom + "\n"
}

// formatObservation renders a labeled observation: Bloch meters first,
// density matrix below.
func formatObservation(label string, obs quantum.Observation) string {
	if ux.ShouldColor() {
		label = ux.Styles.Subtitle.Render(label)
	}
	return label + "\n" + formatBloch(obs.Bloch) + formatDensity(obs.Density)
}

// stepLabel names one circuit step for display, including parameters.
func stepLabel(index int, step CircuitStep) string {
	label := fmt.Sprintf("step %d  %s %s", index+1, step.Kind, step.Name)
	if len(step.Params) > 0 {
		parts := make([]string, 0, len(step.Params))
		for _, key := range sortedParamKeys(step.Params) {
			parts = append(parts, fmt.Sprintf("%s=%g", key, step.Params[key]))
		}
		label += " (" + strings.Join(parts, " ") + ")"
	}
	return label
}

func sortedParamKeys(params map[string]float64) []string {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// formatCircuitResult renders the full per-step evaluation of a circuit.
func formatCircuitResult(circuit *Circuit, res *CircuitResult) string {
	var sb strings.Builder

	title := circuit.Name
	if title == "" {
		title = "circuit"
	}
	if ux.ShouldColor() {
		title = ux.Styles.Title.Render(title)
	}
	sb.WriteString(title + "\n\n")

	for i, obs := range res.Steps {
		sb.WriteString(formatObservation(stepLabel(i, circuit.Steps[i]), obs))
		sb.WriteString("\n")
	}

	footer := fmt.Sprintf("%d steps in %dms", len(res.Steps), res.DurationMs)
	if ux.ShouldColor() {
		footer = ux.Styles.Muted.Render(footer)
	}
	sb.WriteString(footer + "\n")
	return sb.String()
}

// formatCatalog renders the operator catalog as two sections.
func formatCatalog(gates, channels []quantum.CatalogEntry) string {
	var sb strings.Builder
	sb.WriteString(formatCatalogSection("Gates", gates))
	sb.WriteString("\n")
	sb.WriteString(formatCatalogSection("Noise channels", channels))
	return sb.String()
}

func formatCatalogSection(title string, entries []quantum.CatalogEntry) string {
	var sb strings.Builder

	if ux.ShouldColor() {
		title = ux.Styles.Title.Render(title)
	}
	sb.WriteString(title + "\n")

	header := fmt.Sprintf("  %-18s %-10s %-8s %s", "NAME", "PARAMETER", "DEFAULT", "DESCRIPTION")
	if ux.ShouldColor() {
		header = ux.Styles.TableHeader.Render(header)
	}
	sb.WriteString(header + "\n")

	for _, entry := range entries {
		parameter := entry.Parameter
		defaultVal := "-"
		if parameter == "" {
			parameter = "-"
		} else {
			defaultVal = fmt.Sprintf("%.4g", entry.Default)
		}
		sb.WriteString(fmt.Sprintf("  %-18s %-10s %-8s %s\n",
			entry.Name, parameter, defaultVal, entry.Description))
	}
	return sb.String()
}

// formatHistory renders retained state snapshots as one Bloch readout
// per line. Used by the repl history command.
func formatHistory(snapshots []quantum.Matrix) string {
	if len(snapshots) == 0 {
		return "no history retained\n"
	}

	var sb strings.Builder
	for i, snapshot := range snapshots {
		b := quantum.BlochVector(snapshot)
		sb.WriteString(fmt.Sprintf("  %2d  x %+8.4f  y %+8.4f  z %+8.4f\n", i+1, b.X, b.Y, b.Z))
	}
	return sb.String()
}

// formatBatchResult renders one line per circuit plus a pass/fail
// footer.
func formatBatchResult(res BatchResult) string {
	var sb strings.Builder

	title := "Batch results"
	if ux.ShouldColor() {
		title = ux.Styles.Title.Render(title)
	}
	sb.WriteString(title + "\n\n")

	for _, entry := range res.Entries {
		if entry.Error != "" {
			sb.WriteString(fmt.Sprintf("  %s %s: %s\n",
				ux.IconError.Render(), entry.File, entry.Error))
			continue
		}
		name := entry.Name
		if name == "" {
			name = "-"
		}
		sb.WriteString(fmt.Sprintf("  %s %-24s %-16s %2d steps  z %+8.4f  %dms\n",
			ux.IconSuccess.Render(), entry.File, name, entry.Steps,
			entry.Final.Bloch.Z, entry.DurationMs))
	}

	sb.WriteString(fmt.Sprintf("\n%d passed, %d failed\n", res.Passed, res.Failed))
	return sb.String()
}
