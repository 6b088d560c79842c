// File: pretty.go
// Title: Pretty Table Format
// Description: Boxed table output rendered with lipgloss.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation

package tableformat

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	colorPrimary = lipgloss.Color("#7C3AED")
	colorMuted   = lipgloss.Color("#6B7280")

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	borderStyle = lipgloss.NewStyle().
			Foreground(colorMuted)
)

// prettyFormatter buffers rows into a lipgloss table and renders it on Close
type prettyFormatter struct {
	w     io.Writer
	table *table.Table
}

func newPrettyFormatter(w io.Writer) *prettyFormatter {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle.Align(lipgloss.Right)
		})
	return &prettyFormatter{w: w, table: t}
}

func (f *prettyFormatter) Headings(headers []string) error {
	f.table.Headers(headers...)
	return nil
}

func (f *prettyFormatter) Row(values []interface{}) error {
	f.table.Row(cells(values)...)
	return nil
}

func (f *prettyFormatter) Close() error {
	_, err := fmt.Fprintln(f.w, f.table.Render())
	return err
}
