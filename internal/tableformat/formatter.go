// File: formatter.go
// Title: Table Formatters
// Description: Output formats for record tables. A Formatter receives the
//              headings once and then one row of values at a time; New
//              composes a base format with the optional column-format and
//              upper-case-header behaviours.
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
	"html"
	"io"
	"sort"
	"strings"

	mdwerror "github.com/msto63/recordkit/foundation/core/error"
	"github.com/msto63/recordkit/foundation/core/record"
)

// Formatter renders a table
type Formatter interface {
	Headings(headers []string) error
	Row(values []interface{}) error
	// Close flushes buffered output
	Close() error
}

// Options modify a base format
type Options struct {
	// UpperHeaders upper-cases the headings
	UpperHeaders bool
	// ColumnFormats holds one printf verb per column, e.g. "%d" or "%0.2f"
	ColumnFormats []string
}

type constructor func(w io.Writer) Formatter

var formats = map[string]constructor{
	"text":   func(w io.Writer) Formatter { return &textFormatter{w: w} },
	"csv":    func(w io.Writer) Formatter { return &csvFormatter{w: w} },
	"html":   func(w io.Writer) Formatter { return &htmlFormatter{w: w} },
	"pretty": func(w io.Writer) Formatter { return newPrettyFormatter(w) },
}

// Formats returns the known format names
func Formats() []string {
	names := make([]string, 0, len(formats))
	for name := range formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New creates the named formatter writing to w
func New(format string, w io.Writer, opts Options) (Formatter, error) {
	ctor, ok := formats[strings.ToLower(strings.TrimSpace(format))]
	if !ok {
		return nil, mdwerror.New(fmt.Sprintf("Format %s unknown (valid: %s)", format, strings.Join(Formats(), ", "))).
			WithCode(mdwerror.CodeUnknownFormat).
			WithOperation("tableformat.New").
			WithDetail("format", format)
	}

	f := ctor(w)
	if len(opts.ColumnFormats) > 0 {
		f = &columnFormatter{Formatter: f, formats: opts.ColumnFormats}
	}
	if opts.UpperHeaders {
		f = &upperHeaders{Formatter: f}
	}
	return f, nil
}

func cells(values []interface{}) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = record.FormatValue(v)
	}
	return out
}

type textFormatter struct {
	w io.Writer
}

func (f *textFormatter) Headings(headers []string) error {
	parts := make([]string, len(headers))
	for i, h := range headers {
		parts[i] = fmt.Sprintf("%10s", h)
	}
	if _, err := fmt.Fprintln(f.w, strings.Join(parts, " ")); err != nil {
		return err
	}
	_, err := fmt.Fprintln(f.w, strings.Repeat(strings.Repeat("-", 10)+" ", len(headers)))
	return err
}

func (f *textFormatter) Row(values []interface{}) error {
	parts := cells(values)
	for i, p := range parts {
		parts[i] = fmt.Sprintf("%10s", p)
	}
	_, err := fmt.Fprintln(f.w, strings.Join(parts, " "))
	return err
}

func (f *textFormatter) Close() error { return nil }

type csvFormatter struct {
	w io.Writer
}

func (f *csvFormatter) Headings(headers []string) error {
	_, err := fmt.Fprintln(f.w, strings.Join(headers, ","))
	return err
}

func (f *csvFormatter) Row(values []interface{}) error {
	_, err := fmt.Fprintln(f.w, strings.Join(cells(values), ","))
	return err
}

func (f *csvFormatter) Close() error { return nil }

type htmlFormatter struct {
	w io.Writer
}

func (f *htmlFormatter) Headings(headers []string) error {
	return f.line("th", headers)
}

func (f *htmlFormatter) Row(values []interface{}) error {
	return f.line("td", cells(values))
}

func (f *htmlFormatter) line(tag string, items []string) error {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = fmt.Sprintf("<%s>%s</%s>", tag, html.EscapeString(item), tag)
	}
	_, err := fmt.Fprintf(f.w, "<tr> %s </tr>\n", strings.Join(parts, " "))
	return err
}

func (f *htmlFormatter) Close() error { return nil }

// columnFormatter applies one printf verb per column before delegating
type columnFormatter struct {
	Formatter
	formats []string
}

func (f *columnFormatter) Row(values []interface{}) error {
	out := make([]interface{}, len(values))
	for i, v := range values {
		if i < len(f.formats) && f.formats[i] != "" {
			out[i] = fmt.Sprintf(f.formats[i], v)
		} else {
			out[i] = v
		}
	}
	return f.Formatter.Row(out)
}

// upperHeaders upper-cases headings before delegating
type upperHeaders struct {
	Formatter
}

func (f *upperHeaders) Headings(headers []string) error {
	upper := make([]string, len(headers))
	for i, h := range headers {
		upper[i] = strings.ToUpper(h)
	}
	return f.Formatter.Headings(upper)
}
