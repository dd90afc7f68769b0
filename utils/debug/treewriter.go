// Package debug produces indented human readable dumps of internal
// structures for logs and debug reports.
package debug

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// DefaultTextLimit is the number of runes TextBlock keeps from a value.
const DefaultTextLimit = 160

type TreeWriter struct {
	w     *strings.Builder
	limit int
}

// NewTreeWriter returns writer truncating text blocks at DefaultTextLimit.
func NewTreeWriter() *TreeWriter {
	return NewTreeWriterLimit(DefaultTextLimit)
}

// NewTreeWriterLimit returns writer truncating text blocks at limit runes,
// zero or negative limit disables truncation.
func NewTreeWriterLimit(limit int) *TreeWriter {
	return &TreeWriter{w: &strings.Builder{}, limit: limit}
}

func (tw *TreeWriter) String() string {
	return tw.w.String()
}

func (tw *TreeWriter) indent(depth int) {
	for range depth {
		tw.w.WriteString("  ")
	}
}

func (tw *TreeWriter) Line(depth int, format string, args ...any) {
	tw.indent(depth)
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

// TextBlock writes quoted value, long values are cut and marked with number
// of dropped runes.
func (tw *TreeWriter) TextBlock(depth int, label, value string) {
	tw.indent(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(tw.encodeText(value))
	tw.w.WriteByte('\n')
}

func (tw *TreeWriter) encodeText(raw string) string {
	if raw == "" {
		return raw
	}
	n := utf8.RuneCountInString(raw)
	if tw.limit <= 0 || n <= tw.limit {
		return strconv.Quote(raw)
	}
	cut := 0
	for range tw.limit {
		_, size := utf8.DecodeRuneInString(raw[cut:])
		cut += size
	}
	return strconv.Quote(raw[:cut]) + fmt.Sprintf(" (+%d)", n-tw.limit)
}
