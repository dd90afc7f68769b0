// Package numbering derives user facing numbering of sections from sibling
// order. Every consumer (TOC, both renderers) must get labels from here.
package numbering

import (
	"slices"
	"strconv"
	"strings"

	"bylaws/common"
	"bylaws/document"
)

// PreambleLabel is fixed display label of the preamble.
const PreambleLabel = "Preamble"

// Label is resolved numbering of a single section.
type Label struct {
	Type   common.SectionType `yaml:"type" json:"type"`
	Index  int                `yaml:"index" json:"index"`
	Depth  int                `yaml:"depth" json:"depth"`
	Number string             `yaml:"number,omitempty" json:"number,omitempty"`
	Text   string             `yaml:"text" json:"text"`
}

// Labels maps section id to its label.
type Labels map[string]Label

// Get returns label for id, falling back to empty label.
func (l Labels) Get(id string) Label {
	return l[id]
}

// Resolve computes labels for every section of the snapshot. For duplicated
// ids the first occurrence wins.
func Resolve(c *document.Collection) Labels {
	r := resolver{c: c, numbers: make(map[int]string)}
	labels := make(Labels, c.Len())
	for i := range c.Len() {
		id := c.At(i).ID
		if _, exists := labels[id]; exists {
			continue
		}
		labels[id] = r.label(i)
	}
	return labels
}

type resolver struct {
	c       *document.Collection
	numbers map[int]string
}

func (r *resolver) label(i int) Label {
	s := r.c.At(i)
	l := Label{Type: s.Type}

	switch s.Type {
	case common.SectionTypePreamble:
		l.Text = withTitle(PreambleLabel, ": ", s.Title)
	case common.SectionTypeArticle:
		l.Index = position(r.c.OfType(common.SectionTypeArticle), i)
		l.Number = Roman(l.Index)
		l.Text = withTitle("Article "+l.Number, ": ", s.Title)
	case common.SectionTypeSection:
		l.Index = position(r.c.Siblings(i), i)
		l.Number = strconv.Itoa(l.Index)
		l.Text = withTitle("Section "+l.Number, ": ", s.Title)
	case common.SectionTypeSubsection:
		l.Index = position(r.c.Siblings(i), i)
		l.Depth = r.depth(i)
		l.Number = r.number(i, make(map[int]bool))
		l.Text = withTitle(l.Number, " ", s.Title)
	case common.SectionTypeAmendment:
		l.Index = position(r.c.OfType(common.SectionTypeAmendment), i)
		l.Number = strconv.Itoa(l.Index)
		l.Text = withTitle("Amendment "+l.Number, ": ", s.Title)
	}
	return l
}

// number resolves dotted subsection number through ancestors: parent section
// contributes its index, every subsection on the way adds its own.
func (r *resolver) number(i int, seen map[int]bool) string {
	if n, ok := r.numbers[i]; ok {
		return n
	}
	seen[i] = true

	own := strconv.Itoa(position(r.c.Siblings(i), i))
	n := own
	if p, ok := r.c.Parent(i); ok && !seen[p] {
		switch r.c.At(p).Type {
		case common.SectionTypeSection:
			n = strconv.Itoa(position(r.c.Siblings(p), p)) + "." + own
		case common.SectionTypeSubsection:
			n = r.number(p, seen) + "." + own
		}
	}
	r.numbers[i] = n
	return n
}

// depth counts subsection ancestors.
func (r *resolver) depth(i int) int {
	seen := map[int]bool{i: true}
	depth := 0
	for p, ok := r.c.Parent(i); ok && !seen[p]; p, ok = r.c.Parent(p) {
		if r.c.At(p).Type != common.SectionTypeSubsection {
			break
		}
		seen[p] = true
		depth++
	}
	return depth
}

func position(idx []int, i int) int {
	return slices.Index(idx, i) + 1
}

func withTitle(prefix, sep, title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return prefix
	}
	return prefix + sep + title
}
