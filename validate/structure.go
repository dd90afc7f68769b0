package validate

import (
	"maps"
	"slices"
	"unicode/utf8"

	"bylaws/common"
	"bylaws/document"
	"bylaws/layout"
)

func (ch *checker) structure(c *document.Collection) {
	preamble, _ := c.Preamble()

	type group struct {
		first  string
		orders []float64
	}
	var (
		keys   []string
		groups = make(map[string]*group)
	)

	for i := range c.Len() {
		s := c.At(i)

		if first, _ := c.Lookup(s.ID); first != i {
			ch.warnf(s.ID, CodeDuplicateID, "id is used by more than one section, only the first one is rendered")
		}
		if s.Type == common.SectionTypePreamble && i != preamble {
			ch.warnf(s.ID, CodeDuplicatePreamble, "document has more than one preamble")
		}
		ch.parent(c, i)

		if s.HasOrder() {
			key := s.Type.String() + "\x00" + s.ParentID
			g, ok := groups[key]
			if !ok {
				g = &group{first: s.ID}
				groups[key] = g
				keys = append(keys, key)
			}
			g.orders = append(g.orders, *s.Order)
		}
	}

	for _, key := range keys {
		g := groups[key]
		slices.Sort(g.orders)
		for k := 1; k < len(g.orders); k++ {
			if g.orders[k]-g.orders[k-1] != 1 {
				ch.warnf(g.first, CodeOrderGap, "sibling order values are not contiguous: %v", g.orders)
				break
			}
		}
	}
}

func (ch *checker) parent(c *document.Collection, i int) {
	s := c.At(i)
	if s.ParentID == "" {
		if s.Type == common.SectionTypeSection || s.Type == common.SectionTypeSubsection {
			ch.warnf(s.ID, CodeMissingParent, "%s has no parent, it is placed after amendments", s.Type)
		}
		return
	}
	if s.Type.IsTopLevel() {
		ch.warnf(s.ID, CodeUnexpectedParent, "%s must not have parent, parent %q is ignored", s.Type, s.ParentID)
		return
	}
	if s.ParentID == s.ID {
		ch.warnf(s.ID, CodeUnexpectedParent, "section refers to itself as parent")
		return
	}

	p, ok := c.Parent(i)
	if !ok {
		ch.warnf(s.ID, CodeOrphanParent, "parent %q does not exist, section is placed after amendments", s.ParentID)
		return
	}

	pt := c.At(p).Type
	switch s.Type {
	case common.SectionTypeSection:
		if pt != common.SectionTypeArticle {
			ch.warnf(s.ID, CodeUnexpectedParent, "section parent %q is %s, expected article", s.ParentID, pt)
		}
	case common.SectionTypeSubsection:
		if pt != common.SectionTypeSection && pt != common.SectionTypeSubsection {
			ch.warnf(s.ID, CodeUnexpectedParent, "subsection parent %q is %s, expected section or subsection", s.ParentID, pt)
		}
	}

	// walk up, parent chain of a well formed snapshot ends within Len steps
	for cur, steps := p, 0; steps <= c.Len(); steps++ {
		if cur == i {
			ch.warnf(s.ID, CodeParentCycle, "section is its own ancestor")
			return
		}
		next, ok := c.Parent(cur)
		if !ok {
			return
		}
		cur = next
	}
}

// layout verifies guarantees pagination and TOC must hold for any input.
func (ch *checker) layout(c *document.Collection, l *layout.Layout) {
	want := make(map[string]int, c.Len())
	for i := range c.Len() {
		want[c.At(i).ID]++
	}
	got := make(map[string]int, c.Len())
	for _, p := range l.Pages {
		if len(p.Sections) == 0 {
			ch.errorf("", CodeEmptyPage, "page %d has no sections", p.Number)
		}
		for _, id := range p.Sections {
			got[id]++
		}
	}
	for i := range c.Len() {
		id := c.At(i).ID
		if got[id] != want[id] {
			ch.errorf(id, CodeCoverage, "section placed %d time(s), expected %d", got[id], want[id])
			got[id] = want[id]
		}
	}
	for _, id := range slices.Sorted(maps.Keys(got)) {
		if _, ok := want[id]; !ok {
			ch.errorf(id, CodeCoverage, "page refers to unknown section")
		}
	}

	if len(l.TOC.Entries) != c.Len() {
		ch.errorf("", CodeTOCIncomplete, "table of contents has %d entries for %d sections", len(l.TOC.Entries), c.Len())
	}
	for k, e := range l.TOC.Entries {
		if k > 0 && e.Page < l.TOC.Entries[k-1].Page {
			ch.errorf(e.SectionID, CodeTOCOrder, "page %d goes before page %d of previous entry", e.Page, l.TOC.Entries[k-1].Page)
		}
		if label := l.Labels.Get(e.SectionID).Text; e.Label != label {
			ch.errorf(e.SectionID, CodeLabelMismatch, "table of contents label %q differs from %q", e.Label, label)
		}
		if n := utf8.RuneCountInString(e.Label); n > MaxTOCLabel {
			ch.suggestf(e.SectionID, CodeLongTOCLabel, "label is %d characters long (over %d), it may wrap and push table of contents past estimated %d page(s)", n, MaxTOCLabel, l.TOC.Pages)
		}
	}

	if total := 1 + l.TOC.Pages + len(l.Pages); l.TotalPages != total {
		ch.errorf("", CodePageAccounting, "total pages %d, expected %d", l.TotalPages, total)
	}
}
