// Package layout turns a snapshot of sections into a renderer agnostic
// representation: numbered sections, parsed content, pages and table of
// contents. Every function here is deterministic and has no side effects.
package layout

import (
	"bylaws/common"
	"bylaws/document"
	"bylaws/markup"
	"bylaws/numbering"
)

// Layout is everything renderers need to produce output. Two renderers
// projecting the same Layout agree structurally by construction.
type Layout struct {
	Title      string                      `yaml:"title" json:"title"`
	Metrics    Metrics                     `yaml:"metrics" json:"metrics"`
	Sections   map[string]document.Section `yaml:"sections" json:"sections"`
	Labels     numbering.Labels            `yaml:"labels" json:"labels"`
	Blocks     map[string][]markup.Block   `yaml:"blocks" json:"blocks"`
	Pages      []Page                      `yaml:"pages" json:"pages"`
	TOC        TOC                         `yaml:"toc" json:"toc"`
	TotalPages int                         `yaml:"total_pages" json:"totalPages"`
}

// Compute runs complete pipeline on document source.
func Compute(src *document.Source, m Metrics) *Layout {
	c := document.NewCollection(src.Sections)

	l := &Layout{
		Title:    src.Title,
		Metrics:  m,
		Sections: make(map[string]document.Section, c.Len()),
		Blocks:   make(map[string][]markup.Block, c.Len()),
		Labels:   numbering.Resolve(c),
	}

	for i := range c.Len() {
		s := c.At(i)
		if _, exists := l.Sections[s.ID]; exists {
			continue
		}
		l.Sections[s.ID] = *s
		if !skipsContent(s) {
			l.Blocks[s.ID] = markup.Parse(s.Content)
		}
	}

	l.Pages = Paginate(c, m)
	l.TOC = BuildTOC(c, l.Labels, l.Pages, m)
	for i := range l.Pages {
		l.Pages[i].Number = l.TOC.ContentStart + i
	}
	l.TotalPages = 1 + l.TOC.Pages + len(l.Pages)
	return l
}

// Section returns section by id.
func (l *Layout) Section(id string) (document.Section, bool) {
	s, ok := l.Sections[id]
	return s, ok
}

// Empty reports whether there is no content to lay out.
func (l *Layout) Empty() bool {
	return len(l.Pages) == 0
}

func skipsContent(s *document.Section) bool {
	return s.Type == common.SectionTypeArticle || s.Content == ""
}
