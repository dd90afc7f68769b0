package layout

import (
	"bylaws/common"
	"bylaws/document"
	"bylaws/numbering"
)

// Entry is a single line of the table of contents.
type Entry struct {
	SectionID string             `yaml:"section_id" json:"sectionId"`
	Label     string             `yaml:"label" json:"displayLabel"`
	Page      int                `yaml:"page" json:"pageNumber"`
	Type      common.SectionType `yaml:"type" json:"type"`
	Level     int                `yaml:"level" json:"level"`
}

// TOC is table of contents together with the page accounting it is based on.
type TOC struct {
	// Pages is estimated number of pages TOC occupies.
	Pages int `yaml:"pages" json:"pages"`
	// ContentStart is the number of the first content page: cover is page 1,
	// TOC occupies pages 2 to 1+Pages.
	ContentStart int     `yaml:"content_start" json:"contentStart"`
	Entries      []Entry `yaml:"entries" json:"entries"`
}

// EntriesPerPage returns effective TOC page capacity.
func (m Metrics) EntriesPerPage() int {
	if m.TOCEntriesPerPage <= 0 {
		return DefaultMetrics().TOCEntriesPerPage
	}
	return m.TOCEntriesPerPage
}

// TOCPages estimates how many pages table with n entries needs. This is a
// fixed capacity heuristic: long labels wrapping to several lines are not
// accounted for.
func (m Metrics) TOCPages(n int) int {
	per := m.EntriesPerPage()
	return (n + per - 1) / per
}

// BuildTOC assigns page numbers to every section. It runs after pagination
// since content offset depends on number of pages TOC itself occupies. Every
// section type is eligible, so there is one entry per section.
func BuildTOC(c *document.Collection, labels numbering.Labels, pages []Page, m Metrics) TOC {
	order := c.Ordered()

	toc := TOC{Pages: m.TOCPages(len(order))}
	toc.ContentStart = 2 + toc.Pages

	// pages list ids in the same canonical order, so k-th slot normally is
	// k-th node; id map (first occurrence wins) covers foreign page lists
	type slot struct {
		id   string
		page int
	}
	var slots []slot
	pageOf := make(map[string]int, c.Len())
	for i, p := range pages {
		for _, id := range p.Sections {
			slots = append(slots, slot{id: id, page: toc.ContentStart + i})
			if _, exists := pageOf[id]; !exists {
				pageOf[id] = toc.ContentStart + i
			}
		}
	}

	toc.Entries = make([]Entry, 0, len(order))
	for k, n := range order {
		s := c.At(n)
		l := labels.Get(s.ID)
		page, ok := pageOf[s.ID]
		if k < len(slots) && slots[k].id == s.ID {
			page = slots[k].page
		} else if !ok {
			page = toc.ContentStart
		}
		toc.Entries = append(toc.Entries, Entry{
			SectionID: s.ID,
			Label:     l.Text,
			Page:      page,
			Type:      s.Type,
			Level:     level(s.Type, l.Depth),
		})
	}
	return toc
}

// Chunks splits entries into TOC pages.
func (t *TOC) Chunks(m Metrics) [][]Entry {
	per := m.EntriesPerPage()
	var res [][]Entry
	for i := 0; i < len(t.Entries); i += per {
		res = append(res, t.Entries[i:min(i+per, len(t.Entries))])
	}
	return res
}

func level(typ common.SectionType, depth int) int {
	switch typ {
	case common.SectionTypeSection:
		return 1
	case common.SectionTypeSubsection:
		return 2 + depth
	default:
		return 0
	}
}
