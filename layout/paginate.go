package layout

import (
	"bylaws/common"
	"bylaws/document"
)

// Page is an ordered list of section ids placed on a single content page.
type Page struct {
	Number   int      `yaml:"number" json:"number"`
	Height   float64  `yaml:"height" json:"height"`
	Sections []string `yaml:"sections" json:"sections"`
}

// Paginate distributes sections of the snapshot into pages using estimated
// heights. Preamble and every amendment occupy their own pages, each article
// (and the trailing group of unattached sections) is filled greedily: new
// page starts when next node does not fit or when it is a section heading
// whose placement would leave less than orphan threshold below it. Pages are never empty and
// oversized node is placed alone, never split.
func Paginate(c *document.Collection, m Metrics) []Page {
	var pages []Page
	for _, g := range c.Walk() {
		switch g.Kind {
		case document.GroupPreamble, document.GroupAmendment:
			for _, n := range g.Nodes {
				s := c.At(n)
				pages = append(pages, Page{Height: m.Estimate(s), Sections: []string{s.ID}})
			}
		default:
			pages = m.fill(pages, c, g.Nodes)
		}
	}
	return pages
}

func (m Metrics) fill(pages []Page, c *document.Collection, nodes []int) []Page {
	var cur Page
	for _, n := range nodes {
		s := c.At(n)
		h := m.Estimate(s)
		if len(cur.Sections) > 0 && m.breakBefore(cur.Height, h, s.Type) {
			pages = append(pages, cur)
			cur = Page{}
		}
		cur.Sections = append(cur.Sections, s.ID)
		cur.Height += h
	}
	if len(cur.Sections) > 0 {
		pages = append(pages, cur)
	}
	return pages
}

func (m Metrics) breakBefore(used, next float64, typ common.SectionType) bool {
	if used+next > m.PageHeight {
		return true
	}
	return typ == common.SectionTypeSection && m.PageHeight-(used+next) < m.OrphanThreshold
}
