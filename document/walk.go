package document

import (
	"bylaws/common"
)

// GroupKind describes how a group of sections is laid out.
type GroupKind int

const (
	GroupPreamble   GroupKind = iota // first preamble, alone
	GroupArticle                     // article with its sections and subsections
	GroupAmendment                   // single amendment, alone
	GroupUnattached                  // everything the canonical walk could not reach
)

func (k GroupKind) String() string {
	switch k {
	case GroupPreamble:
		return "preamble"
	case GroupArticle:
		return "article"
	case GroupAmendment:
		return "amendment"
	case GroupUnattached:
		return "unattached"
	default:
		return "unknown"
	}
}

// Group is a run of sections (positions in the snapshot) in document order.
type Group struct {
	Kind  GroupKind
	Nodes []int
}

// Walk returns all sections of the snapshot in canonical document order:
// preamble, articles (each followed by its sections and their depth first
// subsection descendants), amendments and finally every section the walk did
// not reach through parent references. Each section is returned exactly once.
func (c *Collection) Walk() []Group {
	visited := make([]bool, len(c.sections))
	var groups []Group

	if p, ok := c.Preamble(); ok {
		visited[p] = true
		groups = append(groups, Group{Kind: GroupPreamble, Nodes: []int{p}})
	}

	for _, a := range c.OfType(common.SectionTypeArticle) {
		if visited[a] {
			continue
		}
		visited[a] = true
		nodes := []int{a}
		for _, s := range c.Children(c.sections[a].ID, common.SectionTypeSection) {
			if visited[s] {
				continue
			}
			visited[s] = true
			nodes = append(nodes, s)
			nodes = c.appendDescendants(nodes, s, visited)
		}
		groups = append(groups, Group{Kind: GroupArticle, Nodes: nodes})
	}

	for _, a := range c.OfType(common.SectionTypeAmendment) {
		if visited[a] {
			continue
		}
		visited[a] = true
		groups = append(groups, Group{Kind: GroupAmendment, Nodes: []int{a}})
	}

	var rest []int
	for i := range c.sections {
		if visited[i] {
			continue
		}
		visited[i] = true
		rest = append(rest, i)
		rest = c.appendDescendants(rest, i, visited)
	}
	if len(rest) > 0 {
		groups = append(groups, Group{Kind: GroupUnattached, Nodes: rest})
	}
	return groups
}

// Descendants returns depth first flattened subsection descendants of the
// section at position i.
func (c *Collection) Descendants(i int) []int {
	visited := make([]bool, len(c.sections))
	visited[i] = true
	return c.appendDescendants(nil, i, visited)
}

func (c *Collection) appendDescendants(dst []int, i int, visited []bool) []int {
	for _, ch := range c.Children(c.sections[i].ID, common.SectionTypeSubsection) {
		if visited[ch] {
			continue
		}
		visited[ch] = true
		dst = append(dst, ch)
		dst = c.appendDescendants(dst, ch, visited)
	}
	return dst
}

// Ordered flattens Walk result.
func (c *Collection) Ordered() []int {
	res := make([]int, 0, len(c.sections))
	for _, g := range c.Walk() {
		res = append(res, g.Nodes...)
	}
	return res
}
