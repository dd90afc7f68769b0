// Package document defines the section model the engine works on and the
// immutable snapshot all computations read from.
package document

import (
	"cmp"
	"math"
	"slices"

	"bylaws/common"
)

// Section is a single node of the document tree. Sections reference their
// parent by id only, lookups are always done through Collection.
type Section struct {
	ID       string             `yaml:"id" json:"id"`
	Type     common.SectionType `yaml:"type" json:"type"`
	Title    string             `yaml:"title,omitempty" json:"title,omitempty"`
	Content  string             `yaml:"content,omitempty" json:"content,omitempty"`
	Order    *float64           `yaml:"order,omitempty" json:"order,omitempty"`
	ParentID string             `yaml:"parent_id,omitempty" json:"parentId,omitempty"`
}

// HasOrder reports whether explicit order was supplied.
func (s *Section) HasOrder() bool {
	return s.Order != nil
}

// Rank returns sort key among siblings. Sections without order go last.
func (s *Section) Rank() float64 {
	if s.Order == nil || math.IsNaN(*s.Order) {
		return math.Inf(1)
	}
	return *s.Order
}

// Source is the input document: title used for the cover page and ordered
// collection of sections as supplied by the document store.
type Source struct {
	Title    string    `yaml:"title" json:"title"`
	Sections []Section `yaml:"sections" json:"sections"`
}

// Collection is an immutable snapshot of sections: flat slice in original
// (insertion) order plus id index. Nothing here ever mutates sections.
type Collection struct {
	sections []Section
	index    map[string]int
}

// NewCollection makes a private copy of sections. When ids are duplicated
// the first occurrence is the one returned by Lookup.
func NewCollection(sections []Section) *Collection {
	c := &Collection{
		sections: slices.Clone(sections),
		index:    make(map[string]int, len(sections)),
	}
	for i := range c.sections {
		if _, exists := c.index[c.sections[i].ID]; !exists {
			c.index[c.sections[i].ID] = i
		}
	}
	return c
}

// Len returns number of sections in the snapshot.
func (c *Collection) Len() int {
	return len(c.sections)
}

// At returns section by its position in the snapshot.
func (c *Collection) At(i int) *Section {
	return &c.sections[i]
}

// Sections returns copy of all sections in insertion order.
func (c *Collection) Sections() []Section {
	return slices.Clone(c.sections)
}

// Lookup returns position of the section with given id.
func (c *Collection) Lookup(id string) (int, bool) {
	i, ok := c.index[id]
	return i, ok
}

// Parent returns position of the parent section if reference resolves.
func (c *Collection) Parent(i int) (int, bool) {
	pid := c.sections[i].ParentID
	if pid == "" {
		return 0, false
	}
	p, ok := c.index[pid]
	if !ok || p == i {
		return 0, false
	}
	return p, true
}

// OfType returns positions of all sections of a type sorted by order, ties
// keep insertion order.
func (c *Collection) OfType(typ common.SectionType) []int {
	var res []int
	for i := range c.sections {
		if c.sections[i].Type == typ {
			res = append(res, i)
		}
	}
	return c.sortStable(res)
}

// Children returns positions of sections of a type whose parent id equals
// given id, sorted by order with stable ties. Empty id has no children.
func (c *Collection) Children(parentID string, typ common.SectionType) []int {
	if parentID == "" {
		return nil
	}
	var res []int
	for i := range c.sections {
		if c.sections[i].Type == typ && c.sections[i].ParentID == parentID {
			res = append(res, i)
		}
	}
	return c.sortStable(res)
}

// Preamble returns position of the first preamble found.
func (c *Collection) Preamble() (int, bool) {
	for i := range c.sections {
		if c.sections[i].Type == common.SectionTypePreamble {
			return i, true
		}
	}
	return 0, false
}

func (c *Collection) sortStable(idx []int) []int {
	slices.SortStableFunc(idx, func(a, b int) int {
		return cmp.Compare(c.sections[a].Rank(), c.sections[b].Rank())
	})
	return idx
}

// Siblings returns positions of sections having the same type and the same
// parent id (including no parent) as section at position i, sorted by order
// with stable ties. The section itself is included.
func (c *Collection) Siblings(i int) []int {
	s := &c.sections[i]
	var res []int
	for j := range c.sections {
		if c.sections[j].Type == s.Type && c.sections[j].ParentID == s.ParentID {
			res = append(res, j)
		}
	}
	return c.sortStable(res)
}
