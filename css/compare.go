package css

import (
	"fmt"
	"maps"
	"math"
	"slices"
)

// Difference describes a single property two stylesheets disagree on.
type Difference struct {
	Selector string
	Property string
	Left     string
	Right    string
}

func (d Difference) String() string {
	return fmt.Sprintf("%s { %s }: %q != %q", d.Selector, d.Property, d.Left, d.Right)
}

// Compare reports every property value which differs between stylesheets.
// Lengths are compared in points, so "12pt" and "16px" are equal.
func Compare(left, right *Stylesheet) []Difference {
	var res []Difference
	seen := make(map[string]bool)
	for _, sheet := range []*Stylesheet{left, right} {
		for _, r := range sheet.Rules {
			for _, name := range slices.Sorted(maps.Keys(r.Properties)) {
				key := r.Selector + "\x00" + name
				if seen[key] {
					continue
				}
				seen[key] = true
				l, _ := left.Property(r.Selector, name)
				rv, _ := right.Property(r.Selector, name)
				if !equal(l, rv) {
					res = append(res, Difference{Selector: r.Selector, Property: name, Left: l.Raw, Right: rv.Raw})
				}
			}
		}
	}
	return res
}

func equal(a, b Value) bool {
	if pa, ok := a.Points(); ok {
		if pb, ok := b.Points(); ok {
			return math.Abs(pa-pb) < 0.01
		}
	}
	return a.Raw == b.Raw
}
