package css

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode"
)

// Value represents a parsed CSS property value.
type Value struct {
	Raw     string  // Original CSS value string (e.g., "11pt", "pre", "#888")
	Value   float64 // Numeric value if applicable
	Unit    string  // Unit if applicable: "pt", "em", "%", etc.
	Keyword string  // Keyword if applicable
}

// IsNumeric returns true if the value has a numeric component.
// This includes explicit zero values like "0" or "0pt".
func (v Value) IsNumeric() bool {
	if v.Unit != "" {
		return true
	}
	if v.Value != 0 && v.Keyword == "" {
		return true
	}
	if v.Raw != "" && v.Keyword == "" {
		first := rune(v.Raw[0])
		if unicode.IsDigit(first) || first == '.' || first == '-' || first == '+' {
			return true
		}
	}
	return false
}

// Points returns value converted to points when unit allows it.
func (v Value) Points() (float64, bool) {
	switch v.Unit {
	case "pt":
		return v.Value, true
	case "px":
		return v.Value * 0.75, true
	case "in":
		return v.Value * 72, true
	case "":
		if v.IsNumeric() && v.Value == 0 {
			return 0, true
		}
	}
	return 0, false
}

// Rule represents a single CSS rule (selector + properties). Selector is
// kept as written, page rules use "@page".
type Rule struct {
	Selector   string
	Properties map[string]Value
}

// Stylesheet represents a parsed CSS stylesheet.
type Stylesheet struct {
	Rules    []Rule
	Warnings []string
}

// RulesBySelector returns all rules matching the given selector string.
func (s *Stylesheet) RulesBySelector(selector string) []Rule {
	var matches []Rule
	for _, r := range s.Rules {
		if r.Selector == selector {
			matches = append(matches, r)
		}
	}
	return matches
}

// Property returns effective value of property for selector, later rules
// override earlier ones.
func (s *Stylesheet) Property(selector, name string) (Value, bool) {
	var (
		res   Value
		found bool
	)
	for _, r := range s.RulesBySelector(selector) {
		if v, ok := r.Properties[name]; ok {
			res, found = v, true
		}
	}
	return res, found
}

// Selectors returns distinct selectors in source order.
func (s *Stylesheet) Selectors() []string {
	seen := make(map[string]bool, len(s.Rules))
	var res []string
	for _, r := range s.Rules {
		if !seen[r.Selector] {
			seen[r.Selector] = true
			res = append(res, r.Selector)
		}
	}
	return res
}

// WriteTo writes the stylesheet to w in source order, implementing io.WriterTo.
// Property order within a rule is sorted alphabetically for deterministic output.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for i := range s.Rules {
		n, err := writeRule(w, &s.Rules[i])
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// String returns the CSS text of the stylesheet.
func (s *Stylesheet) String() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}

func writeRule(w io.Writer, rule *Rule) (int, error) {
	names := make([]string, 0, len(rule.Properties))
	for name := range rule.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	total, err := fmt.Fprintf(w, "%s {\n", rule.Selector)
	if err != nil {
		return total, err
	}
	for _, name := range names {
		n, err := fmt.Fprintf(w, "  %s: %s;\n", name, rule.Properties[name].Raw)
		total += n
		if err != nil {
			return total, err
		}
	}
	n, err := fmt.Fprint(w, "}\n")
	total += n
	return total, err
}
