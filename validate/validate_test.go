package validate

import (
	"slices"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"bylaws/common"
	"bylaws/document"
	"bylaws/layout"
	"bylaws/numbering"
)

func order(v float64) *float64 {
	return &v
}

func cleanSource() *document.Source {
	return &document.Source{
		Title: "Bylaws",
		Sections: []document.Section{
			{ID: "pre", Type: common.SectionTypePreamble, Order: order(1), Content: "We adopt these bylaws."},
			{ID: "art-1", Type: common.SectionTypeArticle, Title: "Name", Order: order(1)},
			{ID: "sec-1-1", Type: common.SectionTypeSection, ParentID: "art-1", Title: "Name", Order: order(1), Content: "The name is **Example**."},
			{ID: "sec-1-2", Type: common.SectionTypeSection, ParentID: "art-1", Title: "Seal", Order: order(2), Content: "[IMAGE:Round seal]"},
			{ID: "sub-1-2-1", Type: common.SectionTypeSubsection, ParentID: "sec-1-2", Title: "Use", Order: order(1), Content: "1. documents\n2. letters"},
			{ID: "art-2", Type: common.SectionTypeArticle, Title: "Members", Order: order(2)},
			{ID: "sec-2-1", Type: common.SectionTypeSection, ParentID: "art-2", Title: "Chart", Order: order(1), Content: "┌─┐\n└─┘"},
			{ID: "amd-1", Type: common.SectionTypeAmendment, Title: "First", Order: order(1), Content: "- one\n- two"},
		},
	}
}

func codes(issues []Issue) []Code {
	res := make([]Code, 0, len(issues))
	for _, i := range issues {
		res = append(res, i.Code)
	}
	return res
}

func TestCheck_Clean(t *testing.T) {
	src := cleanSource()
	l := layout.Compute(src, layout.DefaultMetrics())
	r := Check(src, l, WithLogger(zaptest.NewLogger(t)))

	if !r.IsValid {
		t.Errorf("clean document is not valid: %v", r.Errors)
	}
	if len(r.Errors)+len(r.Warnings)+len(r.Suggestions) != 0 {
		t.Errorf("unexpected issues: errors %v, warnings %v, suggestions %v", r.Errors, r.Warnings, r.Suggestions)
	}
	if r.Errors == nil || r.Warnings == nil || r.Suggestions == nil {
		t.Error("issue lists must be empty, not nil")
	}
}

func TestCheck_EmptyImage(t *testing.T) {
	src := &document.Source{Sections: []document.Section{
		{ID: "pre", Type: common.SectionTypePreamble, Order: order(1), Content: "[IMAGE:]"},
	}}
	r := Check(src, layout.Compute(src, layout.DefaultMetrics()))
	if len(r.Warnings) != 1 || r.Warnings[0].Code != CodeEmptyImageDescription {
		t.Errorf("warnings = %v, want single empty image description", r.Warnings)
	}
	if !r.IsValid {
		t.Error("warnings must not invalidate document")
	}
}

func TestCheck_Warnings(t *testing.T) {
	tests := []struct {
		name     string
		sections []document.Section
		code     Code
		id       string
	}{
		{
			name:     "missing order",
			sections: []document.Section{{ID: "a", Type: common.SectionTypeArticle}},
			code:     CodeMissingOrder,
			id:       "a",
		},
		{
			name:     "padded title",
			sections: []document.Section{{ID: "a", Type: common.SectionTypeArticle, Title: " Name ", Order: order(1)}},
			code:     CodePaddedTitle,
			id:       "a",
		},
		{
			name:     "empty content",
			sections: []document.Section{{ID: "p", Type: common.SectionTypePreamble, Order: order(1), Content: " \n "}},
			code:     CodeEmptyContent,
			id:       "p",
		},
		{
			name:     "tab character",
			sections: []document.Section{{ID: "p", Type: common.SectionTypePreamble, Order: order(1), Content: "a\tb"}},
			code:     CodeTabCharacter,
			id:       "p",
		},
		{
			name:     "empty image description",
			sections: []document.Section{{ID: "p", Type: common.SectionTypePreamble, Order: order(1), Content: "x [IMAGE:  ] y"}},
			code:     CodeEmptyImageDescription,
			id:       "p",
		},
		{
			name:     "orphan parent",
			sections: []document.Section{{ID: "s", Type: common.SectionTypeSection, ParentID: "gone", Order: order(1), Content: "x"}},
			code:     CodeOrphanParent,
			id:       "s",
		},
		{
			name:     "missing parent",
			sections: []document.Section{{ID: "s", Type: common.SectionTypeSubsection, Order: order(1), Content: "x"}},
			code:     CodeMissingParent,
			id:       "s",
		},
		{
			name: "parent of top level",
			sections: []document.Section{
				{ID: "a", Type: common.SectionTypeArticle, Order: order(1)},
				{ID: "b", Type: common.SectionTypeArticle, ParentID: "a", Order: order(2)},
			},
			code: CodeUnexpectedParent,
			id:   "b",
		},
		{
			name: "section under amendment",
			sections: []document.Section{
				{ID: "amd", Type: common.SectionTypeAmendment, Order: order(1), Content: "x"},
				{ID: "s", Type: common.SectionTypeSection, ParentID: "amd", Order: order(1), Content: "x"},
			},
			code: CodeUnexpectedParent,
			id:   "s",
		},
		{
			name:     "self parent",
			sections: []document.Section{{ID: "s", Type: common.SectionTypeSubsection, ParentID: "s", Order: order(1), Content: "x"}},
			code:     CodeUnexpectedParent,
			id:       "s",
		},
		{
			name: "parent cycle",
			sections: []document.Section{
				{ID: "a", Type: common.SectionTypeSubsection, ParentID: "b", Order: order(1), Content: "x"},
				{ID: "b", Type: common.SectionTypeSubsection, ParentID: "a", Order: order(1), Content: "x"},
			},
			code: CodeParentCycle,
			id:   "a",
		},
		{
			name: "duplicate preamble",
			sections: []document.Section{
				{ID: "p1", Type: common.SectionTypePreamble, Order: order(1), Content: "x"},
				{ID: "p2", Type: common.SectionTypePreamble, Order: order(2), Content: "x"},
			},
			code: CodeDuplicatePreamble,
			id:   "p2",
		},
		{
			name: "duplicate id",
			sections: []document.Section{
				{ID: "a", Type: common.SectionTypeAmendment, Order: order(1), Content: "x"},
				{ID: "a", Type: common.SectionTypeAmendment, Order: order(2), Content: "y"},
			},
			code: CodeDuplicateID,
			id:   "a",
		},
		{
			name: "order gap",
			sections: []document.Section{
				{ID: "a", Type: common.SectionTypeArticle, Order: order(1)},
				{ID: "b", Type: common.SectionTypeArticle, Order: order(3)},
			},
			code: CodeOrderGap,
			id:   "a",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &document.Source{Sections: tt.sections}
			r := Check(src, layout.Compute(src, layout.DefaultMetrics()), WithLogger(zaptest.NewLogger(t)))
			idx := slices.IndexFunc(r.Warnings, func(i Issue) bool { return i.Code == tt.code })
			if idx < 0 {
				t.Fatalf("warning %s not reported, got %v", tt.code, r.Warnings)
			}
			if got := r.Warnings[idx].SectionID; got != tt.id {
				t.Errorf("warning %s reported for %q, want %q", tt.code, got, tt.id)
			}
			if !r.IsValid {
				t.Errorf("document with warnings only must be valid, errors: %v", r.Errors)
			}
		})
	}
}

func TestCheck_Suggestions(t *testing.T) {
	tests := []struct {
		name    string
		section document.Section
		code    Code
	}{
		{
			name:    "excess newlines",
			section: document.Section{ID: "p", Type: common.SectionTypePreamble, Order: order(1), Content: "a\r\n\r\n\r\nb"},
			code:    CodeExcessNewlines,
		},
		{
			name:    "long image description",
			section: document.Section{ID: "p", Type: common.SectionTypePreamble, Order: order(1), Content: "[IMAGE:" + strings.Repeat("d", MaxImageDescription+1) + "]"},
			code:    CodeLongImageDescription,
		},
		{
			name:    "long label",
			section: document.Section{ID: "p", Type: common.SectionTypePreamble, Order: order(1), Title: strings.Repeat("t", MaxTOCLabel), Content: "x"},
			code:    CodeLongTOCLabel,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &document.Source{Sections: []document.Section{tt.section}}
			r := Check(src, layout.Compute(src, layout.DefaultMetrics()))
			if !slices.Contains(codes(r.Suggestions), tt.code) {
				t.Errorf("suggestion %s not reported, got %v", tt.code, r.Suggestions)
			}
			if len(r.Warnings) != 0 {
				t.Errorf("unexpected warnings %v", r.Warnings)
			}
		})
	}
}

func TestCheck_LayoutErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(l *layout.Layout)
		code   Code
	}{
		{
			name:   "section dropped",
			mutate: func(l *layout.Layout) { l.Pages[1].Sections = l.Pages[1].Sections[1:] },
			code:   CodeCoverage,
		},
		{
			name:   "section duplicated",
			mutate: func(l *layout.Layout) { l.Pages[0].Sections = append(l.Pages[0].Sections, "amd-1") },
			code:   CodeCoverage,
		},
		{
			name:   "unknown section",
			mutate: func(l *layout.Layout) { l.Pages[0].Sections = append(l.Pages[0].Sections, "ghost") },
			code:   CodeCoverage,
		},
		{
			name: "empty page",
			mutate: func(l *layout.Layout) {
				l.Pages = append(l.Pages, layout.Page{Number: 99})
				l.TotalPages++
			},
			code: CodeEmptyPage,
		},
		{
			name:   "toc entry missing",
			mutate: func(l *layout.Layout) { l.TOC.Entries = l.TOC.Entries[1:] },
			code:   CodeTOCIncomplete,
		},
		{
			name:   "toc order",
			mutate: func(l *layout.Layout) { l.TOC.Entries[0].Page = 99 },
			code:   CodeTOCOrder,
		},
		{
			name: "label mismatch",
			mutate: func(l *layout.Layout) {
				l.Labels["art-1"] = numbering.Label{Text: "Article One"}
			},
			code: CodeLabelMismatch,
		},
		{
			name:   "page accounting",
			mutate: func(l *layout.Layout) { l.TotalPages++ },
			code:   CodePageAccounting,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := cleanSource()
			l := layout.Compute(src, layout.DefaultMetrics())
			tt.mutate(l)
			r := Check(src, l, WithLogger(zaptest.NewLogger(t)))
			if r.IsValid {
				t.Error("broken layout reported as valid")
			}
			if !slices.Contains(codes(r.Errors), tt.code) {
				t.Errorf("error %s not reported, got %v", tt.code, r.Errors)
			}
		})
	}
}

func TestIssue_String(t *testing.T) {
	i := Issue{Code: CodeOrderGap, Message: "gap"}
	if got := i.String(); got != "[order-gap] gap" {
		t.Errorf("String() = %q", got)
	}
	i.SectionID = "a"
	if got := i.String(); got != "[order-gap] a: gap" {
		t.Errorf("String() = %q", got)
	}
}
