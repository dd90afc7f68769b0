package static

import (
	"regexp"
	"strings"
	"testing"

	"bylaws/common"
	"bylaws/document"
	"bylaws/layout"
	"bylaws/render"
)

func order(v float64) *float64 {
	return &v
}

func sampleLayout(title string) *layout.Layout {
	return layout.Compute(&document.Source{
		Title: title,
		Sections: []document.Section{
			{ID: "pre", Type: common.SectionTypePreamble, Content: "We adopt **these** bylaws."},
			{ID: "art-1", Type: common.SectionTypeArticle, Title: "Name", Order: order(1)},
			{ID: "sec-1", Type: common.SectionTypeSection, ParentID: "art-1", Title: "Name & Seal", Content: "1. one\n2. two"},
			{ID: "sub-1", Type: common.SectionTypeSubsection, ParentID: "sec-1", Content: "┌─┐\n└─┘"},
			{ID: "amd-1", Type: common.SectionTypeAmendment, Content: "[IMAGE:Seal]\n\n[IMAGE:]"},
		},
	}, layout.DefaultMetrics())
}

var selfClosed = regexp.MustCompile(`<(p|div|section|figure|h1|h2|h3|ol|ul|li|span|a|pre|title|style)\b[^>]*/>`)

func TestHTML(t *testing.T) {
	l := sampleLayout("Rules & Regulations")
	out, err := HTML(l, render.DefaultContract())
	if err != nil {
		t.Fatalf("HTML() error = %v", err)
	}

	if got := strings.Count(out, render.AttrPage+`="`); got != l.TotalPages {
		t.Errorf("document has %d pages, want %d", got, l.TotalPages)
	}
	for _, want := range []string{
		`<?xml version="1.0" encoding="UTF-8"?>`,
		`<title>Rules &amp; Regulations</title>`,
		`We adopt <strong>these</strong> bylaws.`,
		`<li>one</li>`,
		`Section 1: Name &amp; Seal`,
		`<figcaption>Seal</figcaption>`,
		render.ImagePlaceholderText,
		`id="sec-sub-1"`,
		`href="#sec-art-1"`,
		`style="margin-left: 18pt"`,
		`font-family: "Times New Roman", Times, serif`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q", want)
		}
	}
	if got := strings.Count(out, "<figcaption>"); got != 1 {
		t.Errorf("got %d captions, image without description must have none", got)
	}
	if m := selfClosed.FindString(out); m != "" {
		t.Errorf("non void element is self-closed: %s", m)
	}
}

func TestHTML_Deterministic(t *testing.T) {
	first, err := HTML(sampleLayout("T"), render.DefaultContract())
	if err != nil {
		t.Fatal(err)
	}
	for range 3 {
		again, err := HTML(sampleLayout("T"), render.DefaultContract())
		if err != nil {
			t.Fatal(err)
		}
		if again != first {
			t.Fatal("rendering is not deterministic")
		}
	}
}

func TestHTML_Empty(t *testing.T) {
	l := layout.Compute(&document.Source{}, layout.DefaultMetrics())
	out, err := HTML(l, render.DefaultContract())
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(out, render.AttrPage+`="`); got != 1 {
		t.Errorf("empty document has %d pages, want cover only", got)
	}
	if !strings.Contains(out, render.UntitledDocument) {
		t.Error("cover of untitled document has no fallback title")
	}
}

func TestRender_Structure(t *testing.T) {
	l := sampleLayout("T")
	doc := Render(l, render.DefaultContract())

	pages := doc.FindElements("//div[@" + render.AttrPage + "]")
	if len(pages) != l.TotalPages {
		t.Fatalf("got %d pages, want %d", len(pages), l.TotalPages)
	}
	if got := pages[0].SelectAttrValue("class", ""); got != render.PageClass(render.ClassCover) {
		t.Errorf("first page class = %q", got)
	}
	if got := pages[1].SelectAttrValue("class", ""); got != render.PageClass(render.ClassTOCPage) {
		t.Errorf("second page class = %q", got)
	}
	entries := doc.FindElements("//div[@class='" + render.TOCEntryClass(2) + "']")
	if len(entries) != 1 || entries[0].SelectAttrValue(render.AttrSection, "") != "sub-1" {
		t.Errorf("subsection TOC entry not found")
	}
}

func TestAppendInline_Malformed(t *testing.T) {
	l := sampleLayout("T")
	blocks := l.Blocks["pre"]
	blocks[0].HTML = "broken <strong>markup"
	out, err := HTML(l, render.DefaultContract())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "broken &lt;strong&gt;markup") {
		t.Error("malformed inline markup was not kept as text")
	}
}
