// Package render holds the typographic contract and structural conventions
// shared by every renderer, so that preview and exported document agree down
// to spacing and typography.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gosimple/slug"

	"bylaws/common"
)

// Contract is fixed typographic contract. Sizes are in points, LineHeight is
// multiplier.
type Contract struct {
	PageWidth        float64 `yaml:"page_width" validate:"gt=0"`
	PageHeight       float64 `yaml:"page_height" validate:"gt=0"`
	MarginTop        float64 `yaml:"margin_top" validate:"gte=0"`
	MarginRight      float64 `yaml:"margin_right" validate:"gte=0"`
	MarginBottom     float64 `yaml:"margin_bottom" validate:"gte=0"`
	MarginLeft       float64 `yaml:"margin_left" validate:"gte=0"`
	FontFamily       string  `yaml:"font_family" validate:"required"`
	MonoFamily       string  `yaml:"mono_family" validate:"required"`
	TitleSize        float64 `yaml:"title_size" validate:"gt=0"`
	TopLevelSize     float64 `yaml:"top_level_size" validate:"gt=0"`
	SectionSize      float64 `yaml:"section_size" validate:"gt=0"`
	SubsectionSize   float64 `yaml:"subsection_size" validate:"gt=0"`
	BodySize         float64 `yaml:"body_size" validate:"gt=0"`
	TOCSize          float64 `yaml:"toc_size" validate:"gt=0"`
	DiagramSize      float64 `yaml:"diagram_size" validate:"gt=0"`
	LineHeight       float64 `yaml:"line_height" validate:"gt=0"`
	BlockSpacing     float64 `yaml:"block_spacing" validate:"gte=0"`
	SubsectionIndent float64 `yaml:"subsection_indent" validate:"gte=0"`
	TOCTitle         string  `yaml:"toc_title" validate:"required"`
}

// DefaultContract returns US Letter page with one inch margins.
func DefaultContract() Contract {
	return Contract{
		PageWidth:        612,
		PageHeight:       792,
		MarginTop:        72,
		MarginRight:      72,
		MarginBottom:     72,
		MarginLeft:       72,
		FontFamily:       `"Times New Roman", Times, serif`,
		MonoFamily:       `"Courier New", Courier, monospace`,
		TitleSize:        24,
		TopLevelSize:     16,
		SectionSize:      13,
		SubsectionSize:   11.5,
		BodySize:         11,
		TOCSize:          11,
		DiagramSize:      9,
		LineHeight:       1.45,
		BlockSpacing:     6,
		SubsectionIndent: 18,
		TOCTitle:         "Table of Contents",
	}
}

// Class names and attributes both renderers put on the structure they
// produce. Validator relies on them to compare outputs.
const (
	AttrPage    = "data-page"
	AttrSection = "data-section-id"
	AttrBlock   = "data-block"

	ClassPage        = "page"
	ClassCover       = "page-cover"
	ClassTOCPage     = "page-toc"
	ClassContentPage = "page-content"
	ClassCoverTitle  = "cover-title"
	ClassTOCTitle    = "toc-title"
	ClassTOCEntry    = "toc-entry"
	ClassTOCPageNum  = "toc-page"
	ClassSection     = "section"
	ClassPlaceholder = "image-placeholder"
	ClassPageNumber  = "page-number"

	ImagePlaceholderText = "[Image]"
)

// UntitledDocument is shown on cover when document has no title.
const UntitledDocument = "Untitled document"

// DocumentTitle returns title to put on cover.
func DocumentTitle(title string) string {
	if t := strings.TrimSpace(title); t != "" {
		return t
	}
	return UntitledDocument
}

// HeadingTag returns heading element for a section type.
func HeadingTag(typ common.SectionType) string {
	switch typ {
	case common.SectionTypeSection:
		return "h2"
	case common.SectionTypeSubsection:
		return "h3"
	default:
		return "h1"
	}
}

// HeadingClass returns class of the section heading.
func HeadingClass(typ common.SectionType) string {
	return "heading-" + typ.String()
}

// BlockTag returns element used for content block of a kind.
func BlockTag(kind common.BlockKind) string {
	switch kind {
	case common.BlockKindNumberedList:
		return "ol"
	case common.BlockKindBulletList:
		return "ul"
	case common.BlockKindDiagram:
		return "pre"
	case common.BlockKindImage:
		return "figure"
	default:
		return "p"
	}
}

// BlockClass returns class of content block.
func BlockClass(kind common.BlockKind) string {
	return "block-" + kind.String()
}

// PageClass returns classes of a page container.
func PageClass(kind string) string {
	return ClassPage + " " + kind
}

// TOCEntryClass returns classes of TOC line on a given nesting level.
func TOCEntryClass(level int) string {
	return fmt.Sprintf("%s level-%d", ClassTOCEntry, level)
}

// Anchor returns stable fragment id for a section.
func Anchor(id string) string {
	a := slug.Make(id)
	if a == "" {
		a = strconv.Itoa(len(id))
	}
	return "sec-" + a
}

// Indent returns inline style for nested subsection, empty for top levels.
func (c Contract) Indent(depth int) string {
	if depth <= 0 || c.SubsectionIndent == 0 {
		return ""
	}
	return "margin-left: " + pt(c.SubsectionIndent*float64(depth))
}

// Stylesheet returns the single stylesheet every renderer embeds.
func Stylesheet(c Contract) string {
	var b strings.Builder
	rule := func(selector string, decls ...string) {
		b.WriteString(selector)
		b.WriteString(" { ")
		b.WriteString(strings.Join(decls, "; "))
		b.WriteString("; }\n")
	}

	rule("@page", "size: "+pt(c.PageWidth)+" "+pt(c.PageHeight), "margin: 0")
	rule("body", "margin: 0", "font-family: "+c.FontFamily, "font-size: "+pt(c.BodySize), "line-height: "+num(c.LineHeight))
	rule("."+ClassPage,
		"box-sizing: border-box",
		"width: "+pt(c.PageWidth),
		"height: "+pt(c.PageHeight),
		"padding: "+pt(c.MarginTop)+" "+pt(c.MarginRight)+" "+pt(c.MarginBottom)+" "+pt(c.MarginLeft),
		"overflow: hidden",
		"page-break-after: always")
	rule("."+ClassCoverTitle, "font-size: "+pt(c.TitleSize), "text-align: center", "margin-top: "+pt(c.PageHeight/3))
	rule("."+ClassTOCTitle, "font-size: "+pt(c.TopLevelSize), "margin: 0 0 "+pt(c.BlockSpacing*2))
	rule("."+ClassTOCEntry, "font-size: "+pt(c.TOCSize), "display: flex", "justify-content: space-between")
	for level := 1; level <= 4; level++ {
		rule(fmt.Sprintf(".%s.level-%d", ClassTOCEntry, level), "padding-left: "+pt(c.SubsectionIndent*float64(level)))
	}
	for _, typ := range []common.SectionType{common.SectionTypePreamble, common.SectionTypeArticle, common.SectionTypeAmendment} {
		rule("."+HeadingClass(typ), "font-size: "+pt(c.TopLevelSize), "margin: 0 0 "+pt(c.BlockSpacing), "text-align: center")
	}
	rule("."+HeadingClass(common.SectionTypeSection), "font-size: "+pt(c.SectionSize), "margin: "+pt(c.BlockSpacing)+" 0")
	rule("."+HeadingClass(common.SectionTypeSubsection), "font-size: "+pt(c.SubsectionSize), "margin: "+pt(c.BlockSpacing)+" 0")
	for _, kind := range []common.BlockKind{common.BlockKindParagraph, common.BlockKindNumberedList, common.BlockKindBulletList} {
		rule("."+BlockClass(kind), "font-size: "+pt(c.BodySize), "margin: 0 0 "+pt(c.BlockSpacing))
	}
	rule("."+BlockClass(common.BlockKindDiagram), "font-family: "+c.MonoFamily, "font-size: "+pt(c.DiagramSize), "white-space: pre", "margin: 0 0 "+pt(c.BlockSpacing))
	rule("."+BlockClass(common.BlockKindImage), "font-size: "+pt(c.BodySize), "margin: 0 0 "+pt(c.BlockSpacing), "text-align: center")
	rule("."+ClassPlaceholder, "border: 1pt dashed #888", "padding: "+pt(c.BlockSpacing*2))
	rule("."+ClassPageNumber, "font-size: "+pt(c.TOCSize), "text-align: center", "margin-top: "+pt(c.BlockSpacing))
	return b.String()
}

func pt(v float64) string {
	return num(v) + "pt"
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Nesting returns indentation depth of section heading: subsections are
// indented one step per level below their section.
func Nesting(typ common.SectionType, depth int) int {
	if typ != common.SectionTypeSubsection {
		return 0
	}
	return depth + 1
}
