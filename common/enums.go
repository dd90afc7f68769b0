// Package common holds closed sets of values shared by every part of the
// program. Enumerations are generated with go-enum, see enums_enum.go.
package common

// Kind of the document node.
// ENUM(preamble, article, section, subsection, amendment)
type SectionType int

// IsTopLevel reports whether node of this type starts its own top level
// group and cannot have a parent.
func (x SectionType) IsTopLevel() bool {
	return x == SectionTypePreamble || x == SectionTypeArticle || x == SectionTypeAmendment
}

// Kind of content block produced by markup parser.
// ENUM(paragraph, numberedList, bulletList, diagram, image)
type BlockKind int

// Specification of requested output type.
// ENUM(html, markdown, pdf, docx)
type OutputFmt int

// Remote reports whether output is produced by external rendering service.
func (o OutputFmt) Remote() bool {
	return o == OutputFmtPdf || o == OutputFmtDocx
}

func (o OutputFmt) Ext() string {
	switch o {
	case OutputFmtHtml:
		return ".html"
	case OutputFmtMarkdown:
		return ".md"
	case OutputFmtPdf:
		return ".pdf"
	case OutputFmtDocx:
		return ".docx"
	default:
		// this should never happen
		panic("unsupported format requested")
	}
}

// Specification of layout dump format.
// ENUM(yaml, json)
type LayoutFmt int
