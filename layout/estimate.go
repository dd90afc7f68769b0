package layout

import (
	"math"
	"strings"

	"bylaws/common"
	"bylaws/document"
	"bylaws/markup"
)

// Metrics holds calibration constants of the analytic height estimation,
// all heights are in points.
type Metrics struct {
	PageHeight          float64 `yaml:"page_height" json:"page_height" validate:"gt=0"`
	OrphanThreshold     float64 `yaml:"orphan_threshold" json:"orphan_threshold" validate:"gte=0,ltefield=PageHeight"`
	TopLevelTitle       float64 `yaml:"top_level_title" json:"top_level_title" validate:"gte=0"`
	SectionTitle        float64 `yaml:"section_title" json:"section_title" validate:"gte=0"`
	SubsectionTitle     float64 `yaml:"subsection_title" json:"subsection_title" validate:"gte=0"`
	LineHeight          float64 `yaml:"line_height" json:"line_height" validate:"gt=0"`
	WordsPerLine        int     `yaml:"words_per_line" json:"words_per_line" validate:"min=1"`
	BottomMargin        float64 `yaml:"bottom_margin" json:"bottom_margin" validate:"gte=0"`
	ArticleBottomMargin float64 `yaml:"article_bottom_margin" json:"article_bottom_margin" validate:"gte=0"`
	TOCEntriesPerPage   int     `yaml:"toc_entries_per_page" json:"toc_entries_per_page" validate:"min=1"`
}

// DefaultMetrics returns calibration used when nothing else is configured.
func DefaultMetrics() Metrics {
	return Metrics{
		PageHeight:          650,
		OrphanThreshold:     100,
		TopLevelTitle:       40,
		SectionTitle:        28,
		SubsectionTitle:     22,
		LineHeight:          16,
		WordsPerLine:        12,
		BottomMargin:        16,
		ArticleBottomMargin: 8,
		TOCEntriesPerPage:   25,
	}
}

// Estimate returns estimated vertical extent of a section. It is a pure
// function of section type and content.
func (m Metrics) Estimate(s *document.Section) float64 {
	var h float64

	switch s.Type {
	case common.SectionTypeSection:
		h = m.SectionTitle
	case common.SectionTypeSubsection:
		h = m.SubsectionTitle
	default:
		h = m.TopLevelTitle
	}

	if s.Type == common.SectionTypeArticle {
		return h + m.ArticleBottomMargin
	}
	return h + m.bodyLines(s.Content)*m.LineHeight + m.BottomMargin
}

func (m Metrics) bodyLines(content string) float64 {
	if content == "" {
		return 0
	}
	content = markup.Normalize(content)

	newlines := strings.Count(content, "\n")
	wpl := max(m.WordsPerLine, 1)
	wrapped := int(math.Ceil(float64(len(strings.Fields(content))) / float64(wpl)))
	return float64(max(newlines, wrapped))
}
