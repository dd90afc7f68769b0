// Package validate is advisory consistency pass over document snapshot, its
// layout and (optionally) rendered outputs. It never refuses a document:
// content problems are warnings and suggestions, only structural
// disagreement between layout stages or renderers is reported as error.
package validate

import (
	"fmt"

	"go.uber.org/zap"

	"bylaws/document"
	"bylaws/layout"
)

// Code identifies kind of issue.
type Code string

// Warnings.
const (
	CodeMissingOrder          Code = "missing-order"
	CodeEmptyContent          Code = "empty-content"
	CodeTabCharacter          Code = "tab-character"
	CodePaddedTitle           Code = "padded-title"
	CodeEmptyImageDescription Code = "empty-image-description"
	CodeOrphanParent          Code = "orphan-parent"
	CodeMissingParent         Code = "missing-parent"
	CodeUnexpectedParent      Code = "unexpected-parent"
	CodeParentCycle           Code = "parent-cycle"
	CodeDuplicatePreamble     Code = "duplicate-preamble"
	CodeDuplicateID           Code = "duplicate-id"
	CodeOrderGap              Code = "order-gap"
)

// Suggestions.
const (
	CodeExcessNewlines       Code = "excess-newlines"
	CodeLongImageDescription Code = "long-image-description"
	CodeLongTOCLabel         Code = "long-toc-label"
)

// Errors.
const (
	CodeCoverage          Code = "layout-coverage"
	CodeEmptyPage         Code = "empty-page"
	CodeTOCIncomplete     Code = "toc-incomplete"
	CodeTOCOrder          Code = "toc-order"
	CodeLabelMismatch     Code = "label-mismatch"
	CodePageAccounting    Code = "page-accounting"
	CodeRenderFailed      Code = "render-failed"
	CodePageCountMismatch Code = "page-count-mismatch"
	CodePageMismatch      Code = "page-mismatch"
	CodeTypography        Code = "typography-mismatch"
)

// Limits for suggestions.
const (
	MaxImageDescription = 120
	MaxTOCLabel         = 70
)

// Issue is a single finding. SectionID is empty for document level issues.
type Issue struct {
	SectionID string `yaml:"section_id,omitempty" json:"sectionId,omitempty"`
	Code      Code   `yaml:"code" json:"code"`
	Message   string `yaml:"message" json:"message"`
}

func (i Issue) String() string {
	if i.SectionID == "" {
		return fmt.Sprintf("[%s] %s", i.Code, i.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", i.Code, i.SectionID, i.Message)
}

// Report is result of validation.
type Report struct {
	IsValid     bool    `yaml:"is_valid" json:"isValid"`
	Errors      []Issue `yaml:"errors" json:"errors"`
	Warnings    []Issue `yaml:"warnings" json:"warnings"`
	Suggestions []Issue `yaml:"suggestions" json:"suggestions"`
}

// Option modifies validation.
type Option func(*checker)

// WithRenderers adds cross check of static and preview renderer outputs.
func WithRenderers(static, preview string) Option {
	return func(c *checker) {
		c.static, c.preview = static, preview
		c.renderers = true
	}
}

// WithLogger sets logger used to report progress.
func WithLogger(log *zap.Logger) Option {
	return func(c *checker) {
		c.log = log
	}
}

type checker struct {
	log       *zap.Logger
	renderers bool
	static    string
	preview   string
	report    Report
}

// Check validates snapshot and its layout. Layout must be computed from the
// same snapshot.
func Check(src *document.Source, l *layout.Layout, opts ...Option) Report {
	ch := &checker{
		log:    zap.NewNop(),
		report: Report{Errors: []Issue{}, Warnings: []Issue{}, Suggestions: []Issue{}},
	}
	for _, opt := range opts {
		opt(ch)
	}

	c := document.NewCollection(src.Sections)
	ch.content(c)
	ch.structure(c)
	ch.layout(c, l)
	if ch.renderers {
		ch.compareRenderers()
	}

	ch.report.IsValid = len(ch.report.Errors) == 0
	ch.log.Debug("Validation complete",
		zap.Bool("valid", ch.report.IsValid),
		zap.Int("errors", len(ch.report.Errors)),
		zap.Int("warnings", len(ch.report.Warnings)),
		zap.Int("suggestions", len(ch.report.Suggestions)))
	return ch.report
}

func (ch *checker) errorf(id string, code Code, format string, args ...any) {
	ch.report.Errors = append(ch.report.Errors, Issue{SectionID: id, Code: code, Message: fmt.Sprintf(format, args...)})
}

func (ch *checker) warnf(id string, code Code, format string, args ...any) {
	ch.report.Warnings = append(ch.report.Warnings, Issue{SectionID: id, Code: code, Message: fmt.Sprintf(format, args...)})
}

func (ch *checker) suggestf(id string, code Code, format string, args ...any) {
	ch.report.Suggestions = append(ch.report.Suggestions, Issue{SectionID: id, Code: code, Message: fmt.Sprintf(format, args...)})
}
