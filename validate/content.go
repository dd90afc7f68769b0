package validate

import (
	"strings"
	"unicode/utf8"

	"bylaws/common"
	"bylaws/document"
	"bylaws/markup"
)

func (ch *checker) content(c *document.Collection) {
	for i := range c.Len() {
		s := c.At(i)

		if !s.HasOrder() {
			ch.warnf(s.ID, CodeMissingOrder, "%s has no order, it is placed after ordered siblings", s.Type)
		}
		if s.Title != strings.TrimSpace(s.Title) {
			ch.warnf(s.ID, CodePaddedTitle, "title %q has leading or trailing whitespace", s.Title)
		}
		if s.Type == common.SectionTypeArticle {
			continue
		}
		if strings.TrimSpace(s.Content) == "" {
			ch.warnf(s.ID, CodeEmptyContent, "%s has no content", s.Type)
			continue
		}
		if strings.Contains(s.Content, "\t") {
			ch.warnf(s.ID, CodeTabCharacter, "content contains tab characters, indentation may render inconsistently")
		}
		if strings.Contains(markup.Normalize(s.Content), "\n\n\n") {
			ch.suggestf(s.ID, CodeExcessNewlines, "content contains three or more consecutive newlines")
		}
		for n, desc := range markup.Images(s.Content) {
			switch l := utf8.RuneCountInString(desc); {
			case l == 0:
				ch.warnf(s.ID, CodeEmptyImageDescription, "image %d has empty description", n+1)
			case l > MaxImageDescription:
				ch.suggestf(s.ID, CodeLongImageDescription, "image %d description is %d characters long (over %d)", n+1, l, MaxImageDescription)
			}
		}
	}
}
