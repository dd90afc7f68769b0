// Package markup parses raw section content into typed content blocks ready
// for rendering.
package markup

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"bylaws/common"
)

// Block is a single typed content unit. HTML and Items carry already escaped
// inline markup, Text and Description are plain text.
type Block struct {
	Kind        common.BlockKind `yaml:"kind" json:"kind"`
	HTML        string           `yaml:"html,omitempty" json:"html,omitempty"`
	Items       []string         `yaml:"items,omitempty" json:"items,omitempty"`
	Text        string           `yaml:"text,omitempty" json:"text,omitempty"`
	Description string           `yaml:"description,omitempty" json:"description,omitempty"`
}

var (
	imageRe    = regexp.MustCompile(`\[IMAGE:([^\]]*)\]`)
	blankRe    = regexp.MustCompile(`\n[ \t]*\n`)
	numberedRe = regexp.MustCompile(`^\s*\d+\.\s+(.*)$`)
	bulletRe   = regexp.MustCompile(`^\s*[-*]\s+(.*)$`)
)

// Parse splits content into blocks: image placeholders first, then blank
// line separated groups each classified as numbered list, bullet list,
// diagram or paragraph (in that priority).
func Parse(content string) []Block {
	content = Normalize(content)

	var blocks []Block
	last := 0
	for _, m := range imageRe.FindAllStringSubmatchIndex(content, -1) {
		blocks = appendText(blocks, content[last:m[0]])
		blocks = append(blocks, Block{
			Kind:        common.BlockKindImage,
			Description: strings.TrimSpace(content[m[2]:m[3]]),
		})
		last = m[1]
	}
	return appendText(blocks, content[last:])
}

// Normalize brings content to canonical form all stages work with: NFC and
// "\n" line endings.
func Normalize(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	return norm.NFC.String(content)
}

// Images returns descriptions of all image placeholders in content.
func Images(content string) []string {
	var res []string
	for _, m := range imageRe.FindAllStringSubmatch(Normalize(content), -1) {
		res = append(res, strings.TrimSpace(m[1]))
	}
	return res
}

func appendText(blocks []Block, span string) []Block {
	for _, group := range blankRe.Split(span, -1) {
		group = strings.Trim(group, "\n")
		if strings.TrimSpace(group) == "" {
			continue
		}
		blocks = append(blocks, classify(group))
	}
	return blocks
}

func classify(group string) Block {
	lines := nonBlank(strings.Split(group, "\n"))

	if items, ok := listItems(lines, numberedRe); ok {
		return Block{Kind: common.BlockKindNumberedList, Items: items}
	}
	if items, ok := listItems(lines, bulletRe); ok {
		return Block{Kind: common.BlockKindBulletList, Items: items}
	}
	if strings.ContainsFunc(group, isBoxDrawing) {
		return Block{Kind: common.BlockKindDiagram, Text: group}
	}

	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		parts = append(parts, Inline(strings.TrimSpace(line)))
	}
	return Block{Kind: common.BlockKindParagraph, HTML: strings.Join(parts, "<br/>")}
}

func listItems(lines []string, re *regexp.Regexp) ([]string, bool) {
	items := make([]string, 0, len(lines))
	for _, line := range lines {
		m := re.FindStringSubmatch(line)
		if m == nil {
			return nil, false
		}
		items = append(items, Inline(strings.TrimSpace(m[1])))
	}
	return items, len(items) > 0
}

func nonBlank(lines []string) []string {
	res := lines[:0]
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			res = append(res, l)
		}
	}
	return res
}

// box drawing unicode block
func isBoxDrawing(r rune) bool {
	return r >= 0x2500 && r <= 0x257F
}
