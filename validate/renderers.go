package validate

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"bylaws/css"
	"bylaws/render"
	"bylaws/render/preview"
)

// pageShape is what must match between renderers on every page.
type pageShape struct {
	number   string
	class    string
	sections []string
	headings []string
	blocks   []string
	toc      []string
}

type shape struct {
	pages []pageShape
	style string
}

func (ch *checker) compareRenderers() {
	static, err := extract(ch.static)
	if err != nil {
		ch.errorf("", CodeRenderFailed, "unable to parse static document: %v", err)
		return
	}
	live, err := extract(ch.preview)
	if err != nil {
		ch.errorf("", CodeRenderFailed, "unable to parse preview document: %v", err)
		return
	}

	if len(static.pages) != len(live.pages) {
		ch.errorf("", CodePageCountMismatch, "static document has %d pages, preview has %d", len(static.pages), len(live.pages))
	}
	for i := range min(len(static.pages), len(live.pages)) {
		if diff := static.pages[i].diff(live.pages[i]); diff != "" {
			ch.errorf("", CodePageMismatch, "page %s: %s", static.pages[i].number, diff)
		}
	}

	p := css.NewParser(ch.log)
	for _, d := range css.Compare(p.Parse([]byte(static.style), "static"), p.Parse([]byte(live.style), "preview")) {
		ch.errorf("", CodeTypography, "%s", d)
	}
}

func (s pageShape) diff(o pageShape) string {
	switch {
	case s.number != o.number:
		return fmt.Sprintf("page number %s != %s", s.number, o.number)
	case s.class != o.class:
		return fmt.Sprintf("page kind %q != %q", s.class, o.class)
	case !slices.Equal(s.sections, o.sections):
		return fmt.Sprintf("sections %v != %v", s.sections, o.sections)
	case !slices.Equal(s.headings, o.headings):
		return fmt.Sprintf("headings %q != %q", s.headings, o.headings)
	case !slices.Equal(s.blocks, o.blocks):
		return fmt.Sprintf("blocks %v != %v", s.blocks, o.blocks)
	case !slices.Equal(s.toc, o.toc):
		return fmt.Sprintf("table of contents %q != %q", s.toc, o.toc)
	}
	return ""
}

// extract collects structure marked with render attributes, interactive
// chrome is skipped.
func extract(doc string) (*shape, error) {
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return nil, err
	}
	res := &shape{}
	var page *pageShape
	var section string

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if attr(n, preview.AttrChrome) != "" {
				return
			}
			switch {
			case n.DataAtom == atom.Style:
				res.style += text(n)
				return
			case attr(n, render.AttrPage) != "":
				res.pages = append(res.pages, pageShape{number: attr(n, render.AttrPage), class: attr(n, "class")})
				page = &res.pages[len(res.pages)-1]
				section = ""
			case page == nil:
			case n.DataAtom == atom.Section && attr(n, render.AttrSection) != "":
				section = attr(n, render.AttrSection)
				page.sections = append(page.sections, section)
			case attr(n, render.AttrSection) != "":
				page.toc = append(page.toc, attr(n, render.AttrSection)+"|"+text(n))
				return
			case attr(n, render.AttrBlock) != "":
				page.blocks = append(page.blocks, section+":"+attr(n, render.AttrBlock))
			case isHeading(n.DataAtom) && section != "":
				page.headings = append(page.headings, text(n))
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return res, nil
}

func isHeading(a atom.Atom) bool {
	switch a {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return true
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func text(n *html.Node) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
