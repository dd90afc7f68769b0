// Package preview renders layout into live DOM tree used by interactive
// preview. Pages can be rendered one by one, navigation chrome is marked so
// that structural comparison ignores it.
package preview

import (
	"bytes"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"bylaws/common"
	"bylaws/layout"
	"bylaws/markup"
	"bylaws/render"
)

// AttrChrome marks elements which exist only in interactive preview.
const AttrChrome = "data-chrome"

// Options control interactive additions.
type Options struct {
	// Navigation adds previous/next links to every page.
	Navigation bool
	// Script is appended to the end of body when not empty.
	Script string
}

// Render builds complete document tree.
func Render(l *layout.Layout, c render.Contract, opts Options) *html.Node {
	return Pages(l, c, 1, l.TotalPages, opts)
}

// Pages builds document tree holding only pages from..to inclusive, pages
// outside of layout are skipped.
func Pages(l *layout.Layout, c render.Contract, from, to int, opts Options) *html.Node {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html, "lang", "en")
	doc.AppendChild(root)

	head := element(atom.Head)
	root.AppendChild(head)
	head.AppendChild(element(atom.Meta, "charset", "utf-8"))
	head.AppendChild(withText(element(atom.Title), render.DocumentTitle(l.Title)))
	head.AppendChild(withText(element(atom.Style), render.Stylesheet(c)))

	body := element(atom.Body)
	root.AppendChild(body)
	for n := max(from, 1); n <= min(to, l.TotalPages); n++ {
		if page := Page(l, c, n); page != nil {
			if opts.Navigation {
				page.AppendChild(navigation(n, l.TotalPages))
			}
			body.AppendChild(page)
		}
	}
	if opts.Script != "" {
		body.AppendChild(withText(element(atom.Script, AttrChrome, "script"), opts.Script))
	}
	return doc
}

// Page renders single page by its number, nil if there is no such page.
func Page(l *layout.Layout, c render.Contract, n int) *html.Node {
	switch {
	case n == 1:
		return cover(l)
	case n >= 2 && n < l.TOC.ContentStart:
		chunks := l.TOC.Chunks(l.Metrics)
		if i := n - 2; i < len(chunks) {
			return tocPage(c, i, n, chunks[i])
		}
	case n >= l.TOC.ContentStart:
		if i := n - l.TOC.ContentStart; i < len(l.Pages) {
			return contentPage(l, c, l.Pages[i])
		}
	}
	return nil
}

// HTML serializes node tree.
func HTML(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func element(a atom.Atom, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

func withText(n *html.Node, text string) *html.Node {
	if text != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
	return n
}

func page(kind string, number int) *html.Node {
	return element(atom.Div, "class", render.PageClass(kind), render.AttrPage, strconv.Itoa(number))
}

func pageNumber(number int) *html.Node {
	return withText(element(atom.Div, "class", render.ClassPageNumber), strconv.Itoa(number))
}

func cover(l *layout.Layout) *html.Node {
	p := page(render.ClassCover, 1)
	p.AppendChild(withText(element(atom.H1, "class", render.ClassCoverTitle), render.DocumentTitle(l.Title)))
	return p
}

func tocPage(c render.Contract, index, number int, entries []layout.Entry) *html.Node {
	p := page(render.ClassTOCPage, number)
	if index == 0 {
		p.AppendChild(withText(element(atom.H1, "class", render.ClassTOCTitle), c.TOCTitle))
	}
	for _, e := range entries {
		line := element(atom.Div, "class", render.TOCEntryClass(e.Level), render.AttrSection, e.SectionID)
		line.AppendChild(withText(element(atom.A, "href", "#"+render.Anchor(e.SectionID)), e.Label))
		line.AppendChild(withText(element(atom.Span, "class", render.ClassTOCPageNum), strconv.Itoa(e.Page)))
		p.AppendChild(line)
	}
	p.AppendChild(pageNumber(number))
	return p
}

func contentPage(l *layout.Layout, c render.Contract, pg layout.Page) *html.Node {
	p := page(render.ClassContentPage, pg.Number)
	for _, id := range pg.Sections {
		s, ok := l.Section(id)
		if !ok {
			continue
		}
		label := l.Labels.Get(id)

		sec := element(atom.Section,
			"class", render.ClassSection+" section-"+s.Type.String(),
			"id", render.Anchor(id),
			render.AttrSection, id)

		h := element(atom.Lookup([]byte(render.HeadingTag(s.Type))), "class", render.HeadingClass(s.Type))
		if indent := c.Indent(render.Nesting(s.Type, label.Depth)); indent != "" {
			h.Attr = append(h.Attr, html.Attribute{Key: "style", Val: indent})
		}
		sec.AppendChild(withText(h, label.Text))

		for _, b := range l.Blocks[id] {
			sec.AppendChild(block(b))
		}
		p.AppendChild(sec)
	}
	p.AppendChild(pageNumber(pg.Number))
	return p
}

func block(b markup.Block) *html.Node {
	el := element(atom.Lookup([]byte(render.BlockTag(b.Kind))),
		"class", render.BlockClass(b.Kind),
		render.AttrBlock, b.Kind.String())

	switch b.Kind {
	case common.BlockKindNumberedList, common.BlockKindBulletList:
		for _, item := range b.Items {
			li := element(atom.Li)
			appendInline(li, item)
			el.AppendChild(li)
		}
	case common.BlockKindDiagram:
		withText(el, b.Text)
	case common.BlockKindImage:
		el.AppendChild(withText(element(atom.Div, "class", render.ClassPlaceholder), render.ImagePlaceholderText))
		if b.Description != "" {
			el.AppendChild(withText(element(atom.Figcaption), b.Description))
		}
	default:
		appendInline(el, b.HTML)
	}
	return el
}

func appendInline(parent *html.Node, fragment string) {
	nodes, err := html.ParseFragment(strings.NewReader(fragment), parent)
	if err != nil {
		withText(parent, fragment)
		return
	}
	for _, n := range nodes {
		parent.AppendChild(n)
	}
}

func navigation(n, total int) *html.Node {
	nav := element(atom.Nav, "class", "preview-nav", AttrChrome, "nav")
	if n > 1 {
		nav.AppendChild(withText(element(atom.A, "href", "/page/"+strconv.Itoa(n-1)), "previous"))
	}
	nav.AppendChild(withText(element(atom.Span), strconv.Itoa(n)+" / "+strconv.Itoa(total)))
	if n < total {
		nav.AppendChild(withText(element(atom.A, "href", "/page/"+strconv.Itoa(n+1)), "next"))
	}
	return nav
}
