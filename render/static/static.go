// Package static renders layout into a complete self-contained XHTML
// document suitable for printing or for sending to remote rendering service.
package static

import (
	"bytes"
	"slices"
	"strconv"

	"github.com/beevik/etree"

	"bylaws/common"
	"bylaws/layout"
	"bylaws/markup"
	"bylaws/render"
)

// Render builds XHTML document from layout. Pages follow each other in
// order: cover, table of contents, content.
func Render(l *layout.Layout, c render.Contract) *etree.Document {
	doc := etree.NewDocument()
	doc.WriteSettings = etree.WriteSettings{
		CanonicalText:    true,
		CanonicalAttrVal: true,
	}
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	html := doc.CreateElement("html")
	html.CreateAttr("xmlns", "http://www.w3.org/1999/xhtml")
	html.CreateAttr("lang", "en")

	head := html.CreateElement("head")
	meta := head.CreateElement("meta")
	meta.CreateAttr("http-equiv", "Content-Type")
	meta.CreateAttr("content", "text/html; charset=utf-8")
	head.CreateElement("title").SetText(render.DocumentTitle(l.Title))
	style := head.CreateElement("style")
	style.CreateAttr("type", "text/css")
	style.SetText(render.Stylesheet(c))

	body := html.CreateElement("body")
	appendCover(body, l)
	for i, chunk := range l.TOC.Chunks(l.Metrics) {
		appendTOCPage(body, c, i, 2+i, chunk)
	}
	for _, p := range l.Pages {
		appendContentPage(body, l, c, p)
	}
	closeEmpty(html)
	return doc
}

// Bytes renders layout and serializes resulting document.
func Bytes(l *layout.Layout, c render.Contract) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := Render(l, c).WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func createPage(parent *etree.Element, kind string, number int) *etree.Element {
	page := parent.CreateElement("div")
	page.CreateAttr("class", render.PageClass(kind))
	page.CreateAttr(render.AttrPage, strconv.Itoa(number))
	return page
}

func appendPageNumber(page *etree.Element, number int) {
	n := page.CreateElement("div")
	n.CreateAttr("class", render.ClassPageNumber)
	n.SetText(strconv.Itoa(number))
}

func appendCover(body *etree.Element, l *layout.Layout) {
	page := createPage(body, render.ClassCover, 1)
	h := page.CreateElement("h1")
	h.CreateAttr("class", render.ClassCoverTitle)
	h.SetText(render.DocumentTitle(l.Title))
}

func appendTOCPage(body *etree.Element, c render.Contract, index, number int, entries []layout.Entry) {
	page := createPage(body, render.ClassTOCPage, number)
	if index == 0 {
		h := page.CreateElement("h1")
		h.CreateAttr("class", render.ClassTOCTitle)
		h.SetText(c.TOCTitle)
	}
	for _, e := range entries {
		line := page.CreateElement("div")
		line.CreateAttr("class", render.TOCEntryClass(e.Level))
		line.CreateAttr(render.AttrSection, e.SectionID)

		a := line.CreateElement("a")
		a.CreateAttr("href", "#"+render.Anchor(e.SectionID))
		a.SetText(e.Label)

		num := line.CreateElement("span")
		num.CreateAttr("class", render.ClassTOCPageNum)
		num.SetText(strconv.Itoa(e.Page))
	}
	appendPageNumber(page, number)
}

func appendContentPage(body *etree.Element, l *layout.Layout, c render.Contract, p layout.Page) {
	page := createPage(body, render.ClassContentPage, p.Number)
	for _, id := range p.Sections {
		s, ok := l.Section(id)
		if !ok {
			continue
		}
		label := l.Labels.Get(id)

		sec := page.CreateElement("section")
		sec.CreateAttr("class", render.ClassSection+" section-"+s.Type.String())
		sec.CreateAttr("id", render.Anchor(id))
		sec.CreateAttr(render.AttrSection, id)

		h := sec.CreateElement(render.HeadingTag(s.Type))
		h.CreateAttr("class", render.HeadingClass(s.Type))
		if indent := c.Indent(render.Nesting(s.Type, label.Depth)); indent != "" {
			h.CreateAttr("style", indent)
		}
		h.SetText(label.Text)

		for _, b := range l.Blocks[id] {
			appendBlock(sec, b)
		}
	}
	appendPageNumber(page, p.Number)
}

func appendBlock(parent *etree.Element, b markup.Block) {
	el := parent.CreateElement(render.BlockTag(b.Kind))
	el.CreateAttr("class", render.BlockClass(b.Kind))
	el.CreateAttr(render.AttrBlock, b.Kind.String())

	switch b.Kind {
	case common.BlockKindNumberedList, common.BlockKindBulletList:
		for _, item := range b.Items {
			appendInline(el.CreateElement("li"), item)
		}
	case common.BlockKindDiagram:
		el.SetText(b.Text)
	case common.BlockKindImage:
		ph := el.CreateElement("div")
		ph.CreateAttr("class", render.ClassPlaceholder)
		ph.SetText(render.ImagePlaceholderText)
		if b.Description != "" {
			el.CreateElement("figcaption").SetText(b.Description)
		}
	default:
		appendInline(el, b.HTML)
	}
}

// appendInline moves already escaped inline markup under parent. Markup is
// produced by markup package and is well formed XML, if it is not the text is
// kept as is rather than lost.
func appendInline(parent *etree.Element, fragment string) {
	frag := etree.NewDocument()
	if err := frag.ReadFromString("<x>" + fragment + "</x>"); err != nil || frag.Root() == nil {
		parent.SetText(fragment)
		return
	}
	for _, t := range slices.Clone(frag.Root().Child) {
		parent.AddChild(t)
	}
}

// HTML renders layout into document string.
func HTML(l *layout.Layout, c render.Contract) (string, error) {
	data, err := Bytes(l, c)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// closeEmpty makes sure no element but void ones is written self-closed,
// HTML parsers treat <p/> as start tag.
func closeEmpty(el *etree.Element) {
	if len(el.Child) == 0 {
		switch el.Tag {
		case "br", "meta", "link", "img", "hr":
		default:
			el.CreateText("")
		}
		return
	}
	for _, child := range el.ChildElements() {
		closeEmpty(child)
	}
}
