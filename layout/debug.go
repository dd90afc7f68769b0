package layout

import (
	"maps"
	"slices"
	"sort"

	"github.com/maruel/natural"

	"bylaws/utils/debug"
)

// String returns readable tree of the whole layout. It exists solely for
// manual inspection and debug reports.
func (l *Layout) String() string {
	if l == nil {
		return "<nil Layout>"
	}

	tw := debug.NewTreeWriter()
	tw.TextBlock(0, "Title", l.Title)
	tw.Line(0, "Pages: total=%d toc=%d content=%d content_start=%d", l.TotalPages, l.TOC.Pages, len(l.Pages), l.TOC.ContentStart)

	for _, p := range l.Pages {
		tw.Line(1, "Page[%d] height=%.1f sections=%d", p.Number, p.Height, len(p.Sections))
		for _, id := range p.Sections {
			tw.Line(2, "%q %s", id, l.Labels.Get(id).Text)
		}
	}

	tw.Line(0, "TOC entries: %d", len(l.TOC.Entries))
	for _, e := range l.TOC.Entries {
		tw.Line(1+e.Level, "%s ... %d", e.Label, e.Page)
	}

	keys := slices.Collect(maps.Keys(l.Blocks))
	sort.Sort(natural.StringSlice(keys))
	tw.Line(0, "Content blocks: %d sections", len(keys))
	for _, k := range keys {
		blocks := l.Blocks[k]
		tw.Line(1, "Section[%q] blocks=%d", k, len(blocks))
		for i, b := range blocks {
			tw.Line(2, "Block[%d] kind=%s", i, b.Kind)
			switch {
			case b.HTML != "":
				tw.TextBlock(3, "html", b.HTML)
			case len(b.Items) > 0:
				for _, item := range b.Items {
					tw.TextBlock(3, "item", item)
				}
			case b.Text != "":
				tw.TextBlock(3, "text", b.Text)
			default:
				tw.TextBlock(3, "description", b.Description)
			}
		}
	}
	return tw.String()
}
