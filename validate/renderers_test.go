package validate

import (
	"slices"
	"testing"

	"go.uber.org/zap/zaptest"

	"bylaws/layout"
	"bylaws/numbering"
	"bylaws/render"
	"bylaws/render/preview"
	"bylaws/render/static"
)

func renderBoth(t *testing.T, sl, pl *layout.Layout, sc, pc render.Contract, to int) (string, string) {
	t.Helper()
	s, err := static.HTML(sl, sc)
	if err != nil {
		t.Fatalf("static.HTML() error = %v", err)
	}
	p, err := preview.HTML(preview.Pages(pl, pc, 1, to, preview.Options{Navigation: true, Script: "reload()"}))
	if err != nil {
		t.Fatalf("preview.HTML() error = %v", err)
	}
	return s, p
}

func TestCheck_RenderersAgree(t *testing.T) {
	src := cleanSource()
	l := layout.Compute(src, layout.DefaultMetrics())
	c := render.DefaultContract()
	s, p := renderBoth(t, l, l, c, c, l.TotalPages)

	r := Check(src, l, WithRenderers(s, p), WithLogger(zaptest.NewLogger(t)))
	if !r.IsValid {
		t.Errorf("renderers disagree: %v", r.Errors)
	}
}

func TestCheck_RenderersDisagree(t *testing.T) {
	tests := []struct {
		name  string
		setup func(l *layout.Layout) (sl *layout.Layout, pc render.Contract, to int)
		code  Code
	}{
		{
			name: "page missing",
			setup: func(l *layout.Layout) (*layout.Layout, render.Contract, int) {
				return l, render.DefaultContract(), l.TotalPages - 1
			},
			code: CodePageCountMismatch,
		},
		{
			name: "typography",
			setup: func(l *layout.Layout) (*layout.Layout, render.Contract, int) {
				c := render.DefaultContract()
				c.BodySize = 14
				return l, c, l.TotalPages
			},
			code: CodeTypography,
		},
		{
			name: "heading",
			setup: func(l *layout.Layout) (*layout.Layout, render.Contract, int) {
				other := layout.Compute(cleanSource(), layout.DefaultMetrics())
				other.Labels["sec-1-1"] = numbering.Label{Text: "Section One"}
				return other, render.DefaultContract(), l.TotalPages
			},
			code: CodePageMismatch,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := cleanSource()
			l := layout.Compute(src, layout.DefaultMetrics())
			sl, pc, to := tt.setup(l)
			s, p := renderBoth(t, sl, l, render.DefaultContract(), pc, to)

			r := Check(src, l, WithRenderers(s, p), WithLogger(zaptest.NewLogger(t)))
			if r.IsValid {
				t.Error("disagreeing renderers reported as valid")
			}
			if !slices.Contains(codes(r.Errors), tt.code) {
				t.Errorf("error %s not reported, got %v", tt.code, r.Errors)
			}
		})
	}
}
