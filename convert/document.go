package convert

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"bylaws/cache"
	"bylaws/common"
	"bylaws/document"
	"bylaws/layout"
	"bylaws/render"
	"bylaws/render/preview"
	"bylaws/render/static"
	"bylaws/state"
	"bylaws/validate"
)

// Document is a single decoded source together with its computed layout.
type Document struct {
	// SrcName is source path relative to what was requested on the command
	// line, always includes file name.
	SrcName string
	Format  common.OutputFmt
	Source  *document.Source
	Layout  *layout.Layout
}

// isSourceName reports whether file name looks like document source.
func isSourceName(name string) bool {
	switch filepath.Ext(name) {
	case ".yaml", ".yml", ".json", ".jsonc":
		return true
	}
	return false
}

// prepare decodes source data and computes layout, going through layout
// cache when one is configured.
func prepare(ctx context.Context, data []byte, srcName string, format common.OutputFmt, log *zap.Logger) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	env := state.EnvFromContext(ctx)

	src, err := document.Decode(data, filepath.Ext(srcName))
	if err != nil {
		return nil, fmt.Errorf("unable to decode document source (%s): %w", srcName, err)
	}
	return compute(env, src, srcName, format, log), nil
}

func compute(env *state.LocalEnv, src *document.Source, srcName string, format common.OutputFmt, log *zap.Logger) *Document {
	if src.Title == "" {
		src.Title = env.Cfg.Document.Title
	}
	l, hit := cache.Compute(env.Cache, src, env.Cfg.Document.Layout, log)
	log.Debug("Layout ready",
		zap.String("source", srcName), zap.Bool("cached", hit),
		zap.Int("sections", len(src.Sections)), zap.Int("pages", l.TotalPages))
	return &Document{SrcName: srcName, Format: format, Source: src, Layout: l}
}

// verify renders document with both renderers and cross checks results.
func verify(d *Document, c render.Contract, log *zap.Logger) (validate.Report, error) {
	staticHTML, err := static.HTML(d.Layout, c)
	if err != nil {
		return validate.Report{}, fmt.Errorf("unable to render static document: %w", err)
	}
	previewHTML, err := preview.HTML(preview.Render(d.Layout, c, preview.Options{}))
	if err != nil {
		return validate.Report{}, fmt.Errorf("unable to render preview document: %w", err)
	}
	return validate.Check(d.Source, d.Layout, validate.WithRenderers(staticHTML, previewHTML), validate.WithLogger(log)), nil
}
