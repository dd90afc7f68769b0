package convert

import (
	"context"
	"fmt"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"go.uber.org/zap"

	"bylaws/common"
	"bylaws/config"
	"bylaws/export"
	"bylaws/render/static"
)

// generate produces output in the requested format. Html and markdown are
// produced locally, binary formats are requested from rendering service
// using the same static document.
func generate(ctx context.Context, d *Document, cfg *config.DocumentConfig, log *zap.Logger) ([]byte, error) {
	content, err := static.HTML(d.Layout, cfg.Typography)
	if err != nil {
		return nil, fmt.Errorf("unable to render static document: %w", err)
	}

	switch d.Format {
	case common.OutputFmtHtml:
		return []byte(content), nil
	case common.OutputFmtMarkdown:
		return toMarkdown(content)
	case common.OutputFmtPdf, common.OutputFmtDocx:
		return exportDocument(ctx, d, content, cfg, log)
	}
	// this should never happen
	return nil, fmt.Errorf("unsupported output format %s", d.Format)
}

func toMarkdown(content string) ([]byte, error) {
	conv := md.NewConverter("", true, nil)
	conv.Use(plugin.GitHubFlavored())
	conv.Remove("style", "title")

	out, err := conv.ConvertString(content)
	if err != nil {
		return nil, fmt.Errorf("unable to convert document to markdown: %w", err)
	}
	return []byte(out + "\n"), nil
}

func exportDocument(ctx context.Context, d *Document, content string, cfg *config.DocumentConfig, log *zap.Logger) ([]byte, error) {
	if cfg.Export.Endpoint == "" {
		return nil, fmt.Errorf("%s output requires document rendering service, export endpoint is not configured", d.Format)
	}

	client := export.NewClient(cfg.Export.Endpoint, cfg.Export.Token.Reveal(), cfg.Export.Timeout, log)
	req := export.NewRequest(d.Layout, cfg.Typography, content, d.Format)
	res, err := client.ExportWithRetry(ctx, req, export.Policy{
		Attempts: cfg.Export.Retry.Attempts,
		Backoff:  cfg.Export.Retry.Backoff,
		Max:      cfg.Export.Retry.MaxBackoff,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to export document: %w", err)
	}
	log.Debug("Document exported",
		zap.String("request_id", res.RequestID), zap.String("mime", res.MIME), zap.Int("size", len(res.Data)))
	return res.Data, nil
}
