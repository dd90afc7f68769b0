package convert

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v3"

	"bylaws/common"
	"bylaws/document"
	"bylaws/layout"
	"bylaws/state"
	"bylaws/validate"
)

// load reads single document source named by the first command argument.
func load(ctx context.Context, cmd *cli.Command, log *zap.Logger) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return nil, errors.New("no input source has been specified")
	}
	source, err := document.Load(src)
	if err != nil {
		return nil, err
	}
	return compute(state.EnvFromContext(ctx), source, filepath.Base(src), common.OutputFmtHtml, log), nil
}

// openDestination returns writer for the second command argument, STDOUT
// when absent.
func openDestination(cmd *cli.Command) (io.WriteCloser, string, error) {
	fname := cmd.Args().Get(1)
	if len(fname) == 0 {
		return nopCloser{os.Stdout}, "STDOUT", nil
	}
	out, err := os.Create(fname)
	if err != nil {
		return nil, fname, fmt.Errorf("unable to create destination file '%s': %w", fname, err)
	}
	return out, fname, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// DumpLayout outputs computed pages and table of contents.
func DumpLayout(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)
	log := env.Log.Named("layout")

	format, err := common.ParseLayoutFmt(cmd.String("format"))
	if err != nil {
		return fmt.Errorf("unable to dump layout: %w", err)
	}

	d, err := load(ctx, cmd, log)
	if err != nil {
		return err
	}

	data, err := encodeLayout(d.Layout, format)
	if err != nil {
		return err
	}

	out, fname, err := openDestination(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if e := out.Close(); e != nil && err == nil {
			err = e
		}
	}()

	log.Info("Outputing layout", zap.Stringer("format", format), zap.String("file", fname),
		zap.Int("pages", d.Layout.TotalPages), zap.Int("toc_entries", len(d.Layout.TOC.Entries)))
	if _, err = out.Write(data); err != nil {
		return fmt.Errorf("unable to write layout: %w", err)
	}
	return nil
}

func encodeLayout(l *layout.Layout, format common.LayoutFmt) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch format {
	case common.LayoutFmtJson:
		data, err = json.MarshalIndent(l, "", "  ")
		data = append(data, '\n')
	default:
		data, err = yaml.Marshal(l)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to encode layout: %w", err)
	}
	return data, nil
}

// Check validates document source and outputs report (YAML). It fails only
// when report has errors, warnings and suggestions are informational.
func Check(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)
	log := env.Log.Named("check")

	d, err := load(ctx, cmd, log)
	if err != nil {
		return err
	}

	report, err := verify(d, env.Cfg.Document.Typography, log)
	if err != nil {
		return err
	}
	if env.Rpt != nil {
		if err := env.Rpt.StoreJSON(fmt.Sprintf("check-%s.json", d.SrcName), report); err != nil {
			log.Warn("Unable to store validation report", zap.Error(err))
		}
	}

	logIssues(log, report)

	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("unable to encode report: %w", err)
	}
	out, _, err := openDestination(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if e := out.Close(); e != nil && err == nil {
			err = e
		}
	}()
	if _, err = out.Write(data); err != nil {
		return fmt.Errorf("unable to write report: %w", err)
	}

	if !report.IsValid {
		return fmt.Errorf("document is not consistent: %d error(s)", len(report.Errors))
	}
	return nil
}

func logIssues(log *zap.Logger, r validate.Report) {
	for _, i := range r.Errors {
		log.Error("Inconsistency", zap.String("section", i.SectionID), zap.String("code", string(i.Code)), zap.String("message", i.Message))
	}
	for _, i := range r.Warnings {
		log.Warn("Content issue", zap.String("section", i.SectionID), zap.String("code", string(i.Code)), zap.String("message", i.Message))
	}
	for _, i := range r.Suggestions {
		log.Debug("Suggestion", zap.String("section", i.SectionID), zap.String("code", string(i.Code)), zap.String("message", i.Message))
	}
	log.Info("Validation completed", zap.Bool("valid", r.IsValid),
		zap.Int("errors", len(r.Errors)), zap.Int("warnings", len(r.Warnings)), zap.Int("suggestions", len(r.Suggestions)))
}
