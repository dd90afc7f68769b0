package convert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"bylaws/archive"
	"bylaws/common"
	"bylaws/state"
)

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("convert")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	src, err = filepath.Abs(src)
	if err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Mailformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	format, err := common.ParseOutputFmt(cmd.String("to"))
	if err != nil {
		log.Warn("Unknown output format requested, switching to html", zap.Error(err))
		format = common.OutputFmtHtml
	}

	env.NoDirs, env.Overwrite = cmd.Bool("nodirs"), cmd.Bool("overwrite")

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst), zap.Stringer("format", format))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, dst, format, log)
}

// process handles the core conversion logic independently of CLI framework. It
// determines the input type (directory, archive, or single file) and processes
// accordingly.
func process(ctx context.Context, src, dst string, format common.OutputFmt, log *zap.Logger) error {
	var head, tail string
	for head = src; len(head) != 0; head, tail = filepath.Split(head) {
		if err := ctx.Err(); err != nil {
			return err
		}

		head = strings.TrimSuffix(head, string(filepath.Separator))

		fi, err := os.Stat(head)
		if err != nil {
			// does not exists - probably path in archive
			continue
		}

		if fi.Mode().IsDir() {
			if len(tail) != 0 {
				// directory cannot have tail - it would be simple file
				return fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
			}
			if err := processDir(ctx, head, dst, format, log); err != nil {
				return fmt.Errorf("unable to process directory: %w", err)
			}
			break
		}

		if !fi.Mode().IsRegular() {
			return fmt.Errorf("unexpected path mode for (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}

		if isSourceName(head) {
			if len(tail) != 0 {
				return fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
			}
			data, err := os.ReadFile(head)
			if err != nil {
				return fmt.Errorf("unable to read source: %w", err)
			}
			return processDocument(ctx, data, filepath.Base(head), dst, format, log)
		}

		if archive.IsArchive(head) {
			// we need to look inside to see if path makes sense
			tail = strings.TrimPrefix(strings.TrimPrefix(src, head), string(filepath.Separator))
			if err := processArchive(ctx, head, filepath.ToSlash(tail), "", dst, format, log); err != nil {
				return fmt.Errorf("unable to process archive: %w", err)
			}
			break
		}
		return fmt.Errorf("input was not recognized as document source or archive (%s)", head)
	}
	if len(head) == 0 {
		return fmt.Errorf("input source was not found (%s)", src)
	}
	return nil
}

// processDir walks directory tree finding document sources and archives and
// processes them. Failure of a single document does not stop processing.
func processDir(ctx context.Context, dir, dst string, format common.OutputFmt, log *zap.Logger) (err error) {
	count := 0
	defer func() {
		if err == nil && count == 0 {
			log.Debug("Nothing to process", zap.String("dir", dir))
		}
	}()

	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		rel := strings.TrimPrefix(strings.TrimPrefix(path, dir), string(filepath.Separator))
		switch {
		case isSourceName(path):
			count++
			data, err := os.ReadFile(path)
			if err != nil {
				log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
				return nil
			}
			if err := processDocument(ctx, data, rel, dst, format, log); err != nil {
				log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
			}
		case archive.IsArchive(path):
			count++
			if err := processArchive(ctx, path, "", filepath.Dir(rel), dst, format, log); err != nil {
				log.Error("Unable to process archive", zap.String("file", path), zap.Error(err))
			}
		default:
			log.Debug("Skipping file, not recognized as document source or archive", zap.String("file", path))
		}
		return nil
	})
}

// processArchive processes all document sources inside archive under
// "pathIn". Resulting files keep archive structure under "pathOut".
func processArchive(ctx context.Context, path, pathIn, pathOut, dst string, format common.OutputFmt, log *zap.Logger) (err error) {
	count := 0
	defer func() {
		if err == nil && count == 0 {
			log.Debug("Nothing to process", zap.String("archive", path))
		}
	}()

	return archive.Walk(path, pathIn, isSourceName, func(name string, data []byte) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		count++
		if err := processDocument(ctx, data, filepath.Join(pathOut, filepath.FromSlash(name)), dst, format, log); err != nil {
			log.Error("Unable to process file in archive",
				zap.String("archive", path), zap.String("file", name), zap.Error(err))
		}
		return nil
	})
}

// processDocument converts single document source. "src" is part of the
// source path (always including file name) relative to the original path.
// When actual file was specified it will be just base file name without a
// path. When looking inside archive or directory it will be relative path
// inside archive or directory. "dst" is the destination directory.
func processDocument(ctx context.Context, data []byte, src, dst string, format common.OutputFmt, log *zap.Logger) (rerr error) {
	env := state.EnvFromContext(ctx)

	var outputName string

	log.Info("Conversion starting", zap.String("from", src))
	defer func(start time.Time) {
		// single broken document must not stop processing of the others
		if r := recover(); r != nil {
			log.Error("Conversion ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("conversion panic: %v", r)
		} else if rerr == nil {
			log.Info("Conversion completed", zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName))
		}
	}(time.Now())

	d, err := prepare(ctx, data, src, format, log)
	if err != nil {
		return err
	}

	outputName = buildOutputPath(d, dst, env)
	if err := prepareOutput(outputName, env.Overwrite, log); err != nil {
		return err
	}

	out, err := generate(ctx, d, &env.Cfg.Document, log)
	if err != nil {
		return fmt.Errorf("unable to generate output: %w", err)
	}
	if err := os.WriteFile(outputName, out, 0644); err != nil {
		return fmt.Errorf("unable to write output: %w", err)
	}

	// Store conversion result for debugging
	if env.Rpt != nil {
		base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
		if err := env.Rpt.StoreYAML(fmt.Sprintf("source-%s.yaml", base), d.Source); err != nil {
			log.Warn("Unable to store decoded source in report", zap.Error(err))
		}
		env.Rpt.StoreData(fmt.Sprintf("layout-%s.txt", base), []byte(d.Layout.String()))
		env.Rpt.Store(fmt.Sprintf("result-%s%s", base, format.Ext()), outputName)
	}
	return nil
}

// prepareOutput makes sure output file may be written.
func prepareOutput(outputName string, overwrite bool, log *zap.Logger) error {
	_, err := os.Stat(outputName)
	switch {
	case err == nil:
		if !overwrite {
			return fmt.Errorf("output file already exists: %s", outputName)
		}
		log.Warn("Overwriting existing file", zap.String("file", outputName))
		return os.Remove(outputName)
	case !os.IsNotExist(err):
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outputName), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	return nil
}
