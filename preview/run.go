package preview

import (
	"context"
	"errors"
	"fmt"
	"net"
	"path/filepath"

	cli "github.com/urfave/cli/v3"

	"bylaws/state"
)

// Run is preview command action, it serves until interrupted.
func Run(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	src, err := filepath.Abs(src)
	if err != nil {
		return err
	}

	cfg := env.Cfg.Document
	if addr := cmd.String("listen"); addr != "" {
		cfg.Preview.Listen = addr
	}

	ln, err := net.Listen("tcp", cfg.Preview.Listen)
	if err != nil {
		return fmt.Errorf("unable to listen on %s: %w", cfg.Preview.Listen, err)
	}
	return NewServer(src, &cfg, env.Log).Serve(ctx, ln)
}
