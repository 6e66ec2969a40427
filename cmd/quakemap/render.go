package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/couchcryptid/quakemap/internal/adapter/leaflet"
	"github.com/couchcryptid/quakemap/internal/observability"
	"github.com/spf13/cobra"
)

func newRenderCmd(a *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Build the map once and write it as a static HTML page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.render(cmd.Context(), out, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}

// render logs to stderr so stdout carries only the page.
func (a *app) render(ctx context.Context, out string, stdout, stderr io.Writer) error {
	logger := observability.NewLoggerTo(stderr, a.cfg.LogLevel, a.cfg.LogFormat)
	metrics := a.newMetrics()

	p, release := a.buildPipeline(logger, metrics)
	defer release()

	view, err := p.Run(ctx)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := leaflet.Render(&buf, view); err != nil {
		return err
	}

	if out == "" || out == "-" {
		_, err = stdout.Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	logger.Info("map page written", "path", out, "snapshot_id", view.ID, "bytes", buf.Len())
	return nil
}
