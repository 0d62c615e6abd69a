package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"filmoteca/internal/server"
	"filmoteca/internal/thumbs"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var bind string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve movies.json and thumbnails over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			if bind != "" {
				cfg.Server.Bind = bind
			}
			backend, err := thumbs.OpenBackend(cmd.Context(), cfg)
			if err != nil {
				return fmt.Errorf("thumbnail backend: %w", err)
			}
			return server.New(cfg, backend, logger).Serve(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&bind, "bind", "", "Listen address (overrides server.bind)")
	return cmd
}
