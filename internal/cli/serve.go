package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"workboard/internal/auth"
	"workboard/internal/logx"
	"workboard/internal/web"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API and page routes over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(ctx context.Context, rt *runtime) error {
				cfg := app.cfg
				if addr != "" {
					cfg.ListenAddr = addr
				}
				level := cfg.LogLevel
				if cmd.Flags().Changed("log-level") {
					level = app.LogLevel
				}
				log := logx.Setup(cmd.ErrOrStderr(), cfg.LogFormat, level)

				srv, err := web.NewServer(web.ServerConfig{
					Addr:            cfg.ListenAddr,
					ShutdownTimeout: cfg.ShutdownTimeout,
					Cookie: auth.CookieConfig{
						Name:   cfg.CookieName,
						Secure: cfg.Production,
						MaxAge: cfg.SessionTTL,
					},
				}, rt.store, rt.auth, log)
				if err != nil {
					return err
				}

				ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
				defer stop()
				return srv.ListenAndServe(ctx)
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: WORKBOARD_LISTEN_ADDR or :8080)")
	return cmd
}
