// Package serve runs the web interface
package serve

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/taskmanager/internal/auth"
	"github.com/thenoetrevino/taskmanager/internal/cli"
	"github.com/thenoetrevino/taskmanager/internal/web"
)

const readHeaderTimeout = 10 * time.Second

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web server",
		Long: `Serve the task manager web interface until SIGINT or SIGTERM.
In-flight requests are given the configured shutdown timeout to finish.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
	cmd.Flags().String("addr", "", "Listen address (overrides TASKMANAGER_ADDR)")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return err
	}
	cfg := cliInstance.Config
	if cfg == nil {
		_ = cliInstance.Close()
		return errors.New("serve requires a loaded configuration")
	}
	if err := cfg.RequireSecret(); err != nil {
		_ = cliInstance.Close()
		return &cli.UsageError{Err: err}
	}

	addr := cfg.Server.Addr
	if v, _ := cmd.Flags().GetString("addr"); v != "" {
		addr = v
	}

	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.EphemeralSecret {
		slog.Warn("SECRET_KEY not set, sessions will not survive a restart")
	}

	sessions := auth.NewSessionManager(cfg.Session.Secret, cfg.Session.TTL)
	server, err := web.New(cliInstance.App, sessions, web.Options{
		SecureCookies:  cfg.Session.Secure,
		TrustedOrigins: cfg.Server.TrustedOrigins,
		Theme:          cfg.Theme,
	})
	if err != nil {
		_ = cliInstance.Close()
		return fmt.Errorf("failed to build web server: %w", err)
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		_ = cliInstance.Close()
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:           server.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()
	slog.Info("server listening", "addr", ln.Addr().String())

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.Server.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"http-server": func(ctx context.Context) error {
				slog.Info("shutting down http server")
				return srv.Shutdown(ctx)
			},
		},
	)

	select {
	case err, ok := <-serveErr:
		_ = cliInstance.Close()
		if ok && err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case code := <-wait:
		if err := cliInstance.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
		if code != 0 {
			return fmt.Errorf("shutdown finished with exit code %d", code)
		}
		slog.Info("server stopped")
		return nil
	}
}
