package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/arkenidar/dhtml/internal/config"
	"github.com/arkenidar/dhtml/pkg/middleware"
	"github.com/arkenidar/dhtml/pkg/server"
)

func serveCmd() *cobra.Command {
	var (
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the demo server",
		Long: `Start the HTTP/WebSocket demo server.

Configuration is read from dhtml.json in the working directory
when present; flags override it.

Examples:
  dhtml serve
  dhtml serve --port=8080
  dhtml serve --host=0.0.0.0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(port, host)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from dhtml.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from dhtml.json)")

	return cmd
}

func runServe(port int, host string) error {
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		return err
	}

	// Apply command-line overrides
	if port > 0 {
		cfg.Server.Port = port
	}
	if host != "" {
		cfg.Server.Host = host
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	demos, err := cfg.DemoConfig()
	if err != nil {
		return err
	}
	shutdownTimeout, err := cfg.ShutdownTimeout()
	if err != nil {
		return err
	}

	srvCfg := &server.Config{
		Address:         cfg.Address(),
		Demos:           demos,
		AllowedOrigins:  cfg.Server.AllowedOrigins,
		ShutdownTimeout: shutdownTimeout,
		Middleware: []server.Middleware{
			middleware.Tracing(),
			middleware.Metrics(),
		},
		OnSessionStart: middleware.RecordSessionStart,
		OnSessionEnd:   middleware.RecordSessionEnd,
		OnSinkWrite:    middleware.RecordSinkWrite,
	}
	srv := server.New(srvCfg)

	printBanner()
	fmt.Println()
	info("Listening on %s", cfg.URL())
	info("Demos at %s/demo/<name>, metrics at /metrics", cfg.URL())
	fmt.Println()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			errorMsg("Server failed: %s", err)
		}
		return err
	case sig := <-sigCh:
		fmt.Println()
		info("Received %s, shutting down...", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		errorMsg("Shutdown did not complete cleanly: %s", err)
		return err
	}
	success("Server stopped")
	return nil
}
