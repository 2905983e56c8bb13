package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pagebridge/pagebridge/config"
	"github.com/pagebridge/pagebridge/server"
	"github.com/pagebridge/pagebridge/wiki"
)

const (
	FlagHTTPAddr = "http"
)

// Version is set at build time via ldflags.
var Version = "dev"

// GetServeCmd returns the MCP server start command.
func GetServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve MCP tools over stdio, or over HTTP with --http",
		Run: func(cmd *cobra.Command, args []string) {
			addr, err := cmd.Flags().GetString(FlagHTTPAddr)
			if err != nil {
				log.Fatalf("%s flag: %v", FlagHTTPAddr, err)
			}

			cfg, err := config.Load()
			if err != nil {
				log.Fatalf("config: %v", err)
			}
			if addr == "" {
				addr = cfg.HTTPAddr
			}

			client, err := wiki.NewClient(cfg.Wiki)
			if err != nil {
				log.Fatalf("wiki client: %v", err)
			}

			srv := server.New(client, server.Config{
				ServerInfo:     server.ServerInfo{Name: "pagebridge", Version: Version},
				ExportDir:      cfg.ExportDir,
				ExportMaxPages: cfg.ExportMaxPages,
			})

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if addr == "" {
				if err := server.ServeStdio(ctx, srv); err != nil && err != context.Canceled {
					log.Fatalf("stdio server: %v", err)
				}
				return
			}

			httpSrv := &http.Server{Addr: addr, Handler: srv.Handler()}
			go func() {
				<-ctx.Done()
				_ = httpSrv.Shutdown(context.Background())
			}()

			slog.Info("HTTP server started", "addr", addr)
			if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("HTTP server: %v", err)
			}
		},
	}
	cmd.Flags().String(FlagHTTPAddr, "", "(optional) HTTP listen address; empty serves stdio")

	return cmd
}

func init() {
	rootCmd.AddCommand(GetServeCmd())
}
