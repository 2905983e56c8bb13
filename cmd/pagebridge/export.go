package main

import (
	"context"
	"log"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pagebridge/pagebridge/config"
	"github.com/pagebridge/pagebridge/export"
	"github.com/pagebridge/pagebridge/wiki"
)

const (
	FlagDir   = "dir"
	FlagIndex = "index"
)

// GetExportCmd returns the one-shot hierarchical export command.
func GetExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <root-page-id>",
		Short: "Export a page tree to Markdown files",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			dir, err := cmd.Flags().GetString(FlagDir)
			if err != nil {
				log.Fatalf("%s flag: %v", FlagDir, err)
			}
			indexPath, err := cmd.Flags().GetString(FlagIndex)
			if err != nil {
				log.Fatalf("%s flag: %v", FlagIndex, err)
			}

			cfg, err := config.Load()
			if err != nil {
				log.Fatalf("config: %v", err)
			}
			if dir == "" {
				dir = cfg.ExportDir
			}

			client, err := wiki.NewClient(cfg.Wiki)
			if err != nil {
				log.Fatalf("wiki client: %v", err)
			}

			opts := export.Options{Dir: dir, MaxPages: cfg.ExportMaxPages}
			if indexPath != "" {
				idx, err := export.OpenIndex(indexPath)
				if err != nil {
					log.Fatalf("export index: %v", err)
				}
				defer idx.Close()
				opts.Index = idx
			}

			exporter, err := export.NewExporter(client, opts)
			if err != nil {
				log.Fatalf("exporter: %v", err)
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			report, err := exporter.Run(ctx, args[0])
			if err != nil {
				log.Fatalf("export: %v", err)
			}

			slog.Info("export complete", "run", report.RunID,
				"pages", report.Pages, "failures", len(report.Failures), "dir", dir)
		},
	}
	cmd.Flags().String(FlagDir, "", "(optional) target directory, defaults to configured export dir")
	cmd.Flags().String(FlagIndex, "", "(optional) path of a bleve index to populate with exported pages")

	return cmd
}

func init() {
	rootCmd.AddCommand(GetExportCmd())
}
