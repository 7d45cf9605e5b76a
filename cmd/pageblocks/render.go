package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-pageblocks/pkg/orchestrator"
	"github.com/goliatone/go-pageblocks/pkg/render"
	"github.com/goliatone/go-pageblocks/pkg/store"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Build the static site",
	Long: `Renders the content document in view mode and writes index.html, the
stylesheet and a copy of the static directory into the output directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		orch, err := newOrchestrator(logger)
		if err != nil {
			return err
		}

		req := orchestrator.BuildRequest{
			Request: orchestrator.Request{
				Store:   store.NewFileStore(cfg.Content),
				Options: render.RenderOptions{Title: cfg.Title},
			},
			OutputDir: cfg.OutputDir,
		}
		if info, err := os.Stat(cfg.StaticDir); err == nil && info.IsDir() {
			req.Static = os.DirFS(cfg.StaticDir)
		}

		result, err := orch.Build(cmd.Context(), req)
		if err != nil {
			return err
		}
		for _, d := range result.Diagnostics {
			fmt.Fprintf(cmd.ErrOrStderr(), "skipped %s (%s): %s\n", d.Path, d.Kind, d.Message)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Site written to %s (%d files)\n", cfg.OutputDir, len(result.Files))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringP("out", "o", "dist", "output directory")
	renderCmd.Flags().String("title", "Home", "document title")
}
