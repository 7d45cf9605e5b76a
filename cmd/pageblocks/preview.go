package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-pageblocks/pkg/orchestrator"
	"github.com/goliatone/go-pageblocks/pkg/render"
	"github.com/goliatone/go-pageblocks/pkg/store"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Print the page in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		orch, err := newOrchestrator(logger)
		if err != nil {
			return err
		}
		edit, _ := cmd.Flags().GetBool("paths")
		mode := render.ModeView
		if edit {
			mode = render.ModeEdit
		}
		body, err := orch.Generate(cmd.Context(), orchestrator.Request{
			Store:    store.NewFileStore(cfg.Content),
			Renderer: "terminal",
			Options:  render.RenderOptions{Mode: mode},
		})
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), string(body))
		return err
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)
	previewCmd.Flags().Bool("paths", false, "annotate blocks with their content paths")
}
