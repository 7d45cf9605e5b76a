package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-pageblocks/pkg/orchestrator"
	"github.com/goliatone/go-pageblocks/pkg/store"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the content document against the block schema",
	Long:  `Reports blocks of unknown kinds and field values the editor would reject.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.Content
		if len(args) > 0 {
			path = args[0]
		}
		problems, err := orchestrator.New(orchestrator.WithLogger(logger)).Validate(cmd.Context(), orchestrator.Request{
			Store: store.NewFileStore(path),
		})
		if err != nil {
			return err
		}
		for _, p := range problems {
			kind := string(p.Kind)
			if kind == "" {
				kind = "page"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s [%s]: %s\n", p.Path, kind, p.Message)
		}
		if len(problems) > 0 {
			return fmt.Errorf("%s: %d problem(s)", path, len(problems))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s is valid\n", path)
		return nil
	},
	Args: cobra.MaximumNArgs(1),
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
