package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-pageblocks/pkg/blocks"
	"github.com/goliatone/go-pageblocks/pkg/prompt"
	"github.com/goliatone/go-pageblocks/pkg/session"
	"github.com/goliatone/go-pageblocks/pkg/store"
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit the page interactively in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(cmd)
		if err != nil {
			return err
		}
		editor := prompt.NewEditor(sess,
			prompt.WithDriver(prompt.NewSurveyDriver(cmd.OutOrStdout())),
			prompt.WithLogger(logger),
		)
		if err := editor.Run(cmd.Context()); err != nil && !errors.Is(err, prompt.ErrAborted) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().Bool("create", false, "start from an empty page when the document is missing")
}

func openSession(cmd *cobra.Command) (*session.Session, error) {
	options := []session.Option{session.WithLogger(logger)}
	create, _ := cmd.Flags().GetBool("create")
	if create || cfg.CreateMissing {
		options = append(options, session.WithCreateMissing())
	}
	return session.Load(cmd.Context(), store.NewFileStore(cfg.Content), blocks.DefaultPageSchema(), options...)
}
