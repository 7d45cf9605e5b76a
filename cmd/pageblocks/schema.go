package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-pageblocks/pkg/blocks"
	"github.com/goliatone/go-pageblocks/pkg/schema"
	"github.com/goliatone/go-pageblocks/pkg/store"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Export the content model as OpenAPI",
	Long: `Writes an OpenAPI 3 document describing the page fields, every block kind
and the edit host API.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		out, _ := cmd.Flags().GetString("out")

		doc, err := schema.OpenAPI(blocks.DefaultPageSchema(), schema.Info{})
		if err != nil {
			return err
		}
		data, err := schema.Marshal(doc, format)
		if err != nil {
			return err
		}
		if out == "" {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		if err := store.NewFileStore(out).Save(cmd.Context(), data); err != nil {
			return err
		}
		logger.Info("schema written", "path", out, "format", format)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.Flags().StringP("format", "f", "yaml", "output format (json or yaml)")
	schemaCmd.Flags().StringP("out", "o", "", "output file (stdout if empty)")
}
