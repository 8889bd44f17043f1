package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/types"
)

var templatesFormat string

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the available resume templates",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := checkFormat(templatesFormat); err != nil {
			return err
		}
		if templatesFormat == formatJSON {
			return writeJSON(cmd.OutOrStdout(), "", types.Templates())
		}
		return observability.NewPrinter(cmd.OutOrStdout()).PrintTemplates(types.Templates())
	},
}

func init() {
	templatesCmd.Flags().StringVarP(&templatesFormat, "format", "f", formatTable, "Output format: table or json")
	rootCmd.AddCommand(templatesCmd)
}
