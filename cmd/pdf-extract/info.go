// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdf-extract/internal/document"
)

var infoCmd = &cobra.Command{
	Use:   "info <file.pdf>",
	Short: "Print PDF metadata as YAML",
	Long: `Info reads the document structure and prints the page count, PDF
header version, encryption state and file size. No text is extracted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := document.Inspect(args[0])
		if err != nil {
			return err
		}

		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(info); err != nil {
			return fmt.Errorf("encoding info: %w", err)
		}
		return enc.Close()
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
