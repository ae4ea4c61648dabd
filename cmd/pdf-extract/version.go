package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdf-extract/internal/recognize"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of pdf-extract",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "pdf-extract %s\n", version)
		if v := recognize.TesseractVersion(); v != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "tesseract %s (linked)\n", v)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "tesseract library not linked (build with -tags tesseract)")
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
