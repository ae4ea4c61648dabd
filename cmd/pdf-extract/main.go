// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pdf-extract CLI. The root command
// extracts a transcript from one PDF; subcommands inspect documents and
// manage the recognition cache.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdf-extract/internal/document"
	"github.com/pdiddy/pdf-extract/internal/recognize"
	"github.com/pdiddy/pdf-extract/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

const (
	dotenvFile = ".env"
	secretsDir = ".secrets/"
)

// rootCmd extracts text from a single PDF.
var rootCmd = &cobra.Command{
	Use:   "pdf-extract <file.pdf>",
	Short: "Extract text from PDFs, using OCR for scanned pages",
	Long: `pdf-extract reads a PDF page by page. Pages with an embedded text layer
are copied as-is; pages without one are rendered at 300 DPI and sent to a
recognition backend (tesseract, tesseract-cli, openai, anthropic or gemini).

The page-labeled transcript is written to extracted_output.txt in the current
directory and printed to standard output.

A file named like a subcommand (info, cache, version) must be given with a
path prefix, e.g. pdf-extract ./info.`,
	Args:          cobra.ExactArgs(1),
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := secrets.LoadDotenv(dotenvFile); err != nil {
			return err
		}
		s, err := secrets.Load(secretsDir)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
	RunE: runExtract,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pdf-extract.yaml or ~/.config/pdf-extract/pdf-extract.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging on stderr")
	rootCmd.PersistentFlags().String("cache", "", "SQLite file caching recognition results (disabled when empty)")

	rootCmd.Flags().String("backend", "", "recognition backend: tesseract, tesseract-cli, openai, anthropic or gemini")
	rootCmd.Flags().String("model", "", "vision model for remote backends")
	rootCmd.Flags().String("language", "", "tesseract language, e.g. eng or eng+deu")

	bindFlag("recognition.backend", rootCmd.Flags().Lookup("backend"))
	bindFlag("recognition.model", rootCmd.Flags().Lookup("model"))
	bindFlag("recognition.language", rootCmd.Flags().Lookup("language"))
	bindFlag("cache.path", rootCmd.PersistentFlags().Lookup("cache"))

	setDefaults(viper.GetViper())
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pdf-extract")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pdf-extract"))
		}
	}

	bindEnv(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// reportError prints err for the user. Backend problems include the
// remediation text.
func reportError(w io.Writer, err error) {
	var ue *recognize.UnavailableError
	var nf *document.NotFoundError
	switch {
	case errors.As(err, &ue):
		fmt.Fprintln(w, ue.Reason)
		if ue.Err != nil {
			fmt.Fprintf(w, "(%v)\n", ue.Err)
		}
		if ue.Remedy != "" {
			fmt.Fprintln(w, ue.Remedy)
		}
	case errors.As(err, &nf):
		fmt.Fprintln(w, nf.Error())
	default:
		fmt.Fprintf(w, "Error: %v\n", err)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		reportError(os.Stdout, err)
		os.Exit(1)
	}
}
