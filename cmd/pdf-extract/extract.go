// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdf-extract/internal/cache"
	"github.com/pdiddy/pdf-extract/internal/document"
	"github.com/pdiddy/pdf-extract/internal/extract"
	"github.com/pdiddy/pdf-extract/internal/logging"
	"github.com/pdiddy/pdf-extract/internal/recognize"
	"github.com/pdiddy/pdf-extract/internal/secrets"
)

func runExtract(cmd *cobra.Command, args []string) error {
	cfg := configFrom(viper.GetViper())
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		cfg.LogLevel = "debug"
	}

	logger, err := logging.New(cfg.LogLevel, os.Stderr)
	if err != nil {
		return err
	}

	r, err := recognize.New(cfg.Recognition, recognize.Options{
		Secrets: secrets.Resolver{Files: loadedSecrets},
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	if cfg.Cache.Path != "" {
		store, err := cache.Open(cfg.Cache.Path)
		if err != nil {
			return err
		}
		defer store.Close()
		logger.Debug().Str("path", store.Path()).Msg("recognition cache enabled")
		r = recognize.WithCache(r, store, cacheVariant(cfg.Recognition), logger)
	}

	out := cmd.OutOrStdout()
	transcript, err := extract.New(document.Open, r, out, logger).Run(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	_, err = extract.WriteTranscript(".", transcript, out)
	return err
}
