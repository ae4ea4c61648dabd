// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdf-extract/pkg/types"
)

const envPrefix = "PDF_EXTRACT"

// bindFlag ties a viper key to a flag. Binding only fails for a nil flag,
// which is a programming error.
func bindFlag(key string, f *pflag.Flag) {
	if err := viper.BindPFlag(key, f); err != nil {
		panic(fmt.Sprintf("binding flag for %s: %v", key, err))
	}
}

// setDefaults registers the defaults of every configuration key.
func setDefaults(v *viper.Viper) {
	d := types.DefaultConfig()
	v.SetDefault("recognition.backend", string(d.Recognition.Backend))
	v.SetDefault("recognition.model", d.Recognition.Model)
	v.SetDefault("recognition.language", d.Recognition.Language)
	v.SetDefault("recognition.page_seg_mode", d.Recognition.PageSegMode)
	v.SetDefault("recognition.tesseract_path", d.Recognition.TesseractPath)
	v.SetDefault("recognition.base_url", d.Recognition.BaseURL)
	v.SetDefault("recognition.api_key", d.Recognition.APIKey)
	v.SetDefault("recognition.max_retries", d.Recognition.MaxRetries)
	v.SetDefault("cache.path", d.Cache.Path)
	v.SetDefault("log.level", d.LogLevel)
}

// bindEnv enables PDF_EXTRACT_ overrides, e.g. PDF_EXTRACT_RECOGNITION_BACKEND.
func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// configFrom builds the run configuration from v.
func configFrom(v *viper.Viper) types.Config {
	return types.Config{
		Recognition: types.RecognitionConfig{
			Backend:       types.RecognitionBackend(strings.ToLower(strings.TrimSpace(v.GetString("recognition.backend")))),
			Model:         v.GetString("recognition.model"),
			Language:      v.GetString("recognition.language"),
			PageSegMode:   v.GetInt("recognition.page_seg_mode"),
			TesseractPath: v.GetString("recognition.tesseract_path"),
			BaseURL:       v.GetString("recognition.base_url"),
			APIKey:        v.GetString("recognition.api_key"),
			MaxRetries:    v.GetInt("recognition.max_retries"),
		},
		Cache: types.CacheConfig{
			Path: v.GetString("cache.path"),
		},
		LogLevel: v.GetString("log.level"),
	}
}

// cacheVariant distinguishes recognition settings that change the output
// for the same page image.
func cacheVariant(cfg types.RecognitionConfig) string {
	return fmt.Sprintf("model=%s;lang=%s;psm=%d", cfg.Model, cfg.Language, cfg.PageSegMode)
}
