//go:build mage

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/magefile/mage/sh"
)

// apiKeys maps each remote backend to the environment variable it reads.
var apiKeys = []struct{ backend, env string }{
	{"openai", "OPENAI_API_KEY"},
	{"anthropic", "ANTHROPIC_API_KEY"},
	{"gemini", "GEMINI_API_KEY"},
}

// Doctor reports which recognition backends are usable on this machine.
func Doctor() error {
	out, err := sh.Output("tesseract", "--version")
	if err != nil {
		fmt.Println("tesseract:  not found (brew install tesseract / apt-get install tesseract-ocr)")
	} else {
		first, _, _ := strings.Cut(out, "\n")
		fmt.Printf("tesseract:  %s\n", first)
	}

	for _, k := range apiKeys {
		state := "missing " + k.env
		if os.Getenv(k.env) != "" {
			state = "key set"
		} else if _, err := os.Stat(".secrets/" + k.backend + "-api-key"); err == nil {
			state = "key in .secrets/"
		}
		fmt.Printf("%-11s %s\n", k.backend+":", state)
	}
	return nil
}
