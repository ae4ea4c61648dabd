// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package recognize

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"

	"github.com/phuslu/log"
)

const tesseractRemedy = "Install Tesseract and add it to PATH.\n" +
	"  macOS:         brew install tesseract\n" +
	"  Ubuntu/Debian: apt-get install tesseract-ocr"

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(ctx context.Context, name string, args ...string) error
	RunPiped(ctx context.Context, name string, args []string, stdin io.Reader, stdout io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunSilent(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

func (o *osExecutor) RunPiped(ctx context.Context, name string, args []string, stdin io.Reader, stdout io.Writer) error {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}

var defaultExec = &osExecutor{}

// TesseractCLI recognizes pages by piping PNG data through the tesseract
// binary ("tesseract stdin stdout"). It needs no cgo, only the binary, so it
// works in builds without the tesseract tag.
type TesseractCLI struct {
	bin      string
	language string
	psm      int
	dpi      int
	exec     executor
	logger   *log.Logger
}

// NewTesseractCLI returns a recognizer that runs bin (default "tesseract").
func NewTesseractCLI(bin, language string, psm, dpi int, logger *log.Logger) *TesseractCLI {
	if bin == "" {
		bin = "tesseract"
	}
	return &TesseractCLI{
		bin:      bin,
		language: strings.Join(splitLanguages(language), "+"),
		psm:      psm,
		dpi:      dpi,
		exec:     defaultExec,
		logger:   logger,
	}
}

func (t *TesseractCLI) Name() string  { return "tesseract-cli" }
func (t *TesseractCLI) Label() string { return OCRLabel }

// Check verifies the binary is on PATH and answers --version.
func (t *TesseractCLI) Check(ctx context.Context) error {
	path, err := t.exec.LookPath(t.bin)
	if err != nil {
		return &UnavailableError{Backend: t.Name(), Reason: "Tesseract OCR not found.", Remedy: tesseractRemedy, Err: err}
	}
	if err := t.exec.RunSilent(ctx, path, "--version"); err != nil {
		return &UnavailableError{Backend: t.Name(), Reason: fmt.Sprintf("%s --version failed", path), Remedy: tesseractRemedy, Err: err}
	}
	t.logger.Debug().Str("binary", path).Msg("tesseract binary ready")
	return nil
}

func (t *TesseractCLI) Recognize(ctx context.Context, image []byte) (string, error) {
	var out bytes.Buffer
	if err := t.exec.RunPiped(ctx, t.bin, t.args(), bytes.NewReader(image), &out); err != nil {
		return "", fmt.Errorf("running %s: %w", t.bin, err)
	}
	return out.String(), nil
}

func (t *TesseractCLI) args() []string {
	args := []string{"stdin", "stdout", "--psm", strconv.Itoa(t.psm), "-l", t.language}
	if t.dpi > 0 {
		args = append(args, "--dpi", strconv.Itoa(t.dpi))
	}
	return args
}

// splitLanguages splits a "+"-joined language string. Empty means eng.
func splitLanguages(language string) []string {
	var langs []string
	for _, l := range strings.Split(language, "+") {
		if l = strings.TrimSpace(l); l != "" {
			langs = append(langs, l)
		}
	}
	if len(langs) == 0 {
		return []string{"eng"}
	}
	return langs
}
