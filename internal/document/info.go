// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package document

import (
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Info describes a PDF without extracting any text.
type Info struct {
	Path      string `json:"path" yaml:"path"`
	Pages     int    `json:"pages" yaml:"pages"`
	Version   string `json:"version,omitempty" yaml:"version,omitempty"`
	Encrypted bool   `json:"encrypted" yaml:"encrypted"`
	FileSize  int64  `json:"file_size" yaml:"file_size"`
}

// Inspect reads the PDF structure at path with pdfcpu and reports its
// page count, header version, encryption state and size.
func Inspect(path string) (*Info, error) {
	if err := checkReadable(path); err != nil {
		return nil, err
	}

	st, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	ctx, err := api.ReadContextFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading PDF structure of %s: %w", path, err)
	}

	info := &Info{
		Path:      path,
		Pages:     ctx.PageCount,
		Encrypted: ctx.Encrypt != nil,
		FileSize:  st.Size(),
	}
	if ctx.HeaderVersion != nil {
		info.Version = ctx.HeaderVersion.String()
	}
	return info, nil
}
