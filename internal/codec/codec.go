// Package codec converts descriptors to and from their canonical textual forms.
package codec

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"aasregistry/internal/domain"
)

// Codec marshals single values in one textual format. Unmarshal is strict:
// unknown fields are an error. Encode writes the human-readable form.
type Codec interface {
	Format() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Encode(w io.Writer, v any) error
}

// Importer interface for importing registry dumps from various formats
type Importer interface {
	Parse(r io.Reader) (*Document, error)
	Format() string
}

// Exporter interface for exporting registry dumps to various formats
type Exporter interface {
	Export(doc *Document, w io.Writer) error
	Format() string
}

// Document is a dump of registry content: all shells (with their nested
// submodels) and all standalone submodels.
type Document struct {
	Shells    []domain.ShellDescriptor    `json:"shells" yaml:"shells"`
	Submodels []domain.SubmodelDescriptor `json:"submodels" yaml:"submodels"`
}

// ForFormat returns the codec for a format name ("json", "yaml", "yml")
func ForFormat(format string) (Codec, error) {
	switch strings.ToLower(format) {
	case "json":
		return NewJSONCodec(), nil
	case "yaml", "yml":
		return NewYAMLCodec(), nil
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

// ForPath picks a codec from a file extension, defaulting to JSON
func ForPath(path string) Codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return NewYAMLCodec()
	default:
		return NewJSONCodec()
	}
}
