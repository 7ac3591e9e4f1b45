package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// JSONCodec handles JSON import/export. JSON is the canonical form used for
// backups.
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

// Marshal encodes v as compact JSON
func (c *JSONCodec) Marshal(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}
	return data, nil
}

// Unmarshal decodes exactly one JSON value into v, rejecting unknown fields
// and trailing data.
func (c *JSONCodec) Unmarshal(data []byte, v any) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse JSON: trailing data after value")
	}
	return nil
}

// Parse imports a registry dump from JSON
func (c *JSONCodec) Parse(r io.Reader) (*Document, error) {
	var doc Document
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	return &doc, nil
}

// Encode writes v as JSON indented by two spaces
func (c *JSONCodec) Encode(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}

// Export exports a registry dump to JSON
func (c *JSONCodec) Export(doc *Document, w io.Writer) error {
	return c.Encode(w, doc)
}
