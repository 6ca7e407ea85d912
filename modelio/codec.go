// SPDX-License-Identifier: MIT

package modelio

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidDocument indicates a model document that cannot be decoded or
// does not describe a consistent graph.
var ErrInvalidDocument = errors.New("modelio: invalid document")

// Decode reads one document from r. Unknown fields are rejected.
func Decode(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var d Document
	if err := dec.Decode(&d); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("Decode: empty input: %w", ErrInvalidDocument)
		}
		return nil, fmt.Errorf("Decode: %v: %w", err, ErrInvalidDocument)
	}

	return &d, nil
}

// Load reads and decodes the document at path.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Load: %w", err)
	}
	defer f.Close()

	d, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("Load(%s): %w", path, err)
	}

	return d, nil
}

// Encode writes d to w as YAML with two-space indentation.
func Encode(w io.Writer, d *Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("Encode: %w", err)
	}

	return enc.Close()
}
