package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/opckit/opckit/pkg/opc"
)

// Marshal converts a package graph to indented JSON bytes.
// Parts are sorted by partname for deterministic output.
func Marshal(pkg *opc.Package) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeTo(pkg, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile writes a package manifest to a JSON file.
// The file is created with 0644 permissions.
func WriteFile(pkg *opc.Package, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeTo(pkg, f)
}

// Write writes a package manifest as JSON to an io.Writer.
// Use Marshal for in-memory serialization or WriteFile for files.
func Write(pkg *opc.Package, w io.Writer) error {
	return writeTo(pkg, w)
}

// ReadFile reads a JSON manifest file.
func ReadFile(path string) (Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// Read decodes a JSON manifest from an io.Reader.
// Use ReadFile for files or pass bytes.NewReader for in-memory data.
func Read(r io.Reader) (Manifest, error) {
	var m Manifest
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return Manifest{}, fmt.Errorf("decode: %w", err)
	}
	return m, nil
}

func writeTo(pkg *opc.Package, w io.Writer) error {
	out := FromPackage(pkg)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
