package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/rbcheck/pkg/canvas"
	errs "github.com/matzehuels/rbcheck/pkg/errors"
	"github.com/matzehuels/rbcheck/pkg/rbtree"
)

// WriteJSON encodes a canvas snapshot as indented JSON and writes it to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(c *canvas.Canvas, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fromCanvas(c)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteTOML encodes a canvas snapshot as TOML and writes it to w.
func WriteTOML(c *canvas.Canvas, w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(fromCanvas(c)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Export writes a canvas snapshot to path, choosing the encoder from the
// file extension.
func Export(c *canvas.Canvas, path string) error {
	if err := errs.ValidateSnapshotPath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if isTOML(path) {
		return WriteTOML(c, f)
	}
	return WriteJSON(c, f)
}

// Encode returns the canvas snapshot in the given format ("json" or "toml").
func Encode(c *canvas.Canvas, format string) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch format {
	case "", "json":
		err = WriteJSON(c, &buf)
	case "toml":
		err = WriteTOML(c, &buf)
	default:
		return nil, errs.New(errs.ErrCodeInvalidFormat, "unsupported snapshot format %q", format)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeTree serializes a linked tree array as compact JSON.
func EncodeTree(t *rbtree.Tree) ([]byte, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("encode tree: %w", err)
	}
	return data, nil
}
