package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/rbcheck/pkg/canvas"
	errs "github.com/matzehuels/rbcheck/pkg/errors"
	"github.com/matzehuels/rbcheck/pkg/rbtree"
)

// ReadJSON decodes a JSON snapshot from r into a canvas.
//
// ReadJSON returns an error if the JSON is malformed, if two nodes or two
// edges share an id, or if an edge or the root refers to a node that is not
// present. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*canvas.Canvas, error) {
	var s snapshot
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return s.toCanvas()
}

// ReadTOML decodes a TOML snapshot from r into a canvas.
// It applies the same validation as [ReadJSON].
func ReadTOML(r io.Reader) (*canvas.Canvas, error) {
	var s snapshot
	if _, err := toml.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return s.toCanvas()
}

// Import reads the snapshot at path, choosing the decoder from the file
// extension.
func Import(path string) (*canvas.Canvas, error) {
	if err := errs.ValidateSnapshotPath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "snapshot %s not found", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var c *canvas.Canvas
	if isTOML(path) {
		c, err = ReadTOML(f)
	} else {
		c, err = ReadJSON(f)
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "read %s", path)
	}
	return c, nil
}

// Decode reads a snapshot from raw bytes in the given format ("json" or
// "toml").
func Decode(data []byte, format string) (*canvas.Canvas, error) {
	var (
		c   *canvas.Canvas
		err error
	)
	switch strings.ToLower(format) {
	case "", "json":
		c, err = ReadJSON(bytes.NewReader(data))
	case "toml":
		c, err = ReadTOML(bytes.NewReader(data))
	default:
		return nil, errs.New(errs.ErrCodeInvalidFormat, "unsupported snapshot format %q", format)
	}
	if err != nil && errs.GetCode(err) == "" {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode snapshot")
	}
	return c, err
}

// DecodeTree decodes a tree written by [EncodeTree] and rebuilds its label
// index.
func DecodeTree(data []byte) (*rbtree.Tree, error) {
	var t rbtree.Tree
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("decode tree: %w", err)
	}
	if err := checkShape(&t); err != nil {
		return nil, fmt.Errorf("decode tree: %w", err)
	}
	t.Reindex()
	return &t, nil
}

// checkShape rejects arenas whose structural links could not have come from
// [EncodeTree]: out-of-range indices, a node reached twice from the root, or
// a parent link that disagrees with the child link pointing at it.
func checkShape(t *rbtree.Tree) error {
	inRange := func(idx int) bool { return idx == rbtree.None || (idx >= 0 && idx < len(t.Nodes)) }
	if !inRange(t.Root) {
		return fmt.Errorf("root %d out of range", t.Root)
	}
	for i, n := range t.Nodes {
		if !inRange(n.Parent) || !inRange(n.Left) || !inRange(n.Right) {
			return fmt.Errorf("node %d: link out of range", i)
		}
	}
	if t.Root == rbtree.None {
		return nil
	}
	if p := t.Nodes[t.Root].Parent; p != rbtree.None {
		return fmt.Errorf("root %d has parent %d", t.Root, p)
	}

	seen := make([]bool, len(t.Nodes))
	stack := []int{t.Root}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[idx] {
			return fmt.Errorf("node %d reached twice", idx)
		}
		seen[idx] = true
		for _, child := range [2]int{t.Nodes[idx].Left, t.Nodes[idx].Right} {
			if child == rbtree.None {
				continue
			}
			if t.Nodes[child].Parent != idx {
				return fmt.Errorf("node %d: parent %d, want %d", child, t.Nodes[child].Parent, idx)
			}
			stack = append(stack, child)
		}
	}
	return nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}
