// Package store persists canvas documents.
//
// A document is a named canvas snapshot with a UUID. Backends:
//   - [MemoryStore]: in-process, for tests and the default API server
//   - [FileStore]: one JSON file per document, for the CLI
//     (~/.config/rbcheck/canvases/)
//   - [MongoStore]: MongoDB collection, for shared API deployments
//
// Wrap any backend with [WithHooks] to report operations to the
// observability hooks.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/rbcheck/pkg/canvas"
	errs "github.com/matzehuels/rbcheck/pkg/errors"
	"github.com/matzehuels/rbcheck/pkg/io"
	"github.com/matzehuels/rbcheck/pkg/observability"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("not found")

// Document is a stored canvas.
type Document struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Snapshot  json.RawMessage `json:"snapshot"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// NewDocument creates a document with a fresh id holding c.
func NewDocument(name string, c *canvas.Canvas) (*Document, error) {
	now := time.Now().UTC()
	d := &Document{ID: uuid.NewString(), Name: name, CreatedAt: now, UpdatedAt: now}
	if err := d.SetCanvas(c); err != nil {
		return nil, err
	}
	return d, nil
}

// Canvas decodes the document's snapshot.
func (d *Document) Canvas() (*canvas.Canvas, error) {
	c, err := io.Decode(d.Snapshot, "json")
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "document %s", d.ID)
	}
	return c, nil
}

// SetCanvas replaces the snapshot with c and bumps UpdatedAt.
func (d *Document) SetCanvas(c *canvas.Canvas) error {
	data, err := io.Encode(c, "json")
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return fmt.Errorf("compact snapshot: %w", err)
	}
	d.Snapshot = buf.Bytes()
	d.UpdatedAt = time.Now().UTC()
	return nil
}

func (d *Document) clone() *Document {
	cp := *d
	cp.Snapshot = append(json.RawMessage(nil), d.Snapshot...)
	return &cp
}

// Store is the interface for document storage backends.
type Store interface {
	// Get returns the document with id, or ErrNotFound.
	Get(ctx context.Context, id string) (*Document, error)

	// Put inserts or replaces a document.
	Put(ctx context.Context, doc *Document) error

	// Delete removes a document, or returns ErrNotFound.
	Delete(ctx context.Context, id string) error

	// List returns all documents, most recently updated first.
	List(ctx context.Context) ([]*Document, error)

	// Close releases backend resources.
	Close() error
}

// checkID rejects ids that are not UUIDs before they reach a path or query.
func checkID(id string) error {
	return errs.ValidateCanvasID(id)
}

// instrumented reports every operation to the store hooks.
type instrumented struct {
	Store
	backend string
}

// WithHooks wraps s so each operation is reported to
// observability.Store() under the given backend name.
func WithHooks(s Store, backend string) Store {
	return &instrumented{Store: s, backend: backend}
}

func (s *instrumented) report(ctx context.Context, op string, start time.Time, err error) {
	observability.Store().OnStoreOp(ctx, s.backend, op, time.Since(start), err)
}

func (s *instrumented) Get(ctx context.Context, id string) (*Document, error) {
	start := time.Now()
	d, err := s.Store.Get(ctx, id)
	s.report(ctx, "get", start, err)
	return d, err
}

func (s *instrumented) Put(ctx context.Context, doc *Document) error {
	start := time.Now()
	err := s.Store.Put(ctx, doc)
	s.report(ctx, "put", start, err)
	return err
}

func (s *instrumented) Delete(ctx context.Context, id string) error {
	start := time.Now()
	err := s.Store.Delete(ctx, id)
	s.report(ctx, "delete", start, err)
	return err
}

func (s *instrumented) List(ctx context.Context) ([]*Document, error) {
	start := time.Now()
	docs, err := s.Store.List(ctx)
	s.report(ctx, "list", start, err)
	return docs, err
}
