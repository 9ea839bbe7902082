package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/rbcheck/pkg/cache"
	"github.com/matzehuels/rbcheck/pkg/canvas"
	errs "github.com/matzehuels/rbcheck/pkg/errors"
	"github.com/matzehuels/rbcheck/pkg/io"
	"github.com/matzehuels/rbcheck/pkg/rbtree"
	"github.com/matzehuels/rbcheck/pkg/render/nodelink"
	"github.com/matzehuels/rbcheck/pkg/store"
	"github.com/matzehuels/rbcheck/pkg/verify"
)

type verifyRequest struct {
	Canvas json.RawMessage `json:"canvas"`
	// Root overrides the snapshot's root when set.
	Root *int `json:"root,omitempty"`
}

type verifyResponse struct {
	OK          bool         `json:"ok"`
	Reason      string       `json:"reason"`
	Stage       string       `json:"stage,omitempty"`
	Message     string       `json:"message"`
	Flags       []string     `json:"flags"`
	Visited     int          `json:"visited"`
	BlackHeight int          `json:"black_height,omitempty"`
	Cached      bool         `json:"cached"`
	Tree        *rbtree.Tree `json:"tree,omitempty"`
}

func newVerifyResponse(res verify.Result, cached bool) verifyResponse {
	flags := res.State.Flags()
	if flags == nil {
		flags = []string{}
	}
	return verifyResponse{
		OK:          res.OK(),
		Reason:      string(res.Reason),
		Stage:       string(res.Stage),
		Message:     res.Message(),
		Flags:       flags,
		Visited:     res.State.NumVisited,
		BlackHeight: res.BlackHeight,
		Cached:      cached,
		Tree:        res.Tree,
	}
}

type insertRequest struct {
	Canvas json.RawMessage `json:"canvas"`
	Root   *int            `json:"root,omitempty"`
	Label  *int            `json:"label"`
}

type insertResponse struct {
	Actions     []string        `json:"actions"`
	BlackHeight int             `json:"black_height,omitempty"`
	Tree        *rbtree.Tree    `json:"tree,omitempty"`
	Canvas      json.RawMessage `json:"canvas,omitempty"`
	Error       *errorBody      `json:"error,omitempty"`

	// Positions are layout hints keyed by tree index, before and after the
	// insertion, for clients that animate node movement.
	Before map[int]rbtree.Position `json:"before,omitempty"`
	After  map[int]rbtree.Position `json:"after,omitempty"`
}

type canvasRequest struct {
	Name   string          `json:"name"`
	Canvas json.RawMessage `json:"canvas"`
}

type canvasSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	UpdatedAt string `json:"updated_at"`
}

func decodeCanvas(raw json.RawMessage) (*canvas.Canvas, error) {
	if len(raw) == 0 {
		return nil, errs.New(errs.ErrCodeInvalidInput, "canvas is required")
	}
	return io.Decode(raw, "json")
}

func rootOf(c *canvas.Canvas, override *int) int {
	if override != nil {
		return *override
	}
	return c.Root()
}

func (s *Server) verified(r *http.Request, c *canvas.Canvas, root int) (verify.Result, bool, error) {
	return cache.Verified(r.Context(), s.cache, s.keyer, c, root)
}

// canvasKeyer scopes cache entries of a stored canvas to its document id.
func (s *Server) canvasKeyer(id string) cache.Keyer {
	return cache.NewScopedKeyer(s.keyer, "canvas:"+id+":")
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	c, err := decodeCanvas(req.Canvas)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, cached, err := s.verified(r, c, rootOf(c, req.Root))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newVerifyResponse(res, cached))
}

func (s *Server) handleInsert(w http.ResponseWriter, r *http.Request) {
	var req insertRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Label == nil {
		s.writeError(w, r, errs.New(errs.ErrCodeInvalidLabel, "label is required"))
		return
	}
	c, err := decodeCanvas(req.Canvas)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, _, err := s.verified(r, c, rootOf(c, req.Root))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !res.OK() {
		s.writeError(w, r, res.Err())
		return
	}

	before := res.Tree.Positions()
	t := res.Tree.Clone()
	actions, after, err := verify.Insert(r.Context(), t, *req.Label)
	if errs.Is(err, errs.ErrCodeDuplicateLabel) {
		writeJSON(w, http.StatusConflict, insertResponse{
			Actions: actions.Strings(),
			Error:   &errorBody{Code: errs.ErrCodeDuplicateLabel, Error: errs.UserMessage(err)},
		})
		return
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	snap, err := io.Encode(canvas.FromTree(t), "json")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, insertResponse{
		Actions:     actions.Strings(),
		BlackHeight: after.BlackHeight,
		Tree:        t,
		Canvas:      snap,
		Before:      before,
		After:       t.Positions(),
	})
}

func (s *Server) handleListCanvases(w http.ResponseWriter, r *http.Request) {
	docs, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := make([]canvasSummary, len(docs))
	for i, d := range docs {
		out[i] = canvasSummary{ID: d.ID, Name: d.Name, UpdatedAt: d.UpdatedAt.Format(time.RFC3339)}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateCanvas(w http.ResponseWriter, r *http.Request) {
	var req canvasRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	c, err := decodeCanvas(req.Canvas)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	doc, err := store.NewDocument(req.Name, c)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.store.Put(r.Context(), doc); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

func (s *Server) handleGetCanvas(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handlePutCanvas(w http.ResponseWriter, r *http.Request) {
	var req canvasRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	c, err := decodeCanvas(req.Canvas)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	doc, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Name != "" {
		doc.Name = req.Name
	}
	if err := doc.SetCanvas(c); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.store.Put(r.Context(), doc); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleDeleteCanvas(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) storedCanvas(r *http.Request) (*canvas.Canvas, error) {
	doc, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return nil, err
	}
	return doc.Canvas()
}

func (s *Server) handleVerifyCanvas(w http.ResponseWriter, r *http.Request) {
	c, err := s.storedCanvas(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, cached, err := cache.Verified(r.Context(), s.cache, s.canvasKeyer(chi.URLParam(r, "id")), c, c.Root())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newVerifyResponse(res, cached))
}

func (s *Server) handleRenderCanvas(w http.ResponseWriter, r *http.Request) {
	c, err := s.storedCanvas(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = "svg"
	}
	if format != "svg" && format != "dot" {
		s.writeError(w, r, errs.New(errs.ErrCodeInvalidFormat, "unsupported render format %q", format))
		return
	}
	detailed, _ := strconv.ParseBool(q.Get("detailed"))
	opts := nodelink.DefaultOptions()
	opts.Detailed = detailed

	dot := nodelink.CanvasToDOT(c, opts)
	if format == "dot" {
		w.Header().Set("Content-Type", "text/vnd.graphviz")
		_, _ = w.Write([]byte(dot))
		return
	}

	ctx := r.Context()
	key := s.keyer.RenderKey(cache.Hash([]byte(dot)), cache.RenderKeyOpts{Format: format, Detailed: detailed, Highlight: opts.Highlight})
	svg, hit, err := s.cache.Get(ctx, key)
	if err != nil || !hit {
		svg, err = nodelink.RenderSVG(ctx, dot)
		if err != nil {
			s.writeError(w, r, errs.Wrap(errs.ErrCodeInternal, err, "render canvas"))
			return
		}
		_ = s.cache.Set(ctx, key, svg, cache.RenderTTL)
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(svg)
}
