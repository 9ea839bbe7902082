package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/rbcheck/pkg/cache"
	errs "github.com/matzehuels/rbcheck/pkg/errors"
	"github.com/matzehuels/rbcheck/pkg/io"
	"github.com/matzehuels/rbcheck/pkg/observability"
	"github.com/matzehuels/rbcheck/pkg/store"
	"github.com/matzehuels/rbcheck/pkg/verify"
)

const validCanvas = `{
  "root": 0,
  "nodes": [
    {"id": 0, "label": 10, "black": true},
    {"id": 1, "label": 5, "black": false},
    {"id": 2, "label": 15, "black": false}
  ],
  "edges": [
    {"id": 0, "from": 0, "to": 1},
    {"id": 1, "from": 0, "to": 2}
  ]
}`

const redRootCanvas = `{
  "root": 0,
  "nodes": [{"id": 0, "label": 10, "black": false}],
  "edges": []
}`

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	s := New(Options{Cache: fc})
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func do(t *testing.T, ts *httptest.Server, method, path, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, ts.URL+path, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestVerifyEndpoint(t *testing.T) {
	_, ts := newTestServer(t)

	tests := []struct {
		name      string
		body      string
		wantOK    bool
		wantWhy   string
		wantStage string
	}{
		{"valid", `{"canvas": ` + validCanvas + `}`, true, "valid", ""},
		{"red root", `{"canvas": ` + redRootCanvas + `}`, false, "root_not_black", "root"},
		{"root override", `{"canvas": ` + validCanvas + `, "root": 1}`, false, "root_not_black", "root"},
		{"missing root", `{"canvas": ` + validCanvas + `, "root": 9}`, false, "no_root", "root"},
		{"empty", `{"canvas": {"nodes": [], "edges": []}}`, true, "empty_tree_valid", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, ts, http.MethodPost, "/v1/verify", tt.body)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d", resp.StatusCode)
			}
			got := decode[verifyResponse](t, resp)
			if got.OK != tt.wantOK || got.Reason != tt.wantWhy || got.Stage != tt.wantStage {
				t.Errorf("got ok=%v reason=%q stage=%q", got.OK, got.Reason, got.Stage)
			}
		})
	}
}

func TestVerifyEndpointUsesCache(t *testing.T) {
	_, ts := newTestServer(t)
	body := `{"canvas": ` + validCanvas + `}`

	first := decode[verifyResponse](t, do(t, ts, http.MethodPost, "/v1/verify", body))
	second := decode[verifyResponse](t, do(t, ts, http.MethodPost, "/v1/verify", body))
	if first.Cached || !second.Cached {
		t.Errorf("cached = %v then %v, want false then true", first.Cached, second.Cached)
	}
	if second.BlackHeight != first.BlackHeight {
		t.Errorf("black height changed: %d -> %d", first.BlackHeight, second.BlackHeight)
	}
}

func TestVerifyEndpointBadInput(t *testing.T) {
	_, ts := newTestServer(t)
	for _, body := range []string{`{`, `{"canvas": {"nodes": [`, `{}`, `{"canvas": {}, "extra": 1}`} {
		resp := do(t, ts, http.MethodPost, "/v1/verify", body)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, resp.StatusCode)
		}
	}
}

func TestInsertEndpoint(t *testing.T) {
	_, ts := newTestServer(t)

	resp := do(t, ts, http.MethodPost, "/v1/insert", `{"canvas": `+validCanvas+`, "label": 20}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	got := decode[insertResponse](t, resp)
	if n := len(got.Actions); n == 0 || got.Actions[n-1] != "place" {
		t.Errorf("actions = %v, want trailing place", got.Actions)
	}
	if got.Tree == nil || !got.Tree.Contains(20) {
		t.Fatal("response tree missing 20")
	}

	if len(got.Before) != 3 || len(got.After) != 4 {
		t.Errorf("positions: %d before, %d after", len(got.Before), len(got.After))
	}
	idx, _ := got.Tree.Lookup(20)
	if p := got.After[idx]; p.Column != 3 {
		t.Errorf("20 should be the rightmost column, got %+v", p)
	}

	c, err := io.Decode(got.Canvas, "json")
	if err != nil {
		t.Fatalf("decode returned canvas: %v", err)
	}
	if res := verify.Verify(c, c.Root()); !res.OK() {
		t.Errorf("returned canvas does not verify: %s %v", res.Reason, res.State.Flags())
	}
}

func TestInsertEndpointErrors(t *testing.T) {
	_, ts := newTestServer(t)

	t.Run("duplicate", func(t *testing.T) {
		resp := do(t, ts, http.MethodPost, "/v1/insert", `{"canvas": `+validCanvas+`, "label": 5}`)
		if resp.StatusCode != http.StatusConflict {
			t.Fatalf("status = %d, want 409", resp.StatusCode)
		}
		got := decode[insertResponse](t, resp)
		if len(got.Actions) != 1 || got.Actions[0] != "fail" {
			t.Errorf("actions = %v, want [fail]", got.Actions)
		}
		if got.Error == nil || got.Error.Code != errs.ErrCodeDuplicateLabel {
			t.Errorf("error = %+v", got.Error)
		}
	})

	t.Run("invalid canvas", func(t *testing.T) {
		resp := do(t, ts, http.MethodPost, "/v1/insert", `{"canvas": `+redRootCanvas+`, "label": 5}`)
		if resp.StatusCode != http.StatusUnprocessableEntity {
			t.Fatalf("status = %d, want 422", resp.StatusCode)
		}
		if got := decode[errorBody](t, resp); got.Code != errs.ErrCodeRootNotBlack {
			t.Errorf("code = %s", got.Code)
		}
	})

	t.Run("missing label", func(t *testing.T) {
		resp := do(t, ts, http.MethodPost, "/v1/insert", `{"canvas": `+validCanvas+`}`)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", resp.StatusCode)
		}
	})
}

func TestCanvasCRUD(t *testing.T) {
	_, ts := newTestServer(t)

	resp := do(t, ts, http.MethodPost, "/v1/canvases", `{"name": "demo", "canvas": `+validCanvas+`}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d", resp.StatusCode)
	}
	doc := decode[store.Document](t, resp)
	path := "/v1/canvases/" + doc.ID

	got := decode[store.Document](t, do(t, ts, http.MethodGet, path, ""))
	if got.Name != "demo" {
		t.Errorf("name = %q", got.Name)
	}

	list := decode[[]canvasSummary](t, do(t, ts, http.MethodGet, "/v1/canvases", ""))
	if len(list) != 1 || list[0].ID != doc.ID {
		t.Errorf("list = %+v", list)
	}

	vr := decode[verifyResponse](t, do(t, ts, http.MethodPost, path+"/verify", ""))
	if !vr.OK {
		t.Errorf("stored canvas verify = %s", vr.Reason)
	}
	// Stored canvases cache under their own id, apart from ad hoc requests.
	if again := decode[verifyResponse](t, do(t, ts, http.MethodPost, path+"/verify", "")); !again.Cached {
		t.Error("second stored verify should hit the cache")
	}
	if adhoc := decode[verifyResponse](t, do(t, ts, http.MethodPost, "/v1/verify", `{"canvas": `+validCanvas+`}`)); adhoc.Cached {
		t.Error("ad hoc verify should not share the stored canvas scope")
	}

	resp = do(t, ts, http.MethodPut, path, `{"canvas": `+redRootCanvas+`}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("put status = %d", resp.StatusCode)
	}
	updated := decode[store.Document](t, resp)
	if updated.Name != "demo" {
		t.Errorf("put should keep the name, got %q", updated.Name)
	}
	vr = decode[verifyResponse](t, do(t, ts, http.MethodPost, path+"/verify", ""))
	if vr.Reason != "root_not_black" {
		t.Errorf("after put reason = %s", vr.Reason)
	}

	resp = do(t, ts, http.MethodGet, path+"/render?format=dot", "")
	if resp.StatusCode != http.StatusOK || !strings.HasPrefix(resp.Header.Get("Content-Type"), "text/vnd.graphviz") {
		t.Errorf("render dot status = %d", resp.StatusCode)
	}
	if resp := do(t, ts, http.MethodGet, path+"/render?format=gif", ""); resp.StatusCode != http.StatusBadRequest {
		t.Errorf("render gif status = %d", resp.StatusCode)
	}

	if resp := do(t, ts, http.MethodDelete, path, ""); resp.StatusCode != http.StatusNoContent {
		t.Errorf("delete status = %d", resp.StatusCode)
	}
	resp = do(t, ts, http.MethodGet, path, "")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("get after delete status = %d", resp.StatusCode)
	}
	if got := decode[errorBody](t, resp); got.Code != errs.ErrCodeNotFound {
		t.Errorf("code = %s", got.Code)
	}
}

func TestCanvasBadID(t *testing.T) {
	_, ts := newTestServer(t)
	resp := do(t, ts, http.MethodGet, "/v1/canvases/not-a-uuid", "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

type recordingHTTPHooks struct {
	mu       sync.Mutex
	statuses []int
}

func (h *recordingHTTPHooks) OnRequest(context.Context, string, string) {}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.statuses = append(h.statuses, status)
}

func TestHTTPHooks(t *testing.T) {
	rec := &recordingHTTPHooks{}
	observability.SetHTTPHooks(rec)
	defer observability.Reset()

	s := New(Options{})
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/verify", bytes.NewBufferString("{")))

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.statuses) != 2 || rec.statuses[0] != 200 || rec.statuses[1] != 400 {
		t.Errorf("statuses = %v, want [200 400]", rec.statuses)
	}
}

func TestListenAndServeShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- New(Options{}).ListenAndServe(ctx, "127.0.0.1:0") }()
	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ListenAndServe() = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
