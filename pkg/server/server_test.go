package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-pageblocks/pkg/blocks"
	"github.com/goliatone/go-pageblocks/pkg/content"
	"github.com/goliatone/go-pageblocks/pkg/session"
	"github.com/goliatone/go-pageblocks/pkg/store"
)

const doc = `{
  "headline": "Home",
  "subtext": "Welcome",
  "blocks": [
    {"_template": "hero", "headline": "H", "subtext": "S", "background_color": "#051e26", "text_color": "white", "align": "center"},
    {"_template": "images", "left": {"src": "/a.jpg", "alt": "ocean"}, "right": {"src": "/b.jpg", "alt": "dunes"}}
  ]
}`

type fixture struct {
	server  *Server
	session *session.Session
	store   *store.MemoryStore
	root    string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mem := store.NewMemoryStore([]byte(doc))
	sess, err := session.Load(context.Background(), mem, blocks.DefaultPageSchema())
	require.NoError(t, err)

	root := t.TempDir()
	srv, err := New(sess,
		WithAssets(store.NewAssetDir(root)),
		WithStatic(fstest.MapFS{"robots.txt": {Data: []byte("User-agent: *\n")}}),
		WithTitle("Landing"),
	)
	require.NoError(t, err)
	return &fixture{server: srv, session: sess, store: mem, root: root}
}

func (f *fixture) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.server.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func TestEditPage(t *testing.T) {
	f := newFixture(t)
	w := f.do(t, http.MethodGet, "/", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	body := w.Body.String()
	assert.Contains(t, body, "<title>Landing</title>")
	assert.Contains(t, body, `data-pb-field="blocks.0.headline"`)
	assert.Contains(t, body, "pageblocks-editor.js")

	preview := f.do(t, http.MethodGet, "/preview", nil)
	require.Equal(t, http.StatusOK, preview.Code)
	assert.NotContains(t, preview.Body.String(), "data-pb-field")
}

func TestSetFieldAndSubmit(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/api/fields", map[string]any{"path": "blocks.0.headline", "value": "Changed"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var change changeResponse
	decodeBody(t, w, &change)
	assert.Equal(t, changeResponse{Path: "blocks.0.headline", Dirty: true}, change)

	w = f.do(t, http.MethodPost, "/api/submit", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var submitted alertsResponse
	decodeBody(t, w, &submitted)
	assert.Equal(t, []session.Alert{{Level: session.AlertSuccess, Message: session.SavedMessage}}, submitted.Alerts)
	assert.Contains(t, string(f.store.Bytes()), `"headline": "Changed"`)
}

func TestRejectedEdits(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/api/fields", map[string]any{"path": "blocks.0.background_color", "value": "#ff00ff"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var failed errorResponse
	decodeBody(t, w, &failed)
	assert.NotEmpty(t, failed.Error)

	w = f.do(t, http.MethodPost, "/api/fields", map[string]any{"path": "blocks..x", "value": "y"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodPost, "/api/blocks", map[string]any{"list": "blocks", "kind": "feature"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	assert.False(t, f.session.Dirty())
}

func TestBlockEndpoints(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/api/blocks", map[string]any{"list": "blocks", "index": 0, "kind": "paragraph"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var added changeResponse
	decodeBody(t, w, &added)
	assert.Equal(t, "blocks.0", added.Path)

	w = f.do(t, http.MethodPost, "/api/blocks/move", map[string]any{"list": "blocks", "from": 0, "to": 2})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = f.do(t, http.MethodPost, "/api/blocks/remove", map[string]any{"list": "blocks", "index": 0})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	views, err := f.session.Page().Blocks(content.BlocksPath)
	require.NoError(t, err)
	kinds := []content.Kind{}
	for _, view := range views {
		kinds = append(kinds, view.Kind)
	}
	assert.Equal(t, []content.Kind{content.KindImages, content.KindParagraph}, kinds)

	w = f.do(t, http.MethodPost, "/api/blocks/remove", map[string]any{"list": "blocks"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpload(t *testing.T) {
	f := newFixture(t)

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	require.NoError(t, form.WriteField("path", "blocks.1.left.src"))
	part, err := form.CreateFormFile("file", "../sunrise.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("jpeg"))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/uploads", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	w := httptest.NewRecorder()
	f.server.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var uploaded uploadResponse
	decodeBody(t, w, &uploaded)
	assert.Equal(t, uploadResponse{Stored: "/sunrise.jpg", Preview: "/sunrise.jpg"}, uploaded)

	data, err := os.ReadFile(filepath.Join(f.root, "sunrise.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", string(data))
	assert.Len(t, f.session.Uploads(), 1)
}

func TestUploadStoresTheWrittenBaseName(t *testing.T) {
	f := newFixture(t)

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	require.NoError(t, form.WriteField("path", "blocks.1.right.src"))
	part, err := form.CreateFormFile("file", `C:\fakepath\x.jpg`)
	require.NoError(t, err)
	_, err = part.Write([]byte("jpeg"))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/uploads", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	w := httptest.NewRecorder()
	f.server.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var uploaded uploadResponse
	decodeBody(t, w, &uploaded)
	assert.Equal(t, "/x.jpg", uploaded.Stored)

	_, err = os.Stat(filepath.Join(f.root, "x.jpg"))
	require.NoError(t, err)
	value, err := f.session.Get(content.MustPath("blocks.1.right.src"))
	require.NoError(t, err)
	assert.Equal(t, "/x.jpg", value)
}

func TestSubmitFailureReturnsAlerts(t *testing.T) {
	f := newFixture(t)
	f.store.FailSaves(errors.New("disk full"))

	w := f.do(t, http.MethodPost, "/api/submit", nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	var resp alertsResponse
	decodeBody(t, w, &resp)
	require.Len(t, resp.Alerts, 1)
	assert.Equal(t, session.AlertError, resp.Alerts[0].Level)
	assert.Contains(t, resp.Error, "disk full")
}

func TestContentSchemaAndAlerts(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/api/content", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var values map[string]any
	decodeBody(t, w, &values)
	assert.Equal(t, "Home", values["headline"])

	w = f.do(t, http.MethodGet, "/api/schema", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"home-blocks"`)

	w = f.do(t, http.MethodGet, "/api/schema?format=yaml", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/yaml", w.Header().Get("Content-Type"))

	w = f.do(t, http.MethodGet, "/api/alerts", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"alerts":[]}`, w.Body.String())
}

func TestAssetsStaticAndMetrics(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/assets/pageblocks-editor.js", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/blocks/move")

	w = f.do(t, http.MethodGet, "/robots.txt", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "User-agent: *\n", w.Body.String())

	f.do(t, http.MethodPost, "/api/fields", map[string]any{"path": "headline", "value": "X"})
	f.do(t, http.MethodPost, "/api/fields", map[string]any{"path": "blocks.0.align", "value": "right"})

	w = f.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	metrics := w.Body.String()
	assert.Contains(t, metrics, `pageblocks_edits_total{op="set",outcome="ok"} 1`)
	assert.Contains(t, metrics, `pageblocks_edits_total{op="set",outcome="rejected"} 1`)
}

func TestContentChanged(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.Save(ctx, []byte(`{"headline":"Outside","blocks":[]}`)))
	f.server.ContentChanged(ctx)
	assert.Equal(t, "Outside", f.session.Page().Headline())

	w := f.do(t, http.MethodGet, "/", nil)
	assert.True(t, strings.Contains(w.Body.String(), "Content reloaded"))

	require.NoError(t, f.session.Set(content.MustPath("headline"), "Draft"))
	require.NoError(t, f.store.Save(ctx, []byte(`{"headline":"Again","blocks":[]}`)))
	f.server.ContentChanged(ctx)
	assert.Equal(t, "Draft", f.session.Page().Headline())
}
