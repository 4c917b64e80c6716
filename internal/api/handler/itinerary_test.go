package handler

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"mime"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabi-shiori/shiori/internal/api/middleware"
	"github.com/tabi-shiori/shiori/internal/itinerary"
	"github.com/tabi-shiori/shiori/internal/mapembed"
	"github.com/tabi-shiori/shiori/internal/render"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// countingExporter wraps an exporter and counts export calls.
// failures makes the first n calls fail.
type countingExporter struct {
	render.Exporter
	calls    atomic.Int32
	failures int32
}

func (e *countingExporter) Export(ctx context.Context, page *render.Page) ([]byte, error) {
	n := e.calls.Add(1)
	if n <= e.failures {
		return nil, stderrors.New("exporter unavailable")
	}
	return e.Exporter.Export(ctx, page)
}

// gatedExporter blocks each export until release is closed or ctx ends
type gatedExporter struct {
	render.Exporter
	calls   atomic.Int32
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func newGatedExporter(inner render.Exporter) *gatedExporter {
	return &gatedExporter{
		Exporter: inner,
		started:  make(chan struct{}),
		release:  make(chan struct{}),
	}
}

func (e *gatedExporter) Export(ctx context.Context, page *render.Page) ([]byte, error) {
	e.calls.Add(1)
	e.once.Do(func() { close(e.started) })
	select {
	case <-e.release:
		return e.Exporter.Export(ctx, page)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

type fixture struct {
	router   *gin.Engine
	markdown *countingExporter
	text     *countingExporter
}

func newFixture(t *testing.T, cache bool) *fixture {
	t.Helper()

	f := &fixture{
		markdown: &countingExporter{Exporter: render.NewMarkdownExporter()},
		text:     &countingExporter{Exporter: render.NewTextExporter(render.TextOptions{}), failures: 1},
	}

	manager := render.NewManager()
	manager.Register(render.FormatHTML, render.NewHTMLExporter())
	manager.Register(render.FormatJSON, render.NewJSONExporter())
	manager.Register(render.FormatMarkdown, f.markdown)
	manager.Register(render.FormatText, f.text)

	trip, err := itinerary.Lookup(itinerary.Ehime)
	require.NoError(t, err)

	h := NewItineraryHandler(
		render.NewRenderer(manager, mapembed.New("test-key", "ja", "jp")),
		itinerary.Ehime, trip, cache,
	)

	r := gin.New()
	r.Use(middleware.ErrorHandler(false))
	r.GET("/", h.Page)
	r.GET("/export", h.Formats)
	r.GET("/export/:format", h.Export)
	r.GET("/health", h.Health)
	f.router = r
	return f
}

func (f *fixture) get(path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestItineraryHandler_Page(t *testing.T) {
	f := newFixture(t, true)

	w := f.get("/", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Empty(t, w.Header().Get("Content-Disposition"), "the page is shown inline")
	assert.NotEmpty(t, w.Header().Get("ETag"))
	assert.Contains(t, w.Body.String(), "愛媛 1泊2日プラン")
}

func TestItineraryHandler_Export(t *testing.T) {
	f := newFixture(t, true)

	w := f.get("/export/md", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/markdown; charset=utf-8", w.Header().Get("Content-Type"))

	disposition, params, err := mime.ParseMediaType(w.Header().Get("Content-Disposition"))
	require.NoError(t, err)
	assert.Equal(t, "attachment", disposition)
	assert.Equal(t, "愛媛_1泊2日プラン.md", params["filename"])
	assert.Contains(t, w.Body.String(), "# ")
}

func TestItineraryHandler_UnsupportedFormat(t *testing.T) {
	f := newFixture(t, true)

	w := f.get("/export/docx", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "E2002", body["code"])
}

func TestItineraryHandler_NotRegisteredFormat(t *testing.T) {
	f := newFixture(t, true)

	// pdf parses but the fixture registers no PDF exporter
	w := f.get("/export/pdf", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestItineraryHandler_Cache(t *testing.T) {
	t.Run("enabled", func(t *testing.T) {
		f := newFixture(t, true)

		first := f.get("/export/markdown", nil)
		second := f.get("/export/markdown", nil)

		assert.Equal(t, http.StatusOK, second.Code)
		assert.Equal(t, first.Body.String(), second.Body.String())
		assert.Equal(t, int32(1), f.markdown.calls.Load())
	})

	t.Run("disabled", func(t *testing.T) {
		f := newFixture(t, false)

		f.get("/export/markdown", nil)
		f.get("/export/markdown", nil)

		assert.Equal(t, int32(2), f.markdown.calls.Load())
	})

	t.Run("failures are not cached", func(t *testing.T) {
		f := newFixture(t, true)

		assert.Equal(t, http.StatusInternalServerError, f.get("/export/text", nil).Code)
		assert.Equal(t, http.StatusOK, f.get("/export/text", nil).Code)
		assert.Equal(t, http.StatusOK, f.get("/export/text", nil).Code)
		assert.Equal(t, int32(2), f.text.calls.Load())
	})
}

func TestItineraryHandler_ConcurrentRequests(t *testing.T) {
	f := newFixture(t, true)

	var wg sync.WaitGroup
	codes := make([]int, 16)
	for i := range codes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			codes[i] = f.get("/export/markdown", nil).Code
		}(i)
	}
	wg.Wait()

	for _, code := range codes {
		assert.Equal(t, http.StatusOK, code)
	}
	assert.Equal(t, int32(1), f.markdown.calls.Load())
}

func TestItineraryHandler_NotModified(t *testing.T) {
	f := newFixture(t, true)

	etag := f.get("/", nil).Header().Get("ETag")
	require.NotEmpty(t, etag)

	w := f.get("/", http.Header{"If-None-Match": {etag}})
	assert.Equal(t, http.StatusNotModified, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestItineraryHandler_Formats(t *testing.T) {
	f := newFixture(t, true)

	w := f.get("/export", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Trip    string   `json:"trip"`
		Formats []string `json:"formats"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, itinerary.Ehime, body.Trip)
	assert.Equal(t, []string{"html", "json", "markdown", "text"}, body.Formats)
}

func TestItineraryHandler_Health(t *testing.T) {
	f := newFixture(t, true)

	w := f.get("/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, itinerary.Ehime, body["trip"])
}

func TestItineraryHandler_CallerDisconnect(t *testing.T) {
	gated := newGatedExporter(render.NewMarkdownExporter())
	manager := render.NewManager()
	manager.Register(render.FormatMarkdown, gated)

	trip, err := itinerary.Lookup(itinerary.Ehime)
	require.NoError(t, err)
	h := NewItineraryHandler(
		render.NewRenderer(manager, mapembed.New("test-key", "ja", "jp")),
		itinerary.Ehime, trip, true,
	)

	r := gin.New()
	r.Use(middleware.ErrorHandler(false))
	r.GET("/export/:format", h.Export)

	// The first caller starts the render, then goes away
	ctx, cancel := context.WithCancel(context.Background())
	firstDone := make(chan int, 1)
	go func() {
		req := httptest.NewRequest(http.MethodGet, "/export/markdown", nil).WithContext(ctx)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		firstDone <- w.Code
	}()

	<-gated.started
	cancel()
	assert.Equal(t, http.StatusInternalServerError, <-firstDone)

	secondDone := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/export/markdown", nil))
		secondDone <- w
	}()
	close(gated.release)

	w := <-secondDone
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "愛媛 1泊2日の旅")
	assert.Equal(t, int32(1), gated.calls.Load(), "the render outlives the caller that started it")
}

func TestItineraryHandler_DocumentHonoursCallerContext(t *testing.T) {
	gated := newGatedExporter(render.NewMarkdownExporter())
	manager := render.NewManager()
	manager.Register(render.FormatMarkdown, gated)

	trip, err := itinerary.Lookup(itinerary.Ehime)
	require.NoError(t, err)
	h := NewItineraryHandler(
		render.NewRenderer(manager, mapembed.New("test-key", "ja", "jp")),
		itinerary.Ehime, trip, true,
	)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := h.document(ctx, render.FormatMarkdown)
		errCh <- err
	}()

	<-gated.started
	cancel()
	assert.ErrorIs(t, <-errCh, context.Canceled)

	close(gated.release)
	doc, err := h.document(context.Background(), render.FormatMarkdown)
	require.NoError(t, err)
	assert.NotEmpty(t, doc.Content)
}
