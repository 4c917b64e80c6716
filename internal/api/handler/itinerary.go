package handler

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/tabi-shiori/shiori/consts"
	"github.com/tabi-shiori/shiori/internal/model"
	"github.com/tabi-shiori/shiori/internal/render"
	"github.com/tabi-shiori/shiori/pkg/logger"
)

// ItineraryHandler serves one itinerary in every supported format
type ItineraryHandler struct {
	renderer *render.Renderer
	name     string
	trip     *model.Trip
	cache    bool

	group singleflight.Group
	mu    sync.Mutex
	docs  map[render.Format]*document
}

// document is a rendered export plus its validator
type document struct {
	*render.Result
	etag string
}

// NewItineraryHandler creates a handler for trip. When cache is true the
// first successful export of each format is kept; failures are never cached.
func NewItineraryHandler(renderer *render.Renderer, name string, trip *model.Trip, cache bool) *ItineraryHandler {
	return &ItineraryHandler{
		renderer: renderer,
		name:     name,
		trip:     trip,
		cache:    cache,
		docs:     make(map[render.Format]*document),
	}
}

// Page serves the HTML itinerary inline
// GET /
func (h *ItineraryHandler) Page(c *gin.Context) {
	h.serve(c, render.FormatHTML, "inline")
}

// Export serves the itinerary as a download
// GET /export/:format
func (h *ItineraryHandler) Export(c *gin.Context) {
	format, err := render.ParseFormat(c.Param("format"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.serve(c, format, "attachment")
}

// Formats lists the export formats
// GET /export
func (h *ItineraryHandler) Formats(c *gin.Context) {
	formats := h.renderer.Manager().SupportedFormats()
	c.JSON(http.StatusOK, gin.H{
		"trip":    h.name,
		"formats": formats,
	})
}

// Health reports liveness
// GET /health
func (h *ItineraryHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"trip":    h.name,
		"version": consts.Version,
		"uptime":  consts.GetUptime().Round(time.Second).String(),
	})
}

func (h *ItineraryHandler) serve(c *gin.Context, format render.Format, disposition string) {
	doc, err := h.document(c.Request.Context(), format)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.Header("ETag", doc.etag)
	c.Header("Cache-Control", "no-cache")
	if etagMatches(c.GetHeader("If-None-Match"), doc.etag) {
		c.Status(http.StatusNotModified)
		return
	}

	if disposition == "attachment" {
		c.Header("Content-Disposition", contentDisposition(disposition, doc.Filename))
	}
	c.Data(http.StatusOK, doc.ContentType, doc.Content)
}

// document returns the rendered export for format, rendering at most once
// per format at a time. The shared render is detached from the request that
// started it; each caller stops waiting when its own context ends.
func (h *ItineraryHandler) document(ctx context.Context, format render.Format) (*document, error) {
	if doc := h.cached(format); doc != nil {
		return doc, nil
	}

	renderCtx := context.WithoutCancel(ctx)
	ch := h.group.DoChan(string(format), func() (any, error) {
		if doc := h.cached(format); doc != nil {
			return doc, nil
		}

		res, err := h.renderer.Render(renderCtx, h.name, h.trip, format)
		if err != nil {
			return nil, err
		}

		doc := &document{Result: res, etag: entityTag(res.Content)}
		if h.cache {
			h.mu.Lock()
			h.docs[format] = doc
			h.mu.Unlock()
		}
		return doc, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		if r.Shared {
			logger.Debug("Shared in-flight render", zap.String(logger.FieldFormat, string(format)))
		}
		return r.Val.(*document), nil
	}
}

func (h *ItineraryHandler) cached(format render.Format) *document {
	if !h.cache {
		return nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.docs[format]
}
