package server

import (
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabi-shiori/shiori/internal/api/handler"
	"github.com/tabi-shiori/shiori/internal/config"
	"github.com/tabi-shiori/shiori/internal/itinerary"
	"github.com/tabi-shiori/shiori/internal/mapembed"
	"github.com/tabi-shiori/shiori/internal/render"
	"github.com/tabi-shiori/shiori/pkg/logger"
)

func init() {
	logger.Init(logger.Config{
		Level:  "error",
		Format: "text",
	})
}

func newTestServer(t *testing.T, cfg *config.Config) *Server {
	t.Helper()

	trip, err := itinerary.Lookup(itinerary.Ehime)
	require.NoError(t, err)

	manager := render.NewManager()
	manager.Register(render.FormatHTML, render.NewHTMLExporter())
	manager.Register(render.FormatMarkdown, render.NewMarkdownExporter())
	h := handler.NewItineraryHandler(render.NewRenderer(manager, mapembed.New("", "ja", "jp")), itinerary.Ehime, trip, true)

	return New(cfg, h, nil)
}

func localConfig() *config.Config {
	cfg := config.Default()
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 0
	return cfg
}

func TestServer_New(t *testing.T) {
	cfg := localConfig()
	srv := newTestServer(t, cfg)

	require.NotNil(t, srv)
	assert.Same(t, cfg, srv.cfg)
	assert.NotNil(t, srv.router)
	assert.Same(t, srv.router, srv.Router())
	assert.False(t, srv.router.RedirectTrailingSlash)
}

func TestServer_DebugMode(t *testing.T) {
	cfg := localConfig()
	cfg.Server.Debug = true
	newTestServer(t, cfg)
	assert.Equal(t, gin.DebugMode, gin.Mode())

	cfg.Server.Debug = false
	newTestServer(t, cfg)
	assert.Equal(t, gin.ReleaseMode, gin.Mode())
}

func TestServer_SetupRoutes(t *testing.T) {
	srv := newTestServer(t, localConfig())
	srv.SetupRoutes()

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestServer_StartAndStop(t *testing.T) {
	srv := newTestServer(t, localConfig())
	srv.SetupRoutes()

	require.NoError(t, srv.Start())
	addr := srv.Addr()
	require.NotEmpty(t, addr)

	resp, err := http.Get("http://" + addr + "/export/markdown")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "愛媛")

	require.NoError(t, srv.Stop())
	_, err = http.Get("http://" + addr + "/health")
	assert.Error(t, err, "server no longer accepts connections")
}

func TestServer_StartAddressInUse(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	cfg := localConfig()
	cfg.Server.Port = ln.Addr().(*net.TCPAddr).Port

	srv := newTestServer(t, cfg)
	assert.Error(t, srv.Start())
	assert.Empty(t, srv.Addr())
}

func TestServer_StopBeforeStart(t *testing.T) {
	srv := newTestServer(t, localConfig())
	assert.NoError(t, srv.Stop())
}

func TestServer_WriteTimeout(t *testing.T) {
	cfg := localConfig()
	srv := newTestServer(t, cfg)

	cfg.Render.PDF.TimeoutSeconds = 60
	assert.Equal(t, 70*time.Second, srv.writeTimeout())

	cfg.Render.PDF.TimeoutSeconds = 5
	assert.Equal(t, defaultWriteTimeout, srv.writeTimeout())
}
