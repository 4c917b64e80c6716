package configfiles

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabi-shiori/shiori/internal/config"
	"github.com/tabi-shiori/shiori/internal/itinerary"
)

func TestGetConfigExample(t *testing.T) {
	t.Setenv("GOOGLE_MAPS_API_KEY", "example-key")

	content, err := GetConfigExample()
	require.NoError(t, err)
	require.NotEmpty(t, content)

	cfg, err := config.Parse(content)
	require.NoError(t, err)
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "example-key", cfg.Maps.APIKey)
	assert.Equal(t, config.Default().Server, cfg.Server, "example mirrors the defaults")
}

func TestTripExamples(t *testing.T) {
	names := ListTripExamples()
	require.NotEmpty(t, names)

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			data, err := GetTripExample(name)
			require.NoError(t, err)

			_, err = itinerary.Parse(data)
			assert.NoError(t, err)
		})
	}
}

func TestWriteConfigExample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config", "shiori.yaml")

	require.NoError(t, WriteConfigExample(target))
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	want, _ := GetConfigExample()
	assert.Equal(t, want, data)

	assert.ErrorIs(t, WriteConfigExample(target), os.ErrExist)
}

func TestInitTripExamples(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "trips")

	created, err := InitTripExamples(dir)
	require.NoError(t, err)
	assert.Equal(t, len(ListTripExamples()), created)

	created, err = InitTripExamples(dir)
	require.NoError(t, err)
	assert.Zero(t, created, "existing files are kept")
}
