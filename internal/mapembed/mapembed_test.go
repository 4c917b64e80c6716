package mapembed

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabi-shiori/shiori/internal/model"
	"github.com/tabi-shiori/shiori/pkg/errors"
)

func TestURL(t *testing.T) {
	b := New("test-key", "ja", "jp")
	route := &model.Route{
		Origin:      "松山空港",
		Destination: "松山市駅",
		Waypoints:   []string{"道後温泉本館", "下灘駅"},
	}

	got, err := b.URL(route)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(got, DefaultBaseURL+"?key=test-key&origin="), got)
	assert.Contains(t, got, "&waypoints="+url.QueryEscape("道後温泉本館")+"%7C"+url.QueryEscape("下灘駅"))
	assert.True(t, strings.HasSuffix(got, "&language=ja&region=jp"), got)

	parsed, err := url.Parse(got)
	require.NoError(t, err)
	q := parsed.Query()
	assert.Equal(t, "松山空港", q.Get("origin"))
	assert.Equal(t, "松山市駅", q.Get("destination"))
	assert.Equal(t, "道後温泉本館|下灘駅", q.Get("waypoints"))
}

func TestURL_ParameterOrder(t *testing.T) {
	got, err := New("k", "ja", "jp").URL(&model.Route{Origin: "a", Destination: "b", Waypoints: []string{"c", "d"}})
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL+"?key=k&origin=a&destination=b&waypoints=c%7Cd&language=ja&region=jp", got)
}

func TestURL_RouteOverridesDefaults(t *testing.T) {
	b := New("k", "ja", "jp")
	got, err := b.URL(&model.Route{Origin: "a", Destination: "b", Language: "EN", Region: "us"})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(got, "&language=en&region=us"), got)
	assert.NotContains(t, got, "waypoints=")
}

func TestURL_OmitsEmptyOptionalParams(t *testing.T) {
	b := &Builder{BaseURL: "https://maps.example.test/embed", APIKey: "k"}
	got, err := b.URL(&model.Route{Origin: "a", Destination: "b"})
	require.NoError(t, err)
	assert.Equal(t, "https://maps.example.test/embed?key=k&origin=a&destination=b", got)
}

func TestURL_EmptyKeyStillBuilds(t *testing.T) {
	b := New("", "ja", "jp")
	assert.False(t, b.HasKey())

	got, err := b.URL(&model.Route{Origin: "a", Destination: "b"})
	require.NoError(t, err)
	assert.Contains(t, got, "?key=&origin=a")
}

func TestURL_Errors(t *testing.T) {
	tests := []struct {
		name    string
		builder *Builder
		route   *model.Route
	}{
		{"nil route", New("k", "", ""), nil},
		{"missing destination", New("k", "", ""), &model.Route{Origin: "a"}},
		{"bad language", New("k", "not a tag!", ""), &model.Route{Origin: "a", Destination: "b"}},
		{"bad region", New("k", "", "zz-top"), &model.Route{Origin: "a", Destination: "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.builder.URL(tt.route)
			require.Error(t, err)
			appErr, ok := errors.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, errors.ErrCodeMapEmbed, appErr.Code)
		})
	}
}

func TestHasKey(t *testing.T) {
	assert.True(t, New("abc", "", "").HasKey())
	assert.False(t, New("   ", "", "").HasKey())
}
