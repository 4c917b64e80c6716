package main

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabi-shiori/shiori/consts"
	"github.com/tabi-shiori/shiori/pkg/errors"
)

// runCLI executes the command tree in an empty working directory
func runCLI(t *testing.T, args ...string) (stdout, stderr string, code int) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	code = execute(cmd, &errOut)
	return out.String(), errOut.String(), code
}

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	for _, key := range []string{
		"GOOGLE_MAPS_API_KEY",
		"SHIORI_MAPS_API_KEY",
		"SHIORI_RENDER_TRIP",
		"SHIORI_RENDER_TRIP_FILE",
		"SHIORI_RENDER_FORMAT",
		"SHIORI_TELEMETRY_ENABLED",
	} {
		t.Setenv(key, "")
	}
	return dir
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"plain error", stderrors.New("boom"), 1},
		{"config invalid", errors.New(errors.ErrCodeConfigInvalid, "bad port"), errors.ExitCodeConfigValidation},
		{"config not found", errors.New(errors.ErrCodeConfigNotFound, "missing"), errors.ExitCodeConfigValidation},
		{"trip invalid", errors.New(errors.ErrCodeTripInvalid, "days empty"), errors.ExitCodeTripValidation},
		{"trip not found", errors.New(errors.ErrCodeTripNotFound, "nope"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func TestRender_Stdout(t *testing.T) {
	isolate(t)

	out, _, code := runCLI(t, "render", "--format", "markdown", "--output", "-")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "## ⛰ Day 1: 四国カルスト + 道後温泉\n")
	assert.Contains(t, out, "| 車関連 | 約8,800円 |\n")
}

func TestRender_DefaultFilename(t *testing.T) {
	dir := isolate(t)

	_, stderr, code := runCLI(t, "render")
	require.Equal(t, 0, code, stderr)

	path := filepath.Join(dir, "愛媛_1泊2日プラン.html")
	assert.FileExists(t, path)
	assert.Contains(t, stderr, "愛媛_1泊2日プラン.html")
}

func TestRender_OutputPath(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "out", "plan.json")

	_, stderr, code := runCLI(t, "render", "--trip", "ehime-route", "--format", "json", "--output", path)
	require.Equal(t, 0, code, stderr)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "愛媛 1泊2日プラン", doc["title"])
}

func TestRender_Failures(t *testing.T) {
	tests := []struct {
		name string
		args func(dir string) []string
		want int
	}{
		{
			name: "unknown trip",
			args: func(string) []string { return []string{"render", "--trip", "hokkaido", "--output", "-"} },
			want: 1,
		},
		{
			name: "unsupported format",
			args: func(string) []string { return []string{"render", "--format", "docx", "--output", "-"} },
			want: errors.ExitCodeConfigValidation,
		},
		{
			name: "explicit config missing",
			args: func(dir string) []string {
				return []string{"--config", filepath.Join(dir, "nope.yaml"), "render", "--output", "-"}
			},
			want: errors.ExitCodeConfigValidation,
		},
		{
			name: "invalid trip file",
			args: func(dir string) []string {
				path := filepath.Join(dir, "broken.yaml")
				require.NoError(t, os.WriteFile(path, []byte("title: broken\ndays: []\n"), 0644))
				return []string{"render", "--trip-file", path, "--output", "-"}
			},
			want: errors.ExitCodeTripValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			stdout, stderr, code := runCLI(t, tt.args(dir)...)
			assert.Equal(t, tt.want, code)
			assert.Empty(t, stdout)
			assert.Contains(t, stderr, "Error:")
		})
	}
}

func TestTrips(t *testing.T) {
	isolate(t)

	out, _, code := runCLI(t, "trips")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "* ehime ")
	assert.Contains(t, out, "  ehime-route ")
	assert.Contains(t, out, "愛媛 1泊2日プラン")
	assert.Contains(t, out, "2 day(s)")

	out, _, code = runCLI(t, "trips", "--examples")
	require.Equal(t, 0, code)
	assert.Equal(t, "kyoto.yaml\n", out)
}

func TestVersion(t *testing.T) {
	out, _, code := runCLI(t, "version")
	require.Equal(t, 0, code)
	assert.Contains(t, out, consts.ProjectName+" "+consts.Version)
	assert.Contains(t, out, "Git Commit:")
}
