package itinerary

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabi-shiori/shiori/internal/model"
	"github.com/tabi-shiori/shiori/pkg/errors"
)

func TestBuiltinTrips_Valid(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			trip, err := Lookup(name)
			require.NoError(t, err)
			require.NoError(t, trip.Validate())

			require.NotEmpty(t, trip.Days)
			for i, d := range trip.Days {
				assert.Equal(t, i+1, d.Day)
				for j := 1; j < len(d.Schedule); j++ {
					assert.LessOrEqual(t, d.Schedule[j-1].Time, d.Schedule[j].Time,
						"day %d entry %d", d.Day, j)
				}
			}
		})
	}
}

func TestEhime_Content(t *testing.T) {
	trip, err := Lookup(Ehime)
	require.NoError(t, err)

	require.Len(t, trip.Days, 2)
	assert.Len(t, trip.Days[0].Schedule, 9)
	assert.Len(t, trip.Days[1].Schedule, 10)
	assert.Equal(t, "絶景と癒やしを巡る、よくばりプラン", trip.Page.Subtitle)
	assert.Equal(t, "約36,300円／人", trip.Budget.Total)
	assert.Equal(t, "約8,800円", trip.Budget.Items[0].Cost)

	for _, d := range trip.Days {
		assert.False(t, d.HasRoute())
	}

	first := trip.Days[0].Schedule[0]
	assert.Equal(t, "09:00", first.Time)
	assert.Equal(t, "https://www.matsuyama-airport.co.jp/", first.URL)
	assert.False(t, trip.Days[0].Schedule[1].HasLink())
}

func TestEhimeRoute_Variant(t *testing.T) {
	trip, err := Lookup(EhimeRoute)
	require.NoError(t, err)

	assert.Empty(t, trip.Page.Subtitle)
	for _, d := range trip.Days {
		require.True(t, d.HasRoute())
		assert.Equal(t, "ja", d.Route.Language)
	}
	assert.Equal(t, []string{"下灘駅", "道の駅ふたみ", "来島海峡SA", "亀老山展望公園"}, trip.Days[1].Route.Waypoints)
}

func TestLookup_ReturnsIndependentCopies(t *testing.T) {
	a, err := Lookup(Ehime)
	require.NoError(t, err)
	a.Days[0].Title = "changed"

	b, err := Lookup(Ehime)
	require.NoError(t, err)
	assert.Equal(t, "四国カルスト + 道後温泉", b.Days[0].Title)
}

func TestLookup_NotFound(t *testing.T) {
	_, err := Lookup("okinawa")
	require.Error(t, err)

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeTripNotFound, appErr.Code)
}

func TestLookup_ValidatesBuiltin(t *testing.T) {
	const name = "broken"
	builtin[name] = func() *model.Trip {
		trip := ehimeTrip()
		trip.Days[1].Day = 3
		return trip
	}
	t.Cleanup(func() { delete(builtin, name) })

	trip, err := Lookup(name)
	assert.Nil(t, trip)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeTripInvalid, appErr.Code)
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"ehime", "ehime-route"}, Names())
}

func TestLoad(t *testing.T) {
	trip, err := Load(filepath.Join("testdata", "kyoto.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "京都 日帰りプラン", trip.Title)
	require.Len(t, trip.Days, 1)
	require.NotNil(t, trip.Days[0].Route)
	assert.Equal(t, []string{"清水寺", "八坂神社"}, trip.Days[0].Route.Waypoints)
	assert.Equal(t, "https://www.kiyomizudera.or.jp/", trip.Days[0].Schedule[1].URL)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		file string
		code errors.ErrorCode
	}{
		{"missing file", "nope.yaml", errors.ErrCodeTripNotFound},
		{"invariants broken", "invalid.yaml", errors.ErrCodeTripInvalid},
		{"unknown field", "typo.yaml", errors.ErrCodeTripParse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(filepath.Join("testdata", tt.file))
			require.Error(t, err)
			appErr, ok := errors.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, tt.code, appErr.Code)
		})
	}
}

func TestLoad_InvalidListsEveryViolation(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "invalid.yaml"))
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)

	details, ok := appErr.Details.([]string)
	require.True(t, ok)
	assert.Len(t, details, 3, "day number, decreasing time and unknown icon")
}

func TestResolve(t *testing.T) {
	trip, err := Resolve("", "")
	require.NoError(t, err)
	assert.Equal(t, "愛媛 1泊2日プラン", trip.Title)

	trip, err = Resolve(Ehime, filepath.Join("testdata", "kyoto.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "京都 日帰りプラン", trip.Title)
}
