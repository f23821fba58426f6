package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/bike-sharing-dashboard/internal/rental"
)

func snapshot(t *testing.T) rental.Snapshot {
	t.Helper()
	d := func(s string) time.Time {
		v, err := time.Parse(rental.DateLayout, s)
		require.NoError(t, err)
		return v
	}

	tbl := rental.NewTable([]rental.Record{
		{Date: d("2011-01-01"), Count: 985, Casual: 331, Registered: 654, Season: rental.SeasonSpring, Weather: rental.WeatherMist},
		{Date: d("2011-04-16"), Count: 795, Casual: 121, Registered: 674, Season: rental.SeasonSummer, Weather: rental.WeatherRain},
		{Date: d("2011-07-04"), Count: 6043, Casual: 3065, Registered: 2978, Season: rental.SeasonFall, Weather: rental.WeatherClear},
		{Date: d("2011-07-05"), Count: 191, Casual: 90, Registered: 101, Season: rental.SeasonFall, Weather: rental.WeatherMist},
	})
	svc := rental.NewService(tbl)
	bounds, ok := svc.Bounds()
	require.True(t, ok)
	return svc.Snapshot(bounds)
}

func TestLookup(t *testing.T) {
	assert.Equal(t, []string{"classic", "analytics", "overview"}, Names())

	v, err := Lookup(" Overview ")
	require.NoError(t, err)
	assert.Equal(t, "overview", v.Name)
	assert.True(t, v.RotateTicks)

	_, err = Lookup("neon")
	assert.ErrorIs(t, err, ErrUnknownVariant)
}

func TestNextWraps(t *testing.T) {
	assert.Equal(t, "analytics", Next("classic").Name)
	assert.Equal(t, "classic", Next("overview").Name)
	assert.Equal(t, "classic", Next("missing").Name)
}

func TestBuildAnalytics(t *testing.T) {
	v, err := Lookup("analytics")
	require.NoError(t, err)

	view := Build(snapshot(t), v)

	assert.False(t, view.Empty)
	assert.Empty(t, view.Subtitle)
	require.Len(t, view.Metrics, 3)
	assert.Equal(t, MetricTotal, view.Metrics[0].Kind)
	assert.Equal(t, "8,014", view.Metrics[0].Value)
	assert.Equal(t, "3,607", view.Metrics[1].Value)
	assert.Equal(t, "4,407", view.Metrics[2].Value)

	assert.Equal(t, []string{"2011-01-01", "2011-04-16", "2011-07-04", "2011-07-05"}, view.Daily.Labels)
	assert.Equal(t, []int{985, 795, 6043, 191}, view.Daily.Values)
	assert.Equal(t, "Total Rides", view.Daily.Label)

	require.Len(t, view.Seasons, 3)
	assert.Equal(t, "fall", view.Seasons[0].Category)
	assert.Equal(t, "Fall", view.Seasons[0].Label)
	assert.Equal(t, "6,234", view.Seasons[0].Value)
	assert.Equal(t, "#08306b", view.Seasons[0].Color)
	assert.Equal(t, "spring", view.Seasons[1].Category)
	assert.Equal(t, "summer", view.Seasons[2].Category)

	require.Len(t, view.Weather, 3)
	assert.Equal(t, "clear", view.Weather[0].Category)
	assert.Equal(t, "mist", view.Weather[1].Category)
	assert.Equal(t, "Light Rain/Snow", view.Weather[2].Label)
}

func TestBuildClassic(t *testing.T) {
	v, err := Lookup("classic")
	require.NoError(t, err)

	view := Build(snapshot(t), v)

	require.Len(t, view.Metrics, 2)
	assert.Equal(t, MetricMeanDaily, view.Metrics[1].Kind)
	assert.Equal(t, "2,003.5", view.Metrics[1].Value)
	assert.InDelta(t, 2003.5, view.Metrics[1].Raw, 1e-9)
	assert.Nil(t, view.Weather)
	assert.Equal(t, LayoutCentered, view.Layout)
}

func TestBuildOverviewSubtitle(t *testing.T) {
	v, err := Lookup("overview")
	require.NoError(t, err)

	view := Build(snapshot(t), v)
	assert.Equal(t, "Showing data from 2011-01-01 to 2011-07-05", view.Subtitle)
	assert.True(t, view.Daily.RotateTicks)
}

func TestBuildEmptySnapshot(t *testing.T) {
	v, err := Lookup("classic")
	require.NoError(t, err)

	view := Build(rental.NewService(nil).Snapshot(rental.DateRange{}), v)
	assert.True(t, view.Empty)
	assert.Equal(t, "0", view.Metrics[0].Value)
	assert.Equal(t, "0.0", view.Metrics[1].Value)
	assert.Empty(t, view.Daily.Values)
	assert.Empty(t, view.Seasons)
}

func TestBarsTieKeepsEnumerationOrder(t *testing.T) {
	got := bars([]rental.CategorySummary{
		{Category: "spring", Count: 5},
		{Category: "summer", Count: 9},
		{Category: "fall", Count: 5},
		{Category: "winter", Count: 5},
	}, bluesR, seasonLabel)

	var order []string
	for _, b := range got {
		order = append(order, b.Category)
	}
	assert.Equal(t, []string{"summer", "spring", "fall", "winter"}, order)
	assert.Equal(t, bluesR.Colors[3], got[3].Color)
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "985", FormatInt(985))
	assert.Equal(t, "1,234,567", FormatInt(1234567))
	assert.Equal(t, "11.0", FormatMean(11))
}
