package rental

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func exampleTable() *Table {
	return NewTable([]Record{
		{Date: date("2024-01-02"), Count: 7, Casual: 3, Registered: 4, Season: SeasonWinter, Weather: WeatherRain},
		{Date: date("2024-01-01"), Count: 10, Casual: 2, Registered: 8, Season: SeasonWinter, Weather: WeatherClear},
		{Date: date("2024-01-01"), Count: 5, Casual: 1, Registered: 4, Season: SeasonWinter, Weather: WeatherClear},
	})
}

func mixedTable() *Table {
	return NewTable([]Record{
		{Date: date("2011-01-01"), Count: 985, Casual: 331, Registered: 654, Season: SeasonSpring, Weather: WeatherMist},
		{Date: date("2011-01-03"), Count: 1349, Casual: 120, Registered: 1229, Season: SeasonSpring, Weather: WeatherClear},
		{Date: date("2011-04-10"), Count: 2000, Casual: 500, Registered: 1500, Season: SeasonSummer, Weather: WeatherRain},
		{Date: date("2011-04-10"), Count: 100, Casual: 40, Registered: 60, Season: SeasonSummer, Weather: WeatherRain},
		{Date: date("2011-07-04"), Count: 6000, Casual: 3000, Registered: 3000, Season: SeasonFall, Weather: WeatherClear},
		{Date: date("2011-12-24"), Count: 300, Casual: 10, Registered: 290, Season: SeasonWinter, Weather: WeatherStorm},
	})
}

func TestNewTableSortsAndReindexes(t *testing.T) {
	tbl := exampleTable()
	require.Equal(t, 3, tbl.Len())

	recs := tbl.Records()
	for i, r := range recs {
		assert.Equal(t, i, r.Position)
	}
	assert.Equal(t, date("2024-01-01"), recs[0].Date)
	assert.Equal(t, 10, recs[0].Count, "rows of the same day keep input order")
	assert.Equal(t, 5, recs[1].Count)
	assert.Equal(t, date("2024-01-02"), recs[2].Date)
}

func TestNewTableTruncatesToDay(t *testing.T) {
	tbl := NewTable([]Record{
		{Date: time.Date(2024, 3, 5, 17, 30, 0, 0, time.UTC), Count: 1, Registered: 1, Season: SeasonSpring, Weather: WeatherClear},
	})
	assert.Equal(t, date("2024-03-05"), tbl.At(0).Date)
}

func TestExampleScenario(t *testing.T) {
	svc := NewService(exampleTable())
	snap := svc.Snapshot(DateRange{Start: date("2024-01-01"), End: date("2024-01-02")})

	assert.Equal(t, []DailySummary{
		{Date: date("2024-01-01"), Count: 15, Casual: 3, Registered: 12},
		{Date: date("2024-01-02"), Count: 7, Casual: 3, Registered: 4},
	}, snap.Daily)
	assert.Equal(t, []CategorySummary{{Category: "winter", Count: 22}}, snap.Seasons)
	assert.Equal(t, []CategorySummary{{Category: "clear", Count: 15}, {Category: "rain", Count: 7}}, snap.Weather)
	assert.Equal(t, 22, snap.Metrics.TotalCount)
	assert.Equal(t, 6, snap.Metrics.TotalCasual)
	assert.Equal(t, 16, snap.Metrics.TotalRegistered)
	assert.Equal(t, 2, snap.Metrics.Days)
	assert.InDelta(t, 11.0, snap.Metrics.MeanDaily, 1e-9)
	assert.Equal(t, 3, snap.Records)
}

func TestFilterByDateInclusiveBounds(t *testing.T) {
	tbl := mixedTable()

	cases := []struct {
		name       string
		start, end string
		want       int
	}{
		{"full range", "2011-01-01", "2011-12-24", 6},
		{"single min day", "2011-01-01", "2011-01-01", 1},
		{"single max day", "2011-12-24", "2011-12-24", 1},
		{"day with two rows", "2011-04-10", "2011-04-10", 2},
		{"gap day", "2011-01-02", "2011-01-02", 0},
		{"before data", "2010-01-01", "2010-12-31", 0},
		{"after data", "2012-01-01", "2012-02-01", 0},
		{"reversed", "2011-12-24", "2011-01-01", 0},
		{"wider than data", "2000-01-01", "2030-01-01", 6},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start, end := date(tc.start), date(tc.end)
			got := FilterByDate(tbl, start, end)
			require.Equal(t, tc.want, got.Len())
			for _, r := range got.Records() {
				assert.False(t, r.Date.Before(start), "record %s before start", r.Date)
				assert.False(t, r.Date.After(end), "record %s after end", r.Date)
			}
		})
	}
}

func TestFilterByDateIgnoresTimeOfDay(t *testing.T) {
	tbl := mixedTable()
	got := FilterByDate(tbl,
		time.Date(2011, 1, 1, 23, 59, 0, 0, time.UTC),
		time.Date(2011, 1, 3, 0, 1, 0, 0, time.UTC))
	assert.Equal(t, 2, got.Len())
}

func TestFilterByDateNeverIntroducesRecords(t *testing.T) {
	tbl := mixedTable()
	all := tbl.Records()
	got := FilterByDate(tbl, date("2011-01-03"), date("2011-07-04"))

	for _, r := range got.Records() {
		assert.Contains(t, all, r)
	}
}

func TestFilterByDateOnEmptyTable(t *testing.T) {
	got := FilterByDate(NewTable(nil), date("2011-01-01"), date("2011-12-31"))
	assert.Equal(t, 0, got.Len())

	var nilTable *Table
	assert.Equal(t, 0, FilterByDate(nilTable, date("2011-01-01"), date("2011-12-31")).Len())
}

func TestAggregationConservesTotals(t *testing.T) {
	filtered := FilterByDate(mixedTable(), date("2011-01-01"), date("2011-12-31"))

	raw := 0
	for _, r := range filtered.Records() {
		raw += r.Count
	}

	daily := DailySummaries(filtered)
	sum := func(rows []CategorySummary) int {
		n := 0
		for _, r := range rows {
			n += r.Count
		}
		return n
	}

	assert.Equal(t, raw, Rollup(daily).TotalCount)
	assert.Equal(t, raw, sum(BySeason(filtered)))
	assert.Equal(t, raw, sum(ByWeather(filtered)))

	for _, d := range daily {
		assert.Equal(t, d.Count, d.Casual+d.Registered)
	}
}

func TestDailySummariesUniqueAscendingWithoutGapFill(t *testing.T) {
	daily := DailySummaries(mixedTable())
	require.Len(t, daily, 5)
	for i := 1; i < len(daily); i++ {
		assert.True(t, daily[i-1].Date.Before(daily[i].Date))
	}
	assert.Equal(t, 2100, daily[2].Count)
}

func TestCategorySummariesOmitAbsentValues(t *testing.T) {
	filtered := FilterByDate(mixedTable(), date("2011-01-01"), date("2011-04-10"))

	assert.Equal(t, []CategorySummary{
		{Category: "spring", Count: 2334},
		{Category: "summer", Count: 2100},
	}, BySeason(filtered))
	assert.Equal(t, []CategorySummary{
		{Category: "clear", Count: 1349},
		{Category: "mist", Count: 985},
		{Category: "rain", Count: 2100},
	}, ByWeather(filtered))
}

func TestSnapshotOutsideDataIsZero(t *testing.T) {
	svc := NewService(mixedTable())
	snap := svc.Snapshot(DateRange{Start: date("2001-01-01"), End: date("2001-02-01")})

	assert.Empty(t, snap.Daily)
	assert.Empty(t, snap.Seasons)
	assert.Empty(t, snap.Weather)
	assert.Equal(t, Metrics{}, snap.Metrics)
	assert.NotNil(t, snap.Daily, "empty summaries encode as [] rather than null")
}

func TestSnapshotIsIdempotent(t *testing.T) {
	svc := NewService(mixedTable())
	r := DateRange{Start: date("2011-01-01"), End: date("2011-12-31")}

	a, err := json.Marshal(svc.Snapshot(r))
	require.NoError(t, err)
	b, err := json.Marshal(svc.Snapshot(r))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRollupEmpty(t *testing.T) {
	assert.Equal(t, Metrics{}, Rollup(nil))
}

func TestServiceBounds(t *testing.T) {
	svc := NewService(mixedTable())
	b, ok := svc.Bounds()
	require.True(t, ok)
	assert.Equal(t, date("2011-01-01"), b.Start)
	assert.Equal(t, date("2011-12-24"), b.End)

	_, ok = NewService(nil).Bounds()
	assert.False(t, ok)
}

func TestDateRangeValidate(t *testing.T) {
	assert.NoError(t, DateRange{Start: date("2011-01-01"), End: date("2011-01-01")}.Validate())

	err := DateRange{Start: date("2011-02-01"), End: date("2011-01-01")}.Validate()
	assert.True(t, errors.Is(err, ErrInvalidRange))

	err = DateRange{End: date("2011-01-01")}.Validate()
	assert.True(t, errors.Is(err, ErrInvalidRange))
}

func TestParseSeason(t *testing.T) {
	cases := map[string]Season{
		"1":       SeasonSpring,
		"4":       SeasonWinter,
		"Spring":  SeasonSpring,
		" FALL ":  SeasonFall,
		"autumn":  SeasonFall,
		"Summer":  SeasonSummer,
		"winter":  SeasonWinter,
		"3":       SeasonFall,
		"summer ": SeasonSummer,
	}
	for in, want := range cases {
		got, err := ParseSeason(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "0", "5", "monsoon"} {
		_, err := ParseSeason(in)
		assert.True(t, errors.Is(err, ErrUnknownCategory), in)
	}
}

func TestParseWeatherSituation(t *testing.T) {
	cases := map[string]WeatherSituation{
		"1":                                     WeatherClear,
		"2":                                     WeatherMist,
		"3":                                     WeatherRain,
		"4":                                     WeatherStorm,
		"clear":                                 WeatherClear,
		"Clear, Few clouds, Partly cloudy":      WeatherClear,
		"Mist + Cloudy, Mist + Few clouds":      WeatherMist,
		"Cloudy":                                WeatherMist,
		"Light Snow, Light Rain + Thunderstorm": WeatherRain,
		"rain":                                  WeatherRain,
		"Heavy Rain + Ice Pallets":              WeatherStorm,
		"storm":                                 WeatherStorm,
		"Severe Weather":                        WeatherStorm,
		"Extreme":                               WeatherStorm,
	}
	for in, want := range cases {
		got, err := ParseWeatherSituation(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "7", "hail"} {
		_, err := ParseWeatherSituation(in)
		assert.True(t, errors.Is(err, ErrUnknownCategory), in)
	}
}

func TestRecordValidate(t *testing.T) {
	ok := Record{Count: 10, Casual: 4, Registered: 6}
	assert.NoError(t, ok.Validate())

	assert.Error(t, Record{Count: 10, Casual: 4, Registered: 5}.Validate())
	assert.Error(t, Record{Count: -1, Casual: -1, Registered: 0}.Validate())
}
