package rental

import "time"

// DailySummaries buckets the table by calendar day and sums the counts of each
// bucket. Days without records are omitted rather than zero-filled, so callers
// must not assume one row per calendar day.
func DailySummaries(t *Table) []DailySummary {
	out := make([]DailySummary, 0)
	if t.Len() == 0 {
		return out
	}

	// Records are date-ordered, so each day is one contiguous run.
	var current time.Time
	for i, r := range t.records {
		if i == 0 || !r.Date.Equal(current) {
			current = r.Date
			out = append(out, DailySummary{Date: current})
		}
		last := &out[len(out)-1]
		last.Count += r.Count
		last.Casual += r.Casual
		last.Registered += r.Registered
	}
	return out
}

// BySeason sums the rental count per season present in the table, in
// enumeration order. Seasons with no records are not emitted.
func BySeason(t *Table) []CategorySummary {
	if t.Len() == 0 {
		return []CategorySummary{}
	}
	totals := make(map[Season]int)
	for _, r := range t.records {
		totals[r.Season] += r.Count
	}
	out := make([]CategorySummary, 0, len(totals))
	for _, s := range Seasons {
		if n, ok := totals[s]; ok {
			out = append(out, CategorySummary{Category: string(s), Count: n})
		}
	}
	return out
}

// ByWeather sums the rental count per weather situation present in the table,
// in enumeration order.
func ByWeather(t *Table) []CategorySummary {
	if t.Len() == 0 {
		return []CategorySummary{}
	}
	totals := make(map[WeatherSituation]int)
	for _, r := range t.records {
		totals[r.Weather] += r.Count
	}
	out := make([]CategorySummary, 0, len(totals))
	for _, w := range WeatherSituations {
		if n, ok := totals[w]; ok {
			out = append(out, CategorySummary{Category: string(w), Count: n})
		}
	}
	return out
}

// Rollup reduces a daily summary to the headline metrics. MeanDaily is 0 when
// there are no days.
func Rollup(daily []DailySummary) Metrics {
	m := Metrics{Days: len(daily)}
	for _, d := range daily {
		m.TotalCount += d.Count
		m.TotalCasual += d.Casual
		m.TotalRegistered += d.Registered
	}
	if m.Days > 0 {
		m.MeanDaily = float64(m.TotalCount) / float64(m.Days)
	}
	return m
}
