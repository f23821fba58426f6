package dashboard

import (
	"slices"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/i474232898/bike-sharing-dashboard/internal/rental"
)

var metricLabels = map[MetricKind]string{
	MetricTotal:      "Total Rentals",
	MetricMeanDaily:  "Daily Average",
	MetricCasual:     "Casual Users",
	MetricRegistered: "Registered Users",
}

var weatherLabels = map[rental.WeatherSituation]string{
	rental.WeatherClear: "Clear",
	rental.WeatherMist:  "Mist",
	rental.WeatherRain:  "Light Rain/Snow",
	rental.WeatherStorm: "Heavy Rain/Storm",
}

// Metric is one formatted headline number.
type Metric struct {
	Kind  MetricKind `json:"kind"`
	Label string     `json:"label"`
	Value string     `json:"value"`
	Raw   float64    `json:"raw"`
}

// Series is the daily line chart.
type Series struct {
	Label       string   `json:"label,omitempty"`
	Color       string   `json:"color"`
	RotateTicks bool     `json:"rotateTicks"`
	Labels      []string `json:"labels"`
	Values      []int    `json:"values"`
}

// Bar is one category bar.
type Bar struct {
	Category string `json:"category"`
	Label    string `json:"label"`
	Count    int    `json:"count"`
	Value    string `json:"value"`
	Color    string `json:"color"`
}

// View is a snapshot laid out for rendering.
type View struct {
	Variant     string   `json:"variant"`
	PageTitle   string   `json:"pageTitle"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Subtitle    string   `json:"subtitle,omitempty"`
	Layout      Layout   `json:"layout"`
	Tabs        bool     `json:"tabs"`
	Start       string   `json:"start"`
	End         string   `json:"end"`
	Empty       bool     `json:"empty"`
	Metrics     []Metric `json:"metrics"`
	Daily       Series   `json:"daily"`
	Seasons     []Bar    `json:"seasons"`
	// Weather is nil when the variant hides the weather chart.
	Weather []Bar  `json:"weather"`
	Caption string `json:"caption,omitempty"`
}

// Build lays out s according to v.
func Build(s rental.Snapshot, v Variant) View {
	start := s.Range.Start.Format(rental.DateLayout)
	end := s.Range.End.Format(rental.DateLayout)

	view := View{
		Variant:     v.Name,
		PageTitle:   v.PageTitle,
		Title:       v.Title,
		Description: v.Description,
		Layout:      v.Layout,
		Tabs:        v.Tabs,
		Start:       start,
		End:         end,
		Empty:       s.Metrics.Days == 0,
		Metrics:     metrics(s.Metrics, v.Metrics),
		Daily:       series(s.Daily, v),
		Seasons:     bars(s.Seasons, v.SeasonPalette, seasonLabel),
		Caption:     v.Caption,
	}
	if v.ShowRange {
		view.Subtitle = "Showing data from " + start + " to " + end
	}
	if v.ShowWeather {
		view.Weather = bars(s.Weather, v.WeatherPalette, weatherLabel)
	}
	return view
}

func metrics(m rental.Metrics, kinds []MetricKind) []Metric {
	out := make([]Metric, 0, len(kinds))
	for _, k := range kinds {
		metric := Metric{Kind: k, Label: metricLabels[k]}
		switch k {
		case MetricTotal:
			metric.Raw = float64(m.TotalCount)
			metric.Value = FormatInt(m.TotalCount)
		case MetricCasual:
			metric.Raw = float64(m.TotalCasual)
			metric.Value = FormatInt(m.TotalCasual)
		case MetricRegistered:
			metric.Raw = float64(m.TotalRegistered)
			metric.Value = FormatInt(m.TotalRegistered)
		case MetricMeanDaily:
			metric.Raw = m.MeanDaily
			metric.Value = FormatMean(m.MeanDaily)
		}
		out = append(out, metric)
	}
	return out
}

func series(daily []rental.DailySummary, v Variant) Series {
	s := Series{
		Label:       v.LineLabel,
		Color:       v.LineColor,
		RotateTicks: v.RotateTicks,
		Labels:      make([]string, len(daily)),
		Values:      make([]int, len(daily)),
	}
	for i, d := range daily {
		s.Labels[i] = d.Date.Format(rental.DateLayout)
		s.Values[i] = d.Count
	}
	return s
}

// bars sorts categories by count descending. The input is in enumeration
// order and the sort is stable, so ties keep that order.
func bars(cats []rental.CategorySummary, p Palette, label func(string) string) []Bar {
	sorted := slices.Clone(cats)
	slices.SortStableFunc(sorted, func(a, b rental.CategorySummary) int {
		return b.Count - a.Count
	})

	out := make([]Bar, len(sorted))
	for i, c := range sorted {
		out[i] = Bar{
			Category: c.Category,
			Label:    label(c.Category),
			Count:    c.Count,
			Value:    FormatInt(c.Count),
		}
		if len(p.Colors) > 0 {
			out[i].Color = p.Colors[min(i, len(p.Colors)-1)]
		}
	}
	return out
}

// Casers are stateful, so each call builds its own.
func seasonLabel(c string) string {
	return cases.Title(language.English).String(c)
}

func weatherLabel(c string) string {
	if l, ok := weatherLabels[rental.WeatherSituation(c)]; ok {
		return l
	}
	return cases.Title(language.English).String(c)
}

// FormatInt renders n with thousands separators.
func FormatInt(n int) string {
	return message.NewPrinter(language.English).Sprintf("%d", n)
}

// FormatMean renders the daily mean with one decimal.
func FormatMean(f float64) string {
	return message.NewPrinter(language.English).Sprintf("%.1f", f)
}
