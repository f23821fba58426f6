package rental

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/i474232898/bike-sharing-dashboard/internal/common"
)

// DateLayout is the canonical calendar-date format used for keys and labels.
const DateLayout = "2006-01-02"

var (
	// ErrInvalidRange is returned when a date range has zero or reversed bounds.
	ErrInvalidRange = errors.New("invalid date range")
	// ErrUnknownCategory is returned when a season or weather label cannot be mapped.
	ErrUnknownCategory = errors.New("unknown category")
)

// Season represents the meteorological season a record belongs to.
type Season string

const (
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonFall   Season = "fall"
	SeasonWinter Season = "winter"
)

// Seasons lists every season in enumeration order.
var Seasons = []Season{SeasonSpring, SeasonSummer, SeasonFall, SeasonWinter}

// WeatherSituation is the normalized weather category of a record.
type WeatherSituation string

const (
	WeatherClear WeatherSituation = "clear"
	WeatherMist  WeatherSituation = "mist"
	WeatherRain  WeatherSituation = "rain"
	WeatherStorm WeatherSituation = "storm"
)

// WeatherSituations lists every weather situation in enumeration order.
var WeatherSituations = []WeatherSituation{WeatherClear, WeatherMist, WeatherRain, WeatherStorm}

// ParseSeason maps a season name, alias or numeric code (1-4) to a Season.
func ParseSeason(s string) (Season, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(v); err == nil {
		if n >= 1 && n <= len(Seasons) {
			return Seasons[n-1], nil
		}
		return "", fmt.Errorf("%w: season code %d", ErrUnknownCategory, n)
	}
	switch v {
	case "spring":
		return SeasonSpring, nil
	case "summer":
		return SeasonSummer, nil
	case "fall", "autumn":
		return SeasonFall, nil
	case "winter":
		return SeasonWinter, nil
	}
	return "", fmt.Errorf("%w: season %q", ErrUnknownCategory, s)
}

// ParseWeatherSituation maps a weather code (1-4) or a free-form label to a
// WeatherSituation. Labels are matched by keyword, most severe first.
func ParseWeatherSituation(s string) (WeatherSituation, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(v); err == nil {
		if n >= 1 && n <= len(WeatherSituations) {
			return WeatherSituations[n-1], nil
		}
		return "", fmt.Errorf("%w: weather code %d", ErrUnknownCategory, n)
	}
	switch {
	case v == "":
	case common.HasAny(v, "heavy", "severe", "extreme"):
		return WeatherStorm, nil
	case strings.Contains(v, "light"):
		return WeatherRain, nil
	case common.HasAny(v, "storm", "thunder"):
		return WeatherStorm, nil
	case common.HasAny(v, "rain", "snow", "drizzle"):
		return WeatherRain, nil
	case common.HasAny(v, "clear", "sunny"):
		return WeatherClear, nil
	case common.HasAny(v, "mist", "cloud", "fog"):
		return WeatherMist, nil
	}
	return "", fmt.Errorf("%w: weather %q", ErrUnknownCategory, s)
}

// Record is a single rental observation. Date is always a UTC calendar day.
type Record struct {
	Position   int              `json:"position"`
	Date       time.Time        `json:"date"`
	Count      int              `json:"count"`
	Casual     int              `json:"casual"`
	Registered int              `json:"registered"`
	Season     Season           `json:"season"`
	Weather    WeatherSituation `json:"weatherSituation"`
}

// Validate checks the per-record invariants of the data model.
func (r Record) Validate() error {
	if r.Count < 0 || r.Casual < 0 || r.Registered < 0 {
		return fmt.Errorf("negative rental count (count=%d casual=%d registered=%d)", r.Count, r.Casual, r.Registered)
	}
	if r.Casual+r.Registered != r.Count {
		return fmt.Errorf("casual (%d) + registered (%d) does not equal count (%d)", r.Casual, r.Registered, r.Count)
	}
	return nil
}

// DailySummary is the per-day bucket of rental counts.
type DailySummary struct {
	Date       time.Time `json:"date"`
	Count      int       `json:"count"`
	Casual     int       `json:"casual"`
	Registered int       `json:"registered"`
}

// CategorySummary is the total rental count for one season or weather situation.
type CategorySummary struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// Metrics are the scalar rollups shown above the charts.
type Metrics struct {
	Days            int     `json:"days"`
	TotalCount      int     `json:"totalCount"`
	TotalCasual     int     `json:"totalCasual"`
	TotalRegistered int     `json:"totalRegistered"`
	MeanDaily       float64 `json:"meanDaily"`
}

// DateRange is an inclusive range of calendar days.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Validate reports ErrInvalidRange for zero or reversed bounds.
func (r DateRange) Validate() error {
	if r.Start.IsZero() || r.End.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidRange)
	}
	if Day(r.Start).After(Day(r.End)) {
		return fmt.Errorf("%w: start %s is after end %s", ErrInvalidRange,
			r.Start.Format(DateLayout), r.End.Format(DateLayout))
	}
	return nil
}

// String formats the range as "start..end".
func (r DateRange) String() string {
	return r.Start.Format(DateLayout) + ".." + r.End.Format(DateLayout)
}

// Day truncates t to its calendar day at UTC midnight, keeping the wall-clock date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
