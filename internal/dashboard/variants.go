package dashboard

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownVariant is returned by Lookup for names that are not registered.
var ErrUnknownVariant = errors.New("unknown dashboard variant")

// Layout is the page width mode.
type Layout string

const (
	LayoutCentered Layout = "centered"
	LayoutWide     Layout = "wide"
)

// MetricKind selects one of the headline numbers.
type MetricKind string

const (
	MetricTotal      MetricKind = "total"
	MetricMeanDaily  MetricKind = "mean_daily"
	MetricCasual     MetricKind = "casual"
	MetricRegistered MetricKind = "registered"
)

// Palette is an ordered list of bar colours; the tallest bar takes the first.
type Palette struct {
	Name   string   `json:"name"`
	Colors []string `json:"colors"`
}

var (
	bluesR = Palette{Name: "Blues_r", Colors: []string{"#08306b", "#2171b5", "#6baed6", "#c6dbef"}}
	bluesD = Palette{Name: "Blues_d", Colors: []string{"#1f4e79", "#2e6da4", "#4a90c8", "#7fb3e0"}}
	greenR = Palette{Name: "Greens_r", Colors: []string{"#00441b", "#238b45", "#74c476", "#c7e9c0"}}
	greenD = Palette{Name: "Greens_d", Colors: []string{"#1b5e20", "#2e7d32", "#43a047", "#81c784"}}
)

// Variant configures how a snapshot is presented.
type Variant struct {
	Name        string
	PageTitle   string
	Title       string
	Description string
	// ShowRange adds a "Showing data from X to Y" subtitle.
	ShowRange bool
	Layout    Layout
	Tabs      bool
	Metrics   []MetricKind

	ShowWeather bool
	LineColor   string
	// LineLabel, when set, is shown as the line chart legend.
	LineLabel      string
	SeasonPalette  Palette
	WeatherPalette Palette
	RotateTicks    bool
	Caption        string
}

var variants = []Variant{
	{
		Name:          "classic",
		PageTitle:     "Bike Sharing Dashboard",
		Title:         "Bike Sharing Dashboard",
		Layout:        LayoutCentered,
		Metrics:       []MetricKind{MetricTotal, MetricMeanDaily},
		LineColor:     "#90CAF9",
		SeasonPalette: bluesD,
		Caption:       "Copyright (c) 2024",
	},
	{
		Name:           "analytics",
		PageTitle:      "Bike Sharing Dashboard",
		Title:          "Bike Sharing Analytics Dashboard",
		Description:    "Bike rental performance based on historical data.",
		Layout:         LayoutWide,
		Tabs:           true,
		Metrics:        []MetricKind{MetricTotal, MetricCasual, MetricRegistered},
		ShowWeather:    true,
		LineColor:      "#007ACC",
		LineLabel:      "Total Rides",
		SeasonPalette:  bluesR,
		WeatherPalette: greenR,
		Caption:        "Copyright © 2024",
	},
	{
		Name:           "overview",
		PageTitle:      "Bike Sharing Analytics",
		Title:          "Bike Sharing Analysis Dashboard",
		ShowRange:      true,
		Layout:         LayoutWide,
		Tabs:           true,
		Metrics:        []MetricKind{MetricTotal, MetricCasual, MetricRegistered},
		ShowWeather:    true,
		LineColor:      "#007ACC",
		SeasonPalette:  bluesD,
		WeatherPalette: greenD,
		RotateTicks:    true,
		Caption:        "Copyright © 2024",
	},
}

// Lookup returns the variant registered under name. Matching ignores case.
func Lookup(name string) (Variant, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, v := range variants {
		if v.Name == n {
			return v, nil
		}
	}
	return Variant{}, fmt.Errorf("%w: %q (available: %s)", ErrUnknownVariant, name, strings.Join(Names(), ", "))
}

// Names lists the registered variant names in a stable order.
func Names() []string {
	names := make([]string, len(variants))
	for i, v := range variants {
		names[i] = v.Name
	}
	return names
}

// Next returns the variant after name, wrapping around.
func Next(name string) Variant {
	for i, v := range variants {
		if v.Name == name {
			return variants[(i+1)%len(variants)]
		}
	}
	return variants[0]
}
