package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"

	"github.com/i474232898/bike-sharing-dashboard/internal/common"
	"github.com/i474232898/bike-sharing-dashboard/internal/logging"
	"github.com/i474232898/bike-sharing-dashboard/internal/rental"
)

// Format selects the decoder for a data source.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat accepts "", "csv" or "xlsx".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case "csv":
		return FormatCSV, nil
	case "xlsx":
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("unsupported data format %q", s)
}

// Options controls how a source is decoded.
type Options struct {
	// Format forces the decoder; empty infers it from the source name.
	Format Format
	// Sheet is the XLSX worksheet to read; empty means the first one.
	Sheet   string
	Columns Columns
}

// dateLayouts are tried in order when parsing the date column.
var dateLayouts = []string{
	rental.DateLayout,
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
	"1/2/2006",
}

// canonical column names of the normalized frame.
const (
	colDate       = "date"
	colCount      = "count"
	colCasual     = "casual"
	colRegistered = "registered"
	colSeason     = "season"
	colWeather    = "weather"
)

// Load reads src once and returns the rental table sorted by date. Every
// failure is a *DataLoadError.
func Load(ctx context.Context, src Source, opts Options) (*rental.Table, error) {
	start := time.Now()
	name := src.Name()

	rc, err := src.Open(ctx)
	if err != nil {
		return nil, loadError(name, err, "open")
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, loadError(name, err, "read")
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, loadError(name, ErrEmptySource, "no content")
	}

	format := opts.Format
	if format == "" {
		format = inferFormat(name)
	}

	if format == FormatCSV && bytes.IndexByte(bytes.TrimSpace(data), '\n') < 0 {
		return nil, loadError(name, ErrEmptySource, "header only")
	}

	columns := opts.Columns
	if columns.Date == nil {
		columns = DefaultColumns()
	}

	var df dataframe.DataFrame
	switch format {
	case FormatXLSX:
		df, err = decodeXLSX(data, opts.Sheet, columns)
		if err != nil {
			return nil, loadError(name, err, "decode xlsx")
		}
	default:
		df = decodeCSV(data)
	}

	table, err := tableFromFrame(df, columns)
	if err != nil {
		var le *DataLoadError
		if errors.As(err, &le) {
			le.Source = name
			return nil, le
		}
		return nil, loadError(name, err, "decode %s", format)
	}

	logging.Debug("dataset decoded", "source", name, "format", format, "records", table.Len(), "elapsed", time.Since(start))
	return table, nil
}

func inferFormat(name string) Format {
	if strings.HasSuffix(strings.ToLower(name), ".xlsx") {
		return FormatXLSX
	}
	return FormatCSV
}

// decodeCSV reads every column as a string so parsing errors can be reported
// per row instead of as a type-detection failure.
func decodeCSV(data []byte) dataframe.DataFrame {
	return dataframe.ReadCSV(bytes.NewReader(data),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
}

// decodeXLSX reads raw cell values, so numbers keep full precision and date
// cells arrive as serial numbers instead of their display format. Serials in
// the date column are rewritten as calendar dates.
func decodeXLSX(data []byte, sheet string, columns Columns) (dataframe.DataFrame, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return dataframe.DataFrame{}, ErrEmptySource
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	if len(rows) < 2 {
		return dataframe.DataFrame{}, ErrEmptySource
	}

	// GetRows drops trailing empty cells; pad so every record has header width.
	width := len(rows[0])
	for i, row := range rows {
		for len(row) < width {
			row = append(row, "")
		}
		rows[i] = row[:width]
	}

	// An unresolved header is reported by tableFromFrame.
	if resolved, err := columns.resolve(rows[0]); err == nil {
		idx := common.IndexFold(rows[0], resolved[colDate])
		for _, row := range rows[1:] {
			if day, ok := serialDate(row[idx]); ok {
				row[idx] = day
			}
		}
	}

	return dataframe.LoadRecords(rows,
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	), nil
}

// tableFromFrame validates the raw string frame, normalizes it into the
// canonical typed frame, sorts it by date and converts it to a table.
func tableFromFrame(raw dataframe.DataFrame, columns Columns) (*rental.Table, error) {
	if raw.Err != nil {
		return nil, &DataLoadError{Reason: "parse", Err: raw.Err}
	}
	if raw.Nrow() == 0 {
		return nil, &DataLoadError{Reason: "no data rows", Err: ErrEmptySource}
	}

	resolved, err := columns.resolve(raw.Names())
	if err != nil {
		return nil, &DataLoadError{Reason: "header", Err: err}
	}

	normalized, err := normalize(raw, resolved)
	if err != nil {
		return nil, err
	}

	sorted := normalized.Arrange(dataframe.Sort(colDate))
	if sorted.Err != nil {
		return nil, &DataLoadError{Reason: "sort", Err: sorted.Err}
	}

	return toTable(sorted)
}

// normalize parses and validates every row of raw and returns a frame with
// canonical column names, ISO dates and integer counts.
func normalize(raw dataframe.DataFrame, resolved map[string]string) (dataframe.DataFrame, error) {
	col := func(logical string) []string {
		return raw.Col(resolved[logical]).Records()
	}
	rawDates := col(colDate)
	rawCounts := col(colCount)
	rawCasual := col(colCasual)
	rawRegistered := col(colRegistered)
	rawSeasons := col(colSeason)
	rawWeather := col(colWeather)

	n := raw.Nrow()
	dates := make([]string, n)
	counts := make([]int, n)
	casual := make([]int, n)
	registered := make([]int, n)
	seasons := make([]string, n)
	weather := make([]string, n)

	for i := 0; i < n; i++ {
		row := i + 1
		rowErr := func(err error) error {
			return &DataLoadError{
				Reason: fmt.Sprintf("row %d", row),
				Err:    fmt.Errorf("%w: %w", ErrInvalidRow, err),
			}
		}

		d, err := parseDate(rawDates[i])
		if err != nil {
			return dataframe.DataFrame{}, rowErr(err)
		}

		var rec rental.Record
		rec.Date = d
		if rec.Count, err = parseCount(colCount, rawCounts[i]); err != nil {
			return dataframe.DataFrame{}, rowErr(err)
		}
		if rec.Casual, err = parseCount(colCasual, rawCasual[i]); err != nil {
			return dataframe.DataFrame{}, rowErr(err)
		}
		if rec.Registered, err = parseCount(colRegistered, rawRegistered[i]); err != nil {
			return dataframe.DataFrame{}, rowErr(err)
		}
		if rec.Season, err = rental.ParseSeason(rawSeasons[i]); err != nil {
			return dataframe.DataFrame{}, rowErr(err)
		}
		if rec.Weather, err = rental.ParseWeatherSituation(rawWeather[i]); err != nil {
			return dataframe.DataFrame{}, rowErr(err)
		}
		if err := rec.Validate(); err != nil {
			return dataframe.DataFrame{}, rowErr(err)
		}

		dates[i] = d.Format(rental.DateLayout)
		counts[i] = rec.Count
		casual[i] = rec.Casual
		registered[i] = rec.Registered
		seasons[i] = string(rec.Season)
		weather[i] = string(rec.Weather)
	}

	df := dataframe.New(
		series.New(dates, series.String, colDate),
		series.New(counts, series.Int, colCount),
		series.New(casual, series.Int, colCasual),
		series.New(registered, series.Int, colRegistered),
		series.New(seasons, series.String, colSeason),
		series.New(weather, series.String, colWeather),
	)
	if df.Err != nil {
		return dataframe.DataFrame{}, &DataLoadError{Reason: "normalize", Err: df.Err}
	}
	return df, nil
}

func toTable(df dataframe.DataFrame) (*rental.Table, error) {
	dates := df.Col(colDate).Records()
	seasons := df.Col(colSeason).Records()
	weather := df.Col(colWeather).Records()

	counts, err := df.Col(colCount).Int()
	if err != nil {
		return nil, &DataLoadError{Reason: "convert", Err: err}
	}
	casual, err := df.Col(colCasual).Int()
	if err != nil {
		return nil, &DataLoadError{Reason: "convert", Err: err}
	}
	registered, err := df.Col(colRegistered).Int()
	if err != nil {
		return nil, &DataLoadError{Reason: "convert", Err: err}
	}

	records := make([]rental.Record, df.Nrow())
	for i := range records {
		d, _ := time.Parse(rental.DateLayout, dates[i])
		records[i] = rental.Record{
			Date:       d,
			Count:      counts[i],
			Casual:     casual[i],
			Registered: registered[i],
			Season:     rental.Season(seasons[i]),
			Weather:    rental.WeatherSituation(weather[i]),
		}
	}
	return rental.NewTable(records), nil
}

// serialDate converts an Excel date serial ("40544") to "2011-01-01".
func serialDate(s string) (string, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || f <= 0 {
		return "", false
	}
	t, err := excelize.ExcelDateToTime(f, false)
	if err != nil {
		return "", false
	}
	return rental.Day(t).Format(rental.DateLayout), true
}

func parseDate(s string) (time.Time, error) {
	v := strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return rental.Day(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

// parseCount accepts integers and integral floats ("985.0"), as written by
// dataframe exports.
func parseCount(name, s string) (int, error) {
	v := strings.TrimSpace(s)
	if n, err := strconv.Atoi(v); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("%s is not an integer: %q", name, s)
	}
	return int(f), nil
}
