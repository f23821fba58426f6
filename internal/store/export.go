package store

import (
	"fmt"
	"io"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/i474232898/bike-sharing-dashboard/internal/rental"
)

// WriteDailyCSV writes the daily summaries as CSV with the header
// date,count,casual,registered.
func WriteDailyCSV(w io.Writer, daily []rental.DailySummary) error {
	n := len(daily)
	dates := make([]string, n)
	counts := make([]int, n)
	casual := make([]int, n)
	registered := make([]int, n)
	for i, d := range daily {
		dates[i] = d.Date.Format(rental.DateLayout)
		counts[i] = d.Count
		casual[i] = d.Casual
		registered[i] = d.Registered
	}

	if n == 0 {
		// An empty frame has no columns; write the header alone.
		_, err := fmt.Fprintf(w, "%s,%s,%s,%s\n", colDate, colCount, colCasual, colRegistered)
		return err
	}

	df := dataframe.New(
		series.New(dates, series.String, colDate),
		series.New(counts, series.Int, colCount),
		series.New(casual, series.Int, colCasual),
		series.New(registered, series.Int, colRegistered),
	)
	if df.Err != nil {
		return fmt.Errorf("build export frame: %w", df.Err)
	}
	if err := df.WriteCSV(w); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}
