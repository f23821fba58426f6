package rental

// Snapshot is the result of one recomputation pass over a date range. It is
// owned by the caller that requested it.
type Snapshot struct {
	Range   DateRange         `json:"range"`
	Records int               `json:"records"`
	Daily   []DailySummary    `json:"daily"`
	Seasons []CategorySummary `json:"seasons"`
	Weather []CategorySummary `json:"weather"`
	Metrics Metrics           `json:"metrics"`
}

// Service runs the filter and aggregation pipeline over a table that was
// loaded once at startup.
type Service struct {
	table *Table
}

// NewService creates a new Service over an immutable table.
func NewService(table *Table) *Service {
	if table == nil {
		table = &Table{}
	}
	return &Service{table: table}
}

// Table returns the underlying read-only table.
func (s *Service) Table() *Table {
	return s.table
}

// Bounds returns the selectable date range, [min(date), max(date)].
func (s *Service) Bounds() (DateRange, bool) {
	return s.table.Bounds()
}

// Validate checks a user-supplied range before it is applied.
func (s *Service) Validate(r DateRange) error {
	return r.Validate()
}

// Snapshot filters the table to r and derives the daily, seasonal and weather
// summaries plus the headline metrics. It never fails: an empty or reversed
// range produces empty summaries and zero metrics.
func (s *Service) Snapshot(r DateRange) Snapshot {
	r = DateRange{Start: Day(r.Start), End: Day(r.End)}
	filtered := FilterByDate(s.table, r.Start, r.End)
	daily := DailySummaries(filtered)

	return Snapshot{
		Range:   r,
		Records: filtered.Len(),
		Daily:   daily,
		Seasons: BySeason(filtered),
		Weather: ByWeather(filtered),
		Metrics: Rollup(daily),
	}
}
