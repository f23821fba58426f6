package rental

import (
	"sort"
	"time"
)

// Table is an immutable, date-ordered set of rental records. A Table is safe
// for concurrent readers; nothing mutates it after construction.
type Table struct {
	records []Record
}

// NewTable copies records, sorts them ascending by date (stable, so rows of the
// same day keep their input order) and reassigns Position as a 0-based index.
func NewTable(records []Record) *Table {
	rs := make([]Record, len(records))
	copy(rs, records)
	for i := range rs {
		rs[i].Date = Day(rs[i].Date)
	}
	sort.SliceStable(rs, func(i, j int) bool {
		return rs[i].Date.Before(rs[j].Date)
	})
	for i := range rs {
		rs[i].Position = i
	}
	return &Table{records: rs}
}

// Len returns the number of records.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.records)
}

// At returns the i-th record in date order.
func (t *Table) At(i int) Record {
	return t.records[i]
}

// Records returns a copy of the records in date order.
func (t *Table) Records() []Record {
	if t == nil {
		return nil
	}
	out := make([]Record, len(t.records))
	copy(out, t.records)
	return out
}

// Bounds returns the earliest and latest dates in the table. ok is false for
// an empty table.
func (t *Table) Bounds() (DateRange, bool) {
	if t.Len() == 0 {
		return DateRange{}, false
	}
	return DateRange{
		Start: t.records[0].Date,
		End:   t.records[len(t.records)-1].Date,
	}, true
}

// FilterByDate returns the records dated within [start, end], both inclusive
// and compared as calendar days. A reversed or non-overlapping range yields an
// empty table.
func FilterByDate(t *Table, start, end time.Time) *Table {
	if t.Len() == 0 {
		return &Table{}
	}
	start, end = Day(start), Day(end)
	if start.After(end) {
		return &Table{}
	}

	rs := t.records
	lo := sort.Search(len(rs), func(i int) bool { return !rs[i].Date.Before(start) })
	hi := sort.Search(len(rs), func(i int) bool { return rs[i].Date.After(end) })
	if lo >= hi {
		return &Table{}
	}

	// Positions are kept from the source table so rows stay traceable.
	return &Table{records: rs[lo:hi:hi]}
}
