package store

import (
	"fmt"
	"strings"

	"github.com/i474232898/bike-sharing-dashboard/internal/common"
)

// Columns lists, per logical column, the header names accepted for it.
// Matching ignores case and surrounding whitespace; the first present
// candidate wins.
type Columns struct {
	Date       []string
	Count      []string
	Casual     []string
	Registered []string
	Season     []string
	Weather    []string
}

// DefaultColumns returns the candidates for the bike-sharing dataset layout.
func DefaultColumns() Columns {
	return Columns{
		Date:       []string{"dteday", "date"},
		Count:      []string{"cnt", "count", "total_count"},
		Casual:     []string{"casual"},
		Registered: []string{"registered"},
		Season:     []string{"season"},
		Weather:    []string{"weathersit", "weather_situation", "weather"},
	}
}

type column struct {
	logical    string
	candidates []string
}

func (c Columns) list() []column {
	return []column{
		{"date", c.Date},
		{"count", c.Count},
		{"casual", c.Casual},
		{"registered", c.Registered},
		{"season", c.Season},
		{"weather", c.Weather},
	}
}

// resolve maps each logical column to the matching header name. The error
// wraps ErrMissingColumns and names every absent column.
func (c Columns) resolve(header []string) (map[string]string, error) {
	resolved := make(map[string]string)
	var missing []string

	for _, col := range c.list() {
		found := ""
		for _, cand := range col.candidates {
			if i := common.IndexFold(header, cand); i >= 0 {
				found = header[i]
				break
			}
		}
		if found == "" {
			missing = append(missing, fmt.Sprintf("%s (%s)", col.logical, strings.Join(col.candidates, "|")))
			continue
		}
		resolved[col.logical] = found
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}
	return resolved, nil
}
