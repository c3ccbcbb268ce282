package ordering

import (
	"strconv"
	"time"

	"gorm.io/gorm"
)

const dateOnlyLayout = "2006-01-02"

// PeriodFilter is a half-open [Start, End) range over the order date.
// A nil bound means unbounded on that side.
type PeriodFilter struct {
	Start *time.Time
	End   *time.Time
}

// ParsePeriod builds a PeriodFilter from the query parameters used across
// listing, reporting and dashboard endpoints. An explicit inicio/fim range
// takes priority over ano/mes; ano must fall in [2000,2100], mes in [1,12],
// and mes without ano assumes the current year. Non-numeric ano/mes values
// are treated as absent, matching the historical behavior of the admin UI.
func ParsePeriod(inicio, fim, ano, mes string) (PeriodFilter, error) {
	var f PeriodFilter

	if inicio != "" || fim != "" {
		if inicio != "" {
			t, err := time.ParseInLocation(dateOnlyLayout, inicio, time.Local)
			if err != nil {
				return f, validationf("invalid 'inicio' parameter (use YYYY-MM-DD)")
			}
			f.Start = &t
		}
		if fim != "" {
			t, err := time.ParseInLocation(dateOnlyLayout, fim, time.Local)
			if err != nil {
				return f, validationf("invalid 'fim' parameter (use YYYY-MM-DD)")
			}
			if f.Start != nil && t.Before(*f.Start) {
				return PeriodFilter{}, validationf("invalid period: 'fim' may not precede 'inicio'")
			}
			// end-exclusive: the whole fim day is included
			end := t.AddDate(0, 0, 1)
			f.End = &end
		}
		return f, nil
	}

	year, okYear := atoiOrAbsent(ano)
	month, okMonth := atoiOrAbsent(mes)

	if !okYear && okMonth {
		year, okYear = time.Now().Year(), true
	}
	if okYear && (year < 2000 || year > 2100) {
		return f, validationf("invalid 'ano' parameter")
	}
	if okMonth && (month < 1 || month > 12) {
		return f, validationf("invalid 'mes' parameter (1..12)")
	}

	switch {
	case okYear && okMonth:
		start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
		end := start.AddDate(0, 1, 0)
		f.Start, f.End = &start, &end
	case okYear:
		start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
		end := start.AddDate(1, 0, 0)
		f.Start, f.End = &start, &end
	}
	return f, nil
}

func atoiOrAbsent(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Scope applies the filter to the given order-date column.
func (f PeriodFilter) Scope(column string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.Start != nil {
			db = db.Where(column+" >= ?", *f.Start)
		}
		if f.End != nil {
			db = db.Where(column+" < ?", *f.End)
		}
		return db
	}
}
