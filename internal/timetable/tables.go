// Package timetable resolves the provider's denormalized table document and
// projects the lessons of one class onto the current calendar week.
package timetable

import (
	"fmt"

	"github.com/sevenofnine/edupage-calendar-bridge/internal/domain"
	"github.com/sevenofnine/edupage-calendar-bridge/internal/dynjson"
)

// Tables is a read-only view over the document's named tables. Tables are
// small (at most a few hundred rows) and queried a few dozen times per
// request, so lookups are linear scans; no index is built.
type Tables struct {
	tables []dynjson.Value
}

func NewTables(tables []dynjson.Value) Tables {
	return Tables{tables: tables}
}

// Table returns the data_rows of the first table whose id equals name.
// Tables without a string id are skipped rather than treated as a match.
func (t Tables) Table(name string) ([]dynjson.Value, error) {
	for _, tab := range t.tables {
		id, err := tab.Field("id").Str()
		if err != nil || id != name {
			continue
		}
		rows, err := tab.Field("data_rows").Array()
		if err != nil {
			return nil, fmt.Errorf("table %q has no rows (%v): %w", name, err, domain.ErrResolution)
		}
		return rows, nil
	}
	return nil, fmt.Errorf("table %q: %w", name, domain.ErrResolution)
}

// RowByID returns the first row of table whose id field equals id. Rows
// without a string id are skipped.
func (t Tables) RowByID(table, id string) (dynjson.Value, error) {
	rows, err := t.Table(table)
	if err != nil {
		return dynjson.Value{}, err
	}
	for _, row := range rows {
		rid, err := row.Field("id").Str()
		if err != nil {
			continue
		}
		if rid == id {
			return row, nil
		}
	}
	return dynjson.Value{}, fmt.Errorf("table %q row %q: %w", table, id, domain.ErrResolution)
}
