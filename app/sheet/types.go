package sheet

import (
	"slices"
	"strings"
	"time"
)

// Column names recognized in the CSV header. Anything else is ignored.
const (
	ColumnDate     = "Date"
	ColumnCategory = "Category"
	ColumnPriority = "Priority"
	ColumnTitle    = "Title"
	ColumnSummary  = "Summary"
	ColumnKMImpact = "KM_Impact"
	ColumnLink     = "Link"
)

var recognizedColumns = []string{
	ColumnDate,
	ColumnCategory,
	ColumnPriority,
	ColumnTitle,
	ColumnSummary,
	ColumnKMImpact,
	ColumnLink,
}

const (
	Placeholder   = "-"
	PriorityHigh  = "High"
	AllCategories = "All"
)

// Record is one row of the sheet with defaults already applied.
type Record struct {
	Date     time.Time // calendar day at UTC midnight, zero when HasDate is false
	HasDate  bool
	Category string
	Priority string
	Title    string
	Summary  string
	KMImpact string
	Link     string
}

// HasLink reports whether Link looks like something a browser can open.
func (r Record) HasLink() bool {
	return strings.HasPrefix(r.Link, "http")
}

func (r Record) IsHighPriority() bool {
	return r.Priority == PriorityHigh
}

// Dataset is the ordered, read-only result of one load.
type Dataset struct {
	records []Record
	columns map[string]bool
}

func NewDataset(columns []string, records []Record) *Dataset {
	ds := &Dataset{
		records: slices.Clone(records),
		columns: make(map[string]bool, len(columns)),
	}
	for _, column := range columns {
		ds.columns[column] = true
	}
	return ds
}

// EmptyDataset is what every failed load collapses to.
func EmptyDataset() *Dataset {
	return NewDataset(nil, nil)
}

func (d *Dataset) Records() []Record {
	return slices.Clone(d.records)
}

func (d *Dataset) Len() int {
	return len(d.records)
}

func (d *Dataset) IsEmpty() bool {
	return len(d.records) == 0
}

func (d *Dataset) HasColumn(name string) bool {
	return d.columns[name]
}

// Categories returns the selector options: "All" followed by the distinct
// Category values in first-seen order. Nil when there is nothing to select.
func (d *Dataset) Categories() []string {
	if d.IsEmpty() || !d.HasColumn(ColumnCategory) {
		return nil
	}

	seen := make(map[string]bool)
	categories := []string{AllCategories}
	for _, record := range d.records {
		if seen[record.Category] {
			continue
		}
		seen[record.Category] = true
		categories = append(categories, record.Category)
	}
	return categories
}

// CalendarDay drops the clock part of t, keeping the date as seen in t's location.
func CalendarDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
