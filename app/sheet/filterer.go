package sheet

import "time"

type Query struct {
	Start    time.Time
	End      time.Time
	Category string
}

// Partition splits a filtered view into the briefing and the trend list.
// Every filtered record is in exactly one of the two slices.
type Partition struct {
	Priority []Record
	Normal   []Record
}

func (p Partition) Len() int {
	return len(p.Priority) + len(p.Normal)
}

type Filterer struct{}

func NewFilterer() *Filterer {
	return &Filterer{}
}

// Run narrows the dataset by date range and category and splits the result
// by priority. The dataset itself is left untouched.
func (f *Filterer) Run(dataset *Dataset, query Query) Partition {
	partition := Partition{
		Priority: make([]Record, 0),
		Normal:   make([]Record, 0),
	}

	filterDates := dataset.HasColumn(ColumnDate)
	splitPriority := dataset.HasColumn(ColumnPriority)
	start, end := CalendarDay(query.Start), CalendarDay(query.End)

	for _, record := range dataset.records {
		if filterDates && !f.inRange(record, start, end) {
			continue
		}
		if query.Category != AllCategories && record.Category != query.Category {
			continue
		}

		if splitPriority && record.IsHighPriority() {
			partition.Priority = append(partition.Priority, record)
		} else {
			partition.Normal = append(partition.Normal, record)
		}
	}

	return partition
}

func (f *Filterer) inRange(record Record, start, end time.Time) bool {
	if !record.HasDate {
		return false
	}
	return !record.Date.Before(start) && !record.Date.After(end)
}
