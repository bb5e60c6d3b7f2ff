package api

import (
	"context"
	"time"

	"github.com/lysyi3m/robot-insight/app/sheet"
)

type LoaderInterface interface {
	Load(ctx context.Context) *sheet.Dataset
	Invalidate()
	FetchedAt() (time.Time, bool)
	Peek() (*sheet.Dataset, time.Time, bool)
}

var _ LoaderInterface = (*sheet.Loader)(nil)

type GeneratorInterface interface {
	Run(channel Channel, records []sheet.Record) (string, error)
}

var _ GeneratorInterface = (*RSSGenerator)(nil)

// Channel describes the feed-level elements of the RSS output.
type Channel struct {
	Title       string
	Link        string
	Description string
	SelfLink    string
}

type RecordResponse struct {
	Date     string `json:"date,omitempty"`
	Category string `json:"category"`
	Priority string `json:"priority"`
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	KMImpact string `json:"km_impact"`
	Link     string `json:"link"`
	HasLink  bool   `json:"has_link"`
}

func newRecordResponse(record sheet.Record) RecordResponse {
	response := RecordResponse{
		Category: record.Category,
		Priority: record.Priority,
		Title:    record.Title,
		Summary:  record.Summary,
		KMImpact: record.KMImpact,
		Link:     record.Link,
		HasLink:  record.HasLink(),
	}
	if record.HasDate {
		response.Date = record.Date.Format("2006-01-02")
	}
	return response
}
