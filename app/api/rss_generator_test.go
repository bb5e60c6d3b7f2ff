package api

import (
	"strings"
	"testing"
	"time"

	"github.com/lysyi3m/robot-insight/app/sheet"
	"github.com/mmcdole/gofeed"
)

func TestRSSGeneratorRun(t *testing.T) {
	generator := NewRSSGenerator("1.2.3")

	channel := Channel{
		Title:       "Robot Intelligence Report",
		Link:        "http://localhost:8501/",
		Description: "Team | 2024-01-01 ~ 2024-01-02",
		SelfLink:    "http://localhost:8501/feed.xml?category=A&start=2024-01-01",
	}
	records := []sheet.Record{
		{
			Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), HasDate: true,
			Category: "A & B", Priority: "High", Title: "Robots & drones rising",
			Summary: "Summary", KMImpact: "Impact", Link: "https://example.com/a?x=1&y=2",
		},
		{
			Category: sheet.Placeholder, Priority: sheet.Placeholder, Title: "Undated",
			Summary: sheet.Placeholder, KMImpact: sheet.Placeholder, Link: "ftp://example.com",
		},
	}

	rss, err := generator.Run(channel, records)
	if err != nil {
		t.Fatalf("Failed to generate RSS: %v", err)
	}

	if !strings.Contains(rss, `<?xml version="1.0" encoding="UTF-8"?>`) {
		t.Error("RSS should contain XML declaration")
	}
	if !strings.Contains(rss, "Robot-Insight/1.2.3") {
		t.Error("RSS should carry the generator version")
	}
	if !strings.Contains(rss, `category=A&amp;start=2024-01-01`) {
		t.Error("Self link should be escaped")
	}
	if strings.Contains(rss, "<link>ftp://") {
		t.Error("Non-http links should not be emitted")
	}

	feed, err := gofeed.NewParser().ParseString(rss)
	if err != nil {
		t.Fatalf("Generated RSS did not parse: %v", err)
	}

	if len(feed.Items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(feed.Items))
	}

	first := feed.Items[0]
	if first.Title != "[A & B] Robots & drones rising" {
		t.Errorf("Expected escaped title to round-trip, got '%s'", first.Title)
	}
	if first.Link != "https://example.com/a?x=1&y=2" {
		t.Errorf("Expected link to round-trip, got '%s'", first.Link)
	}
	if first.PublishedParsed == nil || !first.PublishedParsed.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Expected pubDate 2024-01-01, got %v", first.PublishedParsed)
	}
	if !strings.Contains(first.Description, "Impact: Impact") {
		t.Errorf("Expected impact in description, got '%s'", first.Description)
	}
	if len(first.Categories) != 2 || first.Categories[1] != "High" {
		t.Errorf("Expected categories [A & B, High], got %v", first.Categories)
	}

	second := feed.Items[1]
	if second.Published != "" {
		t.Errorf("Expected no pubDate for undated record, got '%s'", second.Published)
	}
	if len(second.Categories) != 0 {
		t.Errorf("Expected no categories for placeholder values, got %v", second.Categories)
	}
}

func TestRSSGeneratorStableGUID(t *testing.T) {
	generator := NewRSSGenerator("dev")
	record := sheet.Record{Title: "Same", Link: "http://x"}

	if generator.itemGUID(record) != generator.itemGUID(record) {
		t.Error("Expected GUID to be stable for the same record")
	}

	other := record
	other.Title = "Different"
	if generator.itemGUID(record) == generator.itemGUID(other) {
		t.Error("Expected GUID to change with the title")
	}
}

func TestRSSGeneratorEmpty(t *testing.T) {
	rss, err := NewRSSGenerator("dev").Run(Channel{Title: "Empty"}, nil)
	if err != nil {
		t.Fatalf("Failed to generate RSS: %v", err)
	}
	if strings.Contains(rss, "<item>") {
		t.Error("Expected no items")
	}
	if !strings.Contains(rss, "</channel>\n</rss>") {
		t.Error("Expected well-formed closing tags")
	}
}
