package api

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"html"
	"time"

	"github.com/lysyi3m/robot-insight/app/sheet"
)

type RSSGenerator struct {
	version string
}

func NewRSSGenerator(version string) *RSSGenerator {
	return &RSSGenerator{version: version}
}

func (g *RSSGenerator) Run(channel Channel, records []sheet.Record) (string, error) {
	var buf bytes.Buffer

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString("\n")
	buf.WriteString(`<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">`)
	buf.WriteString("\n  <channel>\n")

	g.writeElement(&buf, "title", channel.Title, 4)
	g.writeElement(&buf, "link", channel.Link, 4)
	g.writeElement(&buf, "description", channel.Description, 4)

	if channel.SelfLink != "" {
		buf.WriteString(fmt.Sprintf("    <atom:link href=\"%s\" rel=\"self\" type=\"application/rss+xml\" />\n",
			html.EscapeString(channel.SelfLink)))
	}

	g.writeElement(&buf, "lastBuildDate", time.Now().In(time.Local).Format(time.RFC1123Z), 4)
	g.writeElement(&buf, "generator", fmt.Sprintf("Robot-Insight/%s", g.version), 4)

	for _, record := range records {
		g.writeItem(&buf, record)
	}

	buf.WriteString("  </channel>\n</rss>")

	return buf.String(), nil
}

func (g *RSSGenerator) writeItem(buf *bytes.Buffer, record sheet.Record) {
	buf.WriteString("    <item>\n")

	buf.WriteString("      <guid isPermaLink=\"false\">")
	xml.EscapeText(buf, []byte(g.itemGUID(record)))
	buf.WriteString("</guid>\n")

	g.writeElement(buf, "title", fmt.Sprintf("[%s] %s", record.Category, record.Title), 6)

	if record.HasLink() {
		g.writeElement(buf, "link", record.Link, 6)
	}

	description := record.Summary
	if record.KMImpact != sheet.Placeholder {
		description = fmt.Sprintf("%s\n\nImpact: %s", record.Summary, record.KMImpact)
	}
	g.writeElement(buf, "description", description, 6)

	if record.HasDate {
		g.writeElement(buf, "pubDate", record.Date.Format(time.RFC1123Z), 6)
	}

	for _, category := range []string{record.Category, record.Priority} {
		if category != sheet.Placeholder {
			g.writeElement(buf, "category", category, 6)
		}
	}

	buf.WriteString("    </item>\n")
}

func (g *RSSGenerator) writeElement(buf *bytes.Buffer, tag, content string, indent int) {
	if content == "" {
		return
	}

	for i := 0; i < indent; i++ {
		buf.WriteByte(' ')
	}

	buf.WriteString("<")
	buf.WriteString(tag)
	buf.WriteString(">")
	xml.EscapeText(buf, []byte(content))
	buf.WriteString("</")
	buf.WriteString(tag)
	buf.WriteString(">\n")
}

// itemGUID is stable across reloads as long as the row keeps its date, title and link.
func (g *RSSGenerator) itemGUID(record sheet.Record) string {
	content := fmt.Sprintf("%s|%s|%s", record.Date.Format("2006-01-02"), record.Title, record.Link)

	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}
