package sheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

type Parser struct {
	location *time.Location
}

func NewParser() *Parser {
	return &Parser{location: time.Local}
}

// Run parses a CSV export whose first row is the header. A blank Date cell
// leaves the record undated; an unparseable one fails the whole parse.
func (p *Parser) Run(r io.Reader) (*Dataset, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return EmptyDataset(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	index := make(map[string]int)
	for i, name := range header {
		if _, dup := index[name]; dup {
			continue
		}
		index[name] = i
	}

	var columns []string
	for _, name := range recognizedColumns {
		if _, ok := index[name]; ok {
			columns = append(columns, name)
		}
	}

	var records []Record
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}

		record, err := p.normalizeRecord(row, index)
		if err != nil {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, record)
	}

	return NewDataset(columns, records), nil
}

func (p *Parser) normalizeRecord(row []string, index map[string]int) (Record, error) {
	cell := func(column string) string {
		i, ok := index[column]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	record := Record{
		Category: orPlaceholder(cell(ColumnCategory)),
		Priority: orPlaceholder(cell(ColumnPriority)),
		Title:    orPlaceholder(cell(ColumnTitle)),
		Summary:  orPlaceholder(cell(ColumnSummary)),
		KMImpact: orPlaceholder(cell(ColumnKMImpact)),
		Link:     orPlaceholder(cell(ColumnLink)),
	}

	if raw := strings.TrimSpace(cell(ColumnDate)); raw != "" {
		parsed, err := dateparse.ParseIn(normalizeDate(raw), p.location)
		if err != nil {
			return Record{}, fmt.Errorf("invalid Date %q: %w", raw, err)
		}
		record.Date = CalendarDay(parsed)
		record.HasDate = true
	}

	return record, nil
}

// dottedDate matches the Korean display format of spreadsheet dates, e.g. "2024. 1. 15.".
var dottedDate = regexp.MustCompile(`^(\d{4})\.\s*(\d{1,2})\.\s*(\d{1,2})\.?$`)

func normalizeDate(raw string) string {
	m := dottedDate.FindStringSubmatch(raw)
	if m == nil {
		return raw
	}
	return fmt.Sprintf("%s-%s-%s", m[1], padDay(m[2]), padDay(m[3]))
}

func padDay(value string) string {
	if len(value) == 1 {
		return "0" + value
	}
	return value
}

func orPlaceholder(value string) string {
	if strings.TrimSpace(value) == "" {
		return Placeholder
	}
	return value
}
