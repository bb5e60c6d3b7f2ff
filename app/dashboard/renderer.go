package dashboard

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"slices"

	"github.com/lysyi3m/robot-insight/app/sheet"
)

//go:embed templates/*.html
var templateFS embed.FS

const TemplateName = "dashboard.html"

// DateLayout is the layout of the date inputs and their query parameters.
const DateLayout = "2006-01-02"

type Page struct {
	Labels     Labels
	Byline     template.HTML
	Start      string
	End        string
	Category   string
	Categories []string
	Empty      bool
	Priority   []Card
	Normal     []Entry
}

// Card is one bordered block of the priority briefing.
type Card struct {
	Category string
	Title    string
	Impact   template.HTML
	Summary  template.HTML
	Link     string
	HasLink  bool
}

// Entry is one collapsible block of the trend list.
type Entry struct {
	Title   string
	Summary template.HTML
	Link    string
	HasLink bool
}

type Renderer struct {
	labels   Labels
	markdown *Markdown
	tmpl     *template.Template
}

func NewRenderer(labels Labels) (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Renderer{
		labels:   labels,
		markdown: NewMarkdown(),
		tmpl:     tmpl,
	}, nil
}

// Template exposes the parsed templates so the HTTP engine can render them.
func (r *Renderer) Template() *template.Template {
	return r.tmpl
}

func (r *Renderer) Labels() Labels {
	return r.labels
}

// Build maps one filtered view onto the page. When the dataset is empty only
// the warning is shown, whatever the partition holds.
func (r *Renderer) Build(dataset *sheet.Dataset, partition sheet.Partition, query sheet.Query) Page {
	start := query.Start.Format(DateLayout)
	end := query.End.Format(DateLayout)

	page := Page{
		Labels:     r.labels,
		Byline:     r.markdown.Render(fmt.Sprintf("**%s** | %s ~ %s", r.labels.Byline, start, end)),
		Start:      start,
		End:        end,
		Category:   query.Category,
		Categories: dataset.Categories(),
		Empty:      dataset.IsEmpty(),
	}

	if page.Empty {
		return page
	}

	page.Priority = make([]Card, 0, len(partition.Priority))
	for _, record := range partition.Priority {
		page.Priority = append(page.Priority, Card{
			Category: record.Category,
			Title:    record.Title,
			Impact:   r.markdown.Render(r.labels.ImpactPrefix + record.KMImpact),
			Summary:  r.markdown.Render(record.Summary),
			Link:     record.Link,
			HasLink:  record.HasLink(),
		})
	}

	page.Normal = make([]Entry, 0, len(partition.Normal))
	for _, record := range partition.Normal {
		page.Normal = append(page.Normal, Entry{
			Title:   record.Title,
			Summary: r.markdown.Render(r.labels.SummaryPrefix + record.Summary),
			Link:    record.Link,
			HasLink: record.HasLink(),
		})
	}

	return page
}

func (r *Renderer) Render(w io.Writer, page Page) error {
	return r.tmpl.ExecuteTemplate(w, TemplateName, page)
}

// SelectCategory keeps the requested category when it is one of the options
// and falls back to "All" otherwise.
func SelectCategory(categories []string, requested string) string {
	if slices.Contains(categories, requested) {
		return requested
	}
	return sheet.AllCategories
}
