package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lysyi3m/robot-insight/app/dashboard"
	"github.com/lysyi3m/robot-insight/app/sheet"
)

type Handler struct {
	loader    LoaderInterface
	filterer  *sheet.Filterer
	renderer  *dashboard.Renderer
	generator GeneratorInterface
	version   string
	now       func() time.Time
}

func NewHandler(loader LoaderInterface, filterer *sheet.Filterer, renderer *dashboard.Renderer, version string) *Handler {
	return &Handler{
		loader:    loader,
		filterer:  filterer,
		renderer:  renderer,
		generator: NewRSSGenerator(version),
		version:   version,
		now:       time.Now,
	}
}

func (h *Handler) GetDashboard(c *gin.Context) {
	dataset := h.loader.Load(c.Request.Context())
	query := h.parseQuery(c, dataset)
	partition := h.filterer.Run(dataset, query)

	page := h.renderer.Build(dataset, partition, query)

	c.HTML(http.StatusOK, dashboard.TemplateName, page)
}

func (h *Handler) PostRefresh(c *gin.Context) {
	h.loader.Invalidate()
	slog.Info("Sheet cache cleared", "client_ip", c.ClientIP())

	params := url.Values{}
	for _, key := range []string{"start", "end", "category"} {
		if value := c.PostForm(key); value != "" {
			params.Set(key, value)
		}
	}

	location := "/"
	if len(params) > 0 {
		location += "?" + params.Encode()
	}

	c.Redirect(http.StatusSeeOther, location)
}

func (h *Handler) APIGetBriefing(c *gin.Context) {
	dataset := h.loader.Load(c.Request.Context())
	query := h.parseQuery(c, dataset)
	partition := h.filterer.Run(dataset, query)

	priority := make([]RecordResponse, 0, len(partition.Priority))
	for _, record := range partition.Priority {
		priority = append(priority, newRecordResponse(record))
	}

	normal := make([]RecordResponse, 0, len(partition.Normal))
	for _, record := range partition.Normal {
		normal = append(normal, newRecordResponse(record))
	}

	c.Header("X-Briefing-Items", strconv.Itoa(partition.Len()))

	c.JSON(http.StatusOK, gin.H{
		"available":  !dataset.IsEmpty(),
		"start":      query.Start.Format(dashboard.DateLayout),
		"end":        query.End.Format(dashboard.DateLayout),
		"category":   query.Category,
		"categories": dataset.Categories(),
		"total":      partition.Len(),
		"priority":   priority,
		"normal":     normal,
	})
}

func (h *Handler) GetFeed(c *gin.Context) {
	dataset := h.loader.Load(c.Request.Context())
	query := h.parseQuery(c, dataset)
	partition := h.filterer.Run(dataset, query)

	records := slices.Concat(partition.Priority, partition.Normal)

	labels := h.renderer.Labels()
	base := requestBaseURL(c)
	channel := Channel{
		Title:       labels.PageTitle,
		Link:        base + "/",
		Description: fmt.Sprintf("%s | %s ~ %s", labels.Byline, query.Start.Format(dashboard.DateLayout), query.End.Format(dashboard.DateLayout)),
		SelfLink:    base + c.Request.URL.RequestURI(),
	}

	rss, err := h.generator.Run(channel, records)
	if err != nil {
		slog.Error("RSS generation error", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Header("Content-Type", "application/xml; charset=utf-8")
	c.Header("X-Feed-Items", strconv.Itoa(len(records)))
	if fetchedAt, ok := h.loader.FetchedAt(); ok {
		c.Header("X-Last-Updated", fetchedAt.Format(time.RFC3339))
	}

	c.String(http.StatusOK, rss)
}

// GetHealth reports the cache state without loading, so probes never reach
// the sheet.
func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": h.now().In(time.Local).Format(time.RFC3339),
		"version":   h.version,
		"available": false,
		"records":   0,
	}

	if dataset, fetchedAt, ok := h.loader.Peek(); ok {
		health["available"] = !dataset.IsEmpty()
		health["records"] = dataset.Len()
		health["fetched_at"] = fetchedAt.Format(time.RFC3339)
		health["cache_age"] = h.now().Sub(fetchedAt).Round(time.Second).String()
	}

	c.JSON(http.StatusOK, health)
}

// parseQuery reads the widget values. Dates default to today, and a category
// that is not among the dataset's options falls back to "All".
func (h *Handler) parseQuery(c *gin.Context, dataset *sheet.Dataset) sheet.Query {
	today := sheet.CalendarDay(h.now().In(time.Local))

	return sheet.Query{
		Start:    parseDate(c.Query("start"), today),
		End:      parseDate(c.Query("end"), today),
		Category: dashboard.SelectCategory(dataset.Categories(), c.Query("category")),
	}
}

func parseDate(value string, fallback time.Time) time.Time {
	if value == "" {
		return fallback
	}

	parsed, err := time.Parse(dashboard.DateLayout, value)
	if err != nil {
		slog.Debug("Ignoring malformed date parameter", "value", value, "error", err)
		return fallback
	}
	return parsed
}

func requestBaseURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}
