package analytics

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/eleven-am/sketch-backend/internal/shared"
	"github.com/labstack/echo/v4"
)

type Handler struct {
	aggregator *Aggregator
	logger     *slog.Logger
}

func NewHandler(aggregator *Aggregator, logger *slog.Logger) *Handler {
	return &Handler{
		aggregator: aggregator,
		logger:     logger.With("handler", "analytics"),
	}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/analytics", h.GetAnalytics)
	g.GET("/performance-chart", h.GetPerformanceChart)
}

func (h *Handler) GetAnalytics(c echo.Context) error {
	return c.JSON(http.StatusOK, h.aggregator.Snapshot())
}

// chartPayload mirrors the shape chart.js consumes directly.
type chartPayload struct {
	Type string    `json:"type"`
	Data chartData `json:"data"`
}

type chartData struct {
	Labels   []string       `json:"labels"`
	Datasets []chartDataset `json:"datasets"`
}

type chartDataset struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BorderColor     string    `json:"borderColor,omitempty"`
	BackgroundColor string    `json:"backgroundColor,omitempty"`
}

func (h *Handler) GetPerformanceChart(c echo.Context) error {
	chartType := c.QueryParam("type")
	if chartType == "" {
		chartType = "accuracy"
	}

	report := h.aggregator.Snapshot()

	var payload chartPayload
	switch chartType {
	case "accuracy":
		payload = lineChart("Extraction Confidence", report.AccuracyTrend, "#4facfe")
	case "response_time":
		payload = lineChart("Response Time (ms)", report.ResponseTimeTrend, "#f5576c")
	case "popular_objects":
		payload = barChart("Objects", report.PopularObjects, "#43e97b")
	case "popular_colors":
		payload = barChart("Colors", report.PopularColors, "#a18cd1")
	default:
		return shared.BadRequest("invalid_chart_type", "unknown chart type: "+chartType)
	}

	return c.JSON(http.StatusOK, payload)
}

func lineChart(label string, series []float64, color string) chartPayload {
	labels := make([]string, len(series))
	for i := range series {
		labels[i] = fmt.Sprintf("%d", i+1)
	}
	return chartPayload{
		Type: "line",
		Data: chartData{
			Labels: labels,
			Datasets: []chartDataset{{
				Label:       label,
				Data:        series,
				BorderColor: color,
			}},
		},
	}
}

func barChart(label string, counts []ConceptCount, color string) chartPayload {
	labels := make([]string, len(counts))
	data := make([]float64, len(counts))
	for i, cc := range counts {
		labels[i] = cc.Name
		data[i] = float64(cc.Count)
	}
	return chartPayload{
		Type: "bar",
		Data: chartData{
			Labels: labels,
			Datasets: []chartDataset{{
				Label:           label,
				Data:            data,
				BackgroundColor: color,
			}},
		},
	}
}
