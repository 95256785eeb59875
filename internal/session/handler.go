package session

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/eleven-am/sketch-backend/internal/shared"
	"github.com/labstack/echo/v4"
)

type Handler struct {
	store  *Store
	logger *slog.Logger
}

func NewHandler(store *Store, logger *slog.Logger) *Handler {
	return &Handler{
		store:  store,
		logger: logger.With("handler", "session"),
	}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/sessions", h.List)
	g.GET("/sessions/:id", h.Get)
	g.GET("/search", h.Search)
	g.GET("/stats", h.Stats)
}

func (h *Handler) List(c echo.Context) error {
	limit := 10
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return shared.BadRequest("invalid_limit", "limit must be a positive integer")
		}
		if parsed > 100 {
			parsed = 100
		}
		limit = parsed
	}

	records, err := h.store.Recent(c.Request().Context(), limit)
	if err != nil {
		h.logger.Error("list sessions failed", "error", err)
		return shared.InternalError("list_failed", "failed to list sessions")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"sessions": records,
		"count":    len(records),
	})
}

func (h *Handler) Get(c echo.Context) error {
	id := c.Param("id")

	record, err := h.store.GetByID(c.Request().Context(), id)
	if err == shared.ErrNotFound {
		return shared.NotFound("session_not_found", "session not found")
	}
	if err != nil {
		h.logger.Error("get session failed", "id", id, "error", err)
		return shared.InternalError("get_failed", "failed to get session")
	}

	return c.JSON(http.StatusOK, record)
}

func (h *Handler) Search(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("q"))
	if query == "" {
		return shared.BadRequest("missing_query", "query parameter q is required")
	}

	limit := 10
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return shared.BadRequest("invalid_limit", "limit must be a positive integer")
		}
		limit = parsed
	}

	records, err := h.store.Search(c.Request().Context(), query, limit)
	if err != nil {
		h.logger.Error("search failed", "query", query, "error", err)
		return shared.InternalError("search_failed", "failed to search sessions")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"query":   query,
		"results": records,
		"count":   len(records),
	})
}

func (h *Handler) Stats(c echo.Context) error {
	count, err := h.store.Count(c.Request().Context())
	if err != nil {
		h.logger.Error("count sessions failed", "error", err)
		return shared.InternalError("stats_failed", "failed to compute stats")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"total_sessions":     count,
		"database_connected": h.store.DatabaseConnected(),
		"cache_connected":    h.store.CacheConnected(),
	})
}
