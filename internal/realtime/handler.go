package realtime

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/eleven-am/sketch-backend/internal/sketch"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	maxMessageSize = 64 * 1024
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Handler streams pipeline progress over a websocket. Each request
// message produces a sequence of stage events followed by a result or
// error event on the same connection.
type Handler struct {
	service *sketch.Service
	logger  *slog.Logger
}

func NewHandler(service *sketch.Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.With("handler", "realtime"),
	}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/stream", h.HandleStream)
}

type streamRequest struct {
	Text    string `json:"text"`
	Size    string `json:"size"`
	Service string `json:"service"`
}

type streamEvent struct {
	Type    string          `json:"type"`
	Stage   sketch.Stage    `json:"stage,omitempty"`
	Result  *sketch.Outcome `json:"result,omitempty"`
	Message string          `json:"message,omitempty"`
}

func (h *Handler) HandleStream(c echo.Context) error {
	ws, err := wsUpgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer ws.Close()

	ws.SetReadLimit(maxMessageSize)
	_ = ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var req streamRequest
		if err := ws.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("websocket read failed", "error", err)
			}
			return nil
		}
		_ = ws.SetReadDeadline(time.Now().Add(pongWait))

		if req.Text == "" {
			h.writeEvent(ws, streamEvent{Type: "error", Message: "text is required"})
			continue
		}

		outcome, err := h.service.Process(c.Request().Context(), req.Text, sketch.Options{
			Size:             req.Size,
			PreferredBackend: req.Service,
			OnStage: func(stage sketch.Stage) {
				h.writeEvent(ws, streamEvent{Type: "stage", Stage: stage})
			},
		})
		if err != nil {
			h.writeEvent(ws, streamEvent{Type: "error", Message: "failed to process input"})
			continue
		}

		h.writeEvent(ws, streamEvent{Type: "result", Result: outcome})
	}
}

func (h *Handler) writeEvent(ws *websocket.Conn, event streamEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
	if err := ws.WriteMessage(websocket.TextMessage, data); err != nil {
		h.logger.Warn("websocket write failed", "error", err)
	}
}
