package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/sinavkoc/sinavkoc-backend/internal/config"
	"github.com/sinavkoc/sinavkoc-backend/internal/logger"
	"github.com/sinavkoc/sinavkoc-backend/internal/middleware"
	"github.com/sinavkoc/sinavkoc-backend/internal/service"
	ws "github.com/sinavkoc/sinavkoc-backend/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams analysis updates to a connected student.
type WSHandler struct {
	rdb             *redis.Client
	analysisService *service.AnalysisService
	log             zerolog.Logger
	upgrader        websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(rdb *redis.Client, analysisService *service.AnalysisService, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		rdb:             rdb,
		analysisService: analysisService,
		log:             logger.Component(log, "ws_handler"),
		upgrader:        buildUpgrader(allowedOrigins),
	}
}

// AnalysisStream godoc
// WS /ws/v1/student/analysis/stream?token=...
// Sends the current analysis on connect, then every refresh the analysis
// worker publishes for the student. Clients may send "ping" or "refresh".
func (h *WSHandler) AnalysisStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	studentID := claims.UserID

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	out := ws.NewWriter(conn)
	wsLog := h.log.With().Int("student_id", studentID).Logger()
	wsLog.Info().Msg("Student connected")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub := h.rdb.Subscribe(ctx, config.CacheKey.StudentAnalysisChannel(studentID))
	defer sub.Close()

	h.sendReport(ctx, out, wsLog, ws.EventSnapshot, studentID, false)
	go h.relay(ctx, sub, out, wsLog)

	for {
		var msg ws.RequestEnvelope
		if err := ws.ReadJSON(conn, &msg); err != nil {
			var closeErr *websocket.CloseError
			switch {
			case websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure):
				wsLog.Warn().Err(err).Msg("Unexpected close")
			case errors.As(err, &closeErr):
				wsLog.Debug().Msg("Connection closed")
			default:
				// Idle timeout or bad frame: the client has not closed yet.
				wsLog.Debug().Err(err).Msg("Closing stream")
				out.Close()
			}
			return
		}

		switch msg.Action {
		case ws.ActionPing:
			out.WriteTyped(ws.PongResponse{Event: ws.EventPong})
		case ws.ActionRefresh:
			h.sendReport(ctx, out, wsLog, ws.EventAnalysisUpdated, studentID, true)
		default:
			wsLog.Warn().Str("action", string(msg.Action)).Msg("Unknown action")
			out.WriteError("unknown action: " + string(msg.Action))
		}
	}
}

func (h *WSHandler) sendReport(ctx context.Context, out *ws.Writer, wsLog zerolog.Logger, event ws.Event, studentID int, recompute bool) {
	var (
		report *service.AnalysisReport
		err    error
	)
	if recompute {
		report, err = h.analysisService.Refresh(ctx, studentID)
	} else {
		report, err = h.analysisService.Get(ctx, studentID)
	}
	if err != nil {
		wsLog.Error().Err(err).Msg("Analysis failed")
		out.WriteError("analysis unavailable")
		return
	}

	raw, err := json.Marshal(report)
	if err != nil {
		wsLog.Error().Err(err).Msg("Marshal analysis failed")
		return
	}
	out.WriteAnalysis(event, raw)
}

// relay forwards pub/sub events until ctx is cancelled.
func (h *WSHandler) relay(ctx context.Context, sub *redis.PubSub, out *ws.Writer, wsLog zerolog.Logger) {
	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				out.Close()
				return
			}
			var event struct {
				Report json.RawMessage `json:"report"`
			}
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil || len(event.Report) == 0 {
				wsLog.Warn().Msg("Dropping malformed analysis event")
				continue
			}
			if err := out.WriteAnalysis(ws.EventAnalysisUpdated, event.Report); err != nil {
				wsLog.Debug().Err(err).Msg("Relay write failed")
				return
			}
		}
	}
}
