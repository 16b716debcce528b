package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/tatamihq/tatami-backend/internal/config"
	"github.com/tatamihq/tatami-backend/internal/middleware"
	"github.com/tatamihq/tatami-backend/internal/service"
	ws "github.com/tatamihq/tatami-backend/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// An empty allowedOrigins slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
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

// WSHandler streams live roster events to instructor mat boards.
type WSHandler struct {
	rdb             *redis.Client
	scheduleService *service.ScheduleService
	log             zerolog.Logger
	upgrader        websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(rdb *redis.Client, scheduleService *service.ScheduleService, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		rdb:             rdb,
		scheduleService: scheduleService,
		log:             log.With().Str("component", "ws_handler").Logger(),
		upgrader:        buildUpgrader(allowedOrigins),
	}
}

// RosterStream godoc
// WS /ws/v1/classes/:id/roster/:date/stream
// Upgrades to WebSocket and forwards the session's check-in/check-out
// events as they are published.
func (h *WSHandler) RosterStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil || !claims.CanManageRosters() {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	classID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid class ID"})
		return
	}

	date, err := parseClassDate(c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}

	// Resolve the class before upgrading so a bad ID fails with a plain 404.
	if _, err := h.scheduleService.Lookup(c.Request.Context(), classID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "class not found"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	channel := config.CacheKey.RosterChannel(classID, date.Format(service.ClassDateLayout))
	sub := h.rdb.Subscribe(c.Request.Context(), channel)
	defer sub.Close()

	wsLog := h.log.With().
		Int("user_id", claims.UserID).
		Str("channel", channel).
		Logger()
	wsLog.Info().Msg("Mat board connected")

	// Pump roster events from Redis to the socket. The pump owns all writes
	// except pongs, which go through the same goroutine via pingCh.
	pingCh := make(chan struct{}, 1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		msgCh := sub.Channel()
		for {
			select {
			case msg, ok := <-msgCh:
				if !ok {
					return
				}
				conn.SetWriteDeadline(time.Now().Add(ws.WriteWait))
				if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
					return
				}
			case <-pingCh:
				if err := ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong}); err != nil {
					return
				}
			}
		}
	}()

	// Read loop: only pings are expected from the client; anything else is
	// reported and ignored. Exits when the client disconnects.
	for {
		var msg ws.RequestEnvelope
		if err := ws.ReadJSON(conn, &msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLog.Warn().Err(err).Msg("Unexpected close")
			} else {
				wsLog.Debug().Msg("Connection closed")
			}
			break
		}

		switch msg.Action {
		case ws.ActionPing:
			select {
			case pingCh <- struct{}{}:
			default:
			}
		default:
			wsLog.Warn().Str("action", string(msg.Action)).Msg("Unknown action")
		}
	}

	sub.Close()
	<-done
	wsLog.Info().Msg("Mat board disconnected")
}
