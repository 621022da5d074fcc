package dashboard

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/rodriguescarson/cfkit/internal/feed"
	"github.com/rodriguescarson/cfkit/internal/model"
)

const writeTimeout = 5 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// liveMessage is one frame pushed to /api/live clients.
type liveMessage struct {
	Type      string          `json:"type"`
	Contests  []model.Contest `json:"contests"`
	Count     int             `json:"count"`
	FetchedAt time.Time       `json:"fetchedAt"`
}

func newLiveMessage(snap feed.Snapshot) liveMessage {
	return liveMessage{
		Type:      "contests",
		Contests:  snap.Contests,
		Count:     len(snap.Contests),
		FetchedAt: snap.FetchedAt,
	}
}

func (s *Server) live(c *gin.Context) {
	if s.feed == nil {
		fail(c, http.StatusServiceUnavailable, errors.New("live feed disabled"))
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already answered the client.
		s.logger.Debug("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	updates, cancel := s.feed.Subscribe()
	defer cancel()

	s.logger.Debug("live client connected", "remote", c.ClientIP())

	// Reads only detect the close; clients never send data.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(s.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			s.logger.Debug("live client disconnected", "remote", c.ClientIP())
			return
		case snap, ok := <-updates:
			if !ok {
				conn.WriteControl(
					websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "feed stopped"),
					time.Now().Add(writeTimeout),
				)
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteJSON(newLiveMessage(snap)); err != nil {
				s.logger.Debug("live write failed", "error", err)
				return
			}
		case <-ticker.C:
			deadline := time.Now().Add(writeTimeout)
			if err := conn.WriteControl(websocket.PingMessage, []byte("keepalive"), deadline); err != nil {
				s.logger.Debug("failed to send ping", "error", err)
				return
			}
		}
	}
}
