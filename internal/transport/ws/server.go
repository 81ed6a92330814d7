package ws

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/cwrk-planet/activity-service/internal/domain"
	"github.com/cwrk-planet/activity-service/pkg/httputil"

	"github.com/gorilla/websocket"
)

type ActivityReader interface {
	GetActivity(ctx context.Context, name string) (domain.Activity, error)
}

type Server struct {
	upgrader websocket.Upgrader
	hub      *Hub
	reader   ActivityReader

	pingEvery time.Duration
}

func NewServer(hub *Hub, reader ActivityReader) *Server {
	return &Server{
		hub:    hub,
		reader: reader,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		pingEvery: 15 * time.Second,
	}
}

// SetPingInterval sets how often idle connections are pinged; a client is
// dropped after two intervals without a pong.
func (s *Server) SetPingInterval(d time.Duration) {
	if d > 0 {
		s.pingEvery = d
	}
}

// HandleWS streams roster changes: GET /ws/activities/{name}
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	name := httputil.URLParam(r, "name")
	if _, err := s.reader.GetActivity(r.Context(), name); err != nil {
		if errors.Is(err, domain.ErrActivityNotFound) {
			httputil.Detail(w, http.StatusNotFound, "Activity not found")
			return
		}
		slog.ErrorContext(r.Context(), "ws get activity failed", "activity", name, "err", err)
		httputil.Detail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader has already replied
		slog.Warn("ws upgrade failed", "activity", name, "err", err)
		return
	}

	c := newWsConn(conn, name)
	s.hub.Add(c)
	defer func() {
		s.hub.Remove(c)
		_ = c.Close()
		_ = conn.Close()
	}()

	if err := s.sendState(r.Context(), c); err != nil {
		slog.Warn("ws send initial state failed", "activity", name, "err", err)
		return
	}

	go s.writeLoop(r.Context(), c)
	s.readLoop(c)
}

func (s *Server) sendState(ctx context.Context, c *wsConn) error {
	a, err := s.reader.GetActivity(ctx, c.activity)
	if err != nil {
		return err
	}

	return c.Send(Message{
		Type: TypeState,
		Payload: StatePayload{
			Activity:        c.activity,
			MaxParticipants: a.MaxParticipants,
			Participants:    a.Participants,
		},
	})
}

// readLoop drains client frames until the connection fails; inbound messages are ignored.
func (s *Server) readLoop(c *wsConn) {
	c.conn.SetReadLimit(1 << 10)
	_ = c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *Server) writeLoop(ctx context.Context, c *wsConn) {
	ticker := time.NewTicker(s.pingEvery)
	defer func() {
		ticker.Stop()
		// unblocks readLoop
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(msg); err != nil {
				slog.Debug("ws write failed", "activity", c.activity, "err", err)
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		case <-ctx.Done():
			return
		case <-c.closed:
			return
		}
	}
}

const (
	writeWait  = 5 * time.Second
	sendBuffer = 16
)

var (
	errConnClosed   = errors.New("ws: connection closed")
	errSlowConsumer = errors.New("ws: send buffer full")
)

type wsConn struct {
	conn     *websocket.Conn
	activity string

	send      chan Message
	closeOnce sync.Once
	closed    chan struct{}
}

func newWsConn(c *websocket.Conn, activity string) *wsConn {
	return &wsConn{
		conn:     c,
		activity: activity,
		send:     make(chan Message, sendBuffer),
		closed:   make(chan struct{}),
	}
}

// Send queues msg for the write loop without blocking. A connection whose
// queue is full is closed.
func (c *wsConn) Send(msg Message) error {
	select {
	case <-c.closed:
		return errConnClosed
	default:
	}

	select {
	case c.send <- msg:
		return nil
	default:
		_ = c.Close()
		return errSlowConsumer
	}
}

// Close signals the write loop, which closes the socket.
func (c *wsConn) Close() error {
	c.closeOnce.Do(func() { close(c.closed) })
	return nil
}

func (c *wsConn) Activity() string { return c.activity }
