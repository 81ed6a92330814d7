package ws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cwrk-planet/activity-service/internal/memory"
	"github.com/cwrk-planet/activity-service/internal/seed"
	"github.com/cwrk-planet/activity-service/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	mu       sync.Mutex
	activity string
	got      []Message
}

func (c *fakeConn) Send(msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.got = append(c.got, msg)
	return nil
}

func (c *fakeConn) Close() error     { return nil }
func (c *fakeConn) Activity() string { return c.activity }

func TestHub_PublishRoutesByActivity(t *testing.T) {
	hub := NewHub()
	chess := &fakeConn{activity: "Chess Club"}
	art := &fakeConn{activity: "Art Studio"}
	hub.Add(chess)
	hub.Add(art)
	assert.Equal(t, 1, hub.Subscribers("Chess Club"))

	hub.Publish(service.RosterEvent{
		Type: service.EventUnregistered, Activity: "Chess Club", Email: "a@x", Participants: []string{},
	})

	require.Len(t, chess.got, 1)
	assert.Equal(t, TypeUnregistered, chess.got[0].Type)
	assert.Equal(t, RosterPayload{Activity: "Chess Club", Email: "a@x", Participants: []string{}}, chess.got[0].Payload)
	assert.Empty(t, art.got)

	hub.Remove(chess)
	hub.Remove(chess)
	assert.Equal(t, 0, hub.Subscribers("Chess Club"))
}

func newTestServer(t *testing.T, pingEvery time.Duration) (*httptest.Server, *service.SignupService) {
	t.Helper()
	repo := memory.NewActivityRepository([]seed.Activity{{
		Name:            "Chess Club",
		Description:     "Learn strategies and compete in chess tournaments",
		Schedule:        "Fridays, 3:30 PM - 5:00 PM",
		MaxParticipants: 2,
		Participants:    []string{"a@x"},
	}}, true)
	svc := service.NewSignupService(repo)
	hub := NewHub()
	svc.SetNotifier(hub)

	wsServer := NewServer(hub, svc)
	wsServer.SetPingInterval(pingEvery)

	r := chi.NewRouter()
	r.Get("/ws/activities/{name}", wsServer.HandleWS)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, svc
}

func wsURL(srv *httptest.Server, path string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + path
}

func TestServer_StreamsRoster(t *testing.T) {
	srv, svc := newTestServer(t, 0)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "/ws/activities/Chess%20Club"), nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var state struct {
		Type    string       `json:"type"`
		Payload StatePayload `json:"payload"`
	}
	require.NoError(t, conn.ReadJSON(&state))
	assert.Equal(t, TypeState, state.Type)
	assert.Equal(t, StatePayload{Activity: "Chess Club", MaxParticipants: 2, Participants: []string{"a@x"}}, state.Payload)

	_, err = svc.Signup(context.Background(), "Chess Club", "b@x")
	require.NoError(t, err)

	var ev struct {
		Type    string        `json:"type"`
		Payload RosterPayload `json:"payload"`
	}
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, TypeSignedUp, ev.Type)
	assert.Equal(t, RosterPayload{Activity: "Chess Club", Email: "b@x", Participants: []string{"a@x", "b@x"}}, ev.Payload)
}

func TestServer_UnknownActivity(t *testing.T) {
	srv, _ := newTestServer(t, 0)

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, "/ws/activities/Nonexistent%20Activity"), nil)
	require.ErrorIs(t, err, websocket.ErrBadHandshake)
	require.NotNil(t, resp)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_PingsAtConfiguredInterval(t *testing.T) {
	srv, _ := newTestServer(t, 20*time.Millisecond)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "/ws/activities/Chess%20Club"), nil)
	require.NoError(t, err)
	defer conn.Close()

	pinged := make(chan struct{}, 1)
	conn.SetPingHandler(func(appData string) error {
		select {
		case pinged <- struct{}{}:
		default:
		}
		return conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(time.Second))
	})
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	select {
	case <-pinged:
	case <-time.After(2 * time.Second):
		t.Fatal("no ping within 2s")
	}
}

func TestWsConn_SlowConsumerIsDropped(t *testing.T) {
	c := newWsConn(nil, "Chess Club")
	msg := Message{Type: TypeSignedUp, Payload: RosterPayload{Activity: "Chess Club"}}

	for i := 0; i < sendBuffer; i++ {
		require.NoError(t, c.Send(msg))
	}
	require.ErrorIs(t, c.Send(msg), errSlowConsumer)

	select {
	case <-c.closed:
	default:
		t.Fatal("connection not closed after overflow")
	}
	require.ErrorIs(t, c.Send(msg), errConnClosed)
}

func TestHub_BroadcastDoesNotWaitForReaders(t *testing.T) {
	hub := NewHub()
	c := newWsConn(nil, "Chess Club")
	hub.Add(c)
	defer hub.Remove(c)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 2*sendBuffer; i++ {
			hub.Publish(service.RosterEvent{Type: service.EventSignedUp, Activity: "Chess Club", Email: "a@x"})
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a connection nobody reads")
	}
	assert.Len(t, c.send, sendBuffer)
}
