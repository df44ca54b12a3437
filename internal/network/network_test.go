package network_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hivelings-server/internal/network"
	"hivelings-server/pkg/api"
)

// mindServer отвечает на каждый DECIDE тем, что вернет reply.
func mindServer(t *testing.T, reply func(req api.MindRequest) (api.MindResponse, bool)) string {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			var req api.MindRequest
			if err := conn.ReadJSON(&req); err != nil {
				return
			}
			resp, ok := reply(req)
			if !ok {
				continue
			}
			if err := conn.WriteJSON(resp); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func decision(req api.MindRequest, output string) api.MindResponse {
	return api.MindResponse{Type: api.MsgDecision, RequestID: req.RequestID, Output: json.RawMessage(output)}
}

func TestRemoteMindRoundTrip(t *testing.T) {
	url := mindServer(t, func(req api.MindRequest) (api.MindResponse, bool) {
		// Разум видит тот же input, что отправил движок
		out := `{"decision":{"type":"MOVE","distance":` + jsonNumber(req.Input.MaxMoveDistance) + `},"memory":"` + req.Input.RandomSeed + `"}`
		return decision(req, out), true
	})

	m := network.NewRemoteMind(url, time.Second)
	defer m.Close()

	for i := 0; i < 3; i++ {
		out, err := m.Decide(context.Background(), api.Input{MaxMoveDistance: 0.75, RandomSeed: "seed"})
		require.NoError(t, err)
		assert.Equal(t, "MOVE", out.Decision.Type)
		require.NotNil(t, out.Decision.Distance)
		assert.Equal(t, 0.75, *out.Decision.Distance)
		assert.Equal(t, "seed", out.Memory)
	}
}

func jsonNumber(f float64) string {
	b, _ := json.Marshal(f)
	return string(b)
}

func TestRemoteMindSchemaInvalidOutputIsPenalty(t *testing.T) {
	url := mindServer(t, func(req api.MindRequest) (api.MindResponse, bool) {
		return decision(req, `{"decision":{"type":"TURN"},"memory":"new"}`), true
	})

	m := network.NewRemoteMind(url, time.Second)
	defer m.Close()

	old := "old"
	out, err := m.Decide(context.Background(), api.Input{Memory: &old})
	require.NoError(t, err)
	assert.Empty(t, out.Decision.Type)
	assert.Equal(t, "old", out.Memory)
}

func TestRemoteMindSkipsStaleResponses(t *testing.T) {
	// Сервер, который сначала шлет устаревший ответ, затем настоящий
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		var req api.MindRequest
		if err := conn.ReadJSON(&req); err != nil {
			return
		}
		stale := decision(req, `{"decision":{"type":"DROP"},"memory":""}`)
		stale.RequestID = req.RequestID + 100
		_ = conn.WriteJSON(stale)
		_ = conn.WriteJSON(decision(req, `{"decision":{"type":"WAIT"},"memory":""}`))
		_, _, _ = conn.ReadMessage()
	}))
	defer srv.Close()

	m := network.NewRemoteMind("ws"+strings.TrimPrefix(srv.URL, "http"), time.Second)
	defer m.Close()

	out, err := m.Decide(context.Background(), api.Input{})
	require.NoError(t, err)
	assert.Equal(t, "WAIT", out.Decision.Type)
}

func TestRemoteMindTimeout(t *testing.T) {
	url := mindServer(t, func(req api.MindRequest) (api.MindResponse, bool) {
		return api.MindResponse{}, false // никогда не отвечает
	})

	m := network.NewRemoteMind(url, 100*time.Millisecond)
	defer m.Close()

	_, err := m.Decide(context.Background(), api.Input{})
	assert.ErrorIs(t, err, network.ErrMindTimeout)
}

func TestRemoteMindContextCancel(t *testing.T) {
	url := mindServer(t, func(req api.MindRequest) (api.MindResponse, bool) {
		return api.MindResponse{}, false
	})

	m := network.NewRemoteMind(url, 5*time.Second)
	defer m.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := m.Decide(ctx, api.Input{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRemoteMindErrorResponse(t *testing.T) {
	url := mindServer(t, func(req api.MindRequest) (api.MindResponse, bool) {
		return api.MindResponse{Type: api.MsgError, RequestID: req.RequestID, Error: "brain freeze"}, true
	})

	m := network.NewRemoteMind(url, time.Second)
	defer m.Close()

	_, err := m.Decide(context.Background(), api.Input{})
	assert.ErrorIs(t, err, network.ErrMindUnavailable)
	assert.Contains(t, err.Error(), "brain freeze")
}

func TestRemoteMindUnreachable(t *testing.T) {
	m := network.NewRemoteMind("ws://127.0.0.1:1/mind", 200*time.Millisecond)
	_, err := m.Decide(context.Background(), api.Input{})
	assert.ErrorIs(t, err, network.ErrMindUnavailable)
}

func TestBroadcaster(t *testing.T) {
	b := network.NewBroadcaster()
	id1, ch1 := b.Register()
	_, ch2 := b.Register()
	assert.NotEqual(t, network.SubscriberID(0), id1)
	assert.Equal(t, 2, b.SubscriberCount())

	b.Broadcast(api.TickUpdate{Type: api.MsgTick, Tick: 1})
	assert.Equal(t, 1, (<-ch1).Tick)
	assert.Equal(t, 1, (<-ch2).Tick)

	b.Unregister(id1)
	_, open := <-ch1
	assert.False(t, open)
	assert.Equal(t, 1, b.SubscriberCount())

	// Переполненный канал не блокирует рассылку
	for i := 0; i < 500; i++ {
		b.Broadcast(api.TickUpdate{Tick: i})
	}

	b.Close()
	assert.Equal(t, 0, b.SubscriberCount())
}
