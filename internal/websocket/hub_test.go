package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flixnet/internal/auth"
	"flixnet/pkg/models"
)

func newTestServer(t *testing.T) (*httptest.Server, *Hub, *auth.Tokens) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	hub := NewHub(zerolog.Nop())
	go hub.Run(ctx)

	tokens := auth.NewTokens([]byte("ws-secret"), time.Hour)
	r := gin.New()
	r.GET("/ws/watchlist", auth.RequireJWT(tokens), HandleWebSocket(hub))

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, hub, tokens
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/watchlist"
}

func TestSubscriberReceivesOnlyOwnEvents(t *testing.T) {
	srv, hub, tokens := newTestServer(t)

	tok, err := tokens.Issue(1)
	require.NoError(t, err)
	header := http.Header{}
	header.Set("Authorization", "Bearer "+tok)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv), header)
	require.NoError(t, err)
	defer conn.Close()

	// registration happens asynchronously after the handshake, so keep
	// publishing until the subscriber sees something
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		ticker := time.NewTicker(20 * time.Millisecond)
		defer ticker.Stop()
		for {
			hub.Publish(models.WatchlistEvent{Type: models.WatchlistAdded, UserID: 2, MovieID: 99})
			hub.Publish(models.WatchlistEvent{Type: models.WatchlistAdded, UserID: 1, MovieID: 5})
			select {
			case <-stop:
				return
			case <-ticker.C:
			}
		}
	}()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var evt models.WatchlistEvent
	require.NoError(t, json.Unmarshal(data, &evt))
	assert.Equal(t, int64(1), evt.UserID)
	assert.Equal(t, int64(5), evt.MovieID)
	assert.Equal(t, models.WatchlistAdded, evt.Type)
}

func TestHandshakeRequiresToken(t *testing.T) {
	srv, _, _ := newTestServer(t)

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv), nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestPublishNeverBlocks(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			hub.Publish(models.WatchlistEvent{UserID: 1})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked without a running hub")
	}
}
