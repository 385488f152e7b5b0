package websocket

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gorillaws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greenkit/core"
	"greenkit/realtime"
)

func TestHandlerStreamsEvents(t *testing.T) {
	hub := realtime.NewHub()
	srv := httptest.NewServer(Handler(hub))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := gorillaws.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// give the handler a moment to register its subscription
	time.Sleep(50 * time.Millisecond)
	hub.Broadcast(context.Background(), core.NewRewardUnlocked("alice", core.RoleMember, "mem-1", 500, 500))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var ev core.Event
	require.NoError(t, json.Unmarshal(msg, &ev))
	assert.Equal(t, core.EventRewardUnlocked, ev.Type)
	assert.Equal(t, "mem-1", ev.RewardID)
}
