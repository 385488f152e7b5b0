// Package websocket serves the live event feed consumed by community
// dashboards. Each connection gets its own hub subscription and receives one
// JSON object per message, in the shape the SDK's event stream decodes.
package websocket

import (
	"net/http"
	"time"

	gorillaws "github.com/gorilla/websocket"

	"greenkit/core"
	"greenkit/realtime"
)

// feedBuffer holds a short burst of engagement events per connection; a
// dashboard that falls further behind misses events rather than backing up
// the hub.
const feedBuffer = 256

// writeTimeout bounds a single frame write so a stalled client drops its
// connection instead of pinning the stream goroutine.
const writeTimeout = 5 * time.Second

// Handler upgrades requests to WebSocket and streams the hub's events until
// the watcher channel closes or the client goes away.
func Handler(hub *realtime.Hub) http.Handler {
	// dashboards are served from other origins in development
	upgrader := gorillaws.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		id, feed := hub.Subscribe(feedBuffer)
		defer hub.Unsubscribe(id)
		stream(conn, feed)
	})
}

func stream(conn *gorillaws.Conn, feed <-chan core.Event) {
	for ev := range feed {
		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteMessage(gorillaws.TextMessage, realtime.MarshalJSON(ev)); err != nil {
			return
		}
	}
}
