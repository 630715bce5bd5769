// handler.go — the HTTP side of the Hub: upgrading requests to WebSocket
// connections and pumping Hub broadcasts down the wire.
package websocket

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// UpgradeRequired is middleware that rejects plain HTTP requests to WebSocket
// routes with 426 Upgrade Required instead of handing them to the upgrader.
func UpgradeRequired(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Serve returns the connection handler for GET /ws/:topic. Each connection
// subscribes to one topic ("standings" or "history"), immediately receives the
// latest payload for it, and then gets every subsequent broadcast until either
// side closes.
func Serve(hub *Hub, log *logrus.Logger) fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		topic := Topic(conn.Params("topic"))
		if topic != TopicStandings && topic != TopicHistory {
			conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "unknown topic"))
			conn.Close()
			return
		}

		client := &Client{Topic: topic, Send: make(chan []byte, 16)}
		hub.Register(client)
		log.WithField("topic", topic).Debug("websocket client connected")

		// Writer: drain the client's send channel onto the connection. The Hub
		// closes the channel when it drops a slow client, which ends this loop.
		done := make(chan struct{})
		go func() {
			defer close(done)
			for data := range client.Send {
				if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
					return
				}
			}
		}()

		// Reader: clients never send meaningful data, but reading is how we
		// learn the connection closed.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}

		hub.Unregister(client)
		<-done
		conn.Close()
		log.WithField("topic", topic).Debug("websocket client disconnected")
	})
}
