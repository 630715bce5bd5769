// Package websocket implements a WebSocket Hub for pushing live league updates.
// WebSockets are persistent two-way connections between the server and clients —
// unlike regular HTTP where the client always initiates the request, WebSockets let
// the server push data to clients instantly. Anyone with the standings page open
// sees the leaderboard move the moment a round is submitted or a match group is
// deleted, without polling the API repeatedly.
package websocket

import "sync" // sync provides synchronization primitives like mutexes for safe concurrent access

// Topic names a broadcast stream clients can subscribe to.
type Topic string

const (
	// TopicStandings carries the full recomputed leaderboard after every mutation.
	TopicStandings Topic = "standings"
	// TopicHistory signals that the match history changed (new group, deletion).
	TopicHistory Topic = "history"
)

// Client represents a single connected WebSocket client.
type Client struct {
	Topic Topic       // Which stream this client is subscribed to
	Send  chan []byte // Buffered channel of outgoing messages; the Hub sends data here, the WebSocket writes it to the client
}

// Message is a unit of data to broadcast to all clients subscribed to a topic.
type Message struct {
	Topic Topic
	Data  []byte // The raw bytes to send (JSON-encoded standings or history payloads)
}

// Hub manages all active WebSocket connections, grouped by topic.
// It runs in its own goroutine and processes registration, unregistration, and
// broadcast events through channels — this keeps all map mutation on a single
// goroutine, which avoids data races (concurrent map writes panic in Go).
type Hub struct {
	// clients is a nested map: topic -> set of Client pointers.
	// A map[*Client]bool as a "set" is a common Go idiom since Go has no built-in set.
	clients map[Topic]map[*Client]bool

	// latest remembers the last payload broadcast per topic so a client that
	// connects between submissions immediately receives the current state
	// instead of a blank page until the next mutation.
	latest map[Topic][]byte

	broadcast  chan *Message
	register   chan *Client
	unregister chan *Client

	// mu protects clients and latest where they're read outside the main loop.
	// A RWMutex allows multiple concurrent readers OR one exclusive writer.
	mu sync.RWMutex
}

// NewHub creates and initializes a Hub. The broadcast channel is buffered so
// handlers don't block if the Hub goroutine is briefly busy; register and
// unregister are unbuffered because those must complete synchronously.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[Topic]map[*Client]bool),
		latest:     make(map[Topic][]byte),
		broadcast:  make(chan *Message, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run is the Hub's main event loop. It must be called in a goroutine
// ("go hub.Run()") and blocks forever, processing one event at a time.
func (h *Hub) Run() {
	for {
		select {

		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.Topic] == nil {
				h.clients[client.Topic] = make(map[*Client]bool)
			}
			h.clients[client.Topic][client] = true
			replay := h.latest[client.Topic]
			h.mu.Unlock()

			// Catch the newcomer up with the most recent state for their topic.
			if replay != nil {
				select {
				case client.Send <- replay:
				default:
				}
			}

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.Topic]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					close(client.Send) // Signals the WebSocket writer goroutine to stop
					if len(clients) == 0 {
						delete(h.clients, client.Topic)
					}
				}
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.Lock()
			h.latest[msg.Topic] = msg.Data
			// Deliver under the lock; sends are non-blocking so this stays short.
			for client := range h.clients[msg.Topic] {
				select {
				case client.Send <- msg.Data:
				// If the buffer is full the client is too slow — drop it rather
				// than blocking the broadcast loop for everyone else. Removal
				// happens inline: re-sending to h.unregister from this goroutine
				// would deadlock the loop against itself.
				default:
					delete(h.clients[msg.Topic], client)
					close(client.Send)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast sends data to every client subscribed to the topic and retains it
// for replay to late joiners. Handlers call this after every successful
// submission or deletion with the freshly recomputed payloads.
func (h *Hub) Broadcast(topic Topic, data []byte) {
	h.broadcast <- &Message{Topic: topic, Data: data}
}

// Register adds a client to the Hub so it starts receiving broadcasts for its
// topic. Called when a WebSocket connection is opened.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client from the Hub when its connection closes.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}
