package websocket

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"flixnet/pkg/models"
)

// Hub fans watchlist events out to the websocket connections of the user
// each event belongs to.
type Hub struct {
	clients    map[int64]map[*client]struct{}
	broadcast  chan models.WatchlistEvent
	register   chan *client
	unregister chan *client
	done       chan struct{}
	log        zerolog.Logger
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[int64]map[*client]struct{}),
		broadcast:  make(chan models.WatchlistEvent, 256),
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
		log:        logger,
	}
}

// Publish queues evt without blocking; when the queue is full the event is
// dropped.
func (h *Hub) Publish(evt models.WatchlistEvent) {
	select {
	case h.broadcast <- evt:
	default:
		h.log.Warn().Int64("user_id", evt.UserID).Msg("watchlist event queue full, drop event")
	}
}

func (h *Hub) join(c *client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(c *client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Run owns the client set until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for _, set := range h.clients {
				for c := range set {
					close(c.send)
				}
			}
			h.clients = make(map[int64]map[*client]struct{})
			return

		case c := <-h.register:
			set, ok := h.clients[c.userID]
			if !ok {
				set = make(map[*client]struct{})
				h.clients[c.userID] = set
			}
			set[c] = struct{}{}
			h.log.Debug().Int64("user_id", c.userID).Msg("watchlist subscriber connected")

		case c := <-h.unregister:
			h.drop(c)

		case evt := <-h.broadcast:
			data, err := json.Marshal(evt)
			if err != nil {
				h.log.Error().Err(err).Msg("marshal watchlist event")
				continue
			}
			for c := range h.clients[evt.UserID] {
				select {
				case c.send <- data:
				default:
					h.log.Warn().Int64("user_id", c.userID).Msg("subscriber send buffer full, removing")
					h.drop(c)
				}
			}
		}
	}
}

func (h *Hub) drop(c *client) {
	set, ok := h.clients[c.userID]
	if !ok {
		return
	}
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(h.clients, c.userID)
	}
	close(c.send)
	h.log.Debug().Int64("user_id", c.userID).Msg("watchlist subscriber disconnected")
}
