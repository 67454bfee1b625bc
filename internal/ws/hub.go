package ws

import (
	"context"
	"encoding/json"
	"sync"

	"hazard_duel/internal/logger"
	"hazard_duel/internal/service"
)

// StatusSource is the part of the match service the hub needs.
type StatusSource interface {
	Get(ctx context.Context, gameID string) (*service.MatchView, error)
	Subscribe(ctx context.Context, gameID string, fn func(service.StatusEvent)) (service.StatusEvent, func(), error)
}

// Hub fans status changes out to websocket clients. It holds one engine
// subscription per watched game.
type Hub struct {
	source StatusSource

	mu    sync.Mutex
	rooms map[string]*room
}

type room struct {
	gameID  string
	mu      sync.Mutex
	clients map[*Client]struct{}
	// last is the newest status message; joining clients start from it
	last   []byte
	cancel func()
}

func NewHub(source StatusSource) *Hub {
	return &Hub{
		source: source,
		rooms:  make(map[string]*room),
	}
}

// Join adds c to the game's room and queues the current status for it. The
// client sees that status first and every later transition after it.
func (h *Hub) Join(ctx context.Context, gameID string, c *Client) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	r, ok := h.rooms[gameID]
	if !ok {
		r = &room{gameID: gameID, clients: make(map[*Client]struct{})}
		current, cancel, err := h.source.Subscribe(ctx, gameID, r.broadcast)
		if err != nil {
			return err
		}
		r.cancel = cancel
		r.mu.Lock()
		// a broadcast that already landed is newer than current
		if r.last == nil {
			r.last = statusMessage(current)
		}
		r.mu.Unlock()
		h.rooms[gameID] = r
	}

	r.mu.Lock()
	r.clients[c] = struct{}{}
	c.enqueue(r.last)
	n := len(r.clients)
	r.mu.Unlock()

	logger.ForGame(gameID).Debug("ws client joined", "player_id", c.PlayerID, "watchers", n)
	return nil
}

// Leave removes c; the last client out drops the subscription.
func (h *Hub) Leave(gameID string, c *Client) {
	h.mu.Lock()
	r, ok := h.rooms[gameID]
	if !ok {
		h.mu.Unlock()
		return
	}
	r.mu.Lock()
	delete(r.clients, c)
	empty := len(r.clients) == 0
	r.mu.Unlock()
	if empty {
		delete(h.rooms, gameID)
	}
	h.mu.Unlock()

	// outside the hub lock: cancel takes the match lock, which broadcasts hold
	if empty {
		r.cancel()
	}
	logger.ForGame(gameID).Debug("ws client left", "player_id", c.PlayerID)
}

// broadcast runs under the match lock and never blocks.
func (r *room) broadcast(ev service.StatusEvent) {
	msg := statusMessage(ev)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.last = msg
	for c := range r.clients {
		c.enqueue(msg)
	}
}

func statusMessage(ev service.StatusEvent) []byte {
	b, _ := json.Marshal(Message{
		Type:    MsgStatus,
		Payload: StatusPayload{GameID: ev.GameID, Status: ev.Status, Winner: ev.Winner},
	})
	return b
}
