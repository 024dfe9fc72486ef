// Package events fans dataset change notifications out to websocket clients.
package events

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/de-tools/defect-atlas/pkg/adapters"
	"github.com/de-tools/defect-atlas/pkg/models/api"
	"github.com/de-tools/defect-atlas/pkg/models/domain"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	subscriberBuffer = 16
	writeTimeout     = 5 * time.Second
)

// Hub delivers every published event to all current subscribers. A
// subscriber whose buffer is full misses the event rather than blocking
// the publisher.
type Hub struct {
	mu       sync.Mutex
	next     int
	subs     map[int]chan api.DatasetEvent
	upgrader websocket.Upgrader
}

func NewHub() *Hub {
	return &Hub{
		subs: make(map[int]chan api.DatasetEvent),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

func (h *Hub) Publish(ctx context.Context, event domain.DatasetEvent) {
	msg := adapters.MapDatasetEventDomainToApi(event)

	h.mu.Lock()
	defer h.mu.Unlock()
	for id, ch := range h.subs {
		select {
		case ch <- msg:
		default:
			zerolog.Ctx(ctx).Warn().Int("subscriber", id).Str("type", event.Type).Msg("subscriber lagging, event dropped")
		}
	}
}

func (h *Hub) Subscribe() (int, <-chan api.DatasetEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.next
	h.next++
	ch := make(chan api.DatasetEvent, subscriberBuffer)
	h.subs[id] = ch
	return id, ch
}

func (h *Hub) Unsubscribe(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ch, ok := h.subs[id]; ok {
		delete(h.subs, id)
		close(ch)
	}
}

func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// ServeHTTP upgrades the request and streams events until the client goes
// away or the request context ends.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	id, updates := h.Subscribe()
	defer h.Unsubscribe(id)

	// Clients only ever send close frames; reading detects them.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					logger.Debug().Err(err).Msg("websocket closed")
				}
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			return
		case <-r.Context().Done():
			return
		case event, ok := <-updates:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		}
	}
}
