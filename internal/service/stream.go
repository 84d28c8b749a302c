package service

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"centralbank/internal/domain"
)

// Broadcaster is a best-effort, read-only push of newly applied,
// non-query transactions to connected observers — a superset of what a
// caller can already pull via QueryHistory, never a write path.
type Broadcaster struct {
	mu       sync.Mutex
	clients  map[*websocket.Conn]struct{}
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// NewBroadcaster builds an empty Broadcaster.
func NewBroadcaster(logger *zap.Logger) *Broadcaster {
	return &Broadcaster{
		clients: make(map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{
			// Any origin is accepted. The stream is unauthenticated:
			// every connected client receives every applied non-query
			// transaction in full, whichever accounts it involves.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

// ServeHTTP upgrades the connection and registers it as a subscriber
// until it disconnects or errors.
func (b *Broadcaster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		b.logger.Warn("stream upgrade failed", zap.Error(err))
		return
	}
	b.mu.Lock()
	b.clients[conn] = struct{}{}
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		delete(b.clients, conn)
		b.mu.Unlock()
		conn.Close()
	}()

	// The stream is push-only; drain and discard any client frames so
	// control frames are still processed and a client disconnect ends
	// the subscription.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Publish sends tx to every connected observer, dropping (and logging)
// any client whose write fails rather than blocking the caller that
// applied the transaction.
func (b *Broadcaster) Publish(tx domain.Transaction) {
	payload, err := json.Marshal(tx)
	if err != nil {
		b.logger.Warn("stream marshal failed", zap.Error(err))
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for conn := range b.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			delete(b.clients, conn)
			conn.Close()
		}
	}
}
