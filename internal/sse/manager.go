package sse

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"mergington-activities/internal/logger"
	"mergington-activities/internal/model"
)

// Manager fans roster changes out to connected browsers over Server-Sent
// Events. Roster updates are global: every connected client sees every
// change, so clients are a flat set rather than keyed per user.
type Manager struct {
	clients    map[chan []byte]bool
	clientsMux sync.RWMutex

	logger *logger.Logger

	// Context for managing the manager's lifecycle
	ctx    context.Context
	cancel context.CancelFunc
}

func NewManager(logger *logger.Logger) *Manager {
	ctx, cancel := context.WithCancel(context.Background())

	return &Manager{
		clients: make(map[chan []byte]bool),
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// AddClient registers a new browser connection and returns its channel
func (m *Manager) AddClient() chan []byte {
	m.clientsMux.Lock()
	defer m.clientsMux.Unlock()

	channel := make(chan []byte, 10) // Buffered channel for this specific client
	m.clients[channel] = true

	m.logger.Info("Added SSE client, total clients:", len(m.clients))
	return channel
}

// RemoveClient drops a browser connection and closes its channel
func (m *Manager) RemoveClient(channel chan []byte) {
	m.clientsMux.Lock()
	defer m.clientsMux.Unlock()

	if _, exists := m.clients[channel]; !exists {
		return
	}
	delete(m.clients, channel)
	close(channel)

	m.logger.Info("Removed SSE client, remaining clients:", len(m.clients))
}

// BroadcastRosterUpdate pushes an activity's current roster to every
// connected client.
func (m *Manager) BroadcastRosterUpdate(activity *model.Activity) {
	m.clientsMux.RLock()
	defer m.clientsMux.RUnlock()

	if len(m.clients) == 0 {
		return // No active connections
	}

	event := map[string]interface{}{
		"type": "roster_update",
		"data": activity,
		"time": time.Now().Unix(),
	}

	jsonData, err := json.Marshal(event)
	if err != nil {
		m.logger.Error("Failed to marshal roster update:", err)
		return
	}

	for channel := range m.clients {
		select {
		case channel <- jsonData:
			// Message sent successfully
		case <-time.After(5 * time.Second):
			// Timeout - client might be disconnected
			m.logger.Warn("Timeout sending roster update to a client")
		}
	}
}

// Close shuts down the manager and all client channels
func (m *Manager) Close() {
	m.cancel()

	m.clientsMux.Lock()
	defer m.clientsMux.Unlock()

	for channel := range m.clients {
		close(channel)
		delete(m.clients, channel)
	}
}

// ConnectionCount returns the number of active connections
func (m *Manager) ConnectionCount() int {
	m.clientsMux.RLock()
	defer m.clientsMux.RUnlock()

	return len(m.clients)
}

// Done exposes the manager's lifecycle context to streaming handlers so they
// can unblock when the manager shuts down.
func (m *Manager) Done() <-chan struct{} {
	return m.ctx.Done()
}
