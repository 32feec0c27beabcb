package websocket

import (
	"sync"
	"time"
)

// HubMetrics собирает счётчики хаба
type HubMetrics struct {
	totalConnections  int64
	activeConnections int64
	messagesSent      int64
	messagesDropped   int64
	messagesReceived  int64
	startTime         time.Time

	// Счётчики отправленных событий по типам
	eventTypeCounts map[string]int64

	mu sync.RWMutex
}

// NewHubMetrics создает пустые метрики
func NewHubMetrics() *HubMetrics {
	return &HubMetrics{
		startTime:       time.Now(),
		eventTypeCounts: make(map[string]int64),
	}
}

func (m *HubMetrics) connected() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.totalConnections++
	m.activeConnections++
}

func (m *HubMetrics) disconnected() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.activeConnections > 0 {
		m.activeConnections--
	}
}

func (m *HubMetrics) delivered(eventType string, sent, dropped int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messagesSent += sent
	m.messagesDropped += dropped
	m.eventTypeCounts[eventType]++
}

func (m *HubMetrics) received() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messagesReceived++
}

// ActiveConnections возвращает число подключённых клиентов
func (m *HubMetrics) ActiveConnections() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.activeConnections
}

// Snapshot возвращает копию метрик для /health
func (m *HubMetrics) Snapshot() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	events := make(map[string]int64, len(m.eventTypeCounts))
	for k, v := range m.eventTypeCounts {
		events[k] = v
	}
	return map[string]interface{}{
		"total_connections":  m.totalConnections,
		"active_connections": m.activeConnections,
		"messages_sent":      m.messagesSent,
		"messages_dropped":   m.messagesDropped,
		"messages_received":  m.messagesReceived,
		"events":             events,
		"uptime_seconds":     int64(time.Since(m.startTime).Seconds()),
	}
}
