package metrics

import (
	"sync/atomic"
	"time"
)

// Metrics concentra os contadores da aplicação. Todos os campos são
// atualizados com operações atômicas; não há lock.
type Metrics struct {
	// Análises
	AnalysesStarted   int64
	AnalysesCompleted int64
	AnalysesFailed    int64
	AnalysesCached    int64

	// OCR
	OCRCalls    int64
	OCRFailures int64

	// WebSocket
	WSConnections int64
	WSMessagesOut int64

	// Webhooks
	WebhooksSent   int64
	WebhooksFailed int64

	startedAt time.Time
}

var global = &Metrics{startedAt: time.Now()}

// Global retorna as métricas da aplicação
func Global() *Metrics { return global }

// Inc incrementa um contador atômico
func Inc(counter *int64) { atomic.AddInt64(counter, 1) }

// Snapshot é a visão serializável das métricas
type Snapshot struct {
	UptimeSeconds     int64 `json:"uptime_seconds"`
	AnalysesStarted   int64 `json:"analyses_started"`
	AnalysesCompleted int64 `json:"analyses_completed"`
	AnalysesFailed    int64 `json:"analyses_failed"`
	AnalysesCached    int64 `json:"analyses_cached"`
	OCRCalls          int64 `json:"ocr_calls"`
	OCRFailures       int64 `json:"ocr_failures"`
	WSConnections     int64 `json:"ws_connections"`
	WSMessagesOut     int64 `json:"ws_messages_out"`
	WebhooksSent      int64 `json:"webhooks_sent"`
	WebhooksFailed    int64 `json:"webhooks_failed"`
}

// Read captura uma visão consistente dos contadores
func (m *Metrics) Read() Snapshot {
	return Snapshot{
		UptimeSeconds:     int64(time.Since(m.startedAt).Seconds()),
		AnalysesStarted:   atomic.LoadInt64(&m.AnalysesStarted),
		AnalysesCompleted: atomic.LoadInt64(&m.AnalysesCompleted),
		AnalysesFailed:    atomic.LoadInt64(&m.AnalysesFailed),
		AnalysesCached:    atomic.LoadInt64(&m.AnalysesCached),
		OCRCalls:          atomic.LoadInt64(&m.OCRCalls),
		OCRFailures:       atomic.LoadInt64(&m.OCRFailures),
		WSConnections:     atomic.LoadInt64(&m.WSConnections),
		WSMessagesOut:     atomic.LoadInt64(&m.WSMessagesOut),
		WebhooksSent:      atomic.LoadInt64(&m.WebhooksSent),
		WebhooksFailed:    atomic.LoadInt64(&m.WebhooksFailed),
	}
}
