package websocket

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/joystie/graph-telemetry-api/internal/logger"
	"github.com/joystie/graph-telemetry-api/internal/metrics"
	"github.com/rs/zerolog"
)

// Hub mantém os clientes conectados e distribui atualizações de progresso
// das análises em andamento. Clientes podem assinar um request_id específico
// ou receber tudo.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client

	mutex  sync.RWMutex
	logger *zerolog.Logger
}

// ProgressUpdate é a mensagem de progresso de uma análise
type ProgressUpdate struct {
	Type      string    `json:"type"`
	RequestID string    `json:"request_id"`
	Stage     string    `json:"stage"`
	Message   string    `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	// writeWait tempo máximo para escrever uma mensagem
	writeWait = 10 * time.Second

	// pongWait tempo máximo de espera pelo próximo pong
	pongWait = 60 * time.Second

	// pingPeriod período de envio de pings; precisa ser menor que pongWait
	pingPeriod = (pongWait * 9) / 10

	// maxMessageSize tamanho máximo de mensagem aceito do cliente
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TODO: validar origem quando o domínio do app estiver fechado
		return true
	},
}

// NewHub cria um novo hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger.Global(),
	}
}

// Run executa o loop principal do hub
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.clients[client] = true
	metrics.Inc(&metrics.Global().WSConnections)

	h.logger.Info().
		Str("request_filter", client.RequestFilter).
		Int("connections", len(h.clients)).
		Msg("Cliente WebSocket registrado")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)

		h.logger.Info().
			Int("connections", len(h.clients)).
			Msg("Cliente WebSocket desconectado")
	}
}

func (h *Hub) broadcastMessage(message []byte) {
	// O filtro por request_id precisa do campo decodificado
	var update ProgressUpdate
	_ = json.Unmarshal(message, &update)

	h.mutex.RLock()
	defer h.mutex.RUnlock()

	for client := range h.clients {
		if client.RequestFilter != "" && client.RequestFilter != update.RequestID {
			continue
		}
		select {
		case client.send <- message:
			metrics.Inc(&metrics.Global().WSMessagesOut)
		default:
			h.logger.Warn().Msg("Buffer do cliente cheio, descartando mensagem")
		}
	}
}

// PublishProgress envia uma atualização de progresso aos assinantes
func (h *Hub) PublishProgress(requestID, stage, message string) {
	update := ProgressUpdate{
		Type:      "progress",
		RequestID: requestID,
		Stage:     stage,
		Message:   message,
		Timestamp: time.Now(),
	}

	data, err := json.Marshal(update)
	if err != nil {
		h.logger.Error().Err(err).Msg("Falha ao serializar atualização de progresso")
		return
	}

	select {
	case h.broadcast <- data:
	default:
		// Hub sobrecarregado; progresso é best-effort
	}
}
