package websocket

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Client é o intermediário entre a conexão websocket e o hub
type Client struct {
	conn *websocket.Conn
	send chan []byte
	hub  *Hub

	// RequestFilter limita as mensagens recebidas a um request_id; vazio
	// recebe todas
	RequestFilter string
}

// ServeWS atende a requisição de upgrade do websocket.
// O query param request_id restringe o cliente ao progresso de uma análise.
func (h *Hub) ServeWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().Err(err).Msg("Falha no upgrade da conexão WebSocket")
		return
	}

	client := &Client{
		conn:          conn,
		send:          make(chan []byte, 256),
		hub:           h,
		RequestFilter: c.Query("request_id"),
	}

	h.register <- client

	go client.writePump()
	go client.readPump()
}

// readPump consome mensagens do cliente. O conteúdo é ignorado (o canal é
// unidirecional), mas a leitura é necessária para processar pings e detectar
// o fechamento da conexão.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Error().Err(err).Msg("Conexão WebSocket encerrada inesperadamente")
			}
			break
		}
	}
}

// writePump envia mensagens do hub para a conexão
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub fechou o canal
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
