package websocket

import (
	"encoding/json"
	"testing"
	"time"
)

func newHubClient(h *Hub, filter string) *Client {
	c := &Client{
		hub:           h,
		send:          make(chan []byte, 8),
		RequestFilter: filter,
	}
	h.clients[c] = true
	return c
}

func TestHubBroadcastFiltering(t *testing.T) {
	h := NewHub()

	all := newHubClient(h, "")
	mine := newHubClient(h, "req-1")
	other := newHubClient(h, "req-2")

	update := ProgressUpdate{Type: "progress", RequestID: "req-1", Stage: "ocr", Timestamp: time.Now()}
	data, err := json.Marshal(update)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	h.broadcastMessage(data)

	if len(all.send) != 1 {
		t.Errorf("cliente sem filtro recebeu %d mensagens, esperada 1", len(all.send))
	}
	if len(mine.send) != 1 {
		t.Errorf("assinante do request recebeu %d mensagens, esperada 1", len(mine.send))
	}
	if len(other.send) != 0 {
		t.Errorf("assinante de outro request recebeu %d mensagens, esperada 0", len(other.send))
	}
}

func TestHubPublishProgress(t *testing.T) {
	h := NewHub()

	h.PublishProgress("req-9", "measuring", "")

	select {
	case data := <-h.broadcast:
		var update ProgressUpdate
		if err := json.Unmarshal(data, &update); err != nil {
			t.Fatalf("mensagem não é JSON: %v", err)
		}
		if update.Type != "progress" || update.RequestID != "req-9" || update.Stage != "measuring" {
			t.Errorf("mensagem = %+v", update)
		}
	default:
		t.Fatal("nada publicado no canal de broadcast")
	}
}

func TestHubPublishProgressNeverBlocks(t *testing.T) {
	h := NewHub()

	// Canal de broadcast sem consumidor: publicações excedentes são
	// descartadas em vez de travar a análise
	done := make(chan struct{})
	go func() {
		for i := 0; i < 200; i++ {
			h.PublishProgress("req-x", "stage", "")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("PublishProgress bloqueou com o hub parado")
	}
}
