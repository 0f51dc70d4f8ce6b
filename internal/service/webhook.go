package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/joystie/graph-telemetry-api/internal/logger"
	"github.com/joystie/graph-telemetry-api/internal/metrics"
	"github.com/joystie/graph-telemetry-api/internal/model"
)

// WebhookService envia resultados de análise para webhooks
type WebhookService struct {
	httpClient *http.Client
}

// NewWebhookService cria um novo serviço de webhook
func NewWebhookService() *WebhookService {
	return &WebhookService{
		// Timeout controlado pelo contexto do processamento assíncrono
		httpClient: &http.Client{},
	}
}

// SendResult envia o payload de resultado para o webhook
func (w *WebhookService) SendResult(ctx context.Context, webhookURL string, payload model.WebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("serializar payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("criar request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		metrics.Inc(&metrics.Global().WebhooksFailed)
		return fmt.Errorf("enviar webhook: %w", err)
	}
	defer resp.Body.Close()

	// Descarta o corpo para reutilizar a conexão
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode >= 400 {
		metrics.Inc(&metrics.Global().WebhooksFailed)
		return fmt.Errorf("webhook retornou status %d", resp.StatusCode)
	}

	metrics.Inc(&metrics.Global().WebhooksSent)
	logger.Get(ctx).Info().
		Str("webhook_url", webhookURL).
		Int("status", resp.StatusCode).
		Msg("Webhook enviado")

	return nil
}

// SendError envia uma notificação de falha para o webhook
func (w *WebhookService) SendError(ctx context.Context, webhookURL, requestID string, analysisErr error) error {
	return w.SendResult(ctx, webhookURL, model.WebhookPayload{
		Success:   false,
		RequestID: requestID,
		Error:     analysisErr.Error(),
	})
}
