package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/joystie/graph-telemetry-api/internal/logger"
	"github.com/joystie/graph-telemetry-api/internal/model"
	"golang.org/x/time/rate"
)

const (
	// DefaultTimeout timeout padrão para requisições ao motor remoto
	DefaultTimeout = 60 * time.Second

	// RequestsPerMinute limite conservador para o provedor de visão
	RequestsPerMinute = 60

	// RetryMaxAttempts número máximo de tentativas por reconhecimento
	RetryMaxAttempts = 3

	// RetryBackoff tempo de espera entre retries
	RetryBackoff = 2 * time.Second
)

// Client chama um serviço remoto de reconhecimento de texto em imagem
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient cria um cliente para o motor de OCR remoto
func NewClient(endpoint, apiKey string) *Client {
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     30 * time.Second,
			},
		},
		limiter: rate.NewLimiter(rate.Every(time.Minute/RequestsPerMinute), 5),
	}
}

type recognizeRequest struct {
	ImageData string `json:"image_data"`
}

type recognizeResponse struct {
	Text  string `json:"text"`
	Error string `json:"error,omitempty"`
}

// Recognize envia a imagem (PNG) ao motor remoto e retorna o texto bruto
func (c *Client) Recognize(ctx context.Context, image []byte) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	payload, err := json.Marshal(recognizeRequest{
		ImageData: base64.StdEncoding.EncodeToString(image),
	})
	if err != nil {
		return "", fmt.Errorf("serializar payload: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= RetryMaxAttempts; attempt++ {
		text, err := c.doRequest(ctx, payload)
		if err == nil {
			return text, nil
		}
		lastErr = err

		logger.Get(ctx).Warn().
			Err(err).
			Int("attempt", attempt).
			Msg("Falha no OCR remoto, tentando novamente")

		if attempt < RetryMaxAttempts {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(RetryBackoff):
			}
		}
	}

	return "", fmt.Errorf("%w: %v", model.ErrOCRUnavailable, lastErr)
}

func (c *Client) doRequest(ctx context.Context, payload []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("criar request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("enviar request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("ler resposta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d do motor de OCR", resp.StatusCode)
	}

	var parsed recognizeResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("resposta inválida do motor de OCR: %w", err)
	}
	if parsed.Error != "" {
		return "", fmt.Errorf("motor de OCR: %s", parsed.Error)
	}

	return parsed.Text, nil
}
