package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joystie/graph-telemetry-api/internal/logger"
	"github.com/joystie/graph-telemetry-api/internal/model"
	"github.com/joystie/graph-telemetry-api/internal/service"
)

// AnalyzeHandler manipula requisições de análise de screenshot
type AnalyzeHandler struct {
	analyzeService *service.AnalyzeService
	webhookService *service.WebhookService
}

// NewAnalyzeHandler cria um novo handler de análise
func NewAnalyzeHandler(analyzeService *service.AnalyzeService, webhookService *service.WebhookService) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzeService: analyzeService,
		webhookService: webhookService,
	}
}

// Analyze processa um screenshot de tempo de tela e retorna as horas
// estimadas para o dia alvo. Com webhook_url no payload, o processamento é
// assíncrono e o resultado é entregue no webhook.
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	var req model.AnalyzeRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Success: false,
			Error:   "payload inválido",
			Details: err.Error(),
		})
		return
	}

	log := logger.FromGin(c)
	log.Info().
		Str("target_day", req.TargetDay).
		Str("child_id", req.ChildID).
		Bool("async", req.WebhookURL != "").
		Msg("Iniciando análise")

	// Processamento assíncrono via webhook
	if req.WebhookURL != "" {
		requestID := logger.GetRequestID(c.Request.Context())
		go h.processAsync(requestID, req)

		c.JSON(http.StatusAccepted, model.Response{
			Success: true,
			Data:    gin.H{"request_id": requestID},
		})
		return
	}

	result, err := h.analyzeService.Analyze(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.AnalyzeResponse{
		Success: true,
		Result:  result,
	})
}

// processAsync executa a análise fora do ciclo da requisição e entrega o
// resultado no webhook
func (h *AnalyzeHandler) processAsync(requestID string, req model.AnalyzeRequest) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	ctx = logger.WithRequestID(ctx, requestID)

	log := logger.Get(ctx)

	result, err := h.analyzeService.Analyze(ctx, req)
	if err != nil {
		log.Error().Err(err).Msg("Erro na análise assíncrona")
		if webhookErr := h.webhookService.SendError(ctx, req.WebhookURL, requestID, err); webhookErr != nil {
			log.Error().Err(webhookErr).Msg("Erro ao enviar webhook de falha")
		}
		return
	}

	payload := model.WebhookPayload{
		Success:   true,
		RequestID: requestID,
		ChildID:   req.ChildID,
		Result:    result,
	}
	if err := h.webhookService.SendResult(ctx, req.WebhookURL, payload); err != nil {
		log.Error().Err(err).Msg("Erro ao enviar webhook de sucesso")
	}
}

// handleError trata erros e retorna resposta apropriada
func (h *AnalyzeHandler) handleError(c *gin.Context, err error) {
	logger.FromGin(c).Error().Err(err).Msg("Erro na análise")

	switch {
	case errors.Is(err, model.ErrEmptyImage), errors.Is(err, model.ErrInvalidImage):
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Success: false,
			Error:   "imagem inválida",
			Details: "envie um screenshot PNG ou JPEG em base64",
		})
	case errors.Is(err, model.ErrImageTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, model.ErrorResponse{
			Success: false,
			Error:   "imagem muito grande",
			Details: "o limite é 10MB",
		})
	default:
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Success: false,
			Error:   "erro interno",
			Details: err.Error(),
		})
	}
}
