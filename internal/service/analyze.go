package service

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/joystie/graph-telemetry-api/internal/cache"
	"github.com/joystie/graph-telemetry-api/internal/graph"
	"github.com/joystie/graph-telemetry-api/internal/logger"
	"github.com/joystie/graph-telemetry-api/internal/metrics"
	"github.com/joystie/graph-telemetry-api/internal/model"
	"github.com/joystie/graph-telemetry-api/internal/repository"
	"github.com/joystie/graph-telemetry-api/internal/websocket"
)

// MaxImageSize é o tamanho máximo aceito para a imagem decodificada (10MB)
const MaxImageSize = 10 * 1024 * 1024

// AnalyzeService orquestra a análise de um screenshot: decodifica o payload,
// executa o pipeline do estimador, publica progresso e persiste o resultado.
type AnalyzeService struct {
	recognizer graph.TextRecognizer
	cache      *cache.ResultCache
	repo       *repository.AnalysisRepository // nil desativa persistência
	hub        *websocket.Hub                 // nil desativa progresso
	maxHours   float64
}

// NewAnalyzeService cria o serviço de análise
func NewAnalyzeService(
	recognizer graph.TextRecognizer,
	resultCache *cache.ResultCache,
	repo *repository.AnalysisRepository,
	hub *websocket.Hub,
	maxHours float64,
) *AnalyzeService {
	return &AnalyzeService{
		recognizer: &countingRecognizer{inner: recognizer},
		cache:      resultCache,
		repo:       repo,
		hub:        hub,
		maxHours:   maxHours,
	}
}

// Analyze processa uma requisição de análise e retorna o resultado do dia
func (s *AnalyzeService) Analyze(ctx context.Context, req model.AnalyzeRequest) (*graph.Result, error) {
	log := logger.Get(ctx)
	requestID := logger.GetRequestID(ctx)

	data, err := decodeImagePayload(req.ImageData)
	if err != nil {
		return nil, err
	}

	key := cacheKey(data, req.TargetDay)
	if s.cache != nil {
		if result, ok := s.cache.Get(key); ok {
			metrics.Inc(&metrics.Global().AnalysesCached)
			log.Info().Str("day", req.TargetDay).Msg("Resultado servido do cache")
			return result, nil
		}
	}

	metrics.Inc(&metrics.Global().AnalysesStarted)

	estimator := graph.NewEstimator(s.recognizer)
	estimator.MaxHoursFallback = s.maxHours
	if s.hub != nil {
		estimator.OnProgress = func(stage string) {
			s.hub.PublishProgress(requestID, stage, "")
		}
	}

	result, err := estimator.AnalyzeImage(ctx, data, req.TargetDay)
	if err != nil {
		metrics.Inc(&metrics.Global().AnalysesFailed)
		if err == graph.ErrImageDecode {
			return nil, model.ErrInvalidImage
		}
		return nil, err
	}

	metrics.Inc(&metrics.Global().AnalysesCompleted)

	if s.cache != nil {
		s.cache.Set(key, result)
	}

	s.persist(ctx, requestID, req.ChildID, result)

	return result, nil
}

// persist grava o resultado no histórico; falha de banco não derruba a
// análise, apenas é registrada
func (s *AnalyzeService) persist(ctx context.Context, requestID, childID string, result *graph.Result) {
	if s.repo == nil {
		return
	}

	rec := &model.AnalysisRecord{
		RequestID:  requestID,
		ChildID:    childID,
		DayName:    result.Day,
		DayIndex:   result.DayIndex,
		Hours:      result.Hours,
		Minutes:    result.Minutes,
		TotalHours: result.TotalHours,
		Found:      result.Found,
		MaxHours:   result.MaxHours,
	}
	if err := s.repo.Save(ctx, rec); err != nil {
		logger.Get(ctx).Error().Err(err).Msg("Falha ao gravar análise no histórico")
	}
}

// decodeImagePayload aceita base64 puro ou data URL e valida o tamanho
func decodeImagePayload(imageData string) ([]byte, error) {
	if imageData == "" {
		return nil, model.ErrEmptyImage
	}

	// Remove prefixo de data URL se presente
	if i := strings.Index(imageData, ","); i >= 0 && strings.HasPrefix(imageData, "data:") {
		imageData = imageData[i+1:]
	}

	data, err := base64.StdEncoding.DecodeString(imageData)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidImage, err)
	}

	if len(data) == 0 {
		return nil, model.ErrEmptyImage
	}
	if len(data) > MaxImageSize {
		return nil, model.ErrImageTooLarge
	}

	return data, nil
}

// cacheKey deriva a chave de cache do conteúdo da imagem e do dia alvo
func cacheKey(data []byte, targetDay string) string {
	h := sha256.New()
	h.Write(data)
	h.Write([]byte{'|'})
	h.Write([]byte(targetDay))
	return hex.EncodeToString(h.Sum(nil))
}

// countingRecognizer contabiliza chamadas e falhas do motor de OCR
type countingRecognizer struct {
	inner graph.TextRecognizer
}

func (c *countingRecognizer) Recognize(ctx context.Context, image []byte) (string, error) {
	if c.inner == nil {
		return "", nil
	}
	metrics.Inc(&metrics.Global().OCRCalls)
	text, err := c.inner.Recognize(ctx, image)
	if err != nil {
		metrics.Inc(&metrics.Global().OCRFailures)
	}
	return text, err
}
