package graph

import (
	"context"

	"github.com/joystie/graph-telemetry-api/internal/logger"
)

// TextRecognizer é o contrato mínimo com o motor de OCR: imagem entra,
// texto bruto sai. O estimador não depende de nenhum layout estruturado.
type TextRecognizer interface {
	Recognize(ctx context.Context, image []byte) (string, error)
}

// Result é o resultado da análise de um dia.
//
// Found distingue "dia localizado com barra vazia" de "dia desconhecido":
// um nome fora dos sete canônicos retorna Found=false com zero horas, sem
// erro. Os campos de metadados espelham a resposta do serviço remoto
// equivalente consumido em produção.
type Result struct {
	Day        string  `json:"day"`
	DayIndex   int     `json:"day_index"`
	Hours      int     `json:"hours"`
	Minutes    int     `json:"minutes"`
	TotalHours float64 `json:"total_hours"`
	Found      bool    `json:"found"`

	// Metadados de diagnóstico
	ScaleMinPerPx float64 `json:"scale_min_per_px"`
	MaxHours      float64 `json:"max_val_hours"`
	DayStrategy   string  `json:"day_strategy"`
	ScaleStrategy string  `json:"scale_strategy"`
	RawText       string  `json:"-"`
}

// Estimator executa o pipeline de análise de screenshot. Sem estado mutável
// compartilhado: cada chamada aloca seus próprios buffers.
type Estimator struct {
	recognizer TextRecognizer

	// OnProgress, quando definido, recebe o nome de cada estágio antes da
	// execução. Usado para atualizações de progresso na interface.
	OnProgress func(stage string)

	// MaxHoursFallback substitui DefaultMaxHours quando positivo
	MaxHoursFallback float64
}

// NewEstimator cria um estimador com o reconhecedor de texto fornecido
func NewEstimator(recognizer TextRecognizer) *Estimator {
	return &Estimator{recognizer: recognizer}
}

func (e *Estimator) progress(stage string) {
	if e.OnProgress != nil {
		e.OnProgress(stage)
	}
}

// AnalyzeImage executa o pipeline completo para uma imagem e um dia alvo:
// decodificação → recorte pré-processado → OCR → detecção da área →
// calibração de dias e escala → medição da barra → resultado.
//
// A única falha dura é uma imagem indecodificável. Uma falha de OCR é
// registrada e engolida: os estágios seguintes usam apenas os fallbacks
// geométricos.
func (e *Estimator) AnalyzeImage(ctx context.Context, data []byte, targetDay string) (*Result, error) {
	log := logger.Get(ctx)

	e.progress("decoding")
	bm, err := DecodeBitmap(data)
	if err != nil {
		return nil, err
	}

	e.progress("ocr")
	text := ""
	if e.recognizer != nil {
		crop, cropErr := PrepareOCRCrop(bm)
		if cropErr != nil {
			log.Warn().Err(cropErr).Msg("Falha ao preparar recorte para OCR, seguindo sem texto")
		} else if text, err = e.recognizer.Recognize(ctx, crop); err != nil {
			log.Warn().Err(err).Msg("OCR falhou, seguindo com heurísticas de pixel")
			text = ""
		}
	}

	e.progress("detecting")
	area := DetectArea(bm)

	e.progress("calibrating")
	positions, dayStrategy := DetectDayPositions(bm, area, text)
	scale, scaleStrategy := BuildHourScale(bm, area, text, e.MaxHoursFallback)

	result := &Result{
		Day:           targetDay,
		DayIndex:      -1,
		MaxHours:      scale.MaxHours(),
		DayStrategy:   dayStrategy,
		ScaleStrategy: scaleStrategy,
		RawText:       text,
	}
	if area.Height > 0 {
		result.ScaleMinPerPx = scale.MaxHours() * 60 / float64(area.Height)
	}

	e.progress("measuring")
	dayIndex := DayIndex(targetDay)
	if dayIndex < 0 {
		log.Debug().Str("target_day", targetDay).Msg("Dia alvo fora dos nomes canônicos")
		return result, nil
	}

	totalHours := MeasureDay(bm, area, positions[dayIndex], scale)
	hours, minutes := SplitHours(totalHours)

	result.DayIndex = dayIndex
	result.Found = true
	result.Hours = hours
	result.Minutes = minutes
	result.TotalHours = totalHours

	log.Info().
		Str("day", targetDay).
		Int("hours", hours).
		Int("minutes", minutes).
		Str("day_strategy", dayStrategy).
		Str("scale_strategy", scaleStrategy).
		Float64("max_hours", scale.MaxHours()).
		Msg("Análise concluída")

	return result, nil
}
