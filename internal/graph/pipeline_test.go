package graph

import (
	"context"
	"errors"
	"image"
	"math"
	"testing"
)

type fakeRecognizer struct {
	text string
	err  error
}

func (f *fakeRecognizer) Recognize(ctx context.Context, data []byte) (string, error) {
	return f.text, f.err
}

// buildFixture monta um screenshot sintético com geometria conhecida:
// linha cinza de topo em y=20, barras azuis terminando em y=170 (área
// detectada de 20 a 220, altura 200) e faixa cinza de rodapé fazendo as
// vezes da região de rótulos. A barra do primeiro dia tem 83px.
func buildFixture() *image.RGBA {
	img := makeImage(420, 320, colorWhite)

	// Borda superior da área plotada
	fillRect(img, 0, 20, 419, 20, colorGrid)

	// Barra do dia alvo cobrindo o slot 0, 83px de altura (y 88..170)
	fillRect(img, 60, 88, 90, 170, colorBarBlue)
	// Marcador na direita para fixar a extensão horizontal
	fillRect(img, 378, 150, 380, 170, colorBarBlue)

	// Faixa de rodapé entre as barras e a base da área
	fillRect(img, 0, 171, 419, 299, colorGrid)

	return img
}

func TestAnalyzeImageRoundTrip(t *testing.T) {
	data := encodePNG(t, buildFixture())
	recognizer := &fakeRecognizer{text: "Sun Mon Tue Wed Thu Fri Sat\n6 h"}

	var stages []string
	estimator := NewEstimator(recognizer)
	estimator.OnProgress = func(stage string) { stages = append(stages, stage) }

	result, err := estimator.AnalyzeImage(context.Background(), data, DayNames[0])
	if err != nil {
		t.Fatalf("AnalyzeImage: %v", err)
	}

	if !result.Found {
		t.Fatal("dia canônico não encontrado")
	}
	if result.DayIndex != 0 || result.Day != DayNames[0] {
		t.Errorf("dia = %q (índice %d), esperado %q (0)", result.Day, result.DayIndex, DayNames[0])
	}

	// Barra de 83px em área de 200px com teto de 6h: 2,49h = 2h29m
	if result.Hours != 2 {
		t.Errorf("horas = %d, esperado 2", result.Hours)
	}
	if result.Minutes < 28 || result.Minutes > 30 {
		t.Errorf("minutos = %d, esperado 29 ±1", result.Minutes)
	}
	if math.Abs(result.TotalHours-2.49) > 0.05 {
		t.Errorf("total = %v, esperado ~2,49", result.TotalHours)
	}

	if result.MaxHours != 6 {
		t.Errorf("teto = %v, esperado 6 (lido do texto)", result.MaxHours)
	}
	if math.Abs(result.ScaleMinPerPx-1.8) > 1e-9 {
		t.Errorf("min/px = %v, esperado 1,8", result.ScaleMinPerPx)
	}
	if result.DayStrategy != DayStrategyText {
		t.Errorf("estratégia de dias = %q, esperada %q", result.DayStrategy, DayStrategyText)
	}

	wantStages := []string{"decoding", "ocr", "detecting", "calibrating", "measuring"}
	if len(stages) != len(wantStages) {
		t.Fatalf("estágios = %v, esperados %v", stages, wantStages)
	}
	for i, s := range stages {
		if s != wantStages[i] {
			t.Errorf("estágio %d = %q, esperado %q", i, s, wantStages[i])
		}
	}
}

func TestAnalyzeImageUnknownDay(t *testing.T) {
	data := encodePNG(t, buildFixture())
	estimator := NewEstimator(&fakeRecognizer{text: "Sun Mon Tue Wed Thu Fri Sat\n6 h"})

	result, err := estimator.AnalyzeImage(context.Background(), data, "Funday")
	if err != nil {
		t.Fatalf("dia desconhecido não pode falhar: %v", err)
	}
	if result.Found {
		t.Error("Found = true para dia fora dos nomes canônicos")
	}
	if result.Hours != 0 || result.Minutes != 0 || result.TotalHours != 0 {
		t.Errorf("medição = %dh%dm (%v), esperado zero", result.Hours, result.Minutes, result.TotalHours)
	}
	if result.DayIndex != -1 {
		t.Errorf("índice = %d, esperado -1", result.DayIndex)
	}
}

func TestAnalyzeImageDegenerateImages(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"toda preta", encodePNG(t, makeImage(200, 200, colorBlack))},
		{"toda branca", encodePNG(t, makeImage(200, 200, colorWhite))},
	}

	estimator := NewEstimator(&fakeRecognizer{text: ""})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := estimator.AnalyzeImage(context.Background(), tt.data, DayNames[3])
			if err != nil {
				t.Fatalf("imagem degenerada não pode falhar: %v", err)
			}
			if result.TotalHours != 0 {
				t.Errorf("horas = %v, esperado 0 em imagem sem gráfico", result.TotalHours)
			}
			if !result.Found {
				t.Error("dia canônico deve ser Found mesmo sem barra")
			}
		})
	}
}

func TestAnalyzeImageInvalidPayload(t *testing.T) {
	estimator := NewEstimator(&fakeRecognizer{})

	_, err := estimator.AnalyzeImage(context.Background(), []byte("lixo"), DayNames[0])
	if !errors.Is(err, ErrImageDecode) {
		t.Errorf("err = %v, esperado ErrImageDecode", err)
	}
}

func TestAnalyzeImageOCRFailureIsSoft(t *testing.T) {
	data := encodePNG(t, buildFixture())
	estimator := NewEstimator(&fakeRecognizer{err: errors.New("ocr fora do ar")})

	result, err := estimator.AnalyzeImage(context.Background(), data, DayNames[0])
	if err != nil {
		t.Fatalf("falha de OCR deve ser engolida: %v", err)
	}
	if !result.Found {
		t.Error("análise deve prosseguir com heurísticas de pixel")
	}
	// Sem texto, o teto cai para o padrão
	if result.MaxHours != DefaultMaxHours {
		t.Errorf("teto = %v, esperado o padrão %v", result.MaxHours, DefaultMaxHours)
	}
}

func TestAnalyzeImageNilRecognizer(t *testing.T) {
	data := encodePNG(t, buildFixture())
	estimator := NewEstimator(nil)

	result, err := estimator.AnalyzeImage(context.Background(), data, DayNames[0])
	if err != nil {
		t.Fatalf("AnalyzeImage sem reconhecedor: %v", err)
	}
	if !result.Found {
		t.Error("pipeline deve funcionar sem OCR")
	}
}
