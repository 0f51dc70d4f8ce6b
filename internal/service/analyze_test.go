package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/joystie/graph-telemetry-api/internal/cache"
	"github.com/joystie/graph-telemetry-api/internal/graph"
	"github.com/joystie/graph-telemetry-api/internal/model"
)

type staticText string

func (s staticText) Recognize(ctx context.Context, data []byte) (string, error) {
	return string(s), nil
}

// whitePNG gera um PNG branco pequeno codificado em base64
func whitePNG(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 50, 50))
	for y := 0; y < 50; y++ {
		for x := 0; x < 50; x++ {
			img.Set(x, y, color.RGBA{255, 255, 255, 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("falha ao gerar PNG de teste: %v", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestDecodeImagePayload(t *testing.T) {
	valid := base64.StdEncoding.EncodeToString([]byte("conteudo"))

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"base64 puro", valid, nil},
		{"data URL", "data:image/png;base64," + valid, nil},
		{"vazio", "", model.ErrEmptyImage},
		{"base64 inválido", "%%%não-base64%%%", model.ErrInvalidImage},
		{"data URL com corpo vazio", "data:image/png;base64,", model.ErrEmptyImage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := decodeImagePayload(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, esperado %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("err inesperado: %v", err)
			}
			if string(data) != "conteudo" {
				t.Errorf("payload decodificado = %q", data)
			}
		})
	}
}

func TestDecodeImagePayloadTooLarge(t *testing.T) {
	big := make([]byte, MaxImageSize+1)
	_, err := decodeImagePayload(base64.StdEncoding.EncodeToString(big))
	if !errors.Is(err, model.ErrImageTooLarge) {
		t.Errorf("err = %v, esperado ErrImageTooLarge", err)
	}
}

func TestCacheKey(t *testing.T) {
	data := []byte{1, 2, 3}

	if cacheKey(data, "שבת") != cacheKey(data, "שבת") {
		t.Error("a chave deve ser determinística")
	}
	if cacheKey(data, "שבת") == cacheKey(data, "ראשון") {
		t.Error("dias diferentes devem gerar chaves diferentes")
	}
	if cacheKey([]byte{1, 2, 3}, "שבת") == cacheKey([]byte{1, 2, 4}, "שבת") {
		t.Error("imagens diferentes devem gerar chaves diferentes")
	}
}

func TestAnalyzeServiceRoundTrip(t *testing.T) {
	resultCache := cache.NewResultCache(time.Minute)
	defer resultCache.Stop()

	svc := NewAnalyzeService(staticText("Sun Mon Tue Wed Thu Fri Sat\n6 h"), resultCache, nil, nil, 0)

	req := model.AnalyzeRequest{
		ImageData: whitePNG(t),
		TargetDay: graph.DayNames[0],
	}

	result, err := svc.Analyze(context.Background(), req)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if !result.Found {
		t.Error("dia canônico deve ser Found")
	}
	if result.TotalHours != 0 {
		t.Errorf("imagem sem gráfico: horas = %v, esperado 0", result.TotalHours)
	}

	// Segunda chamada idêntica sai do cache com o mesmo valor
	if resultCache.Len() != 1 {
		t.Fatalf("entradas no cache = %d, esperada 1", resultCache.Len())
	}
	cached, err := svc.Analyze(context.Background(), req)
	if err != nil {
		t.Fatalf("Analyze (cache): %v", err)
	}
	if *cached != *result {
		t.Errorf("resultado do cache = %+v, esperado %+v", cached, result)
	}
}

func TestAnalyzeServiceInvalidImage(t *testing.T) {
	svc := NewAnalyzeService(staticText(""), nil, nil, nil, 0)

	_, err := svc.Analyze(context.Background(), model.AnalyzeRequest{
		ImageData: base64.StdEncoding.EncodeToString([]byte("não é imagem")),
		TargetDay: graph.DayNames[0],
	})
	if !errors.Is(err, model.ErrInvalidImage) {
		t.Errorf("err = %v, esperado ErrInvalidImage", err)
	}
}

func TestAnalyzeServiceUnknownDayIsNotError(t *testing.T) {
	svc := NewAnalyzeService(staticText(""), nil, nil, nil, 0)

	result, err := svc.Analyze(context.Background(), model.AnalyzeRequest{
		ImageData: whitePNG(t),
		TargetDay: "segunda-feira",
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if result.Found {
		t.Error("Found = true para dia fora dos nomes canônicos")
	}
}
