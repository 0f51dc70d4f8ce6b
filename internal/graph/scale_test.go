package graph

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func floatsMatch(got, want []float64) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			return false
		}
	}
	return true
}

func TestParseHourValues(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []float64
	}{
		{"hora simples", "6 h", []float64{6}},
		{"hora por extenso", "3 hours", []float64{3}},
		{"hora decimal com vírgula", "1,5 h", []float64{1.5}},
		{"hora em hebraico", "6 שע", []float64{6}},
		{"minutos convertidos", "30 min", []float64{0.5}},
		{"minutos em hebraico", "45 דק", []float64{0.75}},
		{"horas e minutos", "2 h 30 min", []float64{2, 0.5}},
		{"inteiro solto como último recurso", "6\n3\n0", []float64{6, 3, 0}},
		{"inteiro solto ignorado com padrão explícito", "4 h\n12", []float64{4}},
		{"rótulo de média removido", "average", nil},
		{"duplicatas próximas removidas", "2 h 2 hours", []float64{2}},
		{"texto sem números", "Screen Time", nil},
		{"vazio", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseHourValues(tt.text)
			if !floatsMatch(got, tt.want) {
				t.Errorf("ParseHourValues(%q) = %v, esperado %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestStripAverageTokens(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"average 2 h", " 2 h"},
		{"Avg 30 min", " 30 min"},
		{"ממוצע 1 h", " 1 h"},
		{"6 h", "6 h"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := StripAverageTokens(tt.in); got != tt.want {
			t.Errorf("StripAverageTokens(%q) = %q, esperado %q", tt.in, got, tt.want)
		}
	}
}

func TestMaxHoursFromText(t *testing.T) {
	if got := maxHoursFromText("6 h\n3 h\n0", 0); got != 6 {
		t.Errorf("maior valor = %v, esperado 6", got)
	}
	if got := maxHoursFromText("", 0); got != DefaultMaxHours {
		t.Errorf("texto vazio sem fallback = %v, esperado %v", got, DefaultMaxHours)
	}
	if got := maxHoursFromText("", 8); got != 8 {
		t.Errorf("texto vazio com fallback = %v, esperado 8", got)
	}
	// O rótulo de média não pode virar teto de escala
	if got := maxHoursFromText("average 9 h\n4 h", 0); got != 9 {
		// "average" é removido mas o valor 9 h permanece; o teto é o maior valor
		t.Errorf("teto = %v, esperado 9", got)
	}
}

func TestBuildHourScaleFromBounds(t *testing.T) {
	bm := NewBitmap(makeImage(200, 150, colorWhite))
	area := Area{Left: 20, Right: 180, Top: 30, Bottom: 130, Width: 160, Height: 100}

	scale, strategy := BuildHourScale(bm, area, "6 h", 0)

	if strategy != ScaleStrategyBounds {
		t.Fatalf("estratégia = %q, esperada %q", strategy, ScaleStrategyBounds)
	}
	if len(scale) != 2 {
		t.Fatalf("pontos = %d, esperado 2", len(scale))
	}
	if scale[0].Y != 30 || scale[0].Hours != 6 {
		t.Errorf("topo = %+v, esperado {30 6}", scale[0])
	}
	if scale[1].Y != 130 || scale[1].Hours != 0 {
		t.Errorf("base = %+v, esperado {130 0}", scale[1])
	}
}

func TestBuildHourScaleFromGridLines(t *testing.T) {
	// Quatro linhas de grade cinza equidistantes sobre fundo branco
	img := makeImage(300, 260, colorWhite)
	for _, y := range []int{50, 100, 150, 200} {
		fillRect(img, 0, y, 299, y, colorGrid)
	}
	bm := NewBitmap(img)
	area := Area{Left: 0, Right: 299, Top: 30, Bottom: 230, Width: 299, Height: 200}

	scale, strategy := BuildHourScale(bm, area, "6 h", 0)

	if strategy != ScaleStrategyGrid {
		t.Fatalf("estratégia = %q, esperada %q", strategy, ScaleStrategyGrid)
	}
	if len(scale) != 4 {
		t.Fatalf("pontos = %d, esperado 4", len(scale))
	}

	// Linha mais alta ancora o teto, mais baixa ancora zero, intermediárias
	// interpoladas linearmente
	want := []ScalePoint{{50, 6}, {100, 4}, {150, 2}, {200, 0}}
	for i, p := range scale {
		if p.Y != want[i].Y || math.Abs(p.Hours-want[i].Hours) > 1e-9 {
			t.Errorf("ponto %d = %+v, esperado %+v", i, p, want[i])
		}
	}
}

func TestDetectGridRowsClustersThickLines(t *testing.T) {
	// Linha espessa de 3px e outra fina: duas linhas, não quatro
	img := makeImage(100, 120, colorWhite)
	fillRect(img, 0, 40, 99, 42, colorGrid)
	fillRect(img, 0, 90, 99, 90, colorGrid)
	bm := NewBitmap(img)
	area := Area{Left: 0, Right: 99, Top: 0, Bottom: 119, Width: 99, Height: 119}

	rows := detectGridRows(bm, area)

	if len(rows) != 2 {
		t.Fatalf("linhas = %v, esperadas 2", rows)
	}
	if rows[0] != 41 {
		t.Errorf("linha espessa agrupada em %d, esperado o centro 41", rows[0])
	}
	if rows[1] != 90 {
		t.Errorf("linha fina em %d, esperado 90", rows[1])
	}
}

// TestHourScaleInvariants checks that whatever the image and text, the
// scale always has at least two points, sorted by row, anchoring the
// maximum at the top and zero at the bottom.
func TestHourScaleInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	bm := NewBitmap(makeImage(200, 150, colorWhite))
	area := Area{Left: 20, Right: 180, Top: 30, Bottom: 130, Width: 160, Height: 100}

	properties.Property("at least two sorted points, max at top, zero at bottom", prop.ForAll(
		func(text string) bool {
			scale, _ := BuildHourScale(bm, area, text, 0)
			if len(scale) < 2 {
				return false
			}
			for i := 1; i < len(scale); i++ {
				if scale[i].Y < scale[i-1].Y {
					return false
				}
			}
			return scale[0].Hours == scale.MaxHours() && scale[len(scale)-1].Hours == 0
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
