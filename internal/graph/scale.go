package graph

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// DefaultMaxHours é o teto de escala usado quando nem o texto do OCR nem as
// linhas de grade fornecem um valor máximo. Aplicado uniformemente por todos
// os ramos de fallback.
const DefaultMaxHours = 6.0

// Nomes das estratégias de calibração vertical
const (
	ScaleStrategyGrid   = "grid-lines"
	ScaleStrategyBounds = "area-bounds"
)

// gridCoverageThreshold fração mínima de cobertura de uma linha de grade
const gridCoverageThreshold = 0.3

// ScalePoint ancora uma linha de pixels a um valor de horas
type ScalePoint struct {
	Y     int
	Hours float64
}

// HourScale é o conjunto ordenado de âncoras (linha, horas) que converte
// posição vertical em horas decorridas. Ordenado por Y crescente: o primeiro
// ponto é o topo (valor máximo) e o último é a base (zero).
type HourScale []ScalePoint

// MaxHours retorna o maior valor de horas da escala
func (s HourScale) MaxHours() float64 {
	max := 0.0
	for _, p := range s {
		if p.Hours > max {
			max = p.Hours
		}
	}
	return max
}

var (
	hourPattern   = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*(?:h\b|hours?\b|שע)`)
	minutePattern = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*(?:m\b|min\b|minutes?\b|דק)`)
	barePattern   = regexp.MustCompile(`\b(\d{1,3})\b`)
	averageTokens = []string{"average", "avg", "ממוצע"}
)

// StripAverageTokens remove rótulos de média do texto reconhecido, para que
// o valor da linha de média não seja lido como valor de escala
func StripAverageTokens(text string) string {
	lower := strings.ToLower(text)
	var sb strings.Builder
	sb.Grow(len(text))

	i := 0
outer:
	for i < len(text) {
		for _, tok := range averageTokens {
			if strings.HasPrefix(lower[i:], tok) {
				i += len(tok)
				continue outer
			}
		}
		sb.WriteByte(text[i])
		i++
	}
	return sb.String()
}

// ParseHourValues extrai do texto do OCR todos os valores de horas
// reconhecíveis: padrões de hora (N h, N hours, שע), padrões de minuto
// convertidos (÷60) e, como último recurso, inteiros soltos. Valores
// quase iguais (|Δ| < 0.01) são deduplicados.
func ParseHourValues(text string) []float64 {
	text = StripAverageTokens(text)

	var values []float64
	for _, m := range hourPattern.FindAllStringSubmatch(text, -1) {
		if v, err := parseDecimal(m[1]); err == nil {
			values = append(values, v)
		}
	}
	for _, m := range minutePattern.FindAllStringSubmatch(text, -1) {
		if v, err := parseDecimal(m[1]); err == nil {
			values = append(values, v/60)
		}
	}

	// Inteiros soltos só quando nenhum padrão explícito casou
	if len(values) == 0 {
		for _, m := range barePattern.FindAllStringSubmatch(text, -1) {
			if v, err := parseDecimal(m[1]); err == nil {
				values = append(values, v)
			}
		}
	}

	var deduped []float64
	for _, v := range values {
		dup := false
		for _, d := range deduped {
			if v-d < 0.01 && d-v < 0.01 {
				dup = true
				break
			}
		}
		if !dup {
			deduped = append(deduped, v)
		}
	}
	return deduped
}

func parseDecimal(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
}

// maxHoursFromText retorna o maior valor reconhecido, ou o fallback
func maxHoursFromText(text string, fallback float64) float64 {
	max := 0.0
	for _, v := range ParseHourValues(text) {
		if v > max {
			max = v
		}
	}
	if max == 0 {
		if fallback <= 0 {
			return DefaultMaxHours
		}
		return fallback
	}
	return max
}

// detectGridRows varre as linhas da área procurando cobertura igual ou acima
// de 30% de pixels cinza de grade. Segmentos a menos de 10px um do outro são
// agrupados pela média, para que uma linha espessa conte uma vez só.
func detectGridRows(bm *Bitmap, area Area) []int {
	if area.Width <= 0 {
		return nil
	}

	var raw []int
	for y := area.Top; y <= area.Bottom; y++ {
		count := 0
		for x := area.Left; x <= area.Right; x++ {
			if isGridGrayPixel(bm.RGB(x, y)) {
				count++
			}
		}
		if float64(count) >= gridCoverageThreshold*float64(area.Width) {
			raw = append(raw, y)
		}
	}
	if len(raw) == 0 {
		return nil
	}

	var rows []int
	clusterStart := 0
	for i := 1; i <= len(raw); i++ {
		if i == len(raw) || raw[i]-raw[i-1] >= 10 {
			sum := 0
			for _, y := range raw[clusterStart:i] {
				sum += y
			}
			rows = append(rows, sum/(i-clusterStart))
			clusterStart = i
		}
	}
	return rows
}

// BuildHourScale calibra o eixo vertical do gráfico.
//
// O teto vem do texto do OCR (ou do padrão fixo). Com duas ou mais linhas de
// grade detectadas, a mais baixa ancora 0 e a mais alta ancora o teto, com as
// intermediárias interpoladas linearmente; sem grade suficiente, o topo e a
// base da própria área ancoram teto e zero. Nunca falha: o resultado tem
// sempre pelo menos dois pontos. Retorna também a estratégia usada.
func BuildHourScale(bm *Bitmap, area Area, text string, fallbackMaxHours float64) (HourScale, string) {
	maxHours := maxHoursFromText(text, fallbackMaxHours)

	rows := detectGridRows(bm, area)
	var scale HourScale
	strategy := ScaleStrategyBounds

	if len(rows) >= 2 {
		top := rows[0]
		bottom := rows[len(rows)-1]
		span := float64(bottom - top)
		for _, y := range rows {
			scale = append(scale, ScalePoint{
				Y:     y,
				Hours: maxHours * float64(bottom-y) / span,
			})
		}
		strategy = ScaleStrategyGrid
	} else {
		scale = HourScale{
			{Y: area.Top, Hours: maxHours},
			{Y: area.Bottom, Hours: 0},
		}
	}

	sort.Slice(scale, func(i, j int) bool { return scale[i].Y < scale[j].Y })
	return scale, strategy
}
