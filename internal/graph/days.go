package graph

import (
	"strings"
)

// DayNames são os sete nomes canônicos de dia, domingo a sábado, na forma
// usada pelo aplicativo (hebraico)
var DayNames = [7]string{"ראשון", "שני", "שלישי", "רביעי", "חמישי", "שישי", "שבת"}

// dayAbbrevEN abreviações inglesas de 3 letras, na ordem de DayNames
var dayAbbrevEN = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// dayAbbrevHE abreviações hebraicas de um caractere, na ordem de DayNames
var dayAbbrevHE = [7]string{"א", "ב", "ג", "ד", "ה", "ו", "ש"}

// DayPosition é a coordenada x estimada do centro da barra de um dia
// dentro da Area
type DayPosition struct {
	Index int
	Name  string
	X     int
}

// Nomes das estratégias de detecção, na ordem em que são tentadas
const (
	DayStrategyText    = "ocr-text"
	DayStrategyPeaks   = "pixel-peaks"
	DayStrategyUniform = "uniform"
)

const (
	// minPeaksRequired mínimo de picos distintos para confiar na projeção
	minPeaksRequired = 5
	// uniformSlots divisões da largura no fallback uniforme (um slot de margem)
	uniformSlots = 8
)

// DayIndex retorna o índice 0-6 de um nome canônico de dia, ou -1
func DayIndex(name string) int {
	for i, n := range DayNames {
		if n == name {
			return i
		}
	}
	return -1
}

// DetectDayPositions calcula a posição x de cada um dos sete dias dentro da
// área do gráfico. As estratégias são tentadas em ordem: tokens de dia no
// texto do OCR, picos na projeção de pixels de barra, espaçamento uniforme.
// Sempre retorna exatamente 7 posições, junto com o nome da estratégia usada.
func DetectDayPositions(bm *Bitmap, area Area, text string) ([]DayPosition, string) {
	if positions, ok := daysFromText(area, text); ok {
		return positions, DayStrategyText
	}
	if positions, ok := daysFromPeaks(bm, area); ok {
		return positions, DayStrategyPeaks
	}
	return daysUniform(area), DayStrategyUniform
}

// slotCenter retorna o centro do slot i (0-6) com a largura dividida em 7
func slotCenter(area Area, slot int) int {
	return area.Left + area.Width*(2*slot+1)/14
}

// daysFromText procura abreviações de dia linha a linha no texto do OCR.
// Na linha com mais tokens, a posição ordinal de cada token define o slot
// do dia; dias não reconhecidos recebem o slot do seu índice de calendário.
func daysFromText(area Area, text string) ([]DayPosition, bool) {
	type token struct {
		day int
		pos int
	}

	var best []token
	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(line)
		var found []token
		for day := 0; day < 7; day++ {
			if p := strings.Index(lower, strings.ToLower(dayAbbrevEN[day])); p >= 0 {
				found = append(found, token{day: day, pos: p})
				continue
			}
			// Abreviação hebraica de um caractere, apenas como palavra isolada
			// para não casar com qualquer letra do texto
			if p := indexIsolated(line, dayAbbrevHE[day]); p >= 0 {
				found = append(found, token{day: day, pos: p})
			}
		}
		if len(found) > len(best) {
			best = found
		}
	}

	if len(best) == 0 {
		return nil, false
	}

	// Ordena por posição na linha para obter a ordem ordinal
	for i := 1; i < len(best); i++ {
		for j := i; j > 0 && best[j].pos < best[j-1].pos; j-- {
			best[j], best[j-1] = best[j-1], best[j]
		}
	}

	positions := daysUniform(area)
	for ordinal, tk := range best {
		positions[tk.day].X = slotCenter(area, ordinal)
	}
	return positions, true
}

// indexIsolated localiza uma palavra isolada (cercada por espaço ou borda)
func indexIsolated(line, word string) int {
	start := 0
	for {
		p := strings.Index(line[start:], word)
		if p < 0 {
			return -1
		}
		p += start
		before := p == 0 || line[p-1] == ' ' || line[p-1] == '\t'
		end := p + len(word)
		after := end == len(line) || line[end] == ' ' || line[end] == '\t'
		if before && after {
			return p
		}
		start = p + len(word)
		if start >= len(line) {
			return -1
		}
	}
}

// daysFromPeaks projeta a contagem de pixels de barra por coluna e procura
// máximos locais. Exige pelo menos 5 picos distintos; com menos, o chamador
// cai para o espaçamento uniforme.
func daysFromPeaks(bm *Bitmap, area Area) ([]DayPosition, bool) {
	if area.Width <= 0 {
		return nil, false
	}

	projection := make([]int, area.Width)
	for i := range projection {
		x := area.Left + i
		count := 0
		for y := area.Top; y <= area.Bottom; y++ {
			if IsBarPixel(bm.RGB(x, y)) {
				count++
			}
		}
		projection[i] = count
	}

	tallest := 0
	for _, c := range projection {
		if c > tallest {
			tallest = c
		}
	}

	threshold := tallest * 3 / 10
	if threshold < 5 {
		threshold = 5
	}

	var peaks []int
	for i := 1; i < len(projection)-1; i++ {
		if projection[i] <= threshold {
			continue
		}
		if projection[i] > projection[i-1] && projection[i] > projection[i+1] {
			peaks = append(peaks, area.Left+i)
			if len(peaks) == 7 {
				break
			}
		}
	}

	if len(peaks) < minPeaksRequired {
		return nil, false
	}

	positions := daysUniform(area)
	for i, x := range peaks {
		positions[i].X = x
	}
	return positions, true
}

// daysUniform distribui os sete dias uniformemente pela largura da área,
// com um oitavo slot reservado como margem
func daysUniform(area Area) []DayPosition {
	spacing := area.Width / uniformSlots
	positions := make([]DayPosition, 7)
	for i := 0; i < 7; i++ {
		positions[i] = DayPosition{
			Index: i,
			Name:  DayNames[i],
			X:     area.Left + spacing*(i+1),
		}
	}
	return positions
}
