package graph

import "math"

// barScanRowStep passo de amostragem vertical no refino horizontal
const barScanRowStep = 5

// BarBounds é a extensão horizontal refinada da barra de um dia
type BarBounds struct {
	Left   int
	Right  int
	Center int
}

// columnHasBar amostra a coluna x a cada 5 linhas dentro da área e indica
// se algum pixel amostrado é de barra
func columnHasBar(bm *Bitmap, area Area, x int) bool {
	for y := area.Top; y <= area.Bottom; y += barScanRowStep {
		if IsBarPixel(bm.RGB(x, y)) {
			return true
		}
	}
	return false
}

// FindBarBoundariesX refina a extensão horizontal da barra a partir da
// posição x estimada do dia: varre coluna a coluna para a esquerda até
// encontrar uma coluna sem pixels de barra (a borda é a coluna seguinte),
// e espelha a varredura para a direita.
func FindBarBoundariesX(bm *Bitmap, area Area, startX int) BarBounds {
	startX = clamp(startX, area.Left, area.Right)

	left := area.Left
	for x := startX; x >= area.Left; x-- {
		if !columnHasBar(bm, area, x) {
			left = x + 1
			break
		}
	}

	right := area.Right
	for x := startX; x <= area.Right; x++ {
		if !columnHasBar(bm, area, x) {
			right = x - 1
			break
		}
	}

	if right < left {
		right = left
	}

	return BarBounds{
		Left:   left,
		Right:  right,
		Center: (left + right) / 2,
	}
}

// CountBarPixelsY conta a altura da barra em pixels na coluna x, subindo a
// partir da base da área. Pixels da linha de média e de grade são pulados
// sem contar nem interromper; o primeiro pixel de fundo encerra a varredura.
func CountBarPixelsY(bm *Bitmap, area Area, x int) int {
	count := 0
	for y := area.Bottom; y >= area.Top; y-- {
		r, g, b := bm.RGB(x, y)
		if IsAverageLinePixel(r, g, b) || isGridGrayPixel(r, g, b) {
			continue
		}
		if IsBackgroundPixel(r, g, b) {
			break
		}
		count++
	}
	return count
}

// CalculateHoursFromPixels converte a altura da barra em horas pela razão
// teto-da-escala / altura-da-área, com o resultado limitado a [0, teto]
func CalculateHoursFromPixels(pixels int, area Area, maxHours float64) float64 {
	if area.Height <= 0 || maxHours <= 0 {
		return 0
	}
	hours := float64(pixels) * maxHours / float64(area.Height)
	if hours < 0 {
		return 0
	}
	if hours > maxHours {
		return maxHours
	}
	return hours
}

// SplitHours separa horas fracionárias em parte inteira e minutos
// arredondados (0-59), com rollover de 60 minutos para a hora seguinte
func SplitHours(totalHours float64) (hours, minutes int) {
	hours = int(math.Floor(totalHours))
	minutes = int(math.Round((totalHours - math.Floor(totalHours)) * 60))
	if minutes == 60 {
		hours++
		minutes = 0
	}
	return hours, minutes
}

// MeasureDay mede a barra de um dia: refina a extensão horizontal, conta os
// pixels coloridos da coluna central e converte em horas. Uma contagem zero
// resulta em zero horas, sem erro.
func MeasureDay(bm *Bitmap, area Area, pos DayPosition, scale HourScale) float64 {
	bounds := FindBarBoundariesX(bm, area, pos.X)
	pixels := CountBarPixelsY(bm, area, bounds.Center)
	return CalculateHoursFromPixels(pixels, area, scale.MaxHours())
}
