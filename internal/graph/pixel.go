package graph

// Classificação de pixels do gráfico de tempo de tela.
//
// Os screenshots chegam tanto em dark mode quanto em light mode, e a cor da
// barra varia por dispositivo (azul no iOS, tons variados no Android). Por
// isso a classificação é por exclusão: tudo que não é fundo é barra.

const (
	// nearBlackMax limite superior de canal para pixel quase-preto
	nearBlackMax = 30
	// nearWhiteMin limite inferior de canal para pixel quase-branco
	nearWhiteMin = 225
	// grayMaxChroma croma máximo (max-min) para pixel cinza de fundo
	grayMaxChroma = 20
	// grayLumaMin / grayLumaMax faixa de luma para cinza de fundo
	grayLumaMin = 50
	grayLumaMax = 240
	// avgGrayMaxChroma croma máximo para cinza da linha de média
	avgGrayMaxChroma = 25
	// avgGrayLumaMin / avgGrayLumaMax faixa de luma para cinza da linha de média
	avgGrayLumaMin = 100
	avgGrayLumaMax = 200
)

// luma calcula a luminância relativa (BT.709) de um pixel RGB
func luma(r, g, b uint8) float64 {
	return 0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)
}

// chroma retorna a diferença entre o canal mais forte e o mais fraco
func chroma(r, g, b uint8) int {
	max, min := int(r), int(r)
	if int(g) > max {
		max = int(g)
	}
	if int(b) > max {
		max = int(b)
	}
	if int(g) < min {
		min = int(g)
	}
	if int(b) < min {
		min = int(b)
	}
	return max - min
}

// rgbToHSV converte RGB em matiz (graus), saturação (0-1) e valor (0-255)
func rgbToHSV(r, g, b uint8) (h, s, v float64) {
	rf, gf, bf := float64(r), float64(g), float64(b)

	max := rf
	if gf > max {
		max = gf
	}
	if bf > max {
		max = bf
	}
	min := rf
	if gf < min {
		min = gf
	}
	if bf < min {
		min = bf
	}
	delta := max - min

	v = max
	if max > 0 {
		s = delta / max
	}
	if delta == 0 {
		return 0, s, v
	}

	switch max {
	case rf:
		h = 60 * ((gf - bf) / delta)
	case gf:
		h = 60 * ((bf-rf)/delta + 2)
	default:
		h = 60 * ((rf-gf)/delta + 4)
	}
	if h < 0 {
		h += 360
	}
	return h, s, v
}

// isGray verifica se o pixel é acromático dentro de uma faixa de luma
func isGray(r, g, b uint8, maxChroma int, lumaMin, lumaMax float64) bool {
	if chroma(r, g, b) > maxChroma {
		return false
	}
	l := luma(r, g, b)
	return l >= lumaMin && l <= lumaMax
}

// IsBackgroundPixel indica se o pixel pertence ao fundo do gráfico.
// Cobre fundo escuro (dark mode), fundo claro (light mode) e cinzas
// intermediários (linhas de grade, sombras).
func IsBackgroundPixel(r, g, b uint8) bool {
	if r < nearBlackMax && g < nearBlackMax && b < nearBlackMax {
		return true
	}
	if r > nearWhiteMin && g > nearWhiteMin && b > nearWhiteMin {
		return true
	}
	return isGray(r, g, b, grayMaxChroma, grayLumaMin, grayLumaMax)
}

// IsBarPixel indica se o pixel pertence a uma barra do gráfico.
// Complemento exato de IsBackgroundPixel: qualquer cor que não é fundo
// é tratada como barra.
func IsBarPixel(r, g, b uint8) bool {
	return !IsBackgroundPixel(r, g, b)
}

// IsGridLinePixel indica se o pixel pertence a uma linha de grade.
// Visualmente indistinguível do fundo por esta heurística; o mesmo predicado.
func IsGridLinePixel(r, g, b uint8) bool {
	return IsBackgroundPixel(r, g, b)
}

// IsAverageLinePixel indica se o pixel pertence à linha de média renderizada
// sobre o gráfico (verde no iOS, cinza em alguns temas). Usado como
// pré-filtro na medição para não inflar a altura da barra.
func IsAverageLinePixel(r, g, b uint8) bool {
	h, s, v := rgbToHSV(r, g, b)
	if h >= 100 && h <= 150 && s >= 0.3 && v >= 100 && v <= 200 {
		return true
	}
	return isGray(r, g, b, avgGrayMaxChroma, avgGrayLumaMin, avgGrayLumaMax)
}

// isPlotContentPixel indica se o pixel participa da área plotada: barra ou
// cinza de grade. Diferente de IsGridLinePixel, exclui preto/branco puros
// para que margens vazias não contem como conteúdo na detecção de bordas.
func isPlotContentPixel(r, g, b uint8) bool {
	if IsBarPixel(r, g, b) {
		return true
	}
	return isGray(r, g, b, grayMaxChroma, grayLumaMin, grayLumaMax)
}

// isGridGrayPixel é o teste de cinza usado para localizar linhas de grade
// horizontais na calibração de escala
func isGridGrayPixel(r, g, b uint8) bool {
	return isGray(r, g, b, avgGrayMaxChroma, avgGrayLumaMin, avgGrayLumaMax)
}
