package graph

const (
	// horizontalPadding folga lateral aplicada às colunas extremas com barra
	horizontalPadding = 20
	// bottomMargin folga abaixo da última linha com barra
	bottomMargin = 50
)

// Area é o retângulo da região plotada do gráfico, em coordenadas de pixel
// da imagem (exclui rótulos de eixo e margens)
type Area struct {
	Left   int
	Right  int
	Top    int
	Bottom int
	Width  int
	Height int
}

// defaultArea retorna a banda central 10%-90% da imagem, usada quando a
// detecção não consegue estabelecer um retângulo válido
func defaultArea(width, height int) Area {
	a := Area{
		Left:   width / 10,
		Right:  width * 9 / 10,
		Top:    height / 10,
		Bottom: height * 9 / 10,
	}
	a.Width = a.Right - a.Left
	a.Height = a.Bottom - a.Top
	return a
}

// DetectArea localiza a região plotada do gráfico.
//
// Borda superior: primeira linha onde mais da metade dos pixels é conteúdo
// do plot (barra ou cinza de grade). Extensão horizontal: colunas extremas
// contendo pixel de barra, com folga de 20px. Borda inferior: última linha
// com pixel de barra, com folga de 50px. Uma imagem degenerada (só fundo)
// resulta na banda central padrão, nunca em erro.
func DetectArea(bm *Bitmap) Area {
	width := bm.Width()
	height := bm.Height()
	if width == 0 || height == 0 {
		return Area{}
	}

	top := -1
	for y := 0; y < height; y++ {
		content := 0
		for x := 0; x < width; x++ {
			if isPlotContentPixel(bm.RGB(x, y)) {
				content++
			}
		}
		if content*2 > width {
			top = y
			break
		}
	}
	if top < 0 {
		return defaultArea(width, height)
	}

	left, right, bottom := width, -1, -1
	for y := top; y < height; y++ {
		for x := 0; x < width; x++ {
			if IsBarPixel(bm.RGB(x, y)) {
				if x < left {
					left = x
				}
				if x > right {
					right = x
				}
				if y > bottom {
					bottom = y
				}
			}
		}
	}

	if left >= right {
		// Nenhum pixel de barra na imagem; banda horizontal padrão
		left = width / 10
		right = width * 9 / 10
		bottom = height * 9 / 10
	} else {
		left = clamp(left-horizontalPadding, 0, width-1)
		right = clamp(right+horizontalPadding, 0, width-1)
		bottom = clamp(bottom+bottomMargin, 0, height-1)
	}

	if bottom <= top || right <= left {
		return defaultArea(width, height)
	}

	return Area{
		Left:   left,
		Right:  right,
		Top:    top,
		Bottom: bottom,
		Width:  right - left,
		Height: bottom - top,
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
