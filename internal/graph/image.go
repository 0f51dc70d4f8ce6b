package graph

import (
	"bytes"
	"errors"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
)

// ErrImageDecode indica que os bytes recebidos não são uma imagem válida.
// É a única falha dura do estimador; todo o resto degrada silenciosamente.
var ErrImageDecode = errors.New("imagem inválida ou formato não suportado")

// Bitmap é o buffer de pixels RGBA extraído da imagem decodificada.
// Imutável após a criação; cada análise aloca o seu próprio.
type Bitmap struct {
	width  int
	height int
	pix    []uint8 // RGBA, 4 bytes por pixel, row-major
}

// DecodeBitmap decodifica PNG/JPEG e extrai o buffer de pixels
func DecodeBitmap(data []byte) (*Bitmap, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, ErrImageDecode
	}
	return NewBitmap(img), nil
}

// NewBitmap rasteriza uma imagem em um buffer RGBA plano
func NewBitmap(img image.Image) *Bitmap {
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	return &Bitmap{
		width:  bounds.Dx(),
		height: bounds.Dy(),
		pix:    rgba.Pix,
	}
}

// Width retorna a largura em pixels
func (b *Bitmap) Width() int { return b.width }

// Height retorna a altura em pixels
func (b *Bitmap) Height() int { return b.height }

// RGB retorna os canais de cor do pixel em (x, y).
// Coordenadas fora da imagem retornam preto.
func (b *Bitmap) RGB(x, y int) (r, g, bl uint8) {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return 0, 0, 0
	}
	i := (y*b.width + x) * 4
	return b.pix[i], b.pix[i+1], b.pix[i+2]
}
