package graph

import (
	"bytes"
	"image"
	"image/png"
)

// Preparação do recorte enviado ao OCR: o texto dos eixos é pequeno e de
// baixo contraste, então o recorte central é ampliado 2x e tem o contraste
// esticado antes do reconhecimento.

const (
	// ocrCropFraction fração central da imagem mantida no recorte
	ocrCropFraction = 0.8
	// ocrUpscale fator de ampliação do recorte
	ocrUpscale = 2
)

// PrepareOCRCrop produz o PNG pré-processado do recorte central da imagem
func PrepareOCRCrop(bm *Bitmap) ([]byte, error) {
	cropW := int(float64(bm.Width()) * ocrCropFraction)
	cropH := int(float64(bm.Height()) * ocrCropFraction)
	if cropW < 1 {
		cropW = bm.Width()
	}
	if cropH < 1 {
		cropH = bm.Height()
	}
	offX := (bm.Width() - cropW) / 2
	offY := (bm.Height() - cropH) / 2

	// Faixa de luma do recorte, para o esticamento de contraste
	minLuma, maxLuma := 255.0, 0.0
	for y := 0; y < cropH; y++ {
		for x := 0; x < cropW; x++ {
			l := luma(bm.RGB(offX+x, offY+y))
			if l < minLuma {
				minLuma = l
			}
			if l > maxLuma {
				maxLuma = l
			}
		}
	}
	span := maxLuma - minLuma
	if span < 1 {
		span = 1
	}

	out := image.NewRGBA(image.Rect(0, 0, cropW*ocrUpscale, cropH*ocrUpscale))
	for y := 0; y < cropH*ocrUpscale; y++ {
		for x := 0; x < cropW*ocrUpscale; x++ {
			r, g, b := bm.RGB(offX+x/ocrUpscale, offY+y/ocrUpscale)
			i := y*out.Stride + x*4
			out.Pix[i] = stretchChannel(r, minLuma, span)
			out.Pix[i+1] = stretchChannel(g, minLuma, span)
			out.Pix[i+2] = stretchChannel(b, minLuma, span)
			out.Pix[i+3] = 255
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// stretchChannel reescala um canal para a faixa completa 0-255
func stretchChannel(c uint8, minLuma, span float64) uint8 {
	v := (float64(c) - minLuma) * 255 / span
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
