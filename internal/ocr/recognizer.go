// Package ocr trata o motor de reconhecimento de texto como colaborador
// opaco: imagem entra, string sai. Nenhum layout estruturado é consumido.
package ocr

import "context"

// Recognizer reconhece texto em uma imagem
type Recognizer interface {
	Recognize(ctx context.Context, image []byte) (string, error)
}

// StaticRecognizer devolve sempre o mesmo texto. Usado em desenvolvimento e
// testes quando não há chave de API configurada, no lugar do motor remoto.
type StaticRecognizer struct {
	Text string
}

// Recognize retorna o texto fixo configurado
func (s *StaticRecognizer) Recognize(ctx context.Context, image []byte) (string, error) {
	return s.Text, nil
}
