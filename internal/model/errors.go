package model

import "errors"

var (
	// ErrInvalidImage indica que os dados de imagem não puderam ser decodificados
	ErrInvalidImage = errors.New("dados de imagem inválidos")

	// ErrImageTooLarge indica que a imagem excede o limite aceito
	ErrImageTooLarge = errors.New("imagem excede o limite de 10MB")

	// ErrEmptyImage indica payload de imagem vazio
	ErrEmptyImage = errors.New("dados de imagem vazios")

	// ErrOCRUnavailable indica falha ao contatar o motor de OCR
	ErrOCRUnavailable = errors.New("motor de OCR indisponível")

	// ErrNoDatabase indica operação de histórico sem banco configurado
	ErrNoDatabase = errors.New("banco de dados não configurado")

	// ErrNotFound indica registro não encontrado
	ErrNotFound = errors.New("registro não encontrado")
)
