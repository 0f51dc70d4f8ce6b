package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joystie/graph-telemetry-api/internal/model"
)

// AuthConfig define o token esperado nas rotas de análise
type AuthConfig struct {
	TokenAPI string
}

// BearerAuth valida o token Bearer das rotas da API. A comparação do token
// é em tempo constante.
func BearerAuth(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.ErrorResponse{
				Success: false,
				Error:   "autenticação obrigatória",
				Details: "envie o header Authorization: Bearer {token}",
			})
			return
		}

		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.ErrorResponse{
				Success: false,
				Error:   "esquema de autenticação inválido",
				Details: "esperado: Bearer {token}",
			})
			return
		}

		if subtle.ConstantTimeCompare([]byte(token), []byte(cfg.TokenAPI)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.ErrorResponse{
				Success: false,
				Error:   "token não autorizado",
			})
			return
		}

		c.Next()
	}
}
