package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// DebugAuthConfig protege os endpoints de debug/métricas com basic auth.
// A senha é armazenada como hash bcrypt na configuração.
type DebugAuthConfig struct {
	Username     string
	PasswordHash string
}

// HashPassword cria um hash bcrypt da senha
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword compara uma senha com o seu hash
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// DebugBasicAuth retorna um middleware de basic auth para rotas de debug.
// Sem usuário configurado, as rotas ficam abertas (ambiente local).
func DebugBasicAuth(cfg DebugAuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.Username == "" {
			c.Next()
			return
		}

		user, pass, ok := c.Request.BasicAuth()
		if !ok || user != cfg.Username || !CheckPassword(pass, cfg.PasswordHash) {
			c.Header("WWW-Authenticate", `Basic realm="debug"`)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "credenciais inválidas",
			})
			return
		}

		c.Next()
	}
}
