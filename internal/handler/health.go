package handler

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joystie/graph-telemetry-api/internal/database"
	"github.com/joystie/graph-telemetry-api/internal/metrics"
)

// HealthHandler expõe health check e métricas
type HealthHandler struct {
	db *sql.DB // pode ser nil
}

// NewHealthHandler cria um novo handler de health
func NewHealthHandler(db *sql.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health responde o status do serviço
func (h *HealthHandler) Health(c *gin.Context) {
	resp := gin.H{
		"status":  "ok",
		"service": "graph-telemetry",
	}

	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			resp["status"] = "degraded"
			resp["database"] = "unreachable"
		} else {
			resp["database"] = "ok"
		}
	}

	c.JSON(http.StatusOK, resp)
}

// Metrics responde o snapshot dos contadores da aplicação
func (h *HealthHandler) Metrics(c *gin.Context) {
	resp := gin.H{
		"metrics": metrics.Global().Read(),
	}
	if h.db != nil {
		resp["db_pool"] = database.GetPoolStats(h.db)
	}
	c.JSON(http.StatusOK, resp)
}
