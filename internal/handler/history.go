package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/joystie/graph-telemetry-api/internal/model"
	"github.com/joystie/graph-telemetry-api/internal/repository"
)

// HistoryHandler expõe o histórico de análises persistidas
type HistoryHandler struct {
	repo *repository.AnalysisRepository
}

// NewHistoryHandler cria um novo handler de histórico
func NewHistoryHandler(repo *repository.AnalysisRepository) *HistoryHandler {
	return &HistoryHandler{repo: repo}
}

// List retorna as análises mais recentes de uma criança
func (h *HistoryHandler) List(c *gin.Context) {
	if h.repo == nil {
		c.JSON(http.StatusServiceUnavailable, model.ErrorResponse{
			Success: false,
			Error:   "histórico indisponível",
			Details: "banco de dados não configurado",
		})
		return
	}

	childID := c.Query("child_id")
	if childID == "" {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Success: false,
			Error:   "child_id é obrigatório",
		})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	records, err := h.repo.ListByChild(c.Request.Context(), childID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Success: false,
			Error:   "erro ao consultar histórico",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, model.Response{
		Success: true,
		Data:    records,
	})
}
