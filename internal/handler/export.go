package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joystie/graph-telemetry-api/internal/logger"
	"github.com/joystie/graph-telemetry-api/internal/model"
	"github.com/joystie/graph-telemetry-api/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler gera o relatório semanal em Excel
type ExportHandler struct {
	exporter *service.WeeklyExporter
}

// NewExportHandler cria um novo handler de exportação
func NewExportHandler(exporter *service.WeeklyExporter) *ExportHandler {
	return &ExportHandler{exporter: exporter}
}

// Weekly devolve a planilha com o resultado mais recente de cada dia
func (h *ExportHandler) Weekly(c *gin.Context) {
	childID := c.Query("child_id")
	if childID == "" {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Success: false,
			Error:   "child_id é obrigatório",
		})
		return
	}

	buf, err := h.exporter.Generate(c.Request.Context(), childID)
	if err != nil {
		if errors.Is(err, model.ErrNoDatabase) {
			c.JSON(http.StatusServiceUnavailable, model.ErrorResponse{
				Success: false,
				Error:   "relatórios indisponíveis",
				Details: "banco de dados não configurado",
			})
			return
		}
		logger.FromGin(c).Error().Err(err).Msg("Erro ao gerar relatório semanal")
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Success: false,
			Error:   "erro ao gerar relatório",
			Details: err.Error(),
		})
		return
	}

	filename := fmt.Sprintf("semana_%s_%s.xlsx", childID, time.Now().Format("2006-01-02"))

	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Length", fmt.Sprintf("%d", buf.Len()))

	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
