package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/joystie/graph-telemetry-api/internal/graph"
	"github.com/joystie/graph-telemetry-api/internal/model"
	"github.com/joystie/graph-telemetry-api/internal/repository"
	"github.com/xuri/excelize/v2"
)

const weeklySheetName = "Relatório Semanal"

// WeeklyExporter gera a planilha semanal de tempo de tela de uma criança,
// com o resultado mais recente de cada dia
type WeeklyExporter struct {
	repo *repository.AnalysisRepository
}

// NewWeeklyExporter cria um novo exportador semanal
func NewWeeklyExporter(repo *repository.AnalysisRepository) *WeeklyExporter {
	return &WeeklyExporter{repo: repo}
}

// Generate monta o arquivo Excel da semana de uma criança
func (g *WeeklyExporter) Generate(ctx context.Context, childID string) (*bytes.Buffer, error) {
	if g.repo == nil {
		return nil, model.ErrNoDatabase
	}

	week, err := g.repo.LatestWeek(ctx, childID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	// Renomeia a sheet padrão
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, weeklySheetName); err != nil {
		return nil, fmt.Errorf("renomear sheet: %w", err)
	}

	headers := []string{"Dia", "Horas", "Minutos", "Total (h)", "Detectado", "Medido em"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("resolver célula: %w", err)
		}
		if err := f.SetCellValue(weeklySheetName, cell, h); err != nil {
			return nil, fmt.Errorf("escrever header: %w", err)
		}
	}

	for day := 0; day < 7; day++ {
		row := day + 2
		values := []interface{}{graph.DayNames[day], "", "", "", "não", ""}

		if rec, ok := week[day]; ok {
			detected := "não"
			if rec.Found {
				detected = "sim"
			}
			values = []interface{}{
				rec.DayName,
				rec.Hours,
				rec.Minutes,
				rec.TotalHours,
				detected,
				rec.CreatedAt.Format("2006-01-02 15:04"),
			}
		}

		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, fmt.Errorf("resolver célula: %w", err)
			}
			if err := f.SetCellValue(weeklySheetName, cell, v); err != nil {
				return nil, fmt.Errorf("escrever dados: %w", err)
			}
		}
	}

	// Ajusta largura das colunas
	for i := range headers {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, fmt.Errorf("resolver coluna: %w", err)
		}
		if err := f.SetColWidth(weeklySheetName, col, col, 16); err != nil {
			return nil, fmt.Errorf("ajustar colunas: %w", err)
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("escrever buffer: %w", err)
	}

	return buf, nil
}
