package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/joystie/graph-telemetry-api/internal/model"
)

// AnalysisRepository persiste resultados de análise no PostgreSQL
type AnalysisRepository struct {
	db *sql.DB
}

// NewAnalysisRepository cria um novo repositório de análises
func NewAnalysisRepository(db *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// Save grava um resultado de análise e preenche o ID gerado
func (r *AnalysisRepository) Save(ctx context.Context, rec *model.AnalysisRecord) error {
	query := `
		INSERT INTO analyses
			(request_id, child_id, day_name, day_index, hours, minutes, total_hours, found, max_hours)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		rec.RequestID, rec.ChildID, rec.DayName, rec.DayIndex,
		rec.Hours, rec.Minutes, rec.TotalHours, rec.Found, rec.MaxHours,
	).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("gravar análise: %w", err)
	}
	return nil
}

// ListByChild retorna as análises mais recentes de uma criança
func (r *AnalysisRepository) ListByChild(ctx context.Context, childID string, limit int) ([]model.AnalysisRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	query := `
		SELECT id, request_id, child_id, day_name, day_index,
		       hours, minutes, total_hours, found, max_hours, created_at
		FROM analyses
		WHERE child_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, childID, limit)
	if err != nil {
		return nil, fmt.Errorf("listar análises: %w", err)
	}
	defer rows.Close()

	var records []model.AnalysisRecord
	for rows.Next() {
		var rec model.AnalysisRecord
		if err := rows.Scan(
			&rec.ID, &rec.RequestID, &rec.ChildID, &rec.DayName, &rec.DayIndex,
			&rec.Hours, &rec.Minutes, &rec.TotalHours, &rec.Found, &rec.MaxHours, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("ler análise: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// LatestWeek retorna, para uma criança, o resultado mais recente de cada um
// dos sete dias (índice 0-6). Dias sem análise ficam ausentes do mapa.
func (r *AnalysisRepository) LatestWeek(ctx context.Context, childID string) (map[int]model.AnalysisRecord, error) {
	query := `
		SELECT DISTINCT ON (day_index)
		       id, request_id, child_id, day_name, day_index,
		       hours, minutes, total_hours, found, max_hours, created_at
		FROM analyses
		WHERE child_id = $1 AND day_index >= 0
		ORDER BY day_index, created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, childID)
	if err != nil {
		return nil, fmt.Errorf("buscar semana: %w", err)
	}
	defer rows.Close()

	week := make(map[int]model.AnalysisRecord)
	for rows.Next() {
		var rec model.AnalysisRecord
		if err := rows.Scan(
			&rec.ID, &rec.RequestID, &rec.ChildID, &rec.DayName, &rec.DayIndex,
			&rec.Hours, &rec.Minutes, &rec.TotalHours, &rec.Found, &rec.MaxHours, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("ler análise: %w", err)
		}
		week[rec.DayIndex] = rec
	}
	return week, rows.Err()
}
