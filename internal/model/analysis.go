package model

import "time"

// AnalysisRecord é um resultado de análise persistido no histórico.
// O índice de dia segue DayNames (0 = domingo).
type AnalysisRecord struct {
	ID         int64     `json:"id"`
	RequestID  string    `json:"request_id"`
	ChildID    string    `json:"child_id"`
	DayName    string    `json:"day_name"`
	DayIndex   int       `json:"day_index"`
	Hours      int       `json:"hours"`
	Minutes    int       `json:"minutes"`
	TotalHours float64   `json:"total_hours"`
	Found      bool      `json:"found"`
	MaxHours   float64   `json:"max_hours"`
	CreatedAt  time.Time `json:"created_at"`
}
