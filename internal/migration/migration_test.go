package migration

import (
	"strings"
	"testing"
)

func TestMigrationStepsAreWellFormed(t *testing.T) {
	steps := getAllMigrations()
	if len(steps) == 0 {
		t.Fatal("nenhum passo de esquema definido")
	}

	seen := make(map[int]bool)
	for _, mg := range steps {
		if mg.Version <= 0 {
			t.Errorf("passo %q com versão inválida %d", mg.Name, mg.Version)
		}
		if seen[mg.Version] {
			t.Errorf("versão %d duplicada", mg.Version)
		}
		seen[mg.Version] = true

		if mg.Name == "" || strings.TrimSpace(mg.Up) == "" {
			t.Errorf("passo %d sem nome ou sem SQL de subida", mg.Version)
		}
		if strings.TrimSpace(mg.Down) == "" {
			t.Errorf("passo %d sem SQL de reversão", mg.Version)
		}
	}
}

func TestFirstMigrationCreatesAnalysesTable(t *testing.T) {
	steps := getAllMigrations()

	up := steps[0].Up
	for _, col := range []string{"request_id", "child_id", "day_index", "total_hours", "found", "max_hours"} {
		if !strings.Contains(up, col) {
			t.Errorf("tabela de análises sem a coluna %q", col)
		}
	}
}
