package migration

import (
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/joystie/graph-telemetry-api/internal/logger"
	_ "github.com/lib/pq"
)

// Migration é um passo versionado de evolução do esquema
type Migration struct {
	Version int
	Name    string
	Up      string
	Down    string
}

// Migrator aplica na ordem os passos pendentes do esquema de análises
type Migrator struct {
	db         *sql.DB
	migrations []Migration
}

// NewMigrator cria um migrator com todos os passos conhecidos
func NewMigrator(db *sql.DB) *Migrator {
	return &Migrator{
		db:         db,
		migrations: getAllMigrations(),
	}
}

// Run aplica os passos com versão acima da registrada no banco
func (m *Migrator) Run() error {
	log := logger.Global()

	if err := m.ensureVersionTable(); err != nil {
		return fmt.Errorf("preparar tabela de versões: %w", err)
	}

	applied, err := m.appliedVersion()
	if err != nil {
		return fmt.Errorf("ler versão do esquema: %w", err)
	}

	sort.Slice(m.migrations, func(i, j int) bool {
		return m.migrations[i].Version < m.migrations[j].Version
	})

	pending := 0
	for _, mg := range m.migrations {
		if mg.Version > applied {
			pending++
		}
	}
	log.Info().
		Int("schema_version", applied).
		Int("pending", pending).
		Msg("Verificando esquema do banco")

	for _, mg := range m.migrations {
		if mg.Version <= applied {
			continue
		}

		log.Info().
			Int("version", mg.Version).
			Str("step", mg.Name).
			Msg("Aplicando passo de esquema")

		if err := m.apply(mg); err != nil {
			return fmt.Errorf("passo %d (%s): %w", mg.Version, mg.Name, err)
		}
	}

	return nil
}

func (m *Migrator) ensureVersionTable() error {
	_, err := m.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT NOW()
		)
	`)
	return err
}

func (m *Migrator) appliedVersion() (int, error) {
	var version int
	err := m.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version)
	return version, err
}

// apply executa um passo dentro de uma transação, junto com o registro da
// versão; falha em qualquer um desfaz os dois
func (m *Migrator) apply(mg Migration) error {
	tx, err := m.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(mg.Up); err != nil {
		return err
	}

	if _, err := tx.Exec(
		"INSERT INTO schema_migrations (version, applied_at) VALUES ($1, $2)",
		mg.Version, time.Now(),
	); err != nil {
		return err
	}

	return tx.Commit()
}
