package migration

// getAllMigrations retorna todas as migrações disponíveis
func getAllMigrations() []Migration {
	return []Migration{
		{
			Version: 1,
			Name:    "create_analyses_table",
			Up: `
				-- Resultados de análise de screenshot
				CREATE TABLE analyses (
					id BIGSERIAL PRIMARY KEY,
					request_id VARCHAR(64) NOT NULL,
					child_id VARCHAR(64) NOT NULL DEFAULT '',
					day_name VARCHAR(16) NOT NULL,
					day_index SMALLINT NOT NULL,
					hours SMALLINT NOT NULL,
					minutes SMALLINT NOT NULL,
					total_hours DOUBLE PRECISION NOT NULL,
					found BOOLEAN NOT NULL DEFAULT FALSE,
					max_hours DOUBLE PRECISION NOT NULL,
					created_at TIMESTAMP NOT NULL DEFAULT NOW()
				);

				CREATE INDEX idx_analyses_child ON analyses (child_id, created_at DESC);
			`,
			Down: `DROP TABLE IF EXISTS analyses;`,
		},
		{
			Version: 2,
			Name:    "add_analyses_day_index",
			Up: `
				CREATE INDEX idx_analyses_child_day ON analyses (child_id, day_index);
			`,
			Down: `DROP INDEX IF EXISTS idx_analyses_child_day;`,
		},
	}
}
