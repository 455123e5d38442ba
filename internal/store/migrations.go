package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS sessions (
	id           TEXT PRIMARY KEY,
	main_path    TEXT NOT NULL,
	working_path TEXT NOT NULL DEFAULT '',
	daas_path    TEXT NOT NULL DEFAULT '',
	state        TEXT NOT NULL DEFAULT 'walking'
		CHECK(state IN ('walking', 'complete', 'corrupted')),
	current_row  INTEGER NOT NULL DEFAULT 0,
	deleted_rows INTEGER NOT NULL DEFAULT 0,
	total        INTEGER NOT NULL DEFAULT 0,
	last_status  TEXT NOT NULL DEFAULT '',
	stats        TEXT NOT NULL DEFAULT '{}',
	period       TEXT NOT NULL DEFAULT '{}',
	daas         TEXT NOT NULL DEFAULT 'null',
	created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_sessions_state ON sessions(state);
CREATE INDEX IF NOT EXISTS idx_sessions_updated_at ON sessions(updated_at);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}
