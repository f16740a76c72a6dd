package sqlite

import "database/sql"

// schema contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
// Dates are TEXT in YYYY-MM-DD form and amounts are TEXT decimals, so both
// compare and round-trip exactly.
const schema = `
CREATE TABLE IF NOT EXISTS transactions (
    id TEXT PRIMARY KEY,
    type TEXT NOT NULL,
    amount TEXT NOT NULL,
    category TEXT NOT NULL,
    date TEXT NOT NULL,
    person TEXT NOT NULL,
    description TEXT NOT NULL,
    created_by TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS juntas (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    date_from TEXT NOT NULL,
    date_to TEXT NOT NULL,
    daily_contribution TEXT NOT NULL,
    currency TEXT NOT NULL,
    strategy TEXT,
    created_by TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    assigned_at INTEGER
);

CREATE TABLE IF NOT EXISTS junta_participants (
    junta_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    name TEXT NOT NULL,
    assigned_date TEXT,
    PRIMARY KEY (junta_id, position),
    FOREIGN KEY (junta_id) REFERENCES juntas(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS junta_payments (
    junta_id TEXT NOT NULL,
    day TEXT NOT NULL,
    paid INTEGER NOT NULL,
    amount TEXT NOT NULL,
    method TEXT NOT NULL,
    recipient TEXT,
    recorded_by TEXT NOT NULL,
    recorded_at INTEGER NOT NULL,
    revision INTEGER NOT NULL,
    PRIMARY KEY (junta_id, day),
    FOREIGN KEY (junta_id) REFERENCES juntas(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date);
CREATE INDEX IF NOT EXISTS idx_transactions_person ON transactions(person);
CREATE INDEX IF NOT EXISTS idx_junta_participants_junta_id ON junta_participants(junta_id);
CREATE INDEX IF NOT EXISTS idx_junta_payments_junta_id ON junta_payments(junta_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
