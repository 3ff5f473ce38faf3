package sqlite

import "database/sql"

// migrations contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
//
// Assignments live in one table keyed by group_id (one row per giver pair),
// so every group shares the same schema. Wishes are keyed by owner username
// only: a person in several groups has a single wish list, and the list
// survives the removal of any group.
const schema = `
CREATE TABLE IF NOT EXISTS assignments (
    group_id TEXT NOT NULL,
    giver TEXT NOT NULL,
    recipient TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    PRIMARY KEY (group_id, giver)
);

CREATE TABLE IF NOT EXISTS wishes (
    id TEXT PRIMARY KEY,
    owner TEXT NOT NULL,
    content TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_assignments_group_id ON assignments(group_id);
CREATE INDEX IF NOT EXISTS idx_wishes_owner ON wishes(owner);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
