// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package audit

const (
	// SchemaVersion tracks the database schema version for migrations
	SchemaVersion = 1
)

// Schema is the SQLite layout of the journal.
const Schema = `
CREATE TABLE IF NOT EXISTS metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
) WITHOUT ROWID;

CREATE TABLE IF NOT EXISTS entries (
    id TEXT PRIMARY KEY,
    at INTEGER NOT NULL,        -- Unix nanoseconds
    kind TEXT NOT NULL,         -- test, action, stats
    target TEXT NOT NULL,
    success INTEGER NOT NULL,
    detail TEXT
);

CREATE INDEX IF NOT EXISTS idx_entries_at ON entries(at);
CREATE INDEX IF NOT EXISTS idx_entries_kind ON entries(kind);
`

// InitMetadata seeds the metadata table.
const InitMetadata = `
INSERT OR IGNORE INTO metadata (key, value) VALUES ('schema_version', '1');
`
