package store

import (
	"database/sql"
	"fmt"
)

const (
	schemaEvents = `
CREATE TABLE IF NOT EXISTS lexical_events (
    id          INTEGER PRIMARY KEY,
    date        TEXT NOT NULL DEFAULT '',
    name        TEXT NOT NULL,
    definition  TEXT NOT NULL DEFAULT '',
    annotation  TEXT NOT NULL DEFAULT '',
    suffix      TEXT NOT NULL DEFAULT ''
);
`
	schemaWords = `
CREATE TABLE IF NOT EXISTS words (
    id              INTEGER PRIMARY KEY,
    name            TEXT NOT NULL,
    type            TEXT NOT NULL DEFAULT '',
    type_group      TEXT NOT NULL DEFAULT '',
    origin          TEXT NOT NULL DEFAULT '',
    origin_x        TEXT NOT NULL DEFAULT '',
    affixes         TEXT NOT NULL DEFAULT '',
    authors         TEXT NOT NULL DEFAULT '',
    year            TEXT NOT NULL DEFAULT '',
    rank            TEXT NOT NULL DEFAULT '',
    match_score     TEXT NOT NULL DEFAULT '',
    notes           TEXT NOT NULL DEFAULT '',
    event_start_id  INTEGER NOT NULL REFERENCES lexical_events(id),
    event_end_id    INTEGER REFERENCES lexical_events(id),
    CHECK (event_end_id IS NULL OR event_start_id <= event_end_id)
);
CREATE INDEX IF NOT EXISTS idx_words_name ON words(name);
`
	schemaDefinitions = `
CREATE TABLE IF NOT EXISTS definitions (
    id            INTEGER PRIMARY KEY,
    word_id       INTEGER NOT NULL REFERENCES words(id),
    position      INTEGER NOT NULL DEFAULT 0,
    body          TEXT NOT NULL DEFAULT '',
    usage         TEXT NOT NULL DEFAULT '',
    grammar_code  TEXT NOT NULL DEFAULT '',
    slots_note    TEXT NOT NULL DEFAULT '',
    case_tags     TEXT NOT NULL DEFAULT '',
    language      TEXT NOT NULL DEFAULT 'en'
);
CREATE INDEX IF NOT EXISTS idx_definitions_word ON definitions(word_id);
`
	schemaKeys = `
CREATE TABLE IF NOT EXISTS lookup_keys (
    id        INTEGER PRIMARY KEY,
    word      TEXT NOT NULL,
    language  TEXT NOT NULL DEFAULT 'en'
);
CREATE INDEX IF NOT EXISTS idx_lookup_keys_language_word ON lookup_keys(language, word);
CREATE TABLE IF NOT EXISTS definition_keys (
    key_id         INTEGER NOT NULL REFERENCES lookup_keys(id),
    definition_id  INTEGER NOT NULL REFERENCES definitions(id),
    PRIMARY KEY (key_id, definition_id)
);
`
	schemaSettings = `
CREATE TABLE IF NOT EXISTS settings (
    id            INTEGER PRIMARY KEY,
    date          TEXT NOT NULL DEFAULT '',
    db_version    INTEGER NOT NULL DEFAULT 0,
    last_word_id  INTEGER NOT NULL DEFAULT 0,
    db_release    TEXT NOT NULL
);
`
)

// SetupSchema creates the corpus tables in the provided database. It must be
// called before New, is idempotent, and is safe to call on an
// already-initialized database.
func SetupSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	for _, schema := range []string{schemaEvents, schemaWords, schemaDefinitions, schemaKeys, schemaSettings} {
		if _, err = tx.Exec(schema); err != nil {
			return fmt.Errorf("could not create schema: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}
	return nil
}
