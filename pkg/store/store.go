package store

import (
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
)

var (
	// ErrNoEvents is returned when the corpus holds no lexical events.
	ErrNoEvents = errors.New("no lexical events in database")
	// ErrNoSettings is returned when the corpus holds no release settings.
	ErrNoSettings = errors.New("no settings in database")
	// ErrEventNotFound is returned when a requested event does not exist.
	ErrEventNotFound = errors.New("lexical event not found")
)

// dateLayout is how event and setting dates are stored.
const dateLayout = "2006-01-02"

var wordColumns = []string{
	"w.id", "w.name", "w.type", "w.type_group", "w.origin", "w.origin_x",
	"w.affixes", "w.authors", "w.year", "w.rank", "w.match_score", "w.notes",
	"w.event_start_id", "w.event_end_id",
}

var definitionColumns = []string{
	"d.id", "d.word_id", "d.position", "d.body", "d.usage", "d.grammar_code",
	"d.slots_note", "d.case_tags", "d.language",
}

// Store is the main entry point for reading and writing the corpus.
// It holds the database connection and prepared statements for the fixed
// queries; variable queries are built with squirrel.
type Store struct {
	db                   *sql.DB
	stmtLatestEvent      *sql.Stmt
	stmtEventByID        *sql.Stmt
	stmtCurrentRelease   *sql.Stmt
	stmtInsertEvent      *sql.Stmt
	stmtInsertWord       *sql.Stmt
	stmtInsertDefinition *sql.Stmt
	stmtInsertKey        *sql.Stmt
	stmtLinkKey          *sql.Stmt
	stmtInsertSetting    *sql.Stmt
	logger               *slog.Logger
}

// New creates and returns a new Store. The schema must already exist (see
// SetupSchema). It pre-compiles the fixed SQL statements, returning an error
// if any preparation fails.
func New(db *sql.DB) (*Store, error) {
	s := &Store{
		db:     db,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	stmts := []struct {
		dst   **sql.Stmt
		query string
	}{
		{&s.stmtLatestEvent, `SELECT id, date, name, definition, annotation, suffix FROM lexical_events ORDER BY id DESC LIMIT 1;`},
		{&s.stmtEventByID, `SELECT id, date, name, definition, annotation, suffix FROM lexical_events WHERE id = ?;`},
		{&s.stmtCurrentRelease, `SELECT id, date, db_version, last_word_id, db_release FROM settings ORDER BY id DESC LIMIT 1;`},
		{&s.stmtInsertEvent, `INSERT INTO lexical_events (id, date, name, definition, annotation, suffix) VALUES (?, ?, ?, ?, ?, ?);`},
		{&s.stmtInsertWord, `INSERT INTO words (id, name, type, type_group, origin, origin_x, affixes, authors, year, rank, match_score, notes, event_start_id, event_end_id) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`},
		{&s.stmtInsertDefinition, `INSERT INTO definitions (id, word_id, position, body, usage, grammar_code, slots_note, case_tags, language) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);`},
		{&s.stmtInsertKey, `INSERT INTO lookup_keys (id, word, language) VALUES (?, ?, ?);`},
		{&s.stmtLinkKey, `INSERT OR IGNORE INTO definition_keys (key_id, definition_id) VALUES (?, ?);`},
		{&s.stmtInsertSetting, `INSERT INTO settings (id, date, db_version, last_word_id, db_release) VALUES (?, ?, ?, ?, ?);`},
	}
	for _, st := range stmts {
		stmt, err := db.Prepare(st.query)
		if err != nil {
			s.Close()
			return nil, err
		}
		*st.dst = stmt
	}
	return s, nil
}

// Close releases all prepared SQL statements held by the Store. It does not
// close the underlying database.
func (s *Store) Close() {
	for _, stmt := range []*sql.Stmt{
		s.stmtLatestEvent,
		s.stmtEventByID,
		s.stmtCurrentRelease,
		s.stmtInsertEvent,
		s.stmtInsertWord,
		s.stmtInsertDefinition,
		s.stmtInsertKey,
		s.stmtLinkKey,
		s.stmtInsertSetting,
	} {
		if stmt != nil {
			_ = stmt.Close()
		}
	}
}

// SetLogger sets the logger for the Store. By default, all logs are discarded.
func (s *Store) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// validAt restricts word rows (aliased w) to those in force at eventID.
func validAt(eventID int) sq.Sqlizer {
	return sq.And{
		sq.LtOrEq{"w.event_start_id": eventID},
		sq.Or{
			sq.Eq{"w.event_end_id": nil},
			sq.Gt{"w.event_end_id": eventID},
		},
	}
}

// nullableID maps the zero ID to NULL so SQLite assigns one.
func nullableID(id int) any {
	if id == 0 {
		return nil
	}
	return id
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func parseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{dateLayout, time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
