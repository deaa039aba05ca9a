package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/CTAG07/lodexport/pkg/lexicon"
)

// The insert helpers take the statement to run so that ImportCorpus can use
// transaction-bound copies of the prepared statements.

func insertEvent(ctx context.Context, stmt *sql.Stmt, e lexicon.Event) (int, error) {
	res, err := stmt.ExecContext(ctx, nullableID(e.ID), formatDate(e.Date), e.Name, e.Definition, e.Annotation, e.Suffix)
	if err != nil {
		return 0, fmt.Errorf("could not insert event %q: %w", e.Name, err)
	}
	id, err := res.LastInsertId()
	return int(id), err
}

func insertWord(ctx context.Context, stmt *sql.Stmt, w lexicon.Word) (int, error) {
	var end any
	if w.EventEndID != nil {
		end = *w.EventEndID
	}
	res, err := stmt.ExecContext(ctx, nullableID(w.ID), w.Name, w.Type, w.TypeGroup, w.Origin, w.OriginX,
		w.Affixes, w.Authors, w.Year, w.Rank, w.Match, w.Notes, w.EventStartID, end)
	if err != nil {
		return 0, fmt.Errorf("could not insert word %q: %w", w.Name, err)
	}
	id, err := res.LastInsertId()
	return int(id), err
}

func insertDefinition(ctx context.Context, stmt *sql.Stmt, d lexicon.Definition) (int, error) {
	language := d.Language
	if language == "" {
		language = "en"
	}
	res, err := stmt.ExecContext(ctx, nullableID(d.ID), d.WordID, d.Position, d.Body, d.Usage,
		d.GrammarCode, d.SlotsNote, d.CaseTags, language)
	if err != nil {
		return 0, fmt.Errorf("could not insert definition for word %d: %w", d.WordID, err)
	}
	id, err := res.LastInsertId()
	return int(id), err
}

func insertKey(ctx context.Context, stmt *sql.Stmt, k lexicon.Key) (int, error) {
	language := k.Language
	if language == "" {
		language = "en"
	}
	res, err := stmt.ExecContext(ctx, nullableID(k.ID), k.Word, language)
	if err != nil {
		return 0, fmt.Errorf("could not insert key %q: %w", k.Word, err)
	}
	id, err := res.LastInsertId()
	return int(id), err
}

func insertSetting(ctx context.Context, stmt *sql.Stmt, st lexicon.Setting) (int, error) {
	res, err := stmt.ExecContext(ctx, nullableID(st.ID), formatDate(st.Date), st.DBVersion, st.LastWordID, st.DBRelease)
	if err != nil {
		return 0, fmt.Errorf("could not insert setting %q: %w", st.DBRelease, err)
	}
	id, err := res.LastInsertId()
	return int(id), err
}

// InsertEvent stores a lexical event and returns its ID. A zero ID lets the
// database assign one.
func (s *Store) InsertEvent(ctx context.Context, e lexicon.Event) (int, error) {
	return insertEvent(ctx, s.stmtInsertEvent, e)
}

// InsertWord stores a word without its definitions and returns its ID.
func (s *Store) InsertWord(ctx context.Context, w lexicon.Word) (int, error) {
	return insertWord(ctx, s.stmtInsertWord, w)
}

// InsertDefinition stores a definition of the word d.WordID and returns its ID.
func (s *Store) InsertDefinition(ctx context.Context, d lexicon.Definition) (int, error) {
	return insertDefinition(ctx, s.stmtInsertDefinition, d)
}

// InsertKey stores a lookup key without linking it and returns its ID.
func (s *Store) InsertKey(ctx context.Context, k lexicon.Key) (int, error) {
	return insertKey(ctx, s.stmtInsertKey, k)
}

// LinkKey associates a key with a definition. Linking twice is a no-op.
func (s *Store) LinkKey(ctx context.Context, keyID, definitionID int) error {
	if _, err := s.stmtLinkKey.ExecContext(ctx, keyID, definitionID); err != nil {
		return fmt.Errorf("could not link key %d to definition %d: %w", keyID, definitionID, err)
	}
	return nil
}

// InsertSetting stores a release settings row and returns its ID.
func (s *Store) InsertSetting(ctx context.Context, st lexicon.Setting) (int, error) {
	return insertSetting(ctx, s.stmtInsertSetting, st)
}
