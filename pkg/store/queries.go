package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"

	"github.com/CTAG07/lodexport/pkg/lexicon"
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (lexicon.Event, error) {
	var e lexicon.Event
	var date string
	if err := row.Scan(&e.ID, &date, &e.Name, &e.Definition, &e.Annotation, &e.Suffix); err != nil {
		return lexicon.Event{}, err
	}
	e.Date = parseDate(date)
	return e, nil
}

// LatestEvent returns the lexical event with the highest ID.
func (s *Store) LatestEvent(ctx context.Context) (lexicon.Event, error) {
	e, err := scanEvent(s.stmtLatestEvent.QueryRowContext(ctx))
	if errors.Is(err, sql.ErrNoRows) {
		return lexicon.Event{}, ErrNoEvents
	}
	if err != nil {
		return lexicon.Event{}, fmt.Errorf("could not query latest event: %w", err)
	}
	return e, nil
}

// EventByID returns the lexical event with the given ID.
func (s *Store) EventByID(ctx context.Context, id int) (lexicon.Event, error) {
	e, err := scanEvent(s.stmtEventByID.QueryRowContext(ctx, id))
	if errors.Is(err, sql.ErrNoRows) {
		return lexicon.Event{}, fmt.Errorf("%w: id %d", ErrEventNotFound, id)
	}
	if err != nil {
		return lexicon.Event{}, fmt.Errorf("could not query event %d: %w", id, err)
	}
	return e, nil
}

// LatestSetting returns the settings row with the highest ID.
func (s *Store) LatestSetting(ctx context.Context) (lexicon.Setting, error) {
	var st lexicon.Setting
	var date string
	err := s.stmtCurrentRelease.QueryRowContext(ctx).Scan(&st.ID, &date, &st.DBVersion, &st.LastWordID, &st.DBRelease)
	if errors.Is(err, sql.ErrNoRows) {
		return lexicon.Setting{}, ErrNoSettings
	}
	if err != nil {
		return lexicon.Setting{}, fmt.Errorf("could not query settings: %w", err)
	}
	st.Date = parseDate(date)
	return st, nil
}

// CurrentRelease returns the db_release label of the latest settings row.
func (s *Store) CurrentRelease(ctx context.Context) (string, error) {
	st, err := s.LatestSetting(ctx)
	if err != nil {
		return "", err
	}
	return st.DBRelease, nil
}

func scanWord(row rowScanner) (lexicon.Word, error) {
	var w lexicon.Word
	var end sql.NullInt64
	err := row.Scan(&w.ID, &w.Name, &w.Type, &w.TypeGroup, &w.Origin, &w.OriginX,
		&w.Affixes, &w.Authors, &w.Year, &w.Rank, &w.Match, &w.Notes,
		&w.EventStartID, &end)
	if err != nil {
		return lexicon.Word{}, err
	}
	if end.Valid {
		w.EventEndID = lexicon.EndAt(int(end.Int64))
	}
	return w, nil
}

func definitionDest(d *lexicon.Definition) []any {
	return []any{&d.ID, &d.WordID, &d.Position, &d.Body, &d.Usage, &d.GrammarCode,
		&d.SlotsNote, &d.CaseTags, &d.Language}
}

// WordsByEvent returns every word in force at the given event, ordered by
// name and then ID, with their definitions ordered by position.
// Words sharing a name are therefore adjacent.
func (s *Store) WordsByEvent(ctx context.Context, eventID int) ([]lexicon.Word, error) {
	query, args, err := sq.Select(wordColumns...).
		From("words w").
		Where(validAt(eventID)).
		OrderBy("w.name", "w.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("could not build words query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("could not query words for event %d: %w", eventID, err)
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	var words []lexicon.Word
	index := make(map[int]int)
	for rows.Next() {
		w, err := scanWord(rows)
		if err != nil {
			return nil, err
		}
		index[w.ID] = len(words)
		words = append(words, w)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if err = s.attachDefinitions(ctx, eventID, words, index); err != nil {
		return nil, err
	}

	s.logger.DebugContext(ctx, "Loaded words",
		slog.Int("event_id", eventID),
		slog.Int("words", len(words)),
	)
	return words, nil
}

// attachDefinitions loads the definitions of every word valid at eventID in
// one query and appends them to their words.
func (s *Store) attachDefinitions(ctx context.Context, eventID int, words []lexicon.Word, index map[int]int) error {
	if len(words) == 0 {
		return nil
	}
	query, args, err := sq.Select(definitionColumns...).
		From("definitions d").
		Join("words w ON w.id = d.word_id").
		Where(validAt(eventID)).
		OrderBy("d.word_id", "d.position", "d.id").
		ToSql()
	if err != nil {
		return fmt.Errorf("could not build definitions query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("could not query definitions for event %d: %w", eventID, err)
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	for rows.Next() {
		var d lexicon.Definition
		if err = rows.Scan(definitionDest(&d)...); err != nil {
			return err
		}
		i, ok := index[d.WordID]
		if !ok {
			continue
		}
		d.Source = &words[i]
		words[i].Definitions = append(words[i].Definitions, d)
	}
	return rows.Err()
}

// KeysByLanguage returns every key of the given language ordered by word and
// then ID. Each key carries all of its definitions regardless of their
// validity, each with its source word populated; time filtering is the
// caller's concern.
func (s *Store) KeysByLanguage(ctx context.Context, language string) ([]lexicon.Key, error) {
	query, args, err := sq.Select("k.id", "k.word", "k.language").
		From("lookup_keys k").
		Where(sq.Eq{"k.language": language}).
		OrderBy("k.word", "k.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("could not build keys query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("could not query keys for language %q: %w", language, err)
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	var keys []lexicon.Key
	index := make(map[int]int)
	for rows.Next() {
		var k lexicon.Key
		if err = rows.Scan(&k.ID, &k.Word, &k.Language); err != nil {
			return nil, err
		}
		index[k.ID] = len(keys)
		keys = append(keys, k)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if err = s.attachKeyDefinitions(ctx, language, keys, index); err != nil {
		return nil, err
	}

	s.logger.DebugContext(ctx, "Loaded keys",
		slog.String("language", language),
		slog.Int("keys", len(keys)),
	)
	return keys, nil
}

func (s *Store) attachKeyDefinitions(ctx context.Context, language string, keys []lexicon.Key, index map[int]int) error {
	if len(keys) == 0 {
		return nil
	}
	columns := append([]string{"dk.key_id"}, definitionColumns...)
	columns = append(columns, wordColumns...)
	query, args, err := sq.Select(columns...).
		From("definition_keys dk").
		Join("lookup_keys k ON k.id = dk.key_id").
		Join("definitions d ON d.id = dk.definition_id").
		Join("words w ON w.id = d.word_id").
		Where(sq.Eq{"k.language": language}).
		OrderBy("dk.key_id", "d.id").
		ToSql()
	if err != nil {
		return fmt.Errorf("could not build key definitions query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("could not query key definitions for language %q: %w", language, err)
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	// Definitions of one word share a single source word value.
	sources := make(map[int]*lexicon.Word)
	for rows.Next() {
		var keyID int
		var d lexicon.Definition
		var w lexicon.Word
		var end sql.NullInt64
		dest := append([]any{&keyID}, definitionDest(&d)...)
		dest = append(dest, &w.ID, &w.Name, &w.Type, &w.TypeGroup, &w.Origin, &w.OriginX,
			&w.Affixes, &w.Authors, &w.Year, &w.Rank, &w.Match, &w.Notes,
			&w.EventStartID, &end)
		if err = rows.Scan(dest...); err != nil {
			return err
		}
		if end.Valid {
			w.EventEndID = lexicon.EndAt(int(end.Int64))
		}
		src, ok := sources[w.ID]
		if !ok {
			src = &w
			sources[w.ID] = src
		}
		d.Source = src

		i, ok := index[keyID]
		if !ok {
			continue
		}
		keys[i].Definitions = append(keys[i].Definitions, d)
	}
	return rows.Err()
}
