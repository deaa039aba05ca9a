package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/CTAG07/lodexport/pkg/lexicon"
)

// CorpusDump is the serializable form of a whole corpus, used for JSON
// import. Words carry their definitions; keys refer to definitions by the
// IDs they have in the dump.
type CorpusDump struct {
	Events   []lexicon.Event   `json:"events"`
	Words    []lexicon.Word    `json:"words"`
	Keys     []DumpKey         `json:"keys"`
	Settings []lexicon.Setting `json:"settings"`
}

// DumpKey is a lookup key in a CorpusDump.
type DumpKey struct {
	Word          string `json:"word"`
	Language      string `json:"language"`
	DefinitionIDs []int  `json:"definition_ids"`
}

// ImportCorpus reads a JSON CorpusDump from r and inserts it into the
// database. Event IDs are kept as given because words refer to them; word
// and definition IDs are kept when set and assigned otherwise, and key links
// are re-mapped to the stored definition IDs. The whole import is one
// transaction.
func (s *Store) ImportCorpus(ctx context.Context, r io.Reader) error {
	var dump CorpusDump
	if err := json.NewDecoder(r).Decode(&dump); err != nil {
		return fmt.Errorf("failed to decode json corpus: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction for import: %w", err)
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	stmtInsertEvent := tx.StmtContext(ctx, s.stmtInsertEvent)
	stmtInsertWord := tx.StmtContext(ctx, s.stmtInsertWord)
	stmtInsertDefinition := tx.StmtContext(ctx, s.stmtInsertDefinition)
	stmtInsertKey := tx.StmtContext(ctx, s.stmtInsertKey)
	stmtLinkKey := tx.StmtContext(ctx, s.stmtLinkKey)
	stmtInsertSetting := tx.StmtContext(ctx, s.stmtInsertSetting)

	for _, e := range dump.Events {
		if e.ID == 0 {
			return fmt.Errorf("import consistency error: event %q has no id", e.Name)
		}
		if _, err = insertEvent(ctx, stmtInsertEvent, e); err != nil {
			return err
		}
	}

	definitionIDMap := make(map[int]int) // dump_id -> stored_id
	var definitionCount int
	for _, w := range dump.Words {
		wordID, err := insertWord(ctx, stmtInsertWord, w)
		if err != nil {
			return err
		}
		for _, d := range w.Definitions {
			d.WordID = wordID
			newID, err := insertDefinition(ctx, stmtInsertDefinition, d)
			if err != nil {
				return err
			}
			if d.ID != 0 {
				definitionIDMap[d.ID] = newID
			}
			definitionCount++
		}
	}

	var linkCount int
	for _, k := range dump.Keys {
		keyID, err := insertKey(ctx, stmtInsertKey, lexicon.Key{Word: k.Word, Language: k.Language})
		if err != nil {
			return err
		}
		for _, oldID := range k.DefinitionIDs {
			newID, ok := definitionIDMap[oldID]
			if !ok {
				return fmt.Errorf("import consistency error: key %q refers to unknown definition %d", k.Word, oldID)
			}
			if _, err = stmtLinkKey.ExecContext(ctx, keyID, newID); err != nil {
				return fmt.Errorf("failed to link key %q to definition %d: %w", k.Word, newID, err)
			}
			linkCount++
		}
	}

	for _, st := range dump.Settings {
		if _, err = insertSetting(ctx, stmtInsertSetting, st); err != nil {
			return err
		}
	}

	s.logger.InfoContext(ctx, "Corpus imported successfully",
		slog.Int("events", len(dump.Events)),
		slog.Int("words", len(dump.Words)),
		slog.Int("definitions", definitionCount),
		slog.Int("keys", len(dump.Keys)),
		slog.Int("key_links", linkCount),
		slog.Int("settings", len(dump.Settings)),
	)

	return tx.Commit()
}
