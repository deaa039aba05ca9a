package store

import (
	"context"
	"strings"
	"testing"
)

const testDump = `{
  "events": [
    {"id": 1, "name": "Start", "annotation": "Initial", "suffix": "INIT", "date": "1975-01-01T00:00:00Z"},
    {"id": 2, "name": "Reform", "annotation": "Reform of 1990", "suffix": "R90"}
  ],
  "words": [
    {"name": "mama", "type": "Prim", "event_start_id": 1,
     "definitions": [{"id": 100, "position": 1, "body": "a «mother» of ..."}]},
    {"name": "pa", "type": "Prim", "event_start_id": 1, "event_end_id": 2,
     "definitions": [
       {"id": 200, "position": 1, "body": "«after»"},
       {"id": 201, "position": 2, "body": "«past» tense"}
     ]}
  ],
  "keys": [
    {"word": "mother", "language": "en", "definition_ids": [100]},
    {"word": "after", "language": "en", "definition_ids": [200]}
  ],
  "settings": [{"db_release": "4.5", "db_version": 3}]
}`

func TestImportCorpus(t *testing.T) {
	_, s := setupTestStore(t)
	ctx := context.Background()

	if err := s.ImportCorpus(ctx, strings.NewReader(testDump)); err != nil {
		t.Fatalf("ImportCorpus failed: %v", err)
	}

	stats, err := s.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	want := Stats{Events: 2, Words: 2, Definitions: 3, Keys: 2, Settings: 1}
	if *stats != want {
		t.Errorf("after import stats = %+v, want %+v", *stats, want)
	}

	latest, err := s.LatestEvent(ctx)
	if err != nil || latest.Suffix != "R90" {
		t.Errorf("LatestEvent = %+v, %v; want suffix R90", latest, err)
	}

	words, err := s.WordsByEvent(ctx, 1)
	if err != nil {
		t.Fatalf("WordsByEvent failed: %v", err)
	}
	if len(words) != 2 || words[1].Name != "pa" || len(words[1].Definitions) != 2 {
		t.Fatalf("unexpected words at event 1: %+v", words)
	}
	if words[1].Definitions[0].Body != "«after»" || words[1].Definitions[1].Position != 2 {
		t.Errorf("definitions of 'pa' not imported in position order: %+v", words[1].Definitions)
	}

	keys, err := s.KeysByLanguage(ctx, "en")
	if err != nil {
		t.Fatalf("KeysByLanguage failed: %v", err)
	}
	if len(keys) != 2 || keys[0].Word != "after" || len(keys[0].Definitions) != 1 {
		t.Fatalf("unexpected keys: %+v", keys)
	}
	if keys[0].Definitions[0].Source == nil || keys[0].Definitions[0].Source.Name != "pa" {
		t.Errorf("'after' should link to a definition of 'pa'")
	}
}

func TestImportCorpus_RollsBackOnUnknownDefinition(t *testing.T) {
	_, s := setupTestStore(t)
	ctx := context.Background()

	bad := `{
  "events": [{"id": 1, "name": "Start"}],
  "words": [{"name": "mama", "event_start_id": 1, "definitions": [{"id": 1, "body": "«mother»"}]}],
  "keys": [{"word": "mother", "language": "en", "definition_ids": [99]}]
}`
	if err := s.ImportCorpus(ctx, strings.NewReader(bad)); err == nil {
		t.Fatal("expected an error for a key referring to an unknown definition")
	}

	stats, err := s.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats.Events != 0 || stats.Words != 0 {
		t.Errorf("failed import should leave no rows, got %+v", *stats)
	}
}

func TestImportCorpus_RejectsEventWithoutID(t *testing.T) {
	_, s := setupTestStore(t)
	err := s.ImportCorpus(context.Background(), strings.NewReader(`{"events": [{"name": "Start"}]}`))
	if err == nil {
		t.Error("expected an error for an event without id")
	}
}

func TestImportCorpus_InvalidJSON(t *testing.T) {
	_, s := setupTestStore(t)
	if err := s.ImportCorpus(context.Background(), strings.NewReader(`{"events": [`)); err == nil {
		t.Error("expected an error for malformed json")
	}
}
