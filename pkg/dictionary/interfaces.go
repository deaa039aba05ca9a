package dictionary

import (
	"context"
	"html/template"
	"io"

	"github.com/CTAG07/lodexport/pkg/lexicon"
)

// Corpus is the read-only data store the dictionary is built from.
type Corpus interface {
	LatestEvent(ctx context.Context) (lexicon.Event, error)
	EventByID(ctx context.Context, id int) (lexicon.Event, error)
	CurrentRelease(ctx context.Context) (string, error)
	// WordsByEvent returns the words in force at the event, ordered so that
	// words sharing a name are adjacent.
	WordsByEvent(ctx context.Context, eventID int) ([]lexicon.Word, error)
	// KeysByLanguage returns the keys of a language ordered by word, each with
	// all of its definitions and their source words.
	KeysByLanguage(ctx context.Context, language string) ([]lexicon.Key, error)
}

// Renderer turns single entries into HTML fragments.
type Renderer interface {
	RenderMeaning(w lexicon.Word, style lexicon.Style) (template.HTML, error)
	RenderDefinition(d lexicon.Definition, key string, style lexicon.Style) (template.HTML, error)
}

// PageExecutor renders a named page template.
type PageExecutor interface {
	Execute(w io.Writer, name string, data interface{}) error
}
