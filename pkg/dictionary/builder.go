package dictionary

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/CTAG07/lodexport/pkg/group"
	"github.com/CTAG07/lodexport/pkg/lexicon"
)

// generatedLayout is the date format of Technical.Generated.
const generatedLayout = "02.01.2006"

// Builder assembles dictionary views from a Corpus.
type Builder struct {
	corpus   Corpus
	renderer Renderer
	logger   *slog.Logger
}

// NewBuilder creates a Builder reading from corpus and rendering entries
// with renderer.
func NewBuilder(corpus Corpus, renderer Renderer) *Builder {
	return &Builder{
		corpus:   corpus,
		renderer: renderer,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// SetLogger sets the logger for the Builder. By default, all logs are discarded.
func (b *Builder) SetLogger(logger *slog.Logger) {
	if logger != nil {
		b.logger = logger
	}
}

// LatestEvent returns the most recent lexical event.
func (b *Builder) LatestEvent(ctx context.Context) (lexicon.Event, error) {
	return b.corpus.LatestEvent(ctx)
}

// EventByID returns the lexical event with the given ID.
func (b *Builder) EventByID(ctx context.Context, id int) (lexicon.Event, error) {
	return b.corpus.EventByID(ctx, id)
}

// CurrentRelease returns the label of the current database release.
func (b *Builder) CurrentRelease(ctx context.Context) (string, error) {
	return b.corpus.CurrentRelease(ctx)
}

// TechnicalInfo returns the metadata block for pages built for event at now.
func (b *Builder) TechnicalInfo(ctx context.Context, event lexicon.Event, now time.Time) (Technical, error) {
	release, err := b.corpus.CurrentRelease(ctx)
	if err != nil {
		return Technical{}, fmt.Errorf("could not get current release: %w", err)
	}
	return Technical{
		Generated: now.Format(generatedLayout),
		Database:  release,
		LexEvent:  event.Annotation,
	}, nil
}

// Loglan builds the Loglan→English view for event: headwords grouped by
// their first letter, each with one rendered meaning per word of that name.
// Only words in force at the event are included, so a name with no such
// word and a letter with no such name are absent.
func (b *Builder) Loglan(ctx context.Context, event lexicon.Event, style lexicon.Style) (LoglanView, error) {
	b.logger.InfoContext(ctx, "Start Loglan dictionary preparation", "event", event.Name, "style", style)

	words, err := b.corpus.WordsByEvent(ctx, event.ID)
	if err != nil {
		return nil, fmt.Errorf("could not get words for event %d: %w", event.ID, err)
	}
	valid := words[:0:0]
	for _, w := range words {
		if lexicon.IsValid(w, event.ID) {
			valid = append(valid, w)
		}
	}
	b.logger.DebugContext(ctx, "Grouping words by name and letter", "words", len(valid))

	letters := group.TwoLevel(valid, func(w lexicon.Word) string { return w.Name }, group.Letter)

	view := make(LoglanView, 0, len(letters))
	for _, letter := range letters {
		b.logger.DebugContext(ctx, "Current letter", "letter", letter.Key)
		entry := LoglanLetter{
			Letter: letter.Key,
			Names:  make([]LoglanName, 0, len(letter.Items)),
		}
		for _, name := range letter.Items {
			meanings := make([]template.HTML, 0, len(name.Items))
			for _, w := range name.Items {
				meaning, err := b.renderer.RenderMeaning(w, style)
				if err != nil {
					return nil, fmt.Errorf("could not render word %q (id %d): %w", w.Name, w.ID, err)
				}
				meanings = append(meanings, meaning)
			}
			entry.Names = append(entry.Names, LoglanName{Name: name.Key, Meanings: meanings})
		}
		view = append(view, entry)
	}

	b.logger.InfoContext(ctx, "End Loglan dictionary preparation", "letters", len(view), "names", view.Count())
	return view, nil
}

// English builds the key→Loglan view for event in the given key language.
//
// Keys sharing a word form one entry, and only the first key row of such a
// run is consulted: definitions attached only to later duplicate rows are
// not shown. The representative's definitions are filtered by validity at
// the event; a key with no valid definition is kept with an empty list.
func (b *Builder) English(ctx context.Context, event lexicon.Event, style lexicon.Style, language string) (EnglishView, error) {
	label := strings.ToUpper(language)
	b.logger.InfoContext(ctx, "Start key dictionary preparation", "language", label, "event", event.Name, "style", style)

	keys, err := b.corpus.KeysByLanguage(ctx, language)
	if err != nil {
		return nil, fmt.Errorf("could not get %s keys: %w", language, err)
	}
	b.logger.DebugContext(ctx, "Grouping keys by word and letter", "keys", len(keys))

	letters := group.TwoLevel(keys, func(k lexicon.Key) string { return k.Word }, group.Letter)

	view := make(EnglishView, 0, len(letters))
	for _, letter := range letters {
		entry := EnglishLetter{
			Letter: letter.Key,
			Keys:   make([]EnglishKey, 0, len(letter.Items)),
		}
		for _, word := range letter.Items {
			representative := word.Items[0]
			valid := lexicon.ValidDefinitions(representative.Definitions, event.ID)
			rendered := make([]template.HTML, 0, len(valid))
			for _, d := range valid {
				html, err := b.renderer.RenderDefinition(d, word.Key, style)
				if err != nil {
					return nil, fmt.Errorf("could not render definition %d for key %q: %w", d.ID, word.Key, err)
				}
				rendered = append(rendered, html)
			}
			entry.Keys = append(entry.Keys, EnglishKey{Word: word.Key, Definitions: rendered})
		}
		view = append(view, entry)
	}

	b.logger.InfoContext(ctx, "End key dictionary preparation", "language", label, "letters", len(view), "keys", view.Count())
	return view, nil
}
