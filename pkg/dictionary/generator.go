package dictionary

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/natefinch/atomic"

	"github.com/CTAG07/lodexport/pkg/lexicon"
)

// timestampLayout is the YYMMDDHHmm stamp shared by the files of one run.
const timestampLayout = "0601021504"

// ErrUnknownDirection is returned for unsupported dictionary directions.
var ErrUnknownDirection = errors.New("unknown dictionary direction")

// Direction selects which side of the dictionary a document is built from.
type Direction string

const (
	// DirectionLoglan is the Loglan→English dictionary.
	DirectionLoglan Direction = "loglan"
	// DirectionEnglish is the English→Loglan dictionary.
	DirectionEnglish Direction = "english"
)

// ParseDirection converts s into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case DirectionLoglan:
		return DirectionLoglan, nil
	case DirectionEnglish:
		return DirectionEnglish, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDirection, s)
}

// Prefix returns the file name prefix of the direction.
func (d Direction) Prefix() string {
	if d == DirectionLoglan {
		return "L-to-E"
	}
	return "E-to-L"
}

// TemplateName returns the page template used for a direction and style.
func TemplateName(d Direction, style lexicon.Style) string {
	return fmt.Sprintf("%s/words_%s.html", d, style)
}

// Timestamp formats t as the YYMMDDHHmm stamp used in file names.
func Timestamp(t time.Time) string {
	return t.Format(timestampLayout)
}

// FileName returns the output path of a document. exportDir is prepended
// verbatim, so it must end with a separator when it names a directory.
func FileName(exportDir string, d Direction, release, timestamp, suffix string, style lexicon.Style) string {
	return fmt.Sprintf("%s%s-%s-%s_%s_%s.html", exportDir, d.Prefix(), release, timestamp, suffix, style.Initial())
}

// Page is the data handed to a page template.
type Page struct {
	Dictionary interface{}
	Technical  Technical
	Event      lexicon.Event
	Style      lexicon.Style
	Direction  Direction
	Language   string
}

// Snapshot pins what every document of one run shares: the lexical event,
// the technical block and the file timestamp.
type Snapshot struct {
	Event     lexicon.Event
	Technical Technical
	Timestamp string
}

// Job is one document to generate.
type Job struct {
	Direction Direction
	Style     lexicon.Style
}

// Options configures a Generator.
type Options struct {
	// ExportDir is prepended to every output file name.
	ExportDir string
	// Style is used for jobs that leave Style empty.
	Style lexicon.Style
	// Language is the key language of the English-side dictionary.
	Language string
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		ExportDir: "",
		Style:     lexicon.StyleUltra,
		Language:  "en",
	}
}

// DefaultJobs are the documents of a standard release: both directions in
// the normal style.
func DefaultJobs() []Job {
	return []Job{
		{Direction: DirectionLoglan, Style: lexicon.StyleNormal},
		{Direction: DirectionEnglish, Style: lexicon.StyleNormal},
	}
}

// Generator renders dictionary documents and writes them to disk.
type Generator struct {
	builder *Builder
	pages   PageExecutor
	opts    Options
	now     func() time.Time
	logger  *slog.Logger
}

// NewGenerator creates a Generator. Empty Style and Language options fall
// back to DefaultOptions.
func NewGenerator(builder *Builder, pages PageExecutor, opts Options) *Generator {
	defaults := DefaultOptions()
	if opts.Style == "" {
		opts.Style = defaults.Style
	}
	if opts.Language == "" {
		opts.Language = defaults.Language
	}
	return &Generator{
		builder: builder,
		pages:   pages,
		opts:    opts,
		now:     time.Now,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// SetLogger sets the logger for the Generator. By default, all logs are discarded.
func (g *Generator) SetLogger(logger *slog.Logger) {
	if logger != nil {
		g.logger = logger
	}
}

// SetClock replaces the time source used for snapshots.
func (g *Generator) SetClock(now func() time.Time) {
	if now != nil {
		g.now = now
	}
}

// Snapshot resolves the event with the given ID, or the latest event when
// eventID is 0, and stamps it with the current time.
func (g *Generator) Snapshot(ctx context.Context, eventID int) (Snapshot, error) {
	var event lexicon.Event
	var err error
	if eventID == 0 {
		event, err = g.builder.LatestEvent(ctx)
	} else {
		event, err = g.builder.EventByID(ctx, eventID)
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("could not resolve lexical event: %w", err)
	}

	now := g.now()
	tech, err := g.builder.TechnicalInfo(ctx, event, now)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Event: event, Technical: tech, Timestamp: Timestamp(now)}, nil
}

// Render assembles and renders one document into w.
func (g *Generator) Render(ctx context.Context, w io.Writer, snap Snapshot, job Job) error {
	style := job.Style
	if style == "" {
		style = g.opts.Style
	}

	var data interface{}
	var err error
	switch job.Direction {
	case DirectionLoglan:
		data, err = g.builder.Loglan(ctx, snap.Event, style)
	case DirectionEnglish:
		data, err = g.builder.English(ctx, snap.Event, style, g.opts.Language)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDirection, job.Direction)
	}
	if err != nil {
		return err
	}

	page := Page{
		Dictionary: data,
		Technical:  snap.Technical,
		Event:      snap.Event,
		Style:      style,
		Direction:  job.Direction,
		Language:   g.opts.Language,
	}
	name := TemplateName(job.Direction, style)
	if err = g.pages.Execute(w, name, page); err != nil {
		return fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	return nil
}

// GenerateFile renders one document and writes it atomically, returning the
// path written. Nothing is written when rendering fails.
func (g *Generator) GenerateFile(ctx context.Context, snap Snapshot, job Job) (string, error) {
	style := job.Style
	if style == "" {
		style = g.opts.Style
	}

	var buf bytes.Buffer
	if err := g.Render(ctx, &buf, snap, Job{Direction: job.Direction, Style: style}); err != nil {
		return "", err
	}

	path := FileName(g.opts.ExportDir, job.Direction, snap.Technical.Database, snap.Timestamp, snap.Event.Suffix, style)
	size := buf.Len()
	if err := atomic.WriteFile(path, &buf); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	g.logger.InfoContext(ctx, "Dictionary written", "path", path, "bytes", size)
	return path, nil
}

// GenerateAll generates every job against the same snapshot. Documents fail
// independently: a failing job does not stop the others, and the errors of
// all failed jobs are joined.
func (g *Generator) GenerateAll(ctx context.Context, snap Snapshot, jobs []Job) ([]string, error) {
	g.logger.InfoContext(ctx, "START DICTIONARY HTML CREATION",
		"event", snap.Event.Name,
		"release", snap.Technical.Database,
		"timestamp", snap.Timestamp,
	)
	start := time.Now()

	var paths []string
	var errs []error
	for _, job := range jobs {
		path, err := g.GenerateFile(ctx, snap, job)
		if err != nil {
			g.logger.ErrorContext(ctx, "Failed to generate dictionary", "direction", job.Direction, "style", job.Style, "error", err)
			errs = append(errs, fmt.Errorf("%s %s: %w", job.Direction, job.Style, err))
			continue
		}
		paths = append(paths, path)
	}

	g.logger.InfoContext(ctx, "Dictionary HTML creation finished",
		"files", len(paths),
		"failed", len(errs),
		"elapsed", time.Since(start),
	)
	return paths, errors.Join(errs...)
}
