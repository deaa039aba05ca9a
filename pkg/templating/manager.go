package templating

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/CTAG07/lodexport/pkg/lexicon"
)

const (
	templateExt = ".html"
	partialExt  = ".part.html"
)

//go:embed templates
var embedded embed.FS

// ErrNoTemplate is returned when executing a template name that is not loaded.
var ErrNoTemplate = errors.New("template not found")

// DefaultTemplates returns the templates embedded in the binary.
func DefaultTemplates() fs.FS {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// DefinitionItem is the data passed to english/definition_{style}.part.html.
type DefinitionItem struct {
	// Key is the key word the definition is listed under.
	Key        string
	Definition lexicon.Definition
	// Word is the Loglan word the definition belongs to.
	Word lexicon.Word
}

// TemplateManager is the central controller for the templating engine.
// It manages the template set, configuration and function map, and is
// responsible for loading, parsing, and executing templates in a
// concurrent-safe manner.
// All methods are concurrent-safe.
type TemplateManager struct {
	logger         *slog.Logger
	config         *TemplateConfig
	fsys           fs.FS
	templates      *template.Template
	cleanTemplates *template.Template
	templateNames  []string
	funcMap        template.FuncMap
	mu             sync.RWMutex
}

// NewTemplateManager creates a TemplateManager reading templates from
// config.TemplateDir, or from the embedded defaults when it is empty. It
// performs an initial Refresh to load all templates.
func NewTemplateManager(logger *slog.Logger, config *TemplateConfig) (*TemplateManager, error) {
	fsys := DefaultTemplates()
	if config.TemplateDir != "" {
		info, err := os.Stat(config.TemplateDir)
		if err != nil {
			return nil, fmt.Errorf("template directory: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("template directory %s is not a directory", config.TemplateDir)
		}
		fsys = os.DirFS(config.TemplateDir)
	}
	return NewTemplateManagerFS(logger, config, fsys)
}

// NewTemplateManagerFS creates a TemplateManager reading templates from fsys.
func NewTemplateManagerFS(logger *slog.Logger, config *TemplateConfig, fsys fs.FS) (*TemplateManager, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	defaults := DefaultConfig()
	if config == nil {
		config = &defaults
	}
	tm := &TemplateManager{
		logger: logger,
		config: config,
		fsys:   fsys,
	}
	tm.funcMap = tm.makeFuncMap()

	if err := tm.Refresh(); err != nil {
		return nil, err
	}

	logger.Info("Template manager initialized", "templates", len(tm.templateNames))
	return tm, nil
}

func (tm *TemplateManager) makeFuncMap() template.FuncMap {
	return template.FuncMap{
		// Text (from funcs_text.go)
		"markKeys":     tm.markKeys,
		"highlightKey": tm.highlightKey,
		"usage":        tm.usage,
		"join":         join,

		// Logic (from funcs_logic.go)
		"list": list,

		// Simple (from funcs_simple.go)
		"inc":   inc,
		"isSet": isSet,
	}
}

// SetConfig applies a new configuration to the TemplateManager. Changing
// TemplateDir only takes effect for new managers.
func (tm *TemplateManager) SetConfig(config *TemplateConfig) {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	tm.config = config
}

// GetConfig returns a copy of the current configuration.
func (tm *TemplateManager) GetConfig() TemplateConfig {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return *tm.config
}

// Refresh reloads all templates from the template filesystem. Every *.html
// file is parsed under its relative path; files not ending in .part.html are
// recorded as page templates.
func (tm *TemplateManager) Refresh() error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	tm.logger.Info("Loading template files...")

	root := template.New("").Funcs(tm.funcMap)
	var names []string
	var partials int
	err := fs.WalkDir(tm.fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, templateExt) {
			return nil
		}
		content, err := fs.ReadFile(tm.fsys, path)
		if err != nil {
			return err
		}
		if _, err = root.New(path).Parse(string(content)); err != nil {
			return err
		}
		if strings.HasSuffix(path, partialExt) {
			partials++
		} else {
			names = append(names, path)
		}
		return nil
	})
	if err != nil {
		tm.logger.Error("failed to parse template files", "error", err)
		return fmt.Errorf("failed to load templates: %w", err)
	}

	if len(names) == 0 {
		tm.logger.Warn("No page templates found")
	}

	// Create a clean clone for string executions before anything is executed.
	clean, err := root.Clone()
	if err != nil {
		tm.logger.Error("failed to create a clean clone of templates", "error", err)
		return err
	}

	tm.templates = root
	tm.cleanTemplates = clean
	tm.templateNames = names
	tm.logger.Info("Loaded template and partial files", "pages", len(names), "partials", partials)
	return nil
}

// Execute renders a specific template by name, writing the output to the
// provided io.Writer.
func (tm *TemplateManager) Execute(w io.Writer, name string, data interface{}) error {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	// The unnamed root is not a file and cannot be executed.
	if !strings.HasSuffix(name, templateExt) || tm.templates.Lookup(name) == nil {
		return fmt.Errorf("%w: %q", ErrNoTemplate, name)
	}
	return tm.templates.ExecuteTemplate(w, name, data)
}

// GetTemplateNames returns the names of all loaded templates, partials
// included.
func (tm *TemplateManager) GetTemplateNames() []string {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	var names []string
	for _, t := range tm.templates.Templates() {
		// The unnamed root template is not a file.
		if strings.HasSuffix(t.Name(), templateExt) {
			names = append(names, t.Name())
		}
	}
	return names
}

// GetPageNames returns the names of the loaded page templates.
func (tm *TemplateManager) GetPageNames() []string {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return append([]string(nil), tm.templateNames...)
}

// ExecuteTemplateString parses and executes a raw template string using the
// manager's function map. The loaded templates are available to it.
func (tm *TemplateManager) ExecuteTemplateString(w io.Writer, content string, data interface{}) error {
	tm.mu.RLock()
	defer tm.mu.RUnlock()

	// Clone the clean, unexecuted template set to avoid race conditions and execution state issues.
	tempSet, err := tm.cleanTemplates.Clone()
	if err != nil {
		return fmt.Errorf("failed to clone clean templates for string execution: %w", err)
	}

	t, err := tempSet.Parse(content)
	if err != nil {
		return fmt.Errorf("failed to parse string template: %w", err)
	}

	return t.Execute(w, data)
}

// RenderMeaning renders one Loglan word with loglan/meaning_{style}.part.html.
func (tm *TemplateManager) RenderMeaning(w lexicon.Word, style lexicon.Style) (template.HTML, error) {
	return tm.renderPartial(fmt.Sprintf("loglan/meaning_%s%s", style, partialExt), w)
}

// RenderDefinition renders one definition listed under key with
// english/definition_{style}.part.html. A definition without a source word
// is rendered with an empty Word.
func (tm *TemplateManager) RenderDefinition(d lexicon.Definition, key string, style lexicon.Style) (template.HTML, error) {
	item := DefinitionItem{Key: key, Definition: d}
	if d.Source != nil {
		item.Word = *d.Source
	}
	return tm.renderPartial(fmt.Sprintf("english/definition_%s%s", style, partialExt), item)
}

func (tm *TemplateManager) renderPartial(name string, data interface{}) (template.HTML, error) {
	var buf bytes.Buffer
	if err := tm.Execute(&buf, name, data); err != nil {
		return "", err
	}
	return template.HTML(strings.TrimSpace(buf.String())), nil
}
