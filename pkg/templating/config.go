package templating

// TemplateConfig holds all configuration options for the templating engine.
type TemplateConfig struct {
	// TemplateDir is the directory the templates are loaded from. When empty,
	// the templates embedded in the binary are used.
	TemplateDir string `json:"template_dir" env:"TEMPLATE_DIR"`

	// UsagePlaceholder is the token in a usage pattern that stands for the
	// headword, e.g. "%" in "% ma".
	UsagePlaceholder string `json:"usage_placeholder"`

	// KeyTag is the HTML element that wraps «marked» keys in definition
	// bodies.
	KeyTag string `json:"key_tag"`

	// HighlightClass is the class added to the marked key matching the key
	// a definition is listed under on the English side.
	HighlightClass string `json:"highlight_class"`
}

// DefaultConfig returns a TemplateConfig using the embedded templates.
func DefaultConfig() TemplateConfig {
	return TemplateConfig{
		TemplateDir:      "",
		UsagePlaceholder: "%",
		KeyTag:           "k",
		HighlightClass:   "key",
	}
}
