package templating

import (
	"fmt"
	"html/template"
	"strings"
)

const (
	keyOpen  = "«"
	keyClose = "»"
)

// The functions below are called while a template executes, so tm.mu is
// already held for reading.

// markKeys escapes body and wraps every «marked» key in the configured key
// tag. The guillemets themselves are dropped.
func (tm *TemplateManager) markKeys(body string) template.HTML {
	tag := tm.config.KeyTag
	return replaceKeys(body, func(key string) string {
		return wrap(tag, "", key)
	})
}

// highlightKey is markKeys for the English side: the marked key equal to key
// (ignoring case) also gets the highlight class.
func (tm *TemplateManager) highlightKey(body, key string) template.HTML {
	tag, class := tm.config.KeyTag, tm.config.HighlightClass
	return replaceKeys(body, func(marked string) string {
		if strings.EqualFold(marked, template.HTMLEscapeString(key)) {
			return wrap(tag, class, marked)
		}
		return wrap(tag, "", marked)
	})
}

// usage substitutes name for the placeholder in a usage pattern.
func (tm *TemplateManager) usage(pattern, name string) string {
	if tm.config.UsagePlaceholder == "" {
		return pattern
	}
	return strings.ReplaceAll(pattern, tm.config.UsagePlaceholder, name)
}

// join formats parts and joins the non-empty ones with sep.
func join(sep string, parts ...any) string {
	var out []string
	for _, p := range parts {
		if s := fmt.Sprint(p); s != "" && s != "<nil>" {
			out = append(out, s)
		}
	}
	return strings.Join(out, sep)
}

// replaceKeys escapes body and passes the escaped text of every «marked» key
// to mark. An unterminated marker is kept as text.
func replaceKeys(body string, mark func(string) string) template.HTML {
	escaped := template.HTMLEscapeString(body)
	var b strings.Builder
	for {
		start := strings.Index(escaped, keyOpen)
		if start < 0 {
			break
		}
		end := strings.Index(escaped[start+len(keyOpen):], keyClose)
		if end < 0 {
			break
		}
		end += start + len(keyOpen)
		b.WriteString(escaped[:start])
		b.WriteString(mark(escaped[start+len(keyOpen) : end]))
		escaped = escaped[end+len(keyClose):]
	}
	b.WriteString(escaped)
	return template.HTML(b.String())
}

func wrap(tag, class, text string) string {
	if tag == "" {
		return text
	}
	if class == "" {
		return "<" + tag + ">" + text + "</" + tag + ">"
	}
	return "<" + tag + ` class="` + template.HTMLEscapeString(class) + `">` + text + "</" + tag + ">"
}
