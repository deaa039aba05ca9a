/*
Package templating renders dictionary pages and entries with html/template.

Templates are loaded from a directory or from the defaults embedded in the
binary, and each is named by its slash-separated path relative to the
template root, e.g. "loglan/words_normal.html". Files ending in ".part.html"
are partials: they are never rendered as pages, but can be included from
pages with {{template "common/technical.part.html" .Technical}}.

Single entries are rendered through style-specific partials:

	loglan/meaning_{style}.part.html      one Loglan word (lexicon.Word)
	english/definition_{style}.part.html  one definition under a key (DefinitionItem)

Besides the html/template builtins, templates can use markKeys, highlightKey,
usage, join, list, inc and isSet.
*/
package templating
