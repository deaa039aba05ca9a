/*
Package dictionary assembles the letter-indexed Loglan→English and
English→Loglan views of the corpus for one lexical event, and writes them out
as HTML documents.

A run pins one lexical event and one timestamp (a Snapshot). The Builder
fetches the entries for that event from a Corpus, groups them into
letter → headword → entries with package group, and renders each entry
through a Renderer. The Generator hands the assembled view to a
PageExecutor and writes the result atomically under a deterministic file
name.
*/
package dictionary
