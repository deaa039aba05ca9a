/*
Package lexicon holds the time-versioned data model of the Loglan dictionary:
lexical events, words, definitions, keys and release settings, together with
the validity rules that decide whether a word or definition is in force at a
given lexical event.

A word is introduced at its start event and stays in force until its end
event. The start boundary is inclusive and the end boundary is exclusive, so
a word retired at event N is no longer shown in the snapshot of event N.
*/
package lexicon
