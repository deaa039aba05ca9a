/*
Package store provides the SQLite-backed corpus of the Loglan dictionary.

It owns the schema for lexical events, words, definitions, lookup keys and
release settings, and answers the read-only queries the dictionary builder
needs: the latest event, the current release, the words in force at an
event, and the keys of a language with their definitions. Write methods and
a JSON corpus import exist so a database can be populated by the exporter
itself.

The package works with any database/sql SQLite driver; the exporter binary
uses modernc.org/sqlite by default and github.com/mattn/go-sqlite3 when built
with the cgo_sqlite tag.
*/
package store
