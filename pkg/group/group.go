// Package group implements the order-preserving, run-length grouping used to
// build letter-indexed dictionary pages.
//
// Grouping is contiguous: items are expected to arrive already ordered by
// their key, and each run of adjacent items with an equal key becomes one
// group. Equal keys separated by other keys form separate groups; they are
// never merged and never overwrite each other.
package group

import (
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Group is one run of adjacent items sharing a key.
type Group[K comparable, T any] struct {
	Key   K
	Items []T
}

// Runs partitions items into runs of adjacent items with equal keys.
// Item order is preserved both within and across groups.
func Runs[K comparable, T any](items []T, key func(T) K) []Group[K, T] {
	var groups []Group[K, T]
	for _, item := range items {
		k := key(item)
		if n := len(groups); n > 0 && groups[n-1].Key == k {
			groups[n-1].Items = append(groups[n-1].Items, item)
			continue
		}
		groups = append(groups, Group[K, T]{Key: k, Items: []T{item}})
	}
	return groups
}

// TwoLevel groups items by their primary key, then groups the resulting
// primary groups by a secondary key derived from the primary key.
func TwoLevel[S, P comparable, T any](items []T, primary func(T) P, secondary func(P) S) []Group[S, Group[P, T]] {
	return Runs(Runs(items, primary), func(g Group[P, T]) S {
		return secondary(g.Key)
	})
}

// ByLetter groups strings by their Letter.
func ByLetter(keys []string) []Group[string, string] {
	return Runs(keys, Letter)
}

// Keys returns the key of every group, in order.
func Keys[K comparable, T any](groups []Group[K, T]) []K {
	keys := make([]K, len(groups))
	for i, g := range groups {
		keys[i] = g.Key
	}
	return keys
}

// Letter returns the upper-cased first character of s, or "" for an empty
// string. Upper-casing follows Unicode rules, so a single character may map
// to more than one (e.g. "ß" becomes "SS").
func Letter(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return ""
	}
	if r == utf8.RuneError {
		return s[:size]
	}
	return cases.Upper(language.Und).String(string(r))
}
