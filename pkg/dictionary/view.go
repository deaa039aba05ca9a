package dictionary

import "html/template"

// LoglanView is the Loglan→English dictionary: letters in corpus order, each
// with its headwords in corpus order.
type LoglanView []LoglanLetter

// LoglanLetter holds the headwords starting with one letter.
type LoglanLetter struct {
	Letter string
	Names  []LoglanName
}

// LoglanName is a headword with the rendered meanings of every word
// spelled that way.
type LoglanName struct {
	Name     string
	Meanings []template.HTML
}

// EnglishView is the English→Loglan dictionary.
type EnglishView []EnglishLetter

// EnglishLetter holds the keys starting with one letter.
type EnglishLetter struct {
	Letter string
	Keys   []EnglishKey
}

// EnglishKey is a key word with its rendered definitions. Definitions is
// empty, not nil, when no definition is in force.
type EnglishKey struct {
	Word        string
	Definitions []template.HTML
}

// Technical is the metadata block printed on every page.
type Technical struct {
	Generated string
	Database  string
	LexEvent  string
}

// Letter returns the first group for letter, if any.
func (v LoglanView) Letter(letter string) (LoglanLetter, bool) {
	for _, l := range v {
		if l.Letter == letter {
			return l, true
		}
	}
	return LoglanLetter{}, false
}

// Letter returns the first group for letter, if any.
func (v EnglishView) Letter(letter string) (EnglishLetter, bool) {
	for _, l := range v {
		if l.Letter == letter {
			return l, true
		}
	}
	return EnglishLetter{}, false
}

// Key returns the entry for word within the letter group, if any.
func (l EnglishLetter) Key(word string) (EnglishKey, bool) {
	for _, k := range l.Keys {
		if k.Word == word {
			return k, true
		}
	}
	return EnglishKey{}, false
}

// Count returns the number of headwords in the view.
func (v LoglanView) Count() int {
	var n int
	for _, l := range v {
		n += len(l.Names)
	}
	return n
}

// Count returns the number of keys in the view.
func (v EnglishView) Count() int {
	var n int
	for _, l := range v {
		n += len(l.Keys)
	}
	return n
}
