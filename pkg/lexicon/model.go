package lexicon

import "time"

// Event is a lexical event: a dated epoch of the dictionary's vocabulary.
// Events are ordered by ID, and the latest event is the one with the highest ID.
type Event struct {
	ID         int       `json:"id"`
	Date       time.Time `json:"date"`
	Name       string    `json:"name"`
	Definition string    `json:"definition"`
	Annotation string    `json:"annotation"`
	Suffix     string    `json:"suffix"`
}

// Word is a Loglan dictionary entry. Several words may share a Name
// (homonyms); the dictionary groups them under one headword.
type Word struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	TypeGroup string `json:"type_group"`
	Origin    string `json:"origin"`
	OriginX   string `json:"origin_x"`
	Affixes   string `json:"affixes"`
	Authors   string `json:"authors"`
	Year      string `json:"year"`
	Rank      string `json:"rank"`
	Match     string `json:"match"`
	Notes     string `json:"notes"`

	EventStartID int  `json:"event_start_id"`
	EventEndID   *int `json:"event_end_id,omitempty"`

	Definitions []Definition `json:"definitions,omitempty"`
}

// Definition is one meaning of a Word. Its body marks English keys with
// guillemets, e.g. "a «mother» of ...".
type Definition struct {
	ID          int    `json:"id"`
	WordID      int    `json:"word_id"`
	Position    int    `json:"position"`
	Body        string `json:"body"`
	Usage       string `json:"usage"`
	GrammarCode string `json:"grammar_code"`
	SlotsNote   string `json:"slots_note"`
	CaseTags    string `json:"case_tags"`
	Language    string `json:"language"`

	// Source is the word the definition belongs to. It is populated by the
	// store when definitions are reached through a Key.
	Source *Word `json:"-"`
}

// Key is a lookup term in another language pointing at Loglan definitions.
type Key struct {
	ID          int          `json:"id"`
	Word        string       `json:"word"`
	Language    string       `json:"language"`
	Definitions []Definition `json:"definitions,omitempty"`
}

// Setting is a database release record. The current release is the one with
// the highest ID.
type Setting struct {
	ID         int       `json:"id"`
	Date       time.Time `json:"date"`
	DBVersion  int       `json:"db_version"`
	LastWordID int       `json:"last_word_id"`
	DBRelease  string    `json:"db_release"`
}
