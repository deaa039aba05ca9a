package lexicon

// Range is anything carrying a lexical event range.
type Range interface {
	// StartEvent returns the ID of the event that introduced the entry.
	StartEvent() int
	// EndEvent returns the ID of the event that retired the entry, and false
	// when the entry is still in force.
	EndEvent() (int, bool)
}

// StartEvent implements Range.
func (w Word) StartEvent() int { return w.EventStartID }

// EndEvent implements Range.
func (w Word) EndEvent() (int, bool) {
	if w.EventEndID == nil {
		return 0, false
	}
	return *w.EventEndID, true
}

// StartEvent implements Range using the source word's range.
// A definition without a source word starts at event 0.
func (d Definition) StartEvent() int {
	if d.Source == nil {
		return 0
	}
	return d.Source.StartEvent()
}

// EndEvent implements Range using the source word's range.
func (d Definition) EndEvent() (int, bool) {
	if d.Source == nil {
		return 0, false
	}
	return d.Source.EndEvent()
}

// IsValid reports whether r is in force at the event with the given ID.
// The start event is inclusive and the end event is exclusive.
func IsValid(r Range, eventID int) bool {
	if r.StartEvent() > eventID {
		return false
	}
	end, ok := r.EndEvent()
	if !ok {
		return true
	}
	return end > eventID
}

// ValidDefinitions returns the definitions in force at eventID, keeping
// their order.
func ValidDefinitions(defs []Definition, eventID int) []Definition {
	valid := make([]Definition, 0, len(defs))
	for _, d := range defs {
		if IsValid(d, eventID) {
			valid = append(valid, d)
		}
	}
	return valid
}

// EndAt is a convenience for building an end event ID pointer.
func EndAt(id int) *int {
	return &id
}
