package lexicon

import "testing"

func TestIsValid_Boundaries(t *testing.T) {
	for s := 1; s <= 6; s++ {
		for e := s; e <= 8; e++ {
			w := Word{Name: "pa", EventStartID: s, EventEndID: EndAt(e)}
			for event := 0; event <= 10; event++ {
				want := event >= s && event < e
				if got := IsValid(w, event); got != want {
					t.Errorf("IsValid(start=%d, end=%d, event=%d) = %v, want %v", s, e, event, got, want)
				}
			}
		}
	}
}

func TestIsValid_OpenEnded(t *testing.T) {
	for s := 1; s <= 5; s++ {
		w := Word{Name: "pa", EventStartID: s}
		for _, event := range []int{0, s - 1, s, s + 1, 1000} {
			want := event >= s
			if got := IsValid(w, event); got != want {
				t.Errorf("IsValid(start=%d, open, event=%d) = %v, want %v", s, event, got, want)
			}
		}
	}
}

func TestIsValid_Scenario(t *testing.T) {
	closed := Word{Name: "pa", EventStartID: 1, EventEndID: EndAt(5)}
	for _, event := range []int{1, 2, 3, 4} {
		if !IsValid(closed, event) {
			t.Errorf("expected 'pa' to be present at event %d", event)
		}
	}
	if IsValid(closed, 5) {
		t.Error("expected 'pa' to be absent at its end event 5")
	}

	open := Word{Name: "pa", EventStartID: 1}
	if !IsValid(open, 1000) {
		t.Error("expected open-ended 'pa' to be present at event 1000")
	}
}

func TestIsValid_DefinitionUsesSourceWord(t *testing.T) {
	src := &Word{Name: "mama", EventStartID: 2, EventEndID: EndAt(4)}
	d := Definition{Body: "a «mother»", Source: src}

	cases := map[int]bool{1: false, 2: true, 3: true, 4: false}
	for event, want := range cases {
		if got := IsValid(d, event); got != want {
			t.Errorf("IsValid(definition, %d) = %v, want %v", event, got, want)
		}
	}

	orphan := Definition{Body: "no source"}
	if !IsValid(orphan, 0) {
		t.Error("definition without a source word should be valid from event 0")
	}
}

func TestValidDefinitions(t *testing.T) {
	early := &Word{Name: "a", EventStartID: 1, EventEndID: EndAt(3)}
	late := &Word{Name: "b", EventStartID: 3}
	always := &Word{Name: "c", EventStartID: 1}
	defs := []Definition{
		{ID: 1, Source: early},
		{ID: 2, Source: late},
		{ID: 3, Source: always},
		{ID: 4, Source: early},
	}

	got := ValidDefinitions(defs, 2)
	if len(got) != 3 || got[0].ID != 1 || got[1].ID != 3 || got[2].ID != 4 {
		t.Errorf("ValidDefinitions at 2 returned ids %v, want [1 3 4]", ids(got))
	}

	got = ValidDefinitions(defs, 3)
	if len(got) != 2 || got[0].ID != 2 || got[1].ID != 3 {
		t.Errorf("ValidDefinitions at 3 returned ids %v, want [2 3]", ids(got))
	}

	got = ValidDefinitions(nil, 3)
	if got == nil || len(got) != 0 {
		t.Errorf("ValidDefinitions(nil) should return an empty, non-nil slice, got %#v", got)
	}
}

func ids(defs []Definition) []int {
	out := make([]int, len(defs))
	for i, d := range defs {
		out[i] = d.ID
	}
	return out
}
