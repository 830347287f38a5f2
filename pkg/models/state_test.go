package models

import "testing"

func TestTerminal(t *testing.T) {
	for _, s := range []State{StatePending, StateFetching} {
		if s.Terminal() {
			t.Errorf("%s.Terminal() = true, want false", s)
		}
	}
	for _, s := range []State{StateSuccess, StateFailed, StateRejected, StateSkipped} {
		if !s.Terminal() {
			t.Errorf("%s.Terminal() = false, want true", s)
		}
	}
}

func TestParseStateRoundTrip(t *testing.T) {
	for _, s := range []State{StateSuccess, StateFailed, StateRejected} {
		got, err := ParseState(s.String())
		if err != nil {
			t.Errorf("ParseState(%q) error = %v", s.String(), err)
		}
		if got != s {
			t.Errorf("ParseState(%q) = %v, want %v", s.String(), got, s)
		}
	}

	if _, err := ParseState("garbage"); err == nil {
		t.Error("ParseState of an unknown name did not error")
	}
}

func TestKeyDistinguishesMediaType(t *testing.T) {
	a := NewResource("/mdr/sdtm", "application/json")
	b := NewResource("/mdr/sdtm", "application/xml")

	if a.Key() == b.Key() {
		t.Error("same URL under two media types must have distinct keys")
	}
	if a.Hash() == b.Hash() {
		t.Error("same URL under two media types must have distinct hashes")
	}
}
