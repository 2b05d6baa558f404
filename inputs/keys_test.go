package inputs

import "testing"

func TestKeyStatePress(t *testing.T) {
	s := Press(KeyForward, KeySpeedUp)
	for _, k := range Keys() {
		want := k == KeyForward || k == KeySpeedUp
		if got := s.Pressed(k); got != want {
			t.Errorf("Pressed(%s) = %v, want %v", k, got, want)
		}
	}
}

func TestKeyStateOutOfRange(t *testing.T) {
	var s KeyState
	s.Set(Key(-1), true)
	s.Set(numKeys, true)
	if s != (KeyState{}) {
		t.Fatalf("out of range Set modified state: %v", s)
	}
	if s.Pressed(numKeys + 3) {
		t.Fatal("out of range key reported as pressed")
	}
	if got := Key(99).String(); got != "unknown" {
		t.Fatalf("String() = %q, want unknown", got)
	}
}

func TestKeysCoversNames(t *testing.T) {
	for _, k := range Keys() {
		if k.String() == "" || k.String() == "unknown" {
			t.Errorf("key %d has no name", int(k))
		}
	}
}
