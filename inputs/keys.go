package inputs

// Key identifies one of the fixed keys the scene reacts to. Backends map their
// own key codes onto this set.
type Key int

const (
	KeyForward Key = iota
	KeyBackward
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeySpeedUp
	KeySpeedDown
	KeyEscape

	numKeys
)

var keyNames = [numKeys]string{
	KeyForward:   "forward",
	KeyBackward:  "backward",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyUp:        "up",
	KeyDown:      "down",
	KeySpeedUp:   "speed-up",
	KeySpeedDown: "speed-down",
	KeyEscape:    "escape",
}

func (k Key) String() string {
	if k < 0 || k >= numKeys {
		return "unknown"
	}
	return keyNames[k]
}

// Keys lists every key in the set, in declaration order.
func Keys() []Key {
	keys := make([]Key, numKeys)
	for i := range keys {
		keys[i] = Key(i)
	}
	return keys
}

// KeyState is a snapshot of which keys are held down.
type KeyState [numKeys]bool

// Pressed reports whether key is held. Keys outside the set are never held.
func (s KeyState) Pressed(key Key) bool {
	if key < 0 || key >= numKeys {
		return false
	}
	return s[key]
}

// Set records the held state of key.
func (s *KeyState) Set(key Key, down bool) {
	if key < 0 || key >= numKeys {
		return
	}
	s[key] = down
}

// Press returns a KeyState with the given keys held.
func Press(keys ...Key) KeyState {
	var s KeyState
	for _, k := range keys {
		s.Set(k, true)
	}
	return s
}
