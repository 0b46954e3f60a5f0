// Package input turns keyboard state into camera target changes.
package input

// Key is a logical control key, independent of the keyboard layout.
type Key int

const (
	KeyNone Key = iota
	KeyRotateXPos
	KeyRotateXNeg
	KeyRotateYPos
	KeyRotateYNeg
	KeyRotateZPos
	KeyRotateZNeg
	KeyZoomIn
	KeyZoomOut
	KeyPanRight
	KeyPanLeft
	KeyPanUp
	KeyPanDown
	KeyReset
	KeyExit
	KeyScreenshot

	keyCount
)

// keyNames holds the conventional names used in the usage text and by the
// snapshot tool's -hold flag.
var keyNames = map[Key]string{
	KeyRotateXPos: "w",
	KeyRotateXNeg: "s",
	KeyRotateYPos: "d",
	KeyRotateYNeg: "a",
	KeyRotateZPos: "e",
	KeyRotateZNeg: "q",
	KeyZoomIn:     "Up",
	KeyZoomOut:    "Down",
	KeyPanRight:   "Right",
	KeyPanLeft:    "Left",
	KeyPanUp:      "Page_Up",
	KeyPanDown:    "Page_Down",
	KeyReset:      "r",
	KeyExit:       "Escape",
	KeyScreenshot: "F12",
}

var keysByName = func() map[string]Key {
	m := make(map[string]Key, len(keyNames))
	for k, n := range keyNames {
		m[n] = k
	}
	return m
}()

// String returns the key's conventional name.
func (k Key) String() string {
	if n, ok := keyNames[k]; ok {
		return n
	}
	return "none"
}

// KeyFromName looks a key up by name ("w", "Up", "Page_Up", ...).
// Unknown names return KeyNone.
func KeyFromName(name string) Key {
	return keysByName[name]
}

// IsSignal reports whether k is a discrete action rather than a held control.
func (k Key) IsSignal() bool {
	switch k {
	case KeyReset, KeyExit, KeyScreenshot:
		return true
	}
	return false
}
