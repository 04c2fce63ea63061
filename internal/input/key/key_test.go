package key

import "testing"

func TestKeyString(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{KeyNone, "None"},
		{KeyEscape, "Escape"},
		{KeyDown, "Down"},
		{KeyPageUp, "PageUp"},
		{KeyF1, "F1"},
		{KeyF12, "F12"},
		{Key(999), "Key(999)"},
	}

	for _, tt := range tests {
		if got := tt.key.String(); got != tt.want {
			t.Errorf("Key(%d).String() = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestEveryKeyIsNamed(t *testing.T) {
	for k := KeyNone; k <= KeyF12; k++ {
		if k.String() == "" {
			t.Errorf("Key(%d) has no name", k)
		}
	}
}
