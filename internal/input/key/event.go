package key

import (
	"unicode"

	"github.com/dshills/jot/internal/renderer/backend"
)

// Kind tags the variant held by an Event.
type Kind uint8

const (
	KindOther Kind = iota
	KindChar
	KindNewline
	KindBackspace
	KindCtrl
	KindNamed
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindChar:
		return "Char"
	case KindNewline:
		return "Newline"
	case KindBackspace:
		return "Backspace"
	case KindCtrl:
		return "Ctrl"
	case KindNamed:
		return "Named"
	default:
		return "Other"
	}
}

// Event represents a single decoded key press. Events are values and are
// never mutated after Decode returns them.
type Event struct {
	Kind Kind

	// Rune is the character for KindChar and the lower-case letter for KindCtrl.
	Rune rune

	// Name is the key for KindNamed.
	Name Key
}

// Char creates a character event.
func Char(r rune) Event {
	return Event{Kind: KindChar, Rune: r}
}

// Newline creates an Enter event.
func Newline() Event {
	return Event{Kind: KindNewline}
}

// Backspace creates a Backspace event.
func Backspace() Event {
	return Event{Kind: KindBackspace}
}

// Ctrl creates a Ctrl+letter event. Upper-case letters are folded.
func Ctrl(r rune) Event {
	return Event{Kind: KindCtrl, Rune: unicode.ToLower(r)}
}

// Named creates a named-key event.
func Named(k Key) Event {
	return Event{Kind: KindNamed, Name: k}
}

// Other creates an event for input the editor does not act on.
func Other() Event {
	return Event{Kind: KindOther}
}

// IsCtrl reports whether e is Ctrl held with letter r.
func (e Event) IsCtrl(r rune) bool {
	return e.Kind == KindCtrl && e.Rune == unicode.ToLower(r)
}

// IsNamed reports whether e is the named key k.
func (e Event) IsNamed(k Key) bool {
	return e.Kind == KindNamed && e.Name == k
}

// String returns a canonical string representation.
// Examples: "a", "Space", "Enter", "BS", "C-s", "Down".
func (e Event) String() string {
	switch e.Kind {
	case KindChar:
		switch e.Rune {
		case ' ':
			return "Space"
		case '\t':
			return "Tab"
		}
		return string(e.Rune)
	case KindNewline:
		return "Enter"
	case KindBackspace:
		return "BS"
	case KindCtrl:
		return "C-" + string(e.Rune)
	case KindNamed:
		return e.Name.String()
	default:
		return "Other"
	}
}

// Decode converts a backend event into a key event. Events that are not
// key presses, and key presses the editor has no variant for, decode to
// KindOther so the caller can still redraw on them.
func Decode(ev backend.Event) Event {
	if ev.Type != backend.EventKey {
		return Other()
	}

	switch ev.Key {
	case backend.KeyRune:
		if ev.Mod.Has(backend.ModAlt) || ev.Mod.Has(backend.ModMeta) {
			return Other()
		}
		switch {
		case ev.Rune == '\n' || ev.Rune == '\r':
			return Newline()
		case ev.Rune == '\t' || unicode.IsPrint(ev.Rune):
			return Char(ev.Rune)
		default:
			return Other()
		}
	case backend.KeyCtrl:
		if ev.Rune == 0 {
			return Other()
		}
		return Ctrl(ev.Rune)
	case backend.KeyEnter:
		return Newline()
	case backend.KeyBackspace:
		return Backspace()
	case backend.KeyTab:
		// Tab inserts a literal tab character.
		return Char('\t')
	}

	if k, ok := namedKeys[ev.Key]; ok {
		return Named(k)
	}
	return Other()
}

// namedKeys maps backend keys onto named keys.
var namedKeys = map[backend.Key]Key{
	backend.KeyEscape:   KeyEscape,
	backend.KeyDelete:   KeyDelete,
	backend.KeyInsert:   KeyInsert,
	backend.KeyHome:     KeyHome,
	backend.KeyEnd:      KeyEnd,
	backend.KeyPageUp:   KeyPageUp,
	backend.KeyPageDown: KeyPageDown,
	backend.KeyUp:       KeyUp,
	backend.KeyDown:     KeyDown,
	backend.KeyLeft:     KeyLeft,
	backend.KeyRight:    KeyRight,
	backend.KeyF1:       KeyF1,
	backend.KeyF2:       KeyF2,
	backend.KeyF3:       KeyF3,
	backend.KeyF4:       KeyF4,
	backend.KeyF5:       KeyF5,
	backend.KeyF6:       KeyF6,
	backend.KeyF7:       KeyF7,
	backend.KeyF8:       KeyF8,
	backend.KeyF9:       KeyF9,
	backend.KeyF10:      KeyF10,
	backend.KeyF11:      KeyF11,
	backend.KeyF12:      KeyF12,
}
