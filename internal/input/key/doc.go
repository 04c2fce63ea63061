// Package key defines the key events consumed by the editor loop.
//
// An Event is a small tagged union. Its Kind says which variant it is:
//
//   - KindChar: a character to insert (Rune)
//   - KindNewline: Enter
//   - KindBackspace: Backspace
//   - KindCtrl: Ctrl held with a letter (Rune is the lower-case letter)
//   - KindNamed: a named key such as an arrow or function key (Name)
//   - KindOther: anything else the terminal reported
//
// Decode converts raw backend events into Events.
package key
