// Package buffer provides the editable text held by the editor.
//
// Text only grows or shrinks at its end: characters are appended and
// Backspace removes the last Unicode scalar value. Content is always valid
// UTF-8; invalid input is replaced with U+FFFD when it enters the buffer.
//
// Basic usage:
//
//	t := buffer.New()
//	t.AppendString("hello")
//	t.Backspace()
//	t.Append('o')
//	fmt.Println(t.String()) // hello
//
// Text is not safe for concurrent use. It is owned by the editor loop.
package buffer
