package app

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dshills/jot/internal/engine/buffer"
)

// DefaultFileMode is used when a save creates a new file.
const DefaultFileMode fs.FileMode = 0o644

// Document is the file being edited. The path never changes after load.
type Document struct {
	// Path is the file path given on the command line.
	Path string

	// Name is the base name of Path.
	Name string

	// Exists is false when the file was missing at load time.
	Exists bool

	snapshot  string
	lineCount int
	mode      fs.FileMode
}

// LoadDocument reads path. A missing file yields an empty document with
// Exists false; any other read failure is returned as an *OperationError.
//
// The content is decoded as UTF-8 (invalid bytes become U+FFFD) and
// trailing whitespace is trimmed.
func LoadDocument(path string, mode fs.FileMode) (*Document, error) {
	if mode == 0 {
		mode = DefaultFileMode
	}
	doc := &Document{
		Path: path,
		Name: filepath.Base(path),
		mode: mode,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return doc, nil
		}
		return nil, NewOperationError("open", path, err)
	}

	text := string(data)
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, string(utf8.RuneError))
	}
	text = strings.TrimRightFunc(text, unicode.IsSpace)

	doc.Exists = true
	doc.snapshot = text
	doc.lineCount = buffer.LineCount(text)
	return doc, nil
}

// Snapshot returns the content read at load time.
func (d *Document) Snapshot() string {
	return d.snapshot
}

// LineCount returns the number of lines in the load-time snapshot. It does
// not follow later edits.
func (d *Document) LineCount() int {
	return d.lineCount
}

// Save replaces the file content with content, creating the file if
// needed. Failures are returned as an *OperationError.
func (d *Document) Save(content []byte) error {
	if err := os.WriteFile(d.Path, content, d.mode); err != nil {
		return NewOperationError("save", d.Path, err)
	}
	d.Exists = true
	return nil
}
