// Package seedfile loads and stores seed SQL files. Text is handed out with
// LF line endings and without a byte order mark; both are restored on write.
package seedfile

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrNotUTF8 is returned when a seed file is not valid UTF-8 text.
var ErrNotUTF8 = errors.New("seed file is not valid UTF-8")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Document is the in-memory content of a seed file.
type Document struct {
	Text string
	BOM  bool // source started with a UTF-8 byte order mark
	CRLF bool // source used CRLF line endings
	Mode os.FileMode
}

// Read loads the whole file at path.
func Read(path string) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	doc, err := Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	doc.Mode = info.Mode().Perm()
	return doc, nil
}

// Decode strips the byte order mark and normalizes line endings to LF.
func Decode(raw []byte) (*Document, error) {
	// the decoder replaces ill-formed sequences, so validate first
	if !utf8.Valid(raw) {
		return nil, ErrNotUTF8
	}
	doc := &Document{BOM: bytes.HasPrefix(raw, utf8BOM)}

	text, _, err := transform.Bytes(unicode.UTF8BOM.NewDecoder(), raw)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	s := string(text)
	if strings.Contains(s, "\r\n") {
		doc.CRLF = true
		s = strings.ReplaceAll(s, "\r\n", "\n")
	}
	doc.Text = s
	return doc, nil
}

// Encode restores the original line endings and byte order mark.
func (d *Document) Encode() ([]byte, error) {
	s := d.Text
	if d.CRLF {
		s = strings.ReplaceAll(s, "\n", "\r\n")
	}
	if !d.BOM {
		return []byte(s), nil
	}

	out, _, err := transform.Bytes(unicode.UTF8BOM.NewEncoder(), []byte(s))
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return out, nil
}

// Write stores the document at path through a temp file in the same
// directory followed by a rename, so path holds either the old or the new
// content.
func Write(path string, doc *Document) error {
	data, err := doc.Encode()
	if err != nil {
		return err
	}

	mode := doc.Mode
	if mode == 0 {
		mode = 0644
	}

	dir := filepath.Dir(path)
	tmpPath := filepath.Join(dir, "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")

	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, mode)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
