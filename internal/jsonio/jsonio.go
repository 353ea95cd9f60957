// Package jsonio loads the JSON input datasets and classifies load
// failures. All downstream stages receive decoded documents from here;
// numbers are preserved as json.Number so the coercion rules, not the
// decoder, decide how values round.
package jsonio

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// ErrKind classifies why an input file could not be loaded.
type ErrKind int

const (
	ErrNotFound ErrKind = iota
	ErrPermission
	ErrSyntax
	ErrRead
)

// LoadError describes an input file that could not be loaded. Its Error
// text is the operator-facing diagnostic for the failure.
type LoadError struct {
	Path string
	Kind ErrKind
	Line int
	Col  int
	Err  error
}

func (e *LoadError) Error() string {
	switch e.Kind {
	case ErrNotFound:
		return fmt.Sprintf("File not found: %s", e.Path)
	case ErrPermission:
		return fmt.Sprintf("Permission denied: %s", e.Path)
	case ErrSyntax:
		return fmt.Sprintf("Invalid JSON in %s: line %d, col %d", e.Path, e.Line, e.Col)
	default:
		return fmt.Sprintf("Cannot read %s: %v", e.Path, e.Err)
	}
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// LoadFile reads path and decodes its entire content as one JSON document.
// Failures come back as a *LoadError.
func LoadFile(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return nil, &LoadError{Path: path, Kind: ErrNotFound, Err: err}
		case errors.Is(err, fs.ErrPermission):
			return nil, &LoadError{Path: path, Kind: ErrPermission, Err: err}
		default:
			return nil, &LoadError{Path: path, Kind: ErrRead, Err: err}
		}
	}
	return decode(data, path)
}

// decode parses data as a single JSON document and rejects trailing
// content, mirroring a strict whole-file load.
func decode(data []byte, path string) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, syntaxError(data, path, err, dec.InputOffset())
	}
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = errors.New("trailing data after JSON document")
		}
		return nil, syntaxError(data, path, err, dec.InputOffset())
	}
	return doc, nil
}

// syntaxError builds the line/col-bearing LoadError for a decode failure.
// The decoder reports byte offsets; operators get 1-based line and column.
func syntaxError(data []byte, path string, err error, offset int64) error {
	var synErr *json.SyntaxError
	if errors.As(err, &synErr) {
		offset = synErr.Offset
	}
	line, col := lineCol(data, offset)
	return &LoadError{Path: path, Kind: ErrSyntax, Line: line, Col: col, Err: err}
}

// lineCol converts a byte offset into a 1-based line and column. The
// offset points one past the offending byte, the way the decoder counts.
func lineCol(data []byte, offset int64) (int, int) {
	pos := int(offset) - 1
	if pos < 0 {
		pos = 0
	}
	if pos > len(data) {
		pos = len(data)
	}
	line, lastNL := 1, -1
	for i := 0; i < pos; i++ {
		if data[i] == '\n' {
			line++
			lastNL = i
		}
	}
	return line, pos - lastNL
}

// Sequence reports whether doc is a JSON array and returns its elements.
func Sequence(doc any) ([]any, bool) {
	items, ok := doc.([]any)
	return items, ok
}

// Object reports whether v is a JSON object and returns its members.
func Object(v any) (map[string]any, bool) {
	obj, ok := v.(map[string]any)
	return obj, ok
}
