package tres

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/KimNorgaard/go-tres/internal/formatter"
	"github.com/KimNorgaard/go-tres/internal/parser"
)

// Parse parses a resource document. It never fails on content: a missing or
// malformed header leaves the header fields empty, literals that match no
// kind become value.RawString, and lines that cannot be understood are
// skipped and returned as diagnostics.
func Parse(data []byte) (*Resource, Diagnostics) {
	p := parser.New(data)
	doc := p.Parse()
	return fromDocument(doc), p.Errors()
}

// ParseFile reads and parses the document at path and records path as the
// resource's FilePath. Only I/O errors are returned; skipped lines are logged
// at debug level.
func ParseFile(path string, opts ...Option) (*Resource, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	return parseFile(path, o)
}

func parseFile(path string, o *options) (*Resource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("tres: %w", err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("tres: %s: %w", path, ErrInvalidUTF8)
	}
	r, diags := Parse(data)
	for _, d := range diags {
		o.logger.Debug("skipped line", "file", path, "line", d.Line, "reason", d.Message)
	}
	r.FilePath = path
	return r, nil
}

// Write writes the document form of r to w.
//
// The header's load_steps is recomputed from the reference table, references
// are written in stored order with empty uids omitted, and a
// script = ExtResource("1_script") line is added first when r has no script
// property.
func Write(w io.Writer, r *Resource, opts ...Option) error {
	o, err := newOptions(opts)
	if err != nil {
		return err
	}
	return write(w, r, o)
}

func write(w io.Writer, r *Resource, o *options) error {
	f := formatter.New(w, o.floats)
	if o.colors {
		f.WithColors(formatter.NewColors())
	}
	if err := f.Format(r.document()); err != nil {
		return fmt.Errorf("tres: %w", err)
	}
	return nil
}

// Marshal returns the document form of r.
func Marshal(r *Resource, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, r, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile writes r to path, replacing any existing file. The document is
// written to a temporary file in the same directory which is renamed over
// path only once it is complete, so a failed write leaves the previous file
// untouched. WriteFile does not change r.FilePath.
func WriteFile(r *Resource, path string, opts ...Option) error {
	o, err := newOptions(opts)
	if err != nil {
		return err
	}
	return writeFile(r, path, o)
}

func writeFile(r *Resource, path string, o *options) error {
	var buf bytes.Buffer
	if err := write(&buf, r, o); err != nil {
		return err
	}
	if err := writeFileAtomic(path, buf.Bytes()); err != nil {
		return fmt.Errorf("tres: writing %s: %w", path, err)
	}
	return nil
}

func writeFileAtomic(path string, data []byte) (err error) {
	perm := os.FileMode(0o644)
	if fi, statErr := os.Stat(path); statErr == nil {
		perm = fi.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Chmod(perm); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
