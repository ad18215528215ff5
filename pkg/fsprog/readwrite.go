package fsprog

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/natefinch/atomic"

	"genfs/pkg/fspath"
)

const dirPerms = 0o755

// ReadWrite runs programs against a real root directory with the full
// operation set: it extends [ReadOnly] with real directory creation,
// real recursive removal, and real (optionally gzip-compressed) writes.
type ReadWrite struct {
	ro *ReadOnly
}

// NewReadWrite returns a ReadWrite runner rooted at the absolute directory
// root. Fails with [ErrRootNotAbsolute] otherwise.
func NewReadWrite(root string) (*ReadWrite, error) {
	ro, err := NewReadOnly(root)
	if err != nil {
		return nil, err
	}

	return &ReadWrite{ro: ro}, nil
}

// Exists delegates to the read-only core.
func (w *ReadWrite) Exists(path fspath.Path) (bool, error) {
	return w.ro.Exists(path)
}

// ReadFile delegates to the read-only core.
func (w *ReadWrite) ReadFile(path fspath.Path) (string, bool, error) {
	return w.ro.ReadFile(path)
}

// Fail delegates to the read-only core.
func (w *ReadWrite) Fail(err error) error {
	return w.ro.Fail(err)
}

// MkDirs creates path and all intermediate directories.
// Returns false without touching disk when path already exists.
func (w *ReadWrite) MkDirs(path fspath.Path) (bool, error) {
	exists, err := w.ro.Exists(path)
	if err != nil {
		return false, err
	}

	if exists {
		return false, nil
	}

	if err := os.MkdirAll(w.ro.Resolve(path), dirPerms); err != nil {
		return false, fmt.Errorf("mkdirs %s: %w", path, err)
	}

	return true, nil
}

// RemoveAll deletes path and everything under it.
//
// When removeHidden is false the whole subtree is scanned first; if any
// entry below path has a name starting with ".", RemoveAll fails with
// [ErrHiddenEntry] before deleting anything. The guard covers entries
// strictly below path: a caller naming a hidden directory explicitly is
// asking for its removal.
func (w *ReadWrite) RemoveAll(path fspath.Path, removeHidden bool) error {
	target := w.ro.Resolve(path)

	if !removeHidden {
		if err := scanForHidden(target); err != nil {
			return err
		}
	}

	// Deletes files bottom-up, then the emptied directories, then target.
	if err := os.RemoveAll(target); err != nil {
		return fmt.Errorf("removeall %s: %w", path, err)
	}

	return nil
}

// WriteFile evaluates the content once and writes its UTF-8 bytes to path,
// gzip-framed when compressed is set, fully replacing any existing file.
func (w *ReadWrite) WriteFile(path fspath.Path, content *Content, compressed bool) error {
	data := []byte(content.Value())

	if compressed {
		var err error

		data, err = gzipBytes(data)
		if err != nil {
			return fmt.Errorf("compress %s: %w", path, err)
		}
	}

	if err := atomic.WriteFile(w.ro.Resolve(path), bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}

// scanForHidden walks the subtree under target and fails on the first entry
// whose name starts with ".". The root entry itself is not checked.
func scanForHidden(target string) error {
	err := filepath.WalkDir(target, func(entry string, d fs.DirEntry, err error) error {
		if err != nil {
			if entry == target && os.IsNotExist(err) {
				return filepath.SkipAll
			}

			return err
		}

		if entry == target {
			return nil
		}

		if strings.HasPrefix(d.Name(), ".") {
			return fmt.Errorf("%w: %s", ErrHiddenEntry, entry)
		}

		return nil
	})
	if err != nil {
		return err
	}

	return nil
}

func gzipBytes(data []byte) ([]byte, error) {
	var buf bytes.Buffer

	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return nil, err
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Compile-time interface check.
var _ Runner = (*ReadWrite)(nil)
