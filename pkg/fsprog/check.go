package fsprog

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/klauspost/compress/gzip"

	"genfs/pkg/fspath"
)

// Check runs programs without mutating disk, verifying that previously
// generated output is still up to date.
//
// It extends [ReadOnly]'s reads and re-handles the mutating operations as
// assertions: MkDirs and WriteFile compare against existing disk state and
// record a [Discrepancy] per mismatch instead of failing; RemoveAll is a
// no-op. A program therefore runs to completion and every independent
// mismatch is collected, which is what a CI "verify" mode needs.
//
// Each Check owns its discrepancy collection. Folding multiple programs
// through one instance concurrently is safe; retrieve results only after
// the programs have completed.
type Check struct {
	ro  *ReadOnly
	rec recorder
}

// NewCheck returns a Check runner rooted at the absolute directory root.
// Fails with [ErrRootNotAbsolute] otherwise.
func NewCheck(root string) (*Check, error) {
	ro, err := NewReadOnly(root)
	if err != nil {
		return nil, err
	}

	return &Check{ro: ro}, nil
}

// Exists delegates to the read-only core.
func (c *Check) Exists(path fspath.Path) (bool, error) {
	return c.ro.Exists(path)
}

// ReadFile delegates to the read-only core.
func (c *Check) ReadFile(path fspath.Path) (string, bool, error) {
	return c.ro.ReadFile(path)
}

// Fail delegates to the read-only core.
func (c *Check) Fail(err error) error {
	return c.ro.Fail(err)
}

// MkDirs asserts that path already exists. When it does, returns false and
// records nothing; when absent, records [DirMissing] and returns true, so
// higher-level logic composed on the result behaves as if the directory had
// been created.
func (c *Check) MkDirs(path fspath.Path) (bool, error) {
	exists, err := c.ro.Exists(path)
	if err != nil {
		return false, err
	}

	if exists {
		return false, nil
	}

	c.rec.add(DirMissing{Dir: path})

	return true, nil
}

// RemoveAll is a no-op: removal needs no verification, so nothing is
// inspected and nothing is recorded.
func (c *Check) RemoveAll(path fspath.Path, removeHidden bool) error {
	return nil
}

// WriteFile evaluates the content and compares it against the file on disk.
// An absent file records a [WriteMismatch] with Found false; a present file
// is read raw, gzip-decompressed first when compressed is set, and records
// a mismatch only when the decoded text differs.
func (c *Check) WriteFile(path fspath.Path, content *Content, compressed bool) error {
	expected := content.Value()

	raw, err := os.ReadFile(c.ro.Resolve(path))
	if err != nil {
		if os.IsNotExist(err) {
			c.rec.add(WriteMismatch{File: path, Found: false, Expected: expected, Compressed: compressed})

			return nil
		}

		return fmt.Errorf("read %s: %w", path, err)
	}

	if compressed {
		raw, err = gunzipBytes(raw)
		if err != nil {
			return fmt.Errorf("decompress %s: %w", path, err)
		}
	}

	if found := string(raw); found != expected {
		c.rec.add(WriteMismatch{File: path, Current: found, Found: true, Expected: expected, Compressed: compressed})
	}

	return nil
}

// Discrepancies returns a snapshot of the recorded discrepancies in append
// order.
func (c *Check) Discrepancies() []Discrepancy {
	return c.rec.snapshot()
}

// Reset clears the recorded discrepancies.
func (c *Check) Reset() {
	c.rec.reset()
}

// ReportAndCount sorts the recorded discrepancies by path, invokes report
// once per discrepancy in that order, and returns the total count.
//
// Call it only after every program folded through this Check has completed;
// it reads the accumulated state.
func (c *Check) ReportAndCount(report func(Discrepancy)) int {
	items := c.rec.snapshot()

	slices.SortStableFunc(items, func(a, b Discrepancy) int {
		return a.Path().Compare(b.Path())
	})

	for _, d := range items {
		report(d)
	}

	return len(items)
}

func gunzipBytes(data []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	out, err := io.ReadAll(zr)
	if err != nil {
		zr.Close()

		return nil, err
	}

	return out, zr.Close()
}

// Compile-time interface check.
var _ Runner = (*Check)(nil)
