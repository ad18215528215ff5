package fsprog

import (
	"fmt"
	"os"
	"path/filepath"

	"genfs/pkg/fspath"
)

// ReadOnly runs programs against a real root directory but permits only
// inspection: Exists, ReadFile, and Fail. Every mutating operation fails
// with [ErrReadOnly].
//
// ReadOnly is also the resolution and read core the other runners are
// built on, which keeps read semantics identical across all of them.
type ReadOnly struct {
	root string
}

// NewReadOnly returns a ReadOnly runner rooted at the absolute directory
// root. Fails with [ErrRootNotAbsolute] otherwise.
func NewReadOnly(root string) (*ReadOnly, error) {
	if !filepath.IsAbs(root) {
		return nil, fmt.Errorf("%w: %q", ErrRootNotAbsolute, root)
	}

	return &ReadOnly{root: filepath.Clean(root)}, nil
}

// Root returns the absolute root directory.
func (r *ReadOnly) Root() string {
	return r.root
}

// Resolve joins path's segments onto the root directory.
func (r *ReadOnly) Resolve(path fspath.Path) string {
	return filepath.Join(r.root, path.String())
}

// Exists checks for an entry at path using [os.Stat].
// Returns (true, nil) if it exists, (false, nil) if not, (false, err) for
// other errors.
func (r *ReadOnly) Exists(path fspath.Path) (bool, error) {
	_, err := os.Stat(r.Resolve(path))
	if err == nil {
		return true, nil
	}

	if os.IsNotExist(err) {
		return false, nil
	}

	return false, fmt.Errorf("stat %s: %w", path, err)
}

// ReadFile returns the UTF-8 text at path and true, or "" and false when no
// entry exists there.
func (r *ReadOnly) ReadFile(path fspath.Path) (string, bool, error) {
	data, err := os.ReadFile(r.Resolve(path))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}

		return "", false, fmt.Errorf("read %s: %w", path, err)
	}

	return string(data), true, nil
}

// Fail propagates err verbatim.
func (r *ReadOnly) Fail(err error) error {
	return err
}

// MkDirs always fails with [ErrReadOnly].
func (r *ReadOnly) MkDirs(path fspath.Path) (bool, error) {
	return false, readOnlyViolation("mkdirs", path)
}

// RemoveAll always fails with [ErrReadOnly].
func (r *ReadOnly) RemoveAll(path fspath.Path, removeHidden bool) error {
	return readOnlyViolation("removeall", path)
}

// WriteFile always fails with [ErrReadOnly]. The content is never evaluated.
func (r *ReadOnly) WriteFile(path fspath.Path, content *Content, compressed bool) error {
	return readOnlyViolation("writefile", path)
}

func readOnlyViolation(op string, path fspath.Path) error {
	return fmt.Errorf("%w: %s %s", ErrReadOnly, op, path)
}

// Compile-time interface check.
var _ Runner = (*ReadOnly)(nil)
