package fsprog

import "errors"

var (
	// ErrRootNotAbsolute is returned by runner constructors when the root
	// directory is not an absolute path.
	ErrRootNotAbsolute = errors.New("fsprog: root is not absolute")

	// ErrReadOnly is returned by [ReadOnly] for any mutating operation.
	// The wrapped message names the offending operation and path.
	ErrReadOnly = errors.New("fsprog: read-only violation")

	// ErrHiddenEntry is returned by [ReadWrite.RemoveAll] when removeHidden
	// is false and the subtree contains an entry whose name starts with ".".
	// The subtree is pre-scanned, so nothing has been deleted when this is
	// returned.
	ErrHiddenEntry = errors.New("fsprog: hidden entry encountered")
)
