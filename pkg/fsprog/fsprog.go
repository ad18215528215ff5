// Package fsprog describes file-system mutation as data.
//
// A [Program] is a backend-agnostic description of an ordered sequence of
// file operations. Building one performs no I/O; the operations only run
// when the Program is folded through a [Runner] with [Program.Run].
//
// Three runners are provided:
//   - [ReadOnly]: permits inspection, rejects any mutation
//   - [ReadWrite]: performs real directory creation, removal, and writes
//   - [Check]: treats mutations as assertions against existing disk state,
//     accumulating a [Discrepancy] per mismatch instead of failing
//
// The same Program can be run against all three, which is how a generator
// tool supports "regenerate" and a CI-safe "verify nothing has drifted"
// from one description:
//
//	prog := fsprog.WriteText(out, func() string { return render() })
//
//	rw, _ := fsprog.NewReadWrite(root)
//	_, err := prog.Run(rw) // really writes
//
//	ck, _ := fsprog.NewCheck(root)
//	_, err = prog.Run(ck) // compares, never writes
//	stale := ck.ReportAndCount(func(d fsprog.Discrepancy) { ... })
package fsprog

import (
	"sync"

	"genfs/pkg/fspath"
)

// Runner gives meaning to the closed set of file operations a [Program] can
// describe. Each method corresponds to one operation case; a Program invokes
// them strictly sequentially during [Program.Run].
//
// All runners resolve a [fspath.Path] by joining its segments onto the
// runner's absolute root directory, and all share identical read semantics.
type Runner interface {
	// Exists reports whether an entry exists at path.
	Exists(path fspath.Path) (bool, error)

	// MkDirs creates path and all intermediate directories.
	// Returns true if created, false if path already existed.
	MkDirs(path fspath.Path) (bool, error)

	// RemoveAll deletes path and everything under it. When removeHidden is
	// false the walk must refuse to delete a subtree containing an entry
	// whose name starts with ".", failing with [ErrHiddenEntry].
	RemoveAll(path fspath.Path, removeHidden bool) error

	// WriteFile writes the content's UTF-8 bytes to path, fully replacing
	// any existing file. When compressed is set the bytes are gzip-framed.
	WriteFile(path fspath.Path, content *Content, compressed bool) error

	// ReadFile returns the UTF-8 text at path and true, or "" and false if
	// no entry exists there.
	ReadFile(path fspath.Path) (string, bool, error)

	// Fail propagates err verbatim as the operation's failure.
	Fail(err error) error
}

// Content is a deferred producer of the text to write.
//
// The underlying function runs at most once, the first time a runner needs
// the bytes; the result is memoized. Runners that never need the content
// (for example [ReadOnly], which rejects writes) never evaluate it.
type Content struct {
	value func() string
}

// NewContent wraps produce in a memoized, at-most-once evaluation cell.
func NewContent(produce func() string) *Content {
	return &Content{value: sync.OnceValue(produce)}
}

// Value evaluates the producer if it has not run yet and returns the text.
func (c *Content) Value() string {
	return c.value()
}
