// Package fspath provides an immutable, segment-based file path value.
//
// A [Path] is an ordered sequence of non-empty segments, independent of any
// operating system separator. Paths are values: derivation methods ([Path.Child],
// [Path.Parent], [Path.Sibling]) return new Paths and never mutate the receiver.
//
// Equality is element-wise over segments; ordering is lexicographic over
// segments, which gives deterministic report output when paths are sorted.
package fspath

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// ErrInvalidPath is returned when a path operation would produce a path that
// violates the segment invariants: empty segments, separators inside a
// segment, or deriving below the root.
var ErrInvalidPath = errors.New("fspath: invalid path")

// Path is an immutable sequence of non-empty path segments.
//
// The zero value is the root path: it has no segments and resolves to the
// interpreter root itself.
type Path struct {
	segments []string
}

// New builds a Path from the given segments.
// Every segment must be non-empty and must not contain a path separator.
func New(segments ...string) (Path, error) {
	for _, s := range segments {
		if err := checkSegment(s); err != nil {
			return Path{}, err
		}
	}

	return Path{segments: slices.Clone(segments)}, nil
}

// MustNew is like [New] but panics on invalid segments.
// Intended for literals whose validity is known at compile time.
func MustNew(segments ...string) Path {
	p, err := New(segments...)
	if err != nil {
		panic(err)
	}

	return p
}

// Parse builds a Path from a slash-separated relative path like "out/a.txt".
func Parse(s string) (Path, error) {
	if s == "" {
		return Path{}, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}

	if strings.HasPrefix(s, "/") {
		return Path{}, fmt.Errorf("%w: %q is absolute", ErrInvalidPath, s)
	}

	return New(strings.Split(s, "/")...)
}

// Child returns a new Path with segment appended.
func (p Path) Child(segment string) (Path, error) {
	if err := checkSegment(segment); err != nil {
		return Path{}, err
	}

	return Path{segments: append(slices.Clone(p.segments), segment)}, nil
}

// Parent returns the Path with the final segment dropped.
// The parent of a single-segment path is the root path.
// Parent of the root path fails with [ErrInvalidPath].
func (p Path) Parent() (Path, error) {
	if len(p.segments) == 0 {
		return Path{}, fmt.Errorf("%w: root has no parent", ErrInvalidPath)
	}

	return Path{segments: slices.Clone(p.segments[:len(p.segments)-1])}, nil
}

// Sibling returns the Path with the final segment replaced by segment.
// Sibling of the root path fails with [ErrInvalidPath].
func (p Path) Sibling(segment string) (Path, error) {
	if len(p.segments) == 0 {
		return Path{}, fmt.Errorf("%w: root has no sibling", ErrInvalidPath)
	}

	if err := checkSegment(segment); err != nil {
		return Path{}, err
	}

	return Path{segments: append(slices.Clone(p.segments[:len(p.segments)-1]), segment)}, nil
}

// Ext returns the suffix of the final segment after the first dot, or the
// whole final segment if it contains no dot. Returns "" for the root path.
func (p Path) Ext() string {
	if len(p.segments) == 0 {
		return ""
	}

	last := p.segments[len(p.segments)-1]
	if _, ext, ok := strings.Cut(last, "."); ok {
		return ext
	}

	return last
}

// String returns the segments joined with the platform path separator.
// The root path renders as "".
func (p Path) String() string {
	return filepath.Join(p.segments...)
}

// Segments returns a copy of the path's segments.
func (p Path) Segments() []string {
	return slices.Clone(p.segments)
}

// IsRoot reports whether the path has no segments.
func (p Path) IsRoot() bool {
	return len(p.segments) == 0
}

// Equal reports whether both paths have identical segment sequences.
func (p Path) Equal(other Path) bool {
	return slices.Equal(p.segments, other.segments)
}

// Compare orders paths lexicographically over their segments.
// Returns -1, 0, or 1 like [strings.Compare].
func (p Path) Compare(other Path) int {
	return slices.Compare(p.segments, other.segments)
}

func checkSegment(s string) error {
	if s == "" {
		return fmt.Errorf("%w: empty segment", ErrInvalidPath)
	}

	if strings.ContainsAny(s, `/\`) {
		return fmt.Errorf("%w: segment %q contains a separator", ErrInvalidPath, s)
	}

	return nil
}
