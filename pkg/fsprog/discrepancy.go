package fsprog

import (
	"fmt"
	"slices"
	"sync"

	"genfs/pkg/fspath"
)

// Discrepancy is a recorded difference between what a program would write
// and what exists on disk. Discrepancies are produced only by [Check]; they
// are not errors and never abort a program.
//
// The two cases are [DirMissing] and [WriteMismatch].
type Discrepancy interface {
	// Path is the program-relative path the discrepancy was recorded for.
	Path() fspath.Path
	// String is a one-line human-readable description.
	String() string

	discrepancy()
}

// DirMissing records that a program would have created a directory that
// does not exist on disk.
type DirMissing struct {
	Dir fspath.Path
}

func (d DirMissing) Path() fspath.Path { return d.Dir }

func (d DirMissing) String() string {
	return fmt.Sprintf("missing directory %s", d.Dir)
}

func (d DirMissing) discrepancy() {}

// WriteMismatch records that the file a program would write is absent or
// differs from the disk content.
type WriteMismatch struct {
	File fspath.Path
	// Current is the decoded disk content; meaningful only when Found is true.
	Current string
	// Found reports whether a file existed at the path.
	Found bool
	// Expected is the content the program would have written.
	Expected string
	// Compressed reports whether the write used gzip framing.
	Compressed bool
}

func (m WriteMismatch) Path() fspath.Path { return m.File }

func (m WriteMismatch) String() string {
	if !m.Found {
		return fmt.Sprintf("missing file %s", m.File)
	}

	return fmt.Sprintf("stale file %s", m.File)
}

func (m WriteMismatch) discrepancy() {}

// recorder is an ordered, append-only collection of discrepancies.
//
// Appends are mutex-guarded so that independent programs folded through the
// same [Check] instance concurrently never lose a record; within one program
// the strictly sequential fold preserves operation order.
type recorder struct {
	mu    sync.Mutex
	items []Discrepancy
}

func (r *recorder) add(d Discrepancy) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = append(r.items, d)
}

func (r *recorder) snapshot() []Discrepancy {
	r.mu.Lock()
	defer r.mu.Unlock()

	return slices.Clone(r.items)
}

func (r *recorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = nil
}
