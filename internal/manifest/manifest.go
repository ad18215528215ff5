// Package manifest loads the .genfs.json manifest describing which files a
// project generates, and lowers it into a runnable [fsprog.Program].
//
// Manifests are JWCC (JSON with comments and trailing commas), parsed with
// hujson so they can be annotated by hand.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"

	"genfs/pkg/fspath"
	"genfs/pkg/fsprog"
)

// DefaultFileName is the manifest file name looked up when none is given.
const DefaultFileName = ".genfs.json"

var (
	ErrRootMissing     = errors.New("manifest: root is required")
	ErrNoEntries       = errors.New("manifest: no entries")
	ErrPathMissing     = errors.New("manifest: entry path is required")
	ErrAmbiguousSource = errors.New("manifest: entry sets both content and content_file")
	ErrDuplicatePath   = errors.New("manifest: duplicate entry path")
)

// Manifest describes the generated outputs of one project.
type Manifest struct {
	// Root is the output directory. A relative root is resolved against
	// the directory containing the manifest file.
	Root string `json:"root"`

	Entries []Entry `json:"entries"`

	// dir is the directory the manifest was loaded from.
	dir string
}

// Entry describes one generated file.
type Entry struct {
	// Path is the slash-separated output path, relative to Root.
	Path string `json:"path"`

	// Content is inline text to write. Mutually exclusive with ContentFile.
	Content string `json:"content,omitempty"`

	// ContentFile names a source file (relative to the manifest directory)
	// whose text is written. Mutually exclusive with Content.
	ContentFile string `json:"content_file,omitempty"` //nolint:tagliatelle // snake_case for config file

	// Compressed selects gzip framing for the output.
	Compressed bool `json:"compressed,omitempty"`
}

// Load reads and validates the manifest at path.
func Load(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("manifest: read %s: %w", path, err)
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Manifest{}, fmt.Errorf("manifest: %s: invalid JSONC: %w", path, err)
	}

	var m Manifest
	if err := json.Unmarshal(standardized, &m); err != nil {
		return Manifest{}, fmt.Errorf("manifest: %s: invalid JSON: %w", path, err)
	}

	m.dir = filepath.Dir(path)

	if err := m.validate(); err != nil {
		return Manifest{}, err
	}

	return m, nil
}

func (m Manifest) validate() error {
	if m.Root == "" {
		return ErrRootMissing
	}

	if len(m.Entries) == 0 {
		return ErrNoEntries
	}

	seen := make(map[string]bool, len(m.Entries))

	for _, e := range m.Entries {
		if e.Path == "" {
			return ErrPathMissing
		}

		if e.Content != "" && e.ContentFile != "" {
			return fmt.Errorf("%w: %s", ErrAmbiguousSource, e.Path)
		}

		if seen[e.Path] {
			return fmt.Errorf("%w: %s", ErrDuplicatePath, e.Path)
		}

		seen[e.Path] = true
	}

	return nil
}

// AbsRoot returns the output root as an absolute path, resolving a relative
// root against the manifest's directory.
func (m Manifest) AbsRoot() (string, error) {
	root := m.Root
	if !filepath.IsAbs(root) {
		root = filepath.Join(m.dir, root)
	}

	return filepath.Abs(root)
}

// Program lowers the manifest into one program that creates each entry's
// parent directories and writes each entry in declaration order, yielding
// the number of files written.
func (m Manifest) Program() (fsprog.Program[int], error) {
	prog := fsprog.Pure(0)

	for _, e := range m.Entries {
		step, err := m.entryProgram(e)
		if err != nil {
			return fsprog.Program[int]{}, err
		}

		prog = fsprog.AndThen(prog, func(n int) fsprog.Program[int] {
			return fsprog.AndThen(step, func(fsprog.None) fsprog.Program[int] {
				return fsprog.Pure(n + 1)
			})
		})
	}

	return prog, nil
}

func (m Manifest) entryProgram(e Entry) (fsprog.Program[fsprog.None], error) {
	out, err := fspath.Parse(e.Path)
	if err != nil {
		return fsprog.Program[fsprog.None]{}, fmt.Errorf("manifest: entry %s: %w", e.Path, err)
	}

	content, err := m.entryContent(e)
	if err != nil {
		return fsprog.Program[fsprog.None]{}, err
	}

	write := fsprog.WriteFile(out, fsprog.NewContent(func() string { return content }), e.Compressed)

	parent, err := out.Parent()
	if err != nil || parent.IsRoot() {
		return write, nil
	}

	return fsprog.AndThen(fsprog.MkDirs(parent), func(bool) fsprog.Program[fsprog.None] {
		return write
	}), nil
}

func (m Manifest) entryContent(e Entry) (string, error) {
	if e.ContentFile == "" {
		return e.Content, nil
	}

	src := e.ContentFile
	if !filepath.IsAbs(src) {
		src = filepath.Join(m.dir, src)
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return "", fmt.Errorf("manifest: entry %s: %w", e.Path, err)
	}

	return string(data), nil
}

// Paths returns the parsed output path of every entry, in declaration order.
func (m Manifest) Paths() ([]fspath.Path, error) {
	paths := make([]fspath.Path, 0, len(m.Entries))

	for _, e := range m.Entries {
		p, err := fspath.Parse(e.Path)
		if err != nil {
			return nil, fmt.Errorf("manifest: entry %s: %w", e.Path, err)
		}

		paths = append(paths, p)
	}

	return paths, nil
}
