package manifest_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"genfs/internal/manifest"
	"genfs/pkg/fsprog"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()

	path := filepath.Join(dir, manifest.DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func Test_Load_Parses_JWCC_With_Comments(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeManifest(t, dir, `{
		// generated outputs for this project
		"root": "out",
		"entries": [
			{"path": "a.txt", "content": "hello"}, // trailing comma ok
		],
	}`)

	m, err := manifest.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "out", m.Root)
	require.Len(t, m.Entries, 1)
	assert.Equal(t, "a.txt", m.Entries[0].Path)
	assert.Equal(t, "hello", m.Entries[0].Content)
}

func Test_Load_Returns_Error_When_Manifest_Invalid(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "MissingRoot",
			content: `{"entries": [{"path": "a.txt", "content": "x"}]}`,
			wantErr: manifest.ErrRootMissing,
		},
		{
			name:    "NoEntries",
			content: `{"root": "out", "entries": []}`,
			wantErr: manifest.ErrNoEntries,
		},
		{
			name:    "EntryWithoutPath",
			content: `{"root": "out", "entries": [{"content": "x"}]}`,
			wantErr: manifest.ErrPathMissing,
		},
		{
			name:    "BothContentSources",
			content: `{"root": "out", "entries": [{"path": "a.txt", "content": "x", "content_file": "y"}]}`,
			wantErr: manifest.ErrAmbiguousSource,
		},
		{
			name:    "DuplicatePaths",
			content: `{"root": "out", "entries": [{"path": "a.txt", "content": "x"}, {"path": "a.txt", "content": "y"}]}`,
			wantErr: manifest.ErrDuplicatePath,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			path := writeManifest(t, t.TempDir(), testCase.content)

			_, err := manifest.Load(path)
			require.ErrorIs(t, err, testCase.wantErr)
		})
	}
}

func Test_AbsRoot_Resolves_Relative_Root_Against_Manifest_Dir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeManifest(t, dir, `{"root": "out", "entries": [{"path": "a.txt", "content": "x"}]}`)

	m, err := manifest.Load(path)
	require.NoError(t, err)

	root, err := m.AbsRoot()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "out"), root)
}

func Test_Program_Writes_Entries_With_Parent_Directories(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "template.txt"), []byte("from file"), 0o644))

	path := writeManifest(t, dir, `{
		"root": "out",
		"entries": [
			{"path": "sub/a.txt", "content": "inline"},
			{"path": "b.txt", "content_file": "template.txt"},
		],
	}`)

	m, err := manifest.Load(path)
	require.NoError(t, err)

	prog, err := m.Program()
	require.NoError(t, err)

	root, err := m.AbsRoot()
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(root, 0o755))

	rw, err := fsprog.NewReadWrite(root)
	require.NoError(t, err)

	written, err := prog.Run(rw)
	require.NoError(t, err)
	assert.Equal(t, 2, written)

	data, err := os.ReadFile(filepath.Join(root, "sub", "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "inline", string(data))

	data, err = os.ReadFile(filepath.Join(root, "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "from file", string(data))
}

func Test_Program_Then_Check_Finds_No_Drift(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeManifest(t, dir, `{
		"root": "out",
		"entries": [
			{"path": "sub/a.txt", "content": "hello"},
			{"path": "c.txt.gz", "content": "zipped", "compressed": true},
		],
	}`)

	m, err := manifest.Load(path)
	require.NoError(t, err)

	prog, err := m.Program()
	require.NoError(t, err)

	root, err := m.AbsRoot()
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(root, 0o755))

	rw, err := fsprog.NewReadWrite(root)
	require.NoError(t, err)

	_, err = prog.Run(rw)
	require.NoError(t, err)

	ck, err := fsprog.NewCheck(root)
	require.NoError(t, err)

	_, err = prog.Run(ck)
	require.NoError(t, err)
	assert.Zero(t, ck.ReportAndCount(func(fsprog.Discrepancy) {}))
}

func Test_Paths_Returns_Entry_Paths_In_Order(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeManifest(t, dir, `{
		"root": "out",
		"entries": [
			{"path": "b.txt", "content": "x"},
			{"path": "a/c.txt", "content": "y"},
		],
	}`)

	m, err := manifest.Load(path)
	require.NoError(t, err)

	paths, err := m.Paths()
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, []string{"b.txt"}, paths[0].Segments())
	assert.Equal(t, []string{"a", "c.txt"}, paths[1].Segments())
}
