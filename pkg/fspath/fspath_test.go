package fspath_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"genfs/pkg/fspath"
)

func Test_New_Returns_Error_When_Segments_Invalid(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		segments []string
	}{
		{name: "EmptySegment", segments: []string{"a", "", "b"}},
		{name: "SlashInSegment", segments: []string{"a/b"}},
		{name: "BackslashInSegment", segments: []string{`a\b`}},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, err := fspath.New(testCase.segments...)
			require.ErrorIs(t, err, fspath.ErrInvalidPath)
		})
	}
}

func Test_Parse_Splits_On_Slash(t *testing.T) {
	t.Parallel()

	p, err := fspath.Parse("out/sub/a.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{"out", "sub", "a.txt"}, p.Segments())
}

func Test_Parse_Rejects_Absolute_And_Empty(t *testing.T) {
	t.Parallel()

	_, err := fspath.Parse("/abs/path")
	require.ErrorIs(t, err, fspath.ErrInvalidPath)

	_, err = fspath.Parse("")
	require.ErrorIs(t, err, fspath.ErrInvalidPath)
}

func Test_Child_Appends_Without_Mutating_Receiver(t *testing.T) {
	t.Parallel()

	base := fspath.MustNew("a", "b")

	child, err := base.Child("c")
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, child.Segments())
	assert.Equal(t, []string{"a", "b"}, base.Segments(), "receiver must be unchanged")
}

func Test_Parent_Drops_Last_Segment(t *testing.T) {
	t.Parallel()

	p := fspath.MustNew("a", "b", "c")

	parent, err := p.Parent()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, parent.Segments())
}

func Test_Parent_Of_Single_Segment_Is_Root(t *testing.T) {
	t.Parallel()

	parent, err := fspath.MustNew("a").Parent()
	require.NoError(t, err)
	assert.True(t, parent.IsRoot())
}

func Test_Parent_Of_Root_Fails(t *testing.T) {
	t.Parallel()

	_, err := fspath.Path{}.Parent()
	require.ErrorIs(t, err, fspath.ErrInvalidPath)
}

func Test_Sibling_Replaces_Last_Segment(t *testing.T) {
	t.Parallel()

	p := fspath.MustNew("a", "b.txt")

	sibling, err := p.Sibling("c.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c.txt"}, sibling.Segments())
}

func Test_Sibling_Of_Root_Fails(t *testing.T) {
	t.Parallel()

	_, err := fspath.Path{}.Sibling("a")
	require.ErrorIs(t, err, fspath.ErrInvalidPath)
}

func Test_Ext_Returns_Suffix_After_First_Dot(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		path fspath.Path
		want string
	}{
		{name: "SimpleExtension", path: fspath.MustNew("a.txt"), want: "txt"},
		{name: "MultiDot", path: fspath.MustNew("a.tar.gz"), want: "tar.gz"},
		{name: "NoDot", path: fspath.MustNew("Makefile"), want: "Makefile"},
		{name: "Root", path: fspath.Path{}, want: ""},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.want, testCase.path.Ext())
		})
	}
}

func Test_String_Joins_With_Platform_Separator(t *testing.T) {
	t.Parallel()

	p := fspath.MustNew("out", "a.txt")
	assert.Equal(t, filepath.Join("out", "a.txt"), p.String())
	assert.Equal(t, "", fspath.Path{}.String())
}

func Test_Equal_Is_Elementwise(t *testing.T) {
	t.Parallel()

	assert.True(t, fspath.MustNew("a", "b").Equal(fspath.MustNew("a", "b")))
	assert.False(t, fspath.MustNew("a", "b").Equal(fspath.MustNew("a")))
	assert.False(t, fspath.MustNew("a", "b").Equal(fspath.MustNew("a", "c")))
}

func Test_Compare_Orders_Lexicographically_Over_Segments(t *testing.T) {
	t.Parallel()

	ay := fspath.MustNew("a", "y")
	bx := fspath.MustNew("b", "x")

	assert.Negative(t, ay.Compare(bx))
	assert.Positive(t, bx.Compare(ay))
	assert.Zero(t, ay.Compare(fspath.MustNew("a", "y")))

	// Prefixes order before their extensions.
	assert.Negative(t, fspath.MustNew("a").Compare(fspath.MustNew("a", "y")))
}

func Test_Segments_Returns_A_Copy(t *testing.T) {
	t.Parallel()

	p := fspath.MustNew("a", "b")

	segments := p.Segments()
	segments[0] = "mutated"

	assert.Equal(t, []string{"a", "b"}, p.Segments())
}
