package fsprog

import "genfs/pkg/fspath"

// Program describes an ordered sequence of file operations yielding a value
// of type T. Building a Program performs no I/O; only [Program.Run] does.
type Program[T any] struct {
	run func(Runner) (T, error)
}

// Run folds the program through r, executing its operations strictly in
// declaration order. The first exception-kind error aborts the fold.
func (p Program[T]) Run(r Runner) (T, error) {
	return p.run(r)
}

// None is the result type of programs run only for their effect.
type None = struct{}

// Text is the result of [ReadText]: Content holds the file's text when
// Found is true.
type Text struct {
	Content string
	Found   bool
}

// Pure is a program that performs no operation and yields v.
func Pure[T any](v T) Program[T] {
	return Program[T]{run: func(Runner) (T, error) {
		return v, nil
	}}
}

// AndThen sequences two programs: run p, pass its result to next to obtain
// the continuation, run that. next is not invoked if p fails.
func AndThen[A, B any](p Program[A], next func(A) Program[B]) Program[B] {
	return Program[B]{run: func(r Runner) (B, error) {
		a, err := p.run(r)
		if err != nil {
			var zero B

			return zero, err
		}

		return next(a).run(r)
	}}
}

// Exists describes an existence check at path.
func Exists(path fspath.Path) Program[bool] {
	return Program[bool]{run: func(r Runner) (bool, error) {
		return r.Exists(path)
	}}
}

// MkDirs describes creating path and all intermediate directories.
// Yields true if the directory would be (or was) created, false if it
// already exists.
func MkDirs(path fspath.Path) Program[bool] {
	return Program[bool]{run: func(r Runner) (bool, error) {
		return r.MkDirs(path)
	}}
}

// RemoveAll describes deleting path and everything under it.
// With removeHidden false, the operation refuses subtrees containing
// hidden entries (names starting with ".").
func RemoveAll(path fspath.Path, removeHidden bool) Program[None] {
	return Program[None]{run: func(r Runner) (None, error) {
		return None{}, r.RemoveAll(path, removeHidden)
	}}
}

// WriteFile describes writing content to path, gzip-framed when compressed
// is set.
func WriteFile(path fspath.Path, content *Content, compressed bool) Program[None] {
	return Program[None]{run: func(r Runner) (None, error) {
		return None{}, r.WriteFile(path, content, compressed)
	}}
}

// ReadText describes reading the UTF-8 text at path.
func ReadText(path fspath.Path) Program[Text] {
	return Program[Text]{run: func(r Runner) (Text, error) {
		content, found, err := r.ReadFile(path)

		return Text{Content: content, Found: found}, err
	}}
}

// Fail describes injecting err into the program. The error propagates
// verbatim when the program runs.
func Fail[T any](err error) Program[T] {
	return Program[T]{run: func(r Runner) (T, error) {
		var zero T

		return zero, r.Fail(err)
	}}
}

// WriteText describes an uncompressed write with a deferred content
// producer. The producer is evaluated at most once, only if the runner
// needs the bytes.
func WriteText(path fspath.Path, produce func() string) Program[None] {
	return WriteFile(path, NewContent(produce), false)
}

// WriteCompressedText is [WriteText] with gzip framing.
func WriteCompressedText(path fspath.Path, produce func() string) Program[None] {
	return WriteFile(path, NewContent(produce), true)
}

// RemoveIfExists describes checking for path and removing it only when
// present; absent paths are a no-op.
func RemoveIfExists(path fspath.Path, removeHidden bool) Program[None] {
	return AndThen(Exists(path), func(found bool) Program[None] {
		if !found {
			return Pure(None{})
		}

		return RemoveAll(path, removeHidden)
	})
}
