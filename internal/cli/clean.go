package cli

import (
	"errors"
	"io"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"genfs/internal/manifest"
	"genfs/pkg/fsprog"
)

func cmdClean(out, errOut io.Writer, args []string) int {
	flags := flag.NewFlagSet("clean", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	manifestPath := flags.String("manifest", defaultManifestPath(), "manifest path")
	rootOverride := flags.String("root", "", "override the manifest's output root")
	removeHidden := flags.Bool("hidden", false, "also remove hidden entries under generated paths")

	if code, done := parseFlags(flags, out, errOut, args, printCleanHelp); done {
		return code
	}

	m, root, err := loadTarget(*manifestPath, absOverride(*rootOverride))
	if err != nil {
		fprintln(errOut, "error:", err)

		return exitError
	}

	paths, err := m.Paths()
	if err != nil {
		fprintln(errOut, "error:", err)

		return exitError
	}

	prog := fsprog.Pure(fsprog.None{})
	for _, p := range paths {
		step := fsprog.RemoveIfExists(p, *removeHidden)
		prog = fsprog.AndThen(prog, func(fsprog.None) fsprog.Program[fsprog.None] {
			return step
		})
	}

	rw, err := fsprog.NewReadWrite(root)
	if err != nil {
		fprintln(errOut, "error:", err)

		return exitError
	}

	if _, err := prog.Run(rw); err != nil {
		if errors.Is(err, fsprog.ErrHiddenEntry) {
			fprintln(errOut, "error:", err)
			fprintln(errOut, "hint: pass --hidden to remove hidden entries")

			return exitError
		}

		fprintln(errOut, "error:", err)

		return exitError
	}

	fprintln(out, "removed", len(paths), "path(s) under", root)

	return exitOK
}

func printCleanHelp(w io.Writer) {
	fprintln(w, "Usage: genfs clean [flags]")
	fprintln(w)
	fprintln(w, "Removes every generated path named by the manifest.")
	fprintln(w)
	fprintln(w, "Flags:")
	fprintln(w, "  --manifest <file>   manifest path")
	fprintln(w, "  --root <dir>        override the manifest's output root")
	fprintln(w, "  --hidden            also remove hidden entries")
}

// parseFlags handles --help and parse errors uniformly for all commands.
// done is true when the command should return code without executing.
func parseFlags(flags *flag.FlagSet, out, errOut io.Writer, args []string, help func(io.Writer)) (int, bool) {
	for _, a := range args {
		if a == "-h" || a == helpFlag {
			help(out)

			return exitOK, true
		}
	}

	if err := flags.Parse(args); err != nil {
		fprintln(errOut, "error:", err)
		help(errOut)

		return exitError, true
	}

	return exitOK, false
}

// defaultManifestPath looks for the manifest in the working directory.
func defaultManifestPath() string {
	return manifest.DefaultFileName
}

// absOverride makes a non-empty --root override absolute against the
// working directory, so it is not re-resolved against the manifest's
// directory.
func absOverride(root string) string {
	if root == "" {
		return ""
	}

	if abs, err := filepath.Abs(root); err == nil {
		return abs
	}

	return root
}
