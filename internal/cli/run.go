// Package cli implements the genfs command line: gen, check, and clean.
package cli

import (
	"fmt"
	"io"

	"genfs/internal/manifest"
)

// Exit codes. Drift and hard errors are distinct so CI can tell "content is
// stale" from a usage or environment problem.
const (
	exitOK    = 0
	exitDrift = 1
	exitError = 2
)

const helpFlag = "--help"

// Run is the main entry point. args excludes the program name.
// Returns the process exit code.
func Run(out, errOut io.Writer, args []string) int {
	if len(args) == 0 {
		printUsage(out)

		return exitOK
	}

	cmd := args[0]
	rest := args[1:]

	switch cmd {
	case "-h", helpFlag, "help":
		printUsage(out)

		return exitOK
	case "gen":
		return cmdGen(out, errOut, rest)
	case "check":
		return cmdCheck(out, errOut, rest)
	case "clean":
		return cmdClean(out, errOut, rest)
	default:
		fprintln(errOut, "error: unknown command:", cmd)
		printUsage(errOut)

		return exitError
	}
}

func printUsage(w io.Writer) {
	fprintln(w, "Usage: genfs <command> [flags]")
	fprintln(w)
	fprintln(w, "Commands:")
	fprintln(w, "  gen      regenerate the files described by the manifest")
	fprintln(w, "  check    verify generated files are up to date (exit 1 on drift)")
	fprintln(w, "  clean    remove generated files")
	fprintln(w)
	fprintln(w, "Flags:")
	fprintln(w, "  --manifest <file>   manifest path (default "+manifest.DefaultFileName+")")
	fprintln(w, "  --root <dir>        override the manifest's output root")
}

// fprintln writes to w, ignoring errors (best-effort output).
func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

// loadTarget loads the manifest and resolves the absolute output root,
// applying the --root override when non-empty.
func loadTarget(manifestPath, rootOverride string) (manifest.Manifest, string, error) {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return manifest.Manifest{}, "", err
	}

	if rootOverride != "" {
		m.Root = rootOverride
	}

	root, err := m.AbsRoot()
	if err != nil {
		return manifest.Manifest{}, "", fmt.Errorf("resolve root: %w", err)
	}

	return m, root, nil
}
