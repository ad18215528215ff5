package cli

import (
	"io"
	"os"

	flag "github.com/spf13/pflag"

	"genfs/pkg/fsprog"
)

func cmdGen(out, errOut io.Writer, args []string) int {
	flags := flag.NewFlagSet("gen", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	manifestPath := flags.String("manifest", defaultManifestPath(), "manifest path")
	rootOverride := flags.String("root", "", "override the manifest's output root")

	if code, done := parseFlags(flags, out, errOut, args, printGenHelp); done {
		return code
	}

	m, root, err := loadTarget(*manifestPath, absOverride(*rootOverride))
	if err != nil {
		fprintln(errOut, "error:", err)

		return exitError
	}

	prog, err := m.Program()
	if err != nil {
		fprintln(errOut, "error:", err)

		return exitError
	}

	// The runner resolves paths under root; make sure it exists before
	// writing root-level entries.
	if err := os.MkdirAll(root, 0o755); err != nil {
		fprintln(errOut, "error:", err)

		return exitError
	}

	rw, err := fsprog.NewReadWrite(root)
	if err != nil {
		fprintln(errOut, "error:", err)

		return exitError
	}

	written, err := prog.Run(rw)
	if err != nil {
		fprintln(errOut, "error:", err)

		return exitError
	}

	fprintln(out, "wrote", written, "file(s) to", root)

	return exitOK
}

func printGenHelp(w io.Writer) {
	fprintln(w, "Usage: genfs gen [flags]")
	fprintln(w)
	fprintln(w, "Regenerates every file described by the manifest.")
	fprintln(w)
	fprintln(w, "Flags:")
	fprintln(w, "  --manifest <file>   manifest path")
	fprintln(w, "  --root <dir>        override the manifest's output root")
}
