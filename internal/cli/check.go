package cli

import (
	"io"

	flag "github.com/spf13/pflag"

	"genfs/pkg/fsprog"
)

func cmdCheck(out, errOut io.Writer, args []string) int {
	flags := flag.NewFlagSet("check", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	manifestPath := flags.String("manifest", defaultManifestPath(), "manifest path")
	rootOverride := flags.String("root", "", "override the manifest's output root")

	if code, done := parseFlags(flags, out, errOut, args, printCheckHelp); done {
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

	ck, err := fsprog.NewCheck(root)
	if err != nil {
		fprintln(errOut, "error:", err)

		return exitError
	}

	if _, err := prog.Run(ck); err != nil {
		fprintln(errOut, "error:", err)

		return exitError
	}

	count := ck.ReportAndCount(func(d fsprog.Discrepancy) {
		fprintln(out, d.String())
	})

	if count > 0 {
		fprintln(errOut, count, "file(s) out of date; run 'genfs gen'")

		return exitDrift
	}

	fprintln(out, "up to date")

	return exitOK
}

func printCheckHelp(w io.Writer) {
	fprintln(w, "Usage: genfs check [flags]")
	fprintln(w)
	fprintln(w, "Verifies generated files match the manifest without writing.")
	fprintln(w, "Exits 1 when any file is missing or stale, 2 on errors.")
	fprintln(w)
	fprintln(w, "Flags:")
	fprintln(w, "  --manifest <file>   manifest path")
	fprintln(w, "  --root <dir>        override the manifest's output root")
}
