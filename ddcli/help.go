package ddcli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/docdiag/docdiag/ddthemes/ddthemescatalog"
	"github.com/docdiag/docdiag/lib/version"
	"github.com/docdiag/docdiag/lib/xmain"
)

func help(ms *xmain.State) {
	fmt.Fprintf(ms.Stdout, `%[1]s %[2]s
Usage:
  %[1]s [--watch=false] [--theme=0] [--width=0] input.json [output.json]
  %[1]s --batch input.json ...

%[1]s lays out the diagram model in input.json and writes it to output.json with
positions, sizes and edge routes filled in.
It defaults to input.layout.json if an output path is not provided.

Use - to have %[1]s read from stdin or write to stdout.

Flags:
%[3]s

Subcommands:
  %[1]s themes - Lists available themes
  %[1]s version - Prints the version
`, filepath.Base(ms.Name), version.Version, ms.Opts.Help())
}

func themesCmd(_ context.Context, ms *xmain.State) {
	fmt.Fprintf(ms.Stdout, "Available themes:\n%s", ddthemescatalog.CLIString())
}
