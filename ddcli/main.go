package ddcli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"cdr.dev/slog"
	"github.com/spf13/pflag"
	"go.uber.org/multierr"

	"github.com/docdiag/docdiag/ddlib"
	"github.com/docdiag/docdiag/lib/go2"
	"github.com/docdiag/docdiag/lib/log"
	"github.com/docdiag/docdiag/lib/textmeasure"
	timelib "github.com/docdiag/docdiag/lib/time"
	"github.com/docdiag/docdiag/lib/version"
	"github.com/docdiag/docdiag/lib/xmain"
)

func Run(ctx context.Context, ms *xmain.State) error {
	watchFlag, err := ms.Opts.Bool("DOCDIAG_WATCH", "watch", "w", false, "watch for changes to input and lay it out again on every change.")
	if err != nil {
		return err
	}
	debugFlag, err := ms.Opts.Bool("DEBUG", "debug", "d", false, "print debug logs.")
	if err != nil {
		ms.Log.Warn.Printf("Invalid DEBUG flag value ignored")
		debugFlag = go2.Pointer(false)
	}
	widthFlag, err := ms.Opts.Float64("DOCDIAG_WIDTH", "width", "", 0, "available width. Wider diagrams are scaled down uniformly to fit. 0 means unlimited.")
	if err != nil {
		return err
	}
	themeFlag, err := ms.Opts.Int64("DOCDIAG_THEME", "theme", "t", 0, "the diagram theme ID")
	if err != nil {
		return err
	}
	configFlag := ms.Opts.String("DOCDIAG_CONFIG", "config", "c", "", "path to a TOML file with theme overrides and layout spacing.")
	batchFlag, err := ms.Opts.Bool("", "batch", "b", false, "treat every argument as an input and write each result next to it.")
	if err != nil {
		return err
	}
	timeoutFlag, err := ms.Opts.Int64("DOCDIAG_TIMEOUT", "timeout", "", 120, "the maximum number of seconds a run may take. 0 disables it. Ignored with --watch.")
	if err != nil {
		return err
	}
	versionFlag, err := ms.Opts.Bool("", "version", "v", false, "get the version")
	if err != nil {
		return err
	}

	err = ms.Opts.Parse()
	if errors.Is(err, pflag.ErrHelp) {
		help(ms)
		return nil
	}
	if err != nil {
		return err
	}

	if len(ms.Opts.Args) > 0 {
		switch ms.Opts.Args[0] {
		case "themes":
			themesCmd(ctx, ms)
			return nil
		case "version":
			if len(ms.Opts.Args) > 1 {
				return xmain.UsageErrorf("version subcommand accepts no arguments")
			}
			fmt.Fprintln(ms.Stdout, version.Version)
			return nil
		}
	}
	if *versionFlag {
		fmt.Fprintln(ms.Stdout, version.Version)
		return nil
	}

	ctx = ms.Context(ctx, *debugFlag)

	lopts, err := layoutOptions(ms, *configFlag, *themeFlag, *widthFlag)
	if err != nil {
		return err
	}
	log.Debug(ctx, "using theme", slog.F("id", lopts.Theme.ID), slog.F("width", lopts.AvailableWidth))

	switch {
	case len(ms.Opts.Args) == 0:
		return xmain.UsageErrorf("input argument required")
	case *batchFlag:
		if *watchFlag {
			return xmain.UsageErrorf("--watch accepts a single input")
		}
		ctx, cancel := timelib.WithTimeout(ctx, time.Duration(*timeoutFlag)*time.Second)
		defer cancel()
		return layoutBatch(ctx, ms, lopts, ms.Opts.Args)
	case len(ms.Opts.Args) > 2:
		return xmain.UsageErrorf("too many arguments passed, use --batch to lay out several inputs")
	}

	inputPath := ms.Opts.Args[0]
	outputPath := defaultOutputPath(inputPath)
	if len(ms.Opts.Args) == 2 {
		outputPath = ms.Opts.Args[1]
	}

	if *watchFlag {
		if inputPath == "-" {
			return xmain.UsageErrorf("-w[atch] cannot be combined with reading input from stdin")
		}
		if outputPath == "-" {
			return xmain.UsageErrorf("-w[atch] cannot be combined with writing output to stdout")
		}
		w, err := newWatcher(ctx, ms, inputPath, outputPath, lopts)
		if err != nil {
			return err
		}
		return w.run()
	}

	ctx, cancel := timelib.WithTimeout(ctx, time.Duration(*timeoutFlag)*time.Second)
	defer cancel()
	return layoutFile(ctx, ms, lopts, inputPath, outputPath)
}

// layoutOptions resolves theme and width with flags and env taking precedence over the
// config file.
func layoutOptions(ms *xmain.State, configPath string, themeID int64, width float64) (*ddlib.LayoutOptions, error) {
	var c *config
	if configPath != "" {
		b, err := ms.ReadPath(configPath)
		if err != nil {
			return nil, err
		}
		c, err = parseConfig(b)
		if err != nil {
			return nil, xmain.UsageErrorf("failed to read config %s: %v", ms.HumanPath(configPath), err)
		}
	}

	lopts := &ddlib.LayoutOptions{}
	if c != nil {
		if c.ThemeID != nil && !explicit(ms, "theme", "DOCDIAG_THEME") {
			themeID = *c.ThemeID
		}
		if c.Width != nil && !explicit(ms, "width", "DOCDIAG_WIDTH") {
			width = *c.Width
		}
		lopts.Layered = &c.Layered
		lopts.Sequence = &c.Sequence
		lopts.Mindmap = &c.Mindmap
	}

	theme, err := c.theme(themeID)
	if err != nil {
		return nil, xmain.UsageErrorf("%v", err)
	}
	if width < 0 {
		return nil, xmain.UsageErrorf("--width must not be negative, got %v", width)
	}

	ruler, err := textmeasure.NewRuler()
	if err != nil {
		return nil, err
	}
	lopts.Ruler = ruler
	lopts.Theme = theme
	lopts.AvailableWidth = width
	return lopts, nil
}

func explicit(ms *xmain.State, flag, envKey string) bool {
	return ms.Opts.Flags.Changed(flag) || ms.Env.Getenv(envKey) != ""
}

func defaultOutputPath(inputPath string) string {
	if inputPath == "-" {
		return "-"
	}
	ext := filepath.Ext(inputPath)
	return strings.TrimSuffix(inputPath, ext) + ".layout.json"
}

func layoutFile(ctx context.Context, ms *xmain.State, lopts *ddlib.LayoutOptions, inputPath, outputPath string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", ms.HumanPath(inputPath), err)
	}
	start := time.Now()
	in, err := ms.ReadPath(inputPath)
	if err != nil {
		return err
	}
	out, err := ddlib.LayoutJSON(ctx, in, lopts)
	if err != nil {
		return fmt.Errorf("%s: %w", ms.HumanPath(inputPath), err)
	}
	err = ms.WritePath(outputPath, out)
	if err != nil {
		return err
	}
	if outputPath != "-" {
		ms.Log.Success.Printf("successfully laid out %s to %s in %s", ms.HumanPath(inputPath), ms.HumanPath(outputPath), timelib.Elapsed(start))
	}
	return nil
}

// layoutBatch lays out every input, continuing past failures.
func layoutBatch(ctx context.Context, ms *xmain.State, lopts *ddlib.LayoutOptions, inputs []string) error {
	var errs error
	for _, inputPath := range inputs {
		if inputPath == "-" {
			errs = multierr.Append(errs, xmain.UsageErrorf("--batch cannot read from stdin"))
			continue
		}
		err := layoutFile(ctx, ms, lopts, inputPath, defaultOutputPath(inputPath))
		if err != nil {
			ms.Log.Error.Print(err)
			errs = multierr.Append(errs, err)
		}
	}
	if n := len(multierr.Errors(errs)); n > 0 {
		return xmain.ExitErrorf(1, "failed to lay out %d of %d inputs", n, len(inputs))
	}
	return nil
}
