package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/scry-dev/scry/internal/output"
	"github.com/scry-dev/scry/internal/progress"
	"github.com/scry-dev/scry/internal/scanner"
	"github.com/scry-dev/scry/internal/vcs"
	"github.com/scry-dev/scry/pkg/analyzer"
	"github.com/scry-dev/scry/pkg/config"
	"github.com/scry-dev/scry/pkg/parser"
	"github.com/scry-dev/scry/pkg/source"
)

// getPaths returns paths from positional args, defaulting to ["."]
func getPaths(c *cli.Context) []string {
	if c.Args().Len() > 0 {
		return c.Args().Slice()
	}
	return []string{"."}
}

// loadConfig loads configuration honoring the global --config flag and
// applies flag overrides.
func loadConfig(c *cli.Context) (*config.Config, error) {
	var cfg *config.Config
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = config.LoadOrDefault()
	}

	if c.Bool("no-cache") {
		cfg.Cache.Enabled = false
	}
	if c.Bool("verbose") {
		cfg.Output.Verbose = true
	}
	if c.IsSet("format") {
		cfg.Output.Format = c.String("format")
	}
	return cfg, nil
}

// newFormatter builds a formatter from global flags and config.
func newFormatter(c *cli.Context, cfg *config.Config) (*output.Formatter, error) {
	return output.NewFormatter(
		output.ParseFormat(cfg.Output.Format),
		c.String("output"),
		cfg.Output.Color,
	)
}

// collectFiles resolves the paths under check and the content source
// backing them. With --rev, files come from the committed tree of that
// revision instead of the working directory. The total is unknown until
// the walk finishes, so text output gets a spinner rather than a bar.
func collectFiles(c *cli.Context, cfg *config.Config, paths []string) ([]string, source.ContentSource, error) {
	if cfg.Output.Format == "text" {
		spin := progress.NewSpinner("Collecting files...")
		defer spin.Finish()
	}

	if rev := c.String("rev"); rev != "" {
		tree, err := vcs.OpenTree(".", rev)
		if err != nil {
			return nil, nil, err
		}
		all, err := tree.Files()
		if err != nil {
			return nil, nil, err
		}

		var files []string
		for _, f := range all {
			if parser.DetectLanguage(f) == parser.LangUnknown || cfg.ShouldExclude(f) {
				continue
			}
			if !underAny(f, paths) {
				continue
			}
			files = append(files, f)
		}
		return files, source.NewTree(tree), nil
	}

	files, err := scanner.New(cfg).Resolve(paths)
	if err != nil {
		return nil, nil, err
	}
	return files, source.NewFilesystem(), nil
}

// underAny reports whether a tree path falls under any of the
// requested paths. "." matches everything.
func underAny(path string, paths []string) bool {
	for _, p := range paths {
		p = strings.TrimPrefix(p, "./")
		if p == "." || p == "" || path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

// trackedContext attaches a progress bar to the context unless output
// is quiet (non-text format writes to stdout).
func trackedContext(ctx context.Context, label string, total int, cfg *config.Config) (context.Context, func()) {
	if cfg.Output.Format != "text" {
		return ctx, func() {}
	}
	bar := progress.NewBar(label, total)
	tracker := analyzer.NewTracker(func(current, total int, path string) {
		bar.Tick()
	})
	return analyzer.WithTracker(ctx, tracker), bar.Finish
}

// revFlag is shared by all check commands.
func revFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "rev",
		Usage: "Check a committed git revision (branch, tag, or commit) instead of the working tree",
	}
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen < 4 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// boolCell renders a boolean as a table cell.
func boolCell(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

// lineCell renders an optional line number.
func lineCell(line uint32) string {
	if line == 0 {
		return "-"
	}
	return fmt.Sprintf("%d", line)
}

// itoa is a short alias for strconv.Itoa in table footers.
func itoa(n int) string {
	return strconv.Itoa(n)
}
