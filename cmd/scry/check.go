package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/scry-dev/scry/internal/cache"
	"github.com/scry-dev/scry/internal/fileproc"
	"github.com/scry-dev/scry/internal/output"
	"github.com/scry-dev/scry/pkg/analyzer/commented"
	"github.com/scry-dev/scry/pkg/analyzer/debugcall"
	"github.com/scry-dev/scry/pkg/analyzer/loadevent"
	"github.com/scry-dev/scry/pkg/config"
	"github.com/scry-dev/scry/pkg/parser"
)

// fileCheck is the combined per-file result of all enabled checks.
// Cached between runs keyed by content hash.
type fileCheck struct {
	File      string             `json:"file" toon:"file"`
	LoadEvent *loadevent.Verdict `json:"loadevent,omitempty" toon:"loadevent,omitempty"`
	Debug     map[string]bool    `json:"debug,omitempty" toon:"debug,omitempty"`
	Comments  *commented.Verdict `json:"comments,omitempty" toon:"comments,omitempty"`
	Flagged   bool               `json:"flagged" toon:"flagged"`
}

func checkCmd() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Run all enabled checks",
		ArgsUsage: "[path...]",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "target",
				Aliases: []string{"t"},
				Usage:   "Function names for the debug check (overrides config)",
			},
			revFlag(),
		},
		Action: runCheck,
	}
}

func runCheck(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	files, src, err := collectFiles(c, cfg, getPaths(c))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		formatter.Warning("No source files found")
		return nil
	}
	if cfg.Output.Verbose && formatter.Format() == output.FormatText {
		formatter.Info("Checking %d files", len(files))
	}

	targets := c.StringSlice("target")
	if len(targets) == 0 {
		targets = cfg.Checks.Debug.Targets
	}

	// Caching only makes sense against the working tree.
	cacheEnabled := cfg.Cache.Enabled && c.String("rev") == ""
	reportCache, err := cache.New(cfg.Cache.Dir, cfg.Cache.TTL, cacheEnabled)
	if err != nil {
		return err
	}

	ctx, done := trackedContext(context.Background(), "Running checks...", len(files), cfg)
	reports, errs := fileproc.MapFiles(ctx, files, src, func(p *parser.Parser, path string, content []byte) (*fileCheck, error) {
		return checkOne(p, path, content, cfg, targets, reportCache)
	})
	done()

	flagged := 0
	var rows [][]string
	var data []fileCheck
	for _, r := range reports {
		if r == nil {
			continue
		}
		data = append(data, *r)
		if !r.Flagged {
			continue
		}
		flagged++
		rows = append(rows, []string{r.File, describeFindings(r)})
	}

	table := output.NewTable(
		"Check Results",
		[]string{"File", "Findings"},
		rows,
		[]string{
			"Files checked: " + itoa(len(data)),
			"Files flagged: " + itoa(flagged),
		},
		data,
	)
	if err := formatter.Output(table); err != nil {
		return err
	}
	if formatter.Format() == output.FormatText {
		if flagged > 0 {
			formatter.Error("%d of %d files flagged", flagged, len(data))
		} else {
			formatter.Success("All files passed")
		}
	}

	if errs.HasErrors() {
		return errs
	}
	if flagged > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

// checkOne runs every enabled check over one file, consulting the
// report cache first. The tree is parsed once and shared.
func checkOne(p *parser.Parser, path string, content []byte, cfg *config.Config, targets []string, reportCache *cache.Cache) (*fileCheck, error) {
	hash := cache.HashBytes(content)
	key := "check:" + path

	cached := &fileCheck{}
	if reportCache.GetReport(key, hash, cached) {
		return cached, nil
	}

	report := &fileCheck{File: path}

	lang := parser.DetectLanguage(path)
	if lang == parser.LangUnknown {
		lang = parser.LangJavaScript
	}
	tree, err := p.Parse(content, lang, path)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if cfg.Checks.LoadEvent.Enabled {
		verdict := &loadevent.Verdict{}
		loadevent.DetectEvents(tree.Tree, content, cfg.Checks.LoadEvent.Events, verdict)
		report.LoadEvent = verdict
		if verdict.Misuse {
			report.Flagged = true
		}
	}

	if cfg.Checks.Debug.Enabled && len(targets) > 0 {
		report.Debug = make(map[string]bool, len(targets))
		for _, target := range targets {
			verdict := &debugcall.Verdict{}
			debugcall.Detect(tree.Tree, content, target, verdict)
			report.Debug[target] = verdict.Found
			if verdict.Found {
				report.Flagged = true
			}
		}
	}

	if cfg.Checks.Comments.Enabled {
		verdict := &commented.Verdict{}
		commented.Detect(content, verdict)
		report.Comments = verdict
		if verdict.Found {
			report.Flagged = true
		}
	}

	if err := reportCache.SetReport(key, hash, report); err != nil {
		return report, nil //nolint:nilerr // cache write failure is not a check failure
	}
	return report, nil
}

// describeFindings summarizes why a file was flagged.
func describeFindings(r *fileCheck) string {
	var parts []string
	if r.LoadEvent != nil && r.LoadEvent.Misuse {
		parts = append(parts, "load handler invoked at registration")
	}
	if r.Comments != nil && r.Comments.Found {
		parts = append(parts, "commented-out code")
	}
	var debugTargets []string
	for target, found := range r.Debug {
		if found {
			debugTargets = append(debugTargets, target)
		}
	}
	if len(debugTargets) > 0 {
		parts = append(parts, "console.log in "+strings.Join(debugTargets, ", "))
	}
	return strings.Join(parts, "; ")
}
