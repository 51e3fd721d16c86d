package main

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/scry-dev/scry/internal/output"
	"github.com/scry-dev/scry/pkg/analyzer/loadevent"
)

func loadeventCmd() *cli.Command {
	return &cli.Command{
		Name:      "loadevent",
		Aliases:   []string{"le"},
		Usage:     "Verify page-ready handler registration (load/DOMContentLoaded)",
		ArgsUsage: "[path...]",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "events",
				Usage: "Event names treated as page-ready signals",
			},
			revFlag(),
		},
		Action: runLoadEvent,
	}
}

func runLoadEvent(c *cli.Context) error {
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

	events := c.StringSlice("events")
	if len(events) == 0 {
		events = cfg.Checks.LoadEvent.Events
	}

	a := loadevent.New(
		loadevent.WithEvents(events),
		loadevent.WithSource(src),
	)
	defer a.Close()

	ctx, done := trackedContext(context.Background(), "Checking load handlers...", len(files), cfg)
	result, err := a.Analyze(ctx, files)
	done()
	if err != nil {
		return err
	}

	return formatter.Output(loadEventTable(result))
}

func loadEventTable(result *loadevent.Analysis) *output.Table {
	var rows [][]string
	for _, f := range result.Files {
		registered := boolCell(f.Verdict.Registered)
		misuse := output.VerdictColor(f.Verdict.Misuse, boolCell(f.Verdict.Misuse))
		rows = append(rows, []string{f.File, registered, misuse, lineCell(f.Line)})
	}

	return output.NewTable(
		"Load Event Registration",
		[]string{"File", "Registered", "Misuse", "Line"},
		rows,
		[]string{
			"Total: " + itoa(result.Summary.TotalFiles),
			"Registered: " + itoa(result.Summary.Registered),
			"Misused: " + itoa(result.Summary.Misused),
			"",
		},
		result,
	)
}
