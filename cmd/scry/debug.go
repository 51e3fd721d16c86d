package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/scry-dev/scry/internal/output"
	"github.com/scry-dev/scry/pkg/analyzer/debugcall"
)

func debugCmd() *cli.Command {
	return &cli.Command{
		Name:      "debug",
		Usage:     "Find console.log calls inside a named function",
		ArgsUsage: "[path...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "target",
				Aliases:  []string{"t"},
				Usage:    "Function name to search in",
				Required: true,
			},
			revFlag(),
		},
		Action: runDebug,
	}
}

func runDebug(c *cli.Context) error {
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

	a := debugcall.New(c.String("target"), debugcall.WithSource(src))
	defer a.Close()

	ctx, done := trackedContext(context.Background(), "Checking debug calls...", len(files), cfg)
	result, err := a.Analyze(ctx, files)
	done()
	if err != nil {
		return err
	}

	var rows [][]string
	for _, f := range result.Files {
		if !f.Verdict.Found {
			continue
		}
		for _, call := range f.Calls {
			rows = append(rows, []string{
				fmt.Sprintf("%s:%d", f.File, call.Line),
				call.Function,
			})
		}
	}

	table := output.NewTable(
		fmt.Sprintf("console.log in %s()", c.String("target")),
		[]string{"Location", "Function"},
		rows,
		[]string{
			"Files checked: " + itoa(result.Summary.TotalFiles),
			"Calls found: " + itoa(result.Summary.TotalCalls),
		},
		result,
	)
	return formatter.Output(table)
}
