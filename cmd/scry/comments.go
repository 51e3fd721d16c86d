package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/scry-dev/scry/internal/output"
	"github.com/scry-dev/scry/pkg/analyzer/commented"
)

func commentsCmd() *cli.Command {
	return &cli.Command{
		Name:      "comments",
		Aliases:   []string{"cc"},
		Usage:     "Flag commented-out code",
		ArgsUsage: "[path...]",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "annotations",
				Usage: "Comment markers that are never flagged",
			},
			revFlag(),
		},
		Action: runComments,
	}
}

func runComments(c *cli.Context) error {
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

	annotations := c.StringSlice("annotations")
	if len(annotations) == 0 {
		annotations = cfg.Checks.Comments.Annotations
	}

	a := commented.New(
		commented.WithAnnotations(annotations),
		commented.WithSource(src),
	)
	defer a.Close()

	ctx, done := trackedContext(context.Background(), "Checking comments...", len(files), cfg)
	result, err := a.Analyze(ctx, files)
	done()
	if err != nil {
		return err
	}

	var rows [][]string
	for _, f := range result.Files {
		for _, item := range f.Items {
			rows = append(rows, []string{
				fmt.Sprintf("%s:%d", f.File, item.Line),
				truncate(item.Text, 60),
			})
		}
	}

	table := output.NewTable(
		"Commented-Out Code",
		[]string{"Location", "Comment"},
		rows,
		[]string{
			"Files flagged: " + itoa(result.Summary.FlaggedFiles),
			"Lines flagged: " + itoa(result.Summary.FlaggedLines),
		},
		result,
	)
	return formatter.Output(table)
}
