package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"github.com/nathaniel-bennett/peggle"
	"github.com/nathaniel-bennett/peggle/casebook"
)

// TestCmd represents the test command
type TestCmd struct {
	Files []string `arg:"" optional:"" help:"Casebook files (default: cases from config)" type:"path"`
}

// Run executes every case of every casebook and prints a summary
func (cmd *TestCmd) Run(ctx *Context) error {
	p, err := loadProject(ctx)
	if err != nil {
		return err
	}

	files, err := p.caseFiles(cmd.Files)
	if err != nil {
		return err
	}

	cache := peggle.NewCache(0)

	var results []casebook.Result

	for _, file := range files {
		book, err := casebook.LoadFile(file,
			casebook.WithCache(cache),
			casebook.WithCompileOptions(p.config.Options()...),
		)
		if err != nil {
			return err
		}

		bookResults := book.Run()
		results = append(results, bookResults...)

		ctx.Logger.WithFields(logrus.Fields{
			"file":  file,
			"cases": len(bookResults),
		}).Debug("ran casebook")
	}

	summary := casebook.Summarize(results)

	if !ctx.Quiet {
		for _, r := range results {
			switch {
			case !r.OK():
				color.Red("✗ %s:%d [%s] %v", r.Book, r.Case.Line, r.Section, r.Err)
			case ctx.Verbose:
				color.Green("✓ %s:%d [%s] %q", r.Book, r.Case.Line, r.Section, r.Case.Input)
			}
		}

		printSummary(summary)
	}

	if summary.Failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrTestsFailed, summary.Failed, summary.Total)
	}

	return nil
}

func printSummary(s casebook.Summary) {
	if s.Failed == 0 {
		color.Green("\n%d cases passed", s.Passed)
		return
	}

	color.Red("\n%d of %d cases failed", s.Failed, s.Total)
}
