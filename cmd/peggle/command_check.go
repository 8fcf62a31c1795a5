package main

import (
	"fmt"

	"github.com/fatih/color"
)

// CheckCmd represents the check command
type CheckCmd struct {
	Grammars []string `arg:"" optional:"" help:"Grammar files (default: grammars from config)" type:"path"`
}

// Run compiles every grammar and reports each result
func (cmd *CheckCmd) Run(ctx *Context) error {
	p, err := loadProject(ctx)
	if err != nil {
		return err
	}

	files, err := p.grammarFiles(cmd.Grammars)
	if err != nil {
		return err
	}

	failed := 0

	for _, file := range files {
		g, err := p.loadGrammar(ctx, file)
		if err != nil {
			failed++

			if !ctx.Quiet {
				color.Red("✗ %v", err)
			}

			continue
		}

		if !ctx.Quiet {
			color.Green("✓ %s (%d rules)", file, len(g.RuleNames()))
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d files", ErrCheckFailed, failed, len(files))
	}

	return nil
}
