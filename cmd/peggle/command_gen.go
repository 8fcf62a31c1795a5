package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"

	"github.com/nathaniel-bennett/peggle/gogen"
)

// GenCmd represents the gen command
type GenCmd struct {
	Grammar string `short:"g" help:"Grammar file (default: the configured grammar)" type:"path"`
	Package string `short:"p" help:"Package name (default from config)"`
	Output  string `short:"o" help:"Output file; stdout when empty (default from config)" type:"path"`
}

// Run generates Go structs for every rule of the grammar
func (cmd *GenCmd) Run(ctx *Context) error {
	p, err := loadProject(ctx)
	if err != nil {
		return err
	}

	g, err := p.resolveGrammar(ctx, cmd.Grammar)
	if err != nil {
		return err
	}

	pkg := cmd.Package
	if pkg == "" {
		pkg = p.config.Generate.Package
	}

	output := cmd.Output
	if output == "" {
		output = p.config.Generate.Output
	}

	var buf bytes.Buffer

	err = gogen.New(g, gogen.WithPackageName(pkg)).Generate(&buf)
	if err != nil {
		return fmt.Errorf("failed to generate Go code: %w", err)
	}

	if output == "" {
		_, err = os.Stdout.Write(buf.Bytes())
		return err
	}

	if ctx.Verbose {
		color.Blue("Writing package %s to %s", pkg, output)
	}

	err = os.MkdirAll(filepath.Dir(output), 0o755)
	if err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	err = os.WriteFile(output, buf.Bytes(), 0o644)
	if err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	if !ctx.Quiet {
		color.Green("✓ Generated %s", output)
	}

	return nil
}
