package main

import (
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/nathaniel-bennett/peggle"
)

// project is the loaded configuration and the directory it is relative to
type project struct {
	config  *peggle.Config
	baseDir string
}

func loadProject(ctx *Context) (*project, error) {
	config, err := peggle.LoadConfig(ctx.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	p := &project{config: config, baseDir: filepath.Dir(ctx.Config)}

	ctx.Logger.WithFields(logrus.Fields{
		"config":    ctx.Config,
		"max_depth": config.MaxDepth,
	}).Debug("loaded configuration")

	return p, nil
}

// grammarFiles returns explicit paths, or the configured grammar globs
func (p *project) grammarFiles(explicit []string) ([]string, error) {
	if len(explicit) > 0 {
		return explicit, nil
	}

	files, err := p.config.GrammarFiles(p.baseDir)
	if err != nil {
		return nil, err
	}

	if len(files) == 0 {
		return nil, ErrNoGrammarFiles
	}

	return files, nil
}

// caseFiles returns explicit paths, or the configured casebook globs
func (p *project) caseFiles(explicit []string) ([]string, error) {
	if len(explicit) > 0 {
		return explicit, nil
	}

	files, err := p.config.CaseFiles(p.baseDir)
	if err != nil {
		return nil, err
	}

	if len(files) == 0 {
		return nil, ErrNoCaseFiles
	}

	return files, nil
}

func (p *project) loadGrammar(ctx *Context, path string) (*peggle.Grammar, error) {
	g, err := peggle.LoadGrammar(path, p.config.Options()...)
	if err != nil {
		return nil, err
	}

	ctx.Logger.WithFields(logrus.Fields{
		"grammar": path,
		"rules":   len(g.RuleNames()),
	}).Debug("compiled grammar")

	return g, nil
}

// resolveGrammar picks the explicit grammar file, or the single configured one
func (p *project) resolveGrammar(ctx *Context, path string) (*peggle.Grammar, error) {
	if path == "" {
		files, err := p.grammarFiles(nil)
		if err != nil {
			return nil, err
		}

		if len(files) > 1 {
			return nil, fmt.Errorf("%w: %d configured, choose one with --grammar", ErrAmbiguousGrammar, len(files))
		}

		path = files[0]
	}

	return p.loadGrammar(ctx, path)
}
