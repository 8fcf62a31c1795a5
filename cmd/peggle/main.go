package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "v0.1.0"

// Context represents the global context for commands
type Context struct {
	Config  string
	Verbose bool
	Quiet   bool
	Logger  *logrus.Logger
}

var CLI struct {
	Config  string     `help:"Configuration file path" default:"peggle.yaml"`
	Verbose bool       `help:"Enable verbose output" short:"v"`
	Quiet   bool       `help:"Suppress output" short:"q"`
	Check   CheckCmd   `cmd:"" help:"Compile grammar files and report errors"`
	Match   MatchCmd   `cmd:"" help:"Parse input with a grammar rule and print the record"`
	Explain ExplainCmd `cmd:"" help:"Show the compiled form of a grammar rule"`
	Gen     GenCmd     `cmd:"" help:"Generate Go structs for a grammar"`
	Test    TestCmd    `cmd:"" help:"Run casebook files"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

// VersionCmd represents the version command
type VersionCmd struct{}

// Run executes the version command
func (cmd *VersionCmd) Run() error {
	fmt.Println("peggle " + version)
	return nil
}

func newLogger(verbose, quiet bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	switch {
	case verbose:
		logger.SetLevel(logrus.DebugLevel)
	case quiet:
		logger.SetLevel(logrus.ErrorLevel)
	default:
		logger.SetLevel(logrus.WarnLevel)
	}

	return logger
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("peggle"),
		kong.Description("Compile pegex grammars, parse text into records and run casebooks."),
	)

	appCtx := &Context{
		Config:  CLI.Config,
		Verbose: CLI.Verbose,
		Quiet:   CLI.Quiet,
		Logger:  newLogger(CLI.Verbose, CLI.Quiet),
	}

	err := ctx.Run(appCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
