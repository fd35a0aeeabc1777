package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

const usageText = `Usage: toolhost [flags] <command> [command flags]

Commands:
  serve            Serve tools over HTTP until interrupted
  mcp              Serve tools over MCP on stdin/stdout
  tools            List the available tools
  call <tool> [p]  Invoke a tool with optional JSON parameters

Flags:
`

// errUsage reports a command line that could not be understood. Usage has
// already been printed.
var errUsage = errors.New("invalid usage")

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) && !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		cancel()
		os.Exit(1)
	}
}

// globalOptions are the flags accepted before the command name.
type globalOptions struct {
	configPath string
	envFile    string
	logLevel   string
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("toolhost", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usageText)
		fs.PrintDefaults()
	}

	var opts globalOptions
	fs.StringVar(&opts.configPath, "config", "", "path to configuration file (default: toolhost.yaml or toolhost.toml if present)")
	fs.StringVar(&opts.envFile, "env", ".env", "path to .env file (ignored if missing)")
	fs.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error (overrides config)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return errUsage
	}

	if err := loadDotEnv(opts.envFile); err != nil {
		return err
	}

	cmd, cmdArgs := fs.Arg(0), fs.Args()[1:]

	switch cmd {
	case "serve":
		return runServe(ctx, opts, cmdArgs, stderr)
	case "mcp":
		return runMCP(ctx, opts, cmdArgs, stdin, stdout, stderr)
	case "tools":
		return runTools(ctx, opts, cmdArgs, stdout, stderr)
	case "call":
		return runCall(ctx, opts, cmdArgs, stdout, stderr)
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n", cmd)
		fs.Usage()
		return errUsage
	}
}
