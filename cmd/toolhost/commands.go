package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/germanamz/toolhost/pkg/engine"
	"github.com/germanamz/toolhost/pkg/httpapi"
	"github.com/germanamz/toolhost/pkg/tools/discovery"
	"github.com/germanamz/toolhost/pkg/tools/mcpserver"
	"github.com/germanamz/toolhost/pkg/tools/toolbox"
)

func newCommandFlags(name, usage string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: toolhost %s\n\nFlags:\n", usage)
		fs.PrintDefaults()
	}

	return fs
}

func runServe(ctx context.Context, opts globalOptions, args []string, stderr io.Writer) error {
	fs := newCommandFlags("serve", "serve [flags]", stderr)
	addr := fs.String("addr", "", "listen address (overrides config and PORT)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	eng, logger, err := startEngine(ctx, opts, stderr, func(cfg *engine.Config) {
		if *addr != "" {
			cfg.Server.Addr = *addr
		}
	})
	if err != nil {
		return err
	}
	defer func() { _ = eng.Close() }()

	return httpapi.New(eng.Toolbox(), eng.HTTPOptions(), logger).Start(ctx)
}

func runMCP(ctx context.Context, opts globalOptions, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := newCommandFlags("mcp", "mcp", stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	eng, logger, err := startEngine(ctx, opts, stderr, nil)
	if err != nil {
		return err
	}
	defer func() { _ = eng.Close() }()

	cfg := eng.Config()
	srv := mcpserver.New(cfg.Name, cfg.Version)
	srv.Register(eng.Toolbox())

	logger.Info("MCP server starting", "tools", eng.Toolbox().Len())

	return srv.Serve(ctx, stdin, stdout)
}

func runTools(ctx context.Context, opts globalOptions, args []string, stdout, stderr io.Writer) error {
	fs := newCommandFlags("tools", "tools [flags]", stderr)
	asJSON := fs.Bool("json", false, "print the discovery document as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	eng, _, err := startEngine(ctx, opts, stderr, nil)
	if err != nil {
		return err
	}
	defer func() { _ = eng.Close() }()

	if *asJSON {
		return writeJSON(stdout, discovery.Build(eng.Toolbox(), eng.Config().Version))
	}

	_, err = fmt.Fprintln(stdout, renderToolTable(eng.Toolbox().Tools()))
	return err
}

func runCall(ctx context.Context, opts globalOptions, args []string, stdout, stderr io.Writer) error {
	fs := newCommandFlags("call", "call <tool> [json-parameters]", stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 1 || fs.NArg() > 2 {
		fs.Usage()
		return errUsage
	}

	inv := toolbox.Invocation{ToolName: fs.Arg(0)}
	if fs.NArg() == 2 {
		raw := json.RawMessage(fs.Arg(1))
		if !json.Valid(raw) {
			return fmt.Errorf("call: parameters are not valid JSON")
		}
		inv.Parameters = raw
	}

	eng, _, err := startEngine(ctx, opts, stderr, nil)
	if err != nil {
		return err
	}
	defer func() { _ = eng.Close() }()

	result := eng.Toolbox().Call(ctx, inv)
	if result.IsError {
		return fmt.Errorf("call %s: %s: %s", inv.ToolName, result.Kind, result.Message)
	}

	return writeJSON(stdout, result.Payload)
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}

	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
