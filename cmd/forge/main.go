package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/forgekit/forge/internal/mcptools"
	"github.com/forgekit/forge/internal/mergedoc"
)

// version is set by goreleaser at build time.
var version = "dev"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var (
		serveMCP    bool
		mcpHTTPAddr string
		showVersion bool
	)

	fs := flag.NewFlagSet("forge", flag.ContinueOnError)
	fs.BoolVar(&serveMCP, "serve-mcp", false, "run as MCP server on stdio")
	fs.StringVar(&mcpHTTPAddr, "mcp-http", "", "serve MCP over HTTP on this address instead of stdio")
	fs.BoolVar(&showVersion, "version", false, "print version and exit")
	fs.Usage = usage(fs)

	if err := fs.Parse(args); err != nil {
		return err
	}

	if showVersion {
		fmt.Println(version)
		return nil
	}

	if serveMCP || mcpHTTPAddr != "" {
		return serveMCPServer(mcpHTTPAddr)
	}

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return fmt.Errorf("no command given")
	}

	switch rest[0] {
	case "init":
		return runInit(rest[1:])
	case "merge":
		return runMerge(rest[1:])
	case "status":
		return runStatus(rest[1:])
	default:
		fs.Usage()
		return fmt.Errorf("unknown command %q", rest[0])
	}
}

func usage(fs *flag.FlagSet) func() {
	return func() {
		fmt.Fprintf(fs.Output(), `forge manages agent-instruction files.

Usage:
  forge init [flags] [dir]     generate AGENTS.md, merging with any existing file
  forge merge [flags]          merge two instruction documents directly
  forge status [dir]           report the state of the instruction file
  forge --serve-mcp            run as an MCP server on stdio
  forge --mcp-http addr        run as an MCP server over HTTP

Flags:
`)
		fs.PrintDefaults()
	}
}

// serveMCPServer blocks serving MCP tools until interrupted.
func serveMCPServer(httpAddr string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc := mcptools.NewForgeService(nil, mergedoc.MergeOptions{})
	server := mcptools.NewForgeMCPServer(svc)

	if httpAddr != "" {
		return mcptools.RunMCPServerHTTP(ctx, server, httpAddr)
	}
	return mcptools.RunMCPServerStdio(ctx, server)
}
