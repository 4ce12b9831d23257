package mcptools

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// version is set by the linker at build time.
var version = "dev"

// NewForgeMCPServer creates an MCP server with the 3 forge tools
// registered: merge_instructions, classify_section, and
// get_instruction_status.
func NewForgeMCPServer(svc *ForgeService) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "forge",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "merge_instructions",
		Description: "Merge an existing agent-instructions document with the canonical template. Preserves user-authored sections, replaces workflow sections with the template version, and combines tool listings from both.",
	}, svc.MergeInstructions)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "classify_section",
		Description: "Classify a markdown section header into preserve, replace, merge, or unknown, with a confidence score.",
	}, svc.ClassifySection)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_instruction_status",
		Description: "Report the state of a project's instruction file: existence, sentinel markers, and a per-category section census.",
	}, svc.GetInstructionStatus)

	return server
}

// RunMCPServerStdio runs the MCP server on stdio transport, blocking
// until stdin is closed or the context is cancelled.
func RunMCPServerStdio(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}

// RunMCPServerHTTP starts an HTTP server exposing the forge MCP tools
// on the streamable transport.
func RunMCPServerHTTP(ctx context.Context, server *mcp.Server, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// Shutdown gracefully when context is cancelled.
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background())
	}()

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
