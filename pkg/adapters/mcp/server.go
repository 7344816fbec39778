// Package mcp exposes an nbtest client as a Model Context Protocol server,
// so AI agents can drive a notebook the same way a test harness does.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/nbtest"
	"github.com/aretw0/nbtest/internal/dto"
)

// CellResponse aligns the tool outputs across adapters.
type CellResponse struct {
	Index          int    `json:"index"`
	Type           string `json:"type"`
	Source         string `json:"source"`
	OutputText     string `json:"output_text"`
	ExecutionCount *int   `json:"execution_count,omitempty"`
}

// Server wraps an nbtest client and exposes it as an MCP Server.
type Server struct {
	client    *nbtest.Client
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(client *nbtest.Client) *Server {
	s := &Server{
		client:    client,
		mcpServer: server.NewMCPServer("nbtest-mcp", strings.TrimSpace(nbtest.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)

	lifecycle.Go(ctx, func(ctx context.Context) error {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
		return nil
	})

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		// Create a timeout context for the graceful shutdown
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		fmt.Println("\nShutdown signal received, shutting down server...")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slog.Debug("CORS Middleware", "method", r.Method, "path", r.URL.Path)
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: list_cells
	s.mcpServer.AddTool(mcp.NewTool("list_cells",
		mcp.WithDescription("List the notebook's cells with their indexes, types, and tags."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		nb := s.client.Notebook()
		type summary struct {
			Index int      `json:"index"`
			Type  string   `json:"type"`
			Name  string   `json:"name,omitempty"`
			Tags  []string `json:"tags,omitempty"`
		}
		summaries := make([]summary, nb.Len())
		for i, cell := range nb.Cells {
			meta, _ := dto.Decode(cell.Metadata)
			summaries[i] = summary{Index: i, Type: cell.Type, Name: meta.Name, Tags: meta.Tags}
		}
		jsonBytes, _ := json.Marshal(summaries)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	// TOOL: execute_cells
	executeTool := mcp.NewTool("execute_cells",
		mcp.WithDescription("Execute one or more cells by index or tag, in order."),
		mcp.WithString("refs", mcp.Required(), mcp.Description("Comma-separated cell references; numbers are indexes, anything else is a tag")),
		mcp.WithOutputSchema[[]CellResponse](),
	)
	s.mcpServer.AddTool(executeTool, mcp.NewStructuredToolHandler(s.handleExecute))

	// TOOL: cell_output
	outputTool := mcp.NewTool("cell_output",
		mcp.WithDescription("Read the concatenated text output of a cell."),
		mcp.WithString("ref", mcp.Required(), mcp.Description("Cell index or tag")),
	)
	s.mcpServer.AddTool(outputTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ref, err := parseRef(request.GetString("ref", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		text, err := s.client.OutputText(ref)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("cell output failed: %v", err)), nil
		}
		return mcp.NewToolResultText(text), nil
	})

	// TOOL: inject_code
	injectTool := mcp.NewTool("inject_code",
		mcp.WithDescription("Inject a code snippet as a new cell and execute it."),
		mcp.WithString("code", mcp.Required(), mcp.Description("Source code to inject")),
		mcp.WithOutputSchema[CellResponse](),
	)
	s.mcpServer.AddTool(injectTool, mcp.NewStructuredToolHandler(s.handleInject))

	// TOOL: get_value
	s.mcpServer.AddTool(mcp.NewTool("get_value",
		mcp.WithDescription("Extract a JSON-compatible variable value from the session."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Variable or expression name")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		value, err := s.client.Value(ctx, request.GetString("name", ""))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("get value failed: %v", err)), nil
		}
		jsonBytes, _ := json.Marshal(value)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

// Handler methods for structured tools

func (s *Server) handleExecute(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) ([]CellResponse, error) {
	raw, _ := args["refs"].(string)
	parts := strings.Split(raw, ",")
	refs := make([]nbtest.Ref, 0, len(parts))
	indexes := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		ref, err := parseRef(part)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)

		idx, err := strconv.Atoi(part)
		if err != nil {
			if idx, err = s.client.CellIndex(part); err != nil {
				return nil, fmt.Errorf("resolve %q: %w", part, err)
			}
		}
		indexes = append(indexes, idx)
	}

	cells, err := s.client.Execute(ctx, refs...)
	if err != nil {
		return nil, fmt.Errorf("execute failed: %w", err)
	}

	responses := make([]CellResponse, len(cells))
	for i, cell := range cells {
		responses[i] = CellResponse{
			Index:          indexes[i],
			Type:           cell.Type,
			Source:         string(cell.Source),
			OutputText:     cell.OutputText(),
			ExecutionCount: cell.ExecutionCount,
		}
	}
	return responses, nil
}

func (s *Server) handleInject(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (CellResponse, error) {
	code, _ := args["code"].(string)

	cell, err := s.client.Inject(ctx, code)
	if err != nil {
		return CellResponse{}, fmt.Errorf("inject failed: %w", err)
	}

	return CellResponse{
		Index:          s.client.Notebook().Len() - 1,
		Type:           cell.Type,
		Source:         string(cell.Source),
		OutputText:     cell.OutputText(),
		ExecutionCount: cell.ExecutionCount,
	}, nil
}

func (s *Server) registerResources() {
	// EXPOSE: nbtest://notebook
	s.mcpServer.AddResource(mcp.NewResource("nbtest://notebook", "Current Notebook Document",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.client.Notebook())
		if err != nil {
			return nil, fmt.Errorf("failed to serialize notebook: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "nbtest://notebook",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}

func parseRef(raw string) (nbtest.Ref, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("empty cell reference")
	}
	if idx, err := strconv.Atoi(raw); err == nil {
		return nbtest.Index(idx), nil
	}
	return nbtest.Tag(raw), nil
}
