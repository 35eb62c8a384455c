package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jonwraymond/toolrepl/engine"
)

// executeArgs are the arguments of the execute_go tool.
type executeArgs struct {
	Code  string `json:"code" jsonschema:"Go code to execute"`
	Reset bool   `json:"reset,omitempty" jsonschema:"Reset the session (clear all variables)"`
}

// listArgs are the (empty) arguments of the list_variables tool.
type listArgs struct{}

// installArgs are the arguments of the install_package tool.
type installArgs struct {
	Package string `json:"package" jsonschema:"Package import path to install (e.g. 'golang.org/x/text')"`
}

// registerTools wires the three-tool surface onto the MCP server.
func registerTools(srv *mcp.Server, s *Server) {
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "execute_go",
		Description: "Execute Go code and return the output. Variables persist between executions.",
	}, s.handleExecute)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "list_variables",
		Description: "List all variables in the current session",
	}, s.handleListVariables)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "install_package",
		Description: "Install a Go package and import it into the session",
	}, s.handleInstall)
}

func (s *Server) handleExecute(ctx context.Context, req *mcp.CallToolRequest, args executeArgs) (*mcp.CallToolResult, any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	resp, err := s.cfg.Executor.Execute(engine.Request{Code: args.Code, Reset: args.Reset})
	if err != nil {
		// Protocol failure (missing code, broken reset): raised to the
		// transport rather than shaped as content.
		return nil, nil, err
	}
	if resp.Text != "" {
		return textResult(resp.Text), nil, nil
	}
	return jsonResult(resp.Document), nil, nil
}

func (s *Server) handleListVariables(ctx context.Context, req *mcp.CallToolRequest, args listArgs) (*mcp.CallToolResult, any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return jsonResult(map[string]any{"variables": s.cfg.Variables.Variables()}), nil, nil
}

func (s *Server) handleInstall(ctx context.Context, req *mcp.CallToolRequest, args installArgs) (*mcp.CallToolResult, any, error) {
	if args.Package == "" {
		return nil, nil, ErrMissingPackage
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.cfg.Installer.Install(ctx, args.Package)
	if out.Error != "" {
		s.logf("install %s failed: %s", args.Package, out.Error)
	}
	return jsonResult(out), nil, nil
}

// jsonResult encodes doc as the single text content block of a response.
// A value the encoder rejects degrades to an error document.
func jsonResult(doc any) *mcp.CallToolResult {
	data, err := json.Marshal(doc)
	if err != nil {
		data, _ = json.Marshal(engine.Envelope{
			Error: fmt.Sprintf("unserializable result: %v", err),
		})
	}
	return textResult(string(data))
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}
