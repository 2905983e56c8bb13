package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pagebridge/pagebridge/metrics"
	"github.com/pagebridge/pagebridge/patch"
)

// MCPVersion is the protocol revision this server implements.
const MCPVersion = "2024-11-05"

// MCPRequest represents an incoming MCP JSON-RPC request.
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an MCP JSON-RPC response.
type MCPResponse struct {
	JSONRPC string    `json:"jsonrpc"`
	ID      any       `json:"id"`
	Result  any       `json:"result,omitempty"`
	Error   *MCPError `json:"error,omitempty"`
}

// MCPError is a JSON-RPC error object.
type MCPError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// HandleRequest processes an MCP request and returns a response.
func (s *Server) HandleRequest(ctx context.Context, req MCPRequest) MCPResponse {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(ctx, req.ID)
	case "tools/list":
		return s.handleToolsList(ctx, req.ID)
	case "tools/call":
		return s.handleToolsCall(ctx, req.ID, req.Params)
	default:
		return MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &MCPError{
				Code:    ErrCodeMethodNotFound,
				Message: fmt.Sprintf("method %s not found", req.Method),
			},
		}
	}
}

func (s *Server) handleInitialize(ctx context.Context, id any) MCPResponse {
	result := map[string]any{
		"protocolVersion": MCPVersion,
		"capabilities": map[string]any{
			"tools": map[string]any{},
		},
		"serverInfo": map[string]any{
			"name":    s.config.ServerInfo.Name,
			"version": s.config.ServerInfo.Version,
		},
	}

	return MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	}
}

func (s *Server) handleToolsList(ctx context.Context, id any) MCPResponse {
	tools := s.tools()

	mcpTools := make([]map[string]any, 0, len(tools))
	for _, tool := range tools {
		mcpTools = append(mcpTools, map[string]any{
			"name":        tool.Name,
			"description": tool.Description,
			"inputSchema": tool.InputSchema,
		})
	}

	return MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result:  map[string]any{"tools": mcpTools},
	}
}

type toolsCallParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

func (s *Server) handleToolsCall(ctx context.Context, id any, params json.RawMessage) MCPResponse {
	var callParams toolsCallParams
	if err := json.Unmarshal(params, &callParams); err != nil {
		return MCPResponse{
			JSONRPC: "2.0",
			ID:      id,
			Error: &MCPError{
				Code:    ErrCodeInvalidParams,
				Message: err.Error(),
			},
		}
	}
	if callParams.Arguments == nil {
		callParams.Arguments = map[string]any{}
	}

	result, err := s.Execute(ctx, callParams.Name, callParams.Arguments)
	if err != nil {
		metrics.ToolCalls.WithLabelValues(callParams.Name, "error").Inc()
		return MCPResponse{
			JSONRPC: "2.0",
			ID:      id,
			Error:   toMCPError(err),
		}
	}

	metrics.ToolCalls.WithLabelValues(callParams.Name, "ok").Inc()
	return MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	}
}

// toMCPError maps the error taxonomy onto JSON-RPC codes. Remote store
// messages pass through verbatim.
func toMCPError(err error) *MCPError {
	var verr *patch.ValidationError
	switch {
	case errors.Is(err, ErrToolNotFound):
		return &MCPError{Code: ErrCodeToolNotFound, Message: err.Error()}
	case errors.As(err, &verr):
		return &MCPError{Code: ErrCodeInvalidParams, Message: err.Error()}
	default:
		return &MCPError{Code: ErrCodeToolExecFailed, Message: err.Error()}
	}
}
