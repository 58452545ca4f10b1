package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/schemalens/schemalens/internal/embedding"
	"github.com/schemalens/schemalens/internal/service"
)

// Server implements the Model Context Protocol (MCP) server.
// It exposes tools for external AI agents to interact with SchemaLens AI.
type Server struct {
	embeddings *service.EmbeddingService
	port       string
}

// NewServer creates a new MCP server.
func NewServer(embeddings *service.EmbeddingService, port string) *Server {
	return &Server{
		embeddings: embeddings,
		port:       port,
	}
}

// Tool represents an MCP tool definition.
type Tool struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema"`
}

// JSONRPCRequest represents a JSON-RPC 2.0 request.
type JSONRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// JSONRPCResponse represents a JSON-RPC 2.0 response.
type JSONRPCResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *RPCError   `json:"error,omitempty"`
}

// RPCError represents a JSON-RPC error.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Start begins the MCP server on the configured port.
func (s *Server) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/mcp", s.handleRPC)
	mux.HandleFunc("/mcp/sse", s.handleSSE)

	slog.Info("MCP server starting", "port", s.port)
	return http.ListenAndServe(":"+s.port, mux)
}

func (s *Server) handleRPC(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req JSONRPCRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, nil, -32700, "parse error")
		return
	}

	var result interface{}
	var err error

	switch req.Method {
	case "tools/list":
		result = s.listTools()
	case "tools/call":
		result, err = s.callTool(r.Context(), req.Params)
	case "initialize":
		result = map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"serverInfo": map[string]string{
				"name":    "schemalens-ai",
				"version": "1.0.0",
			},
			"capabilities": map[string]interface{}{
				"tools": map[string]bool{"listChanged": false},
			},
		}
	default:
		writeError(w, req.ID, -32601, "method not found")
		return
	}

	if err != nil {
		writeError(w, req.ID, -32603, err.Error())
		return
	}

	writeResult(w, req.ID, result)
}

func (s *Server) handleSSE(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	// Send initial endpoint message
	fmt.Fprintf(w, "event: endpoint\ndata: /mcp\n\n")
	w.(http.Flusher).Flush()

	// Keep connection alive
	<-r.Context().Done()
}

func (s *Server) listTools() map[string]interface{} {
	tools := []Tool{
		{
			Name:        "embed_schema",
			Description: "Embed a database table schema into a fixed-length vector",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"schema_text": {"type": "string", "description": "CREATE TABLE statement or schema description"},
					"entities": {"type": "array", "items": {"type": "string"}, "description": "Entity names (table, referenced tables)"},
					"primary_key": {"type": "string", "description": "Primary key column name"}
				},
				"required": ["schema_text"]
			}`),
		},
		{
			Name:        "search_schemas",
			Description: "Find stored table schemas similar to a schema description",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"schema_text": {"type": "string", "description": "CREATE TABLE statement or schema description"},
					"source_id": {"type": "string", "description": "Optional source ID to scope the search"},
					"limit": {"type": "integer", "description": "Maximum number of results"}
				},
				"required": ["schema_text"]
			}`),
		},
		{
			Name:        "list_generators",
			Description: "List available embedding generator variants",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {}
			}`),
		},
	}
	return map[string]interface{}{"tools": tools}
}

func (s *Server) callTool(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var req struct {
		Name      string          `json:"name"`
		Arguments json.RawMessage `json:"arguments"`
	}
	if err := json.Unmarshal(params, &req); err != nil {
		return nil, fmt.Errorf("invalid params: %w", err)
	}

	switch req.Name {
	case "embed_schema":
		var args struct {
			SchemaText string   `json:"schema_text"`
			Entities   []string `json:"entities"`
			PrimaryKey string   `json:"primary_key"`
		}
		json.Unmarshal(req.Arguments, &args)

		result, err := s.embeddings.EmbedSchema(ctx, embedding.Request{
			SchemaText: args.SchemaText,
			Entities:   args.Entities,
			PrimaryKey: args.PrimaryKey,
		})
		if err != nil {
			return nil, err
		}
		vector, _ := json.Marshal(result.Combined)
		return map[string]interface{}{
			"content": []map[string]interface{}{
				{"type": "text", "text": string(vector)},
			},
		}, nil

	case "search_schemas":
		var args struct {
			SchemaText string `json:"schema_text"`
			SourceID   string `json:"source_id"`
			Limit      int    `json:"limit"`
		}
		json.Unmarshal(req.Arguments, &args)

		results, err := s.embeddings.Search(ctx, embedding.Request{SchemaText: args.SchemaText}, args.SourceID, args.Limit)
		if err != nil {
			return nil, err
		}

		text := fmt.Sprintf("Found %d similar schemas:\n", len(results))
		for _, r := range results {
			text += fmt.Sprintf("- %s (similarity %.3f)\n%s\n", r.TableName, r.Similarity, r.SchemaText)
		}
		return map[string]interface{}{
			"content": []map[string]interface{}{
				{"type": "text", "text": text},
			},
		}, nil

	case "list_generators":
		return map[string]interface{}{
			"content": []map[string]interface{}{
				{"type": "text", "text": fmt.Sprintf("Available generators: %v", s.embeddings.Generators())},
			},
		}, nil

	default:
		return nil, fmt.Errorf("unknown tool: %s", req.Name)
	}
}

func writeResult(w http.ResponseWriter, id interface{}, result interface{}) {
	resp := JSONRPCResponse{JSONRPC: "2.0", ID: id, Result: result}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func writeError(w http.ResponseWriter, id interface{}, code int, message string) {
	resp := JSONRPCResponse{JSONRPC: "2.0", ID: id, Error: &RPCError{Code: code, Message: message}}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
