// Package mcp exposes the assistant as an MCP server, so LLM clients can
// classify text and request replies as tools.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	ace "github.com/acelabs/ace"
)

// Assistant is the part of the engine the MCP surface needs.
type Assistant interface {
	Respond(ctx context.Context, text string) (ace.Reply, error)
	Classify(ctx context.Context, text string) (string, float64)
	Intents() []string
}

// ClassifyResponse is the structured result of the classify tool.
type ClassifyResponse struct {
	Intent     string  `json:"intent" jsonschema_description:"The predicted intent label"`
	Confidence float64 `json:"confidence" jsonschema_description:"Classifier confidence in the prediction"`
}

// Server wraps the assistant as an MCP server.
type Server struct {
	assistant Assistant
	mcpServer *server.MCPServer
}

// NewServer creates the MCP server.
func NewServer(assistant Assistant) *Server {
	s := &Server{
		assistant: assistant,
		mcpServer: server.NewMCPServer("ace-mcp", strings.TrimSpace(ace.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	classifyTool := mcp.NewTool("classify",
		mcp.WithDescription("Classify free text into one of the assistant's intent labels."),
		mcp.WithString("text", mcp.Required(), mcp.Description("The text to classify")),
		mcp.WithOutputSchema[ClassifyResponse](),
	)
	s.mcpServer.AddTool(classifyTool, mcp.NewStructuredToolHandler(s.handleClassify))

	respondTool := mcp.NewTool("respond",
		mcp.WithDescription("Run one assistant turn: classify the text, dispatch the intent, and return the reply."),
		mcp.WithString("text", mcp.Required(), mcp.Description("The user's input text")),
		mcp.WithOutputSchema[ace.Reply](),
	)
	s.mcpServer.AddTool(respondTool, mcp.NewStructuredToolHandler(s.handleRespond))

	s.mcpServer.AddTool(mcp.NewTool("list_intents",
		mcp.WithDescription("List the intent labels the assistant can dispatch."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jsonBytes, _ := json.Marshal(s.assistant.Intents())
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

func (s *Server) handleClassify(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ClassifyResponse, error) {
	text, _ := args["text"].(string)
	if strings.TrimSpace(text) == "" {
		return ClassifyResponse{}, fmt.Errorf("text must not be empty")
	}

	intent, confidence := s.assistant.Classify(ctx, text)
	return ClassifyResponse{Intent: intent, Confidence: confidence}, nil
}

func (s *Server) handleRespond(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ace.Reply, error) {
	text, _ := args["text"].(string)

	reply, err := s.assistant.Respond(ctx, text)
	if err != nil {
		return ace.Reply{}, fmt.Errorf("respond failed: %w", err)
	}
	return reply, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource("ace://intents", "Registered Intents",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, _ := json.Marshal(s.assistant.Intents())

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "ace://intents",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
