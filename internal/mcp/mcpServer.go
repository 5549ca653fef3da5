package mcp

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/asunkara/PDFChatAPI/internal/adapter/utils"
	"github.com/asunkara/PDFChatAPI/internal/config"
	"github.com/asunkara/PDFChatAPI/internal/handlers"
	"github.com/asunkara/PDFChatAPI/pkg/logger_i"
	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// The MCP surface exposes the same session controller as the HTTP handlers,
// so an agent can interrogate a document a human uploaded (or reset it).
// Uploads stay HTTP-only; shipping file bytes through tool calls is not
// supported.

var (
	logger     *logger_i.Logger
	serverOnce sync.Once
	mcpServer  *mcp.Server
)

const defaultSession = "default"

type AskInput struct {
	Question  string `json:"question" jsonschema:"the question to answer from the session's active document"`
	SessionId string `json:"session_id,omitempty" jsonschema:"session identifier; the shared default session when omitted"`
}

type SessionInput struct {
	SessionId string `json:"session_id,omitempty" jsonschema:"session identifier; the shared default session when omitted"`
}

// HTTPHandler returns the streamable MCP endpoint mounted on the router.
func HTTPHandler() http.Handler {
	serverOnce.Do(func() {
		logger = logger_i.NewLogger("MCP")
		var err error
		mcpServer, err = newServer()
		if err != nil {
			logger.Error("Could not build MCP server", "error", err)
		}
	})
	if mcpServer == nil {
		return http.NotFoundHandler()
	}
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return mcpServer }, nil)
}

func newServer() (*mcp.Server, error) {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "pdf-chat",
		Version: "1.0.0",
	}, nil)

	askSchema, err := jsonschema.For[AskInput](nil)
	if err != nil {
		return nil, fmt.Errorf("schema for ask tool: %w", err)
	}
	sessionSchema, err := jsonschema.For[SessionInput](nil)
	if err != nil {
		return nil, fmt.Errorf("schema for session tools: %w", err)
	}

	mcp.AddTool(server, &mcp.Tool{
		Name: "ask_pdf",
		Description: "Ask a question about the session's uploaded document. " +
			"The answer is grounded strictly in the document's retrieved chunks and cites pages.",
		InputSchema: askSchema,
	}, askPDF)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "document_info",
		Description: "Show which document is active for the session and how many chunks are indexed.",
		InputSchema: sessionSchema,
	}, documentInfo)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "reset_document",
		Description: "Delete the session's indexed chunks and clear its conversation history.",
		InputSchema: sessionSchema,
	}, resetDocument)

	return server, nil
}

func askPDF(ctx context.Context, _ *mcp.CallToolRequest, in AskInput) (*mcp.CallToolResult, any, error) {
	controller := handlers.GetSessionController()
	if controller == nil {
		return nil, nil, fmt.Errorf("service is not initialized")
	}

	answer, err := controller.HandleAsk(traced(ctx), sessionOf(in.SessionId), in.Question)
	if err != nil {
		return nil, nil, fmt.Errorf("ask failed: %w", err)
	}
	return textResult(answer.Text), nil, nil
}

func documentInfo(ctx context.Context, _ *mcp.CallToolRequest, in SessionInput) (*mcp.CallToolResult, any, error) {
	controller := handlers.GetSessionController()
	if controller == nil {
		return nil, nil, fmt.Errorf("service is not initialized")
	}

	session, _ := controller.Snapshot(traced(ctx), sessionOf(in.SessionId))
	if !session.HasDocument() {
		return textResult("No document uploaded for this session."), nil, nil
	}
	return textResult(fmt.Sprintf("Active document: %s (%d chunks indexed)", session.PDFName, session.ChunkCount)), nil, nil
}

func resetDocument(ctx context.Context, _ *mcp.CallToolRequest, in SessionInput) (*mcp.CallToolResult, any, error) {
	controller := handlers.GetSessionController()
	if controller == nil {
		return nil, nil, fmt.Errorf("service is not initialized")
	}

	if err := controller.HandleReset(traced(ctx), sessionOf(in.SessionId)); err != nil {
		return nil, nil, fmt.Errorf("reset failed: %w", err)
	}
	return textResult("Session reset."), nil, nil
}

func sessionOf(id string) string {
	if id == "" {
		return defaultSession
	}
	return id
}

func traced(ctx context.Context) context.Context {
	return context.WithValue(ctx, config.TRACE_ID_KEY, utils.GetNewUUID())
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}
