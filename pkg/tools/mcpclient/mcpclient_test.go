package mcpclient

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/germanamz/toolhost/pkg/tools/toolbox"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type remoteTool struct {
	name        string
	description string
	schema      string
	handler     func(ctx context.Context, input json.RawMessage) (string, error)
}

// setupTestServer creates an MCP server with the given tools, connects a
// client via in-memory transports, and returns the client. The server runs
// in a background goroutine tied to t.Cleanup.
func setupTestServer(t *testing.T, tools ...remoteTool) *MCPClient {
	t.Helper()

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "test-server",
		Version: "1.0.0",
	}, nil)

	for _, tool := range tools {
		handler := tool.handler
		server.AddTool(&mcp.Tool{
			Name:        tool.name,
			Description: tool.description,
			InputSchema: json.RawMessage(tool.schema),
		}, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			result, err := handler(ctx, req.Params.Arguments)
			if err != nil {
				return &mcp.CallToolResult{
					Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
					IsError: true,
				}, nil
			}
			return &mcp.CallToolResult{
				Content: []mcp.Content{&mcp.TextContent{Text: result}},
			}, nil
		})
	}

	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	serverDone := make(chan error, 1)
	go func() {
		serverDone <- server.Run(ctx, serverTransport)
	}()
	t.Cleanup(func() {
		cancel()
		<-serverDone
	})

	client, err := newFromTransport(ctx, clientTransport)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return client
}

func echoHandler(_ context.Context, input json.RawMessage) (string, error) {
	return string(input), nil
}

func TestListTools(t *testing.T) {
	client := setupTestServer(t,
		remoteTool{
			name:        "search",
			description: "Search the web",
			schema:      `{"type":"object","properties":{"q":{"type":"string","description":"Query"},"limit":{"type":"integer","default":5}},"required":["q"]}`,
			handler:     echoHandler,
		},
		remoteTool{
			name:        "read_file",
			description: "Read a file",
			schema:      `{"type":"object"}`,
			handler:     echoHandler,
		},
	)

	tools, err := client.ListTools(context.Background())
	require.NoError(t, err)
	require.Len(t, tools, 2)

	toolsByName := make(map[string]toolbox.Tool, len(tools))
	for _, tool := range tools {
		toolsByName[tool.Name] = tool
	}

	search, ok := toolsByName["search"]
	require.True(t, ok)
	assert.Equal(t, "Search the web", search.Description)
	assert.NotNil(t, search.Handler)
	assert.Equal(t, []toolbox.Param{
		{Name: "limit", Type: toolbox.TypeNumber, Default: float64(5)},
		{Name: "q", Type: toolbox.TypeString, Description: "Query", Required: true},
	}, search.Params)

	readFile, ok := toolsByName["read_file"]
	require.True(t, ok)
	assert.Equal(t, "Read a file", readFile.Description)
	assert.Empty(t, readFile.Params)
}

func TestCallToolJSONResult(t *testing.T) {
	client := setupTestServer(t, remoteTool{
		name:        "echo",
		description: "Echo input",
		schema:      `{"type":"object"}`,
		handler:     echoHandler,
	})

	out, err := client.CallTool(context.Background(), "echo", json.RawMessage(`{"msg":"hello"}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"msg": "hello"}, out)
}

func TestCallToolTextResult(t *testing.T) {
	client := setupTestServer(t, remoteTool{
		name:        "greet",
		description: "Say hello",
		schema:      `{"type":"object"}`,
		handler: func(context.Context, json.RawMessage) (string, error) {
			return "hello world", nil
		},
	})

	out, err := client.CallTool(context.Background(), "greet", nil)
	require.NoError(t, err)
	assert.Equal(t, "hello world", out)
}

func TestCallToolError(t *testing.T) {
	client := setupTestServer(t, remoteTool{
		name:        "fail",
		description: "Always fails",
		schema:      `{"type":"object"}`,
		handler: func(context.Context, json.RawMessage) (string, error) {
			return "", errors.New("something went wrong")
		},
	})

	out, err := client.CallTool(context.Background(), "fail", json.RawMessage(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "something went wrong")
	assert.Nil(t, out)
}

func TestCallToolInvalidArguments(t *testing.T) {
	client := setupTestServer(t)

	_, err := client.CallTool(context.Background(), "echo", json.RawMessage(`[1]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal arguments")
}

func TestImportedToolThroughToolBox(t *testing.T) {
	client := setupTestServer(t, remoteTool{
		name:        "greet",
		description: "Say hello",
		schema:      `{"type":"object","properties":{"lang":{"type":"string","default":"en"}}}`,
		handler:     echoHandler,
	})

	tools, err := client.ListTools(context.Background())
	require.NoError(t, err)

	tb := toolbox.New()
	require.NoError(t, tb.Register(tools...))

	result := tb.Call(context.Background(), toolbox.Invocation{ToolName: "greet"})
	require.False(t, result.IsError, result.Message)
	assert.Equal(t, map[string]any{"lang": "en"}, result.Payload)
}

func TestNewSSE_InvalidEndpoint(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := NewSSE(ctx, "http://127.0.0.1:1/invalid")
	assert.Error(t, err, "NewSSE should fail for unreachable endpoint")
}

func TestClose(t *testing.T) {
	client := setupTestServer(t, remoteTool{
		name:        "noop",
		description: "Does nothing",
		schema:      `{"type":"object"}`,
		handler:     echoHandler,
	})

	err := client.Close()
	assert.NoError(t, err)
}

func TestExtractText(t *testing.T) {
	tests := []struct {
		name   string
		result *mcp.CallToolResult
		want   string
	}{
		{
			name: "single text",
			result: &mcp.CallToolResult{
				Content: []mcp.Content{&mcp.TextContent{Text: "hello"}},
			},
			want: "hello",
		},
		{
			name: "multiple text",
			result: &mcp.CallToolResult{
				Content: []mcp.Content{
					&mcp.TextContent{Text: "a"},
					&mcp.TextContent{Text: "b"},
				},
			},
			want: "a\nb",
		},
		{
			name: "empty content",
			result: &mcp.CallToolResult{
				Content: []mcp.Content{},
			},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractText(tt.result))
		})
	}
}

func TestDecodeText(t *testing.T) {
	assert.Equal(t, map[string]any{"a": float64(1)}, decodeText(`{"a":1}`))
	assert.Equal(t, "plain words", decodeText("plain words"))
	assert.Equal(t, "", decodeText(""))
}

func TestFromSDKTool(t *testing.T) {
	sdkTool := &mcp.Tool{
		Name:        "test",
		Description: "A test tool",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name": map[string]any{"type": "string"},
			},
			"required": []any{"name"},
		},
	}

	client := &MCPClient{}
	tool, err := fromSDKTool(sdkTool, client)
	require.NoError(t, err)
	assert.Equal(t, "test", tool.Name)
	assert.Equal(t, "A test tool", tool.Description)
	assert.Equal(t, []toolbox.Param{{Name: "name", Type: toolbox.TypeString, Required: true}}, tool.Params)
	assert.NotNil(t, tool.Handler)
}

func TestFromSDKToolNoSchema(t *testing.T) {
	tool, err := fromSDKTool(&mcp.Tool{Name: "bare"}, &MCPClient{})
	require.NoError(t, err)
	assert.Empty(t, tool.Params)
}
