// Package tools provides the tool registry and its MCP (Model Context
// Protocol) integration.
//
// It is organized into sub-packages:
//   - [github.com/germanamz/toolhost/pkg/tools/toolbox]: Tool type and ToolBox registry for registering, listing, and calling tools
//   - [github.com/germanamz/toolhost/pkg/tools/discovery]: discovery document describing every tool with a JSON Schema
//   - [github.com/germanamz/toolhost/pkg/tools/mcpclient]: MCP client that imports tools from external MCP servers
//   - [github.com/germanamz/toolhost/pkg/tools/mcpserver]: MCP server that exposes a ToolBox over the MCP protocol
//
// The toolbox sub-package is the foundation layer. The other packages depend
// on toolbox for the Tool type but are independent of each other.
// The mcpclient and mcpserver packages are thin wrappers around the official
// MCP Go SDK (github.com/modelcontextprotocol/go-sdk).
package tools
