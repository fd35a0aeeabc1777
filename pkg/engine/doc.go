// Package engine is the composition root of toolhost. It loads the YAML or
// TOML configuration, imports tools from configured MCP servers, merges them
// with the built-in tools and hands the resulting toolbox to the HTTP, MCP
// and CLI front-ends, which never assemble tools themselves.
package engine
