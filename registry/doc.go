// Package registry provides the MCP server surface of the book search tools.
//
// Registry holds a fixed set of locally implemented tools and answers the MCP
// protocol methods (initialize, tools/list, tools/call) over multiple
// transports (stdio, HTTP, SSE). Tool metadata is declared with the MCP SDK's
// Tool type; execution is a plain ToolHandler func.
//
// Errors returned by handlers are mapped onto JSON-RPC codes by kind:
// validation failures become invalid-params, unknown tools become
// tool-not-found, everything else a tool execution failure with the typed
// message preserved.
//
// Example usage:
//
//	reg := registry.New(registry.Config{
//	    ServerInfo: registry.ServerInfo{
//	        Name:    "mcp-book-search",
//	        Version: "0.2.0",
//	    },
//	})
//
//	reg.Register(mcp.Tool{
//	    Name:        "search_book_in_area",
//	    Description: "Check lending availability of an ISBN across an area's libraries",
//	    InputSchema: map[string]any{
//	        "type": "object",
//	        "properties": map[string]any{
//	            "isbn":       map[string]any{"type": "string"},
//	            "prefecture": map[string]any{"type": "string"},
//	            "city":       map[string]any{"type": "string"},
//	        },
//	        "required": []string{"isbn", "prefecture"},
//	    },
//	}, handler)
//
//	registry.ServeStdio(ctx, reg)
package registry
