package registry

import "context"

// ToolHandler executes a local tool with the given arguments.
// It receives a context for cancellation and a map of arguments parsed from the MCP request.
// It returns the result as any (typically a map or struct) and an error if execution fails.
type ToolHandler func(ctx context.Context, args map[string]any) (any, error)
