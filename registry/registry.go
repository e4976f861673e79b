package registry

import (
	"context"
	"fmt"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Config configures a Registry.
type Config struct {
	ServerInfo ServerInfo
}

// ServerInfo describes this MCP server for initialize response.
type ServerInfo struct {
	Name    string
	Version string
}

// Registry is a small MCP tool registry: a fixed set of locally implemented
// tools served over JSON-RPC. Tools are listed in registration order.
type Registry struct {
	mu     sync.RWMutex
	config Config

	tools    []mcp.Tool
	handlers map[string]ToolHandler
}

// New creates a new Registry with the given config.
func New(cfg Config) *Registry {
	return &Registry{
		config:   cfg,
		handlers: make(map[string]ToolHandler),
	}
}

// Register registers a tool with its execution handler.
func (r *Registry) Register(tool mcp.Tool, handler ToolHandler) error {
	if tool.Name == "" {
		return fmt.Errorf("%w: tool name is required", ErrInvalidRequest)
	}
	if handler == nil {
		return fmt.Errorf("%w: handler is required", ErrInvalidRequest)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.handlers[tool.Name]; exists {
		return fmt.Errorf("tool %s already registered", tool.Name)
	}
	r.tools = append(r.tools, tool)
	r.handlers[tool.Name] = handler
	return nil
}

// ListAll returns all registered tools in registration order.
func (r *Registry) ListAll() []mcp.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tools := make([]mcp.Tool, len(r.tools))
	copy(tools, r.tools)
	return tools
}

// Execute runs a tool by name with the given arguments.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]any) (any, error) {
	r.mu.RLock()
	handler, ok := r.handlers[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}
	return handler(ctx, args)
}
