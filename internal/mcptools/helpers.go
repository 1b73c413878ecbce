// Package mcptools exposes the wardrobe engine as MCP tools over stdio.
//
// Every tool is a struct with its dependencies injected through a
// constructor, a Definition returning the mcp.Tool schema and a Handle
// method processing the call. Engine errors are reported as tool errors,
// never as protocol errors.
package mcptools

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/erazemk/garderoba/internal/composer"
	"github.com/erazemk/garderoba/internal/model"
)

// Session holds the last proposal of an MCP session. Handlers may run
// concurrently.
type Session struct {
	mu   sync.Mutex
	last *composer.Proposal
}

// Last returns the most recent proposal, or nil.
func (s *Session) Last() *composer.Proposal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

func (s *Session) remember(p *composer.Proposal) {
	s.mu.Lock()
	s.last = p
	s.mu.Unlock()
}

// intArg extracts an integer argument, returning defaultVal if the key is
// missing or not a number (JSON numbers are float64).
func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}

// idArg extracts a positive ID argument.
func idArg(req mcp.CallToolRequest, key string) (int64, error) {
	id := intArg(req, key, 0)
	if id <= 0 {
		return 0, fmt.Errorf("'%s' is required and must be a positive number", key)
	}
	return int64(id), nil
}

// engineResult turns an engine error into a tool error with a readable
// prefix.
func engineResult(action string, err error) *mcp.CallToolResult {
	switch {
	case errors.Is(err, model.ErrNotFound):
		return mcp.NewToolResultError(fmt.Sprintf("%s: not found (%v)", action, err))
	case errors.Is(err, model.ErrInsufficientItems):
		return mcp.NewToolResultError(fmt.Sprintf("%s: not enough clean items (%v)", action, err))
	case errors.Is(err, model.ErrAlreadyScheduled):
		return mcp.NewToolResultError(fmt.Sprintf("%s: that day already has an outfit", action))
	default:
		return mcp.NewToolResultError(fmt.Sprintf("%s: %v", action, err))
	}
}

// jsonResult renders v as indented JSON text.
func jsonResult(v any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding result: %v", err))
	}
	return mcp.NewToolResultText(string(data))
}
