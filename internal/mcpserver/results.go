package mcpserver

import (
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/eshaffer321/monarch-mcp/pkg/monarch"
)

// Error categories, prefixed onto every error result so the assistant can
// tell a bad argument from a dead session from a flaky remote.
const (
	categoryValidation = "validation"
	categoryAuth       = "auth"
	categoryNotFound   = "not_found"
	categoryRemote     = "remote"
)

const reauthHint = "Run the login-setup command to authenticate, then restart the MCP server."

// validationError reports a malformed or missing argument. Never follows a
// remote call.
func validationError(format string, args ...interface{}) *mcp.CallToolResult {
	return errorResult(categoryValidation, fmt.Sprintf(format, args...))
}

// authNeededError reports that no usable session is loaded.
func authNeededError() *mcp.CallToolResult {
	return errorResult(categoryAuth, "Not authenticated. "+reauthHint)
}

// remoteError converts a failed client call into an error result,
// distinguishing expired sessions and bad references from transient remote
// failures via the client's sentinel errors.
func remoteError(op string, err error, entityID string) *mcp.CallToolResult {
	switch {
	case monarch.IsAuthError(err):
		return errorResult(categoryAuth, "Session expired or invalid. "+reauthHint)
	case monarch.IsNotFound(err):
		if entityID != "" {
			return errorResult(categoryNotFound, fmt.Sprintf("%s: no such entity %q", op, entityID))
		}
		return errorResult(categoryNotFound, fmt.Sprintf("%s: entity not found", op))
	default:
		return errorResult(categoryRemote, fmt.Sprintf("%s: %v", op, err))
	}
}

func errorResult(category, msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("[%s] %s", category, msg)},
		},
		IsError: true,
	}
}
