package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// trafficLoggingMiddleware logs MCP traffic in one direction. Incoming
// workflow commands are logged by tool name at info; full request and
// response payloads only at debug.
func trafficLoggingMiddleware(logger *slog.Logger, direction string) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			if logger == nil {
				return next(ctx, method, req)
			}

			sessionID := ""
			var params any
			if req != nil {
				if session := req.GetSession(); session != nil {
					sessionID = session.ID()
				}
				params = req.GetParams()
			}

			if direction == "inbound" && method == "tools/call" {
				if call, ok := params.(*sdkmcp.CallToolParams); ok && call != nil {
					logger.Info("workflow command", "tool", call.Name, "session_id", sessionID)
				}
			}

			debug := logger.Enabled(ctx, slog.LevelDebug)
			if debug {
				logger.Debug("mcp traffic", "direction", direction, "stage", "request", "method", method, "session_id", sessionID, "params", payloadString(params))
			}

			result, err := next(ctx, method, req)

			if debug && !strings.HasPrefix(method, "notifications/") {
				logger.Debug("mcp traffic", "direction", direction, "stage", "response", "method", method, "session_id", sessionID, "result", payloadString(result), "error", err)
			}

			return result, err
		}
	}
}

func payloadString(payload any) string {
	if payload == nil {
		return "<nil>"
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprintf("%T", payload)
	}
	return string(data)
}
