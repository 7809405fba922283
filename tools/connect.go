package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"odoo-mcp-go/gateway"
)

// Connect (re)authenticates against Odoo with the configured
// credentials. No input. Output: plain confirmation text.
func Connect(gw *gateway.Gateway) func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		serie, err := gw.Connect(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Odoo error: %v", err)), nil
		}
		if serie == "" {
			return mcp.NewToolResultText("Connected to Odoo."), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Connected to Odoo %s.", serie)), nil
	}
}
