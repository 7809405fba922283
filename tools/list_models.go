package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"odoo-mcp-go/gateway"
)

// ListModels returns the models registered on the server.
// Output: JSON array of {model, name}.
func ListModels(gw *gateway.Gateway) func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		models, err := gw.ListModels(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Odoo error: %v", err)), nil
		}
		if len(models) == 0 {
			return mcp.NewToolResultText("No models found."), nil
		}
		b, _ := json.MarshalIndent(models, "", "  ")
		return mcp.NewToolResultText(string(b)), nil
	}
}
