package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"odoo-mcp-go/gateway"
)

// CreateRecord creates one record.
// Input:
// - `model` (required)
// - `values` (required) field name to value mapping
// Output: JSON {"id": <created id>, "message": "..."}
func CreateRecord(gw *gateway.Gateway) func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		model, err := req.RequireString("model")
		if err != nil {
			return mcp.NewToolResultError("'model' is required"), nil
		}
		values := valuesArg(req)
		if len(values) == 0 {
			return mcp.NewToolResultError("'values' is required"), nil
		}

		id, err := gw.CreateRecord(ctx, model, values)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Odoo error: %v", err)), nil
		}

		resp := map[string]any{"id": id, "message": fmt.Sprintf("Record created in %s", model)}
		b, _ := json.MarshalIndent(resp, "", "  ")
		return mcp.NewToolResultText(string(b)), nil
	}
}
