package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"odoo-mcp-go/gateway"
)

// UpdateRecord writes values onto an existing record.
// Input:
// - `model` (required)
// - `record_id` (required)
// - `values` (required) fields to change
// Output: JSON {"updated": true, "message": "..."}
func UpdateRecord(gw *gateway.Gateway) func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		model, err := req.RequireString("model")
		if err != nil {
			return mcp.NewToolResultError("'model' is required"), nil
		}
		id, err := req.RequireInt("record_id")
		if err != nil {
			return mcp.NewToolResultError("'record_id' is required"), nil
		}
		values := valuesArg(req)
		if len(values) == 0 {
			return mcp.NewToolResultError("'values' is required"), nil
		}

		ok, err := gw.UpdateRecord(ctx, model, id, values)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Odoo error: %v", err)), nil
		}

		resp := map[string]any{"updated": ok, "message": fmt.Sprintf("Record %s/%d updated", model, id)}
		b, _ := json.MarshalIndent(resp, "", "  ")
		return mcp.NewToolResultText(string(b)), nil
	}
}
