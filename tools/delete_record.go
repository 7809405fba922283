package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"odoo-mcp-go/gateway"
)

// DeleteRecord removes one record.
// Input:
// - `model` (required)
// - `record_id` (required)
// Output: JSON {"deleted": true, "message": "..."}
func DeleteRecord(gw *gateway.Gateway) func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		model, err := req.RequireString("model")
		if err != nil {
			return mcp.NewToolResultError("'model' is required"), nil
		}
		id, err := req.RequireInt("record_id")
		if err != nil {
			return mcp.NewToolResultError("'record_id' is required"), nil
		}

		ok, err := gw.DeleteRecord(ctx, model, id)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Odoo error: %v", err)), nil
		}

		resp := map[string]any{"deleted": ok, "message": fmt.Sprintf("Record %s/%d deleted", model, id)}
		b, _ := json.MarshalIndent(resp, "", "  ")
		return mcp.NewToolResultText(string(b)), nil
	}
}
