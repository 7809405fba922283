package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"odoo-mcp-go/gateway"
)

// ReadRecord reads one record by id.
// Input:
// - `model` (required)
// - `record_id` (required)
// - `fields` (optional) subset of fields to return
// Output: the record as JSON.
func ReadRecord(gw *gateway.Gateway) func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		model, err := req.RequireString("model")
		if err != nil {
			return mcp.NewToolResultError("'model' is required"), nil
		}
		id, err := req.RequireInt("record_id")
		if err != nil {
			return mcp.NewToolResultError("'record_id' is required"), nil
		}
		fields := req.GetStringSlice("fields", nil)

		rec, err := gw.ReadRecord(ctx, model, id, fields)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Odoo error: %v", err)), nil
		}
		b, _ := json.MarshalIndent(rec, "", "  ")
		return mcp.NewToolResultText(string(b)), nil
	}
}
