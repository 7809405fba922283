package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"odoo-mcp-go/gateway"
)

// GetModelFields returns the field definitions of a model: label, help,
// type and whether the field is required.
// Input: `model` (required)
// Output: JSON object keyed by field name.
func GetModelFields(gw *gateway.Gateway) func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		model, err := req.RequireString("model")
		if err != nil {
			return mcp.NewToolResultError("'model' is required"), nil
		}

		fields, err := gw.ModelFields(ctx, model)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Odoo error: %v", err)), nil
		}

		b, _ := json.MarshalIndent(fields, "", "  ")
		return mcp.NewToolResultText(string(b)), nil
	}
}
