package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"odoo-mcp-go/gateway"
)

// SearchRecords searches a model with an Odoo domain.
// Input:
// - `model` (required) e.g. "res.partner"
// - `domain` (optional) list of [field, operator, value] triples
// - `fields` (optional) when set, full records with these fields come
//   back instead of ids
// - `limit` (optional, default 10)
// Output: JSON {"count": n, "ids": [...]} or the matching records.
func SearchRecords(gw *gateway.Gateway) func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		model, err := req.RequireString("model")
		if err != nil {
			return mcp.NewToolResultError("'model' is required"), nil
		}
		domain := domainArg(req)
		fields := req.GetStringSlice("fields", nil)
		limit := req.GetInt("limit", 10)

		if len(fields) > 0 {
			recs, err := gw.SearchRead(ctx, model, domain, fields, limit)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Odoo error: %v", err)), nil
			}
			if len(recs) == 0 {
				return mcp.NewToolResultText("No records found."), nil
			}
			b, _ := json.MarshalIndent(recs, "", "  ")
			return mcp.NewToolResultText(string(b)), nil
		}

		ids, err := gw.SearchRecords(ctx, model, domain, limit)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Odoo error: %v", err)), nil
		}
		if len(ids) == 0 {
			return mcp.NewToolResultText("No records found."), nil
		}
		b, _ := json.MarshalIndent(map[string]any{"count": len(ids), "ids": ids}, "", "  ")
		return mcp.NewToolResultText(string(b)), nil
	}
}
