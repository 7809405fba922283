package tools

import "github.com/mark3labs/mcp-go/mcp"

// Tool arguments arrive as decoded JSON, so a domain is already a
// []any of [field, operator, value] triples and values a generic map.
// These helpers pull them out without re-marshalling.

func domainArg(req mcp.CallToolRequest) []any {
	if v, ok := req.GetArguments()["domain"]; ok {
		if arr, ok := v.([]any); ok {
			return arr
		}
	}
	return nil
}

func valuesArg(req mcp.CallToolRequest) map[string]any {
	if v, ok := req.GetArguments()["values"]; ok {
		if m, ok := v.(map[string]any); ok {
			return m
		}
	}
	return nil
}
