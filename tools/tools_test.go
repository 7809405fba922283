package tools_test

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"odoo-mcp-go/gateway"
	"odoo-mcp-go/internal/config"
	"odoo-mcp-go/internal/odootest"
	"odoo-mcp-go/tools"
)

func newFixture(t *testing.T) (*odootest.Server, *gateway.Gateway) {
	t.Helper()
	srv := odootest.New()
	t.Cleanup(srv.Close)
	srv.AddModel("res.partner", "Contact", map[string]map[string]any{
		"name":  {"string": "Name", "type": "char", "required": true},
		"email": {"string": "Email", "type": "char", "required": false},
	})
	gw := gateway.New(config.Odoo{
		URL:      srv.URL(),
		Database: srv.DB,
		Username: srv.User,
		Password: srv.Key,
	})
	return srv, gw
}

func callReq(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func textOf(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("result has no content")
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want TextContent", res.Content[0])
	}
	return tc.Text
}

func TestConnectTool(t *testing.T) {
	_, gw := newFixture(t)

	res, err := tools.Connect(gw)(context.Background(), callReq("connect", nil))
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", textOf(t, res))
	}
	if got := textOf(t, res); !strings.Contains(got, "18.0") {
		t.Fatalf("text = %q, want server serie", got)
	}
}

func TestListModelsTool(t *testing.T) {
	_, gw := newFixture(t)

	res, err := tools.ListModels(gw)(context.Background(), callReq("list_models", nil))
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if got := textOf(t, res); !strings.Contains(got, "res.partner") {
		t.Fatalf("text = %q, want res.partner", got)
	}
}

func TestSearchRecordsTool(t *testing.T) {
	srv, gw := newFixture(t)
	srv.Seed("res.partner", map[string]any{"name": "Alice Tea", "email": "alice@example.com"})
	srv.Seed("res.partner", map[string]any{"name": "Bob Coffee"})

	handler := tools.SearchRecords(gw)
	ctx := context.Background()

	t.Run("ids by default", func(t *testing.T) {
		res, err := handler(ctx, callReq("search_records", map[string]any{"model": "res.partner"}))
		if err != nil {
			t.Fatalf("handler: %v", err)
		}
		got := textOf(t, res)
		if !strings.Contains(got, `"count": 2`) {
			t.Fatalf("text = %q, want count 2", got)
		}
	})

	t.Run("records when fields given", func(t *testing.T) {
		res, err := handler(ctx, callReq("search_records", map[string]any{
			"model":  "res.partner",
			"domain": []any{[]any{"name", "ilike", "tea"}},
			"fields": []any{"name"},
		}))
		if err != nil {
			t.Fatalf("handler: %v", err)
		}
		got := textOf(t, res)
		if !strings.Contains(got, "Alice Tea") || strings.Contains(got, "Bob Coffee") {
			t.Fatalf("text = %q", got)
		}
	})

	t.Run("no matches", func(t *testing.T) {
		res, err := handler(ctx, callReq("search_records", map[string]any{
			"model":  "res.partner",
			"domain": []any{[]any{"name", "=", "Nobody"}},
		}))
		if err != nil {
			t.Fatalf("handler: %v", err)
		}
		if got := textOf(t, res); got != "No records found." {
			t.Fatalf("text = %q", got)
		}
	})

	t.Run("missing model", func(t *testing.T) {
		res, err := handler(ctx, callReq("search_records", nil))
		if err != nil {
			t.Fatalf("handler: %v", err)
		}
		if !res.IsError {
			t.Fatal("want tool error for missing model")
		}
	})
}

func TestRecordLifecycleTools(t *testing.T) {
	srv, gw := newFixture(t)
	ctx := context.Background()

	// create
	res, err := tools.CreateRecord(gw)(ctx, callReq("create_record", map[string]any{
		"model":  "res.partner",
		"values": map[string]any{"name": "Carol"},
	}))
	if err != nil {
		t.Fatalf("create handler: %v", err)
	}
	if res.IsError {
		t.Fatalf("create failed: %s", textOf(t, res))
	}
	if got := textOf(t, res); !strings.Contains(got, `"id": 1`) {
		t.Fatalf("create text = %q", got)
	}

	// read back
	res, err = tools.ReadRecord(gw)(ctx, callReq("read_record", map[string]any{
		"model":     "res.partner",
		"record_id": float64(1),
	}))
	if err != nil {
		t.Fatalf("read handler: %v", err)
	}
	if got := textOf(t, res); !strings.Contains(got, "Carol") {
		t.Fatalf("read text = %q", got)
	}

	// update
	res, err = tools.UpdateRecord(gw)(ctx, callReq("update_record", map[string]any{
		"model":     "res.partner",
		"record_id": float64(1),
		"values":    map[string]any{"email": "carol@example.com"},
	}))
	if err != nil {
		t.Fatalf("update handler: %v", err)
	}
	if res.IsError {
		t.Fatalf("update failed: %s", textOf(t, res))
	}
	if srv.Record("res.partner", 1)["email"] != "carol@example.com" {
		t.Fatal("update did not apply")
	}

	// delete
	res, err = tools.DeleteRecord(gw)(ctx, callReq("delete_record", map[string]any{
		"model":     "res.partner",
		"record_id": float64(1),
	}))
	if err != nil {
		t.Fatalf("delete handler: %v", err)
	}
	if res.IsError {
		t.Fatalf("delete failed: %s", textOf(t, res))
	}
	if srv.Record("res.partner", 1) != nil {
		t.Fatal("record still present after delete")
	}

	// read after delete reports not found
	res, err = tools.ReadRecord(gw)(ctx, callReq("read_record", map[string]any{
		"model":     "res.partner",
		"record_id": float64(1),
	}))
	if err != nil {
		t.Fatalf("read handler: %v", err)
	}
	if !res.IsError {
		t.Fatal("want tool error for deleted record")
	}
	if got := textOf(t, res); !strings.Contains(got, "read_record") {
		t.Fatalf("error text = %q, want operation tag", got)
	}
}

func TestCreateRecordToolValidation(t *testing.T) {
	_, gw := newFixture(t)
	handler := tools.CreateRecord(gw)
	ctx := context.Background()

	t.Run("missing values", func(t *testing.T) {
		res, err := handler(ctx, callReq("create_record", map[string]any{"model": "res.partner"}))
		if err != nil {
			t.Fatalf("handler: %v", err)
		}
		if !res.IsError {
			t.Fatal("want tool error for missing values")
		}
	})

	t.Run("server rejects values", func(t *testing.T) {
		res, err := handler(ctx, callReq("create_record", map[string]any{
			"model":  "res.partner",
			"values": map[string]any{"email": "no-name@example.com"},
		}))
		if err != nil {
			t.Fatalf("handler: %v", err)
		}
		if !res.IsError {
			t.Fatal("want tool error for rejected values")
		}
		if got := textOf(t, res); !strings.Contains(got, "required") {
			t.Fatalf("error text = %q", got)
		}
	})
}

func TestGetModelFieldsTool(t *testing.T) {
	_, gw := newFixture(t)

	res, err := tools.GetModelFields(gw)(context.Background(), callReq("get_model_fields", map[string]any{
		"model": "res.partner",
	}))
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	got := textOf(t, res)
	if !strings.Contains(got, `"name"`) || !strings.Contains(got, `"required": true`) {
		t.Fatalf("text = %q", got)
	}
}
