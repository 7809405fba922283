package odoo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client is a minimal Odoo JSON-RPC client. It holds the credentials
// and, after a successful Login, the authenticated uid. The client
// itself does no locking; callers serialize access to one session.
type Client struct {
	URL  string
	DB   string
	User string
	Key  string
	UID  int

	http *resty.Client
}

// New constructs a client with sensible defaults.
func New(url, db, user, key string) *Client {
	return &Client{
		URL:  url,
		DB:   db,
		User: user,
		Key:  key,
		http: resty.New().SetTimeout(15 * time.Second),
	}
}

// ModelInfo is one entry of the server's model registry (ir.model).
type ModelInfo struct {
	Model string `json:"model"`
	Name  string `json:"name"`
}

// call posts one JSON-RPC payload and returns the raw result. A JSON-RPC
// error object is surfaced as a typed error via mapError.
func (c *Client) call(ctx context.Context, service, method string, args []any) (json.RawMessage, error) {
	req := rpcRequest{
		JSONRPC: "2.0",
		Method:  "call",
		Params:  rpcParams{Service: service, Method: method, Args: args},
		ID:      1,
	}

	var out rpcResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&out).
		Post(c.URL)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("odoo http %s: %s", resp.Status(), resp.Body())
	}
	if out.Error != nil {
		return nil, mapError(out.Error)
	}
	return out.Result, nil
}

// executeKw forwards one model method call through the object service.
func (c *Client) executeKw(ctx context.Context, model, method string, args []any, kw map[string]any) (json.RawMessage, error) {
	if c.UID == 0 {
		return nil, &AuthError{Message: "not authenticated"}
	}
	callArgs := []any{c.DB, c.UID, c.Key, model, method, args}
	if kw != nil {
		callArgs = append(callArgs, kw)
	}
	return c.call(ctx, "object", "execute_kw", callArgs)
}

// Login authenticates and stores the returned uid. Odoo answers with the
// uid as a number, or false when the credentials are rejected.
func (c *Client) Login(ctx context.Context) error {
	raw, err := c.call(ctx, "common", "authenticate", []any{c.DB, c.User, c.Key, map[string]any{}})
	if err != nil {
		return err
	}

	var res any
	if err := json.Unmarshal(raw, &res); err != nil {
		return fmt.Errorf("decode login result: %w", err)
	}
	switch v := res.(type) {
	case float64:
		c.UID = int(v)
		return nil
	case bool:
		if !v {
			return &AuthError{Message: "invalid credentials"}
		}
	}
	return fmt.Errorf("unexpected login result: %s", raw)
}

// Version reports the server version info from the common service.
// It needs no authentication.
func (c *Client) Version(ctx context.Context) (map[string]any, error) {
	raw, err := c.call(ctx, "common", "version", []any{})
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode version result: %w", err)
	}
	return out, nil
}

// Search returns the ids matching domain, in server order.
func (c *Client) Search(ctx context.Context, model string, domain []any, limit int) ([]int, error) {
	kw := map[string]any{}
	if limit > 0 {
		kw["limit"] = limit
	}
	raw, err := c.executeKw(ctx, model, "search", []any{normalizeDomain(domain)}, kw)
	if err != nil {
		return nil, err
	}
	return decodeIDs(raw)
}

// Read fetches the given ids. An empty fields slice means all fields.
func (c *Client) Read(ctx context.Context, model string, ids []int, fields []string) ([]map[string]any, error) {
	kw := map[string]any{}
	if len(fields) > 0 {
		kw["fields"] = fields
	}
	raw, err := c.executeKw(ctx, model, "read", []any{ids}, kw)
	if err != nil {
		return nil, err
	}
	return decodeRecords(raw)
}

// SearchRead searches and reads in one round trip.
func (c *Client) SearchRead(ctx context.Context, model string, domain []any, fields []string, limit int) ([]map[string]any, error) {
	kw := map[string]any{}
	if limit > 0 {
		kw["limit"] = limit
	}
	if len(fields) > 0 {
		kw["fields"] = fields
	}
	raw, err := c.executeKw(ctx, model, "search_read", []any{normalizeDomain(domain)}, kw)
	if err != nil {
		return nil, err
	}
	return decodeRecords(raw)
}

// Create inserts one record and returns its server-assigned id.
func (c *Client) Create(ctx context.Context, model string, vals map[string]any) (int, error) {
	raw, err := c.executeKw(ctx, model, "create", []any{vals}, nil)
	if err != nil {
		return 0, err
	}
	var id float64
	if err := json.Unmarshal(raw, &id); err != nil {
		return 0, fmt.Errorf("unexpected create result: %s", raw)
	}
	return int(id), nil
}

// Write updates the given ids with vals.
func (c *Client) Write(ctx context.Context, model string, ids []int, vals map[string]any) (bool, error) {
	raw, err := c.executeKw(ctx, model, "write", []any{ids, vals}, nil)
	if err != nil {
		return false, err
	}
	return decodeBool(raw)
}

// Unlink deletes the given ids.
func (c *Client) Unlink(ctx context.Context, model string, ids []int) (bool, error) {
	raw, err := c.executeKw(ctx, model, "unlink", []any{ids}, nil)
	if err != nil {
		return false, err
	}
	return decodeBool(raw)
}

// FieldsGet returns the field definitions of a model, limited to the
// attributes useful to a caller deciding what to read or write.
func (c *Client) FieldsGet(ctx context.Context, model string) (map[string]map[string]any, error) {
	kw := map[string]any{
		"attributes": []string{"string", "help", "type", "required"},
	}
	raw, err := c.executeKw(ctx, model, "fields_get", []any{}, kw)
	if err != nil {
		return nil, err
	}
	var out map[string]map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode fields_get result: %s", raw)
	}
	return out, nil
}

// ListModels lists the models registered on the server.
func (c *Client) ListModels(ctx context.Context) ([]ModelInfo, error) {
	recs, err := c.SearchRead(ctx, "ir.model", nil, []string{"model", "name"}, 500)
	if err != nil {
		return nil, err
	}
	out := make([]ModelInfo, 0, len(recs))
	for _, r := range recs {
		var m ModelInfo
		if v, ok := r["model"].(string); ok {
			m.Model = v
		}
		if v, ok := r["name"].(string); ok {
			m.Name = v
		}
		out = append(out, m)
	}
	return out, nil
}

// normalizeDomain keeps a nil domain serializing as [] rather than null,
// so an empty domain matches all records.
func normalizeDomain(domain []any) []any {
	if domain == nil {
		return []any{}
	}
	return domain
}

func decodeRecords(raw json.RawMessage) ([]map[string]any, error) {
	var arr []any
	if err := json.Unmarshal(raw, &arr); err != nil {
		return nil, fmt.Errorf("unexpected record result: %s", raw)
	}
	out := make([]map[string]any, 0, len(arr))
	for _, it := range arr {
		if m, ok := it.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out, nil
}

func decodeIDs(raw json.RawMessage) ([]int, error) {
	var arr []float64
	if err := json.Unmarshal(raw, &arr); err != nil {
		return nil, fmt.Errorf("unexpected id list result: %s", raw)
	}
	out := make([]int, len(arr))
	for i, v := range arr {
		out[i] = int(v)
	}
	return out, nil
}

func decodeBool(raw json.RawMessage) (bool, error) {
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return false, fmt.Errorf("unexpected bool result: %s", raw)
	}
	return b, nil
}
