// Package gateway owns the single authenticated Odoo session and maps
// tool operations onto remote CRUD calls. All operations are
// pass-through: no retries, no batching, no caching. Remote failures
// come back tagged with the operation name.
package gateway

import (
	"context"
	"fmt"
	"sync"

	"odoo-mcp-go/internal/config"
	"odoo-mcp-go/internal/logging"
	"odoo-mcp-go/odoo"
)

// Gateway holds the one session shared by every tool. The mutex keeps at
// most one call in flight, so two tools never interleave writes on the
// same authenticated session.
type Gateway struct {
	mu     sync.Mutex
	cfg    config.Odoo
	client *odoo.Client
}

// New builds a gateway; no connection is made until Connect or the
// first operation.
func New(cfg config.Odoo) *Gateway {
	return &Gateway{cfg: cfg}
}

// Connect authenticates a fresh session with the configured credentials,
// replacing any cached one. It returns the server series (e.g. "18.0")
// when the server reports one.
func (g *Gateway) Connect(ctx context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.connectLocked(ctx); err != nil {
		return "", fmt.Errorf("connect: %w", err)
	}
	serie := ""
	if v, err := g.client.Version(ctx); err == nil {
		serie, _ = v["server_serie"].(string)
	}
	return serie, nil
}

func (g *Gateway) connectLocked(ctx context.Context) error {
	c := odoo.New(g.cfg.URL, g.cfg.Database, g.cfg.Username, g.cfg.Password)
	if err := c.Login(ctx); err != nil {
		return err
	}
	logging.Infof("authenticated to %s db=%s uid=%d", g.cfg.URL, g.cfg.Database, c.UID)
	g.client = c
	return nil
}

// ensureLocked connects on demand when an operation runs before connect.
func (g *Gateway) ensureLocked(ctx context.Context) (*odoo.Client, error) {
	if g.client != nil {
		return g.client, nil
	}
	if err := g.connectLocked(ctx); err != nil {
		return nil, err
	}
	return g.client, nil
}

// ListModels returns the models registered on the server.
func (g *Gateway) ListModels(ctx context.Context) ([]odoo.ModelInfo, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	c, err := g.ensureLocked(ctx)
	if err != nil {
		return nil, fmt.Errorf("list_models: %w", err)
	}
	models, err := c.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("list_models: %w", err)
	}
	return models, nil
}

// SearchRecords returns the ids matching domain, in server order. The
// domain is forwarded unmodified; nil means all records.
func (g *Gateway) SearchRecords(ctx context.Context, model string, domain []any, limit int) ([]int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	c, err := g.ensureLocked(ctx)
	if err != nil {
		return nil, fmt.Errorf("search_records: %w", err)
	}
	ids, err := c.Search(ctx, model, domain, limit)
	if err != nil {
		return nil, fmt.Errorf("search_records: %w", err)
	}
	return ids, nil
}

// SearchRead searches and reads the matching records in one round trip.
func (g *Gateway) SearchRead(ctx context.Context, model string, domain []any, fields []string, limit int) ([]map[string]any, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	c, err := g.ensureLocked(ctx)
	if err != nil {
		return nil, fmt.Errorf("search_records: %w", err)
	}
	recs, err := c.SearchRead(ctx, model, domain, fields, limit)
	if err != nil {
		return nil, fmt.Errorf("search_records: %w", err)
	}
	return recs, nil
}

// ReadRecord fetches one record by id. An empty fields slice means all
// fields. A missing id is a NotFoundError whichever way the server
// signals it (MissingError or an empty result).
func (g *Gateway) ReadRecord(ctx context.Context, model string, id int, fields []string) (map[string]any, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	c, err := g.ensureLocked(ctx)
	if err != nil {
		return nil, fmt.Errorf("read_record: %w", err)
	}
	recs, err := c.Read(ctx, model, []int{id}, fields)
	if err != nil {
		return nil, fmt.Errorf("read_record: %w", err)
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("read_record: %w", &odoo.NotFoundError{
			Message: fmt.Sprintf("%s record %d not found", model, id),
		})
	}
	return recs[0], nil
}

// CreateRecord inserts one record and returns the server-assigned id.
func (g *Gateway) CreateRecord(ctx context.Context, model string, values map[string]any) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	c, err := g.ensureLocked(ctx)
	if err != nil {
		return 0, fmt.Errorf("create_record: %w", err)
	}
	id, err := c.Create(ctx, model, values)
	if err != nil {
		return 0, fmt.Errorf("create_record: %w", err)
	}
	return id, nil
}

// UpdateRecord writes values onto one record.
func (g *Gateway) UpdateRecord(ctx context.Context, model string, id int, values map[string]any) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	c, err := g.ensureLocked(ctx)
	if err != nil {
		return false, fmt.Errorf("update_record: %w", err)
	}
	ok, err := c.Write(ctx, model, []int{id}, values)
	if err != nil {
		return false, fmt.Errorf("update_record: %w", err)
	}
	return ok, nil
}

// DeleteRecord removes one record.
func (g *Gateway) DeleteRecord(ctx context.Context, model string, id int) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	c, err := g.ensureLocked(ctx)
	if err != nil {
		return false, fmt.Errorf("delete_record: %w", err)
	}
	ok, err := c.Unlink(ctx, model, []int{id})
	if err != nil {
		return false, fmt.Errorf("delete_record: %w", err)
	}
	return ok, nil
}

// ModelFields returns the field definitions of a model.
func (g *Gateway) ModelFields(ctx context.Context, model string) (map[string]map[string]any, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	c, err := g.ensureLocked(ctx)
	if err != nil {
		return nil, fmt.Errorf("get_model_fields: %w", err)
	}
	fields, err := c.FieldsGet(ctx, model)
	if err != nil {
		return nil, fmt.Errorf("get_model_fields: %w", err)
	}
	return fields, nil
}
