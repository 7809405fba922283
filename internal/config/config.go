package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// DefaultPath is where the server looks for its config when no path is
// given on the command line.
const DefaultPath = "config.json"

// Odoo holds the connection settings for the target server.
type Odoo struct {
	URL      string `json:"url"`
	Database string `json:"database"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// MCP names the tool server as announced to the client.
type MCP struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Config is the on-disk configuration file.
type Config struct {
	Odoo Odoo `json:"odoo"`
	MCP  MCP  `json:"mcp"`
}

// Load reads the config file at path and applies ODOO_* environment
// overrides on top. A missing file is fine as long as the environment
// carries the connection settings.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// fall through to env
	default:
		return nil, err
	}

	applyEnv(&cfg.Odoo)

	if cfg.Odoo.URL == "" || cfg.Odoo.Database == "" || cfg.Odoo.Username == "" {
		return nil, fmt.Errorf("odoo url, database and username are required (set them in %s or via ODOO_* env)", path)
	}
	if cfg.MCP.Name == "" {
		cfg.MCP.Name = "odoo-mcp"
	}
	if cfg.MCP.Version == "" {
		cfg.MCP.Version = "1.0.0"
	}
	return cfg, nil
}

func applyEnv(o *Odoo) {
	if v := os.Getenv("ODOO_URL"); v != "" {
		o.URL = v
	}
	if v := os.Getenv("ODOO_DB"); v != "" {
		o.Database = v
	}
	if v := os.Getenv("ODOO_USERNAME"); v != "" {
		o.Username = v
	}
	if v := os.Getenv("ODOO_PASSWORD"); v != "" {
		o.Password = v
	}
	// API keys are the recommended credential on recent Odoo versions;
	// they travel in the password slot of the RPC protocol.
	if v := os.Getenv("ODOO_API_KEY"); v != "" {
		o.Password = v
	}
}
