package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `{
		"odoo": {
			"url": "https://erp.example.com/jsonrpc",
			"database": "prod",
			"username": "bot",
			"password": "secret"
		},
		"mcp": {"name": "erp-tools", "version": "2.1.0"}
	}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Odoo.URL != "https://erp.example.com/jsonrpc" || cfg.Odoo.Database != "prod" {
		t.Fatalf("odoo = %+v", cfg.Odoo)
	}
	if cfg.MCP.Name != "erp-tools" || cfg.MCP.Version != "2.1.0" {
		t.Fatalf("mcp = %+v", cfg.MCP)
	}
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `{
		"odoo": {"url": "http://localhost:8069/jsonrpc", "database": "dev", "username": "admin", "password": "admin"}
	}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.MCP.Name != "odoo-mcp" || cfg.MCP.Version != "1.0.0" {
		t.Fatalf("mcp defaults = %+v", cfg.MCP)
	}
}

func TestEnvOverrides(t *testing.T) {
	path := writeConfig(t, `{
		"odoo": {"url": "http://localhost:8069/jsonrpc", "database": "dev", "username": "admin", "password": "admin"}
	}`)

	t.Setenv("ODOO_DB", "staging")
	t.Setenv("ODOO_API_KEY", "key-123")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Odoo.Database != "staging" {
		t.Fatalf("database = %q, want staging", cfg.Odoo.Database)
	}
	if cfg.Odoo.Password != "key-123" {
		t.Fatalf("password = %q, want api key override", cfg.Odoo.Password)
	}
}

func TestMissingFileWithEnv(t *testing.T) {
	t.Setenv("ODOO_URL", "http://localhost:8069/jsonrpc")
	t.Setenv("ODOO_DB", "dev")
	t.Setenv("ODOO_USERNAME", "admin")
	t.Setenv("ODOO_PASSWORD", "admin")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Odoo.URL == "" {
		t.Fatal("env settings not applied")
	}
}

func TestMissingSettings(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("want error when no settings are available")
	}
}

func TestBadJSON(t *testing.T) {
	path := writeConfig(t, `{not json`)
	if _, err := Load(path); err == nil {
		t.Fatal("want parse error")
	}
}
