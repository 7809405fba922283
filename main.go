package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"odoo-mcp-go/gateway"
	"odoo-mcp-go/internal/config"
	"odoo-mcp-go/internal/logging"
	"odoo-mcp-go/tools"
)

func main() {

	_ = godotenv.Load()

	path := config.DefaultPath
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	gw := gateway.New(cfg.Odoo)

	// Initial connect is best-effort: every tool reconnects on demand,
	// so a slow or down Odoo does not keep the server from starting.
	if serie, err := gw.Connect(context.Background()); err != nil {
		logging.Errorf("initial Odoo connect failed: %v", err)
	} else {
		logging.Infof("connected to Odoo %s", serie)
	}

	s := server.NewMCPServer(
		cfg.MCP.Name,
		cfg.MCP.Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	/* REGISTER TOOLS */
	s.AddTool(
		mcp.NewTool("connect",
			mcp.WithDescription("Connect to the Odoo server using the configured credentials."),
		),
		tools.Connect(gw),
	)

	s.AddTool(
		mcp.NewTool("list_models",
			mcp.WithDescription("List the models available on the Odoo server."),
		),
		tools.ListModels(gw),
	)

	s.AddTool(
		mcp.NewTool("search_records",
			mcp.WithDescription("Search records in an Odoo model using a search domain."),
			mcp.WithString("model", mcp.Required(),
				mcp.Description("Model name, e.g. res.partner"),
			),
			mcp.WithArray("domain",
				mcp.Description(`Odoo search domain as [field, operator, value] triples, e.g. [["name","ilike","tea"]]. Empty matches all records.`),
			),
			mcp.WithArray("fields",
				mcp.Description("Fields to return. When set, full records come back instead of ids."),
			),
			mcp.WithNumber("limit",
				mcp.Description("Maximum number of records (default 10)."),
			),
		),
		tools.SearchRecords(gw),
	)

	s.AddTool(
		mcp.NewTool("read_record",
			mcp.WithDescription("Read a specific record by id."),
			mcp.WithString("model", mcp.Required(),
				mcp.Description("Model name"),
			),
			mcp.WithNumber("record_id", mcp.Required(),
				mcp.Description("Record id"),
			),
			mcp.WithArray("fields",
				mcp.Description("Fields to return (all when empty)."),
			),
		),
		tools.ReadRecord(gw),
	)

	s.AddTool(
		mcp.NewTool("create_record",
			mcp.WithDescription("Create a new record in an Odoo model."),
			mcp.WithString("model", mcp.Required(),
				mcp.Description("Model name"),
			),
			mcp.WithObject("values", mcp.Required(),
				mcp.Description("Field values for the new record"),
			),
		),
		tools.CreateRecord(gw),
	)

	s.AddTool(
		mcp.NewTool("update_record",
			mcp.WithDescription("Update an existing record."),
			mcp.WithString("model", mcp.Required(),
				mcp.Description("Model name"),
			),
			mcp.WithNumber("record_id", mcp.Required(),
				mcp.Description("Record id"),
			),
			mcp.WithObject("values", mcp.Required(),
				mcp.Description("Field values to change"),
			),
		),
		tools.UpdateRecord(gw),
	)

	s.AddTool(
		mcp.NewTool("delete_record",
			mcp.WithDescription("Delete a record from an Odoo model."),
			mcp.WithString("model", mcp.Required(),
				mcp.Description("Model name"),
			),
			mcp.WithNumber("record_id", mcp.Required(),
				mcp.Description("Record id to delete"),
			),
		),
		tools.DeleteRecord(gw),
	)

	s.AddTool(
		mcp.NewTool("get_model_fields",
			mcp.WithDescription("Get the field definitions of an Odoo model."),
			mcp.WithString("model", mcp.Required(),
				mcp.Description("Model name"),
			),
		),
		tools.GetModelFields(gw),
	)

	logging.Infof("starting %s v%s", cfg.MCP.Name, cfg.MCP.Version)
	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
	}
}
