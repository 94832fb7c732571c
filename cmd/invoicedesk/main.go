package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/ledgerline/invoicedesk/internal/config"
	"github.com/ledgerline/invoicedesk/internal/observability"
	"github.com/ledgerline/invoicedesk/internal/server"
	"github.com/ledgerline/invoicedesk/pkg/db"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		server.Module,
	)
	app.Run()
}

func registerSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
