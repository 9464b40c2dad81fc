package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/wardworks/roster/internal/clock"
	"github.com/wardworks/roster/internal/config"
	"github.com/wardworks/roster/internal/member"
	"github.com/wardworks/roster/internal/migration"
	"github.com/wardworks/roster/internal/observability"
	"github.com/wardworks/roster/internal/role"
	"github.com/wardworks/roster/internal/schedule"
	"github.com/wardworks/roster/internal/server"
	"github.com/wardworks/roster/internal/unavailability"
	"github.com/wardworks/roster/pkg/db"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,

		member.Module,
		role.Module,
		schedule.Module,
		unavailability.Module,

		server.Module,
	)

	app.Run()
}

func RegisterSnowflake() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}
