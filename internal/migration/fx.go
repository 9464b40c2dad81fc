package migration

import (
	"github.com/wardworks/roster/internal/config"
	memberdomain "github.com/wardworks/roster/internal/member/domain"
	roledomain "github.com/wardworks/roster/internal/role/domain"
	scheduledomain "github.com/wardworks/roster/internal/schedule/domain"
	unavailabilitydomain "github.com/wardworks/roster/internal/unavailability/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config, log *zap.Logger) error {
		if cfg.DBType != "postgres" {
			// Versioned migrations target postgres; other dialects
			// (mysql, embedded sqlite) sync the schema directly.
			log.Info("using auto-migration", zap.String("db_type", cfg.DBType))
			return conn.AutoMigrate(
				&memberdomain.Member{},
				&roledomain.Role{},
				&scheduledomain.Assignment{},
				&unavailabilitydomain.Unavailability{},
			)
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		return RunMigrations(sqlDB)
	}),
)
