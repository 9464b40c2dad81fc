package schedule

import (
	"go.uber.org/fx"

	"github.com/wardworks/roster/internal/config"
	memberdomain "github.com/wardworks/roster/internal/member/domain"
	"github.com/wardworks/roster/internal/schedule/engine"
	"github.com/wardworks/roster/internal/schedule/repository"
	"github.com/wardworks/roster/internal/schedule/service"
)

var Module = fx.Module("schedule.service",
	fx.Provide(repository.Provide),
	fx.Provide(newEngine),
	fx.Provide(service.New),
)

func newEngine(roster *config.RosterConfigHolder) *engine.Engine {
	raw := roster.Current().PrivilegedTiers
	tiers := make([]memberdomain.Tier, 0, len(raw))
	for _, t := range raw {
		tier, err := memberdomain.ParseTier(t)
		if err != nil {
			continue
		}
		tiers = append(tiers, tier)
	}
	return engine.New(tiers)
}
