package unavailability

import (
	"go.uber.org/fx"

	"github.com/wardworks/roster/internal/unavailability/repository"
	"github.com/wardworks/roster/internal/unavailability/service"
)

var Module = fx.Module("unavailability.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
