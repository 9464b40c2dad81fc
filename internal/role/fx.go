package role

import (
	"github.com/wardworks/roster/internal/role/repository"
	"github.com/wardworks/roster/internal/role/service"
	"go.uber.org/fx"
)

var Module = fx.Module("role.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
