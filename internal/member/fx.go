package member

import (
	"github.com/wardworks/roster/internal/member/repository"
	"github.com/wardworks/roster/internal/member/service"
	"go.uber.org/fx"
)

var Module = fx.Module("member.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
