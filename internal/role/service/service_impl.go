package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/wardworks/roster/internal/config"
	obsmetrics "github.com/wardworks/roster/internal/observability/metrics"
	"github.com/wardworks/roster/internal/role/domain"
	"github.com/wardworks/roster/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Repo    domain.Repository
	Roster  *config.RosterConfigHolder
	Metrics *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	repo    domain.Repository
	roster  *config.RosterConfigHolder
	metrics *obsmetrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("role.service"),
		genID:   p.GenID,
		repo:    p.Repo,
		roster:  p.Roster,
		metrics: p.Metrics,
	}
}

func (s *Service) List(ctx context.Context) ([]domain.Role, error) {
	roles, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, db.Unavailable("list roles", err)
	}
	if len(roles) > 0 {
		return roles, nil
	}

	// First use: persist the configured defaults so every later read
	// comes from storage instead of re-deriving them.
	seeded := s.defaultRoles()
	if err := s.repo.ReplaceAll(ctx, s.db, seeded); err != nil {
		return nil, db.Unavailable("seed roles", err)
	}
	s.log.Info("role registry seeded", zap.Int("roles", len(seeded)))
	return seeded, nil
}

func (s *Service) Replace(ctx context.Context, req domain.ReplaceRolesRequest) ([]domain.Role, error) {
	if len(req.Roles) == 0 {
		return nil, domain.ErrMissingRoles
	}

	now := time.Now().UTC()
	seen := make(map[string]struct{}, len(req.Roles))
	roles := make([]domain.Role, 0, len(req.Roles))
	for i, input := range req.Roles {
		name := strings.TrimSpace(input.Name)
		if name == "" {
			return nil, domain.ErrInvalidRoleName
		}
		if _, dup := seen[name]; dup {
			return nil, domain.ErrDuplicateRole
		}
		seen[name] = struct{}{}

		roles = append(roles, domain.Role{
			ID:         s.genID.Generate(),
			Name:       name,
			Privileged: input.Privileged,
			Position:   i,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}

	if err := s.repo.ReplaceAll(ctx, s.db, roles); err != nil {
		return nil, db.Unavailable("replace roles", err)
	}

	s.metrics.RecordRoleReplacement(ctx)
	s.log.Info("role registry replaced", zap.Int("roles", len(roles)))
	return roles, nil
}

func (s *Service) defaultRoles() []domain.Role {
	seeds := s.roster.Current().Roles
	now := time.Now().UTC()
	roles := make([]domain.Role, 0, len(seeds))
	for i, seed := range seeds {
		roles = append(roles, domain.Role{
			ID:         s.genID.Generate(),
			Name:       seed.Name,
			Privileged: seed.Privileged,
			Position:   i,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}
	return roles
}
