package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/wardworks/roster/internal/clock"
	memberdomain "github.com/wardworks/roster/internal/member/domain"
	obsmetrics "github.com/wardworks/roster/internal/observability/metrics"
	roledomain "github.com/wardworks/roster/internal/role/domain"
	"github.com/wardworks/roster/internal/schedule/domain"
	"github.com/wardworks/roster/internal/schedule/engine"
	"github.com/wardworks/roster/internal/weekkey"
	"github.com/wardworks/roster/pkg/db"
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Repo       domain.Repository
	MemberRepo memberdomain.Repository
	Roles      roledomain.Service
	Engine     *engine.Engine
	Clock      clock.Clock
	Metrics    *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	repo       domain.Repository
	memberRepo memberdomain.Repository
	roles      roledomain.Service
	engine     *engine.Engine
	clock      clock.Clock
	metrics    *obsmetrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("schedule.service"),
		genID:      p.GenID,
		repo:       p.Repo,
		memberRepo: p.MemberRepo,
		roles:      p.Roles,
		engine:     p.Engine,
		clock:      p.Clock,
		metrics:    p.Metrics,
	}
}

func (s *Service) GetWeek(ctx context.Context, req domain.GetWeekRequest) (domain.WeekSchedule, error) {
	key, err := s.resolveWeek(req.WeekKey)
	if err != nil {
		return domain.WeekSchedule{}, err
	}
	return s.projectWeek(ctx, key)
}

func (s *Service) GetRange(ctx context.Context, req domain.GetRangeRequest) ([]domain.WeekSchedule, error) {
	keys, err := weekkey.Range(req.From, req.To)
	if err != nil {
		return nil, err
	}

	roles, members, err := s.loadRegistry(ctx)
	if err != nil {
		return nil, err
	}

	assignments, err := s.repo.ListByWeeks(ctx, s.db, keys)
	if err != nil {
		return nil, db.Unavailable("list assignments", err)
	}

	byWeek := make(map[string]map[string]snowflake.ID, len(keys))
	for _, a := range assignments {
		if a.MemberID == nil {
			continue
		}
		week := byWeek[a.WeekKey]
		if week == nil {
			week = make(map[string]snowflake.ID)
			byWeek[a.WeekKey] = week
		}
		week[a.Role] = *a.MemberID
	}

	weeks := make([]domain.WeekSchedule, 0, len(keys))
	for _, key := range keys {
		weeks = append(weeks, domain.WeekSchedule{
			WeekKey: key,
			Rows:    s.engine.ProjectWeek(roles, members, byWeek[key]),
		})
	}
	return weeks, nil
}

func (s *Service) Candidates(ctx context.Context, req domain.CandidatesRequest) ([]memberdomain.Member, error) {
	key, err := s.resolveWeek(req.WeekKey)
	if err != nil {
		return nil, err
	}

	roleName := strings.TrimSpace(req.Role)
	role, err := s.findRole(ctx, roleName)
	if err != nil {
		return nil, err
	}

	members, err := s.memberRepo.List(ctx, s.db)
	if err != nil {
		return nil, db.Unavailable("list members", err)
	}

	assigned, err := s.assignedForWeek(ctx, key)
	if err != nil {
		return nil, err
	}

	return s.engine.EligibleCandidates(role, members, assigned), nil
}

func (s *Service) Assign(ctx context.Context, req domain.AssignRequest) (domain.WeekSchedule, error) {
	key, err := s.resolveWeek(req.WeekKey)
	if err != nil {
		return domain.WeekSchedule{}, err
	}

	roleName := strings.TrimSpace(req.Role)
	role, err := s.findRole(ctx, roleName)
	if err != nil {
		return domain.WeekSchedule{}, err
	}

	memberID, err := snowflake.ParseString(strings.TrimSpace(req.MemberID))
	if err != nil || memberID == 0 {
		return domain.WeekSchedule{}, domain.ErrInvalidID
	}

	member, err := s.memberRepo.FindByID(ctx, s.db, memberID)
	if err != nil {
		return domain.WeekSchedule{}, db.Unavailable("find member", err)
	}
	if member == nil {
		return domain.WeekSchedule{}, domain.ErrInvalidReference
	}

	now := time.Now().UTC()
	assignment := domain.Assignment{
		ID:        s.genID.Generate(),
		WeekKey:   key,
		Role:      role.Name,
		MemberID:  &memberID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Upsert(ctx, s.db, &assignment); err != nil {
		return domain.WeekSchedule{}, db.Unavailable("upsert assignment", err)
	}

	s.metrics.RecordAssignment(ctx, role.Name)
	s.log.Info("slot assigned",
		zap.String("week_key", key),
		zap.String("role", role.Name),
		zap.String("member_id", memberID.String()),
	)

	return s.projectWeek(ctx, key)
}

func (s *Service) Unassign(ctx context.Context, req domain.UnassignRequest) (domain.WeekSchedule, error) {
	key := strings.TrimSpace(req.WeekKey)
	roleName := strings.TrimSpace(req.Role)

	if id := strings.TrimSpace(req.AssignmentID); id != "" {
		assignmentID, err := snowflake.ParseString(id)
		if err != nil || assignmentID == 0 {
			return domain.WeekSchedule{}, domain.ErrInvalidID
		}
		found, err := s.slotByID(ctx, assignmentID)
		if err != nil {
			return domain.WeekSchedule{}, err
		}
		if found == nil {
			// Already gone, nothing to clear.
			return s.projectWeek(ctx, weekkey.Upcoming(s.clock.Now()))
		}
		key, roleName = found.WeekKey, found.Role
	} else {
		normalized, err := s.resolveWeek(key)
		if err != nil {
			return domain.WeekSchedule{}, err
		}
		key = normalized
		if roleName == "" {
			return domain.WeekSchedule{}, domain.ErrRoleNotFound
		}
	}

	cleared, err := s.repo.Delete(ctx, s.db, key, roleName)
	if err != nil {
		return domain.WeekSchedule{}, db.Unavailable("delete assignment", err)
	}
	if cleared {
		s.metrics.RecordUnassignment(ctx, roleName)
		s.log.Info("slot cleared",
			zap.String("week_key", key),
			zap.String("role", roleName),
		)
	}

	return s.projectWeek(ctx, key)
}

func (s *Service) resolveWeek(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return weekkey.Upcoming(s.clock.Now()), nil
	}
	return weekkey.Parse(raw)
}

func (s *Service) findRole(ctx context.Context, name string) (roledomain.Role, error) {
	roles, err := s.roles.List(ctx)
	if err != nil {
		return roledomain.Role{}, err
	}
	for _, role := range roles {
		if role.Name == name {
			return role, nil
		}
	}
	return roledomain.Role{}, domain.ErrInvalidReference
}

func (s *Service) loadRegistry(ctx context.Context) ([]roledomain.Role, []memberdomain.Member, error) {
	roles, err := s.roles.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	members, err := s.memberRepo.List(ctx, s.db)
	if err != nil {
		return nil, nil, db.Unavailable("list members", err)
	}
	return roles, members, nil
}

func (s *Service) assignedForWeek(ctx context.Context, key string) (map[string]snowflake.ID, error) {
	assignments, err := s.repo.ListByWeek(ctx, s.db, key)
	if err != nil {
		return nil, db.Unavailable("list assignments", err)
	}
	assigned := make(map[string]snowflake.ID, len(assignments))
	for _, a := range assignments {
		if a.MemberID == nil {
			continue
		}
		assigned[a.Role] = *a.MemberID
	}
	return assigned, nil
}

func (s *Service) projectWeek(ctx context.Context, key string) (domain.WeekSchedule, error) {
	roles, members, err := s.loadRegistry(ctx)
	if err != nil {
		return domain.WeekSchedule{}, err
	}
	assigned, err := s.assignedForWeek(ctx, key)
	if err != nil {
		return domain.WeekSchedule{}, err
	}
	return domain.WeekSchedule{
		WeekKey: key,
		Rows:    s.engine.ProjectWeek(roles, members, assigned),
	}, nil
}

func (s *Service) slotByID(ctx context.Context, id snowflake.ID) (*domain.Assignment, error) {
	assignment, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, db.Unavailable("find assignment", err)
	}
	return assignment, nil
}
