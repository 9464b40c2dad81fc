package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/wardworks/roster/internal/member/domain"
	obsmetrics "github.com/wardworks/roster/internal/observability/metrics"
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
	Metrics *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	repo    domain.Repository
	metrics *obsmetrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("member.service"),
		genID:   p.GenID,
		repo:    p.Repo,
		metrics: p.Metrics,
	}
}

func (s *Service) List(ctx context.Context) ([]domain.Member, error) {
	members, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, db.Unavailable("list members", err)
	}
	return members, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Member, error) {
	memberID, err := s.parseID(id)
	if err != nil {
		return domain.Member{}, err
	}

	member, err := s.repo.FindByID(ctx, s.db, memberID)
	if err != nil {
		return domain.Member{}, db.Unavailable("find member", err)
	}
	if member == nil {
		return domain.Member{}, domain.ErrNotFound
	}
	return *member, nil
}

func (s *Service) Create(ctx context.Context, req domain.CreateMemberRequest) (domain.Member, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Member{}, domain.ErrInvalidName
	}

	tier, err := domain.ParseTier(req.Tier)
	if err != nil {
		return domain.Member{}, err
	}

	now := time.Now().UTC()
	member := domain.Member{
		ID:        s.genID.Generate(),
		Name:      name,
		Tier:      tier,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, &member); err != nil {
		return domain.Member{}, db.Unavailable("insert member", err)
	}

	s.metrics.RecordMemberWrite(ctx, "create")
	s.log.Info("member created", zap.String("member_id", member.ID.String()))
	return member, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateMemberRequest) (domain.Member, error) {
	memberID, err := s.parseID(req.ID)
	if err != nil {
		return domain.Member{}, err
	}

	current, err := s.repo.FindByID(ctx, s.db, memberID)
	if err != nil {
		return domain.Member{}, db.Unavailable("find member", err)
	}
	if current == nil {
		return domain.Member{}, domain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Member{}, domain.ErrInvalidName
		}
		current.Name = name
	}
	if req.Tier != nil {
		tier, err := domain.ParseTier(*req.Tier)
		if err != nil {
			return domain.Member{}, err
		}
		current.Tier = tier
	}
	current.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, current); err != nil {
		return domain.Member{}, db.Unavailable("update member", err)
	}

	s.metrics.RecordMemberWrite(ctx, "update")
	return *current, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	memberID, err := s.parseID(id)
	if err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, s.db, memberID)
	if err != nil {
		return db.Unavailable("delete member", err)
	}
	if !deleted {
		return domain.ErrNotFound
	}

	s.metrics.RecordMemberWrite(ctx, "delete")
	s.log.Info("member deleted", zap.String("member_id", memberID.String()))
	return nil
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
