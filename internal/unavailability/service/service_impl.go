package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	obsmetrics "github.com/wardworks/roster/internal/observability/metrics"
	"github.com/wardworks/roster/internal/unavailability/domain"
	"github.com/wardworks/roster/internal/weekkey"
	"github.com/wardworks/roster/pkg/db"
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
		log:     p.Log.Named("unavailability.service"),
		genID:   p.GenID,
		repo:    p.Repo,
		metrics: p.Metrics,
	}
}

func (s *Service) Map(ctx context.Context) (map[string][]string, error) {
	records, err := s.repo.ListAll(ctx, s.db)
	if err != nil {
		return nil, db.Unavailable("list unavailability", err)
	}
	return groupByMember(records), nil
}

func (s *Service) MembersForWeek(ctx context.Context, rawKey string) ([]string, error) {
	key, err := weekkey.Parse(rawKey)
	if err != nil {
		return nil, err
	}

	records, err := s.repo.ListByWeek(ctx, s.db, key)
	if err != nil {
		return nil, db.Unavailable("list unavailability", err)
	}

	ids := make([]string, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.MemberID.String())
	}
	return ids, nil
}

func (s *Service) Set(ctx context.Context, req domain.SetRequest) (map[string][]string, error) {
	memberID, err := snowflake.ParseString(strings.TrimSpace(req.MemberID))
	if err != nil || memberID == 0 {
		return nil, domain.ErrInvalidID
	}
	key, err := weekkey.Parse(req.WeekKey)
	if err != nil {
		return nil, err
	}

	if req.Unavailable {
		record := domain.Unavailability{
			ID:        s.genID.Generate(),
			MemberID:  memberID,
			WeekKey:   key,
			CreatedAt: time.Now().UTC(),
		}
		err := s.repo.Insert(ctx, s.db, &record)
		switch {
		case err == nil:
			s.metrics.RecordUnavailabilityWrite(ctx, "add")
			s.log.Info("week marked unavailable",
				zap.String("member_id", memberID.String()),
				zap.String("week_key", key),
			)
		case db.IsDuplicateKeyErr(err):
			// Already marked; adding is a set union.
		default:
			return nil, db.Unavailable("insert unavailability", err)
		}
	} else {
		removed, err := s.repo.Delete(ctx, s.db, memberID, key)
		if err != nil {
			return nil, db.Unavailable("delete unavailability", err)
		}
		if removed {
			s.metrics.RecordUnavailabilityWrite(ctx, "remove")
			s.log.Info("week unavailability cleared",
				zap.String("member_id", memberID.String()),
				zap.String("week_key", key),
			)
		}
	}

	return s.Map(ctx)
}

func groupByMember(records []domain.Unavailability) map[string][]string {
	grouped := make(map[string][]string, len(records))
	for _, r := range records {
		key := r.MemberID.String()
		grouped[key] = append(grouped[key], r.WeekKey)
	}
	return grouped
}
