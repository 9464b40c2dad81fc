package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/wardworks/roster/internal/member/domain"
	"github.com/wardworks/roster/internal/member/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupMemberService(t *testing.T) domain.Service {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_loc=auto", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	if err := conn.AutoMigrate(&domain.Member{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}

	return New(Params{
		DB:    conn,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
}

func TestCreateAndListMembers(t *testing.T) {
	svc := setupMemberService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, domain.CreateMemberRequest{Name: "田中", Tier: "priest"})
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	second, err := svc.Create(ctx, domain.CreateMemberRequest{Name: "佐藤", Tier: "deacon"})
	if err != nil {
		t.Fatalf("create second: %v", err)
	}

	members, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(members))
	}
	if members[0].ID != first.ID || members[1].ID != second.ID {
		t.Fatalf("expected insertion order, got %v then %v", members[0].ID, members[1].ID)
	}
}

func TestCreateValidatesNameAndTier(t *testing.T) {
	svc := setupMemberService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, domain.CreateMemberRequest{Name: "  ", Tier: "priest"}); !errors.Is(err, domain.ErrInvalidName) {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
	if _, err := svc.Create(ctx, domain.CreateMemberRequest{Name: "田中", Tier: "bishop"}); !errors.Is(err, domain.ErrInvalidTier) {
		t.Fatalf("expected ErrInvalidTier, got %v", err)
	}
}

func TestUpdateChangesNameAndTierOnly(t *testing.T) {
	svc := setupMemberService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateMemberRequest{Name: "田中", Tier: "teacher"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	newTier := "priest"
	updated, err := svc.Update(ctx, domain.UpdateMemberRequest{ID: created.ID.String(), Tier: &newTier})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.ID != created.ID {
		t.Fatalf("id must be immutable, got %v want %v", updated.ID, created.ID)
	}
	if updated.Name != "田中" {
		t.Fatalf("name should be untouched, got %q", updated.Name)
	}
	if updated.Tier != domain.TierPriest {
		t.Fatalf("expected tier priest, got %q", updated.Tier)
	}
}

func TestUpdateMissingMember(t *testing.T) {
	svc := setupMemberService(t)

	name := "山本"
	_, err := svc.Update(context.Background(), domain.UpdateMemberRequest{ID: "12345", Name: &name})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteMember(t *testing.T) {
	svc := setupMemberService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateMemberRequest{Name: "田中", Tier: "melchizedek"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(ctx, created.ID.String()); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(ctx, created.ID.String()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second delete: expected ErrNotFound, got %v", err)
	}

	members, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(members) != 0 {
		t.Fatalf("expected empty directory, got %d members", len(members))
	}
}

func TestParseTier(t *testing.T) {
	if tier, err := domain.ParseTier(" Priest "); err != nil || tier != domain.TierPriest {
		t.Fatalf("expected priest, got %q err %v", tier, err)
	}
	if _, err := domain.ParseTier("elder"); !errors.Is(err, domain.ErrInvalidTier) {
		t.Fatalf("expected ErrInvalidTier, got %v", err)
	}
}
