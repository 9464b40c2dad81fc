package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/wardworks/roster/internal/unavailability/domain"
	"github.com/wardworks/roster/internal/unavailability/repository"
	"github.com/wardworks/roster/internal/weekkey"
)

func setupUnavailabilityService(t *testing.T) (domain.Service, *snowflake.Node) {
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
	if err := conn.AutoMigrate(&domain.Unavailability{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}

	svc := New(Params{
		DB:    conn,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
	return svc, node
}

func TestSetAddIsIdempotent(t *testing.T) {
	svc, node := setupUnavailabilityService(t)
	ctx := context.Background()
	member := node.Generate().String()

	first, err := svc.Set(ctx, domain.SetRequest{MemberID: member, WeekKey: "2024-08-11", Unavailable: true})
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	second, err := svc.Set(ctx, domain.SetRequest{MemberID: member, WeekKey: "2024-08-11", Unavailable: true})
	if err != nil {
		t.Fatalf("repeated set must succeed: %v", err)
	}

	for _, got := range []map[string][]string{first, second} {
		weeks := got[member]
		if len(weeks) != 1 || weeks[0] != "2024-08-11" {
			t.Fatalf("expected single marked week, got %v", weeks)
		}
	}
}

func TestSetRemoveDropsEmptyEntry(t *testing.T) {
	svc, node := setupUnavailabilityService(t)
	ctx := context.Background()
	member := node.Generate().String()

	if _, err := svc.Set(ctx, domain.SetRequest{MemberID: member, WeekKey: "2024-08-11", Unavailable: true}); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, err := svc.Set(ctx, domain.SetRequest{MemberID: member, WeekKey: "2024-08-11", Unavailable: false})
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, present := got[member]; present {
		t.Fatalf("member with no marked weeks must not appear, got %v", got)
	}

	// Clearing the already cleared week is a no-op.
	if _, err := svc.Set(ctx, domain.SetRequest{MemberID: member, WeekKey: "2024-08-11", Unavailable: false}); err != nil {
		t.Fatalf("repeated clear must succeed: %v", err)
	}
}

func TestSetSnapsAndValidatesWeekKey(t *testing.T) {
	svc, node := setupUnavailabilityService(t)
	ctx := context.Background()
	member := node.Generate().String()

	// Wednesday input lands on the week's Sunday.
	got, err := svc.Set(ctx, domain.SetRequest{MemberID: member, WeekKey: "2024-08-14", Unavailable: true})
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	if weeks := got[member]; len(weeks) != 1 || weeks[0] != "2024-08-11" {
		t.Fatalf("expected week snapped to 2024-08-11, got %v", weeks)
	}

	if _, err := svc.Set(ctx, domain.SetRequest{MemberID: member, WeekKey: "garbage", Unavailable: true}); !errors.Is(err, weekkey.ErrInvalid) {
		t.Fatalf("expected invalid week key error, got %v", err)
	}
	if _, err := svc.Set(ctx, domain.SetRequest{MemberID: "abc", WeekKey: "2024-08-11", Unavailable: true}); !errors.Is(err, domain.ErrInvalidID) {
		t.Fatalf("expected invalid id error, got %v", err)
	}
}

func TestMembersForWeek(t *testing.T) {
	svc, node := setupUnavailabilityService(t)
	ctx := context.Background()
	a := node.Generate().String()
	b := node.Generate().String()

	for _, req := range []domain.SetRequest{
		{MemberID: a, WeekKey: "2024-08-11", Unavailable: true},
		{MemberID: b, WeekKey: "2024-08-11", Unavailable: true},
		{MemberID: b, WeekKey: "2024-08-18", Unavailable: true},
	} {
		if _, err := svc.Set(ctx, req); err != nil {
			t.Fatalf("set %+v: %v", req, err)
		}
	}

	ids, err := svc.MembersForWeek(ctx, "2024-08-11")
	if err != nil {
		t.Fatalf("members for week: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected both members, got %v", ids)
	}

	ids, err = svc.MembersForWeek(ctx, "2024-08-18")
	if err != nil {
		t.Fatalf("members for week: %v", err)
	}
	if len(ids) != 1 || ids[0] != b {
		t.Fatalf("expected only the second member, got %v", ids)
	}
}

func TestMapGroupsWeeksPerMember(t *testing.T) {
	svc, node := setupUnavailabilityService(t)
	ctx := context.Background()
	member := node.Generate().String()

	for _, week := range []string{"2024-08-18", "2024-08-11"} {
		if _, err := svc.Set(ctx, domain.SetRequest{MemberID: member, WeekKey: week, Unavailable: true}); err != nil {
			t.Fatalf("set: %v", err)
		}
	}

	got, err := svc.Map(ctx)
	if err != nil {
		t.Fatalf("map: %v", err)
	}
	weeks := got[member]
	if len(weeks) != 2 || weeks[0] != "2024-08-11" || weeks[1] != "2024-08-18" {
		t.Fatalf("expected ascending weeks, got %v", weeks)
	}
}
