package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/wardworks/roster/internal/config"
	"github.com/wardworks/roster/internal/role/domain"
	"github.com/wardworks/roster/internal/role/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupRoleService(t *testing.T) (domain.Service, *gorm.DB) {
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
	if err := conn.AutoMigrate(&domain.Role{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}
	holder, err := config.NewRosterConfigHolder()
	if err != nil {
		t.Fatalf("roster config: %v", err)
	}

	svc := New(Params{
		DB:     conn,
		Log:    zap.NewNop(),
		GenID:  node,
		Repo:   repository.Provide(),
		Roster: holder,
	})
	return svc, conn
}

func TestListSeedsDefaultsOnce(t *testing.T) {
	svc, conn := setupRoleService(t)
	ctx := context.Background()

	first, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("first list: %v", err)
	}

	wantNames := []string{"祝福パン", "祝福水", "パス1", "パス2", "パス3", "パス4"}
	if len(first) != len(wantNames) {
		t.Fatalf("expected %d default roles, got %d", len(wantNames), len(first))
	}
	for i, want := range wantNames {
		if first[i].Name != want {
			t.Fatalf("role %d: expected %q, got %q", i, want, first[i].Name)
		}
	}
	if !first[0].Privileged || !first[1].Privileged {
		t.Fatalf("blessing roles must be privileged: %+v", first[:2])
	}
	for _, role := range first[2:] {
		if role.Privileged {
			t.Fatalf("passing role %q must not be privileged", role.Name)
		}
	}

	// The second read must come from storage, not be re-derived.
	second, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("second list: %v", err)
	}
	for i := range first {
		if second[i].ID != first[i].ID {
			t.Fatalf("role %d: seeded ids must be stable, got %v then %v", i, first[i].ID, second[i].ID)
		}
	}

	var count int64
	if err := conn.Model(&domain.Role{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != int64(len(wantNames)) {
		t.Fatalf("expected %d stored roles, got %d", len(wantNames), count)
	}
}

func TestReplaceKeepsOrder(t *testing.T) {
	svc, _ := setupRoleService(t)
	ctx := context.Background()

	replaced, err := svc.Replace(ctx, domain.ReplaceRolesRequest{
		Roles: []domain.RoleInput{
			{Name: "祝福パン", Privileged: true},
			{Name: "祝福水", Privileged: true},
			{Name: "パス1"},
			{Name: "閉会の祈り"},
		},
	})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if len(replaced) != 4 {
		t.Fatalf("expected 4 roles, got %d", len(replaced))
	}

	listed, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for i, role := range listed {
		if role.Position != i {
			t.Fatalf("role %q: expected position %d, got %d", role.Name, i, role.Position)
		}
		if role.Name != replaced[i].Name {
			t.Fatalf("role %d: expected %q, got %q", i, replaced[i].Name, role.Name)
		}
	}
}

func TestReplaceValidation(t *testing.T) {
	svc, _ := setupRoleService(t)
	ctx := context.Background()

	if _, err := svc.Replace(ctx, domain.ReplaceRolesRequest{}); !errors.Is(err, domain.ErrMissingRoles) {
		t.Fatalf("expected ErrMissingRoles, got %v", err)
	}
	if _, err := svc.Replace(ctx, domain.ReplaceRolesRequest{
		Roles: []domain.RoleInput{{Name: "  "}},
	}); !errors.Is(err, domain.ErrInvalidRoleName) {
		t.Fatalf("expected ErrInvalidRoleName, got %v", err)
	}
	if _, err := svc.Replace(ctx, domain.ReplaceRolesRequest{
		Roles: []domain.RoleInput{{Name: "パス1"}, {Name: "パス1"}},
	}); !errors.Is(err, domain.ErrDuplicateRole) {
		t.Fatalf("expected ErrDuplicateRole, got %v", err)
	}
}
