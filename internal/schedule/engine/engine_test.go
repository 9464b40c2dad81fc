package engine

import (
	"testing"

	"github.com/bwmarrin/snowflake"
	memberdomain "github.com/wardworks/roster/internal/member/domain"
	roledomain "github.com/wardworks/roster/internal/role/domain"
)

var testNode *snowflake.Node

func init() {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	testNode = node
}

func newEngine() *Engine {
	return New([]memberdomain.Tier{memberdomain.TierMelchizedek, memberdomain.TierPriest})
}

func makeRoles(names ...string) []roledomain.Role {
	roles := make([]roledomain.Role, 0, len(names))
	for i, name := range names {
		privileged := name == "祝福パン" || name == "祝福水"
		roles = append(roles, roledomain.Role{
			ID:         testNode.Generate(),
			Name:       name,
			Privileged: privileged,
			Position:   i,
		})
	}
	return roles
}

func makeMember(name string, tier memberdomain.Tier) memberdomain.Member {
	return memberdomain.Member{ID: testNode.Generate(), Name: name, Tier: tier}
}

func TestProjectWeekEmptyAssignments(t *testing.T) {
	e := newEngine()
	roles := makeRoles("祝福パン", "祝福水", "パス1", "パス2", "パス3", "パス4")
	members := []memberdomain.Member{
		makeMember("田中", memberdomain.TierPriest),
		makeMember("佐藤", memberdomain.TierDeacon),
	}

	rows := e.ProjectWeek(roles, members, nil)

	if len(rows) != len(roles) {
		t.Fatalf("expected %d rows, got %d", len(roles), len(rows))
	}
	for i, row := range rows {
		if row.Role.Name != roles[i].Name {
			t.Fatalf("row %d: expected role %q, got %q", i, roles[i].Name, row.Role.Name)
		}
		if row.Member != nil {
			t.Fatalf("row %d: expected unfilled slot, got %v", i, row.Member)
		}
	}
}

func TestProjectWeekMergesAssignments(t *testing.T) {
	e := newEngine()
	roles := makeRoles("祝福パン", "パス1", "パス2")
	tanaka := makeMember("田中", memberdomain.TierPriest)
	sato := makeMember("佐藤", memberdomain.TierDeacon)
	members := []memberdomain.Member{tanaka, sato}

	rows := e.ProjectWeek(roles, members, map[string]snowflake.ID{
		"パス1": sato.ID,
	})

	if rows[0].Member != nil {
		t.Fatalf("祝福パン should be unfilled, got %v", rows[0].Member)
	}
	if rows[1].Member == nil || rows[1].Member.ID != sato.ID {
		t.Fatalf("パス1 should be filled by 佐藤, got %v", rows[1].Member)
	}
	if rows[2].Member != nil {
		t.Fatalf("パス2 should be unfilled, got %v", rows[2].Member)
	}
}

func TestProjectWeekDanglingReference(t *testing.T) {
	e := newEngine()
	roles := makeRoles("パス1")
	members := []memberdomain.Member{makeMember("田中", memberdomain.TierPriest)}
	gone := testNode.Generate()

	rows := e.ProjectWeek(roles, members, map[string]snowflake.ID{"パス1": gone})

	if rows[0].Member != nil {
		t.Fatalf("deleted member must project as unfilled, got %v", rows[0].Member)
	}
}

func TestEligibleCandidatesPrivilegeFilter(t *testing.T) {
	e := newEngine()
	roles := makeRoles("祝福パン", "パス1")
	elder := makeMember("長老", memberdomain.TierMelchizedek)
	priest := makeMember("祭司", memberdomain.TierPriest)
	teacher := makeMember("教師", memberdomain.TierTeacher)
	deacon := makeMember("執事", memberdomain.TierDeacon)
	members := []memberdomain.Member{elder, priest, teacher, deacon}

	blessing := e.EligibleCandidates(roles[0], members, nil)
	if len(blessing) != 2 {
		t.Fatalf("expected 2 candidates for blessing role, got %d", len(blessing))
	}
	for _, m := range blessing {
		if m.Tier == memberdomain.TierTeacher || m.Tier == memberdomain.TierDeacon {
			t.Fatalf("tier %q must not be offered a privileged role", m.Tier)
		}
	}

	passing := e.EligibleCandidates(roles[1], members, nil)
	if len(passing) != len(members) {
		t.Fatalf("unprivileged role must accept every tier, got %d of %d", len(passing), len(members))
	}
}

func TestEligibleCandidatesExcludesBusyMembers(t *testing.T) {
	e := newEngine()
	roles := makeRoles("パス1", "パス2")
	tanaka := makeMember("田中", memberdomain.TierDeacon)
	sato := makeMember("佐藤", memberdomain.TierDeacon)
	members := []memberdomain.Member{tanaka, sato}

	assigned := map[string]snowflake.ID{"パス1": tanaka.ID}

	candidates := e.EligibleCandidates(roles[1], members, assigned)
	for _, m := range candidates {
		if m.ID == tanaka.ID {
			t.Fatalf("member already holding パス1 must not be offered パス2")
		}
	}
	if len(candidates) != 1 || candidates[0].ID != sato.ID {
		t.Fatalf("expected only 佐藤, got %v", candidates)
	}
}

func TestEligibleCandidatesKeepsOwnAssignee(t *testing.T) {
	e := newEngine()
	roles := makeRoles("パス1")
	tanaka := makeMember("田中", memberdomain.TierDeacon)
	members := []memberdomain.Member{tanaka}

	assigned := map[string]snowflake.ID{"パス1": tanaka.ID}

	candidates := e.EligibleCandidates(roles[0], members, assigned)
	if len(candidates) != 1 || candidates[0].ID != tanaka.ID {
		t.Fatalf("the slot's own assignee stays eligible, got %v", candidates)
	}
}

func TestEligibleCandidatesStableOrder(t *testing.T) {
	e := newEngine()
	roles := makeRoles("パス1")
	members := []memberdomain.Member{
		makeMember("一人目", memberdomain.TierDeacon),
		makeMember("二人目", memberdomain.TierTeacher),
		makeMember("三人目", memberdomain.TierPriest),
	}

	candidates := e.EligibleCandidates(roles[0], members, nil)
	if len(candidates) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(candidates))
	}
	for i := range members {
		if candidates[i].ID != members[i].ID {
			t.Fatalf("candidate order must match directory order at %d", i)
		}
	}
}
