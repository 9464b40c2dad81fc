// Package engine merges the role registry, the member directory and a
// week's partial assignment set into complete display rows, and decides
// which members may still fill which role.
package engine

import (
	"github.com/bwmarrin/snowflake"
	memberdomain "github.com/wardworks/roster/internal/member/domain"
	roledomain "github.com/wardworks/roster/internal/role/domain"
	scheduledomain "github.com/wardworks/roster/internal/schedule/domain"
)

// Engine evaluates eligibility against a fixed set of privileged tiers.
type Engine struct {
	privileged map[memberdomain.Tier]struct{}
}

// New builds an Engine. tiers are the priesthood offices allowed to
// fill privileged roles.
func New(tiers []memberdomain.Tier) *Engine {
	privileged := make(map[memberdomain.Tier]struct{}, len(tiers))
	for _, tier := range tiers {
		privileged[tier] = struct{}{}
	}
	return &Engine{privileged: privileged}
}

// ProjectWeek produces exactly one row per role, in registry order.
// Roles absent from assigned are unfilled; an assigned member id that
// no longer exists in members degrades to unfilled rather than erroring.
func (e *Engine) ProjectWeek(
	roles []roledomain.Role,
	members []memberdomain.Member,
	assigned map[string]snowflake.ID,
) []scheduledomain.Row {
	byID := make(map[snowflake.ID]*memberdomain.Member, len(members))
	for i := range members {
		byID[members[i].ID] = &members[i]
	}

	rows := make([]scheduledomain.Row, 0, len(roles))
	for _, role := range roles {
		row := scheduledomain.Row{Role: role}
		if memberID, ok := assigned[role.Name]; ok {
			row.Member = byID[memberID]
		}
		rows = append(rows, row)
	}
	return rows
}

// EligibleCandidates returns the members assignable to role this week,
// preserving directory order. A privileged role retains only privileged
// tiers; members already filling a different role this week are
// withheld, while the member currently holding this very role stays
// eligible so re-confirming is a no-op.
func (e *Engine) EligibleCandidates(
	role roledomain.Role,
	members []memberdomain.Member,
	assigned map[string]snowflake.ID,
) []memberdomain.Member {
	taken := make(map[snowflake.ID]struct{}, len(assigned))
	for assignedRole, memberID := range assigned {
		if assignedRole == role.Name {
			continue
		}
		taken[memberID] = struct{}{}
	}

	candidates := make([]memberdomain.Member, 0, len(members))
	for _, member := range members {
		if role.Privileged {
			if _, ok := e.privileged[member.Tier]; !ok {
				continue
			}
		}
		if _, busy := taken[member.ID]; busy {
			continue
		}
		candidates = append(candidates, member)
	}
	return candidates
}
