package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	memberdomain "github.com/wardworks/roster/internal/member/domain"
	roledomain "github.com/wardworks/roster/internal/role/domain"
)

// Assignment links one slot (week, role) to at most one member. The
// member reference is nullable and may dangle after a member delete;
// projection treats a dangling reference as an unfilled slot.
type Assignment struct {
	ID        snowflake.ID  `gorm:"primaryKey" json:"id"`
	WeekKey   string        `gorm:"not null;uniqueIndex:uq_assignments_slot" json:"week_key"`
	Role      string        `gorm:"not null;uniqueIndex:uq_assignments_slot" json:"role"`
	MemberID  *snowflake.ID `json:"member_id,omitempty"`
	CreatedAt time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Assignment) TableName() string { return "assignments" }

// Row is one display line of the weekly roster: a role in registry
// order with its assignee, or nil when the slot is unfilled.
type Row struct {
	Role   roledomain.Role      `json:"role"`
	Member *memberdomain.Member `json:"member,omitempty"`
}

// WeekSchedule is the fully merged view of one week.
type WeekSchedule struct {
	WeekKey string `json:"week_key"`
	Rows    []Row  `json:"rows"`
}
