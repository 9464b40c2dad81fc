package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Unavailability marks one member as unable to serve one week. Each
// (member, week) pair is its own row so concurrent edits for different
// members never overwrite each other.
type Unavailability struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	MemberID  snowflake.ID `gorm:"not null;uniqueIndex:uq_unavailabilities_member_week" json:"member_id"`
	WeekKey   string       `gorm:"not null;uniqueIndex:uq_unavailabilities_member_week" json:"week_key"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Unavailability) TableName() string { return "unavailabilities" }
