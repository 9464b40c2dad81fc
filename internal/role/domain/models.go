package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Role is one named duty slot of the weekly roster. Privilege is a
// stored attribute rather than a match on the display name, so renaming
// a role never silently drops its restriction.
type Role struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	Name       string       `gorm:"uniqueIndex:uq_roles_name;not null" json:"name"`
	Privileged bool         `gorm:"not null;default:false" json:"privileged"`
	Position   int          `gorm:"not null" json:"position"`
	CreatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Role) TableName() string { return "roles" }
