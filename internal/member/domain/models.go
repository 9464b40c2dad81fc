package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Tier is a member's priesthood office. It gates which roles the
// member may be offered.
type Tier string

const (
	TierMelchizedek Tier = "melchizedek"
	TierPriest      Tier = "priest"
	TierTeacher     Tier = "teacher"
	TierDeacon      Tier = "deacon"
)

// ParseTier validates a wire value into a Tier.
func ParseTier(raw string) (Tier, error) {
	switch Tier(strings.ToLower(strings.TrimSpace(raw))) {
	case TierMelchizedek:
		return TierMelchizedek, nil
	case TierPriest:
		return TierPriest, nil
	case TierTeacher:
		return TierTeacher, nil
	case TierDeacon:
		return TierDeacon, nil
	default:
		return "", ErrInvalidTier
	}
}

type Member struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Name      string       `gorm:"not null" json:"name"`
	Tier      Tier         `gorm:"type:text;not null" json:"tier"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Member) TableName() string { return "members" }
