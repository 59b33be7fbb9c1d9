package models

import (
	"gorm.io/datatypes"
)

// ProfileSpot is one ordered point along a profile transect. Index defines
// the traversal order and is unique within its profile.
type ProfileSpot struct {
	ID        uint                                   `gorm:"primarykey"`
	ProfileID uint                                   `gorm:"not null;index;uniqueIndex:idx_profilespots_profile_index"`
	Index     int                                    `gorm:"column:index;not null;uniqueIndex:idx_profilespots_profile_index"`
	Values    datatypes.JSONType[map[string]float64] `gorm:"not null"`

	// Relationships
	Profile Profile `gorm:"foreignKey:ProfileID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

func (ProfileSpot) TableName() string {
	return "profilespots"
}
