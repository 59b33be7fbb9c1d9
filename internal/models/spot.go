package models

import (
	"gorm.io/datatypes"
)

// Spot is a single point measurement on a sample. Values is an open-ended
// mapping of measurement-channel name to numeric value (e.g. oxide weight
// percentages), stored as a JSON column.
type Spot struct {
	ID       uint                                   `gorm:"primarykey"`
	SampleID uint                                   `gorm:"not null;index;uniqueIndex:idx_spots_sample_label"`
	Label    string                                 `gorm:"size:32;not null;uniqueIndex:idx_spots_sample_label"`
	Mineral  *string                                `gorm:"size:32"`
	Values   datatypes.JSONType[map[string]float64] `gorm:"not null"`

	// Relationships
	Sample Sample `gorm:"foreignKey:SampleID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
