package models

import (
	"gorm.io/datatypes"
)

type Area struct {
	ID       uint                                   `gorm:"primarykey"`
	SampleID uint                                   `gorm:"not null;index;uniqueIndex:idx_areas_sample_label"`
	Label    string                                 `gorm:"size:32;not null;uniqueIndex:idx_areas_sample_label"`
	Weight   float64                                `gorm:"not null;default:1.0"`
	Values   datatypes.JSONType[map[string]float64] `gorm:"not null"`

	// Relationships
	Sample Sample `gorm:"foreignKey:SampleID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
