package models

type Sample struct {
	ID          uint   `gorm:"primarykey"`
	ProjectID   uint   `gorm:"not null;index;uniqueIndex:idx_samples_project_name"`
	Name        string `gorm:"size:32;not null;uniqueIndex:idx_samples_project_name"`
	Description string

	// Relationships
	Project  Project   `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Spots    []Spot    `gorm:"foreignKey:SampleID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Areas    []Area    `gorm:"foreignKey:SampleID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Profiles []Profile `gorm:"foreignKey:SampleID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
