package models

type Profile struct {
	ID       uint   `gorm:"primarykey"`
	SampleID uint   `gorm:"not null;index;uniqueIndex:idx_profiles_sample_label"`
	Label    string `gorm:"size:32;not null;uniqueIndex:idx_profiles_sample_label"`
	Mineral  string `gorm:"size:32;not null"`

	// Relationships
	Sample Sample        `gorm:"foreignKey:SampleID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Spots  []ProfileSpot `gorm:"foreignKey:ProfileID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
