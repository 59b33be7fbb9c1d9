package models

type Project struct {
	ID          uint   `gorm:"primarykey"`
	Name        string `gorm:"size:32;not null"`
	Description string

	// Relationships
	Samples []Sample `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Users   []User   `gorm:"many2many:users_projects;constraint:OnDelete:CASCADE"`
}
