package models

type User struct {
	ID             uint   `gorm:"primarykey"`
	Username       string `gorm:"size:32;uniqueIndex;not null"`
	Email          string
	HashedPassword string `gorm:"not null"`

	// Relationships
	Projects []Project `gorm:"many2many:users_projects;constraint:OnDelete:CASCADE"`
}
