package migrations

import (
	"time"

	"gorm.io/gorm"
)

// Run applies the users schema. The Postgres adapter does not migrate on its own.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(&userRecord{})
}

// User schema mirrors the users Postgres adapter.
type userRecord struct {
	ID              int64     `gorm:"primaryKey;column:id"`
	FirstName       string    `gorm:"column:first_name"`
	LastName        string    `gorm:"column:last_name;index"`
	Email           string    `gorm:"column:email"`
	Active          bool      `gorm:"column:active;not null;default:false"`
	ActivationToken string    `gorm:"column:activation_token;size:128"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }
