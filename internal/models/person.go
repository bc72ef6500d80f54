package models

import (
	"time"
)

// Person represents a natural or legal person in the municipal registry.
// The document value is the natural key (national ID or corporate ID); it is
// stable and never reused, so re-sighting a document in a feed updates the
// existing row instead of creating a duplicate.
type Person struct {
	CreatedAt     time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"column:updated_at" json:"updatedAt"`
	DocumentValue string    `gorm:"size:50;uniqueIndex;not null;column:document_value" json:"documentValue"`
	Name          string    `gorm:"size:255;column:name" json:"name"`
	Email         string    `gorm:"size:255;column:email" json:"email"`
	Phone         string    `gorm:"size:50;column:phone" json:"phone"`
	ID            uint      `gorm:"primaryKey" json:"id"`
}

// TableName specifies the table name for the persons registry.
func (Person) TableName() string {
	return "persons"
}
