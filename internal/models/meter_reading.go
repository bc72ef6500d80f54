package models

import (
	"time"
)

// MeterReading represents one consumption reading for a water meter.
// Readings are append-only facts: a reading is identified by its meter number,
// reading date, and movement-type code, and is never updated after insertion.
type MeterReading struct {
	CreatedAt      time.Time `gorm:"column:created_at" json:"createdAt"`
	MeterNumber    string    `gorm:"size:50;index;not null;column:meter_number" json:"meterNumber"`
	ReadingDate    string    `gorm:"size:50;not null;column:reading_date" json:"readingDate"`
	Value          float64   `gorm:"column:value" json:"value"`
	MovementTypeID int       `gorm:"column:movement_type_id" json:"movementTypeId"`
	ID             uint      `gorm:"primaryKey" json:"id"`
}

// TableName specifies the table name for meter readings.
func (MeterReading) TableName() string {
	return "meter_readings"
}
