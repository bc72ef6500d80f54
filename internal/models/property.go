package models

import (
	"time"
)

// Property represents a registered municipal property (finca).
// The parcel number is the natural key; the meter number links the property
// to its water meter for consumption readings.
type Property struct {
	CreatedAt    time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"column:updated_at" json:"updatedAt"`
	ParcelNumber string    `gorm:"size:50;uniqueIndex;not null;column:parcel_number" json:"parcelNumber"`
	MeterNumber  string    `gorm:"size:50;index;column:meter_number" json:"meterNumber"`
	RegisteredAt string    `gorm:"size:50;column:registered_at" json:"registeredAt"`
	Area         float64   `gorm:"column:area" json:"area"`
	FiscalValue  float64   `gorm:"column:fiscal_value" json:"fiscalValue"`
	UsageTypeID  int       `gorm:"column:usage_type_id" json:"usageTypeId"`
	ZoneTypeID   int       `gorm:"column:zone_type_id" json:"zoneTypeId"`
	ID           uint      `gorm:"primaryKey" json:"id"`
}

// TableName specifies the table name for the properties registry.
func (Property) TableName() string {
	return "properties"
}
