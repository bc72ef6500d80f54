package models

import (
	"time"
)

// Ownership represents the association between a person and a property,
// typed by an association-type code from the operational feed. Disassociation
// sets EndedAt instead of deleting the row, so ownership history is preserved.
type Ownership struct {
	StartedAt         time.Time  `gorm:"column:started_at" json:"startedAt"`
	EndedAt           *time.Time `gorm:"column:ended_at" json:"endedAt,omitempty"`
	DocumentValue     string     `gorm:"size:50;index;not null;column:document_value" json:"documentValue"`
	ParcelNumber      string     `gorm:"size:50;index;not null;column:parcel_number" json:"parcelNumber"`
	AssociationTypeID int        `gorm:"column:association_type_id" json:"associationTypeId"`
	ID                uint       `gorm:"primaryKey" json:"id"`
}

// Active reports whether the association is still in effect.
func (o *Ownership) Active() bool {
	return o.EndedAt == nil
}

// TableName specifies the table name for property ownership associations.
func (Ownership) TableName() string {
	return "property_owners"
}

// Owner is the read model for the owners listing: an active association joined
// with the person and property it links.
type Owner struct {
	DocumentValue     string `json:"documentValue"`
	Name              string `json:"name"`
	ParcelNumber      string `json:"parcelNumber"`
	AssociationTypeID int    `json:"associationTypeId"`
}
