package models

import "gorm.io/datatypes"

// AuditLog records mutating operations on habits, check-ins and categories.
type AuditLog struct {
	Base
	Action       string         `gorm:"not null" json:"action"`
	ResourceType string         `gorm:"not null;index" json:"resource_type"`
	ResourceID   string         `gorm:"type:varchar(36);index" json:"resource_id"`
	IPAddress    string         `json:"ip_address"`
	Changes      datatypes.JSON `json:"changes,omitempty"`
}
