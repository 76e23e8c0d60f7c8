package models

import "time"

// Registration joins a user to an event. A user may hold at most one
// registration per event, enforced by the composite unique index.
type Registration struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	EventID      uint64    `gorm:"not null;uniqueIndex:idx_registrations_event_user" json:"event_id"`
	UserID       uint64    `gorm:"not null;uniqueIndex:idx_registrations_event_user" json:"user_id"`
	RegisteredAt time.Time `gorm:"autoCreateTime" json:"registered_at"`

	// Relations. Deleting an event or user removes its registrations at the
	// database level.
	Event Event `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"-"`
	User  User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
