package models

import "time"

type Event struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Date        time.Time `gorm:"not null;index" json:"date"`
	Location    string    `gorm:"type:varchar(255);not null" json:"location"`
	Image       string    `gorm:"type:varchar(255)" json:"image,omitempty"`
	OrganizerID uint64    `gorm:"not null;index" json:"organizer_id"`
	UserID      uint64    `gorm:"not null;index" json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations. Deleting a user removes their events at the database level.
	Organizer User `gorm:"foreignKey:OrganizerID;constraint:OnDelete:CASCADE" json:"-"`
	Creator   User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
