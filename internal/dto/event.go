package dto

import (
	"time"

	"github.com/eventreg/event-registration-api/internal/models"
)

// EventDTO represents an event in API responses, annotated with the organizer
// username when the relation was preloaded.
type EventDTO struct {
	ID            uint64    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Date          time.Time `json:"date"`
	Location      string    `json:"location"`
	Image         string    `json:"image,omitempty"`
	OrganizerID   uint64    `json:"organizer_id"`
	OrganizerName string    `json:"organizer_name,omitempty"`
	UserID        uint64    `json:"user_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// RegistrationDTO represents an event registration in API responses
type RegistrationDTO struct {
	ID           uint64    `json:"id"`
	EventID      uint64    `json:"event_id"`
	UserID       uint64    `json:"user_id"`
	RegisteredAt time.Time `json:"registered_at"`
}

// ToEventDTO converts an Event model to EventDTO
func ToEventDTO(event models.Event) EventDTO {
	dto := EventDTO{
		ID:          event.ID,
		Title:       event.Title,
		Description: event.Description,
		Date:        event.Date,
		Location:    event.Location,
		Image:       event.Image,
		OrganizerID: event.OrganizerID,
		UserID:      event.UserID,
		CreatedAt:   event.CreatedAt,
		UpdatedAt:   event.UpdatedAt,
	}

	// Include organizer name if preloaded
	if event.Organizer.ID != 0 {
		dto.OrganizerName = event.Organizer.Username
	}

	return dto
}

// ToEventDTOs converts a slice of Event models
func ToEventDTOs(events []models.Event) []EventDTO {
	dtos := make([]EventDTO, len(events))
	for i, event := range events {
		dtos[i] = ToEventDTO(event)
	}
	return dtos
}

// ToRegistrationDTO converts a Registration model to RegistrationDTO
func ToRegistrationDTO(reg models.Registration) RegistrationDTO {
	return RegistrationDTO{
		ID:           reg.ID,
		EventID:      reg.EventID,
		UserID:       reg.UserID,
		RegisteredAt: reg.RegisteredAt,
	}
}
