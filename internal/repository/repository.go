package repository

import (
	"github.com/eventreg/event-registration-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// List returns all users
	List() ([]models.User, error)

	// Update persists changes to a user
	Update(user *models.User) error

	// Delete removes a user; dependent events and registrations cascade
	Delete(id uint64) error
}

// EventRepository defines the interface for event data access
type EventRepository interface {
	// Create creates a new event
	Create(event *models.Event) error

	// FindByID finds an event by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Event, error)

	// List returns all events ordered by date ascending
	List() ([]models.Event, error)

	// ListByOrganizer returns one organizer's events ordered by date ascending
	ListByOrganizer(organizerID uint64) ([]models.Event, error)

	// Update persists changes to an event
	Update(event *models.Event) error

	// Delete removes an event; its registrations cascade
	Delete(id uint64) error
}

// RegistrationRepository defines the interface for registration data access
type RegistrationRepository interface {
	// Create creates a new registration
	Create(reg *models.Registration) error

	// Find finds the registration for an (event, user) pair
	Find(eventID, userID uint64) (*models.Registration, error)

	// Delete removes the registration for an (event, user) pair and reports
	// how many rows were removed
	Delete(eventID, userID uint64) (int64, error)

	// ListByEvent returns all registrations for an event
	ListByEvent(eventID uint64) ([]models.Registration, error)
}
