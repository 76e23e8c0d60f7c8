package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/eventreg/event-registration-api/internal/models"
	"github.com/eventreg/event-registration-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrMissingEventFields   = errors.New("all fields are required: title, description, date, location, organizer_id")
	ErrTitleEmpty           = errors.New("title cannot be empty or contain only whitespace")
	ErrDescriptionEmpty     = errors.New("description cannot be empty or contain only whitespace")
	ErrLocationEmpty        = errors.New("location cannot be empty or contain only whitespace")
	ErrInvalidDate          = errors.New("invalid date format")
	ErrOrganizerNotFound    = errors.New("organizer not found")
	ErrCreatorNotFound      = errors.New("creator not found")
	ErrEventNotFound        = errors.New("event not found")
	ErrNotEventOwner        = errors.New("only the event creator can perform this action")
	ErrNoEventFields        = errors.New("no valid fields to update")
	ErrAlreadyRegistered    = errors.New("user is already registered for this event")
	ErrRegistrationNotFound = errors.New("registration not found")
)

// eventDateLayouts are the accepted date formats, most specific first.
var eventDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// EventService handles event and registration business logic.
type EventService struct {
	eventRepo repository.EventRepository
	regRepo   repository.RegistrationRepository
	userRepo  repository.UserRepository
}

// NewEventService creates a new EventService.
func NewEventService(eventRepo repository.EventRepository, regRepo repository.RegistrationRepository, userRepo repository.UserRepository) *EventService {
	return &EventService{
		eventRepo: eventRepo,
		regRepo:   regRepo,
		userRepo:  userRepo,
	}
}

// CreateEventInput represents input for creating an event. Date arrives as
// the client sent it and is parsed here.
type CreateEventInput struct {
	Title       string
	Description string
	Date        string
	Location    string
	OrganizerID uint64
	Image       string
	CreatorID   uint64
}

// UpdateEventInput represents a partial event update. Nil fields are left
// unchanged.
type UpdateEventInput struct {
	Title       *string
	Description *string
	Date        *string
	Location    *string
	OrganizerID *uint64
}

// CreateEvent validates the input and stores the event.
func (s *EventService) CreateEvent(input CreateEventInput) (*models.Event, error) {
	if input.Title == "" || input.Description == "" || input.Date == "" ||
		input.Location == "" || input.OrganizerID == 0 {
		return nil, ErrMissingEventFields
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleEmpty
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, ErrDescriptionEmpty
	}
	if strings.TrimSpace(input.Location) == "" {
		return nil, ErrLocationEmpty
	}

	date, err := parseEventDate(input.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	if err := s.ensureUserExists(input.OrganizerID, ErrOrganizerNotFound); err != nil {
		return nil, err
	}
	if err := s.ensureUserExists(input.CreatorID, ErrCreatorNotFound); err != nil {
		return nil, err
	}

	event := &models.Event{
		Title:       input.Title,
		Description: input.Description,
		Date:        date,
		Location:    input.Location,
		Image:       input.Image,
		OrganizerID: input.OrganizerID,
		UserID:      input.CreatorID,
	}

	if err := s.eventRepo.Create(event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	return s.eventRepo.FindByID(event.ID, "Organizer")
}

// GetEvent returns an event annotated with its organizer.
func (s *EventService) GetEvent(id uint64) (*models.Event, error) {
	event, err := s.eventRepo.FindByID(id, "Organizer")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to find event: %w", err)
	}

	return event, nil
}

// ListEvents returns all events, soonest first.
func (s *EventService) ListEvents() ([]models.Event, error) {
	events, err := s.eventRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

// ListEventsByOrganizer returns one organizer's events, soonest first.
func (s *EventService) ListEventsByOrganizer(organizerID uint64) ([]models.Event, error) {
	events, err := s.eventRepo.ListByOrganizer(organizerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

// UpdateEvent applies a partial update if the requester created the event.
// Fields not supplied keep their stored value.
func (s *EventService) UpdateEvent(id uint64, input UpdateEventInput, requesterID uint64) (*models.Event, error) {
	event, err := s.eventRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to find event: %w", err)
	}

	if event.UserID != requesterID {
		return nil, ErrNotEventOwner
	}

	if input.Title == nil && input.Description == nil && input.Date == nil &&
		input.Location == nil && input.OrganizerID == nil {
		return nil, ErrNoEventFields
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrTitleEmpty
		}
		event.Title = *input.Title
	}
	if input.Description != nil {
		if strings.TrimSpace(*input.Description) == "" {
			return nil, ErrDescriptionEmpty
		}
		event.Description = *input.Description
	}
	if input.Date != nil {
		date, err := parseEventDate(*input.Date)
		if err != nil {
			return nil, ErrInvalidDate
		}
		event.Date = date
	}
	if input.Location != nil {
		if strings.TrimSpace(*input.Location) == "" {
			return nil, ErrLocationEmpty
		}
		event.Location = *input.Location
	}
	if input.OrganizerID != nil {
		if err := s.ensureUserExists(*input.OrganizerID, ErrOrganizerNotFound); err != nil {
			return nil, err
		}
		event.OrganizerID = *input.OrganizerID
	}

	if err := s.eventRepo.Update(event); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	return s.eventRepo.FindByID(event.ID, "Organizer")
}

// DeleteEvent removes an event if the requester created it. Registrations
// cascade at the database level.
func (s *EventService) DeleteEvent(id, requesterID uint64) error {
	event, err := s.eventRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("failed to find event: %w", err)
	}

	if event.UserID != requesterID {
		return ErrNotEventOwner
	}

	if err := s.eventRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	return nil
}

// Register records a user's registration for an event. A second registration
// for the same pair is an error, not a no-op.
func (s *EventService) Register(eventID, userID uint64) (*models.Registration, error) {
	if _, err := s.eventRepo.FindByID(eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to find event: %w", err)
	}
	if err := s.ensureUserExists(userID, ErrUserNotFound); err != nil {
		return nil, err
	}

	if _, err := s.regRepo.Find(eventID, userID); err == nil {
		return nil, ErrAlreadyRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check registration: %w", err)
	}

	reg := &models.Registration{
		EventID: eventID,
		UserID:  userID,
	}

	if err := s.regRepo.Create(reg); err != nil {
		// Two concurrent registrations race past the pre-check; the unique
		// index rejects the loser.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyRegistered
		}
		return nil, fmt.Errorf("failed to create registration: %w", err)
	}

	return reg, nil
}

// Unregister removes a user's registration for an event.
func (s *EventService) Unregister(eventID, userID uint64) error {
	rows, err := s.regRepo.Delete(eventID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete registration: %w", err)
	}
	if rows == 0 {
		return ErrRegistrationNotFound
	}
	return nil
}

func (s *EventService) ensureUserExists(id uint64, notFound error) error {
	if _, err := s.userRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}
	return nil
}

func parseEventDate(value string) (time.Time, error) {
	for _, layout := range eventDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDate
}
