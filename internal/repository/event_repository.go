package repository

import (
	"github.com/eventreg/event-registration-api/internal/models"
	"gorm.io/gorm"
)

// GormEventRepository is a GORM implementation of EventRepository
type GormEventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *gorm.DB) EventRepository {
	return &GormEventRepository{db: db}
}

// Create creates a new event
func (r *GormEventRepository) Create(event *models.Event) error {
	return r.db.Create(event).Error
}

// FindByID finds an event by ID with optional preloading
func (r *GormEventRepository) FindByID(id uint64, preload ...string) (*models.Event, error) {
	var event models.Event
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&event, id).Error; err != nil {
		return nil, err
	}

	return &event, nil
}

// List returns all events, soonest first
func (r *GormEventRepository) List() ([]models.Event, error) {
	var events []models.Event
	if err := r.db.Preload("Organizer").Order("date ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// ListByOrganizer returns one organizer's events, soonest first
func (r *GormEventRepository) ListByOrganizer(organizerID uint64) ([]models.Event, error) {
	var events []models.Event
	if err := r.db.Preload("Organizer").
		Where("organizer_id = ?", organizerID).
		Order("date ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// Update persists changes to an event
func (r *GormEventRepository) Update(event *models.Event) error {
	return r.db.Save(event).Error
}

// Delete removes an event. Its registrations are removed by the database's
// ON DELETE CASCADE.
func (r *GormEventRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Event{}, id).Error
}
