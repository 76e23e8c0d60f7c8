package repository

import (
	"github.com/eventreg/event-registration-api/internal/models"
	"gorm.io/gorm"
)

// GormRegistrationRepository is a GORM implementation of RegistrationRepository
type GormRegistrationRepository struct {
	db *gorm.DB
}

// NewRegistrationRepository creates a new RegistrationRepository
func NewRegistrationRepository(db *gorm.DB) RegistrationRepository {
	return &GormRegistrationRepository{db: db}
}

// Create creates a new registration. A concurrent insert for the same pair
// fails with gorm.ErrDuplicatedKey via the unique index.
func (r *GormRegistrationRepository) Create(reg *models.Registration) error {
	return r.db.Create(reg).Error
}

// Find finds the registration for an (event, user) pair
func (r *GormRegistrationRepository) Find(eventID, userID uint64) (*models.Registration, error) {
	var reg models.Registration
	if err := r.db.Where("event_id = ? AND user_id = ?", eventID, userID).
		First(&reg).Error; err != nil {
		return nil, err
	}
	return &reg, nil
}

// Delete removes the registration for an (event, user) pair
func (r *GormRegistrationRepository) Delete(eventID, userID uint64) (int64, error) {
	result := r.db.Where("event_id = ? AND user_id = ?", eventID, userID).
		Delete(&models.Registration{})
	return result.RowsAffected, result.Error
}

// ListByEvent returns all registrations for an event
func (r *GormRegistrationRepository) ListByEvent(eventID uint64) ([]models.Registration, error) {
	var regs []models.Registration
	if err := r.db.Where("event_id = ?", eventID).Find(&regs).Error; err != nil {
		return nil, err
	}
	return regs, nil
}
