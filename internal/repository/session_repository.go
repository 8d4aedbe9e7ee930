package repository

import (
	"errors"
	"time"

	"github.com/taskboard/taskboard-api/internal/models"
	"gorm.io/gorm"
)

// GormSessionRepository is a GORM implementation of SessionRepository
type GormSessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &GormSessionRepository{db: db}
}

// Create appends a session record with the next connection number.
func (r *GormSessionRepository) Create(session *models.UserSession) error {
	var count int64
	if err := r.db.Model(&models.UserSession{}).
		Where("user_id = ?", session.UserID).
		Count(&count).Error; err != nil {
		return err
	}
	session.ConnectionNumber = int(count) + 1

	return r.db.Create(session).Error
}

// ListByUser returns a user's sessions, newest first
func (r *GormSessionRepository) ListByUser(userID uint64) ([]models.UserSession, error) {
	var sessions []models.UserSession
	if err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

// DeleteByUser removes all of a user's sessions
func (r *GormSessionRepository) DeleteByUser(userID uint64) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.UserSession{}).Error
}

// TouchLatest updates last_activity_at on the user's newest session
func (r *GormSessionRepository) TouchLatest(userID uint64) error {
	var session models.UserSession
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	return r.db.Model(&models.UserSession{}).
		Where("id = ?", session.ID).
		Update("last_activity_at", time.Now()).Error
}
