package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-papeleria-pos/internal/model"
)

type TillRepository interface {
	Create(session *model.TillSession) error
	Save(tx *gorm.DB, session *model.TillSession) error
	FindByID(id uuid.UUID) (*model.TillSession, error)
	FindActiveByUser(userID uuid.UUID) (*model.TillSession, error)
	HasOpen(userID uuid.UUID) (bool, error)
	FindByUser(userID uuid.UUID) ([]model.TillSession, error)
	FindAll() ([]model.TillSession, error)
	FindByDate(date time.Time) ([]model.TillSession, error)
}

type tillRepo struct {
	db *gorm.DB
}

func NewTillRepo(db *gorm.DB) TillRepository {
	return &tillRepo{db}
}

func (r *tillRepo) Create(session *model.TillSession) error {
	return r.db.Create(session).Error
}

func (r *tillRepo) Save(tx *gorm.DB, session *model.TillSession) error {
	return tx.Save(session).Error
}

func (r *tillRepo) FindByID(id uuid.UUID) (*model.TillSession, error) {
	var session model.TillSession
	if err := r.db.Preload("User").First(&session, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *tillRepo) FindActiveByUser(userID uuid.UUID) (*model.TillSession, error) {
	var session model.TillSession
	err := r.db.Preload("User").
		Where("user_id = ? AND closed = ?", userID, false).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *tillRepo) HasOpen(userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&model.TillSession{}).
		Where("user_id = ? AND closed = ?", userID, false).
		Count(&count).Error
	return count > 0, err
}

func (r *tillRepo) FindByUser(userID uuid.UUID) ([]model.TillSession, error) {
	var sessions []model.TillSession
	err := r.db.Preload("User").
		Where("user_id = ?", userID).
		Order("opened_at DESC").Find(&sessions).Error
	return sessions, err
}

func (r *tillRepo) FindAll() ([]model.TillSession, error) {
	var sessions []model.TillSession
	err := r.db.Preload("User").Order("opened_at DESC").Find(&sessions).Error
	return sessions, err
}

func (r *tillRepo) FindByDate(date time.Time) ([]model.TillSession, error) {
	dayStart := date.Truncate(24 * time.Hour)
	var sessions []model.TillSession
	err := r.db.Preload("User").
		Where("opened_at >= ? AND opened_at < ?", dayStart, dayStart.Add(24*time.Hour)).
		Order("opened_at DESC").Find(&sessions).Error
	return sessions, err
}
