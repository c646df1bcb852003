package repositories

import (
	"errors"

	"blog_backend/internal/models"

	"gorm.io/gorm"
)

var ErrVerificationNotFound = errors.New("verification token not found")

type VerificationRepository interface {
	Create(db *gorm.DB, verification *models.UserVerification) error
	FindByToken(db *gorm.DB, token string) (*models.UserVerification, error)
	DeleteForUser(db *gorm.DB, userID string) error
	CountForUser(db *gorm.DB, userID string) (int64, error)
}

type VerificationRepositoryImpl struct{}

func NewVerificationRepository() VerificationRepository {
	return &VerificationRepositoryImpl{}
}

func (r *VerificationRepositoryImpl) Create(db *gorm.DB, verification *models.UserVerification) error {
	return db.Create(verification).Error
}

func (r *VerificationRepositoryImpl) FindByToken(db *gorm.DB, token string) (*models.UserVerification, error) {
	var v models.UserVerification
	err := db.First(&v, "token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVerificationNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r *VerificationRepositoryImpl) DeleteForUser(db *gorm.DB, userID string) error {
	return db.Delete(&models.UserVerification{}, "user_id = ?", userID).Error
}

func (r *VerificationRepositoryImpl) CountForUser(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&models.UserVerification{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
