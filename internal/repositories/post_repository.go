package repositories

import (
	"errors"

	"blog_backend/internal/models"

	"gorm.io/gorm"
)

var ErrPostNotFound = errors.New("post not found")

type PostRepository interface {
	FindPage(db *gorm.DB, page, perPage int) ([]models.Post, int64, error)
	FindByID(db *gorm.DB, id string) (*models.Post, error)
	Create(db *gorm.DB, post *models.Post) error
	Update(db *gorm.DB, post *models.Post) error
	Delete(db *gorm.DB, id string) error
	ReplaceCategories(db *gorm.DB, post *models.Post, categories []models.Category) error
}

type PostRepositoryImpl struct{}

func NewPostRepository() PostRepository {
	return &PostRepositoryImpl{}
}

func (r *PostRepositoryImpl) FindPage(db *gorm.DB, page, perPage int) ([]models.Post, int64, error) {
	if page < 1 {
		page = 1
	}

	var total int64
	if err := db.Model(&models.Post{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []models.Post
	err := db.Order("created_at DESC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *PostRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Post, error) {
	var post models.Post
	err := db.Preload("Comments").First(&post, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (r *PostRepositoryImpl) Create(db *gorm.DB, post *models.Post) error {
	return db.Create(post).Error
}

func (r *PostRepositoryImpl) Update(db *gorm.DB, post *models.Post) error {
	return db.Save(post).Error
}

func (r *PostRepositoryImpl) Delete(db *gorm.DB, id string) error {
	return db.Delete(&models.Post{}, "id = ?", id).Error
}

// ReplaceCategories rewrites the category_post pivot rows for the post.
func (r *PostRepositoryImpl) ReplaceCategories(db *gorm.DB, post *models.Post, categories []models.Category) error {
	return db.Model(post).Association("CategoryList").Replace(categories)
}
