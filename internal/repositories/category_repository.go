package repositories

import (
	"strings"

	"blog_backend/internal/models"

	"gorm.io/gorm"
)

type CategoryRepository interface {
	FindOrCreateByNames(db *gorm.DB, names []string) ([]models.Category, error)
	FindAll(db *gorm.DB) ([]models.Category, error)
}

type CategoryRepositoryImpl struct{}

func NewCategoryRepository() CategoryRepository {
	return &CategoryRepositoryImpl{}
}

// FindOrCreateByNames resolves each name to a category row, creating rows
// that do not exist yet. Names are trimmed; empty ones are skipped.
func (r *CategoryRepositoryImpl) FindOrCreateByNames(db *gorm.DB, names []string) ([]models.Category, error) {
	var categories []models.Category
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		var category models.Category
		err := db.Where(models.Category{Name: name}).FirstOrCreate(&category).Error
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, nil
}

func (r *CategoryRepositoryImpl) FindAll(db *gorm.DB) ([]models.Category, error) {
	var categories []models.Category
	if err := db.Order("name").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}
