package repositories

import (
	"errors"

	"blog_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrCommentNotFound = errors.New("comment not found")
	ErrLikeNotFound    = errors.New("like not found")
	ErrLikeExists      = errors.New("like already exists")
)

type CommentRepository interface {
	FindByID(db *gorm.DB, id string) (*models.Comment, error)
	Create(db *gorm.DB, comment *models.Comment) error
	Update(db *gorm.DB, comment *models.Comment) error
	// DeleteWithLikes removes the comment's likes and the comment in one
	// transaction.
	DeleteWithLikes(db *gorm.DB, id string) error

	FindLikes(db *gorm.DB, commentID string) ([]models.Like, error)
	CreateLike(db *gorm.DB, like *models.Like) error
	FindLike(db *gorm.DB, commentID, author string) (*models.Like, error)
	DeleteLike(db *gorm.DB, id string) error
}

type CommentRepositoryImpl struct{}

func NewCommentRepository() CommentRepository {
	return &CommentRepositoryImpl{}
}

func (r *CommentRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Comment, error) {
	var comment models.Comment
	err := db.First(&comment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return &comment, nil
}

func (r *CommentRepositoryImpl) Create(db *gorm.DB, comment *models.Comment) error {
	return db.Create(comment).Error
}

func (r *CommentRepositoryImpl) Update(db *gorm.DB, comment *models.Comment) error {
	return db.Save(comment).Error
}

func (r *CommentRepositoryImpl) DeleteWithLikes(db *gorm.DB, id string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Like{}, "comment_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Comment{}, "id = ?", id).Error
	})
}

// --- Likes ---

func (r *CommentRepositoryImpl) FindLikes(db *gorm.DB, commentID string) ([]models.Like, error) {
	var likes []models.Like
	err := db.Order("created_at").Find(&likes, "comment_id = ?", commentID).Error
	if err != nil {
		return nil, err
	}
	return likes, nil
}

// CreateLike inserts the like; the unique (comment_id, author) index turns a
// concurrent duplicate into ErrLikeExists instead of a second row.
func (r *CommentRepositoryImpl) CreateLike(db *gorm.DB, like *models.Like) error {
	err := db.Create(like).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrLikeExists
	}
	return err
}

func (r *CommentRepositoryImpl) FindLike(db *gorm.DB, commentID, author string) (*models.Like, error) {
	var like models.Like
	err := db.First(&like, "comment_id = ? AND author = ?", commentID, author).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLikeNotFound
		}
		return nil, err
	}
	return &like, nil
}

func (r *CommentRepositoryImpl) DeleteLike(db *gorm.DB, id string) error {
	return db.Delete(&models.Like{}, "id = ?", id).Error
}
