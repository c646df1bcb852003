package services

import (
	"strings"
	"time"

	"blog_backend/internal/auth"
	"blog_backend/internal/models"
	"blog_backend/internal/repositories"
	"blog_backend/internal/services/dto"
	"blog_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// PostsPerPage is the fixed page size of the public listing.
const PostsPerPage = 5

type PostService interface {
	List(db *gorm.DB, page int) (*dto.PostPage, error)
	Get(db *gorm.DB, id string) (*models.Post, error)
	Create(db *gorm.DB, identity *auth.Identity, req *dto.CreatePostRequest) error
	Update(db *gorm.DB, identity *auth.Identity, id string, req *dto.UpdatePostRequest) error
	Delete(db *gorm.DB, identity *auth.Identity, id string) error
}

type PostServiceImpl struct {
	postRepo     repositories.PostRepository
	categoryRepo repositories.CategoryRepository
}

func NewPostService(postRepo repositories.PostRepository, categoryRepo repositories.CategoryRepository) PostService {
	return &PostServiceImpl{
		postRepo:     postRepo,
		categoryRepo: categoryRepo,
	}
}

func (s *PostServiceImpl) List(db *gorm.DB, page int) (*dto.PostPage, error) {
	if page < 1 {
		page = 1
	}

	posts, total, err := s.postRepo.FindPage(db, page, PostsPerPage)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	lastPage := int((total + PostsPerPage - 1) / PostsPerPage)
	if lastPage < 1 {
		lastPage = 1
	}

	return &dto.PostPage{
		Data:     posts,
		Total:    total,
		Page:     page,
		PerPage:  PostsPerPage,
		LastPage: lastPage,
	}, nil
}

func (s *PostServiceImpl) Get(db *gorm.DB, id string) (*models.Post, error) {
	post, err := s.postRepo.FindByID(db, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPostNotFound) {
			return nil, apperrors.NewNotFoundError("Not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return post, nil
}

func (s *PostServiceImpl) Create(db *gorm.DB, identity *auth.Identity, req *dto.CreatePostRequest) error {
	if !auth.Can(identity, "post", "create", "") {
		return apperrors.ErrNotWork
	}

	now := time.Now()
	post := &models.Post{
		Title:       req.Title,
		Content:     req.Content,
		Categories:  req.Categories,
		Author:      identity.Login,
		PublishDate: &now,
		Status:      models.PostStatusActive,
	}

	if err := s.postRepo.Create(db, post); err != nil {
		return apperrors.InternalError(err)
	}
	return s.attachCategories(db, post, req.Categories)
}

func (s *PostServiceImpl) Update(db *gorm.DB, identity *auth.Identity, id string, req *dto.UpdatePostRequest) error {
	if !auth.Can(identity, "post", "update", "") {
		return apperrors.ErrNotWork
	}

	post, err := s.postRepo.FindByID(db, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPostNotFound) {
			return apperrors.NewNotFoundError("Not found")
		}
		return apperrors.InternalError(err)
	}

	if req.Empty() {
		return apperrors.NewBadRequestError("Http bad request.")
	}

	if req.Title != "" {
		post.Title = req.Title
	}
	if req.Content != "" {
		post.Content = req.Content
	}
	if req.Categories != "" {
		post.Categories = req.Categories
	}

	if err := s.postRepo.Update(db, post); err != nil {
		return apperrors.InternalError(err)
	}
	if req.Categories != "" {
		return s.attachCategories(db, post, req.Categories)
	}
	return nil
}

func (s *PostServiceImpl) Delete(db *gorm.DB, identity *auth.Identity, id string) error {
	if !auth.Can(identity, "post", "delete", "") {
		return apperrors.ErrNotWork
	}

	if _, err := s.postRepo.FindByID(db, id); err != nil {
		if apperrors.Is(err, repositories.ErrPostNotFound) {
			return apperrors.NewNotFoundError("Not found")
		}
		return apperrors.InternalError(err)
	}

	if err := s.postRepo.Delete(db, id); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// attachCategories mirrors the free-text categories field onto the
// category_post pivot so posts stay queryable by category.
func (s *PostServiceImpl) attachCategories(tx *gorm.DB, post *models.Post, categories string) error {
	names := strings.Split(categories, ",")
	rows, err := s.categoryRepo.FindOrCreateByNames(tx, names)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.postRepo.ReplaceCategories(tx, post, rows); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}
