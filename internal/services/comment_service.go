package services

import (
	"blog_backend/internal/auth"
	"blog_backend/internal/models"
	"blog_backend/internal/repositories"
	"blog_backend/internal/services/dto"
	"blog_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type CommentService interface {
	Get(db *gorm.DB, id string) (*models.Comment, error)
	GetLikes(db *gorm.DB, commentID string) ([]models.Like, error)
	Create(db *gorm.DB, identity *auth.Identity, req *dto.CreateCommentRequest) error
	Update(db *gorm.DB, identity *auth.Identity, id string, req *dto.UpdateCommentRequest) error
	Delete(db *gorm.DB, identity *auth.Identity, id string) error
	Like(db *gorm.DB, identity *auth.Identity, commentID string, req *dto.LikeRequest) error
	Unlike(db *gorm.DB, identity *auth.Identity, commentID string) error
}

type CommentServiceImpl struct {
	commentRepo repositories.CommentRepository
	postRepo    repositories.PostRepository
}

func NewCommentService(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository) CommentService {
	return &CommentServiceImpl{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

func (s *CommentServiceImpl) Get(db *gorm.DB, id string) (*models.Comment, error) {
	return s.findComment(db, id)
}

func (s *CommentServiceImpl) GetLikes(db *gorm.DB, commentID string) ([]models.Like, error) {
	if _, err := s.findComment(db, commentID); err != nil {
		return nil, err
	}

	likes, err := s.commentRepo.FindLikes(db, commentID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return likes, nil
}

func (s *CommentServiceImpl) Create(db *gorm.DB, identity *auth.Identity, req *dto.CreateCommentRequest) error {
	if !auth.Can(identity, "comment", "create", "") {
		return apperrors.ErrNotWork
	}

	if _, err := s.postRepo.FindByID(db, req.PostID); err != nil {
		if apperrors.Is(err, repositories.ErrPostNotFound) {
			return apperrors.NewNotFoundError("Not found")
		}
		return apperrors.InternalError(err)
	}

	comment := &models.Comment{
		PostID:  req.PostID,
		Author:  identity.Login,
		Content: req.Content,
	}
	if err := s.commentRepo.Create(db, comment); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *CommentServiceImpl) Update(db *gorm.DB, identity *auth.Identity, id string, req *dto.UpdateCommentRequest) error {
	comment, err := s.findComment(db, id)
	if err != nil {
		return err
	}

	if !auth.Can(identity, "comment", "update", comment.Author) {
		return apperrors.ErrCommentNotAvailable
	}

	comment.Content = req.Content
	if err := s.commentRepo.Update(db, comment); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *CommentServiceImpl) Delete(db *gorm.DB, identity *auth.Identity, id string) error {
	comment, err := s.findComment(db, id)
	if err != nil {
		return err
	}

	// Admin role AND authorship, both at once.
	if !auth.Can(identity, "comment", "delete", comment.Author) {
		return apperrors.ErrNotWork
	}

	if err := s.commentRepo.DeleteWithLikes(db, id); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *CommentServiceImpl) Like(db *gorm.DB, identity *auth.Identity, commentID string, req *dto.LikeRequest) error {
	if !auth.Can(identity, "comment", "like", "") {
		return apperrors.ErrNotWork
	}

	if _, err := s.findComment(db, commentID); err != nil {
		return err
	}

	like := &models.Like{
		CommentID: commentID,
		Author:    identity.Login,
		Type:      models.LikeType(req.Type),
	}
	if err := s.commentRepo.CreateLike(db, like); err != nil {
		if apperrors.Is(err, repositories.ErrLikeExists) {
			return apperrors.ErrLikeAlready
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *CommentServiceImpl) Unlike(db *gorm.DB, identity *auth.Identity, commentID string) error {
	if !auth.Can(identity, "comment", "unlike", "") {
		return apperrors.ErrNotWork
	}

	if _, err := s.findComment(db, commentID); err != nil {
		return err
	}

	like, err := s.commentRepo.FindLike(db, commentID, identity.Login)
	if err != nil {
		if apperrors.Is(err, repositories.ErrLikeNotFound) {
			return apperrors.NewNotFoundError("Not found")
		}
		return apperrors.InternalError(err)
	}

	if err := s.commentRepo.DeleteLike(db, like.ID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *CommentServiceImpl) findComment(db *gorm.DB, id string) (*models.Comment, error) {
	comment, err := s.commentRepo.FindByID(db, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCommentNotFound) {
			return nil, apperrors.NewNotFoundError("Not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return comment, nil
}
