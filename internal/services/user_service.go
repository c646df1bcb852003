package services

import (
	"context"
	"io"
	"path/filepath"

	"blog_backend/internal/auth"
	"blog_backend/internal/email"
	"blog_backend/internal/logger"
	"blog_backend/internal/models"
	"blog_backend/internal/repositories"
	"blog_backend/internal/services/dto"
	"blog_backend/internal/storage"
	"blog_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// VerificationTokenLength is the length of the token mailed out after a
// user is created.
const VerificationTokenLength = 30

// AvatarDir is where uploaded avatars land, relative to the storage base.
// Files keep their original name, so a repeated name overwrites the
// previous upload.
const AvatarDir = "uploads/images/avatars"

type UserService interface {
	List(db *gorm.DB) ([]models.User, error)
	Get(db *gorm.DB, id string) (*models.User, error)
	Create(db *gorm.DB, identity *auth.Identity, req *dto.CreateUserRequest) error
	Update(db *gorm.DB, identity *auth.Identity, id string, req *dto.UpdateUserRequest) error
	Delete(db *gorm.DB, identity *auth.Identity, id string) error
	SaveAvatar(ctx context.Context, identity *auth.Identity, filename string, r io.Reader) error
}

type UserServiceImpl struct {
	userRepo         repositories.UserRepository
	verificationRepo repositories.VerificationRepository
	emailProvider    email.Provider
	files            storage.Storage
}

func NewUserService(
	userRepo repositories.UserRepository,
	verificationRepo repositories.VerificationRepository,
	emailProvider email.Provider,
	files storage.Storage,
) UserService {
	return &UserServiceImpl{
		userRepo:         userRepo,
		verificationRepo: verificationRepo,
		emailProvider:    emailProvider,
		files:            files,
	}
}

func (s *UserServiceImpl) List(db *gorm.DB) ([]models.User, error) {
	users, err := s.userRepo.FindAll(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return users, nil
}

func (s *UserServiceImpl) Get(db *gorm.DB, id string) (*models.User, error) {
	user, err := s.userRepo.FindByID(db, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("Not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

func (s *UserServiceImpl) Create(db *gorm.DB, identity *auth.Identity, req *dto.CreateUserRequest) error {
	if !auth.Can(identity, "user", "create", "") {
		return apperrors.ErrNotWork
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return apperrors.InternalError(err)
	}

	user := &models.User{
		Login:        req.Login,
		PasswordHash: hash,
		Email:        req.Email,
		Role:         models.UserRole(req.Role),
	}
	if err := s.userRepo.Create(db, user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			// Uniqueness violations surface as plain validation failures.
			return apperrors.ErrAlreadyExists(err)
		}
		return apperrors.InternalError(err)
	}

	token := auth.RandomToken(VerificationTokenLength)
	verification := &models.UserVerification{
		UserID: user.ID,
		Token:  token,
	}
	if err := s.verificationRepo.Create(db, verification); err != nil {
		return apperrors.InternalError(err)
	}

	// Mail delivery failure does not undo the created rows; the token can
	// still be re-sent out of band.
	if err := s.emailProvider.SendVerification(user.Email, user.Login, token); err != nil {
		logger.Error("failed to send verification email", "login", user.Login, "error", err)
	}

	return nil
}

func (s *UserServiceImpl) Update(db *gorm.DB, identity *auth.Identity, id string, req *dto.UpdateUserRequest) error {
	if !auth.Can(identity, "user", "update", "") {
		return apperrors.ErrNotWork
	}

	user, err := s.userRepo.FindByID(db, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.NewNotFoundError("Not found")
		}
		return apperrors.InternalError(err)
	}

	if req.Empty() {
		return apperrors.NewBadRequestError("Http bad request")
	}

	if req.Login != "" {
		user.Login = req.Login
	}
	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.ProfilePicture != "" {
		user.ProfilePicture = req.ProfilePicture
	}

	if err := s.userRepo.Update(db, user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return apperrors.ErrAlreadyExists(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *UserServiceImpl) Delete(db *gorm.DB, identity *auth.Identity, id string) error {
	if !auth.Can(identity, "user", "delete", "") {
		return apperrors.ErrNotWork
	}

	if _, err := s.userRepo.FindByID(db, id); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.NewNotFoundError("Not found")
		}
		return apperrors.InternalError(err)
	}

	if err := s.userRepo.Delete(db, id); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// SaveAvatar stores the uploaded image under the avatars directory keyed by
// its original filename.
func (s *UserServiceImpl) SaveAvatar(ctx context.Context, identity *auth.Identity, filename string, r io.Reader) error {
	if !auth.Can(identity, "user", "avatar", "") {
		return apperrors.ErrNotWork
	}

	// Strip any path components a hostile client may have smuggled in.
	name := filepath.Base(filename)
	path := filepath.Join(AvatarDir, name)

	if err := s.files.Save(ctx, path, r); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}
