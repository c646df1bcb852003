package services

import (
	"net/http"
	"time"

	"blog_backend/internal/auth"
	"blog_backend/internal/config"
	"blog_backend/internal/email"
	"blog_backend/internal/logger"
	"blog_backend/internal/models"
	"blog_backend/internal/repositories"
	"blog_backend/internal/services/dto"
	"blog_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const (
	refreshTokenLength = 64
	refreshTokenTTL    = 7 * 24 * time.Hour
	resetTokenTTL      = time.Hour
)

type AuthService interface {
	Register(db *gorm.DB, req *dto.RegisterRequest) error
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(db *gorm.DB, refreshToken string) (*dto.LoginResponse, error)
	Logout(db *gorm.DB, refreshToken string) error
	VerifyEmail(db *gorm.DB, token string) error
	RequestPasswordReset(db *gorm.DB, identity *auth.Identity) error
	ResetPassword(db *gorm.DB, token string, req *dto.ResetPasswordRequest) error
}

type AuthServiceImpl struct {
	userRepo         repositories.UserRepository
	verificationRepo repositories.VerificationRepository
	emailProvider    email.Provider
}

func NewAuthService(
	userRepo repositories.UserRepository,
	verificationRepo repositories.VerificationRepository,
	emailProvider email.Provider,
) AuthService {
	return &AuthServiceImpl{
		userRepo:         userRepo,
		verificationRepo: verificationRepo,
		emailProvider:    emailProvider,
	}
}

// Register creates a self-service account. The role is always "user";
// admins are created through the admin-only user endpoint.
func (s *AuthServiceImpl) Register(db *gorm.DB, req *dto.RegisterRequest) error {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return apperrors.InternalError(err)
	}

	user := &models.User{
		Login:        req.Login,
		PasswordHash: hash,
		Email:        req.Email,
		Role:         models.UserRoleUser,
		FullName:     req.FullName,
	}
	if err := s.userRepo.Create(db, user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
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

	if err := s.emailProvider.SendVerification(user.Email, user.Login, token); err != nil {
		logger.Error("failed to send verification email", "login", user.Login, "error", err)
	}
	return nil
}

func (s *AuthServiceImpl) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByLogin(db, req.Login)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsVerified {
		return nil, apperrors.NewForbiddenError("User not verified")
	}

	return s.issueTokens(db, user)
}

// Refresh rotates the presented refresh token and issues a new access
// token.
func (s *AuthServiceImpl) Refresh(db *gorm.DB, refreshToken string) (*dto.LoginResponse, error) {
	stored, err := s.userRepo.FindRefreshToken(db, refreshToken)
	if err != nil {
		if apperrors.Is(err, repositories.ErrTokenNotFound) {
			return nil, apperrors.ErrInvalidRefreshToken
		}
		return nil, apperrors.InternalError(err)
	}

	user, err := s.userRepo.FindByID(db, stored.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidRefreshToken
	}

	if err := s.userRepo.DeleteRefreshToken(db, refreshToken); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.issueTokens(db, user)
}

func (s *AuthServiceImpl) Logout(db *gorm.DB, refreshToken string) error {
	if _, err := s.userRepo.FindRefreshToken(db, refreshToken); err != nil {
		if apperrors.Is(err, repositories.ErrTokenNotFound) {
			return apperrors.ErrInvalidRefreshToken
		}
		return apperrors.InternalError(err)
	}

	if err := s.userRepo.DeleteRefreshToken(db, refreshToken); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// VerifyEmail consumes a verification token. The rows for the user are
// removed so a token cannot be replayed.
func (s *AuthServiceImpl) VerifyEmail(db *gorm.DB, token string) error {
	verification, err := s.verificationRepo.FindByToken(db, token)
	if err != nil {
		if apperrors.Is(err, repositories.ErrVerificationNotFound) {
			return apperrors.NewNotFoundError("Not found")
		}
		return apperrors.InternalError(err)
	}

	user, err := s.userRepo.FindByID(db, verification.UserID)
	if err != nil {
		return apperrors.InternalError(err)
	}

	user.IsVerified = true
	if err := s.userRepo.Update(db, user); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.verificationRepo.DeleteForUser(db, user.ID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *AuthServiceImpl) RequestPasswordReset(db *gorm.DB, identity *auth.Identity) error {
	user, err := s.userRepo.FindByLogin(db, identity.Login)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.NewNotFoundError("Not found")
		}
		return apperrors.InternalError(err)
	}

	token := auth.RandomToken(VerificationTokenLength)
	exp := time.Now().Add(resetTokenTTL)
	user.ResetToken = token
	user.ResetTokenExp = &exp
	if err := s.userRepo.Update(db, user); err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.emailProvider.SendPasswordReset(user.Email, user.Login, token); err != nil {
		logger.Error("failed to send password reset email", "login", user.Login, "error", err)
	}
	return nil
}

func (s *AuthServiceImpl) ResetPassword(db *gorm.DB, token string, req *dto.ResetPasswordRequest) error {
	user, err := s.userRepo.FindByResetToken(db, token)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.NewNotFoundError("Not found")
		}
		return apperrors.InternalError(err)
	}

	if user.ResetTokenExp == nil || user.ResetTokenExp.Before(time.Now()) {
		return apperrors.New(apperrors.CodeTokenExpired, "Reset token expired", http.StatusBadRequest)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return apperrors.InternalError(err)
	}

	user.PasswordHash = hash
	user.ResetToken = ""
	user.ResetTokenExp = nil
	if err := s.userRepo.Update(db, user); err != nil {
		return apperrors.InternalError(err)
	}
	// A password change kills every live session.
	if err := s.userRepo.DeleteUserRefreshTokens(db, user.ID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *AuthServiceImpl) issueTokens(db *gorm.DB, user *models.User) (*dto.LoginResponse, error) {
	accessToken, err := auth.GenerateToken(user.ID, user.Login, user.Role)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	refresh := &models.RefreshToken{
		UserID:    user.ID,
		Token:     auth.RandomToken(refreshTokenLength),
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	}
	if err := s.userRepo.CreateRefreshToken(db, refresh); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refresh.Token,
		TokenType:    "bearer",
		ExpiresIn:    config.GetConfig().JWT.TTL * 60,
	}, nil
}
