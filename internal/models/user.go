package models

import "time"

type User struct {
	BaseModel
	Login          string     `gorm:"uniqueIndex;not null" json:"login"`
	PasswordHash   string     `gorm:"not null" json:"-"`
	Email          string     `gorm:"uniqueIndex;not null" json:"email"`
	Role           UserRole   `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	FullName       string     `json:"full_name"`
	ProfilePicture string     `json:"profile_picture"`
	IsVerified     bool       `gorm:"default:false" json:"is_verified"`
	ResetToken     string     `json:"-"`
	ResetTokenExp  *time.Time `json:"-"`

	RefreshTokens []RefreshToken `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// UserVerification holds the one-shot email verification token issued at
// registration. A row is deleted when its token is consumed.
type UserVerification struct {
	UserID    string    `gorm:"type:uuid;primaryKey" json:"user_id"`
	Token     string    `gorm:"uniqueIndex;not null" json:"-"`
	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`
}

func (UserVerification) TableName() string {
	return "user_verifications"
}

type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Token     string    `gorm:"uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
}
