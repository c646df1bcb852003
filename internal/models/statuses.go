package models

type UserRole string
type PostStatus string
type LikeType string

const (
	UserRoleAdmin UserRole = "admin"
	UserRoleUser  UserRole = "user"

	PostStatusActive   PostStatus = "active"
	PostStatusInactive PostStatus = "inactive"

	LikeTypeLike    LikeType = "like"
	LikeTypeDislike LikeType = "dislike"
)
