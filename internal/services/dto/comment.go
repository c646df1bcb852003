package dto

type CreateCommentRequest struct {
	PostID  string `json:"post_id" validate:"required"`
	Content string `json:"content" validate:"required"`
}

type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required"`
}

type LikeRequest struct {
	Type string `json:"type" validate:"required,is-like-type"`
}
