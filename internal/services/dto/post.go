package dto

import "blog_backend/internal/models"

type CreatePostRequest struct {
	Title      string `json:"title" validate:"required,max=255"`
	Content    string `json:"content" validate:"required"`
	Categories string `json:"categories" validate:"required"`
}

// UpdatePostRequest carries the optional fields of a partial update. Empty
// strings count as absent; an update never clears a field.
type UpdatePostRequest struct {
	Title      string `json:"title" validate:"omitempty,max=255"`
	Content    string `json:"content" validate:"omitempty"`
	Categories string `json:"categories" validate:"omitempty"`
}

func (r *UpdatePostRequest) Empty() bool {
	return r.Title == "" && r.Content == "" && r.Categories == ""
}

// PostPage is one page of the post listing, fixed at five rows per page.
type PostPage struct {
	Data     []models.Post `json:"data"`
	Total    int64         `json:"total"`
	Page     int           `json:"current_page"`
	PerPage  int           `json:"per_page"`
	LastPage int           `json:"last_page"`
}
