package dto

type CreateUserRequest struct {
	Login                string `json:"login" validate:"required,max=255"`
	Password             string `json:"password" validate:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
	Email                string `json:"email" validate:"required,email,max=255"`
	Role                 string `json:"role" validate:"required,max=255,is-user-role"`
}

// UpdateUserRequest carries the optional fields of a partial user update.
// Empty strings count as absent, same as posts.
type UpdateUserRequest struct {
	Login          string `json:"login" validate:"omitempty,max=255"`
	FullName       string `json:"full_name" validate:"omitempty,max=255"`
	ProfilePicture string `json:"profile_picture" validate:"omitempty,max=255"`
}

func (r *UpdateUserRequest) Empty() bool {
	return r.Login == "" && r.FullName == "" && r.ProfilePicture == ""
}
