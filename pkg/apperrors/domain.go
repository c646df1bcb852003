package apperrors

import "net/http"

// Factories for repository-level causes.

// ErrNotFound converts a repository miss (gorm.ErrRecordNotFound and
// friends) into the client-facing 404.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "Not found", http.StatusNotFound)
}

// ErrAlreadyExists converts a duplicate-key insert into a validation
// failure; the API does not distinguish uniqueness violations from other
// invalid input.
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeValidationFailed, "Invalid data", http.StatusUnprocessableEntity)
}

// Predefined errors with fixed client-facing messages.

// ErrNotWork is the admin-gate failure.
var ErrNotWork = New(CodeForbidden, "Not work", http.StatusForbidden)

// ErrLikeAlready rejects a second like by the same author on one comment.
var ErrLikeAlready = New(CodeConflict, "Like already", http.StatusBadRequest)

// ErrCommentNotAvailable rejects edits of someone else's comment. This one
// answers 400, not 403.
var ErrCommentNotAvailable = New(CodeBadRequest, "Comment not avaible", http.StatusBadRequest)

// ErrEmptyUpdate rejects a PATCH that carries none of the updatable fields.
var ErrEmptyUpdate = New(CodeBadRequest, "Http bad request", http.StatusBadRequest)

// ErrInvalidCredentials is returned for a failed login.
var ErrInvalidCredentials = New(CodeInvalidCredentials, "Invalid login or password", http.StatusUnauthorized)

// ErrInvalidRefreshToken is returned for an unknown or expired refresh token.
var ErrInvalidRefreshToken = New(CodeInvalidToken, "Invalid refresh token", http.StatusUnauthorized)
