package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"blog_backend/internal/models"
	"blog_backend/internal/repositories"
	"blog_backend/pkg/apperrors"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// In-memory doubles for the repository, mail and storage interfaces. The
// db handle is ignored; state lives on the fake itself.

// --- posts ---

type fakePostRepo struct {
	seq   int
	posts []*models.Post
	// pivot rows written through ReplaceCategories, keyed by post ID
	pivots map[string][]models.Category
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{pivots: map[string][]models.Category{}}
}

func (r *fakePostRepo) FindPage(_ *gorm.DB, page, perPage int) ([]models.Post, int64, error) {
	if page < 1 {
		page = 1
	}
	total := int64(len(r.posts))

	start := (page - 1) * perPage
	if start > len(r.posts) {
		start = len(r.posts)
	}
	end := start + perPage
	if end > len(r.posts) {
		end = len(r.posts)
	}

	out := make([]models.Post, 0, end-start)
	for _, p := range r.posts[start:end] {
		out = append(out, *p)
	}
	return out, total, nil
}

func (r *fakePostRepo) FindByID(_ *gorm.DB, id string) (*models.Post, error) {
	for _, p := range r.posts {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repositories.ErrPostNotFound
}

func (r *fakePostRepo) Create(_ *gorm.DB, post *models.Post) error {
	r.seq++
	post.ID = fmt.Sprintf("post-%d", r.seq)
	cp := *post
	r.posts = append(r.posts, &cp)
	return nil
}

func (r *fakePostRepo) Update(_ *gorm.DB, post *models.Post) error {
	for i, p := range r.posts {
		if p.ID == post.ID {
			cp := *post
			r.posts[i] = &cp
			return nil
		}
	}
	return repositories.ErrPostNotFound
}

func (r *fakePostRepo) Delete(_ *gorm.DB, id string) error {
	for i, p := range r.posts {
		if p.ID == id {
			r.posts = append(r.posts[:i], r.posts[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakePostRepo) ReplaceCategories(_ *gorm.DB, post *models.Post, categories []models.Category) error {
	r.pivots[post.ID] = categories
	return nil
}

// --- categories ---

type fakeCategoryRepo struct {
	seq        int
	categories []models.Category
}

func (r *fakeCategoryRepo) FindOrCreateByNames(_ *gorm.DB, names []string) ([]models.Category, error) {
	var out []models.Category
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		out = append(out, r.findOrCreate(name))
	}
	return out, nil
}

func (r *fakeCategoryRepo) FindAll(_ *gorm.DB) ([]models.Category, error) {
	return r.categories, nil
}

func (r *fakeCategoryRepo) findOrCreate(name string) models.Category {
	for _, c := range r.categories {
		if c.Name == name {
			return c
		}
	}
	r.seq++
	c := models.Category{Name: name}
	c.ID = fmt.Sprintf("cat-%d", r.seq)
	r.categories = append(r.categories, c)
	return c
}

// --- comments and likes ---

type fakeCommentRepo struct {
	seq      int
	comments []*models.Comment
	likes    []*models.Like
}

func (r *fakeCommentRepo) FindByID(_ *gorm.DB, id string) (*models.Comment, error) {
	for _, c := range r.comments {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, repositories.ErrCommentNotFound
}

func (r *fakeCommentRepo) Create(_ *gorm.DB, comment *models.Comment) error {
	r.seq++
	comment.ID = fmt.Sprintf("comment-%d", r.seq)
	cp := *comment
	r.comments = append(r.comments, &cp)
	return nil
}

func (r *fakeCommentRepo) Update(_ *gorm.DB, comment *models.Comment) error {
	for i, c := range r.comments {
		if c.ID == comment.ID {
			cp := *comment
			r.comments[i] = &cp
			return nil
		}
	}
	return repositories.ErrCommentNotFound
}

func (r *fakeCommentRepo) DeleteWithLikes(_ *gorm.DB, id string) error {
	kept := r.likes[:0]
	for _, l := range r.likes {
		if l.CommentID != id {
			kept = append(kept, l)
		}
	}
	r.likes = kept

	for i, c := range r.comments {
		if c.ID == id {
			r.comments = append(r.comments[:i], r.comments[i+1:]...)
			break
		}
	}
	return nil
}

func (r *fakeCommentRepo) FindLikes(_ *gorm.DB, commentID string) ([]models.Like, error) {
	var out []models.Like
	for _, l := range r.likes {
		if l.CommentID == commentID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (r *fakeCommentRepo) CreateLike(_ *gorm.DB, like *models.Like) error {
	for _, l := range r.likes {
		if l.CommentID == like.CommentID && l.Author == like.Author {
			return repositories.ErrLikeExists
		}
	}
	r.seq++
	like.ID = fmt.Sprintf("like-%d", r.seq)
	cp := *like
	r.likes = append(r.likes, &cp)
	return nil
}

func (r *fakeCommentRepo) FindLike(_ *gorm.DB, commentID, author string) (*models.Like, error) {
	for _, l := range r.likes {
		if l.CommentID == commentID && l.Author == author {
			cp := *l
			return &cp, nil
		}
	}
	return nil, repositories.ErrLikeNotFound
}

func (r *fakeCommentRepo) DeleteLike(_ *gorm.DB, id string) error {
	for i, l := range r.likes {
		if l.ID == id {
			r.likes = append(r.likes[:i], r.likes[i+1:]...)
			return nil
		}
	}
	return nil
}

// --- users ---

type fakeUserRepo struct {
	seq           int
	users         []*models.User
	refreshTokens []*models.RefreshToken
}

func (r *fakeUserRepo) FindByID(_ *gorm.DB, id string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.ID == id })
}

func (r *fakeUserRepo) FindByLogin(_ *gorm.DB, login string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.Login == login })
}

func (r *fakeUserRepo) FindByEmail(_ *gorm.DB, email string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.Email == email })
}

func (r *fakeUserRepo) FindByResetToken(_ *gorm.DB, token string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.ResetToken != "" && u.ResetToken == token })
}

func (r *fakeUserRepo) find(match func(*models.User) bool) (*models.User, error) {
	for _, u := range r.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindAll(_ *gorm.DB) ([]models.User, error) {
	out := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepo) Create(_ *gorm.DB, user *models.User) error {
	for _, u := range r.users {
		if u.Login == user.Login || u.Email == user.Email {
			return repositories.ErrUserAlreadyExists
		}
	}
	r.seq++
	user.ID = fmt.Sprintf("user-%d", r.seq)
	cp := *user
	r.users = append(r.users, &cp)
	return nil
}

func (r *fakeUserRepo) Update(_ *gorm.DB, user *models.User) error {
	for _, u := range r.users {
		if u.ID != user.ID && (u.Login == user.Login || u.Email == user.Email) {
			return repositories.ErrUserAlreadyExists
		}
	}
	for i, u := range r.users {
		if u.ID == user.ID {
			cp := *user
			r.users[i] = &cp
			return nil
		}
	}
	return repositories.ErrUserNotFound
}

func (r *fakeUserRepo) Delete(_ *gorm.DB, id string) error {
	for i, u := range r.users {
		if u.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeUserRepo) CreateRefreshToken(_ *gorm.DB, token *models.RefreshToken) error {
	cp := *token
	r.refreshTokens = append(r.refreshTokens, &cp)
	return nil
}

func (r *fakeUserRepo) FindRefreshToken(_ *gorm.DB, token string) (*models.RefreshToken, error) {
	for _, rt := range r.refreshTokens {
		if rt.Token == token && rt.ExpiresAt.After(time.Now()) {
			cp := *rt
			return &cp, nil
		}
	}
	return nil, repositories.ErrTokenNotFound
}

func (r *fakeUserRepo) DeleteRefreshToken(_ *gorm.DB, token string) error {
	for i, rt := range r.refreshTokens {
		if rt.Token == token {
			r.refreshTokens = append(r.refreshTokens[:i], r.refreshTokens[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeUserRepo) DeleteUserRefreshTokens(_ *gorm.DB, userID string) error {
	kept := r.refreshTokens[:0]
	for _, rt := range r.refreshTokens {
		if rt.UserID != userID {
			kept = append(kept, rt)
		}
	}
	r.refreshTokens = kept
	return nil
}

// --- verifications ---

type fakeVerificationRepo struct {
	rows []*models.UserVerification
}

func (r *fakeVerificationRepo) Create(_ *gorm.DB, v *models.UserVerification) error {
	cp := *v
	r.rows = append(r.rows, &cp)
	return nil
}

func (r *fakeVerificationRepo) FindByToken(_ *gorm.DB, token string) (*models.UserVerification, error) {
	for _, v := range r.rows {
		if v.Token == token {
			cp := *v
			return &cp, nil
		}
	}
	return nil, repositories.ErrVerificationNotFound
}

func (r *fakeVerificationRepo) DeleteForUser(_ *gorm.DB, userID string) error {
	kept := r.rows[:0]
	for _, v := range r.rows {
		if v.UserID != userID {
			kept = append(kept, v)
		}
	}
	r.rows = kept
	return nil
}

func (r *fakeVerificationRepo) CountForUser(_ *gorm.DB, userID string) (int64, error) {
	var count int64
	for _, v := range r.rows {
		if v.UserID == userID {
			count++
		}
	}
	return count, nil
}

// --- mail ---

type sentMail struct {
	kind  string
	to    string
	login string
	token string
}

type mockMailer struct {
	sent []sentMail
	err  error
}

func (m *mockMailer) SendVerification(to, login, token string) error {
	m.sent = append(m.sent, sentMail{kind: "verification", to: to, login: login, token: token})
	return m.err
}

func (m *mockMailer) SendPasswordReset(to, login, token string) error {
	m.sent = append(m.sent, sentMail{kind: "password_reset", to: to, login: login, token: token})
	return m.err
}

// --- file storage ---

type mockStorage struct {
	saved map[string]string
}

func newMockStorage() *mockStorage {
	return &mockStorage{saved: map[string]string{}}
}

func (s *mockStorage) Save(_ context.Context, path string, reader io.Reader) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.saved[path] = string(data)
	return nil
}

func (s *mockStorage) Delete(_ context.Context, path string) error {
	delete(s.saved, path)
	return nil
}

func (s *mockStorage) Exists(_ context.Context, path string) (bool, error) {
	_, ok := s.saved[path]
	return ok, nil
}

func (s *mockStorage) URL(path string) string {
	return "/uploads/" + path
}

// requireAppError asserts err is an *apperrors.AppError with the given
// status and message.
func requireAppError(t *testing.T, err error, httpCode int, message string) *apperrors.AppError {
	t.Helper()

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr), "expected *AppError, got %T: %v", err, err)
	require.Equal(t, httpCode, appErr.HTTPCode)
	require.Equal(t, message, appErr.Message)
	return appErr
}
