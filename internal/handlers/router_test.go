package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"os"
	"strings"
	"testing"

	"blog_backend/internal/auth"
	"blog_backend/internal/config"
	"blog_backend/internal/handlers"
	"blog_backend/internal/logger"
	"blog_backend/internal/middleware"
	"blog_backend/internal/models"
	"blog_backend/internal/routes"
	"blog_backend/internal/services"
	"blog_backend/internal/services/dto"
	"blog_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.Init("test")

	cfg := &config.Config{}
	cfg.JWT.Secret = "handler-test-secret"
	cfg.JWT.TTL = 60
	config.AppConfig = cfg

	os.Exit(m.Run())
}

// Service stubs. Each records the last call and answers with the
// configured error or value.

type stubPostService struct {
	err      error
	page     *dto.PostPage
	post     *models.Post
	gotPage  int
	identity *auth.Identity
	created  *dto.CreatePostRequest
	updated  *dto.UpdatePostRequest
	gotID    string
}

func (s *stubPostService) List(_ *gorm.DB, page int) (*dto.PostPage, error) {
	s.gotPage = page
	if s.err != nil {
		return nil, s.err
	}
	if s.page != nil {
		return s.page, nil
	}
	return &dto.PostPage{Page: page, PerPage: 5, LastPage: 1}, nil
}

func (s *stubPostService) Get(_ *gorm.DB, id string) (*models.Post, error) {
	s.gotID = id
	if s.err != nil {
		return nil, s.err
	}
	if s.post != nil {
		return s.post, nil
	}
	return &models.Post{Title: "stub"}, nil
}

func (s *stubPostService) Create(_ *gorm.DB, identity *auth.Identity, req *dto.CreatePostRequest) error {
	s.identity = identity
	s.created = req
	return s.err
}

func (s *stubPostService) Update(_ *gorm.DB, identity *auth.Identity, id string, req *dto.UpdatePostRequest) error {
	s.identity = identity
	s.gotID = id
	s.updated = req
	return s.err
}

func (s *stubPostService) Delete(_ *gorm.DB, identity *auth.Identity, id string) error {
	s.identity = identity
	s.gotID = id
	return s.err
}

type stubCommentService struct {
	err      error
	identity *auth.Identity
	gotID    string
	created  *dto.CreateCommentRequest
	liked    *dto.LikeRequest
}

func (s *stubCommentService) Get(_ *gorm.DB, id string) (*models.Comment, error) {
	s.gotID = id
	if s.err != nil {
		return nil, s.err
	}
	return &models.Comment{Content: "stub"}, nil
}

func (s *stubCommentService) GetLikes(_ *gorm.DB, commentID string) ([]models.Like, error) {
	s.gotID = commentID
	if s.err != nil {
		return nil, s.err
	}
	return []models.Like{}, nil
}

func (s *stubCommentService) Create(_ *gorm.DB, identity *auth.Identity, req *dto.CreateCommentRequest) error {
	s.identity = identity
	s.created = req
	return s.err
}

func (s *stubCommentService) Update(_ *gorm.DB, identity *auth.Identity, id string, _ *dto.UpdateCommentRequest) error {
	s.identity = identity
	s.gotID = id
	return s.err
}

func (s *stubCommentService) Delete(_ *gorm.DB, identity *auth.Identity, id string) error {
	s.identity = identity
	s.gotID = id
	return s.err
}

func (s *stubCommentService) Like(_ *gorm.DB, identity *auth.Identity, commentID string, req *dto.LikeRequest) error {
	s.identity = identity
	s.gotID = commentID
	s.liked = req
	return s.err
}

func (s *stubCommentService) Unlike(_ *gorm.DB, identity *auth.Identity, commentID string) error {
	s.identity = identity
	s.gotID = commentID
	return s.err
}

type stubUserService struct {
	err        error
	identity   *auth.Identity
	gotID      string
	created    *dto.CreateUserRequest
	avatarName string
	avatarData string
}

func (s *stubUserService) List(_ *gorm.DB) ([]models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []models.User{}, nil
}

func (s *stubUserService) Get(_ *gorm.DB, id string) (*models.User, error) {
	s.gotID = id
	if s.err != nil {
		return nil, s.err
	}
	return &models.User{Login: "stub"}, nil
}

func (s *stubUserService) Create(_ *gorm.DB, identity *auth.Identity, req *dto.CreateUserRequest) error {
	s.identity = identity
	s.created = req
	return s.err
}

func (s *stubUserService) Update(_ *gorm.DB, identity *auth.Identity, id string, _ *dto.UpdateUserRequest) error {
	s.identity = identity
	s.gotID = id
	return s.err
}

func (s *stubUserService) Delete(_ *gorm.DB, identity *auth.Identity, id string) error {
	s.identity = identity
	s.gotID = id
	return s.err
}

func (s *stubUserService) SaveAvatar(_ context.Context, identity *auth.Identity, filename string, r io.Reader) error {
	s.identity = identity
	s.avatarName = filename
	data, _ := io.ReadAll(r)
	s.avatarData = string(data)
	return s.err
}

type stubAuthService struct {
	err      error
	response *dto.LoginResponse
	gotToken string
}

func (s *stubAuthService) Register(_ *gorm.DB, _ *dto.RegisterRequest) error {
	return s.err
}

func (s *stubAuthService) Login(_ *gorm.DB, _ *dto.LoginRequest) (*dto.LoginResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.response, nil
}

func (s *stubAuthService) Refresh(_ *gorm.DB, refreshToken string) (*dto.LoginResponse, error) {
	s.gotToken = refreshToken
	if s.err != nil {
		return nil, s.err
	}
	return s.response, nil
}

func (s *stubAuthService) Logout(_ *gorm.DB, refreshToken string) error {
	s.gotToken = refreshToken
	return s.err
}

func (s *stubAuthService) VerifyEmail(_ *gorm.DB, token string) error {
	s.gotToken = token
	return s.err
}

func (s *stubAuthService) RequestPasswordReset(_ *gorm.DB, _ *auth.Identity) error {
	return s.err
}

func (s *stubAuthService) ResetPassword(_ *gorm.DB, token string, _ *dto.ResetPasswordRequest) error {
	s.gotToken = token
	return s.err
}

// testEnv is a full router wired to stub services.
type testEnv struct {
	router   *gin.Engine
	posts    *stubPostService
	comments *stubCommentService
	users    *stubUserService
	auth     *stubAuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		posts:    &stubPostService{},
		comments: &stubCommentService{},
		users:    &stubUserService{},
		auth:     &stubAuthService{},
	}

	base := handlers.NewBaseHandler(validator.New())
	registry := &handlers.Registry{
		Auth:    handlers.NewAuthHandler(base, env.auth),
		Posts:   handlers.NewPostHandler(base, env.posts),
		Comment: handlers.NewCommentHandler(base, env.comments),
		Users:   handlers.NewUserHandler(base, env.users),
	}

	env.router = gin.New()
	// Stub services never touch the handle, an empty one satisfies GetDB.
	env.router.Use(middleware.DBMiddleware(&gorm.DB{}))
	routes.RegisterRoutes(env.router, registry)
	return env
}

var _ services.PostService = (*stubPostService)(nil)
var _ services.CommentService = (*stubCommentService)(nil)
var _ services.UserService = (*stubUserService)(nil)
var _ services.AuthService = (*stubAuthService)(nil)

func tokenFor(t *testing.T, login string, role models.UserRole) string {
	t.Helper()

	token, err := auth.GenerateToken("id-"+login, login, role)
	require.NoError(t, err)
	return token
}

// doJSON fires a JSON request at the test router. An empty token leaves
// the Authorization header off.
func (env *testEnv) doJSON(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) doRaw(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

// doMultipart uploads a single file field.
func (env *testEnv) doMultipart(t *testing.T, method, path, token, field, filename, contentType, data string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte(data))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), "body: %s", rec.Body.String())
	return body
}

func requireMessage(t *testing.T, rec *httptest.ResponseRecorder, status int, message string) {
	t.Helper()

	require.Equal(t, status, rec.Code, "body: %s", rec.Body.String())
	body := decodeBody(t, rec)
	require.Equal(t, message, body["message"])
}
