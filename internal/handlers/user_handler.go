package handlers

import (
	"net/http"
	"strings"

	"blog_backend/internal/middleware"
	"blog_backend/internal/models"
	"blog_backend/internal/services"
	"blog_backend/internal/services/dto"
	"blog_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	*BaseHandler
	userService services.UserService
}

func NewUserHandler(base *BaseHandler, userService services.UserService) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		userService: userService,
	}
}

func (h *UserHandler) RegisterRoutes(r *gin.RouterGroup) {
	users := r.Group("/users")
	{
		users.GET("", h.List)
	}

	// Exact routes win over the :id wildcard, so /users/avatar is safe
	// next to /users/:id.
	authed := r.Group("/users")
	authed.Use(middleware.AuthMiddleware())
	{
		authed.PATCH("/avatar", h.Avatar)
	}

	users.GET("/:id", h.Get)

	admin := r.Group("/users")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleAdmin))
	{
		admin.POST("", h.Create)
		admin.PATCH("/:id", h.Update)
		admin.DELETE("/:id", h.Delete)
	}
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.List(h.GetDB(c))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.userService.Get(h.GetDB(c), c.Param("id"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	identity := middleware.GetIdentity(c)
	if err := h.userService.Create(h.GetDB(c), identity, &req); err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User created! Please check email to complete registration."})
}

func (h *UserHandler) Avatar(c *gin.Context) {
	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("File not found"))
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		apperrors.HandleError(c, apperrors.ValidationError(gin.H{"avatar": "Must be an image"}))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		apperrors.HandleError(c, apperrors.InternalError(err))
		return
	}
	defer file.Close()

	identity := middleware.GetIdentity(c)
	if err := h.userService.SaveAvatar(c.Request.Context(), identity, fileHeader.Filename, file); err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Avatar upload"})
}

func (h *UserHandler) Update(c *gin.Context) {
	var req dto.UpdateUserRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	identity := middleware.GetIdentity(c)
	if err := h.userService.Update(h.GetDB(c), identity, c.Param("id"), &req); err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User updated"})
}

func (h *UserHandler) Delete(c *gin.Context) {
	identity := middleware.GetIdentity(c)
	if err := h.userService.Delete(h.GetDB(c), identity, c.Param("id")); err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User removed"})
}
