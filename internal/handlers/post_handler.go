package handlers

import (
	"net/http"
	"strconv"

	"blog_backend/internal/middleware"
	"blog_backend/internal/services"
	"blog_backend/internal/services/dto"
	"blog_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	*BaseHandler
	postService services.PostService
}

func NewPostHandler(base *BaseHandler, postService services.PostService) *PostHandler {
	return &PostHandler{
		BaseHandler: base,
		postService: postService,
	}
}

func (h *PostHandler) RegisterRoutes(r *gin.RouterGroup) {
	posts := r.Group("/posts")
	{
		posts.GET("", h.List)
		posts.GET("/:id", h.Get)
	}

	protected := r.Group("/posts")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("", h.Create)
		protected.PATCH("/:id", h.Update)
		protected.DELETE("/:id", h.Delete)
	}
}

func (h *PostHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	result, err := h.postService.List(h.GetDB(c), page)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *PostHandler) Get(c *gin.Context) {
	post, err := h.postService.Get(h.GetDB(c), c.Param("id"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) Create(c *gin.Context) {
	var req dto.CreatePostRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	identity := middleware.GetIdentity(c)
	if err := h.postService.Create(h.GetDB(c), identity, &req); err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Post created."})
}

func (h *PostHandler) Update(c *gin.Context) {
	var req dto.UpdatePostRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	identity := middleware.GetIdentity(c)
	if err := h.postService.Update(h.GetDB(c), identity, c.Param("id"), &req); err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post updated."})
}

func (h *PostHandler) Delete(c *gin.Context) {
	identity := middleware.GetIdentity(c)
	if err := h.postService.Delete(h.GetDB(c), identity, c.Param("id")); err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post removed"})
}
