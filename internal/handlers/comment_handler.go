package handlers

import (
	"net/http"

	"blog_backend/internal/middleware"
	"blog_backend/internal/services"
	"blog_backend/internal/services/dto"
	"blog_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	*BaseHandler
	commentService services.CommentService
}

func NewCommentHandler(base *BaseHandler, commentService services.CommentService) *CommentHandler {
	return &CommentHandler{
		BaseHandler:    base,
		commentService: commentService,
	}
}

func (h *CommentHandler) RegisterRoutes(r *gin.RouterGroup) {
	comments := r.Group("/comments")
	{
		comments.GET("/:id", h.Get)
		comments.GET("/:id/likes", h.GetLikes)
	}

	protected := r.Group("/comments")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("", h.Create)
		protected.PATCH("/:id", h.Update)
		protected.DELETE("/:id", h.Delete)
		protected.POST("/:id/likes", h.Like)
		protected.DELETE("/:id/likes", h.Unlike)
	}
}

func (h *CommentHandler) Get(c *gin.Context) {
	comment, err := h.commentService.Get(h.GetDB(c), c.Param("id"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) GetLikes(c *gin.Context) {
	likes, err := h.commentService.GetLikes(h.GetDB(c), c.Param("id"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, likes)
}

func (h *CommentHandler) Create(c *gin.Context) {
	var req dto.CreateCommentRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	identity := middleware.GetIdentity(c)
	if err := h.commentService.Create(h.GetDB(c), identity, &req); err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Comment created"})
}

func (h *CommentHandler) Update(c *gin.Context) {
	var req dto.UpdateCommentRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	identity := middleware.GetIdentity(c)
	if err := h.commentService.Update(h.GetDB(c), identity, c.Param("id"), &req); err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment updated"})
}

func (h *CommentHandler) Delete(c *gin.Context) {
	identity := middleware.GetIdentity(c)
	if err := h.commentService.Delete(h.GetDB(c), identity, c.Param("id")); err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment removed"})
}

func (h *CommentHandler) Like(c *gin.Context) {
	var req dto.LikeRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	identity := middleware.GetIdentity(c)
	if err := h.commentService.Like(h.GetDB(c), identity, c.Param("id"), &req); err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Like created"})
}

func (h *CommentHandler) Unlike(c *gin.Context) {
	identity := middleware.GetIdentity(c)
	if err := h.commentService.Unlike(h.GetDB(c), identity, c.Param("id")); err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Like removed"})
}
