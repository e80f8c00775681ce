package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"blog-backend/internal/application"
	"blog-backend/pkg/response"
	"blog-backend/pkg/validation"
)

type BlogHandler struct {
	Service *application.BlogService
	Logger  *logrus.Logger
}

func NewBlogHandler(svc *application.BlogService, logger *logrus.Logger) *BlogHandler {
	return &BlogHandler{Service: svc, Logger: logger}
}

// Create POST /api/blogs/postblog (auth) {title,description,category,image?}
func (h *BlogHandler) Create(c *gin.Context) {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Category    string `json:"category"`
		Image       string `json:"image"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	b, err := h.Service.Create(c.Request.Context(), c.GetString("userID"), application.CreateBlogInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Image:       req.Image,
	})
	if err != nil {
		failFromError(c, err)
		return
	}
	response.OK(c, http.StatusCreated, gin.H{"blog": b, "message": "blog created successfully"})
}

func listFilterFromQuery(c *gin.Context) application.ListFilter {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
	return application.ListFilter{
		Page:     page,
		Limit:    limit,
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Sort:     c.Query("sort"),
	}
}

func writeListing(c *gin.Context, res *application.ListResult) {
	response.OK(c, http.StatusOK, gin.H{
		"blogs":      res.Blogs,
		"blogCounts": len(res.Blogs),
		"total":      res.Total,
		"page":       res.Page,
		"limit":      res.Limit,
		"categories": res.Categories,
	})
}

// List GET /api/blogs/allblogs?page=&limit=&search=&category=&sort=
func (h *BlogHandler) List(c *gin.Context) {
	res, err := h.Service.List(c.Request.Context(), listFilterFromQuery(c))
	if err != nil {
		failFromError(c, err)
		return
	}
	writeListing(c, res)
}

// ListMine GET /api/blogs (auth) - same query surface, scoped to the caller.
func (h *BlogHandler) ListMine(c *gin.Context) {
	res, err := h.Service.ListMine(c.Request.Context(), c.GetString("userID"), listFilterFromQuery(c))
	if err != nil {
		failFromError(c, err)
		return
	}
	writeListing(c, res)
}

// Get GET /api/blogs/:id
// An unknown id answers {"success":true,"blog":null}, not a 404.
func (h *BlogHandler) Get(c *gin.Context) {
	b, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		failFromError(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"blog": b})
}

// Update PUT /api/blogs/myblog/:id (auth)
func (h *BlogHandler) Update(c *gin.Context) {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Category    string `json:"category"`
		Image       string `json:"image"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	b, err := h.Service.Update(c.Request.Context(), c.GetString("userID"), c.Param("id"), application.UpdateBlogInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Image:       req.Image,
	})
	if err != nil {
		failFromError(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"blog": b, "message": "blog updated successfully"})
}

// Delete DELETE /api/blogs/myblog/:id (auth)
func (h *BlogHandler) Delete(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.GetString("userID"), c.Param("id")); err != nil {
		failFromError(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"message": "blog deleted successfully"})
}

// UpsertComment PUT /api/blogs/comment (auth) {blogId,comment}
// One comment per author per post: a second submit replaces the text.
func (h *BlogHandler) UpsertComment(c *gin.Context) {
	var req struct {
		BlogID  string `json:"blogId" binding:"required"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Service.UpsertComment(c.Request.Context(), c.GetString("userID"), req.BlogID, req.Comment); err != nil {
		failFromError(c, err)
		return
	}
	comments, err := h.Service.Comments(c.Request.Context(), req.BlogID)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"comments": comments, "message": "comment added successfully"})
}

// Comments GET /api/blogs/comment/comments?id=
func (h *BlogHandler) Comments(c *gin.Context) {
	comments, err := h.Service.Comments(c.Request.Context(), c.Query("id"))
	if err != nil {
		failFromError(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"comments": comments})
}

// DeleteComment DELETE /api/blogs/comment?blogId=&id= (auth)
func (h *BlogHandler) DeleteComment(c *gin.Context) {
	blogID := c.Query("blogId")
	commentID := c.Query("id")
	if blogID == "" || commentID == "" {
		response.Fail(c, http.StatusBadRequest, "blogId and id are required", nil)
		return
	}
	if err := h.Service.DeleteComment(c.Request.Context(), blogID, commentID); err != nil {
		failFromError(c, err)
		return
	}
	comments, err := h.Service.Comments(c.Request.Context(), blogID)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"comments": comments, "message": "comment deleted successfully"})
}

// Search GET /api/blogs/search?q=&size=
func (h *BlogHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Fail(c, http.StatusBadRequest, "q is required", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Service.Search(c.Request.Context(), q, size)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"results": hits})
}
