package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"blog-backend/internal/container"
	handlers "blog-backend/internal/interface/http"
	"blog-backend/internal/interface/middleware"
	"blog-backend/pkg/helpers"
)

// BlogModule wires post and comment HTTP handlers into routes.
// Public: allblogs, search, detail, comment listing
// Protected: postblog, myblog update/delete, own listing, comment upsert/delete

type BlogModule struct {
	Handler *handlers.BlogHandler
	JWT     *helpers.JWTManager
}

func NewBlogModule(h *handlers.BlogHandler, jwt *helpers.JWTManager) *BlogModule {
	return &BlogModule{Handler: h, JWT: jwt}
}

func (m *BlogModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()

	blogs := rg.Group("/blogs")
	blogs.Use(middleware.RateLimit(rdb, 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP()))

	blogs.GET("/allblogs", m.Handler.List)
	blogs.GET("/search", m.Handler.Search)
	blogs.GET("/comment/comments", m.Handler.Comments)

	auth := blogs.Group("")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("", m.Handler.ListMine)
		auth.POST("/postblog", m.Handler.Create)
		auth.PUT("/myblog/:id", m.Handler.Update)
		auth.DELETE("/myblog/:id", m.Handler.Delete)
		auth.PUT("/comment", m.Handler.UpsertComment)
		auth.DELETE("/comment", m.Handler.DeleteComment)
	}

	// Registered last so the static segments above keep precedence.
	blogs.GET("/:id", m.Handler.Get)
}
