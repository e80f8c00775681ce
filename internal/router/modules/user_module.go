package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"blog-backend/internal/container"
	handlers "blog-backend/internal/interface/http"
	"blog-backend/internal/interface/middleware"
	"blog-backend/pkg/helpers"
)

// UserModule wires account HTTP handlers into routes.
// Public: register, login, logout, forgotpassword, resetpassword
// Protected: getuser, updateprofile, updatepassword, contact

type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()

	// Credential endpoints get tight per-IP limits, password reset tighter still.
	credLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())
	resetLimiter := middleware.RateLimit(rdb, 5, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())

	users := rg.Group("/users")
	users.POST("/register", credLimiter, m.Handler.Register)
	users.POST("/login", credLimiter, m.Handler.Login)
	users.GET("/logout", m.Handler.Logout)
	users.POST("/forgotpassword", resetLimiter, m.Handler.ForgotPassword)
	users.PUT("/resetpassword/:token", resetLimiter, m.Handler.ResetPassword)

	auth := users.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/getuser", m.Handler.GetUser)
		auth.PUT("/updateprofile", m.Handler.UpdateProfile)
		auth.PATCH("/updatepassword", m.Handler.UpdatePassword)
	}

	contact := rg.Group("/contact")
	contact.Use(middleware.Auth(m.JWT))
	contact.POST("", middleware.RateLimit(rdb, 5, time.Minute, middleware.KeyByUserID(), nil), m.Handler.Contact)
}
