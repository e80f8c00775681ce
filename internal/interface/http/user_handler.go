package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"blog-backend/internal/application"
	"blog-backend/pkg/helpers"
	"blog-backend/pkg/response"
	"blog-backend/pkg/validation"
)

type UserHandler struct {
	Service *application.UserService
	Cookies *helpers.CookieManager
	Logger  *logrus.Logger
}

func NewUserHandler(svc *application.UserService, cookies *helpers.CookieManager, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Service: svc, Cookies: cookies, Logger: logger}
}

// Register POST /api/users/register {name,email,password}
// Issues the session cookie on success, same as login.
func (h *UserHandler) Register(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email" binding:"omitempty,email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, token, exp, err := h.Service.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		failFromError(c, err)
		return
	}
	h.Cookies.Set(c, token, exp)
	response.OK(c, http.StatusCreated, gin.H{"user": u, "token": token})
}

// Login POST /api/users/login {email,password}
func (h *UserHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, token, exp, err := h.Service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		failFromError(c, err)
		return
	}
	h.Cookies.Set(c, token, exp)
	response.OK(c, http.StatusOK, gin.H{"user": u, "token": token})
}

// Logout GET /api/users/logout
// Sessions are stateless JWTs, so logout is just clearing the cookie.
func (h *UserHandler) Logout(c *gin.Context) {
	h.Cookies.Clear(c)
	response.OK(c, http.StatusOK, gin.H{"message": "logged out successfully"})
}

// GetUser GET /api/users/getuser (auth)
func (h *UserHandler) GetUser(c *gin.Context) {
	u, err := h.Service.GetUser(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		failFromError(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"user": u})
}

// UpdateProfile PUT /api/users/updateprofile (auth) {name?,bio?,avatar?}
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req struct {
		Name   string `json:"name"`
		Bio    string `json:"bio"`
		Avatar string `json:"avatar"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Service.UpdateProfile(c.Request.Context(), c.GetString("userID"), application.UpdateProfileInput{
		Name:   req.Name,
		Bio:    req.Bio,
		Avatar: req.Avatar,
	})
	if err != nil {
		failFromError(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"user": u, "message": "profile updated successfully"})
}

// UpdatePassword PATCH /api/users/updatepassword (auth)
func (h *UserHandler) UpdatePassword(c *gin.Context) {
	var req struct {
		OldPassword     string `json:"oldPassword" binding:"required"`
		NewPassword     string `json:"newPassword" binding:"required,pwd"`
		ConfirmPassword string `json:"confirmPassword" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	err := h.Service.UpdatePassword(c.Request.Context(), c.GetString("userID"),
		req.OldPassword, req.NewPassword, req.ConfirmPassword)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"message": "password updated successfully"})
}

// ForgotPassword POST /api/users/forgotpassword {email}
func (h *UserHandler) ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Service.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		failFromError(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"message": "reset email sent, please check your inbox"})
}

// Contact POST /api/contact (auth) {subject?,message}
// Relays the message to the configured operator address.
func (h *UserHandler) Contact(c *gin.Context) {
	var req struct {
		Subject string `json:"subject"`
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Service.Contact(c.Request.Context(), c.GetString("userID"), req.Subject, req.Message); err != nil {
		failFromError(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"message": "message sent, thank you"})
}

// ResetPassword PUT /api/users/resetpassword/:token {password,confirmPassword}
func (h *UserHandler) ResetPassword(c *gin.Context) {
	var req struct {
		Password        string `json:"password" binding:"required,pwd"`
		ConfirmPassword string `json:"confirmPassword" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Service.ResetPassword(c.Request.Context(), c.Param("token"), req.Password, req.ConfirmPassword)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"user": u, "message": "password reset successful"})
}
