package router

import "github.com/gin-gonic/gin"

// Module is one routable feature area (users, blogs). Each module mounts
// its own routes and per-route middleware under the shared API group.
type Module interface {
	Register(rg *gin.RouterGroup)
}
