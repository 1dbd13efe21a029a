package app

import "github.com/gin-gonic/gin"

// Module defines the contract for a self-registering business module.
// public routes are reachable anonymously; protected routes run behind the
// bearer-token middleware.
type Module interface {
	RegisterRoutes(public *gin.RouterGroup, protected *gin.RouterGroup)
}
