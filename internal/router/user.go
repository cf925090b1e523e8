package router

import "github.com/gin-gonic/gin"

func (r *Router) userRoutes(api *gin.RouterGroup) {
	users := api.Group("/users")
	{
		// Every user route requires authentication; mutating routes
		// additionally verify ownership in the handler.
		users.Use(r.jwtMw.RequireAuth())
		{
			users.GET("", r.userHandler.GetAll)
			users.GET("/:id", r.userHandler.GetByID)
			users.PUT("/:id", r.userHandler.Update)
			users.PUT("/:id/password", r.userHandler.UpdatePassword)
			users.PUT("/:id/settings", r.userHandler.UpdateSettings)
			users.GET("/:id/connections", r.userHandler.ListConnections)
			users.DELETE("/:id", r.userHandler.Delete)
		}
	}
}
