package routes

import (
	"github.com/arslan3804/food-project/controllers"
	"github.com/arslan3804/food-project/middlewares"
	"github.com/gin-gonic/gin"
)

func CategoryRoutes(server *gin.Engine) {
	server.GET("/categories", controllers.GetCategories)

	admin := server.Group("/categories", middlewares.RequireAuth(), middlewares.RequireAdmin())
	{
		admin.POST("", controllers.CreateCategory)
		admin.PUT("/:id", controllers.UpdateCategory)
		admin.DELETE("/:id", controllers.DeleteCategory)
	}
}
