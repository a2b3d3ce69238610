package routes

import (
	"github.com/arslan3804/food-project/controllers"
	"github.com/arslan3804/food-project/middlewares"
	"github.com/gin-gonic/gin"
)

func ProductRoutes(server *gin.Engine) {
	server.GET("/products", controllers.GetProducts)
	server.GET("/products/:id", controllers.GetProduct)
	server.GET("/products/category/:slug", controllers.GetProductsByCategory)
	server.GET("/products/:id/reviews", controllers.GetReviews)
	server.GET("/products/:id/images", controllers.GetProductImages)

	authenticated := server.Group("/products", middlewares.RequireAuth())
	{
		authenticated.POST("/:id/reviews", controllers.CreateReview)
		authenticated.PUT("/:id/reviews/:reviewId", controllers.UpdateReview)
		authenticated.DELETE("/:id/reviews/:reviewId", controllers.DeleteReview)
	}

	admin := server.Group("/products", middlewares.RequireAuth(), middlewares.RequireAdmin())
	{
		admin.POST("", controllers.CreateProduct)
		admin.PUT("/:id", controllers.UpdateProduct)
		admin.DELETE("/:id", controllers.DeleteProduct)
	}

	images := server.Group("/product-images", middlewares.RequireAuth(), middlewares.RequireAdmin())
	{
		images.POST("", controllers.CreateProductImage)
		images.DELETE("/:imageId", controllers.DeleteProductImage)
	}
}
