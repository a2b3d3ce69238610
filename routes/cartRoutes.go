package routes

import (
	"github.com/arslan3804/food-project/controllers"
	"github.com/arslan3804/food-project/middlewares"
	"github.com/gin-gonic/gin"
)

func CartRoutes(server *gin.Engine) {
	cart := server.Group("/cart", middlewares.RequireAuth())
	{
		cart.GET("", controllers.GetCart)
		cart.POST("/add", controllers.AddToCart)
		cart.POST("/decrease", controllers.DecreaseCartItem)
		cart.POST("/remove", controllers.RemoveCartItem)
		cart.POST("/clear", controllers.ClearCart)
		cart.POST("/apply-promo", controllers.ApplyPromoCode)
		cart.POST("/remove-promo", controllers.RemovePromoCode)
	}
}
