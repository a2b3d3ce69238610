package routes

import (
	"github.com/arslan3804/food-project/controllers"
	"github.com/arslan3804/food-project/middlewares"
	"github.com/gin-gonic/gin"
)

func OrderRoutes(server *gin.Engine) {
	orders := server.Group("/orders", middlewares.RequireAuth())
	{
		orders.GET("", controllers.GetOrders)
		orders.GET("/:orderId", controllers.GetOrderById)
		orders.POST("/create-from-cart", controllers.CreateOrderFromCart)
		orders.PATCH("/:orderId/status", middlewares.RequireAdmin(), controllers.UpdateOrderStatus)
	}
}
