package routes

import (
	"github.com/arslan3804/food-project/controllers"
	"github.com/arslan3804/food-project/middlewares"
	"github.com/gin-gonic/gin"
)

func PromoRoutes(server *gin.Engine) {
	promos := server.Group("/promo-codes", middlewares.RequireAuth())
	{
		promos.GET("", controllers.GetPromoCodes)
		promos.GET("/current", controllers.GetCurrentPromoCode)
		promos.GET("/has_attempt", controllers.HasAttempt)
	}
}
