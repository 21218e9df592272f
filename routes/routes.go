package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"unichat/config"
	"unichat/controllers"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(cfg config.Config, ws *controllers.WSController, messages *controllers.MessageController) *gin.Engine {
	r := gin.Default()

	corsConfig := cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}
	r.Use(cors.New(corsConfig))

	r.GET("/ws", ws.Handle)

	api := r.Group("/api")
	{
		api.GET("/messages/history", messages.History)
		api.GET("/groups/messages", messages.GroupHistory)
	}

	return r
}
