package main

import (
	"log"

	"unichat/config"
	"unichat/controllers"
	"unichat/models"
	"unichat/repository"
	"unichat/routes"
	"unichat/services"
)

func main() {
	cfg := config.Load()

	db := config.InitDB(cfg)
	models.Migrate(db)

	repo := repository.New(db)
	hub := services.NewHub()
	relay := services.NewRelay(repo, hub)
	gatekeeper := services.NewGatekeeper(repo)
	wsService := services.NewWSService(cfg, hub, relay, gatekeeper)

	r := routes.RegisterRoutes(cfg,
		controllers.NewWSController(wsService),
		controllers.NewMessageController(repo),
	)

	log.Printf("Socket server running on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
