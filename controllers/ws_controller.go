package controllers

import (
	"github.com/gin-gonic/gin"

	"unichat/services"
)

type WSController struct {
	svc *services.WSService
}

func NewWSController(svc *services.WSService) *WSController {
	return &WSController{svc: svc}
}

func (c *WSController) Handle(ctx *gin.Context) {
	c.svc.HandleWebSocket(ctx)
}
